// Package testkit builds workbook fixtures for tests.
package testkit

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Sheet is one fixture sheet. Rows[0] is the header row.
type Sheet struct {
	Name string
	Rows [][]string
}

// WriteXLSX saves sheets, in order, to dir/name and returns the path.
func WriteXLSX(t testing.TB, dir, name string, sheets ...Sheet) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sh := range sheets {
		switch {
		case i == 0 && sh.Name != "Sheet1":
			// NewFile starts with "Sheet1".
			if err := f.SetSheetName("Sheet1", sh.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		case i > 0:
			if _, err := f.NewSheet(sh.Name); err != nil {
				t.Fatalf("new sheet %q: %v", sh.Name, err)
			}
		}

		for r, row := range sh.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatal(err)
			}
			values := row
			if err := f.SetSheetRow(sh.Name, cell, &values); err != nil {
				t.Fatalf("set row %d of %q: %v", r+1, sh.Name, err)
			}
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
	return path
}

// WriteFile writes raw bytes to dir/name, e.g. a text file posing as a
// workbook.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ReadCSV returns every record of the CSV file at path.
func ReadCSV(t testing.TB, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return records
}
