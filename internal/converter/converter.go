package converter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nconklindev/citycsv/internal/types"
)

// CityLabel is the header the chosen city column is renamed to.
const CityLabel = "城市"

// DefaultOutputName is the file name offered by the save dialog.
const DefaultOutputName = "converted_data.csv"

const outputMode = 0o644

var (
	ErrNoColumn       = errors.New("no city column selected")
	ErrColumnNotFound = errors.New("city column not found in sheet")
)

// TableReader loads a sheet into memory. *workbook.Workbook implements it.
type TableReader interface {
	ReadTable(sheet string) (*types.Table, error)
}

// RenameColumn renames column to CityLabel in place. A column already
// named CityLabel is left alone, and no other header is touched.
func RenameColumn(table *types.Table, column string) error {
	if column == "" || len(table.Headers) == 0 {
		return ErrNoColumn
	}

	idx := table.ColumnIndex(column)
	if idx == -1 {
		return fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}

	if table.Headers[idx] != CityLabel {
		table.Headers[idx] = CityLabel
	}
	return nil
}

// EnsureCSVExt appends ".csv" to paths that have no extension.
func EnsureCSVExt(path string) string {
	if path == "" || filepath.Ext(path) != "" {
		return path
	}
	return path + ".csv"
}

// DefaultOutputPath places DefaultOutputName next to the input file.
func DefaultOutputPath(inputFile string) string {
	if inputFile == "" {
		return DefaultOutputName
	}
	return filepath.Join(filepath.Dir(inputFile), DefaultOutputName)
}

// WriteCSV writes the header row followed by every data row as UTF-8
// comma-separated values, replacing outputFile if it exists. It returns
// the number of data rows written.
//
// The records go to a temporary file next to outputFile that is renamed
// over it only once fully written, so a failed write leaves any existing
// file untouched.
func WriteCSV(table *types.Table, outputFile string) (int, error) {
	if len(table.Headers) == 0 {
		return 0, ErrNoColumn
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(outputFile), ".citycsv-*.csv")
	if err != nil {
		return 0, err
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	records := make([][]string, 0, len(table.Rows)+1)
	records = append(records, table.Headers)
	records = append(records, table.Rows...)

	writer := csv.NewWriter(tmpFile)
	if err := writer.WriteAll(records); err != nil {
		tmpFile.Close()
		return 0, fmt.Errorf("failed to write csv: %w", err)
	}

	// CreateTemp opens the file 0600.
	if err := tmpFile.Chmod(outputMode); err != nil {
		tmpFile.Close()
		return 0, err
	}
	if err := tmpFile.Close(); err != nil {
		return 0, err
	}

	if err := os.Rename(tmpPath, outputFile); err != nil {
		return 0, fmt.Errorf("failed to replace %s: %w", filepath.Base(outputFile), err)
	}

	return len(table.Rows), nil
}

// Load reads sheet and renames column to CityLabel, ready for WriteCSV.
func Load(src TableReader, sheet, column string) (*types.Table, error) {
	if column == "" {
		return nil, ErrNoColumn
	}

	table, err := src.ReadTable(sheet)
	if err != nil {
		return nil, err
	}

	if err := RenameColumn(table, column); err != nil {
		return nil, err
	}
	return table, nil
}
