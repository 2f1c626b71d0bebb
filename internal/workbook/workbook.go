// Package workbook reads sheet names, header rows and full sheets from
// .xlsx and .xls files behind one type.
package workbook

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/nconklindev/citycsv/internal/types"
)

// Extensions lists the file extensions Open accepts.
var Extensions = []string{".xlsx", ".xls"}

// PickerTypes expands Extensions into every upper/lower case spelling, for
// suffix matchers that compare case-sensitively.
func PickerTypes() []string {
	var out []string
	for _, ext := range Extensions {
		out = append(out, caseVariants(ext)...)
	}
	return out
}

func caseVariants(s string) []string {
	variants := []string{""}
	for _, r := range s {
		lower, upper := unicode.ToLower(r), unicode.ToUpper(r)
		next := make([]string, 0, len(variants)*2)
		for _, v := range variants {
			next = append(next, v+string(lower))
			if upper != lower {
				next = append(next, v+string(upper))
			}
		}
		variants = next
	}
	return variants
}

// source is implemented by each file-format backend.
type source interface {
	SheetNames() []string
	HeaderRow(sheet string) ([]string, error)
	// Width is the length of the longest row in sheet.
	Width(sheet string) (int, error)
	Rows(sheet string) ([][]string, error)
	Close() error
}

type Workbook struct {
	src    source
	sheets []string
}

// Open opens the spreadsheet at path, choosing the reader by extension.
// The caller must Close the returned Workbook.
func Open(path string) (*Workbook, error) {
	var (
		src source
		err error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		src, err = openXLSX(path)
	case ".xls":
		src, err = openXLS(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}

	return &Workbook{
		src:    src,
		sheets: src.SheetNames(),
	}, nil
}

// SheetNames returns sheet names in file order.
func (w *Workbook) SheetNames() []string {
	return slices.Clone(w.sheets)
}

// Headers returns the normalized header row of sheet, padded to the widest
// row so it matches ReadTable. An empty sheet yields an empty slice and no
// error.
func (w *Workbook) Headers(sheet string) ([]string, error) {
	if err := w.checkSheet(sheet); err != nil {
		return nil, err
	}

	raw, err := w.src.HeaderRow(sheet)
	if err != nil {
		return nil, newSheetError(sheet, "read header", err)
	}

	width, err := w.src.Width(sheet)
	if err != nil {
		return nil, newSheetError(sheet, "measure", err)
	}

	return NormalizeHeaders(raw, width), nil
}

// ReadTable loads the whole sheet. The header row becomes Table.Headers
// and every following row is padded to the same width.
func (w *Workbook) ReadTable(sheet string) (*types.Table, error) {
	if err := w.checkSheet(sheet); err != nil {
		return nil, err
	}

	rows, err := w.src.Rows(sheet)
	if err != nil {
		return nil, newSheetError(sheet, "read rows", err)
	}

	if len(rows) == 0 {
		return &types.Table{}, nil
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	table := &types.Table{
		Headers: NormalizeHeaders(rows[0], width),
		Rows:    make([][]string, 0, len(rows)-1),
	}
	for _, row := range rows[1:] {
		padded := make([]string, width)
		copy(padded, row)
		table.Rows = append(table.Rows, padded)
	}

	return table, nil
}

func (w *Workbook) Close() error {
	return w.src.Close()
}

func (w *Workbook) checkSheet(sheet string) error {
	if !slices.Contains(w.sheets, sheet) {
		return newSheetError(sheet, "open", ErrSheetNotFound)
	}
	return nil
}

// NormalizeHeaders pads raw to width and makes every name non-empty and
// unique: a blank cell at index i becomes "Unnamed: i" and a repeated name
// gets a ".N" suffix, N counting from 1.
func NormalizeHeaders(raw []string, width int) []string {
	width = max(width, len(raw))
	headers := make([]string, width)
	seen := make(map[string]int, width)

	for i := range headers {
		name := ""
		if i < len(raw) {
			name = raw[i]
		}
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}

		base := name
		for seen[name] > 0 {
			name = base + "." + strconv.Itoa(seen[base])
			seen[base]++
		}
		seen[name]++
		headers[i] = name
	}

	return headers
}
