// Package form holds the converter's form state: the chosen workbook, its
// sheet and column lists, the current selections and the status line.
//
// Resolution (opening files, reading headers) is done by the free
// functions ResolveWorkbook and ResolveColumns so it can run off the UI
// loop; the Apply methods then commit a result to State. Every selection
// on State is either empty or a member of its list.
package form

import (
	"fmt"
	"slices"

	"github.com/nconklindev/citycsv/internal/converter"
	"github.com/nconklindev/citycsv/internal/types"
	"github.com/nconklindev/citycsv/internal/workbook"

	"github.com/rs/zerolog"
)

// Opener opens a workbook by path. workbook.Open is the default.
type Opener func(path string) (*workbook.Workbook, error)

// WorkbookSelection is the outcome of resolving a newly picked file.
type WorkbookSelection struct {
	Path    string
	Sheets  []string
	Sheet   string
	Columns []string
	Column  string
}

// ColumnSelection is the outcome of resolving a newly picked sheet.
type ColumnSelection struct {
	Sheet   string
	Columns []string
	Column  string
}

type State struct {
	Path    string
	Sheets  []string
	Sheet   string
	Columns []string
	Column  string
	Status  string

	open Opener
	log  zerolog.Logger
}

func New(open Opener, log zerolog.Logger) *State {
	if open == nil {
		open = workbook.Open
	}
	return &State{
		open: open,
		log:  log,
	}
}

func (s *State) Opener() Opener {
	return s.open
}

// ResolveWorkbook opens path, lists its sheets and reads the header row of
// the first one. The workbook is closed before returning.
func ResolveWorkbook(open Opener, path string) (*WorkbookSelection, error) {
	wb, err := open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sel := &WorkbookSelection{
		Path:   path,
		Sheets: wb.SheetNames(),
	}
	if len(sel.Sheets) == 0 {
		return sel, nil
	}

	sel.Sheet = sel.Sheets[0]
	sel.Columns, err = wb.Headers(sel.Sheet)
	if err != nil {
		return nil, err
	}
	if len(sel.Columns) > 0 {
		sel.Column = sel.Columns[0]
	}

	return sel, nil
}

// ResolveColumns opens path and reads the header row of sheet.
func ResolveColumns(open Opener, path, sheet string) (*ColumnSelection, error) {
	wb, err := open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	columns, err := wb.Headers(sheet)
	if err != nil {
		return nil, err
	}

	sel := &ColumnSelection{
		Sheet:   sheet,
		Columns: columns,
	}
	if len(columns) > 0 {
		sel.Column = columns[0]
	}
	return sel, nil
}

// ApplyWorkbook replaces the workbook reference and everything derived
// from it.
func (s *State) ApplyWorkbook(sel *WorkbookSelection) {
	s.Path = sel.Path
	s.Sheets = sel.Sheets
	s.Sheet = sel.Sheet
	s.Columns = sel.Columns
	s.Column = sel.Column

	s.log.Debug().
		Str("path", sel.Path).
		Strs("sheets", sel.Sheets).
		Strs("columns", sel.Columns).
		Msg("workbook selected")
}

// ApplyColumns commits a column selection. A result for a sheet that is no
// longer in the sheet list is dropped.
func (s *State) ApplyColumns(sel *ColumnSelection) bool {
	if !slices.Contains(s.Sheets, sel.Sheet) {
		s.log.Debug().Str("sheet", sel.Sheet).Msg("stale column selection dropped")
		return false
	}

	s.Sheet = sel.Sheet
	s.Columns = sel.Columns
	s.Column = sel.Column

	s.log.Debug().
		Str("sheet", sel.Sheet).
		Strs("columns", sel.Columns).
		Msg("sheet selected")
	return true
}

// SelectColumn picks the city column from the current column list.
func (s *State) SelectColumn(column string) error {
	if !slices.Contains(s.Columns, column) {
		return fmt.Errorf("%w: %q", converter.ErrColumnNotFound, column)
	}
	s.Column = column
	return nil
}

// Prepare loads the selected sheet and renames the city column. It is
// the part of a conversion that happens before the destination is known.
func Prepare(open Opener, path, sheet, column string) (*types.Table, error) {
	if column == "" {
		return nil, converter.ErrNoColumn
	}

	wb, err := open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	return converter.Load(wb, sheet, column)
}

// Export writes a prepared table to dest and builds the result.
func Export(table *types.Table, path, sheet, column, dest string) (*types.ConversionResult, error) {
	dest = converter.EnsureCSVExt(dest)
	rows, err := converter.WriteCSV(table, dest)
	if err != nil {
		return nil, err
	}

	return &types.ConversionResult{
		InputFile:   path,
		OutputFile:  dest,
		Sheet:       sheet,
		CityColumn:  column,
		Columns:     table.Headers,
		RowsWritten: rows,
	}, nil
}

// ApplyResult records a finished conversion in the status line.
func (s *State) ApplyResult(res *types.ConversionResult) {
	s.Status = SuccessStatus(res.OutputFile)
	s.log.Info().
		Str("input", res.InputFile).
		Str("output", res.OutputFile).
		Str("sheet", res.Sheet).
		Str("column", res.CityColumn).
		Int("rows", res.RowsWritten).
		Msg("conversion complete")
}

// ReportError logs a failed user action. The UI shows the message itself.
func (s *State) ReportError(action string, err error) {
	s.log.Error().Err(err).Str("action", action).Str("path", s.Path).Msg("action failed")
}

// SuccessStatus is the status line shown after a successful export.
func SuccessStatus(dest string) string {
	return "Conversion succeeded. Saved to " + dest
}

// DefaultDestination is the path the save dialog starts with.
func (s *State) DefaultDestination() string {
	return converter.DefaultOutputPath(s.Path)
}
