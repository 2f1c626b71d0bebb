package workbook

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat indicates the file extension is not one we can read.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// ErrSheetNotFound indicates the workbook has no sheet with the requested name.
var ErrSheetNotFound = errors.New("sheet not found")

// SheetError reports a failure while reading a single sheet.
type SheetError struct {
	Sheet string
	Op    string // "read header", "read rows"
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("%s of sheet %q: %v", e.Op, e.Sheet, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

func newSheetError(sheet, op string, err error) *SheetError {
	return &SheetError{
		Sheet: sheet,
		Op:    op,
		Err:   err,
	}
}
