package workbook

import (
	"fmt"
	"io"
	"strconv"

	"github.com/yamitzky/xlrd-go/xlrd"
)

type xlsSource struct {
	book *xlrd.Book
}

func openXLS(path string) (*xlsSource, error) {
	// xlrd writes diagnostics to Logfile; the terminal belongs to the UI.
	book, err := xlrd.OpenWorkbook(path, &xlrd.OpenWorkbookOptions{
		Logfile: io.Discard,
	})
	if err != nil {
		return nil, err
	}
	return &xlsSource{book: book}, nil
}

func (s *xlsSource) SheetNames() []string {
	return s.book.SheetNames()
}

func (s *xlsSource) HeaderRow(sheet string) ([]string, error) {
	sh, err := s.book.SheetByName(sheet)
	if err != nil {
		return nil, err
	}
	if sh.NRows == 0 {
		return []string{}, nil
	}
	return trimRow(readXLSRow(sh, 0)), nil
}

// Width measures trimmed rows; NCols also counts trailing blank cells.
func (s *xlsSource) Width(sheet string) (int, error) {
	sh, err := s.book.SheetByName(sheet)
	if err != nil {
		return 0, err
	}

	width := 0
	for rowx := 0; rowx < sh.NRows; rowx++ {
		width = max(width, len(trimRow(readXLSRow(sh, rowx))))
	}
	return width, nil
}

func (s *xlsSource) Rows(sheet string) ([][]string, error) {
	sh, err := s.book.SheetByName(sheet)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, sh.NRows)
	for rowx := 0; rowx < sh.NRows; rowx++ {
		rows = append(rows, trimRow(readXLSRow(sh, rowx)))
	}
	return rows, nil
}

func (s *xlsSource) Close() error {
	s.book.ReleaseResources()
	return nil
}

func readXLSRow(sh *xlrd.Sheet, rowx int) []string {
	row := make([]string, sh.NCols)
	for colx := range row {
		row[colx] = formatXLSCell(sh.CellType(rowx, colx), sh.CellValue(rowx, colx))
	}
	return row
}

// trimRow drops trailing empty cells so xls rows match excelize's shape.
func trimRow(row []string) []string {
	end := len(row)
	for end > 0 && row[end-1] == "" {
		end--
	}
	return row[:end]
}

func formatXLSCell(ctype int, value interface{}) string {
	switch ctype {
	case xlrd.XL_CELL_EMPTY, xlrd.XL_CELL_BLANK:
		return ""
	case xlrd.XL_CELL_NUMBER:
		switch v := value.(type) {
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			return strconv.Itoa(v)
		}
	case xlrd.XL_CELL_BOOLEAN:
		switch v := value.(type) {
		case bool:
			if v {
				return "TRUE"
			}
			return "FALSE"
		case int:
			if v != 0 {
				return "TRUE"
			}
			return "FALSE"
		}
	case xlrd.XL_CELL_ERROR:
		switch v := value.(type) {
		case byte:
			if text, ok := xlrd.ErrorTextFromCode[v]; ok {
				return text
			}
		case int:
			if text, ok := xlrd.ErrorTextFromCode[byte(v)]; ok {
				return text
			}
		}
		return "#ERROR"
	}

	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}
