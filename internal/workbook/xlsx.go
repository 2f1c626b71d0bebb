package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

type xlsxSource struct {
	file *excelize.File
}

func openXLSX(path string) (*xlsxSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return &xlsxSource{file: f}, nil
}

func (s *xlsxSource) SheetNames() []string {
	return s.file.GetSheetList()
}

// HeaderRow streams only the first row of the sheet.
func (s *xlsxSource) HeaderRow(sheet string) ([]string, error) {
	rows, err := s.file.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to open row stream: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Error(); err != nil {
			return nil, err
		}
		return []string{}, nil
	}

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}
	return columns, nil
}

// Width streams every row, keeping only the longest length.
func (s *xlsxSource) Width(sheet string) (int, error) {
	rows, err := s.file.Rows(sheet)
	if err != nil {
		return 0, fmt.Errorf("failed to open row stream: %w", err)
	}
	defer rows.Close()

	width := 0
	for rows.Next() {
		columns, err := rows.Columns()
		if err != nil {
			return 0, fmt.Errorf("failed to get columns: %w", err)
		}
		width = max(width, len(columns))
	}
	return width, rows.Error()
}

func (s *xlsxSource) Rows(sheet string) ([][]string, error) {
	return s.file.GetRows(sheet)
}

func (s *xlsxSource) Close() error {
	return s.file.Close()
}
