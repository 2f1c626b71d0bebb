package types

type ConversionResult struct {
	InputFile   string
	OutputFile  string
	Sheet       string
	CityColumn  string
	Columns     []string
	RowsWritten int
}

// Table is a sheet loaded into memory: one header per column and every
// row padded to len(Headers).
type Table struct {
	Headers []string
	Rows    [][]string
}

// ColumnIndex returns the position of the named header, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}
