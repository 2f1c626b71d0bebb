package workbook

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/nconklindev/citycsv/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yamitzky/xlrd-go/xlrd"
)

func TestOpen_SheetNamesInFileOrder(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteXLSX(t, dir, "multi.xlsx",
		testkit.Sheet{Name: "Zeta", Rows: [][]string{{"A"}}},
		testkit.Sheet{Name: "Alpha", Rows: [][]string{{"B"}}},
		testkit.Sheet{Name: "城市表", Rows: [][]string{{"C"}}},
	)

	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Zeta", "Alpha", "城市表"}, wb.SheetNames())
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"Text file renamed to xlsx", testkit.WriteFile(t, dir, "fake.xlsx", "city,population\n"), nil},
		{"Text file renamed to xls", testkit.WriteFile(t, dir, "fake.xls", "city,population\n"), nil},
		{"Unsupported extension", testkit.WriteFile(t, dir, "data.csv", "a,b\n"), ErrUnsupportedFormat},
		{"Missing file", filepath.Join(dir, "missing.xlsx"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb, err := Open(tt.path)
			require.Error(t, err)
			assert.Nil(t, wb)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestHeaders(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteXLSX(t, dir, "data.xlsx",
		testkit.Sheet{Name: "Sheet1", Rows: [][]string{
			{"City", "Population"},
			{"Shanghai", "24870895"},
		}},
		testkit.Sheet{Name: "Empty"},
	)

	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	headers, err := wb.Headers("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, []string{"City", "Population"}, headers)

	headers, err = wb.Headers("Empty")
	require.NoError(t, err)
	assert.Empty(t, headers)

	_, err = wb.Headers("Nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSheetNotFound)

	var sheetErr *SheetError
	require.True(t, errors.As(err, &sheetErr))
	assert.Equal(t, "Nope", sheetErr.Sheet)
}

func TestReadTable(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteXLSX(t, dir, "data.xlsx", testkit.Sheet{
		Name: "Sheet1",
		Rows: [][]string{
			{"City", "Population"},
			{"Shanghai", "24870895"},
			{"Lhasa"},
			{"Xi'an", "12952907", "extra"},
		},
	})

	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	table, err := wb.ReadTable("Sheet1")
	require.NoError(t, err)

	assert.Equal(t, []string{"City", "Population", "Unnamed: 2"}, table.Headers)
	assert.Equal(t, [][]string{
		{"Shanghai", "24870895", ""},
		{"Lhasa", "", ""},
		{"Xi'an", "12952907", "extra"},
	}, table.Rows)
}

func TestHeaders_MatchReadTableOnRaggedSheet(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteXLSX(t, dir, "ragged.xlsx", testkit.Sheet{
		Name: "Sheet1",
		Rows: [][]string{
			{"City"},
			{"Shanghai", "24870895"},
		},
	})

	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	headers, err := wb.Headers("Sheet1")
	require.NoError(t, err)
	table, err := wb.ReadTable("Sheet1")
	require.NoError(t, err)

	assert.Equal(t, []string{"City", "Unnamed: 1"}, headers)
	assert.Equal(t, table.Headers, headers)
}

func TestXLS(t *testing.T) {
	// ragged.xls: Sheet1 holds five rows of 3, 2, 1, 4 and 4 cells, the last
	// with a gap; Sheet2 and Sheet3 are empty.
	path := filepath.Join("testdata", "ragged.xls")

	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Sheet1", "Sheet2", "Sheet3"}, wb.SheetNames())

	headers, err := wb.Headers("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "Unnamed: 3"}, headers)

	table, err := wb.ReadTable("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, headers, table.Headers)
	assert.Equal(t, [][]string{
		{"d", "e", "", ""},
		{"f", "", "", ""},
		{"g", "h", "I", "j"},
		{"k", "", "", "l"},
	}, table.Rows)

	headers, err = wb.Headers("Sheet2")
	require.NoError(t, err)
	assert.Empty(t, headers)

	table, err = wb.ReadTable("Sheet3")
	require.NoError(t, err)
	assert.Empty(t, table.Headers)
	assert.Empty(t, table.Rows)
}

func TestPickerTypes(t *testing.T) {
	pickerTypes := PickerTypes()

	for _, ext := range []string{".xlsx", ".XLSX", ".Xlsx", ".xls", ".XLS", ".xLs"} {
		assert.Contains(t, pickerTypes, ext)
	}
	assert.Len(t, pickerTypes, 16+8)
	assert.NotContains(t, pickerTypes, ".csv")
}

func TestReadTable_EmptySheet(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteXLSX(t, dir, "empty.xlsx", testkit.Sheet{Name: "Sheet1"})

	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	table, err := wb.ReadTable("Sheet1")
	require.NoError(t, err)
	assert.Empty(t, table.Headers)
	assert.Empty(t, table.Rows)
}

func TestNormalizeHeaders(t *testing.T) {
	tests := []struct {
		name     string
		raw      []string
		width    int
		expected []string
	}{
		{"Unchanged", []string{"City", "Population"}, 2, []string{"City", "Population"}},
		{"Blank cell", []string{"City", "", "Population"}, 3, []string{"City", "Unnamed: 1", "Population"}},
		{"Padded to width", []string{"City"}, 3, []string{"City", "Unnamed: 1", "Unnamed: 2"}},
		{"Duplicates", []string{"City", "City", "City"}, 3, []string{"City", "City.1", "City.2"}},
		{"Suffix collision", []string{"A.1", "A", "A"}, 3, []string{"A.1", "A", "A.2"}},
		{"Width smaller than row", []string{"A", "B"}, 1, []string{"A", "B"}},
		{"Empty", nil, 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeHeaders(tt.raw, tt.width))
		})
	}
}

func TestFormatXLSCell(t *testing.T) {
	tests := []struct {
		name     string
		ctype    int
		value    interface{}
		expected string
	}{
		{"Text", xlrd.XL_CELL_TEXT, "Shanghai", "Shanghai"},
		{"Integer-valued float", xlrd.XL_CELL_NUMBER, float64(42), "42"},
		{"Fraction", xlrd.XL_CELL_NUMBER, 1.5, "1.5"},
		{"Boolean", xlrd.XL_CELL_BOOLEAN, 1, "TRUE"},
		{"Empty", xlrd.XL_CELL_EMPTY, "", ""},
		{"Nil", xlrd.XL_CELL_TEXT, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatXLSCell(tt.ctype, tt.value))
		})
	}
}
