package datatable

import "fmt"

// DataSource provides read-only access to tabular data.
// All methods return errors rather than panic.
type DataSource interface {
	// RowCount returns the total number of rows in the data source.
	RowCount() int

	// ColumnCount returns the total number of columns in the data source.
	ColumnCount() int

	// ColumnName returns the name of the column at the given index.
	// Returns ErrInvalidColumn if col is out of range.
	ColumnName(col int) (string, error)

	// ColumnType returns the data type of the column at the given index.
	// Returns ErrInvalidColumn if col is out of range.
	ColumnType(col int) (DataType, error)

	// Cell returns the value at the specified row and column.
	Cell(row, col int) (Value, error)

	// Row returns all values for the specified row.
	Row(row int) ([]Value, error)
}

// ColumnNames lists every column name of src in order.
func ColumnNames(src DataSource) ([]string, error) {
	names := make([]string, src.ColumnCount())
	for i := range names {
		name, err := src.ColumnName(i)
		if err != nil {
			return nil, err
		}
		names[i] = name
	}
	return names, nil
}

// ColumnIndex returns the index of the column called name.
func ColumnIndex(src DataSource, name string) (int, error) {
	for i := 0; i < src.ColumnCount(); i++ {
		n, err := src.ColumnName(i)
		if err != nil {
			return -1, err
		}
		if n == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
}
