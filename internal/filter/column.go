// Package filter holds the row filters the table view can install.
package filter

import (
	"fmt"
	"strings"

	"github.com/magpierre/dtb/datatable"
)

// ColumnFilter keeps rows whose value in Column contains Text,
// ignoring case. Empty Text passes every row.
type ColumnFilter struct {
	Column string
	Text   string
}

var _ datatable.Filter = (*ColumnFilter)(nil)

// NewColumnFilter returns a substring filter on one named column.
func NewColumnFilter(column, text string) *ColumnFilter {
	return &ColumnFilter{Column: column, Text: text}
}

// Evaluate implements the Filter interface.
func (f *ColumnFilter) Evaluate(row []datatable.Value, columnNames []string) (bool, error) {
	idx := -1
	for i, name := range columnNames {
		if name == f.Column {
			idx = i
			break
		}
	}
	if idx < 0 || idx >= len(row) {
		return false, fmt.Errorf("%w: %s", datatable.ErrColumnNotFound, f.Column)
	}

	if f.Text == "" {
		return true, nil
	}
	v := row[idx]
	if v.IsNull {
		return false, nil
	}
	return strings.Contains(strings.ToLower(v.Formatted), strings.ToLower(f.Text)), nil
}

// Description implements the Filter interface.
func (f *ColumnFilter) Description() string {
	return fmt.Sprintf("%s contains %q", f.Column, f.Text)
}
