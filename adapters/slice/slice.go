// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package slice adapts in-memory records to a datatable.DataSource.
package slice

import (
	"fmt"

	"github.com/magpierre/dtb/datatable"
)

// Source is a DataSource over a fixed set of records.
type Source struct {
	columns []string
	types   []datatable.DataType
	rows    [][]datatable.Value
}

var _ datatable.DataSource = (*Source)(nil)

// NewFromRecords builds a Source whose columns are the fields of the first
// record, in that record's order. Fields missing from later records become
// null cells and fields the first record lacks are not shown.
// A column's type covers every non-null value in it: ints mixed with floats
// give TypeFloat, any other mix gives TypeString. A column with no values is
// TypeString.
// An empty slice yields a Source with no columns and no rows.
func NewFromRecords(records []datatable.Record) (*Source, error) {
	s := &Source{}
	if len(records) == 0 {
		return s, nil
	}

	first := records[0]
	s.columns = append([]string(nil), first.Fields...)
	for _, name := range s.columns {
		if _, ok := first.Get(name); !ok {
			return nil, fmt.Errorf("record 0 lists field %q without a value", name)
		}
	}

	s.types = make([]datatable.DataType, len(s.columns))
	seen := make([]bool, len(s.columns))
	s.rows = make([][]datatable.Value, len(records))
	for r, rec := range records {
		row := make([]datatable.Value, len(s.columns))
		for c, name := range s.columns {
			raw, ok := rec.Get(name)
			if !ok || raw == nil {
				row[c] = datatable.Value{IsNull: true}
				continue
			}
			row[c] = toValue(raw)
			if !seen[c] {
				s.types[c], seen[c] = row[c].Type, true
			} else {
				s.types[c] = widen(s.types[c], row[c].Type)
			}
		}
		s.rows[r] = row
	}

	for c := range s.columns {
		if !seen[c] {
			s.types[c] = datatable.TypeString
		}
	}
	for _, row := range s.rows {
		for c := range row {
			if row[c].IsNull {
				row[c] = datatable.NewNullValue(s.types[c])
			}
		}
	}
	return s, nil
}

// widen returns the narrowest type that holds values of both a and b.
func widen(a, b datatable.DataType) datatable.DataType {
	switch {
	case a == b:
		return a
	case a.IsNumeric() && b.IsNumeric():
		return datatable.TypeFloat
	}
	return datatable.TypeString
}

func toValue(raw interface{}) datatable.Value {
	t := datatable.TypeOf(raw)
	if f, ok := raw.(float64); ok && t == datatable.TypeInt {
		return datatable.NewValue(int64(f), t)
	}
	return datatable.NewValue(raw, t)
}

// RowCount implements datatable.DataSource.
func (s *Source) RowCount() int { return len(s.rows) }

// ColumnCount implements datatable.DataSource.
func (s *Source) ColumnCount() int { return len(s.columns) }

// ColumnName implements datatable.DataSource.
func (s *Source) ColumnName(col int) (string, error) {
	if col < 0 || col >= len(s.columns) {
		return "", fmt.Errorf("%w: %d", datatable.ErrInvalidColumn, col)
	}
	return s.columns[col], nil
}

// ColumnType implements datatable.DataSource.
func (s *Source) ColumnType(col int) (datatable.DataType, error) {
	if col < 0 || col >= len(s.types) {
		return datatable.TypeString, fmt.Errorf("%w: %d", datatable.ErrInvalidColumn, col)
	}
	return s.types[col], nil
}

// Cell implements datatable.DataSource.
func (s *Source) Cell(row, col int) (datatable.Value, error) {
	if row < 0 || row >= len(s.rows) {
		return datatable.Value{}, fmt.Errorf("%w: %d", datatable.ErrInvalidRow, row)
	}
	if col < 0 || col >= len(s.columns) {
		return datatable.Value{}, fmt.Errorf("%w: %d", datatable.ErrInvalidColumn, col)
	}
	return s.rows[row][col], nil
}

// Row implements datatable.DataSource.
func (s *Source) Row(row int) ([]datatable.Value, error) {
	if row < 0 || row >= len(s.rows) {
		return nil, fmt.Errorf("%w: %d", datatable.ErrInvalidRow, row)
	}
	return s.rows[row], nil
}
