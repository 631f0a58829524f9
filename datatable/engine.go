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

package datatable

import (
	"fmt"
	"sort"
	"strings"
)

// Engine provides the sort, filter and paginate primitives the TableModel
// delegates to. Rows are indices into the DataSource; implementations must
// not modify the slices they are given.
type Engine interface {
	Sort(src DataSource, rows []int, state SortState) ([]int, error)
	Filter(src DataSource, rows []int, f Filter) ([]int, error)
	Paginate(rows []int, pageIndex, pageSize int) []int
}

// DefaultEngine is the in-memory Engine used when none is supplied.
type DefaultEngine struct{}

var _ Engine = DefaultEngine{}

// Filter returns the rows that pass f, in their original order.
// A nil filter passes every row.
func (DefaultEngine) Filter(src DataSource, rows []int, f Filter) ([]int, error) {
	if f == nil {
		return append([]int(nil), rows...), nil
	}

	names, err := ColumnNames(src)
	if err != nil {
		return nil, err
	}

	out := make([]int, 0, len(rows))
	for _, r := range rows {
		values, err := src.Row(r)
		if err != nil {
			return nil, err
		}
		ok, err := f.Evaluate(values, names)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFilter, f.Description(), err)
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// Sort orders rows by the column in state. Equal keys keep their order.
func (DefaultEngine) Sort(src DataSource, rows []int, state SortState) ([]int, error) {
	out := append([]int(nil), rows...)
	if !state.IsSorted() {
		return out, nil
	}
	if state.Column >= src.ColumnCount() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSortColumn, state.Column)
	}

	keys := make(map[int]Value, len(out))
	for _, r := range out {
		v, err := src.Cell(r, state.Column)
		if err != nil {
			return nil, err
		}
		keys[r] = v
	}

	desc := state.Direction == SortDescending
	sort.SliceStable(out, func(i, j int) bool {
		a, b := keys[out[i]], keys[out[j]]
		if desc {
			return CompareValues(b, a) < 0
		}
		return CompareValues(a, b) < 0
	})
	return out, nil
}

// Paginate returns the slice of rows that makes up page pageIndex.
// Pages outside the row range are empty.
func (DefaultEngine) Paginate(rows []int, pageIndex, pageSize int) []int {
	if pageSize <= 0 || pageIndex < 0 {
		return []int{}
	}
	start := pageIndex * pageSize
	if start >= len(rows) {
		return []int{}
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return append([]int(nil), rows[start:end]...)
}

// CompareValues orders two cell values: nulls after everything else,
// numbers numerically, bools false first, everything else by its
// case-folded display text.
func CompareValues(a, b Value) int {
	switch {
	case a.IsNull && b.IsNull:
		return 0
	case a.IsNull:
		return 1
	case b.IsNull:
		return -1
	}

	if af, ok := a.Float(); ok {
		if bf, ok := b.Float(); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}

	if ab, ok := a.Raw.(bool); ok {
		if bb, ok := b.Raw.(bool); ok {
			switch {
			case ab == bb:
				return 0
			case !ab:
				return -1
			}
			return 1
		}
	}

	return strings.Compare(strings.ToLower(a.Formatted), strings.ToLower(b.Formatted))
}
