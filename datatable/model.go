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

import "fmt"

// TableModel owns a ViewState over a DataSource and keeps the derived View
// current. Every mutation recomputes the view and notifies listeners.
// A TableModel is not safe for concurrent use.
type TableModel struct {
	source    DataSource
	engine    Engine
	state     ViewState
	view      View
	columns   []string
	listeners []func()
}

// Option configures a TableModel.
type Option func(*TableModel)

// WithEngine replaces the DefaultEngine.
func WithEngine(e Engine) Option {
	return func(m *TableModel) {
		if e != nil {
			m.engine = e
		}
	}
}

// WithPageSize sets the initial page size. Values below one are ignored.
func WithPageSize(n int) Option {
	return func(m *TableModel) {
		if n > 0 {
			m.state.PageSize = n
		}
	}
}

// NewTableModel creates a model showing the first page of source, unsorted
// and unfiltered.
func NewTableModel(source DataSource, opts ...Option) (*TableModel, error) {
	if source == nil {
		return nil, ErrNoDataSource
	}

	columns, err := ColumnNames(source)
	if err != nil {
		return nil, err
	}

	m := &TableModel{
		source:  source,
		engine:  DefaultEngine{},
		state:   DefaultViewState(),
		columns: columns,
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.recompute(); err != nil {
		return nil, err
	}
	return m, nil
}

// OnChange registers fn to run after every successful recompute.
func (m *TableModel) OnChange(fn func()) {
	m.listeners = append(m.listeners, fn)
}

func (m *TableModel) recompute() error {
	view, err := ComputeVisibleRows(m.source, m.state, m.engine)
	if err != nil {
		return err
	}
	m.view = view
	for _, fn := range m.listeners {
		fn()
	}
	return nil
}

// apply swaps in next and recomputes, restoring the previous state if the
// new one cannot be evaluated.
func (m *TableModel) apply(next ViewState) error {
	prev := m.state
	m.state = next
	if err := m.recompute(); err != nil {
		m.state = prev
		return err
	}
	return nil
}

// State returns a copy of the current ViewState.
func (m *TableModel) State() ViewState {
	return m.state
}

// View returns the current derived view.
func (m *TableModel) View() View {
	return m.view
}

// ToggleSort advances the sort of col through None -> Ascending ->
// Descending -> None. Activating a different column clears the previous
// sort and starts the new column at Ascending. The page index returns to 0.
func (m *TableModel) ToggleSort(col int) error {
	if col < 0 || col >= len(m.columns) {
		return fmt.Errorf("%w: %d", ErrInvalidSortColumn, col)
	}

	next := m.state
	if m.state.Sort.Column == col {
		dir := m.state.Sort.Direction.Next()
		if dir == SortNone {
			next.Sort = Unsorted
		} else {
			next.Sort = SortState{Column: col, Direction: dir}
		}
	} else {
		next.Sort = SortState{Column: col, Direction: SortAscending}
	}
	next.PageIndex = 0
	return m.apply(next)
}

// SortByName toggles the sort of the column called name.
func (m *TableModel) SortByName(name string) error {
	col, err := m.ColumnIndex(name)
	if err != nil {
		return err
	}
	return m.ToggleSort(col)
}

// GetSortState returns the active sort.
func (m *TableModel) GetSortState() SortState {
	return m.state.Sort
}

// SetFilter replaces the active filter and returns to the first page.
// If f cannot be evaluated the previous filter stays in place.
func (m *TableModel) SetFilter(f Filter) error {
	next := m.state
	next.Filter = f
	next.PageIndex = 0
	return m.apply(next)
}

// ClearFilter removes the active filter.
func (m *TableModel) ClearFilter() error {
	return m.SetFilter(nil)
}

// Filter returns the active filter, or nil.
func (m *TableModel) Filter() Filter {
	return m.state.Filter
}

// SetPageSize changes the number of rows per page. The page index is left
// as it is, even if it now points past the last page.
func (m *TableModel) SetPageSize(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, n)
	}
	next := m.state
	next.PageSize = n
	return m.apply(next)
}

// GotoPage moves to the zero-based page index. Indices outside
// [0, PageCount) are ignored and GotoPage reports false.
func (m *TableModel) GotoPage(index int) bool {
	if index < 0 || index >= m.view.PageCount {
		return false
	}
	next := m.state
	next.PageIndex = index
	return m.apply(next) == nil
}

// PageIndex returns the zero-based index of the current page.
func (m *TableModel) PageIndex() int { return m.state.PageIndex }

// PageSize returns the number of rows per page.
func (m *TableModel) PageSize() int { return m.state.PageSize }

// PageCount returns the number of pages in the filtered view.
func (m *TableModel) PageCount() int { return m.view.PageCount }

// FilteredRowCount returns the number of rows that pass the filter.
func (m *TableModel) FilteredRowCount() int { return m.view.FilteredCount() }

// OriginalRowCount returns the number of rows in the source.
func (m *TableModel) OriginalRowCount() int { return m.source.RowCount() }

// OriginalColumnCount returns the number of columns in the source.
func (m *TableModel) OriginalColumnCount() int { return len(m.columns) }

// VisibleRowCount returns the number of rows on the current page.
func (m *TableModel) VisibleRowCount() int { return len(m.view.Rows) }

// VisibleColumnName returns the name of column col.
func (m *TableModel) VisibleColumnName(col int) (string, error) {
	if col < 0 || col >= len(m.columns) {
		return "", fmt.Errorf("%w: %d", ErrInvalidColumn, col)
	}
	return m.columns[col], nil
}

// ColumnIndex returns the index of the column called name.
func (m *TableModel) ColumnIndex(name string) (int, error) {
	return ColumnIndex(m.source, name)
}

// ColumnNames returns the column names in display order.
func (m *TableModel) ColumnNames() []string {
	return append([]string(nil), m.columns...)
}

// VisibleRow returns the values of the row-th row on the current page.
func (m *TableModel) VisibleRow(row int) ([]Value, error) {
	if row < 0 || row >= len(m.view.Rows) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRow, row)
	}
	return m.source.Row(m.view.Rows[row])
}

// VisibleCell returns one cell of the current page.
func (m *TableModel) VisibleCell(row, col int) (Value, error) {
	if row < 0 || row >= len(m.view.Rows) {
		return Value{}, fmt.Errorf("%w: %d", ErrInvalidRow, row)
	}
	return m.source.Cell(m.view.Rows[row], col)
}

// GetVisibleRowIndices returns the source indices of the current page.
func (m *TableModel) GetVisibleRowIndices() []int {
	return append([]int(nil), m.view.Rows...)
}

// GetFilteredRowIndices returns the source indices of every filtered row
// in sorted order.
func (m *TableModel) GetFilteredRowIndices() []int {
	return append([]int(nil), m.view.Filtered...)
}

// Source returns the underlying data source.
func (m *TableModel) Source() DataSource {
	return m.source
}
