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

// Package coordinator reconciles the raw values typed into the table
// controls (page size, page number, prev/next, title search, header clicks)
// with the bounds of the current dataset and forwards them to the
// TableModel.
package coordinator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/magpierre/dtb/datatable"
	"github.com/magpierre/dtb/internal/filter"
)

// DefaultFilterColumn is the column the search box filters on.
const DefaultFilterColumn = "title"

// Nav is a button-driven page move.
type Nav int

const (
	// Prev moves one page back, never before page 1.
	Prev Nav = iota
	// Next moves one page forward, never past the last page.
	Next
)

// String returns the name of the move.
func (n Nav) String() string {
	switch n {
	case Prev:
		return "prev"
	case Next:
		return "next"
	default:
		return fmt.Sprintf("unknown(%d)", int(n))
	}
}

// Coordinator holds the values shown in the table controls and keeps them
// in step with the TableModel. Page numbers are 1-based here; the model
// works with 0-based indices.
//
// A Coordinator built without a model (no dataset yet) accepts every call
// and does nothing.
type Coordinator struct {
	model        *datatable.TableModel
	filterColumn string
	logger       *zap.Logger

	currentPage int
	sizeInput   int
	filterText  string
}

// New creates a Coordinator over model. An empty filterColumn selects
// DefaultFilterColumn.
func New(model *datatable.TableModel, filterColumn string, logger *zap.Logger) *Coordinator {
	if filterColumn == "" {
		filterColumn = DefaultFilterColumn
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Coordinator{
		model:        model,
		filterColumn: filterColumn,
		logger:       logger,
		currentPage:  1,
	}
	if model != nil {
		c.sizeInput = model.PageSize()
	}
	return c
}

// HasData reports whether a dataset is attached.
func (c *Coordinator) HasData() bool {
	return c.model != nil
}

// SetPageSize clamps requested into [0, filtered row count] and applies it
// when the result is positive. A zero result leaves the page size as it
// was. The page index is not adjusted.
func (c *Coordinator) SetPageSize(requested int) {
	if c.model == nil {
		return
	}

	total := c.model.FilteredRowCount()
	switch {
	case requested < 0:
		c.sizeInput = 0
	case requested > total:
		c.sizeInput = total
	default:
		c.sizeInput = requested
	}

	if c.sizeInput > 0 {
		if err := c.model.SetPageSize(c.sizeInput); err != nil {
			c.logger.Warn("page size rejected", zap.Int("size", c.sizeInput), zap.Error(err))
		}
	}
}

// SetPageSizeText parses raw as typed into the page-size box.
// Text that is not a number counts as 0.
func (c *Coordinator) SetPageSizeText(raw string) {
	c.SetPageSize(parseNumber(raw))
}

// SetPage moves one page back or forward.
func (c *Coordinator) SetPage(nav Nav) {
	if c.model == nil {
		return
	}

	var value int
	switch nav {
	case Prev:
		value = c.currentPage - 1
		if value == 0 {
			c.currentPage = 1
			c.model.GotoPage(0)
			return
		}
	case Next:
		value = c.currentPage + 1
	default:
		c.logger.Warn("unknown page move", zap.Stringer("nav", nav))
		return
	}
	c.applyPage(value)
}

// SetPageNumber moves to the 1-based page n as typed into the page box.
// n is clamped into [0, PageCount]; 0 is accepted and shown, though the
// model stays on its current page.
func (c *Coordinator) SetPageNumber(n int) {
	if c.model == nil {
		return
	}
	c.applyPage(n)
}

// SetPageText parses raw as typed into the page box. Text that is not a
// number counts as 0.
func (c *Coordinator) SetPageText(raw string) {
	c.SetPageNumber(parseNumber(raw))
}

func (c *Coordinator) applyPage(value int) {
	pages := c.model.PageCount()
	switch {
	case value < 0:
		c.currentPage = 0
	case value > pages:
		c.currentPage = pages
	default:
		c.currentPage = value
	}
	c.model.GotoPage(c.currentPage - 1)
}

// SetTitleFilter searches the filter column for text. The new text
// replaces the previous search; empty text removes it.
func (c *Coordinator) SetTitleFilter(text string) {
	c.filterText = text
	if c.model == nil {
		return
	}
	if err := c.filterBy(c.filterColumn, text); err != nil {
		c.logger.Warn("filter not applied",
			zap.String("column", c.filterColumn),
			zap.String("text", text),
			zap.Error(err))
		return
	}
	c.currentPage = 1
}

func (c *Coordinator) filterBy(column, text string) error {
	if text == "" {
		return c.model.ClearFilter()
	}
	return c.model.SetFilter(filter.NewColumnFilter(column, text))
}

// OnSortToggle cycles the sort of column col.
func (c *Coordinator) OnSortToggle(col int) {
	if c.model == nil {
		return
	}
	if err := c.model.ToggleSort(col); err != nil {
		c.logger.Warn("sort toggle ignored", zap.Int("column", col), zap.Error(err))
		return
	}
	c.currentPage = 1
}

// OnSortToggleName cycles the sort of the column called name.
func (c *Coordinator) OnSortToggleName(name string) {
	if c.model == nil {
		return
	}
	col, err := c.model.ColumnIndex(name)
	if err != nil {
		c.logger.Warn("sort toggle ignored", zap.String("column", name), zap.Error(err))
		return
	}
	c.OnSortToggle(col)
}

// Model returns the underlying model, nil when no dataset is attached.
func (c *Coordinator) Model() *datatable.TableModel { return c.model }

// FilterColumn returns the column the search box filters on.
func (c *Coordinator) FilterColumn() string { return c.filterColumn }

// CurrentPage returns the 1-based page number shown in the page box.
func (c *Coordinator) CurrentPage() int { return c.currentPage }

// SizeInput returns the value shown in the page-size box.
func (c *Coordinator) SizeInput() int { return c.sizeInput }

// FilterText returns the value shown in the search box.
func (c *Coordinator) FilterText() string { return c.filterText }

// PageCount returns the number of pages, 0 without data.
func (c *Coordinator) PageCount() int {
	if c.model == nil {
		return 0
	}
	return c.model.PageCount()
}

// PageSize returns the effective page size.
func (c *Coordinator) PageSize() int {
	if c.model == nil {
		return 0
	}
	return c.model.PageSize()
}

// PageIndex returns the model's zero-based page index.
func (c *Coordinator) PageIndex() int {
	if c.model == nil {
		return 0
	}
	return c.model.PageIndex()
}

// SortState returns the active sort.
func (c *Coordinator) SortState() datatable.SortState {
	if c.model == nil {
		return datatable.Unsorted
	}
	return c.model.GetSortState()
}

// View returns the derived view; empty without data.
func (c *Coordinator) View() datatable.View {
	if c.model == nil {
		return datatable.View{Rows: []int{}, Filtered: []int{}}
	}
	return c.model.View()
}

// Summary describes the current page, e.g.
// "Showing 1 to 10 of 25 entries".
func (c *Coordinator) Summary() string {
	total := 0
	if c.model != nil {
		total = c.model.FilteredRowCount()
	}
	first, last := 0, 0
	if total > 0 && len(c.View().Rows) > 0 {
		size := c.model.PageSize()
		first = c.model.PageIndex()*size + 1
		last = first + size - 1
		if last > total {
			last = total
		}
	}
	return fmt.Sprintf("Showing %s to %s of %s entries",
		humanize.Comma(int64(first)), humanize.Comma(int64(last)), humanize.Comma(int64(total)))
}

// parseNumber reads a number typed into a numeric box. Fractions are
// truncated; anything unparsable is 0.
func parseNumber(raw string) int {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) {
		return 0
	}
	switch {
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int(f)
}
