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

package windows

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/magpierre/dtb/datatable"
	"github.com/magpierre/dtb/internal/coordinator"
)

const (
	sortUpMarker   = " ▲"
	sortDownMarker = " ▼"
)

// DataTables renders one dataset: column headers that cycle the sort,
// the current page of rows, the page-size and search boxes, and the
// prev/page/next footer.
type DataTables struct {
	coord  *coordinator.Coordinator
	model  *datatable.TableModel
	logger *zap.Logger

	table          *widget.Table
	sizeEntry      *widget.Entry
	pageEntry      *widget.Entry
	filterEntry    *widget.Entry
	summary        *widget.Label
	pageCountLabel *widget.Label
	prevButton     *widget.Button
	nextButton     *widget.Button
	content        fyne.CanvasObject

	// syncing is set while control text is written back from the
	// coordinator so the entries' OnChanged handlers ignore it.
	syncing        bool
	statusCallback func(string)
}

// NewDataTables builds the view over model. statusCallback receives a one
// line summary after every change and may be nil.
func NewDataTables(model *datatable.TableModel, filterColumn string, columnWidth float32, logger *zap.Logger, statusCallback func(string)) *DataTables {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &DataTables{
		coord:          coordinator.New(model, filterColumn, logger),
		model:          model,
		logger:         logger,
		statusCallback: statusCallback,
	}
	d.createUI(columnWidth)
	d.refresh()
	return d
}

// Content returns the root canvas object of the view.
func (d *DataTables) Content() fyne.CanvasObject {
	return d.content
}

// Coordinator exposes the coordinator driving the view.
func (d *DataTables) Coordinator() *coordinator.Coordinator {
	return d.coord
}

func (d *DataTables) createUI(columnWidth float32) {
	d.table = widget.NewTable(
		func() (int, int) {
			return len(d.coord.View().Rows), d.model.OriginalColumnCount()
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			cell, err := d.model.VisibleCell(id.Row, id.Col)
			if err != nil {
				label.SetText("")
				return
			}
			label.SetText(cell.Formatted)
		},
	)
	d.table.ShowHeaderRow = true
	d.table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton("", nil)
	}
	d.table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		button := o.(*widget.Button)
		col := id.Col
		button.SetText(d.headerText(col))
		button.OnTapped = func() {
			d.onHeaderTapped(col)
		}
	}
	for i := 0; i < d.model.OriginalColumnCount(); i++ {
		d.table.SetColumnWidth(i, columnWidth)
	}

	d.sizeEntry = widget.NewEntry()
	d.sizeEntry.OnChanged = d.onPageSizeChanged

	d.pageEntry = widget.NewEntry()
	d.pageEntry.OnChanged = d.onPageChanged

	d.filterEntry = widget.NewEntry()
	d.filterEntry.SetPlaceHolder("Search " + d.coord.FilterColumn())
	d.filterEntry.OnChanged = d.onFilterChanged

	d.prevButton = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
		d.onNavigate(coordinator.Prev)
	})
	d.nextButton = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
		d.onNavigate(coordinator.Next)
	})

	d.summary = widget.NewLabel("")
	d.pageCountLabel = widget.NewLabel("")

	numberBox := fyne.NewSize(70, d.sizeEntry.MinSize().Height)
	top := container.NewBorder(nil, nil,
		container.NewHBox(
			widget.NewLabel("Show"),
			container.NewGridWrap(numberBox, d.sizeEntry),
			widget.NewLabel("entries per page"),
		),
		container.NewHBox(
			widget.NewLabel(fmt.Sprintf("Search %s:", d.coord.FilterColumn())),
			container.NewGridWrap(fyne.NewSize(220, numberBox.Height), d.filterEntry),
		),
	)

	bottom := container.NewBorder(nil, nil,
		d.summary,
		container.NewHBox(
			d.prevButton,
			widget.NewLabel("Page"),
			container.NewGridWrap(numberBox, d.pageEntry),
			d.pageCountLabel,
			d.nextButton,
		),
	)

	d.content = container.NewBorder(top, bottom, nil, nil, d.table)
}

func (d *DataTables) headerText(col int) string {
	name, err := d.model.VisibleColumnName(col)
	if err != nil {
		return ""
	}
	switch d.coord.SortState().DirectionOf(col) {
	case datatable.SortAscending:
		return name + sortUpMarker
	case datatable.SortDescending:
		return name + sortDownMarker
	}
	return name
}

func (d *DataTables) onHeaderTapped(col int) {
	d.coord.OnSortToggle(col)
	d.refresh()
}

func (d *DataTables) onPageSizeChanged(text string) {
	if d.syncing {
		return
	}
	d.coord.SetPageSizeText(text)
	d.refresh()
}

func (d *DataTables) onPageChanged(text string) {
	if d.syncing {
		return
	}
	d.coord.SetPageText(text)
	d.refresh()
}

func (d *DataTables) onFilterChanged(text string) {
	if d.syncing {
		return
	}
	d.coord.SetTitleFilter(text)
	d.refresh()
}

func (d *DataTables) onNavigate(nav coordinator.Nav) {
	d.coord.SetPage(nav)
	d.refresh()
}

// refresh writes the coordinator state back into the controls and redraws
// the table.
func (d *DataTables) refresh() {
	d.syncing = true
	setIfChanged(d.sizeEntry, strconv.Itoa(d.coord.SizeInput()))
	setIfChanged(d.pageEntry, strconv.Itoa(d.coord.CurrentPage()))
	setIfChanged(d.filterEntry, d.coord.FilterText())
	d.syncing = false

	d.summary.SetText(d.coord.Summary())
	d.pageCountLabel.SetText("of " + humanize.Comma(int64(d.coord.PageCount())))
	d.table.Refresh()

	if d.statusCallback != nil {
		d.statusCallback(d.statusText())
	}
}

func setIfChanged(e *widget.Entry, text string) {
	if e.Text != text {
		e.SetText(text)
	}
}

// statusText describes the table for the status bar.
func (d *DataTables) statusText() string {
	total := d.model.OriginalRowCount()
	filtered := d.model.FilteredRowCount()
	cols := d.model.OriginalColumnCount()

	var text string
	if filtered != total {
		text = fmt.Sprintf("%d columns x %s/%s rows", cols, humanize.Comma(int64(filtered)), humanize.Comma(int64(total)))
	} else {
		text = fmt.Sprintf("%d columns x %s rows", cols, humanize.Comma(int64(total)))
	}

	sortState := d.coord.SortState()
	if sortState.IsSorted() {
		colName, _ := d.model.VisibleColumnName(sortState.Column)
		direction := "↑"
		if sortState.Direction == datatable.SortDescending {
			direction = "↓"
		}
		text += fmt.Sprintf(" | Sorted: %s %s", colName, direction)
	}
	if f := d.model.Filter(); f != nil {
		text += " | Filter: " + f.Description()
	}
	return text
}
