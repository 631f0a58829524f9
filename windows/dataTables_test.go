package windows

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/magpierre/dtb/adapters/slice"
	"github.com/magpierre/dtb/config"
	"github.com/magpierre/dtb/datatable"
	"github.com/magpierre/dtb/export"
)

func photoRecords(n int) []datatable.Record {
	records := make([]datatable.Record, n)
	for i := range records {
		records[i] = datatable.NewRecord([]string{"id", "title", "tags"}, map[string]interface{}{
			"id":    float64(i + 1),
			"title": fmt.Sprintf("photo %02d", i+1),
			"tags":  "a, b",
		})
	}
	return records
}

func newTestDataTables(t *testing.T, n int) (*DataTables, *string) {
	t.Helper()
	test.NewTempApp(t)

	src, err := slice.NewFromRecords(photoRecords(n))
	require.NoError(t, err)
	model, err := datatable.NewTableModel(src)
	require.NoError(t, err)

	status := new(string)
	d := NewDataTables(model, "title", 120, zap.NewNop(), func(s string) { *status = s })
	return d, status
}

func TestDataTables_InitialState(t *testing.T) {
	d, status := newTestDataTables(t, 25)

	assert.Equal(t, "Showing 1 to 10 of 25 entries", d.summary.Text)
	assert.Equal(t, "of 3", d.pageCountLabel.Text)
	assert.Equal(t, "10", d.sizeEntry.Text)
	assert.Equal(t, "1", d.pageEntry.Text)
	assert.Equal(t, "3 columns x 25 rows", *status)

	rows, cols := d.table.Length()
	assert.Equal(t, 10, rows)
	assert.Equal(t, 3, cols)
}

func TestDataTables_NextAndPrevButtons(t *testing.T) {
	d, _ := newTestDataTables(t, 25)

	test.Tap(d.nextButton)
	assert.Equal(t, "2", d.pageEntry.Text)
	assert.Equal(t, "Showing 11 to 20 of 25 entries", d.summary.Text)

	test.Tap(d.prevButton)
	test.Tap(d.prevButton)
	assert.Equal(t, "1", d.pageEntry.Text)
	assert.Equal(t, "Showing 1 to 10 of 25 entries", d.summary.Text)
}

func TestDataTables_HeaderSort(t *testing.T) {
	d, status := newTestDataTables(t, 25)

	d.onHeaderTapped(0)
	assert.Equal(t, "id ▲", d.headerText(0))
	assert.Equal(t, "title", d.headerText(1))
	assert.Contains(t, *status, "Sorted: id ↑")

	d.onHeaderTapped(0)
	assert.Equal(t, "id ▼", d.headerText(0))
	cell, err := d.model.VisibleCell(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "25", cell.Formatted)

	d.onHeaderTapped(0)
	assert.Equal(t, "id", d.headerText(0))
	assert.NotContains(t, *status, "Sorted")
}

func TestDataTables_PageSizeEntry(t *testing.T) {
	d, _ := newTestDataTables(t, 25)

	d.onPageSizeChanged("5")
	assert.Equal(t, "of 5", d.pageCountLabel.Text)
	assert.Equal(t, "Showing 1 to 5 of 25 entries", d.summary.Text)

	d.onPageSizeChanged("0")
	assert.Equal(t, "0", d.sizeEntry.Text)
	assert.Equal(t, "of 5", d.pageCountLabel.Text)

	d.onPageSizeChanged("500")
	assert.Equal(t, "25", d.sizeEntry.Text)
	assert.Equal(t, "of 1", d.pageCountLabel.Text)
}

func TestDataTables_PageEntry(t *testing.T) {
	d, _ := newTestDataTables(t, 25)

	d.onPageChanged("3")
	assert.Equal(t, "Showing 21 to 25 of 25 entries", d.summary.Text)

	d.onPageChanged("12")
	assert.Equal(t, "3", d.pageEntry.Text)
}

func TestDataTables_Filter(t *testing.T) {
	d, status := newTestDataTables(t, 25)

	d.onFilterChanged("photo 07")
	assert.Equal(t, "Showing 1 to 1 of 1 entries", d.summary.Text)
	assert.Equal(t, "3 columns x 1/25 rows | Filter: title contains \"photo 07\"", *status)

	rows, _ := d.table.Length()
	assert.Equal(t, 1, rows)

	d.onFilterChanged("")
	assert.Equal(t, "Showing 1 to 10 of 25 entries", d.summary.Text)
}

func TestDataTables_SyncingIgnoresEntryEvents(t *testing.T) {
	d, _ := newTestDataTables(t, 25)

	d.syncing = true
	d.onPageSizeChanged("5")
	d.onPageChanged("2")
	d.onFilterChanged("photo")
	d.syncing = false

	assert.Equal(t, 10, d.model.PageSize())
	assert.Equal(t, 0, d.model.PageIndex())
	assert.Nil(t, d.model.Filter())
}

func TestDataTables_EmptyDataset(t *testing.T) {
	d, status := newTestDataTables(t, 0)

	assert.Equal(t, "Showing 0 to 0 of 0 entries", d.summary.Text)
	assert.Equal(t, "of 0", d.pageCountLabel.Text)
	assert.Equal(t, "0 columns x 0 rows", *status)

	test.Tap(d.nextButton)
	test.Tap(d.prevButton)
	rows, _ := d.table.Length()
	assert.Equal(t, 0, rows)
}

func TestExportView(t *testing.T) {
	d, _ := newTestDataTables(t, 25)
	d.onFilterChanged("photo 1")
	d.onHeaderTapped(0)
	d.onHeaderTapped(0)

	var buf bytes.Buffer
	require.NoError(t, exportView(&buf, d.model, export.FormatCSV))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 11)
	assert.Equal(t, "id,title,tags", lines[0])
	assert.Equal(t, `19,photo 19,"a, b"`, lines[1])
	assert.Equal(t, `10,photo 10,"a, b"`, lines[10])
}

func TestExportView_NoRows(t *testing.T) {
	d, _ := newTestDataTables(t, 25)
	d.onFilterChanged("nothing")

	var buf bytes.Buffer
	assert.ErrorIs(t, exportView(&buf, d.model, export.FormatJSON), export.ErrNoRows)
}

func newTestMainWindow(t *testing.T) *MainWindow {
	t.Helper()
	a := test.NewTempApp(t)
	cfg, err := config.New(viper.New())
	require.NoError(t, err)

	mw, err := NewMainWindow(a, cfg, zap.NewNop())
	require.NoError(t, err)
	return mw
}

func TestMainWindow_SetDataset(t *testing.T) {
	mw := newTestMainWindow(t)
	assert.Nil(t, mw.DataTables())
	assert.Equal(t, "Mini Project - DataTables", mw.Window().Title())

	require.NoError(t, mw.SetDataset(photoRecords(12)))
	require.NotNil(t, mw.DataTables())
	assert.Equal(t, "3 columns x 12 rows", mw.statusBar.Text)
	assert.Len(t, mw.body.Objects, 1)
	assert.Equal(t, 2, mw.DataTables().Coordinator().PageCount())
}

func TestMainWindow_ApplyFetchResult(t *testing.T) {
	mw := newTestMainWindow(t)

	mw.applyFetchResult(nil, errors.New("connection refused"))
	assert.Equal(t, "Failed to load data", mw.statusBar.Text)
	assert.Nil(t, mw.DataTables())

	mw.applyFetchResult([]datatable.Record{}, nil)
	require.NotNil(t, mw.DataTables())
	assert.Equal(t, "Showing 0 to 0 of 0 entries", mw.DataTables().summary.Text)
}

func TestMainWindow_ClosedDropsResult(t *testing.T) {
	mw := newTestMainWindow(t)
	mw.Window().Close()

	mw.applyFetchResult(photoRecords(3), nil)
	assert.Nil(t, mw.DataTables())
}

func TestCreateTimeoutContext(t *testing.T) {
	ctx, cancel := createTimeoutContext(0)
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.False(t, deadline.IsZero())
}
