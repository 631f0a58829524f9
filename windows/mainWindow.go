package windows

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/magpierre/dtb/adapters/slice"
	"github.com/magpierre/dtb/config"
	"github.com/magpierre/dtb/datatable"
	"github.com/magpierre/dtb/export"
	"github.com/magpierre/dtb/internal/source"
)

// MainWindow hosts the data table and owns the single dataset fetch.
type MainWindow struct {
	a       fyne.App
	w       fyne.Window
	cfg     *config.Config
	logger  *zap.Logger
	fetcher *source.Fetcher

	body       *fyne.Container
	statusBar  *widget.Label
	dataTables *DataTables

	// closed is only touched on the UI goroutine.
	closed bool
}

// NewMainWindow builds the window. Nothing is fetched until Load.
func NewMainWindow(a fyne.App, cfg *config.Config, logger *zap.Logger) (*MainWindow, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fetcher, err := source.NewFetcher(cfg.FetcherConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create fetcher: %w", err)
	}

	t := &MainWindow{
		a:       a,
		cfg:     cfg,
		logger:  logger,
		fetcher: fetcher,
	}
	t.a.Settings().SetTheme(&CustomTheme{})
	t.w = t.a.NewWindow(cfg.Window.Title)
	t.w.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	t.w.SetOnClosed(func() {
		t.closed = true
	})

	t.createUI()
	return t, nil
}

func (t *MainWindow) createUI() {
	heading := widget.NewLabelWithStyle(t.cfg.Window.Title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			t.exportData(nil)
		}),
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), func() {
			if t.dataTables != nil {
				t.dataTables.refresh()
			}
		}),
	)

	exportItems := make([]*fyne.MenuItem, 0, len(export.Formats))
	for _, f := range export.Formats {
		format := f
		exportItems = append(exportItems, fyne.NewMenuItem("Export as "+format.String()+"...", func() {
			t.exportData(&format)
		}))
	}
	t.w.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("File", exportItems...)))

	t.statusBar = widget.NewLabel("Ready")
	t.statusBar.TextStyle = fyne.TextStyle{Italic: true}

	t.body = container.NewStack()

	top := container.NewVBox(toolbar, heading)
	t.w.SetContent(container.NewBorder(top, container.NewHBox(t.statusBar), nil, nil, t.body))
}

// Window returns the underlying fyne window.
func (t *MainWindow) Window() fyne.Window {
	return t.w
}

// DataTables returns the table view, nil until a dataset has arrived.
func (t *MainWindow) DataTables() *DataTables {
	return t.dataTables
}

// SetStatus updates the status bar message.
func (t *MainWindow) SetStatus(message string) {
	if t.statusBar != nil {
		t.statusBar.SetText(message)
	}
}

// Load fetches the dataset once in the background. The result is applied
// on the UI goroutine; if the window has been closed by then it is
// dropped. A failed fetch is logged and leaves the table empty.
func (t *MainWindow) Load() {
	t.SetStatus("Loading " + t.cfg.Source.URL)
	go func() {
		ctx, cancel := createTimeoutContext(t.cfg.Source.Timeout)
		defer cancel()

		records, err := t.fetcher.Fetch(ctx)
		fyne.Do(func() {
			t.applyFetchResult(records, err)
		})
	}()
}

func (t *MainWindow) applyFetchResult(records []datatable.Record, err error) {
	if t.closed {
		t.logger.Debug("window closed before dataset arrived")
		return
	}
	if err != nil {
		t.logger.Error("failed to load dataset",
			zap.String("url", t.cfg.Source.URL),
			zap.Error(err))
		t.SetStatus("Failed to load data")
		return
	}
	if err := t.SetDataset(records); err != nil {
		t.logger.Error("failed to display dataset", zap.Error(err))
		t.SetStatus("Failed to display data")
	}
}

// SetDataset replaces whatever the window shows with a table over records.
func (t *MainWindow) SetDataset(records []datatable.Record) error {
	src, err := slice.NewFromRecords(records)
	if err != nil {
		return fmt.Errorf("failed to create data source: %w", err)
	}
	model, err := datatable.NewTableModel(src, datatable.WithPageSize(t.cfg.Table.PageSize))
	if err != nil {
		return fmt.Errorf("failed to create table model: %w", err)
	}

	t.dataTables = NewDataTables(model, t.cfg.Table.FilterColumn, float32(t.cfg.Table.ColumnWidth), t.logger, t.SetStatus)
	t.body.Objects = []fyne.CanvasObject{t.dataTables.Content()}
	t.body.Refresh()

	t.logger.Info("dataset loaded",
		zap.Int("rows", src.RowCount()),
		zap.Int("columns", src.ColumnCount()))
	return nil
}

// ShowAndRun shows the window and runs the application loop.
func (t *MainWindow) ShowAndRun() {
	t.w.ShowAndRun()
}
