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
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	arrowadapter "github.com/magpierre/dtb/adapters/arrow"
	"github.com/magpierre/dtb/datatable"
	"github.com/magpierre/dtb/export"
)

// exportView writes every filtered row of model, in the current sort
// order, to w.
func exportView(w io.Writer, model *datatable.TableModel, format export.Format) error {
	rows := model.GetFilteredRowIndices()
	if len(rows) == 0 {
		return export.ErrNoRows
	}

	table, err := arrowadapter.BuildTable(model.Source(), rows, nil)
	if err != nil {
		return fmt.Errorf("failed to prepare filtered data: %w", err)
	}
	defer table.Release()

	return export.Write(w, table, format)
}

// exportData asks for a file and exports the current view to it. With a
// nil format the format follows the chosen file's extension.
func (t *MainWindow) exportData(format *export.Format) {
	if t.dataTables == nil {
		dialog.ShowInformation("Nothing to export", "No data has been loaded yet.", t.w)
		return
	}
	model := t.dataTables.model

	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.w)
			return
		}
		if writer == nil {
			// User cancelled
			return
		}
		defer writer.Close()

		chosen := export.FormatCSV
		if format != nil {
			chosen = *format
		} else if f, err := export.FormatFromPath(writer.URI().Path()); err == nil {
			chosen = f
		}

		pbi := widget.NewProgressBarInfinite()
		progress := dialog.NewCustomWithoutButtons("Exporting...", pbi, t.w)
		progress.Resize(fyne.NewSize(300, 100))
		progress.Show()

		exportErr := exportView(writer, model, chosen)

		progress.Hide()
		pbi.Stop()

		if exportErr != nil {
			t.logger.Error("export failed",
				zap.String("path", writer.URI().Path()),
				zap.Stringer("format", chosen),
				zap.Error(exportErr))
			dialog.ShowError(fmt.Errorf("export failed: %w", exportErr), t.w)
			return
		}
		t.logger.Info("view exported",
			zap.String("path", writer.URI().Path()),
			zap.Stringer("format", chosen),
			zap.Int("rows", model.FilteredRowCount()))
		dialog.ShowInformation("Export Successful",
			fmt.Sprintf("Data exported successfully to:\n%s", writer.URI().Path()), t.w)
	}, t.w)

	ext := export.FormatCSV.Ext()
	if format != nil {
		ext = format.Ext()
	}
	saveDialog.SetFileName("table" + ext)
	saveDialog.Show()
}
