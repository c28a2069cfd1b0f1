package ui

import (
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/piwi3910/polyhouse/internal/export"
	"github.com/piwi3910/polyhouse/internal/project"
)

// exportFileName derives an export name from the design's file name.
func (a *App) exportFileName(ext string) string {
	name := project.FileName(a.project)
	return name[:len(name)-len(project.Extension)] + ext
}

// saveWith shows a save dialog and runs write on the chosen path.
func (a *App) saveWith(title, fileName string, write func(path string) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		// The exporters write the path themselves.
		writer.Close()
		path := writer.URI().Path()
		if err := write(path); err != nil {
			if errors.Is(err, export.ErrEmptyModel) {
				err = fmt.Errorf("the design has no frame parts to export")
			}
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation(title, fmt.Sprintf("Saved to:\n%s", path), a.window)
	}, a.window)
	d.SetFileName(fileName)
	d.Show()
}

func (a *App) exportPDF() {
	report := export.Report{
		Model:       a.model,
		Result:      a.currentEstimate(),
		Crops:       a.project.Crops,
		GeneratedAt: time.Now(),
	}
	a.saveWith("Report Exported", a.exportFileName(".pdf"), func(path string) error {
		return export.ExportPDF(path, report)
	})
}

func (a *App) exportDXF() {
	m := a.model
	a.saveWith("Drawing Exported", a.exportFileName(".dxf"), func(path string) error {
		return export.ExportDXF(path, m)
	})
}

func (a *App) exportXLSX() {
	m, res := a.model, a.currentEstimate()
	a.saveWith("Bill of Materials Exported", a.exportFileName(".xlsx"), func(path string) error {
		return export.ExportXLSX(path, m, res)
	})
}

func (a *App) exportTags() {
	m := a.model
	a.saveWith("Part Tags Exported", a.exportFileName("-tags.pdf"), func(path string) error {
		return export.ExportPartTags(path, m)
	})
}
