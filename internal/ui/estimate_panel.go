package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/polyhouse/internal/crops"
	"github.com/piwi3910/polyhouse/internal/estimate"
	"github.com/piwi3910/polyhouse/internal/export"
	"github.com/piwi3910/polyhouse/internal/model"
)

// estimatePanel shows the cost estimate, climate and crop suggestions of
// the current design.
type estimatePanel struct {
	app     *App
	content fyne.CanvasObject

	summary  *widget.Label
	costs    *widget.Form
	climate  *widget.Label
	crops    *widget.Label
	cropsBtn *widget.Button
	busy     *widget.ProgressBarInfinite
}

func newEstimatePanel(a *App) *estimatePanel {
	p := &estimatePanel{app: a}

	p.summary = widget.NewLabel("Press Calculate to estimate the cost of this design.")
	p.summary.Wrapping = fyne.TextWrapWord
	p.costs = widget.NewForm()
	p.climate = widget.NewLabel("")
	p.climate.Wrapping = fyne.TextWrapWord
	p.crops = widget.NewLabel("")
	p.crops.Wrapping = fyne.TextWrapWord
	p.busy = widget.NewProgressBarInfinite()
	p.busy.Hide()

	calc := widget.NewButtonWithIcon("Calculate", theme.ConfirmIcon(), a.calculate)
	calc.Importance = widget.HighImportance
	p.cropsBtn = widget.NewButtonWithIcon("Suggest Crops", theme.SearchIcon(), a.suggestCrops)

	exports := container.NewGridWithColumns(2,
		widget.NewButtonWithIcon("Report", theme.DocumentIcon(), a.exportPDF),
		widget.NewButtonWithIcon("Drawing", theme.DocumentSaveIcon(), a.exportDXF),
		widget.NewButtonWithIcon("Materials", theme.GridIcon(), a.exportXLSX),
		widget.NewButtonWithIcon("Part Tags", theme.ListIcon(), a.exportTags),
	)

	p.content = container.NewVBox(
		calc,
		p.summary,
		widget.NewCard("Cost", "", p.costs),
		widget.NewCard("Climate", "", p.climate),
		widget.NewCard("Crops", "", container.NewVBox(p.cropsBtn, p.busy, p.crops)),
		widget.NewCard("Export", "", exports),
	)
	return p
}

func (p *estimatePanel) clear() {
	p.summary.SetText("Press Calculate to estimate the cost of this design.")
	p.costs.Items = nil
	p.costs.Refresh()
	p.climate.SetText("")
	p.crops.SetText("")
}

func (p *estimatePanel) show(res model.CalculationResult) {
	p.summary.SetText(fmt.Sprintf("%.0f m² floor, %.0f m³ enclosed\n%s total, %s per m²",
		res.Area, res.Volume, export.FormatINR(res.Cost.TotalCost), export.FormatINR(res.Cost.CostPerSqm)))

	p.costs.Items = nil
	for _, item := range res.Cost.LineItems() {
		p.costs.Append(item.Label, widget.NewLabel(export.FormatINR(item.Amount)))
	}
	p.costs.Refresh()

	cl := res.Climate
	text := fmt.Sprintf("%s zone, %.0f °C, %.0f%% humidity, %.0f mm rain\nClimate adjustment %+.0f%%",
		cl.ClimateZone, cl.AvgTemperature, cl.Humidity, cl.Rainfall, res.Cost.ClimateAdjustment*100)
	if len(cl.Advisories) > 0 {
		text += "\n\n" + strings.Join(cl.Advisories, "\n")
	}
	p.climate.SetText(text)
}

func (p *estimatePanel) setCrops(text string) {
	p.crops.SetText(text)
}

func (p *estimatePanel) setBusy(on bool) {
	if on {
		p.busy.Show()
		p.cropsBtn.Disable()
		return
	}
	p.busy.Hide()
	p.cropsBtn.Enable()
}

// ─── Actions ───────────────────────────────────────────────

// currentEstimate returns the stored estimate, calculating it first when
// the design changed since the last calculation.
func (a *App) currentEstimate() model.CalculationResult {
	if a.project.Estimate == nil {
		res := estimate.Calculate(a.project.Config)
		a.project.Estimate = &res
		a.estimate.show(res)
	}
	return *a.project.Estimate
}

func (a *App) calculate() {
	a.project.Estimate = nil
	a.currentEstimate()
}

// suggestCrops queries the crop service off the UI goroutine.
func (a *App) suggestCrops() {
	if !a.crops.Configured() {
		dialog.ShowError(crops.ErrNotConfigured, a.window)
		return
	}
	res := a.currentEstimate()
	cfg := a.project.Config
	req := crops.Request{Config: cfg, Climate: res.Climate}

	a.estimate.setBusy(true)
	go func() {
		text, err := a.crops.Suggest(context.Background(), req)
		fyne.Do(func() {
			a.estimate.setBusy(false)
			if err != nil {
				if errors.Is(err, context.DeadlineExceeded) {
					err = fmt.Errorf("crop suggestions timed out: %w", err)
				}
				dialog.ShowError(err, a.window)
				return
			}
			// The design may have changed while the request ran.
			if a.project.Config != cfg {
				return
			}
			a.project.Crops = text
			a.estimate.setCrops(text)
		})
	}()
}
