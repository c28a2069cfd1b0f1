package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/polyhouse/internal/cutlist"
	"github.com/piwi3910/polyhouse/internal/model"
)

// Sheet names of the bill of materials workbook.
const (
	SheetFrame    = "Frame"
	SheetFeatures = "Features"
	SheetCost     = "Cost"
	SheetCutList  = "Cut List"
)

// ExportXLSX writes the bill of materials and cost breakdown to path.
func ExportXLSX(path string, m model.Model, res model.CalculationResult) error {
	f, err := buildWorkbook(m, res)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

// RenderXLSX returns the workbook as bytes.
func RenderXLSX(m model.Model, res model.CalculationResult) ([]byte, error) {
	f, err := buildWorkbook(m, res)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func buildWorkbook(m model.Model, res model.CalculationResult) (*excelize.File, error) {
	if len(m.Parts) == 0 {
		return nil, ErrEmptyModel
	}
	bom := Summarize(m)

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetFrame); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range []string{SheetFeatures, SheetCost, SheetCutList} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("adding sheet %s: %w", name, err)
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	frame := [][]interface{}{{"Member", "Count", "Total length (m)", "Material"}}
	for _, line := range bom.Frame {
		frame = append(frame, []interface{}{partKindLabel(line.Kind), line.Count, round3(line.TotalLength), string(m.Materials.Frame.Material)})
	}

	features := [][]interface{}{{"Feature", "Count"}}
	for _, line := range bom.Features {
		features = append(features, []interface{}{string(line.Kind), line.Count})
	}

	cost := [][]interface{}{{"Item", "Amount (INR)"}}
	for _, item := range res.Cost.LineItems() {
		cost = append(cost, []interface{}{item.Label, item.Amount})
	}
	cost = append(cost,
		[]interface{}{"Climate adjustment", res.Cost.ClimateAdjustment},
		[]interface{}{"Total", res.Cost.TotalCost},
		[]interface{}{"Cost per m²", res.Cost.CostPerSqm},
	)

	plan := cutlist.Optimize(m, cutlist.DefaultSettings())
	cuts := [][]interface{}{{"Bar", "Section", "Stock (m)", "Pieces", "Offcut (m)"}}
	for i, bar := range plan.Bars {
		names := make([]string, len(bar.Cuts))
		for j, c := range bar.Cuts {
			names[j] = fmt.Sprintf("%s %.3f", c.Piece.Name, c.Piece.Length)
		}
		cuts = append(cuts, []interface{}{i + 1, bar.Section.Label(), bar.Length, strings.Join(names, ", "), round3(bar.Offcut(plan.Settings.Kerf))})
	}
	cuts = append(cuts,
		[]interface{}{"Splices", plan.Splices},
		[]interface{}{"Efficiency (%)", round3(plan.Efficiency())},
	)

	for _, sheet := range []struct {
		name string
		rows [][]interface{}
	}{
		{SheetFrame, frame},
		{SheetFeatures, features},
		{SheetCost, cost},
		{SheetCutList, cuts},
	} {
		if err := writeRows(f, sheet.name, sheet.rows, bold); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing sheet %s: %w", sheet.name, err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if len(rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", "A", 24)
}
