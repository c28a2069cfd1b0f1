package main

import (
	"fmt"
	"strings"

	"github.com/piwi3910/polyhouse/internal/cutlist"
	"github.com/piwi3910/polyhouse/internal/export"
	"github.com/piwi3910/polyhouse/internal/importer"
	"github.com/piwi3910/polyhouse/internal/model"
)

func printModelSummary(m model.Model) {
	cfg := m.Config
	fmt.Printf("%s, %s roof, %g x %g m, eave %g m, ridge %g m\n",
		cfg.PolyhouseType.Label(), cfg.RoofType.Label(), cfg.Length, cfg.Width, cfg.EaveHeight, cfg.RidgeHeight)
	fmt.Printf("Frame: %s (%s), cover: %s\n\n", m.Materials.Frame.Material.Label(), m.Materials.Frame.Color, m.Materials.Cover.Material.Label())

	bom := export.Summarize(m)
	fmt.Println("FRAME:")
	for _, line := range bom.Frame {
		fmt.Printf("  %-10s %4d  %9.2f m\n", line.Kind, line.Count, line.TotalLength)
	}
	if len(bom.Features) > 0 {
		fmt.Println("\nFEATURES:")
		for _, line := range bom.Features {
			fmt.Printf("  %-18s %4d\n", line.Kind, line.Count)
		}
	}
	fmt.Printf("\nInterior: %d beds, %d plants, %d irrigation lines\n",
		len(m.Interior.Beds), len(m.Interior.Plants), len(m.Interior.Irrigation))
	b := m.Bounds
	fmt.Printf("Bounds: x %.2f..%.2f, y %.2f..%.2f, z %.2f..%.2f\n",
		b.Min.X, b.Max.X, b.Min.Y, b.Max.Y, b.Min.Z, b.Max.Z)
}

func printEstimate(cfg model.PolyhouseConfig, res model.CalculationResult) {
	fmt.Printf("%s in %s\n", cfg.PolyhouseType.Label(), cfg.State)
	fmt.Printf("Area %.0f m², volume %.0f m³\n\n", res.Area, res.Volume)

	fmt.Println("COST:")
	for _, item := range res.Cost.LineItems() {
		fmt.Printf("  %-14s %16s\n", item.Label, export.FormatINR(item.Amount))
	}
	fmt.Printf("  %s\n", strings.Repeat("-", 31))
	fmt.Printf("  %-14s %16s\n", "Total", export.FormatINR(res.Cost.TotalCost))
	fmt.Printf("  %-14s %16s\n", "Per m²", export.FormatINR(res.Cost.CostPerSqm))
	fmt.Printf("  Climate adjustment %+.0f%%\n\n", res.Cost.ClimateAdjustment*100)

	cl := res.Climate
	fmt.Printf("CLIMATE: %s, %.0f °C, %.0f%% humidity, %.0f mm rain\n",
		cl.ClimateZone, cl.AvgTemperature, cl.Humidity, cl.Rainfall)
	for _, a := range cl.Advisories {
		fmt.Printf("  * %s\n", a)
	}
}

func printCutList(plan cutlist.Plan) {
	s := plan.Settings
	fmt.Printf("Stock %.1f m, kerf %.0f mm, splice overlap %.0f mm, %s\n\n",
		s.StockLength, s.Kerf*1000, s.Overlap*1000, s.Algorithm)

	for i, bar := range plan.Bars {
		cuts := make([]string, len(bar.Cuts))
		for j, c := range bar.Cuts {
			cuts[j] = fmt.Sprintf("%.3f", c.Piece.Length)
		}
		fmt.Printf("  %3d  %-16s %s  (offcut %.3f)\n", i+1, bar.Section.Label(), strings.Join(cuts, " + "), bar.Offcut(s.Kerf))
	}

	fmt.Println("\nSUMMARY:")
	for _, c := range plan.Summary() {
		fmt.Printf("  %-16s %4d bars, %.2f m offcut\n", c.Section.Label(), c.Bars, c.Offcut)
	}
	fmt.Printf("\n%d bars, %.1f m stock, %d splices, %.1f%% efficient\n",
		len(plan.Bars), plan.StockUsed(), plan.Splices, plan.Efficiency())
}

func printComparison(results []cutlist.ComparisonResult) {
	fmt.Printf("  %-22s %6s %10s %11s\n", "Scenario", "Bars", "Stock (m)", "Efficiency")
	for _, r := range results {
		fmt.Printf("  %-22s %6d %10.1f %10.1f%%\n", r.Scenario.Name, r.BarsUsed, r.StockUsed, r.Efficiency)
	}
}

func printImportResult(r importer.ImportResult) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  %s\n", e)
		}
		fmt.Println()
	}
	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  %s\n", w)
		}
		fmt.Println()
	}
	fmt.Printf("Imported %d designs\n", len(r.Projects))
}
