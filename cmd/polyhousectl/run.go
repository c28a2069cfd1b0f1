package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/polyhouse/internal/builder"
	"github.com/piwi3910/polyhouse/internal/config"
	"github.com/piwi3910/polyhouse/internal/crops"
	"github.com/piwi3910/polyhouse/internal/cutlist"
	"github.com/piwi3910/polyhouse/internal/estimate"
	"github.com/piwi3910/polyhouse/internal/export"
	"github.com/piwi3910/polyhouse/internal/importer"
	"github.com/piwi3910/polyhouse/internal/model"
	"github.com/piwi3910/polyhouse/internal/project"
	"github.com/piwi3910/polyhouse/internal/server"
)

// loadDesign reads a design file, or returns the default design when path
// is empty.
func loadDesign(path string) (model.PolyhouseConfig, error) {
	if path == "" {
		return model.DefaultConfig(), nil
	}
	cfg, err := project.LoadConfig(path)
	if err != nil {
		return cfg, fmt.Errorf("loading design: %w", err)
	}
	return cfg.Normalized(), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runBuild(path string, asJSON bool) error {
	cfg, err := loadDesign(path)
	if err != nil {
		return err
	}
	m := builder.Build(cfg)
	if asJSON {
		return printJSON(m)
	}
	printModelSummary(m)
	return nil
}

func runEstimate(path string, asJSON bool) error {
	cfg, err := loadDesign(path)
	if err != nil {
		return err
	}
	res := estimate.Calculate(cfg)
	if asJSON {
		return printJSON(res)
	}
	printEstimate(cfg, res)
	return nil
}

func runCutList(path string, settings cutlist.Settings, compare bool) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	cfg, err := loadDesign(path)
	if err != nil {
		return err
	}
	m := builder.Build(cfg)
	if compare {
		printComparison(cutlist.CompareScenarios(cutlist.BuildDefaultScenarios(settings), m))
		return nil
	}
	printCutList(cutlist.Optimize(m, settings))
	return nil
}

type exportOptions struct {
	PDF, DXF, XLSX, Tags string
	Crops                bool
}

func runExport(path string, opts exportOptions) error {
	if opts.PDF == "" && opts.DXF == "" && opts.XLSX == "" && opts.Tags == "" {
		return fmt.Errorf("nothing to export: pass at least one of --pdf, --dxf, --xlsx, --tags")
	}
	cfg, err := loadDesign(path)
	if err != nil {
		return err
	}
	m := builder.Build(cfg)
	res := estimate.Calculate(cfg)

	if opts.PDF != "" {
		report := export.Report{Model: m, Result: res, GeneratedAt: time.Now()}
		if opts.Crops {
			report.Crops = suggestCrops(cfg, res)
		}
		if err := export.ExportPDF(opts.PDF, report); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Printf("%-18s %s\n", "Report:", opts.PDF)
	}
	if opts.DXF != "" {
		if err := export.ExportDXF(opts.DXF, m); err != nil {
			return fmt.Errorf("writing drawing: %w", err)
		}
		fmt.Printf("%-18s %s\n", "Drawing:", opts.DXF)
	}
	if opts.XLSX != "" {
		if err := export.ExportXLSX(opts.XLSX, m, res); err != nil {
			return fmt.Errorf("writing bill of materials: %w", err)
		}
		fmt.Printf("%-18s %s\n", "Bill of materials:", opts.XLSX)
	}
	if opts.Tags != "" {
		if err := export.ExportPartTags(opts.Tags, m); err != nil {
			return fmt.Errorf("writing part tags: %w", err)
		}
		fmt.Printf("%-18s %s\n", "Part tags:", opts.Tags)
	}
	return nil
}

// suggestCrops returns suggestion text for the report, or an empty string
// when the service is unavailable.
func suggestCrops(cfg model.PolyhouseConfig, res model.CalculationResult) string {
	ctx := context.Background()
	svc, err := crops.FromConfig(ctx, config.Load())
	if err != nil {
		fmt.Fprintf(os.Stderr, "crop suggestions unavailable: %v\n", err)
		return ""
	}
	text, err := svc.Suggest(ctx, crops.Request{Config: cfg, Climate: res.Climate})
	if err != nil {
		fmt.Fprintf(os.Stderr, "crop suggestions unavailable: %v\n", err)
		return ""
	}
	return text
}

func runImport(path, outDir string) error {
	result := importer.ImportFile(path)
	printImportResult(result)
	if len(result.Projects) == 0 {
		return fmt.Errorf("no designs imported from %s", path)
	}
	paths, err := project.SaveAll(outDir, result.Projects)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Printf("  saved %s\n", p)
	}
	return nil
}

func runServe(port string) error {
	cfg := config.Load()
	if port != "" {
		cfg.Port = port
	}
	svc, err := crops.FromConfig(context.Background(), cfg)
	if err != nil {
		return err
	}
	return server.New(cfg, svc).Listen()
}
