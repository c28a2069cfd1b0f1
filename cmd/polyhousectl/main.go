package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/polyhouse/internal/cutlist"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "polyhousectl",
		Short: "Polyhouse design, estimation and export from the command line",
	}

	rootCmd.AddCommand(buildCmd())
	rootCmd.AddCommand(estimateCmd())
	rootCmd.AddCommand(cutListCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "build [design]",
		Short: "Build the 3D model of a design and summarise it",
		Long:  "Build the model of a .polyhouse file or a configuration JSON file. Without a file the default design is built.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runBuild(optionalArg(args), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full model as JSON")
	return cmd
}

func estimateCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "estimate [design]",
		Short: "Compute and display the cost and climate estimate",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runEstimate(optionalArg(args), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the estimate as JSON")
	return cmd
}

func cutListCmd() *cobra.Command {
	settings := cutlist.DefaultSettings()
	var algorithm string
	var compare bool

	cmd := &cobra.Command{
		Use:   "cutlist [design]",
		Short: "Plan how frame members are cut from stock pipe",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			settings.Algorithm = cutlist.Algorithm(algorithm)
			return runCutList(optionalArg(args), settings, compare)
		},
	}

	cmd.Flags().Float64Var(&settings.StockLength, "stock", settings.StockLength, "stock pipe length in metres")
	cmd.Flags().Float64Var(&settings.Kerf, "kerf", settings.Kerf, "saw kerf in metres")
	cmd.Flags().Float64Var(&settings.Overlap, "overlap", settings.Overlap, "splice overlap in metres")
	cmd.Flags().StringVar(&algorithm, "algorithm", string(cutlist.AlgorithmFirstFit), "first-fit or genetic")
	cmd.Flags().BoolVar(&compare, "compare", false, "compare alternative algorithms and stock lengths")
	return cmd
}

func exportCmd() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export [design]",
		Short: "Write the report, drawing, bill of materials or part tags",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runExport(optionalArg(args), opts)
		},
	}

	cmd.Flags().StringVar(&opts.PDF, "pdf", "", "write the PDF design report to this path")
	cmd.Flags().StringVar(&opts.DXF, "dxf", "", "write the DXF drawing to this path")
	cmd.Flags().StringVar(&opts.XLSX, "xlsx", "", "write the Excel bill of materials to this path")
	cmd.Flags().StringVar(&opts.Tags, "tags", "", "write the QR part tags PDF to this path")
	cmd.Flags().BoolVar(&opts.Crops, "crops", false, "include crop suggestions in the report (needs GEMINI_API_KEY)")
	return cmd
}

func importCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import designs from CSV, Excel or DXF and save them as .polyhouse files",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runImport(args[0], outDir)
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory for the saved designs")
	return cmd
}

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "HTTP server port (overrides PORT)")
	return cmd
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
