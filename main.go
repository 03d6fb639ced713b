package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"otpreport/database"
	analyticsinfra "otpreport/internal/analytics/infrastructure"
	chartsapp "otpreport/internal/charts/application"
	chartsinfra "otpreport/internal/charts/infrastructure"
	"otpreport/internal/config"
	demoapp "otpreport/internal/demo/application"
	exportapp "otpreport/internal/export/application"
	exportinfra "otpreport/internal/export/infrastructure"
	interactiveapp "otpreport/internal/interactive/application"
	interactiveinfra "otpreport/internal/interactive/infrastructure"
	reportapp "otpreport/internal/report/application"
	sharedinfra "otpreport/internal/shared/infrastructure"
)

// flags options de ligne de commande, prioritaires sur la configuration
type flags struct {
	configPath string
	noBrowser  bool
	skipDemo   bool
	failFast   bool
	chartsDir  string
	exportsDir string
	parquet    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "otpreport",
		Short: "Airline on-time performance report",
		Long: `otpreport reads the facts_otp star schema and produces:
  - six PNG charts under the charts directory,
  - an animated Plotly page (charts/plotly_slider.html),
  - an Excel workbook exports/report_<YYYYMMDD_HHMM>.xlsx,
then inserts one demo fact row and refreshes the monthly on-time chart.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return err
			}
			applyFlags(&cfg, cmd, f)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, stdout, stderr)
		},
	}

	cmd.Flags().StringVar(&f.configPath, "config", "", "path to the YAML configuration (default: "+config.DefaultConfigFile+" if present)")
	cmd.Flags().BoolVar(&f.noBrowser, "no-browser", false, "do not open the interactive chart in a browser")
	cmd.Flags().BoolVar(&f.skipDemo, "skip-demo", false, "skip the demo insert and chart refresh")
	cmd.Flags().BoolVar(&f.failFast, "fail-fast", false, "stop at the first failing step")
	cmd.Flags().StringVar(&f.chartsDir, "charts-dir", "", "output directory for charts")
	cmd.Flags().StringVar(&f.exportsDir, "exports-dir", "", "output directory for the Excel export")
	cmd.Flags().BoolVar(&f.parquet, "parquet", false, "also write each export sheet as a parquet file")

	return cmd
}

// applyFlags seuls les flags explicitement fournis surchargent la configuration
func applyFlags(cfg *config.Config, cmd *cobra.Command, f flags) {
	if f.noBrowser {
		cfg.Output.OpenBrowser = false
	}
	if f.skipDemo {
		cfg.Report.SkipDemo = true
	}
	if f.failFast {
		cfg.Report.FailFast = true
	}
	if f.parquet {
		cfg.Output.Parquet = true
	}
	if cmd.Flags().Changed("charts-dir") {
		cfg.Output.ChartsDir = f.chartsDir
	}
	if cmd.Flags().Changed("exports-dir") {
		cfg.Output.ExportsDir = f.exportsDir
	}
}

// run assemble les services et exécute le rapport
func run(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	logger := sharedinfra.NewLogger(cfg.Log, stderr)
	console := sharedinfra.NewConsole(stdout)

	h, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer h.Close()
	logger.Info("database connected", "driver", cfg.Database.Driver, "dialect", h.Dialect)

	queries := analyticsinfra.NewOTPQueryRepository(h)

	charts := chartsapp.NewChartService(queries, chartsinfra.NewPNGRenderer(), console, logger, chartsapp.Options{
		Dir:           cfg.Output.ChartsDir,
		TopRoutes:     cfg.Report.TopRoutes,
		HistogramBins: cfg.Report.HistogramBins,
	})

	slider := interactiveapp.NewSliderService(queries, interactiveinfra.NewPlotlyWriter(), interactiveinfra.BrowserOpener{},
		logger, cfg.Output.ChartsDir, cfg.Output.OpenBrowser)

	export := exportapp.NewExportService(queries, exportinfra.NewExcelWriter(), exportinfra.NewParquetWriter(), console, logger,
		exportapp.Options{
			Dir:       cfg.Output.ExportsDir,
			TopRoutes: cfg.Report.ExportTopRoutes,
			Parquet:   cfg.Output.Parquet,
		})

	demo := demoapp.NewDemoService(analyticsinfra.NewFactCommandRepository(h), sharedinfra.NewUnitOfWork(h),
		charts.MonthlyOnTime, console, logger)

	steps := reportapp.Steps(reportapp.Components{
		Charts: charts.Generators(),
		Slider: slider.Generate,
		Export: export.Export,
		Demo:   demo.Run,
	}, cfg.Report.SkipDemo)

	_, err = reportapp.NewPipeline(console, logger, cfg.Report.FailFast, steps...).Run(ctx)
	return err
}
