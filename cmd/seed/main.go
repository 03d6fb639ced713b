package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"otpreport/database"
	"otpreport/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newSeedCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "[FAIL]", err)
		stop()
		os.Exit(1)
	}
}

func newSeedCmd() *cobra.Command {
	var configPath string
	opts := database.DefaultSeedOptions()

	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Create the OTP schema and fill it with a synthetic dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			h, err := database.Open(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer h.Close()
			fmt.Printf("[OK] Connected to %s (%s)\n", cfg.Database.Driver, cfg.Database.Name)

			ds, err := database.SeedDatabase(cmd.Context(), h, opts)
			if err != nil {
				return err
			}

			fmt.Printf("[OK] Seeded %d facts over %d months\n", len(ds.Facts), len(ds.Months))
			fmt.Println()
			fmt.Println("Run the report with:")
			fmt.Println("  go run . --config", cfgHint(configPath))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to the YAML configuration")
	cmd.Flags().IntVar(&opts.Months, "months", opts.Months, "number of calendar months to generate")
	cmd.Flags().IntVar(&opts.StartYear, "start-year", opts.StartYear, "first generated year")
	cmd.Flags().Int64Var(&opts.Seed, "seed", opts.Seed, "random seed (same seed, same dataset)")

	return cmd
}

func cfgHint(path string) string {
	if path == "" {
		return config.DefaultConfigFile
	}
	return path
}
