package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"otpreport/database"
	analyticsinfra "otpreport/internal/analytics/infrastructure"
	"otpreport/internal/config"
	queryapp "otpreport/internal/query/application"
	queryinfra "otpreport/internal/query/infrastructure"
	sharedinfra "otpreport/internal/shared/infrastructure"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRunQueriesCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newRunQueriesCmd() *cobra.Command {
	var configPath, file string

	cmd := &cobra.Command{
		Use:           "runqueries",
		Short:         "Run every ';'-separated statement of a SQL file and preview the results",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			statements, err := queryinfra.LoadStatements(file)
			if err != nil {
				return err
			}

			fmt.Printf("Loaded %d SQL statements from %s\n", len(statements), file)

			h, err := database.Open(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer h.Close()

			logger := sharedinfra.NewLogger(cfg.Log, os.Stderr)
			runner := queryapp.NewRunner(
				analyticsinfra.NewOTPQueryRepository(h),
				queryinfra.NewTablePrinter(os.Stdout),
				sharedinfra.NewConsole(os.Stdout),
				logger,
			)
			return runner.Run(cmd.Context(), statements)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to the YAML configuration")
	cmd.Flags().StringVarP(&file, "file", "f", queryinfra.DefaultQueriesFile, "SQL file to run")

	return cmd
}
