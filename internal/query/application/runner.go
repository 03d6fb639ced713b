package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"otpreport/internal/query/domain"
	shareddomain "otpreport/internal/shared/domain"
)

// Querier exécute une requête libre
type Querier interface {
	QueryTable(ctx context.Context, query string, args ...interface{}) (*shareddomain.Table, error)
}

// Printer affiche une table tronquée
type Printer interface {
	Print(t *shareddomain.Table, limit int)
}

// Output progression console
type Output interface {
	Section(title string)
	Fail(format string, args ...interface{})
	Println(args ...interface{})
}

// Runner exécute les requêtes d'un script les unes après les autres
type Runner struct {
	querier Querier
	printer Printer
	out     Output
	logger  *slog.Logger
}

// NewRunner crée le runner
func NewRunner(q Querier, p Printer, out Output, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{querier: q, printer: p, out: out, logger: logger}
}

// Run une requête en erreur est signalée puis la suivante s'exécute;
// les erreurs sont retournées jointes
func (r *Runner) Run(ctx context.Context, statements []string) error {
	var errs []error

	for i, stmt := range statements {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}

		r.out.Section(fmt.Sprintf("Query %d", i+1))
		t, err := r.querier.QueryTable(ctx, stmt)
		if err != nil {
			r.out.Fail("%v", err)
			r.logger.Error("query failed", "index", i+1, "error", err)
			errs = append(errs, fmt.Errorf("query %d: %w", i+1, err))
			continue
		}

		if t.Len() == 0 {
			r.out.Println("No data")
			continue
		}

		shown, hidden := domain.Preview(t.Len())
		r.printer.Print(t, shown)
		if hidden > 0 {
			r.out.Println(fmt.Sprintf("... %d more rows", hidden))
		}
	}

	return errors.Join(errs...)
}
