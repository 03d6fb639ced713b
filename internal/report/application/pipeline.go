package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Sections affichées par le rapport
const (
	SectionCharts  = "Building 6 charts"
	SectionSlider  = "Plotly (time slider)"
	SectionExport  = "Export to Excel"
	SectionDemo    = "Demo insert & refresh"
	SectionSummary = "Summary"
)

// Step une étape isolée: son échec n'interrompt pas les suivantes, sauf en fail-fast
type Step struct {
	Name    string
	Section string
	Run     func(ctx context.Context) error
}

// StepResult résultat d'une étape exécutée
type StepResult struct {
	Name     string
	Duration time.Duration
	Err      error
}

// Summary bilan de l'exécution
type Summary struct {
	Results []StepResult
	Skipped []string
	Elapsed time.Duration
}

// Failed nombre d'étapes en échec
func (s Summary) Failed() int {
	n := 0
	for _, r := range s.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Err erreurs jointes, nil si tout a réussi
func (s Summary) Err() error {
	var errs []error
	for _, r := range s.Results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Name, r.Err))
		}
	}
	return errors.Join(errs...)
}

// Output progression console
type Output interface {
	Section(title string)
	OK(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Fail(format string, args ...interface{})
	Println(args ...interface{})
}

// Pipeline exécute les étapes dans l'ordre
type Pipeline struct {
	steps    []Step
	out      Output
	logger   *slog.Logger
	failFast bool
	now      func() time.Time
}

// NewPipeline crée le pipeline
func NewPipeline(out Output, logger *slog.Logger, failFast bool, steps ...Step) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{steps: steps, out: out, logger: logger, failFast: failFast, now: time.Now}
}

// Run exécute toutes les étapes, imprime le bilan et retourne les erreurs jointes.
// Une annulation du contexte arrête le pipeline entre deux étapes.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	var summary Summary
	start := p.now()
	section := ""
	stopped := false

	for i, step := range p.steps {
		if stopped || ctx.Err() != nil {
			summary.Skipped = append(summary.Skipped, step.Name)
			continue
		}

		if step.Section != "" && step.Section != section {
			section = step.Section
			p.out.Section(section)
		}

		res := p.runStep(ctx, step)
		summary.Results = append(summary.Results, res)

		if res.Err != nil {
			p.out.Fail("%s: %v", step.Name, res.Err)
			p.logger.Error("step failed", "step", step.Name, "index", i, "error", res.Err)
			if p.failFast {
				stopped = true
			}
		}
	}

	summary.Elapsed = p.now().Sub(start)
	if !stopped && ctx.Err() == nil {
		p.out.Println("All done.")
	}
	p.printSummary(summary)

	if err := summary.Err(); err != nil {
		return summary, err
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// runStep isole l'étape: un panic devient une erreur
func (p *Pipeline) runStep(ctx context.Context, step Step) (res StepResult) {
	res.Name = step.Name
	begin := p.now()
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("panic: %v", r)
		}
		res.Duration = p.now().Sub(begin)
		p.logger.Debug("step finished", "step", step.Name, "duration", res.Duration, "ok", res.Err == nil)
	}()

	res.Err = step.Run(ctx)
	return res
}

func (p *Pipeline) printSummary(s Summary) {
	p.out.Section(SectionSummary)
	for _, r := range s.Results {
		if r.Err != nil {
			p.out.Fail("%-24s %s", r.Name, r.Duration.Round(time.Millisecond))
		} else {
			p.out.OK("%-24s %s", r.Name, r.Duration.Round(time.Millisecond))
		}
	}
	for _, name := range s.Skipped {
		p.out.Warn("%-24s skipped", name)
	}

	ok := len(s.Results) - s.Failed()
	p.out.Println(fmt.Sprintf("%d succeeded, %d failed, %d skipped in %s",
		ok, s.Failed(), len(s.Skipped), s.Elapsed.Round(time.Millisecond)))
}
