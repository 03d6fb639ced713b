package application

import (
	"context"

	chartsapp "otpreport/internal/charts/application"
	chartsdomain "otpreport/internal/charts/domain"
	exportapp "otpreport/internal/export/application"
)

// Components les services assemblés par main
type Components struct {
	Charts []chartsapp.Generator
	Slider func(ctx context.Context) (chartsdomain.Artifact, error)
	Export func(ctx context.Context) (exportapp.Result, error)
	Demo   func(ctx context.Context) error
}

// Steps ordre du rapport: six graphiques, animation, export, démonstration.
// Chaque graphique est une étape distincte.
func Steps(c Components, skipDemo bool) []Step {
	steps := make([]Step, 0, len(c.Charts)+3)

	for _, g := range c.Charts {
		run := g.Run
		steps = append(steps, Step{
			Name:    g.Name,
			Section: SectionCharts,
			Run: func(ctx context.Context) error {
				_, err := run(ctx)
				return err
			},
		})
	}

	if c.Slider != nil {
		steps = append(steps, Step{
			Name:    "time slider",
			Section: SectionSlider,
			Run: func(ctx context.Context) error {
				_, err := c.Slider(ctx)
				return err
			},
		})
	}

	if c.Export != nil {
		steps = append(steps, Step{
			Name:    "excel export",
			Section: SectionExport,
			Run: func(ctx context.Context) error {
				_, err := c.Export(ctx)
				return err
			},
		})
	}

	if c.Demo != nil && !skipDemo {
		steps = append(steps, Step{Name: "demo insert", Section: SectionDemo, Run: c.Demo})
	}

	return steps
}
