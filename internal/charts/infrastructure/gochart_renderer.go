package infrastructure

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"

	"otpreport/internal/charts/domain"
)

// Pie camembert, chaque part étiquetée "libellé <part %>"
func (r *PNGRenderer) Pie(path string, c domain.CategoryChart) error {
	total := 0.0
	for _, item := range c.Items {
		total += item.Value
	}
	if total <= 0 {
		return fmt.Errorf("pie %q: total must be positive", c.Title)
	}

	format := c.LabelFormat
	if format == "" {
		format = "%1.1f%%"
	}

	values := make([]chart.Value, 0, len(c.Items))
	for _, item := range c.Items {
		values = append(values, chart.Value{
			Value: item.Value,
			Label: item.Label + " " + fmt.Sprintf(format, item.Value/total*100),
		})
	}

	pie := chart.PieChart{
		Title:  c.Title,
		Width:  r.Height,
		Height: r.Height,
		Values: values,
	}

	return writeFile(path, func(w io.Writer) error {
		return pie.Render(chart.PNG, w)
	})
}

// Bar barres verticales, libellés inclinés à 45°
func (r *PNGRenderer) Bar(path string, c domain.CategoryChart) error {
	maxValue := 0.0
	bars := make([]chart.Value, 0, len(c.Items))
	for _, item := range c.Items {
		bars = append(bars, chart.Value{Value: item.Value, Label: item.Label})
		maxValue = math.Max(maxValue, item.Value)
	}

	// Plage explicite: une série de zéros n'a pas d'amplitude propre
	if maxValue <= 0 {
		maxValue = 1
	}

	barWidth := 50
	if n := len(bars); n > 0 && r.Width/(2*n) < barWidth {
		barWidth = max(r.Width/(2*n), 4)
	}

	bar := chart.BarChart{
		Title:  c.Title,
		Width:  r.Width,
		Height: r.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 120},
		},
		BarWidth: barWidth,
		XAxis:    chart.Style{TextRotationDegrees: 45.0},
		YAxis: chart.YAxis{
			Name:  c.YLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: maxValue * 1.1},
		},
		Bars: bars,
	}

	return writeFile(path, func(w io.Writer) error {
		return bar.Render(chart.PNG, w)
	})
}
