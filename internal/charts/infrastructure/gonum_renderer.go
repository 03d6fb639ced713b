package infrastructure

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"otpreport/internal/charts/domain"
)

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

func (r *PNGRenderer) save(p *plot.Plot, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	w, h := r.size()
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

// HorizontalBar barres horizontales, le dernier élément en haut
func (r *PNGRenderer) HorizontalBar(path string, c domain.CategoryChart) error {
	p := newPlot(c.Title, c.XLabel, c.YLabel)

	values := make(plotter.Values, len(c.Items))
	labels := make([]string, len(c.Items))
	for i, item := range c.Items {
		values[i] = item.Value
		labels[i] = item.Label
	}

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return fmt.Errorf("bar chart %q: %w", c.Title, err)
	}
	bars.Horizontal = true
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.NominalY(labels...)

	return r.save(p, path)
}

// Line courbe temporelle avec marqueurs, axe X en mois
func (r *PNGRenderer) Line(path string, c domain.TimeChart) error {
	p := newPlot(c.Title, c.XLabel, c.YLabel)
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}

	pts := make(plotter.XYs, len(c.Points))
	for i, pt := range c.Points {
		pts[i].X = float64(pt.Time.Unix())
		pts[i].Y = pt.Value
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("line %q: %w", c.Title, err)
	}
	line.Color = plotutil.Color(0)
	line.LineStyle.Width = vg.Points(1.5)
	points.Color = plotutil.Color(0)
	points.Shape = plotutil.Shape(0)
	points.Radius = vg.Points(3)

	p.Add(line, points)

	return r.save(p, path)
}

// Histogram distribution en c.Bins classes
func (r *PNGRenderer) Histogram(path string, c domain.HistogramChart) error {
	p := newPlot(c.Title, c.XLabel, c.YLabel)

	bins := c.Bins
	if bins <= 0 {
		bins = domain.DefaultHistogramBins
	}

	hist, err := plotter.NewHist(plotter.Values(c.Values), bins)
	if err != nil {
		return fmt.Errorf("histogram %q: %w", c.Title, err)
	}
	hist.FillColor = plotutil.Color(0)

	p.Add(hist)

	return r.save(p, path)
}

// Scatter une série colorée par entrée, légende commune
func (r *PNGRenderer) Scatter(path string, c domain.ScatterChart) error {
	p := newPlot(c.Title, c.XLabel, c.YLabel)
	p.Legend.Top = true
	p.Legend.TextStyle.Font.Size = vg.Points(8)

	for i, series := range c.Series {
		pts := make(plotter.XYs, len(series.Points))
		for j, pt := range series.Points {
			pts[j].X = pt.X
			pts[j].Y = pt.Y
		}

		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("scatter series %q: %w", series.Name, err)
		}
		sc.GlyphStyle.Color = plotutil.Color(i)
		sc.GlyphStyle.Shape = plotutil.Shape(i)
		sc.GlyphStyle.Radius = vg.Points(2.5)

		p.Add(sc)
		p.Legend.Add(series.Name, sc)
	}

	return r.save(p, path)
}
