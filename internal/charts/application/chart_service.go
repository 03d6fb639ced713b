package application

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	analytics "otpreport/internal/analytics/domain"
	"otpreport/internal/charts/domain"
	shareddomain "otpreport/internal/shared/domain"
)

// Queries agrégations nécessaires aux six graphiques
type Queries interface {
	AirlineFlights(ctx context.Context) ([]analytics.AirlineFlights, error)
	AirlineCancellations(ctx context.Context) ([]analytics.AirlineCancellations, error)
	RouteDelays(ctx context.Context) ([]analytics.RouteDelays, error)
	MonthlyOnTime(ctx context.Context) ([]analytics.MonthlyOnTime, error)
	RouteMonthDelays(ctx context.Context) ([]analytics.RouteMonthDelays, error)
	AirlineMonthDelays(ctx context.Context) ([]analytics.AirlineMonthDelays, error)
}

// Renderer dessine un graphique dans un fichier image
type Renderer interface {
	Pie(path string, c domain.CategoryChart) error
	Bar(path string, c domain.CategoryChart) error
	HorizontalBar(path string, c domain.CategoryChart) error
	Line(path string, c domain.TimeChart) error
	Histogram(path string, c domain.HistogramChart) error
	Scatter(path string, c domain.ScatterChart) error
}

// Reporter reçoit le résumé de chaque graphique écrit
type Reporter interface {
	ChartSaved(path string, rows int, title, note string)
}

// Options paramètres des générateurs
type Options struct {
	Dir           string
	TopRoutes     int
	HistogramBins int
}

// Generator un graphique nommé, exécutable seul
type Generator struct {
	Name string
	Run  func(ctx context.Context) (domain.Artifact, error)
}

// ChartService génère les six graphiques statiques.
// Chaque générateur: une requête, une transformation, un rendu, un résumé.
type ChartService struct {
	queries  Queries
	renderer Renderer
	reporter Reporter
	logger   *slog.Logger
	opts     Options
}

// NewChartService crée le service de graphiques
func NewChartService(q Queries, r Renderer, rep Reporter, logger *slog.Logger, opts Options) *ChartService {
	if opts.TopRoutes <= 0 {
		opts.TopRoutes = domain.DefaultTopRoutesByDelay
	}
	if opts.HistogramBins <= 0 {
		opts.HistogramBins = domain.DefaultHistogramBins
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChartService{queries: q, renderer: r, reporter: rep, logger: logger, opts: opts}
}

// Generators les six graphiques dans l'ordre du rapport
func (s *ChartService) Generators() []Generator {
	return []Generator{
		{Name: "airline share", Run: s.AirlineShare},
		{Name: "cancellation rate", Run: s.CancellationRate},
		{Name: "top routes by delay", Run: s.TopRoutesByDelay},
		{Name: "monthly on-time rate", Run: s.MonthlyOnTime},
		{Name: "delay rate distribution", Run: s.DelayRateDistribution},
		{Name: "flights vs delay", Run: s.FlightsVsDelay},
	}
}

// AirlineShare camembert des secteurs volés par compagnie
func (s *ChartService) AirlineShare(ctx context.Context) (domain.Artifact, error) {
	rows, err := s.queries.AirlineFlights(ctx)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("airline share query: %w", err)
	}

	items := domain.ShareByAirline(rows)
	if len(items) == 0 {
		return domain.Artifact{}, fmt.Errorf("airline share: %w", shareddomain.ErrNoData)
	}

	art := s.artifact(domain.FileAirlineShare, len(items),
		"Share of flights by airline", "Distribution of flown sectors across airlines")
	chart := domain.CategoryChart{
		Title:       "Share of flights by airline",
		Items:       items,
		LabelFormat: "%1.1f%%",
	}

	return s.finish(art, s.renderer.Pie(art.Path, chart))
}

// CancellationRate barres verticales du % d'annulation par compagnie
func (s *ChartService) CancellationRate(ctx context.Context) (domain.Artifact, error) {
	rows, err := s.queries.AirlineCancellations(ctx)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("cancellation rate query: %w", err)
	}

	items, err := domain.CancellationRates(rows)
	if err != nil {
		return domain.Artifact{}, err
	}
	if len(items) == 0 {
		return domain.Artifact{}, fmt.Errorf("cancellation rate: %w", shareddomain.ErrNoData)
	}

	art := s.artifact(domain.FileCancellationRate, len(items),
		"Cancellation rate by airline", "Cancellations vs scheduled flights (percentage)")
	chart := domain.CategoryChart{
		Title:  "Cancellation rate by airline (%)",
		YLabel: "% cancellations",
		Items:  items,
	}

	return s.finish(art, s.renderer.Bar(art.Path, chart))
}

// TopRoutesByDelay barres horizontales des routes les plus en retard
func (s *ChartService) TopRoutesByDelay(ctx context.Context) (domain.Artifact, error) {
	rows, err := s.queries.RouteDelays(ctx)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("route delays query: %w", err)
	}

	items, err := domain.TopRoutesByDelay(rows, s.opts.TopRoutes)
	if err != nil {
		return domain.Artifact{}, err
	}
	if len(items) == 0 {
		return domain.Artifact{}, fmt.Errorf("top routes by delay: %w", shareddomain.ErrNoData)
	}

	art := s.artifact(domain.FileTopRoutesByDelay, len(items),
		fmt.Sprintf("Top-%d routes by delay %%", s.opts.TopRoutes), "Routes with the highest delay share")
	chart := domain.CategoryChart{
		Title:  fmt.Sprintf("Top-%d routes by delay percentage", s.opts.TopRoutes),
		XLabel: "% delayed",
		Items:  items,
	}

	return s.finish(art, s.renderer.HorizontalBar(art.Path, chart))
}

// MonthlyOnTime courbe mensuelle du % de départs à l'heure
func (s *ChartService) MonthlyOnTime(ctx context.Context) (domain.Artifact, error) {
	rows, err := s.queries.MonthlyOnTime(ctx)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("monthly on-time query: %w", err)
	}

	points, err := domain.MonthlyOnTimeSeries(rows)
	if err != nil {
		return domain.Artifact{}, err
	}
	if len(points) == 0 {
		return domain.Artifact{}, fmt.Errorf("monthly on-time: %w", shareddomain.ErrNoData)
	}

	art := s.artifact(domain.FileMonthlyOnTime, len(points),
		"Monthly on-time rate", "Trend of on-time departures across months")
	chart := domain.TimeChart{
		Title:  "Monthly on-time departure rate (%)",
		XLabel: "Month",
		YLabel: "% on-time",
		Points: points,
	}

	return s.finish(art, s.renderer.Line(art.Path, chart))
}

// DelayRateDistribution histogramme des % de retard route × mois
func (s *ChartService) DelayRateDistribution(ctx context.Context) (domain.Artifact, error) {
	rows, err := s.queries.RouteMonthDelays(ctx)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("route-month delays query: %w", err)
	}

	values, err := domain.DelayRateDistribution(rows)
	if err != nil {
		return domain.Artifact{}, err
	}
	if len(values) == 0 {
		return domain.Artifact{}, fmt.Errorf("delay rate distribution: %w", shareddomain.ErrNoData)
	}

	art := s.artifact(domain.FileDelayDistribution, len(values),
		"Delay rate distribution", "Histogram of monthly delay % across routes")
	chart := domain.HistogramChart{
		Title:  "Distribution of route-month delay rates (%)",
		XLabel: "% delayed",
		YLabel: "Frequency",
		Values: values,
		Bins:   s.opts.HistogramBins,
	}

	return s.finish(art, s.renderer.Histogram(art.Path, chart))
}

// FlightsVsDelay nuage volume mensuel / % de retard, une série par compagnie
func (s *ChartService) FlightsVsDelay(ctx context.Context) (domain.Artifact, error) {
	rows, err := s.queries.AirlineMonthDelays(ctx)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("airline-month delays query: %w", err)
	}

	series, err := domain.FlightsVsDelayByAirline(rows)
	if err != nil {
		return domain.Artifact{}, err
	}
	chart := domain.ScatterChart{
		Title:  "Flights volume vs delay % by airline (monthly points)",
		XLabel: "Sectors flown (per month)",
		YLabel: "% delayed",
		Series: series,
	}
	if chart.PointCount() == 0 {
		return domain.Artifact{}, fmt.Errorf("flights vs delay: %w", shareddomain.ErrNoData)
	}

	art := s.artifact(domain.FileFlightsVsDelay, chart.PointCount(),
		"Flights vs delay %", "Scatter of monthly flights vs delay % by airline")

	return s.finish(art, s.renderer.Scatter(art.Path, chart))
}

func (s *ChartService) artifact(file string, rows int, title, description string) domain.Artifact {
	return domain.Artifact{
		Name:        file,
		Path:        filepath.Join(s.opts.Dir, file),
		Rows:        rows,
		Title:       title,
		Description: description,
	}
}

func (s *ChartService) finish(art domain.Artifact, renderErr error) (domain.Artifact, error) {
	if renderErr != nil {
		return domain.Artifact{}, fmt.Errorf("render %s: %w", art.Name, renderErr)
	}

	s.logger.Debug("chart written", "file", art.Path, "rows", art.Rows)
	if s.reporter != nil {
		s.reporter.ChartSaved(art.Path, art.Rows, art.Title, art.Description)
	}
	return art, nil
}
