package application

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	analytics "otpreport/internal/analytics/domain"
	chartsdomain "otpreport/internal/charts/domain"
	"otpreport/internal/interactive/domain"
	shareddomain "otpreport/internal/shared/domain"
)

// VolumeQueries volumes mensuels par compagnie
type VolumeQueries interface {
	AirlineMonthVolume(ctx context.Context) ([]analytics.AirlineMonthVolume, error)
}

// Writer écrit le graphique animé
type Writer interface {
	Write(path string, c domain.SliderChart) error
}

// Opener affiche l'artefact (navigateur)
type Opener interface {
	Open(path string) error
}

// SliderService produit charts/plotly_slider.html
type SliderService struct {
	queries     VolumeQueries
	writer      Writer
	opener      Opener
	logger      *slog.Logger
	dir         string
	openBrowser bool
}

// NewSliderService crée le service; opener peut être nil
func NewSliderService(q VolumeQueries, w Writer, o Opener, logger *slog.Logger, dir string, openBrowser bool) *SliderService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SliderService{queries: q, writer: w, opener: o, logger: logger, dir: dir, openBrowser: openBrowser}
}

// Generate écrit l'animation puis l'ouvre si demandé. L'échec de l'ouverture
// n'est qu'un avertissement de log, le fichier reste valide.
func (s *SliderService) Generate(ctx context.Context) (chartsdomain.Artifact, error) {
	rows, err := s.queries.AirlineMonthVolume(ctx)
	if err != nil {
		return chartsdomain.Artifact{}, fmt.Errorf("airline volume query: %w", err)
	}

	chart := domain.BuildSlider("Sectors flown by airline (time slider)", rows)
	if len(chart.Frames) == 0 {
		return chartsdomain.Artifact{}, fmt.Errorf("time slider: %w", shareddomain.ErrNoData)
	}

	art := chartsdomain.Artifact{
		Name:        chartsdomain.FileInteractiveSlider,
		Path:        filepath.Join(s.dir, chartsdomain.FileInteractiveSlider),
		Rows:        len(chart.Frames),
		Title:       chart.Title,
		Description: "Monthly sectors flown per airline with a time slider",
	}

	if err := s.writer.Write(art.Path, chart); err != nil {
		return chartsdomain.Artifact{}, fmt.Errorf("write %s: %w", art.Name, err)
	}
	s.logger.Debug("slider written", "file", art.Path, "frames", len(chart.Frames), "airlines", len(chart.Airlines))

	if s.openBrowser && s.opener != nil {
		if err := s.opener.Open(art.Path); err != nil {
			s.logger.Warn("could not open browser", "file", art.Path, "error", err)
		}
	}

	return art, nil
}
