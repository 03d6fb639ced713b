package application

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	analytics "otpreport/internal/analytics/domain"
	analyticsinfra "otpreport/internal/analytics/infrastructure"
	"otpreport/internal/charts/domain"
	chartsinfra "otpreport/internal/charts/infrastructure"
	shareddomain "otpreport/internal/shared/domain"
	sharedinfra "otpreport/internal/shared/infrastructure"
	"otpreport/internal/testhelpers"
)

// recordingRenderer garde les graphiques demandés sans rien dessiner
type recordingRenderer struct {
	calls      []string
	categories map[string]domain.CategoryChart
	scatter    domain.ScatterChart
	fail       error
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{categories: make(map[string]domain.CategoryChart)}
}

func (r *recordingRenderer) record(path string) error {
	r.calls = append(r.calls, filepath.Base(path))
	return r.fail
}

func (r *recordingRenderer) Pie(path string, c domain.CategoryChart) error {
	r.categories["pie"] = c
	return r.record(path)
}

func (r *recordingRenderer) Bar(path string, c domain.CategoryChart) error {
	r.categories["bar"] = c
	return r.record(path)
}

func (r *recordingRenderer) HorizontalBar(path string, c domain.CategoryChart) error {
	r.categories["barh"] = c
	return r.record(path)
}

func (r *recordingRenderer) Line(path string, c domain.TimeChart) error {
	return r.record(path)
}

func (r *recordingRenderer) Histogram(path string, c domain.HistogramChart) error {
	return r.record(path)
}

func (r *recordingRenderer) Scatter(path string, c domain.ScatterChart) error {
	r.scatter = c
	return r.record(path)
}

// emptyQueries aucune donnée
type emptyQueries struct{}

func (emptyQueries) AirlineFlights(context.Context) ([]analytics.AirlineFlights, error) {
	return []analytics.AirlineFlights{{AirlineName: "All Airlines", Flights: 10}}, nil
}
func (emptyQueries) AirlineCancellations(context.Context) ([]analytics.AirlineCancellations, error) {
	return nil, nil
}
func (emptyQueries) RouteDelays(context.Context) ([]analytics.RouteDelays, error) { return nil, nil }
func (emptyQueries) MonthlyOnTime(context.Context) ([]analytics.MonthlyOnTime, error) {
	return nil, nil
}
func (emptyQueries) RouteMonthDelays(context.Context) ([]analytics.RouteMonthDelays, error) {
	return nil, nil
}
func (emptyQueries) AirlineMonthDelays(context.Context) ([]analytics.AirlineMonthDelays, error) {
	return nil, nil
}

func TestChartService_AllGeneratorsOnSmallDataset(t *testing.T) {
	ctx := context.Background()
	repo := analyticsinfra.NewOTPQueryRepository(testhelpers.SetupSmallDB(t))
	renderer := newRecordingRenderer()
	var out bytes.Buffer

	svc := NewChartService(repo, renderer, sharedinfra.NewConsole(&out), nil, Options{Dir: "charts"})

	for _, g := range svc.Generators() {
		art, err := g.Run(ctx)
		if err != nil {
			t.Fatalf("%s: %v", g.Name, err)
		}
		if art.Rows == 0 {
			t.Errorf("%s: no rows reported", g.Name)
		}
		if art.Path != filepath.Join("charts", art.Name) {
			t.Errorf("%s: unexpected path %s", g.Name, art.Path)
		}
	}

	want := []string{
		domain.FileAirlineShare,
		domain.FileCancellationRate,
		domain.FileTopRoutesByDelay,
		domain.FileMonthlyOnTime,
		domain.FileDelayDistribution,
		domain.FileFlightsVsDelay,
	}
	if strings.Join(renderer.calls, ",") != strings.Join(want, ",") {
		t.Errorf("unexpected render order: %v", renderer.calls)
	}

	for _, c := range renderer.categories["pie"].Items {
		if analytics.IsAggregateAirline(c.Label) {
			t.Errorf("pie must not contain the aggregate row")
		}
	}
	for _, s := range renderer.scatter.Series {
		if analytics.IsAggregateAirline(s.Name) {
			t.Errorf("scatter must not contain the aggregate row")
		}
	}

	barh := renderer.categories["barh"].Items
	if last := barh[len(barh)-1]; last.Label != "Sydney → Melbourne" || last.Value != 53.85 {
		t.Errorf("highest route must be last, got %+v", last)
	}

	if got := strings.Count(out.String(), "[OK] Saved chart:"); got != 6 {
		t.Errorf("expected 6 summaries, got %d\n%s", got, out.String())
	}
}

func TestChartService_NoDataSkipsRendering(t *testing.T) {
	renderer := newRecordingRenderer()
	svc := NewChartService(emptyQueries{}, renderer, nil, nil, Options{Dir: t.TempDir()})

	for _, g := range svc.Generators() {
		if _, err := g.Run(context.Background()); !errors.Is(err, shareddomain.ErrNoData) {
			t.Errorf("%s: expected ErrNoData, got %v", g.Name, err)
		}
	}
	if len(renderer.calls) != 0 {
		t.Errorf("nothing should be rendered, got %v", renderer.calls)
	}
}

func TestChartService_RenderErrorPropagates(t *testing.T) {
	repo := analyticsinfra.NewOTPQueryRepository(testhelpers.SetupSmallDB(t))
	renderer := newRecordingRenderer()
	renderer.fail = errors.New("disk full")

	svc := NewChartService(repo, renderer, nil, nil, Options{Dir: t.TempDir()})
	if _, err := svc.AirlineShare(context.Background()); !errors.Is(err, renderer.fail) {
		t.Errorf("expected render error, got %v", err)
	}
}

func TestChartService_RegenerationIsByteIdentical(t *testing.T) {
	ctx := context.Background()
	h, _ := testhelpers.SetupSeededDB(t)
	dir := t.TempDir()

	svc := NewChartService(
		analyticsinfra.NewOTPQueryRepository(h),
		chartsinfra.NewPNGRenderer(),
		nil, nil,
		Options{Dir: dir},
	)

	for _, g := range svc.Generators() {
		first, err := g.Run(ctx)
		if err != nil {
			t.Fatalf("%s: %v", g.Name, err)
		}
		before, err := os.ReadFile(first.Path)
		if err != nil {
			t.Fatalf("%s: %v", g.Name, err)
		}

		second, err := g.Run(ctx)
		if err != nil {
			t.Fatalf("%s (second run): %v", g.Name, err)
		}
		after, err := os.ReadFile(second.Path)
		if err != nil {
			t.Fatalf("%s: %v", g.Name, err)
		}

		if len(before) == 0 {
			t.Errorf("%s: empty file", g.Name)
		}
		if !bytes.Equal(before, after) {
			t.Errorf("%s: regenerated file differs", g.Name)
		}
		if !bytes.HasPrefix(before, []byte("\x89PNG")) {
			t.Errorf("%s: not a PNG", g.Name)
		}
	}
}
