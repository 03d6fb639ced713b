package application

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	analyticsinfra "otpreport/internal/analytics/infrastructure"
	"otpreport/internal/interactive/infrastructure"
	shareddomain "otpreport/internal/shared/domain"
	"otpreport/internal/testhelpers"
)

type fakeOpener struct {
	opened []string
	err    error
}

func (o *fakeOpener) Open(path string) error {
	o.opened = append(o.opened, path)
	return o.err
}

func TestSliderService_WritesHTMLAndOpens(t *testing.T) {
	repo := analyticsinfra.NewOTPQueryRepository(testhelpers.SetupSmallDB(t))
	opener := &fakeOpener{}
	dir := t.TempDir()

	svc := NewSliderService(repo, infrastructure.NewPlotlyWriter(), opener, nil, dir, true)
	art, err := svc.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if art.Rows != 2 {
		t.Errorf("expected 2 frames, got %d", art.Rows)
	}
	if len(opener.opened) != 1 || opener.opened[0] != art.Path {
		t.Errorf("expected artifact to be opened once, got %v", opener.opened)
	}

	raw, err := os.ReadFile(art.Path)
	if err != nil {
		t.Fatal(err)
	}
	html := string(raw)
	for _, want := range []string{"cdn.plot.ly", `"2023-01"`, `"2023-02"`, "Qantas", "animate"} {
		if !strings.Contains(html, want) {
			t.Errorf("html should contain %q", want)
		}
	}
	if strings.Contains(html, "All Airlines") {
		t.Error("aggregate row must not be plotted")
	}
	if strings.Index(html, `"name":"2023-01"`) > strings.Index(html, `"name":"2023-02"`) {
		t.Error("frames must be chronological")
	}
}

func TestSliderService_BrowserDisabled(t *testing.T) {
	repo := analyticsinfra.NewOTPQueryRepository(testhelpers.SetupSmallDB(t))
	opener := &fakeOpener{}

	svc := NewSliderService(repo, infrastructure.NewPlotlyWriter(), opener, nil, t.TempDir(), false)
	if _, err := svc.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(opener.opened) != 0 {
		t.Errorf("browser must not be opened, got %v", opener.opened)
	}
}

func TestSliderService_OpenFailureIsNotFatal(t *testing.T) {
	repo := analyticsinfra.NewOTPQueryRepository(testhelpers.SetupSmallDB(t))
	opener := &fakeOpener{err: errors.New("no display")}

	svc := NewSliderService(repo, infrastructure.NewPlotlyWriter(), opener, nil, t.TempDir(), true)
	if _, err := svc.Generate(context.Background()); err != nil {
		t.Fatalf("open failure should only be logged, got %v", err)
	}
}

func TestSliderService_EmptyDatabase(t *testing.T) {
	repo := analyticsinfra.NewOTPQueryRepository(testhelpers.SetupTestDB(t))

	svc := NewSliderService(repo, infrastructure.NewPlotlyWriter(), nil, nil, t.TempDir(), false)
	if _, err := svc.Generate(context.Background()); !errors.Is(err, shareddomain.ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}
