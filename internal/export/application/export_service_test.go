package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	analytics "otpreport/internal/analytics/domain"
	analyticsinfra "otpreport/internal/analytics/infrastructure"
	"otpreport/internal/export/domain"
	"otpreport/internal/export/infrastructure"
	"otpreport/internal/testhelpers"
)

type recordingOutput struct {
	lines []string
}

func (r *recordingOutput) OK(format string, args ...interface{}) {
	r.lines = append(r.lines, "[OK] "+fmt.Sprintf(format, args...))
}

func fixedClock() time.Time {
	return time.Date(2024, 3, 7, 9, 5, 0, 0, time.UTC)
}

func TestExportService_Export(t *testing.T) {
	repo := analyticsinfra.NewOTPQueryRepository(testhelpers.SetupSmallDB(t))
	dir := filepath.Join(t.TempDir(), "exports")
	out := &recordingOutput{}

	svc := NewExportService(repo, infrastructure.NewExcelWriter(), nil, out, nil, Options{Dir: dir}).
		WithClock(fixedClock)

	res, err := svc.Export(context.Background())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	wantPath := filepath.Join(dir, "report_20240307_0905.xlsx")
	if res.Path != wantPath || res.Sheets != 3 || res.Rows != 8 {
		t.Errorf("unexpected result %+v", res)
	}
	if len(out.lines) != 1 || out.lines[0] != "[OK] Created file report_20240307_0905.xlsx, 3 sheets, 8 rows -> "+wantPath {
		t.Errorf("unexpected output %q", out.lines)
	}

	f, err := excelize.OpenFile(res.Path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if strings.Join(sheets, ",") != "AirlineShare,TopRoutesDelays,MonthlyOnTime" {
		t.Errorf("unexpected sheets %v", sheets)
	}

	rows, _ := f.GetRows(SheetAirlineShare)
	if len(rows) != 5 || rows[1][0] != "Qantas" || rows[1][1] != "19" || rows[4][0] != "Ghost" {
		t.Errorf("unexpected AirlineShare rows %v", rows)
	}

	rows, _ = f.GetRows(SheetTopRoutesDelays)
	if len(rows) != 3 || strings.Join(rows[0], ",") != "origin,destination,delayed,flown" {
		t.Fatalf("unexpected TopRoutesDelays rows %v", rows)
	}
	if strings.Join(rows[1], ",") != "Sydney,Melbourne,14,26" {
		t.Errorf("highest delay route must come first, got %v", rows[1])
	}

	formats, _ := f.GetConditionalFormats(SheetMonthlyOnTime)
	for _, ref := range []string{"A2:A3", "B2:B3", "C2:C3", "D2:D3"} {
		if _, ok := formats[ref]; !ok {
			t.Errorf("expected color scale on %s", ref)
		}
	}
}

func TestExportService_ParquetCopy(t *testing.T) {
	repo := analyticsinfra.NewOTPQueryRepository(testhelpers.SetupSmallDB(t))
	dir := t.TempDir()
	out := &recordingOutput{}

	svc := NewExportService(repo, infrastructure.NewExcelWriter(), infrastructure.NewParquetWriter(), out, nil,
		Options{Dir: dir, Parquet: true}).WithClock(fixedClock)

	res, err := svc.Export(context.Background())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if len(res.ParquetFiles) != 3 {
		t.Fatalf("expected 3 parquet files, got %v", res.ParquetFiles)
	}
	want := filepath.Join(dir, "report_20240307_0905", "TopRoutesDelays.parquet")
	if res.ParquetFiles[1] != want {
		t.Errorf("expected %s, got %s", want, res.ParquetFiles[1])
	}
	for _, p := range res.ParquetFiles {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing %s: %v", p, err)
		}
	}
	if len(out.lines) != 2 {
		t.Errorf("expected 2 output lines, got %q", out.lines)
	}
}

type stubQueries struct {
	limit int
	err   error
}

func (s *stubQueries) AirlineFlightTotals(context.Context) ([]analytics.AirlineFlights, error) {
	return []analytics.AirlineFlights{{AirlineName: "Qantas", Flights: 1}}, nil
}

func (s *stubQueries) TopRouteDelayTotals(_ context.Context, limit int) ([]analytics.RouteDelayTotals, error) {
	s.limit = limit
	return nil, s.err
}

func (s *stubQueries) MonthlyTotals(context.Context) ([]analytics.MonthlyTotals, error) {
	return nil, nil
}

type failingWriter struct{}

func (failingWriter) Write(string, *domain.Workbook) error { return errors.New("disk full") }

func TestExportService_DefaultsAndErrors(t *testing.T) {
	q := &stubQueries{}
	svc := NewExportService(q, failingWriter{}, nil, nil, nil, Options{Dir: t.TempDir()})

	wb, err := svc.BuildWorkbook(context.Background())
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}
	if q.limit != DefaultTopRoutes {
		t.Errorf("expected default limit %d, got %d", DefaultTopRoutes, q.limit)
	}
	if wb.SheetCount() != 3 || wb.RowCount() != 1 {
		t.Errorf("empty tables still produce sheets: %d sheets, %d rows", wb.SheetCount(), wb.RowCount())
	}

	if _, err := svc.Export(context.Background()); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected writer error, got %v", err)
	}

	boom := errors.New("boom")
	q.err = boom
	if _, err := svc.Export(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected query error, got %v", err)
	}
}
