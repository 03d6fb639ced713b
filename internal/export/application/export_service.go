package application

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	analytics "otpreport/internal/analytics/domain"
	"otpreport/internal/export/domain"
	shareddomain "otpreport/internal/shared/domain"
)

// Noms des feuilles du rapport
const (
	SheetAirlineShare    = "AirlineShare"
	SheetTopRoutesDelays = "TopRoutesDelays"
	SheetMonthlyOnTime   = "MonthlyOnTime"
)

// DefaultTopRoutes nombre de routes exportées dans TopRoutesDelays
const DefaultTopRoutes = 25

// Queries agrégations exportées
type Queries interface {
	AirlineFlightTotals(ctx context.Context) ([]analytics.AirlineFlights, error)
	TopRouteDelayTotals(ctx context.Context, limit int) ([]analytics.RouteDelayTotals, error)
	MonthlyTotals(ctx context.Context) ([]analytics.MonthlyTotals, error)
}

// WorkbookWriter écrit le classeur XLSX
type WorkbookWriter interface {
	Write(path string, wb *domain.Workbook) error
}

// SheetCopier copie les feuilles dans un format secondaire (parquet)
type SheetCopier interface {
	WriteAll(ctx context.Context, dir string, wb *domain.Workbook) ([]string, error)
}

// Reporter lignes de progression
type Reporter interface {
	OK(format string, args ...interface{})
}

// Options paramètres de l'export
type Options struct {
	Dir       string
	TopRoutes int
	Parquet   bool
}

// Result ce qui a été écrit
type Result struct {
	Path         string
	Sheets       int
	Rows         int
	ParquetFiles []string
}

// ExportService construit les trois tables du rapport et les écrit
type ExportService struct {
	queries Queries
	writer  WorkbookWriter
	copier  SheetCopier
	out     Reporter
	logger  *slog.Logger
	opts    Options
	now     func() time.Time
}

// NewExportService crée le service; copier peut être nil si Parquet est désactivé
func NewExportService(q Queries, w WorkbookWriter, copier SheetCopier, out Reporter, logger *slog.Logger, opts Options) *ExportService {
	if opts.TopRoutes <= 0 {
		opts.TopRoutes = DefaultTopRoutes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportService{
		queries: q,
		writer:  w,
		copier:  copier,
		out:     out,
		logger:  logger,
		opts:    opts,
		now:     time.Now,
	}
}

// WithClock remplace l'horloge (nom de fichier déterministe en test)
func (s *ExportService) WithClock(now func() time.Time) *ExportService {
	s.now = now
	return s
}

// BuildWorkbook exécute les trois requêtes d'export
func (s *ExportService) BuildWorkbook(ctx context.Context) (*domain.Workbook, error) {
	wb := domain.NewWorkbook(s.now())

	share, err := s.airlineShare(ctx)
	if err != nil {
		return nil, err
	}
	routes, err := s.topRoutes(ctx)
	if err != nil {
		return nil, err
	}
	monthly, err := s.monthlyOnTime(ctx)
	if err != nil {
		return nil, err
	}

	for _, sheet := range []domain.Sheet{
		{Name: SheetAirlineShare, Table: share},
		{Name: SheetTopRoutesDelays, Table: routes},
		{Name: SheetMonthlyOnTime, Table: monthly},
	} {
		if err := wb.AddSheet(sheet.Name, sheet.Table); err != nil {
			return nil, err
		}
	}
	return wb, nil
}

// Export construit puis écrit exports/report_<YYYYMMDD_HHMM>.xlsx
func (s *ExportService) Export(ctx context.Context) (Result, error) {
	wb, err := s.BuildWorkbook(ctx)
	if err != nil {
		return Result{}, err
	}

	path := filepath.Join(s.opts.Dir, wb.FileName())
	if err := s.writer.Write(path, wb); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", path, err)
	}

	res := Result{Path: path, Sheets: wb.SheetCount(), Rows: wb.RowCount()}
	s.logger.Debug("workbook written", "file", path, "sheets", res.Sheets, "rows", res.Rows)
	if s.out != nil {
		s.out.OK("Created file %s, %d sheets, %d rows -> %s", wb.FileName(), res.Sheets, res.Rows, path)
	}

	if s.opts.Parquet && s.copier != nil {
		dir := filepath.Join(s.opts.Dir, domain.ReportBaseName(wb.CreatedAt()))
		files, err := s.copier.WriteAll(ctx, dir, wb)
		if err != nil {
			return res, fmt.Errorf("parquet copy: %w", err)
		}
		res.ParquetFiles = files
		if s.out != nil {
			s.out.OK("Wrote %d parquet files -> %s", len(files), dir)
		}
	}

	return res, nil
}

func (s *ExportService) airlineShare(ctx context.Context) (*shareddomain.Table, error) {
	rows, err := s.queries.AirlineFlightTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("airline totals query: %w", err)
	}

	t := shareddomain.NewTable(
		shareddomain.Column{Name: "airline_name", Type: shareddomain.ColumnText},
		shareddomain.Column{Name: "flights", Type: shareddomain.ColumnInteger},
	)
	for _, r := range rows {
		if err := t.AppendRow(r.AirlineName, r.Flights); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (s *ExportService) topRoutes(ctx context.Context) (*shareddomain.Table, error) {
	rows, err := s.queries.TopRouteDelayTotals(ctx, s.opts.TopRoutes)
	if err != nil {
		return nil, fmt.Errorf("route delay totals query: %w", err)
	}

	t := shareddomain.NewTable(
		shareddomain.Column{Name: "origin", Type: shareddomain.ColumnText},
		shareddomain.Column{Name: "destination", Type: shareddomain.ColumnText},
		shareddomain.Column{Name: "delayed", Type: shareddomain.ColumnInteger},
		shareddomain.Column{Name: "flown", Type: shareddomain.ColumnInteger},
	)
	for _, r := range rows {
		if err := t.AppendRow(r.Origin, r.Destination, r.Delayed, r.Flown); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (s *ExportService) monthlyOnTime(ctx context.Context) (*shareddomain.Table, error) {
	rows, err := s.queries.MonthlyTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("monthly totals query: %w", err)
	}

	t := shareddomain.NewTable(
		shareddomain.Column{Name: "year", Type: shareddomain.ColumnInteger},
		shareddomain.Column{Name: "month_num", Type: shareddomain.ColumnInteger},
		shareddomain.Column{Name: "ontime", Type: shareddomain.ColumnInteger},
		shareddomain.Column{Name: "flown", Type: shareddomain.ColumnInteger},
	)
	for _, r := range rows {
		if err := t.AppendRow(r.Year, r.MonthNum, r.OnTime, r.Flown); err != nil {
			return nil, err
		}
	}
	return t, nil
}
