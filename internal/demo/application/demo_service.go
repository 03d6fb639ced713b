package application

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	analytics "otpreport/internal/analytics/domain"
	chartsdomain "otpreport/internal/charts/domain"
	sharedinfra "otpreport/internal/shared/infrastructure"
)

// FactStore lecture d'une clé existante et insertion transactionnelle
type FactStore interface {
	PickAnyKey(ctx context.Context) (analytics.FactKey, bool, error)
	InsertFact(ctx context.Context, tx *sql.Tx, key analytics.FactKey, c analytics.FactCounts) error
}

// Refresher régénère le graphique impacté par l'insertion
type Refresher func(ctx context.Context) (chartsdomain.Artifact, error)

// Reporter lignes de progression
type Reporter interface {
	OK(format string, args ...interface{})
	Warn(format string, args ...interface{})
}

// DemoService insère une ligne de démonstration puis rafraîchit la courbe mensuelle
type DemoService struct {
	facts   FactStore
	uow     sharedinfra.UnitOfWork
	refresh Refresher
	out     Reporter
	logger  *slog.Logger
}

// NewDemoService crée le service; refresh peut être nil
func NewDemoService(facts FactStore, uow sharedinfra.UnitOfWork, refresh Refresher, out Reporter, logger *slog.Logger) *DemoService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DemoService{facts: facts, uow: uow, refresh: refresh, out: out, logger: logger}
}

// Run table vide: avertissement et retour nil sans mutation
func (s *DemoService) Run(ctx context.Context) error {
	key, found, err := s.facts.PickAnyKey(ctx)
	if err != nil {
		return fmt.Errorf("pick fact key: %w", err)
	}
	if !found {
		s.out.Warn("No data in facts_otp to demo-insert.")
		return nil
	}

	err = s.uow.Execute(ctx, func(tx *sql.Tx) error {
		return s.facts.InsertFact(ctx, tx, key, analytics.DemoCounts())
	})
	if err != nil {
		return fmt.Errorf("demo insert: %w", err)
	}
	s.logger.Info("demo row inserted", "route_id", key.RouteID, "airline_id", key.AirlineID, "cal_id", key.CalID)
	s.out.OK("Inserted 1 demo row into facts_otp.")

	if s.refresh == nil {
		return nil
	}
	if _, err := s.refresh(ctx); err != nil {
		return fmt.Errorf("refresh after demo insert: %w", err)
	}
	s.out.OK("Regenerated line chart after demo insert.")
	return nil
}
