package infrastructure

import (
	"context"
	"testing"

	"otpreport/internal/testhelpers"
)

// Tests d'intégration sur la base PostgreSQL réelle (.env), en lecture seule

func TestOTPQueryRepository_Postgres_MonthlyOnTime(t *testing.T) {
	testhelpers.SkipIfNoDatabase(t)
	repo := NewOTPQueryRepository(testhelpers.SetupPostgres(t))

	rows, err := repo.MonthlyOnTime(context.Background())
	if err != nil {
		t.Fatalf("MonthlyOnTime: %v", err)
	}

	for i, r := range rows {
		if i > 0 && r.Month.Before(rows[i-1].Month) {
			t.Errorf("months out of order at %s", r.Month.Label())
		}
		if r.Flown <= 0 {
			continue
		}
		pct, err := r.OnTimePct()
		if err != nil {
			t.Errorf("%s: %v", r.Month.Label(), err)
			continue
		}
		if r.OnTime <= r.Flown && (pct.Float64() < 0 || pct.Float64() > 100) {
			t.Errorf("%s: on-time %% out of range: %s", r.Month.Label(), pct)
		}
	}
}

func TestOTPQueryRepository_Postgres_TopRouteDelayTotals(t *testing.T) {
	testhelpers.SkipIfNoDatabase(t)
	repo := NewOTPQueryRepository(testhelpers.SetupPostgres(t))

	rows, err := repo.TopRouteDelayTotals(context.Background(), 25)
	if err != nil {
		t.Fatalf("TopRouteDelayTotals: %v", err)
	}
	if len(rows) > 25 {
		t.Errorf("limit not applied: %d rows", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Delayed > rows[i-1].Delayed {
			t.Errorf("rows must be sorted by delayed desc at %d", i)
		}
		if rows[i].Flown <= 0 {
			t.Errorf("routes without flown sectors must be excluded")
		}
	}
}
