package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"otpreport/database"
	"otpreport/internal/analytics/domain"
	"otpreport/internal/shared/infrastructure"
)

// FactCommandRepository écritures sur facts_otp (seule la démo ajoute des lignes)
type FactCommandRepository struct {
	infrastructure.BaseRepository
}

// NewFactCommandRepository crée un nouveau repository d'écriture pour les faits
func NewFactCommandRepository(h *database.Handle) *FactCommandRepository {
	return &FactCommandRepository{
		BaseRepository: infrastructure.NewBaseRepository(h),
	}
}

// PickAnyKey retourne une clé existante quelconque. Sans ORDER BY, la ligne
// choisie dépend du moteur. found=false si la table est vide.
func (r *FactCommandRepository) PickAnyKey(ctx context.Context) (domain.FactKey, bool, error) {
	base := r.WithContext(ctx)

	var key domain.FactKey
	err := base.QueryRow(`SELECT route_id, airline_id, cal_id FROM facts_otp LIMIT 1`).
		Scan(&key.RouteID, &key.AirlineID, &key.CalID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.FactKey{}, false, nil
	}
	if err != nil {
		return domain.FactKey{}, false, fmt.Errorf("pick fact key: %w", err)
	}

	return key, true, nil
}

// InsertFact ajoute une ligne de faits dans la transaction tx
func (r *FactCommandRepository) InsertFact(ctx context.Context, tx *sql.Tx, key domain.FactKey, c domain.FactCounts) error {
	base := r.WithContext(ctx).WithTx(tx)

	_, err := base.Exec(`
		INSERT INTO facts_otp
		    (route_id, airline_id, cal_id,
		     sectors_scheduled, sectors_flown, cancellations,
		     departures_on_time, arrivals_on_time,
		     departures_delayed, arrivals_delayed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		key.RouteID, key.AirlineID, key.CalID,
		c.SectorsScheduled.Value(), c.SectorsFlown.Value(), c.Cancellations.Value(),
		c.DeparturesOnTime.Value(), c.ArrivalsOnTime.Value(),
		c.DeparturesDelayed.Value(), c.ArrivalsDelayed.Value(),
	)
	if err != nil {
		return fmt.Errorf("insert fact: %w", err)
	}

	return nil
}

// Count nombre de lignes de faits
func (r *FactCommandRepository) Count(ctx context.Context) (int64, error) {
	base := r.WithContext(ctx)

	var n int64
	if err := base.QueryRow(`SELECT COUNT(*) FROM facts_otp`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count facts: %w", err)
	}
	return n, nil
}
