package domain

import (
	"otpreport/internal/shared/domain"
)

// FactKey identifie une combinaison route / compagnie / mois de facts_otp
type FactKey struct {
	RouteID   int64
	AirlineID int64
	CalID     int64
}

// FactCounts compteurs d'une ligne de faits
type FactCounts struct {
	SectorsScheduled  domain.Count
	SectorsFlown      domain.Count
	Cancellations     domain.Count
	DeparturesOnTime  domain.Count
	ArrivalsOnTime    domain.Count
	DeparturesDelayed domain.Count
	ArrivalsDelayed   domain.Count
}

// DemoCounts petite ligne insérée par la démonstration: 2 programmés, 2 volés,
// 0 annulation, 1 à l'heure et 1 en retard au départ comme à l'arrivée
func DemoCounts() FactCounts {
	return FactCounts{
		SectorsScheduled:  domain.MustNewCount(2),
		SectorsFlown:      domain.MustNewCount(2),
		Cancellations:     domain.MustNewCount(0),
		DeparturesOnTime:  domain.MustNewCount(1),
		ArrivalsOnTime:    domain.MustNewCount(1),
		DeparturesDelayed: domain.MustNewCount(1),
		ArrivalsDelayed:   domain.MustNewCount(1),
	}
}
