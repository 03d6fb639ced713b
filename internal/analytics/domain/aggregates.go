package domain

import (
	"strings"

	"otpreport/internal/shared/domain"
)

// AllAirlines libellé de la ligne "toutes compagnies" publiée avec les données OTP
const AllAirlines = "All Airlines"

// IsAggregateAirline vrai pour la ligne catch-all, exclue des ventilations par compagnie
func IsAggregateAirline(name string) bool {
	return strings.ToLower(strings.TrimSpace(name)) == strings.ToLower(AllAirlines)
}

// AirlineFlights secteurs volés par compagnie
type AirlineFlights struct {
	AirlineName string
	Flights     int64
}

// AirlineCancellations annulations et vols programmés par compagnie
type AirlineCancellations struct {
	AirlineName   string
	Cancellations int64
	Scheduled     int64
}

// CancelRate cancellations / scheduled * 100
func (a AirlineCancellations) CancelRate() (domain.Percentage, error) {
	return domain.NewPercentage(a.Cancellations, a.Scheduled)
}

// RouteDelays retards cumulés (départ + arrivée) et secteurs volés par route
type RouteDelays struct {
	RouteID     int64
	Origin      string
	Destination string
	Delayed     int64
	Flown       int64
}

// Label "origine → destination"
func (r RouteDelays) Label() string {
	return r.Origin + " → " + r.Destination
}

// DelayPct delayed / flown * 100
func (r RouteDelays) DelayPct() (domain.Percentage, error) {
	return domain.NewPercentage(r.Delayed, r.Flown)
}

// MonthlyOnTime départs à l'heure et secteurs volés par mois (toutes routes)
type MonthlyOnTime struct {
	Month      domain.Month
	MonthLabel string
	OnTime     int64
	Flown      int64
}

// OnTimePct on-time / flown * 100
func (m MonthlyOnTime) OnTimePct() (domain.Percentage, error) {
	return domain.NewPercentage(m.OnTime, m.Flown)
}

// RouteMonthDelays retards par route et par mois
type RouteMonthDelays struct {
	RouteID     int64
	Origin      string
	Destination string
	Month       domain.Month
	Delayed     int64
	Flown       int64
}

// DelayPct delayed / flown * 100
func (r RouteMonthDelays) DelayPct() (domain.Percentage, error) {
	return domain.NewPercentage(r.Delayed, r.Flown)
}

// AirlineMonthDelays volume et retards par compagnie et par mois
type AirlineMonthDelays struct {
	AirlineName string
	Month       domain.Month
	Flown       int64
	Delayed     int64
}

// DelayPct delayed / flown * 100
func (a AirlineMonthDelays) DelayPct() (domain.Percentage, error) {
	return domain.NewPercentage(a.Delayed, a.Flown)
}

// AirlineMonthVolume secteurs volés par compagnie et par mois
type AirlineMonthVolume struct {
	AirlineName string
	Month       domain.Month
	Flown       int64
}

// RouteDelayTotals ligne d'export: retards et volume par paire origine/destination
type RouteDelayTotals struct {
	Origin      string
	Destination string
	Delayed     int64
	Flown       int64
}

// MonthlyTotals ligne d'export: départs à l'heure et volume par année/mois
type MonthlyTotals struct {
	Year     int
	MonthNum int
	OnTime   int64
	Flown    int64
}
