package domain

import (
	"fmt"
	"sort"

	analytics "otpreport/internal/analytics/domain"
)

// ShareByAirline parts de vols, sans la ligne "All Airlines"
func ShareByAirline(rows []analytics.AirlineFlights) []Category {
	items := make([]Category, 0, len(rows))
	for _, r := range rows {
		if analytics.IsAggregateAirline(r.AirlineName) {
			continue
		}
		items = append(items, Category{Label: r.AirlineName, Value: float64(r.Flights)})
	}
	return items
}

// CancellationRates taux d'annulation par compagnie, triés par taux décroissant
func CancellationRates(rows []analytics.AirlineCancellations) ([]Category, error) {
	items := make([]Category, 0, len(rows))
	for _, r := range rows {
		if analytics.IsAggregateAirline(r.AirlineName) {
			continue
		}
		pct, err := r.CancelRate()
		if err != nil {
			return nil, fmt.Errorf("cancel rate for %s: %w", r.AirlineName, err)
		}
		items = append(items, Category{Label: r.AirlineName, Value: pct.Float64()})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Value > items[j].Value
	})
	return items, nil
}

// TopRoutesByDelay les n routes au plus fort % de retard. Le résultat est
// inversé (plus forte en dernier) pour qu'elle s'affiche en haut d'un barh.
func TopRoutesByDelay(rows []analytics.RouteDelays, n int) ([]Category, error) {
	items := make([]Category, 0, len(rows))
	for _, r := range rows {
		pct, err := r.DelayPct()
		if err != nil {
			return nil, fmt.Errorf("delay pct for %s: %w", r.Label(), err)
		}
		items = append(items, Category{Label: r.Label(), Value: pct.Float64()})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Value > items[j].Value
	})
	if n >= 0 && len(items) > n {
		items = items[:n]
	}

	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items, nil
}

// MonthlyOnTimeSeries % de départs à l'heure par mois (mois sans vol ignorés)
func MonthlyOnTimeSeries(rows []analytics.MonthlyOnTime) ([]TimePoint, error) {
	points := make([]TimePoint, 0, len(rows))
	for _, r := range rows {
		if r.Flown <= 0 {
			continue
		}
		pct, err := r.OnTimePct()
		if err != nil {
			return nil, fmt.Errorf("on-time pct for %s: %w", r.Month.Label(), err)
		}
		points = append(points, TimePoint{Time: r.Month.Time(), Value: pct.Float64()})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})
	return points, nil
}

// DelayRateDistribution % de retard de chaque couple route × mois volé
func DelayRateDistribution(rows []analytics.RouteMonthDelays) ([]float64, error) {
	values := make([]float64, 0, len(rows))
	for _, r := range rows {
		if r.Flown <= 0 {
			continue
		}
		pct, err := r.DelayPct()
		if err != nil {
			return nil, fmt.Errorf("delay pct for route %d: %w", r.RouteID, err)
		}
		values = append(values, pct.Float64())
	}
	return values, nil
}

// FlightsVsDelayByAirline une série par compagnie (ordre alphabétique):
// X = secteurs volés du mois, Y = % de retard
func FlightsVsDelayByAirline(rows []analytics.AirlineMonthDelays) ([]ScatterSeries, error) {
	byAirline := make(map[string][]XY)
	for _, r := range rows {
		if r.Flown <= 0 || analytics.IsAggregateAirline(r.AirlineName) {
			continue
		}
		pct, err := r.DelayPct()
		if err != nil {
			return nil, fmt.Errorf("delay pct for %s: %w", r.AirlineName, err)
		}
		byAirline[r.AirlineName] = append(byAirline[r.AirlineName], XY{X: float64(r.Flown), Y: pct.Float64()})
	}

	names := make([]string, 0, len(byAirline))
	for name := range byAirline {
		names = append(names, name)
	}
	sort.Strings(names)

	series := make([]ScatterSeries, 0, len(names))
	for _, name := range names {
		series = append(series, ScatterSeries{Name: name, Points: byAirline[name]})
	}
	return series, nil
}
