package infrastructure

import (
	"context"

	"otpreport/database"
	"otpreport/internal/analytics/domain"
	shareddomain "otpreport/internal/shared/domain"
	"otpreport/internal/shared/infrastructure"
)

// OTPQueryRepository requêtes d'agrégation sur facts_otp et ses dimensions.
// Chaque requête joint facts_otp à au moins une dimension; les ORDER BY
// complets rendent le résultat stable d'une exécution à l'autre.
type OTPQueryRepository struct {
	infrastructure.BaseRepository
}

// NewOTPQueryRepository crée un nouveau repository de requêtes OTP
func NewOTPQueryRepository(h *database.Handle) *OTPQueryRepository {
	return &OTPQueryRepository{
		BaseRepository: infrastructure.NewBaseRepository(h),
	}
}

func (r *OTPQueryRepository) with(ctx context.Context) *infrastructure.BaseRepository {
	base := r.BaseRepository.WithContext(ctx)
	return &base
}

// AirlineFlights secteurs volés par compagnie (compagnies sans vol exclues)
func (r *OTPQueryRepository) AirlineFlights(ctx context.Context) ([]domain.AirlineFlights, error) {
	return r.airlineFlights(ctx, `
		SELECT a.airline_name,
		       SUM(f.sectors_flown) AS flights
		FROM facts_otp f
		JOIN airlines a ON f.airline_id = a.airline_id
		JOIN calendar_months c ON f.cal_id = c.cal_id
		GROUP BY a.airline_name
		HAVING SUM(f.sectors_flown) > 0
		ORDER BY flights DESC, a.airline_name
	`)
}

// AirlineFlightTotals même agrégat sans filtre, pour l'export
func (r *OTPQueryRepository) AirlineFlightTotals(ctx context.Context) ([]domain.AirlineFlights, error) {
	return r.airlineFlights(ctx, `
		SELECT a.airline_name,
		       SUM(f.sectors_flown) AS flights
		FROM facts_otp f
		JOIN airlines a ON f.airline_id = a.airline_id
		JOIN calendar_months c ON f.cal_id = c.cal_id
		GROUP BY a.airline_name
		ORDER BY flights DESC, a.airline_name
	`)
}

func (r *OTPQueryRepository) airlineFlights(ctx context.Context, query string) ([]domain.AirlineFlights, error) {
	rows, err := r.with(ctx).Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AirlineFlights
	for rows.Next() {
		var af domain.AirlineFlights
		if err := rows.Scan(&af.AirlineName, &af.Flights); err != nil {
			return nil, err
		}
		result = append(result, af)
	}

	return result, rows.Err()
}

// AirlineCancellations annulations / programmés par compagnie (scheduled > 0)
func (r *OTPQueryRepository) AirlineCancellations(ctx context.Context) ([]domain.AirlineCancellations, error) {
	query := `
		SELECT a.airline_name,
		       SUM(f.cancellations) AS cancels,
		       SUM(f.sectors_scheduled) AS scheduled
		FROM facts_otp f
		JOIN airlines a ON f.airline_id = a.airline_id
		JOIN calendar_months c ON f.cal_id = c.cal_id
		GROUP BY a.airline_name
		HAVING SUM(f.sectors_scheduled) > 0
		ORDER BY a.airline_name
	`

	rows, err := r.with(ctx).Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AirlineCancellations
	for rows.Next() {
		var ac domain.AirlineCancellations
		if err := rows.Scan(&ac.AirlineName, &ac.Cancellations, &ac.Scheduled); err != nil {
			return nil, err
		}
		result = append(result, ac)
	}

	return result, rows.Err()
}

// RouteDelays retards (départ + arrivée) / secteurs volés par route (flown > 0)
func (r *OTPQueryRepository) RouteDelays(ctx context.Context) ([]domain.RouteDelays, error) {
	query := `
		SELECT r.route_id,
		       p1.port_name AS origin,
		       p2.port_name AS destination,
		       SUM(f.departures_delayed + f.arrivals_delayed) AS delayed,
		       SUM(f.sectors_flown) AS flown
		FROM facts_otp f
		JOIN routes r ON f.route_id = r.route_id
		JOIN ports p1 ON r.origin_port_id = p1.port_id
		JOIN ports p2 ON r.dest_port_id = p2.port_id
		JOIN calendar_months c ON f.cal_id = c.cal_id
		GROUP BY r.route_id, p1.port_name, p2.port_name
		HAVING SUM(f.sectors_flown) > 0
		ORDER BY r.route_id
	`

	rows, err := r.with(ctx).Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RouteDelays
	for rows.Next() {
		var rd domain.RouteDelays
		if err := rows.Scan(&rd.RouteID, &rd.Origin, &rd.Destination, &rd.Delayed, &rd.Flown); err != nil {
			return nil, err
		}
		result = append(result, rd)
	}

	return result, rows.Err()
}

// MonthlyOnTime départs à l'heure / secteurs volés par mois, ordre chronologique
func (r *OTPQueryRepository) MonthlyOnTime(ctx context.Context) ([]domain.MonthlyOnTime, error) {
	query := `
		SELECT c.year, c.month_num, c.month_label,
		       SUM(f.departures_on_time) AS ontime,
		       SUM(f.sectors_flown) AS flown
		FROM facts_otp f
		JOIN calendar_months c ON f.cal_id = c.cal_id
		GROUP BY c.year, c.month_num, c.month_label
		ORDER BY c.year, c.month_num
	`

	rows, err := r.with(ctx).Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MonthlyOnTime
	for rows.Next() {
		var (
			year, monthNum int
			mo             domain.MonthlyOnTime
		)
		if err := rows.Scan(&year, &monthNum, &mo.MonthLabel, &mo.OnTime, &mo.Flown); err != nil {
			return nil, err
		}
		if mo.Month, err = shareddomain.NewMonth(year, monthNum); err != nil {
			return nil, err
		}
		result = append(result, mo)
	}

	return result, rows.Err()
}

// RouteMonthDelays retards par route et par mois
func (r *OTPQueryRepository) RouteMonthDelays(ctx context.Context) ([]domain.RouteMonthDelays, error) {
	query := `
		SELECT r.route_id,
		       p1.port_name AS origin,
		       p2.port_name AS destination,
		       c.year, c.month_num,
		       SUM(f.departures_delayed + f.arrivals_delayed) AS delayed,
		       SUM(f.sectors_flown) AS flown
		FROM facts_otp f
		JOIN routes r ON f.route_id = r.route_id
		JOIN ports p1 ON r.origin_port_id = p1.port_id
		JOIN ports p2 ON r.dest_port_id = p2.port_id
		JOIN calendar_months c ON f.cal_id = c.cal_id
		GROUP BY r.route_id, p1.port_name, p2.port_name, c.year, c.month_num
		ORDER BY r.route_id, c.year, c.month_num
	`

	rows, err := r.with(ctx).Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RouteMonthDelays
	for rows.Next() {
		var (
			year, monthNum int
			rm             domain.RouteMonthDelays
		)
		if err := rows.Scan(&rm.RouteID, &rm.Origin, &rm.Destination, &year, &monthNum, &rm.Delayed, &rm.Flown); err != nil {
			return nil, err
		}
		if rm.Month, err = shareddomain.NewMonth(year, monthNum); err != nil {
			return nil, err
		}
		result = append(result, rm)
	}

	return result, rows.Err()
}

// AirlineMonthDelays volume et retards par compagnie et par mois
func (r *OTPQueryRepository) AirlineMonthDelays(ctx context.Context) ([]domain.AirlineMonthDelays, error) {
	query := `
		SELECT a.airline_name,
		       c.year, c.month_num,
		       SUM(f.sectors_flown) AS flown,
		       SUM(f.departures_delayed + f.arrivals_delayed) AS delayed
		FROM facts_otp f
		JOIN airlines a ON f.airline_id = a.airline_id
		JOIN calendar_months c ON f.cal_id = c.cal_id
		GROUP BY a.airline_name, c.year, c.month_num
		ORDER BY a.airline_name, c.year, c.month_num
	`

	rows, err := r.with(ctx).Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AirlineMonthDelays
	for rows.Next() {
		var (
			year, monthNum int
			am             domain.AirlineMonthDelays
		)
		if err := rows.Scan(&am.AirlineName, &year, &monthNum, &am.Flown, &am.Delayed); err != nil {
			return nil, err
		}
		if am.Month, err = shareddomain.NewMonth(year, monthNum); err != nil {
			return nil, err
		}
		result = append(result, am)
	}

	return result, rows.Err()
}

// AirlineMonthVolume secteurs volés par compagnie et par mois, ordre chronologique
func (r *OTPQueryRepository) AirlineMonthVolume(ctx context.Context) ([]domain.AirlineMonthVolume, error) {
	query := `
		SELECT a.airline_name,
		       c.year, c.month_num,
		       SUM(f.sectors_flown) AS flown
		FROM facts_otp f
		JOIN airlines a ON f.airline_id = a.airline_id
		JOIN calendar_months c ON f.cal_id = c.cal_id
		GROUP BY a.airline_name, c.year, c.month_num
		ORDER BY c.year, c.month_num, a.airline_name
	`

	rows, err := r.with(ctx).Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AirlineMonthVolume
	for rows.Next() {
		var (
			year, monthNum int
			av             domain.AirlineMonthVolume
		)
		if err := rows.Scan(&av.AirlineName, &year, &monthNum, &av.Flown); err != nil {
			return nil, err
		}
		if av.Month, err = shareddomain.NewMonth(year, monthNum); err != nil {
			return nil, err
		}
		result = append(result, av)
	}

	return result, rows.Err()
}

// TopRouteDelayTotals les limit paires origine/destination les plus en retard (flown > 0)
func (r *OTPQueryRepository) TopRouteDelayTotals(ctx context.Context, limit int) ([]domain.RouteDelayTotals, error) {
	query := `
		SELECT p1.port_name AS origin, p2.port_name AS destination,
		       SUM(f.departures_delayed + f.arrivals_delayed) AS delayed,
		       SUM(f.sectors_flown) AS flown
		FROM facts_otp f
		JOIN routes r ON f.route_id = r.route_id
		JOIN ports p1 ON r.origin_port_id = p1.port_id
		JOIN ports p2 ON r.dest_port_id = p2.port_id
		JOIN calendar_months c ON f.cal_id = c.cal_id
		GROUP BY p1.port_name, p2.port_name
		HAVING SUM(f.sectors_flown) > 0
		ORDER BY delayed DESC, origin, destination
		LIMIT $1
	`

	rows, err := r.with(ctx).Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RouteDelayTotals
	for rows.Next() {
		var rt domain.RouteDelayTotals
		if err := rows.Scan(&rt.Origin, &rt.Destination, &rt.Delayed, &rt.Flown); err != nil {
			return nil, err
		}
		result = append(result, rt)
	}

	return result, rows.Err()
}

// MonthlyTotals départs à l'heure et volume par année/mois
func (r *OTPQueryRepository) MonthlyTotals(ctx context.Context) ([]domain.MonthlyTotals, error) {
	query := `
		SELECT c.year, c.month_num,
		       SUM(f.departures_on_time) AS ontime,
		       SUM(f.sectors_flown) AS flown
		FROM facts_otp f
		JOIN calendar_months c ON f.cal_id = c.cal_id
		GROUP BY c.year, c.month_num
		ORDER BY c.year, c.month_num
	`

	rows, err := r.with(ctx).Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MonthlyTotals
	for rows.Next() {
		var mt domain.MonthlyTotals
		if err := rows.Scan(&mt.Year, &mt.MonthNum, &mt.OnTime, &mt.Flown); err != nil {
			return nil, err
		}
		result = append(result, mt)
	}

	return result, rows.Err()
}

// QueryTable requête libre (Data Access Layer générique)
func (r *OTPQueryRepository) QueryTable(ctx context.Context, query string, args ...interface{}) (*shareddomain.Table, error) {
	return r.with(ctx).QueryTable(query, args...)
}
