package database

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"time"
)

// AllAirlinesName libellé de la ligne agrégée publiée avec les données OTP
const AllAirlinesName = "All Airlines"

// Dataset jeu de données complet à insérer (dimensions + faits)
type Dataset struct {
	Airlines []Airline
	Ports    []Port
	Routes   []Route
	Months   []CalendarMonth
	Facts    []FactOTP
}

// SeedOptions paramètres du jeu synthétique
type SeedOptions struct {
	Months     int
	StartYear  int
	StartMonth time.Month
	Seed       int64
}

// DefaultSeedOptions 24 mois à partir de janvier 2023
func DefaultSeedOptions() SeedOptions {
	return SeedOptions{Months: 24, StartYear: 2023, StartMonth: time.January, Seed: 42}
}

// SeedDatabase crée le schéma puis insère un jeu de données synthétique
func SeedDatabase(ctx context.Context, h *Handle, opts SeedOptions) (Dataset, error) {
	if opts.Months <= 0 {
		return Dataset{}, fmt.Errorf("months must be positive, got %d", opts.Months)
	}

	fmt.Println("[..] Creating schema...")
	if err := CreateSchema(ctx, h); err != nil {
		return Dataset{}, err
	}

	ds := GenerateDataset(opts)
	fmt.Printf("[..] Inserting %d airlines, %d ports, %d routes, %d months, %d facts...\n",
		len(ds.Airlines), len(ds.Ports), len(ds.Routes), len(ds.Months), len(ds.Facts))

	if err := InsertDataset(ctx, h, ds); err != nil {
		return Dataset{}, fmt.Errorf("insert dataset: %w", err)
	}

	return ds, nil
}

// GenerateDataset produit un jeu déterministe pour une graine donnée
func GenerateDataset(opts SeedOptions) Dataset {
	rng := rand.New(rand.NewSource(opts.Seed))

	airlineNames := []string{
		"Qantas", "Virgin Australia", "Jetstar", "Rex Airlines",
		"QantasLink", "Virgin Australia Regional Airlines",
	}
	portNames := []string{
		"Sydney", "Melbourne", "Brisbane", "Perth", "Adelaide",
		"Canberra", "Hobart", "Darwin", "Cairns", "Gold Coast",
	}

	var ds Dataset

	for i, name := range airlineNames {
		ds.Airlines = append(ds.Airlines, Airline{ID: i + 1, Name: name})
	}
	allAirlinesID := len(airlineNames) + 1
	ds.Airlines = append(ds.Airlines, Airline{ID: allAirlinesID, Name: AllAirlinesName})

	for i, name := range portNames {
		ds.Ports = append(ds.Ports, Port{ID: i + 1, Name: name})
	}

	// Les 5 premiers ports forment un maillage, les autres sont reliés à Sydney et Melbourne
	routeID := 1
	for o := 1; o <= len(portNames); o++ {
		for d := 1; d <= len(portNames); d++ {
			if o == d {
				continue
			}
			if o > 5 && d > 2 || d > 5 && o > 2 {
				continue
			}
			ds.Routes = append(ds.Routes, Route{ID: routeID, OriginPortID: o, DestPortID: d})
			routeID++
		}
	}

	start := time.Date(opts.StartYear, opts.StartMonth, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < opts.Months; i++ {
		m := start.AddDate(0, i, 0)
		ds.Months = append(ds.Months, CalendarMonth{
			ID:         i + 1,
			Year:       m.Year(),
			MonthNum:   int(m.Month()),
			MonthLabel: m.Format("Jan-06"),
		})
	}

	type aggKey struct{ route, cal int }
	totals := make(map[aggKey]*FactOTP)
	var order []aggKey

	for _, month := range ds.Months {
		for _, airline := range ds.Airlines[:len(airlineNames)] {
			for _, route := range ds.Routes {
				// Chaque compagnie n'opère qu'une partie des routes
				if rng.Intn(3) != 0 {
					continue
				}
				fact := randomFact(rng, route.ID, airline.ID, month.ID)
				ds.Facts = append(ds.Facts, fact)

				k := aggKey{route.ID, month.ID}
				agg, ok := totals[k]
				if !ok {
					agg = &FactOTP{RouteID: route.ID, AirlineID: allAirlinesID, CalID: month.ID}
					totals[k] = agg
					order = append(order, k)
				}
				agg.SectorsScheduled += fact.SectorsScheduled
				agg.SectorsFlown += fact.SectorsFlown
				agg.Cancellations += fact.Cancellations
				agg.DeparturesOnTime += fact.DeparturesOnTime
				agg.ArrivalsOnTime += fact.ArrivalsOnTime
				agg.DeparturesDelayed += fact.DeparturesDelayed
				agg.ArrivalsDelayed += fact.ArrivalsDelayed
			}
		}
	}

	for _, k := range order {
		ds.Facts = append(ds.Facts, *totals[k])
	}

	return ds
}

func randomFact(rng *rand.Rand, routeID, airlineID, calID int) FactOTP {
	// Quelques routes suspendues: aucun vol programmé
	if rng.Intn(40) == 0 {
		return FactOTP{RouteID: routeID, AirlineID: airlineID, CalID: calID}
	}

	scheduled := 40 + rng.Intn(360)
	cancellations := rng.Intn(scheduled/20 + 1)
	flown := scheduled - cancellations

	depOnTime := flown * (65 + rng.Intn(30)) / 100
	arrOnTime := flown * (60 + rng.Intn(35)) / 100

	return FactOTP{
		RouteID:           routeID,
		AirlineID:         airlineID,
		CalID:             calID,
		SectorsScheduled:  scheduled,
		SectorsFlown:      flown,
		Cancellations:     cancellations,
		DeparturesOnTime:  depOnTime,
		ArrivalsOnTime:    arrOnTime,
		DeparturesDelayed: flown - depOnTime,
		ArrivalsDelayed:   flown - arrOnTime,
	}
}

// InsertDataset insère dimensions puis faits dans une seule transaction
func InsertDataset(ctx context.Context, h *Handle, ds Dataset) error {
	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, a := range ds.Airlines {
		if err := execTx(ctx, tx, h.Dialect,
			`INSERT INTO airlines (airline_id, airline_name) VALUES ($1, $2)`,
			a.ID, a.Name); err != nil {
			return fmt.Errorf("airline %d: %w", a.ID, err)
		}
	}

	for _, p := range ds.Ports {
		if err := execTx(ctx, tx, h.Dialect,
			`INSERT INTO ports (port_id, port_name) VALUES ($1, $2)`,
			p.ID, p.Name); err != nil {
			return fmt.Errorf("port %d: %w", p.ID, err)
		}
	}

	for _, r := range ds.Routes {
		if err := execTx(ctx, tx, h.Dialect,
			`INSERT INTO routes (route_id, origin_port_id, dest_port_id) VALUES ($1, $2, $3)`,
			r.ID, r.OriginPortID, r.DestPortID); err != nil {
			return fmt.Errorf("route %d: %w", r.ID, err)
		}
	}

	for _, m := range ds.Months {
		if err := execTx(ctx, tx, h.Dialect,
			`INSERT INTO calendar_months (cal_id, year, month_num, month_label) VALUES ($1, $2, $3, $4)`,
			m.ID, m.Year, m.MonthNum, m.MonthLabel); err != nil {
			return fmt.Errorf("month %d: %w", m.ID, err)
		}
	}

	factStmt, err := tx.PrepareContext(ctx, h.Dialect.Rebind(`
		INSERT INTO facts_otp (
			route_id, airline_id, cal_id,
			sectors_scheduled, sectors_flown, cancellations,
			departures_on_time, arrivals_on_time,
			departures_delayed, arrivals_delayed
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`))
	if err != nil {
		return err
	}
	defer factStmt.Close()

	for i, f := range ds.Facts {
		if _, err := factStmt.ExecContext(ctx,
			f.RouteID, f.AirlineID, f.CalID,
			f.SectorsScheduled, f.SectorsFlown, f.Cancellations,
			f.DeparturesOnTime, f.ArrivalsOnTime,
			f.DeparturesDelayed, f.ArrivalsDelayed,
		); err != nil {
			return fmt.Errorf("fact %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func execTx(ctx context.Context, tx *sql.Tx, d Dialect, query string, args ...interface{}) error {
	_, err := tx.ExecContext(ctx, d.Rebind(query), args...)
	return err
}
