package database

import (
	"context"
	"fmt"
)

// CreateSchema crée les cinq tables OTP si elles n'existent pas
func CreateSchema(ctx context.Context, h *Handle) error {
	for _, stmt := range schemaStatements(h.Dialect) {
		if _, err := h.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

func schemaStatements(d Dialect) []string {
	// Seule la clé de facts_otp est auto-incrémentée, les dimensions ont des ids fournis
	factID := "fact_id SERIAL PRIMARY KEY"
	switch d {
	case DialectMySQL:
		factID = "fact_id INT AUTO_INCREMENT PRIMARY KEY"
	case DialectSQLite:
		factID = "fact_id INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	return []string{
		`CREATE TABLE IF NOT EXISTS airlines (
			airline_id   INTEGER PRIMARY KEY,
			airline_name VARCHAR(100) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ports (
			port_id   INTEGER PRIMARY KEY,
			port_name VARCHAR(100) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS routes (
			route_id       INTEGER PRIMARY KEY,
			origin_port_id INTEGER NOT NULL REFERENCES ports(port_id),
			dest_port_id   INTEGER NOT NULL REFERENCES ports(port_id)
		)`,
		`CREATE TABLE IF NOT EXISTS calendar_months (
			cal_id      INTEGER PRIMARY KEY,
			year        INTEGER NOT NULL,
			month_num   INTEGER NOT NULL,
			month_label VARCHAR(20) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS facts_otp (
			` + factID + `,
			route_id           INTEGER NOT NULL REFERENCES routes(route_id),
			airline_id         INTEGER NOT NULL REFERENCES airlines(airline_id),
			cal_id             INTEGER NOT NULL REFERENCES calendar_months(cal_id),
			sectors_scheduled  INTEGER NOT NULL DEFAULT 0,
			sectors_flown      INTEGER NOT NULL DEFAULT 0,
			cancellations      INTEGER NOT NULL DEFAULT 0,
			departures_on_time INTEGER NOT NULL DEFAULT 0,
			arrivals_on_time   INTEGER NOT NULL DEFAULT 0,
			departures_delayed INTEGER NOT NULL DEFAULT 0,
			arrivals_delayed   INTEGER NOT NULL DEFAULT 0
		)`,
	}
}
