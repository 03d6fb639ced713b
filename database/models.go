package database

// ============================================================================
// MODÈLES DE DONNÉES - Schéma OTP (faits + dimensions)
// ============================================================================

// Airline - Compagnie aérienne
type Airline struct {
	ID   int    `json:"airline_id"`
	Name string `json:"airline_name"`
}

// Port - Aéroport
type Port struct {
	ID   int    `json:"port_id"`
	Name string `json:"port_name"`
}

// Route - Liaison origine → destination
type Route struct {
	ID           int `json:"route_id"`
	OriginPortID int `json:"origin_port_id"`
	DestPortID   int `json:"dest_port_id"`
}

// CalendarMonth - Mois calendaire
type CalendarMonth struct {
	ID         int    `json:"cal_id"`
	Year       int    `json:"year"`
	MonthNum   int    `json:"month_num"`
	MonthLabel string `json:"month_label"`
}

// FactOTP - Ligne de faits: une compagnie, une route, un mois
type FactOTP struct {
	RouteID           int `json:"route_id"`
	AirlineID         int `json:"airline_id"`
	CalID             int `json:"cal_id"`
	SectorsScheduled  int `json:"sectors_scheduled"`
	SectorsFlown      int `json:"sectors_flown"`
	Cancellations     int `json:"cancellations"`
	DeparturesOnTime  int `json:"departures_on_time"`
	ArrivalsOnTime    int `json:"arrivals_on_time"`
	DeparturesDelayed int `json:"departures_delayed"`
	ArrivalsDelayed   int `json:"arrivals_delayed"`
}
