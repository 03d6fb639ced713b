package domain

import (
	"time"
)

// Noms de fichiers fixes, écrasés à chaque génération
const (
	FileAirlineShare      = "pie_airline_share.png"
	FileCancellationRate  = "bar_cancellation_rate_by_airline.png"
	FileTopRoutesByDelay  = "barh_top10_routes_by_delay_pct.png"
	FileMonthlyOnTime     = "line_monthly_ontime_rate_total.png"
	FileDelayDistribution = "hist_delay_rate_distribution.png"
	FileFlightsVsDelay    = "scatter_flights_vs_delay_by_airline_month.png"
	FileInteractiveSlider = "plotly_slider.html"
)

const (
	DefaultHistogramBins    = 30
	DefaultTopRoutesByDelay = 10
)

// Artifact fichier produit par un générateur et son résumé console
type Artifact struct {
	Name        string
	Path        string
	Rows        int
	Title       string
	Description string
}

// Category une barre ou une part: libellé + valeur
type Category struct {
	Label string
	Value float64
}

// CategoryChart graphique par catégorie (camembert, barres)
type CategoryChart struct {
	Title  string
	XLabel string
	YLabel string
	Items  []Category
	// LabelFormat format des étiquettes de part (camembert), ex. "%1.1f%%"
	LabelFormat string
}

// TimePoint point daté d'une série temporelle
type TimePoint struct {
	Time  time.Time
	Value float64
}

// TimeChart courbe avec marqueurs
type TimeChart struct {
	Title  string
	XLabel string
	YLabel string
	Points []TimePoint
}

// HistogramChart distribution de valeurs en Bins classes
type HistogramChart struct {
	Title  string
	XLabel string
	YLabel string
	Values []float64
	Bins   int
}

// XY point de nuage
type XY struct {
	X float64
	Y float64
}

// ScatterSeries une série du nuage, une entrée de légende
type ScatterSeries struct {
	Name   string
	Points []XY
}

// ScatterChart nuage multi-séries, axes et légende partagés
type ScatterChart struct {
	Title  string
	XLabel string
	YLabel string
	Series []ScatterSeries
}

// PointCount nombre total de points du nuage
func (c ScatterChart) PointCount() int {
	n := 0
	for _, s := range c.Series {
		n += len(s.Points)
	}
	return n
}
