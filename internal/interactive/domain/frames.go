package domain

import (
	"sort"

	analytics "otpreport/internal/analytics/domain"
	shared "otpreport/internal/shared/domain"
)

// Bar valeur d'une compagnie dans une image de l'animation
type Bar struct {
	Airline string
	Flown   int64
}

// Frame une image de l'animation: un mois, une barre par compagnie
type Frame struct {
	Month shared.Month
	Bars  []Bar
}

// Label clé de l'image, YYYY-MM
func (f Frame) Label() string {
	return f.Month.Label()
}

// SliderChart graphique animé: barres par compagnie, une image par mois
type SliderChart struct {
	Title    string
	Airlines []string
	Frames   []Frame
}

// MaxFlown plus grande valeur toutes images confondues
func (c SliderChart) MaxFlown() int64 {
	var m int64
	for _, f := range c.Frames {
		for _, b := range f.Bars {
			if b.Flown > m {
				m = b.Flown
			}
		}
	}
	return m
}

// BuildSlider regroupe les volumes par mois, en ordre chronologique.
// Chaque image contient toutes les compagnies (0 si absente ce mois-là),
// dans l'ordre alphabétique, la ligne "All Airlines" exclue.
func BuildSlider(title string, rows []analytics.AirlineMonthVolume) SliderChart {
	type monthKey struct{ year, month int }

	months := make(map[monthKey]shared.Month)
	volumes := make(map[monthKey]map[string]int64)
	airlineSet := make(map[string]struct{})

	for _, r := range rows {
		if analytics.IsAggregateAirline(r.AirlineName) {
			continue
		}
		k := monthKey{r.Month.Year(), r.Month.Number()}
		months[k] = r.Month
		if volumes[k] == nil {
			volumes[k] = make(map[string]int64)
		}
		volumes[k][r.AirlineName] += r.Flown
		airlineSet[r.AirlineName] = struct{}{}
	}

	airlines := make([]string, 0, len(airlineSet))
	for name := range airlineSet {
		airlines = append(airlines, name)
	}
	sort.Strings(airlines)

	ordered := make([]shared.Month, 0, len(months))
	for _, m := range months {
		ordered = append(ordered, m)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Before(ordered[j])
	})

	frames := make([]Frame, 0, len(ordered))
	for _, m := range ordered {
		byAirline := volumes[monthKey{m.Year(), m.Number()}]
		bars := make([]Bar, len(airlines))
		for i, name := range airlines {
			bars[i] = Bar{Airline: name, Flown: byAirline[name]}
		}
		frames = append(frames, Frame{Month: m, Bars: bars})
	}

	return SliderChart{Title: title, Airlines: airlines, Frames: frames}
}
