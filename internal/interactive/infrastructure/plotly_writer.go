package infrastructure

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"otpreport/internal/interactive/domain"
)

// PlotlyCDN version de plotly.js chargée par la page
const PlotlyCDN = "https://cdn.plot.ly/plotly-2.27.0.min.js"

var palette = []string{
	"#636efa", "#EF553B", "#00cc96", "#ab63fa", "#FFA15A",
	"#19d3f3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

type trace struct {
	Type   string   `json:"type"`
	Name   string   `json:"name"`
	X      []string `json:"x"`
	Y      []int64  `json:"y"`
	Marker marker   `json:"marker"`
}

type marker struct {
	Color string `json:"color"`
}

type frame struct {
	Name string  `json:"name"`
	Data []trace `json:"data"`
}

type sliderStep struct {
	Label  string        `json:"label"`
	Method string        `json:"method"`
	Args   []interface{} `json:"args"`
}

type figure struct {
	Data   []trace                `json:"data"`
	Layout map[string]interface{} `json:"layout"`
	Frames []frame                `json:"frames"`
}

// PlotlyWriter écrit un graphique animé autonome (HTML + plotly.js via CDN)
type PlotlyWriter struct {
	tmpl *template.Template
}

// NewPlotlyWriter prépare le gabarit de page
func NewPlotlyWriter() *PlotlyWriter {
	return &PlotlyWriter{tmpl: template.Must(template.New("slider").Parse(sliderPage))}
}

// Write génère path (écrasé à chaque appel)
func (w *PlotlyWriter) Write(path string, c domain.SliderChart) error {
	fig := buildFigure(c)
	payload, err := json.Marshal(fig)
	if err != nil {
		return fmt.Errorf("encode figure: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create chart directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return w.tmpl.Execute(f, map[string]interface{}{
		"Title":  c.Title,
		"Script": PlotlyCDN,
		"Figure": template.JS(payload),
	})
}

func traces(bars []domain.Bar) []trace {
	out := make([]trace, 0, len(bars))
	for i, b := range bars {
		out = append(out, trace{
			Type:   "bar",
			Name:   b.Airline,
			X:      []string{b.Airline},
			Y:      []int64{b.Flown},
			Marker: marker{Color: palette[i%len(palette)]},
		})
	}
	return out
}

func buildFigure(c domain.SliderChart) figure {
	fig := figure{Data: []trace{}, Frames: []frame{}}

	steps := make([]sliderStep, 0, len(c.Frames))
	for _, fr := range c.Frames {
		fig.Frames = append(fig.Frames, frame{Name: fr.Label(), Data: traces(fr.Bars)})
		steps = append(steps, sliderStep{
			Label:  fr.Label(),
			Method: "animate",
			Args: []interface{}{
				[]string{fr.Label()},
				map[string]interface{}{
					"mode":       "immediate",
					"frame":      map[string]interface{}{"duration": 0, "redraw": true},
					"transition": map[string]interface{}{"duration": 0},
				},
			},
		})
	}
	if len(c.Frames) > 0 {
		fig.Data = traces(c.Frames[0].Bars)
	}

	yMax := float64(c.MaxFlown()) * 1.1
	if yMax <= 0 {
		yMax = 1
	}

	fig.Layout = map[string]interface{}{
		"title":      map[string]interface{}{"text": c.Title},
		"barmode":    "relative",
		"showlegend": true,
		"legend":     map[string]interface{}{"title": map[string]interface{}{"text": "airline_name"}},
		"xaxis": map[string]interface{}{
			"title":         map[string]interface{}{"text": "airline_name"},
			"categoryorder": "array",
			"categoryarray": c.Airlines,
		},
		"yaxis": map[string]interface{}{
			"title": map[string]interface{}{"text": "flown"},
			"range": []float64{0, yMax},
		},
		"updatemenus": []interface{}{
			map[string]interface{}{
				"type":       "buttons",
				"direction":  "left",
				"showactive": false,
				"x":          0.1,
				"y":          0,
				"xanchor":    "right",
				"yanchor":    "top",
				"pad":        map[string]interface{}{"r": 10, "t": 70},
				"buttons": []interface{}{
					map[string]interface{}{
						"label":  "Play",
						"method": "animate",
						"args": []interface{}{nil, map[string]interface{}{
							"frame":       map[string]interface{}{"duration": 500, "redraw": true},
							"fromcurrent": true,
							"transition":  map[string]interface{}{"duration": 300, "easing": "linear"},
						}},
					},
					map[string]interface{}{
						"label":  "Pause",
						"method": "animate",
						"args": []interface{}{[]interface{}{nil}, map[string]interface{}{
							"frame":      map[string]interface{}{"duration": 0, "redraw": false},
							"mode":       "immediate",
							"transition": map[string]interface{}{"duration": 0},
						}},
					},
				},
			},
		},
		"sliders": []interface{}{
			map[string]interface{}{
				"active":       0,
				"x":            0.1,
				"y":            0,
				"len":          0.9,
				"xanchor":      "left",
				"yanchor":      "top",
				"pad":          map[string]interface{}{"b": 10, "t": 60},
				"currentvalue": map[string]interface{}{"prefix": "month_str=", "visible": true, "xanchor": "right"},
				"steps":        steps,
			},
		},
	}

	return fig
}

const sliderPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.Script}}"></script>
</head>
<body>
<div id="chart" style="width:100%;height:90vh;"></div>
<script>
var fig = {{.Figure}};
Plotly.newPlot("chart", fig.data, fig.layout).then(function () {
  Plotly.addFrames("chart", fig.frames);
});
</script>
</body>
</html>
`
