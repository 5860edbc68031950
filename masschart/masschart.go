// Package masschart renders the tissue-mass bar chart shown on the
// results page and optionally written by the CLI.
package masschart

import (
	"fmt"
	"io"

	"github.com/carbocation/pfx"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/fkucharczak/bodycomp"
)

// Palette carried over from the original report so archived charts
// stay visually comparable.
var barColors = []drawing.Color{
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("ff6347"),
}

var barTissues = []struct {
	Key  bodycomp.MetricKey
	Name string
}{
	{bodycomp.MassMuscle, "Muscle"},
	{bodycomp.MassSubcutaneousFat, "Graisse Sous-cutanée"},
	{bodycomp.MassTorsoFat, "Graisse Viscerale"},
}

// Render writes a PNG bar chart of the three tissue masses. Each bar
// is annotated with its value to two decimal places; a mass that could
// not be computed renders as a zero-height bar labeled n/a.
func Render(w io.Writer, metrics bodycomp.MetricSet) error {
	bars := make([]chart.Value, 0, len(barTissues))
	maxMass := 0.0

	for i, tissue := range barTissues {
		value := 0.0
		label := fmt.Sprintf("%s (n/a)", tissue.Name)

		if m, ok := metrics.Get(tissue.Key); ok && m.Value.Valid {
			value = m.Value.Float64
			label = fmt.Sprintf("%s (%.2f kg)", tissue.Name, value)
		}

		if value > maxMass {
			maxMass = value
		}

		bars = append(bars, chart.Value{
			Label: label,
			Value: value,
			Style: chart.Style{
				FillColor:   barColors[i],
				StrokeColor: barColors[i],
			},
		})
	}

	yAxis := chart.YAxis{Name: "Masse (kg)"}
	if maxMass == 0 {
		// All bars empty; pin the range so the renderer does not
		// divide by a zero span.
		yAxis.Range = &chart.ContinuousRange{Min: 0, Max: 1}
	}

	graph := chart.BarChart{
		Title:    "Masse des différents tissus",
		Width:    640,
		Height:   400,
		BarWidth: 120,
		YAxis:    yAxis,
		Bars:     bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return pfx.Err(err)
	}

	return nil
}
