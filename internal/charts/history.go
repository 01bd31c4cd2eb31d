// Package charts renders round history images.
package charts

import (
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/AlexanderWinters/the-score-card/internal/domain/rounds"
)

const (
	width     = 800
	height    = 400
	smaPeriod = 5
	padding   = 3

	emptyMsg    = "No rounds saved yet"
	emptyWidth  = 400
	emptyHeight = 200
)

var (
	lineColor  = drawing.ColorFromHex("2e7d32")
	dotColor   = drawing.ColorFromHex("f9a825")
	trendColor = drawing.ColorFromHex("90a4ae")
	textColor  = drawing.ColorFromHex("263238")
	backdrop   = drawing.ColorFromHex("ffffff")
)

// RenderHistory writes a PNG line chart of gross score per round, oldest
// first. entries are expected newest first as returned by the history query.
func RenderHistory(w io.Writer, entries []rounds.HistoryEntry) error {
	if len(entries) == 0 {
		return renderEmpty(w)
	}

	n := len(entries)
	xValues := make([]float64, n)
	yValues := make([]float64, n)
	// unlabeled edge ticks pin the x range, which the chart derives from
	// ticks; a single round would otherwise have a zero-width axis
	ticks := make([]chart.Tick, 0, n+2)
	ticks = append(ticks, chart.Tick{Value: 0.5})
	low, high := entries[0].TotalScore, entries[0].TotalScore
	for i := range entries {
		e := entries[n-1-i]
		x := float64(i + 1)
		xValues[i] = x
		yValues[i] = float64(e.TotalScore)
		ticks = append(ticks, chart.Tick{Value: x, Label: e.Date})
		low = min(low, e.TotalScore)
		high = max(high, e.TotalScore)
	}
	ticks = append(ticks, chart.Tick{Value: float64(n) + 0.5})

	gross := chart.ContinuousSeries{
		Name:    "Gross",
		XValues: xValues,
		YValues: yValues,
		Style: chart.Style{
			StrokeColor: lineColor,
			StrokeWidth: 2,
			DotWidth:    4,
			DotColor:    dotColor,
		},
	}
	series := []chart.Series{gross}
	if n >= smaPeriod {
		series = append(series, chart.SMASeries{
			Name:        "Average",
			InnerSeries: gross,
			Period:      smaPeriod,
			Style: chart.Style{
				StrokeColor:     trendColor,
				StrokeWidth:     1,
				StrokeDashArray: []float64{5, 5},
			},
		})
	}

	graph := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{FillColor: backdrop},
		Canvas:     chart.Style{FillColor: backdrop},
		XAxis: chart.XAxis{
			Name:  "Round",
			Style: chart.Style{FontColor: textColor},
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0.5, Max: float64(n) + 0.5},
		},
		YAxis: chart.YAxis{
			Name:  "Strokes",
			Style: chart.Style{FontColor: textColor},
			Range: &chart.ContinuousRange{
				Min: float64(max(0, low-padding)),
				Max: float64(high + padding),
			},
		},
		Series: series,
	}
	return graph.Render(chart.PNG, w)
}

// renderEmpty draws the placeholder message. The chart refuses to render
// without a visible series, so it carries a transparent one.
func renderEmpty(w io.Writer) error {
	graph := chart.Chart{
		Width:      emptyWidth,
		Height:     emptyHeight,
		Background: chart.Style{FillColor: backdrop},
		Canvas:     chart.Style{FillColor: backdrop},
		XAxis:      chart.XAxis{Style: chart.Hidden()},
		YAxis:      chart.YAxis{Style: chart.Hidden()},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 1},
				Style: chart.Style{
					StrokeColor: drawing.ColorTransparent,
					StrokeWidth: 1,
				},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, _ chart.Style) {
				r.SetFontColor(textColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(emptyMsg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(emptyMsg, x, y)
			},
		},
	}
	return graph.Render(chart.PNG, w)
}
