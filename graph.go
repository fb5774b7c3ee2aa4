// Copyright 2019 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package panelsplit

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const maxticks = 40
const yticknum = 20

// createLine creates a horizontal line with a particular y value for
// a graph
func createLine(xvalues []float64, y float64, c drawing.Color) chart.ContinuousSeries {
	var yvalues []float64
	for range xvalues {
		yvalues = append(yvalues, y)
	}
	return chart.ContinuousSeries{
		XValues: xvalues,
		YValues: yvalues,
		Style: chart.Style{
			StrokeColor: c,
		},
	}
}

// createVLine creates a vertical line at a particular x value, from
// 0 to top
func createVLine(x float64, top float64, c drawing.Color) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		XValues: []float64{x, x},
		YValues: []float64{0, top},
		Style: chart.Style{
			StrokeColor:     c,
			StrokeDashArray: []float64{5.0, 5.0},
		},
	}
}

// GraphProfile creates a graph of the edge profile of a page, with
// the threshold a boundary must reach as a horizontal line, and each
// boundary found marked with a vertical line
func GraphProfile(profile []float64, threshold float64, boundaries []int, title string, w io.Writer) error {
	if len(profile) < 2 {
		return errors.New("Not enough rows to graph")
	}

	var xvalues []float64
	var ticks []chart.Tick
	tickevery := len(profile) / maxticks
	if tickevery < 1 {
		tickevery = 1
	}
	var top float64
	for i, v := range profile {
		xvalues = append(xvalues, float64(i))
		if i%tickevery == 0 {
			ticks = append(ticks, chart.Tick{Value: float64(i), Label: fmt.Sprintf("%d", i)})
		}
		if v > top {
			top = v
		}
	}
	// Make last tick the final row
	last := len(profile) - 1
	ticks[len(ticks)-1] = chart.Tick{Value: float64(last), Label: fmt.Sprintf("%d", last)}

	// a blank page still needs a valid range
	if top == 0 {
		top = 1
	}
	var yticks []chart.Tick
	for i := 0; i <= yticknum; i++ {
		n := top * float64(i) / yticknum
		yticks = append(yticks, chart.Tick{Value: n, Label: fmt.Sprintf("%.0f", n)})
	}

	mainSeries := chart.ContinuousSeries{
		Style: chart.Style{
			StrokeColor: chart.ColorBlue,
			FillColor:   chart.ColorAlternateBlue,
		},
		XValues: xvalues,
		YValues: profile,
	}

	var annotations []chart.Value2
	for _, b := range boundaries {
		if b < 0 || b > last {
			continue
		}
		annotations = append(annotations, chart.Value2{Label: fmt.Sprintf("%d", b), XValue: float64(b), YValue: profile[b]})
	}

	graph := chart.Chart{
		Title:  title,
		Width:  3840,
		Height: 1080,
		XAxis: chart.XAxis{
			Name: "Row",
			Range: &chart.ContinuousRange{
				Min: 0.0,
				Max: float64(last),
			},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name: "Edge intensity",
			Range: &chart.ContinuousRange{
				Min: 0.0,
				Max: top,
			},
			Ticks: yticks,
		},
		Series: []chart.Series{
			mainSeries,
			createLine(xvalues, threshold, chart.ColorRed),
		},
	}
	for _, a := range annotations {
		graph.Series = append(graph.Series, createVLine(a.XValue, top, chart.ColorAlternateGray))
	}
	if len(annotations) > 0 {
		graph.Series = append(graph.Series, chart.AnnotationSeries{Annotations: annotations})
	}
	return graph.Render(chart.PNG, w)
}
