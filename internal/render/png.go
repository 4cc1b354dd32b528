package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/verte-zerg/launchdash/internal/model"
)

var (
	// ErrPlaceholder is returned when a chart carries a message instead of data.
	ErrPlaceholder = errors.New("chart has no data to draw")
	// ErrNoPoints is returned when every value is zero or outside the visible range.
	ErrNoPoints = errors.New("chart has no visible values")
)

const (
	defaultPNGWidth  = 1024
	defaultPNGHeight = 640
)

// pointStyle renders points only, without connecting lines.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

// PNG writes spec to w as a PNG image.
func PNG(w io.Writer, spec model.ChartSpec, width, height int) error {
	if spec.IsPlaceholder() {
		return ErrPlaceholder
	}
	if width <= 0 {
		width = defaultPNGWidth
	}
	if height <= 0 {
		height = defaultPNGHeight
	}
	switch spec.Kind {
	case model.ChartPie:
		return piePNG(w, spec, width, height)
	case model.ChartScatter:
		return scatterPNG(w, spec, width, height)
	default:
		return fmt.Errorf("unknown chart kind %q", spec.Kind)
	}
}

func piePNG(w io.Writer, spec model.ChartSpec, width, height int) error {
	total := spec.SliceTotal()
	values := make([]chart.Value, 0, len(spec.Slices))
	for _, s := range spec.Slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: s.Value,
			Label: fmt.Sprintf("%s %.1f%%", s.Label, s.Value/total*100),
			Style: chart.Style{FillColor: hexColor(s.Color)},
		})
	}
	if len(values) == 0 {
		return ErrNoPoints
	}
	pie := chart.PieChart{
		Title:  spec.Title,
		Width:  width,
		Height: height,
		Values: values,
	}
	if err := pie.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render pie chart: %w", err)
	}
	return nil
}

func scatterPNG(w io.Writer, spec model.ChartSpec, width, height int) error {
	xMin, xMax := spec.XAxis.Min, spec.XAxis.Max
	series := make([]chart.Series, 0, len(spec.Series))
	for _, s := range spec.Series {
		var xs, ys []float64
		for _, p := range s.Points {
			if spec.XAxis.Clamped && (p.X < xMin || p.X > xMax) {
				continue
			}
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
		if len(xs) == 0 {
			continue
		}
		st := pointStyle(hexColor(s.Color))
		if len(xs) == 1 {
			// go-chart needs two values per series.
			st.DotWidth = 7
			xs = append(xs, xs[0])
			ys = append(ys, ys[0])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			Style:   st,
			XValues: xs,
			YValues: ys,
		})
	}
	if len(series) == 0 {
		return ErrNoPoints
	}
	if math.Abs(xMax-xMin) < 1e-9 {
		xMin--
		xMax++
	}

	ch := chart.Chart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  spec.XAxis.Title,
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
		},
		YAxis: chart.YAxis{
			Name:  spec.YAxis.Title,
			Range: &chart.ContinuousRange{Min: spec.YAxis.Min - 0.1, Max: spec.YAxis.Max + 0.1},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render scatter chart: %w", err)
	}
	return nil
}

func hexColor(hex string) drawing.Color {
	hex = strings.TrimPrefix(hex, "#")
	if hex == "" {
		return chart.ColorBlue
	}
	return drawing.ColorFromHex(hex)
}
