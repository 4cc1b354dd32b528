package model

// ChartKind names the chart type a ChartSpec describes.
type ChartKind string

const (
	ChartPie     ChartKind = "pie"
	ChartScatter ChartKind = "scatter"
)

// Slice is one wedge of a pie chart.
type Slice struct {
	Label string
	Value float64
	Color string
}

// Point is a scatter point.
type Point struct {
	X float64
	Y float64
}

// Series is a named, coloured group of scatter points.
type Series struct {
	Name   string
	Color  string
	Points []Point
}

// Axis describes the visible extent of a chart axis. Clamped axes hide data
// outside [Min, Max] without removing it from the series.
type Axis struct {
	Title   string
	Min     float64
	Max     float64
	Clamped bool
}

// ChartSpec is an abstract chart description handed to a renderer.
type ChartSpec struct {
	Kind    ChartKind
	Title   string
	Message string
	Slices  []Slice
	Series  []Series
	XAxis   Axis
	YAxis   Axis
}

// IsPlaceholder reports whether the chart carries a message instead of data.
func (c ChartSpec) IsPlaceholder() bool {
	return c.Message != ""
}

// SliceTotal sums all slice values.
func (c ChartSpec) SliceTotal() float64 {
	var total float64
	for _, s := range c.Slices {
		total += s.Value
	}
	return total
}

// PointCount counts points across all series.
func (c ChartSpec) PointCount() int {
	n := 0
	for _, s := range c.Series {
		n += len(s.Points)
	}
	return n
}

// SliceValue returns the value of the slice with the given label.
func (c ChartSpec) SliceValue(label string) (float64, bool) {
	for _, s := range c.Slices {
		if s.Label == label {
			return s.Value, true
		}
	}
	return 0, false
}
