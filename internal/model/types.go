// Package model defines shared data structures.
package model

import (
	"fmt"
	"math"
	"strings"
)

// AllSitesLabel is the selector label for the aggregate view.
const AllSitesLabel = "All Sites"

// Record is a single launch event.
type Record struct {
	Site            string
	PayloadMass     float64
	Success         bool
	BoosterCategory string
}

// Class returns the outcome as 0 or 1.
func (r Record) Class() float64 {
	if r.Success {
		return 1
	}
	return 0
}

// SelectionMode distinguishes the states of the site selector.
type SelectionMode int

const (
	SelectionUnset SelectionMode = iota
	SelectionAll
	SelectionSite
)

// Selection is the value of the site selector.
type Selection struct {
	Mode SelectionMode
	Site string
}

// Unset returns a selection with nothing chosen.
func Unset() Selection {
	return Selection{Mode: SelectionUnset}
}

// AllSites returns the aggregate selection.
func AllSites() Selection {
	return Selection{Mode: SelectionAll}
}

// SiteSelection selects a single launch site.
func SiteSelection(site string) Selection {
	return Selection{Mode: SelectionSite, Site: site}
}

// ParseSelection maps selector text to a Selection. Empty text is unset;
// "all" and "All Sites" select every site.
func ParseSelection(text string) Selection {
	text = strings.TrimSpace(text)
	if text == "" {
		return Unset()
	}
	if strings.EqualFold(text, "all") || strings.EqualFold(text, AllSitesLabel) {
		return AllSites()
	}
	return SiteSelection(text)
}

// IsSet reports whether a site or the aggregate view was chosen.
func (s Selection) IsSet() bool {
	return s.Mode != SelectionUnset
}

// String returns the selector label.
func (s Selection) String() string {
	switch s.Mode {
	case SelectionAll:
		return AllSitesLabel
	case SelectionSite:
		return s.Site
	default:
		return ""
	}
}

// PayloadRange is an inclusive payload mass interval in kilograms.
type PayloadRange struct {
	Min float64
	Max float64
}

// NewPayloadRange validates and builds a range.
func NewPayloadRange(minVal, maxVal float64) (PayloadRange, error) {
	r := PayloadRange{Min: minVal, Max: maxVal}
	if err := r.Validate(); err != nil {
		return PayloadRange{}, err
	}
	return r, nil
}

// Validate reports an error unless both bounds are finite and Min <= Max.
func (r PayloadRange) Validate() error {
	if !IsFinite(r.Min) || !IsFinite(r.Max) {
		return fmt.Errorf("payload range bounds must be finite, got %v and %v", r.Min, r.Max)
	}
	if r.Min > r.Max {
		return fmt.Errorf("payload range min %.0f exceeds max %.0f", r.Min, r.Max)
	}
	return nil
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Contains reports whether x lies within the range, bounds included.
func (r PayloadRange) Contains(x float64) bool {
	return x >= r.Min && x <= r.Max
}

// Clamp restricts r to bounds. The result always satisfies Min <= Max.
func (r PayloadRange) Clamp(bounds PayloadRange) PayloadRange {
	out := r
	if out.Min < bounds.Min {
		out.Min = bounds.Min
	}
	if out.Max > bounds.Max {
		out.Max = bounds.Max
	}
	if out.Min > bounds.Max {
		out.Min = bounds.Max
	}
	if out.Max < bounds.Min {
		out.Max = bounds.Min
	}
	if out.Min > out.Max {
		out.Min = out.Max
	}
	return out
}

// FilterState holds the current values of the dashboard controls.
type FilterState struct {
	Site    Selection
	Payload PayloadRange
}
