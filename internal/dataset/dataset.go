// Package dataset loads and queries the launch records dataset.
package dataset

import (
	"fmt"
	"sort"

	"github.com/verte-zerg/launchdash/internal/model"
)

// Dataset is an immutable, non-empty sequence of launch records.
type Dataset struct {
	records []model.Record
	bounds  model.PayloadRange
	sites   []string
}

// New builds a Dataset from records. It returns ErrEmpty when records is empty
// and ErrMalformed when a payload is NaN or infinite.
func New(records []model.Record) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrEmpty
	}
	own := make([]model.Record, len(records))
	copy(own, records)

	bounds := model.PayloadRange{Min: own[0].PayloadMass, Max: own[0].PayloadMass}
	seen := map[string]struct{}{}
	sites := make([]string, 0)
	for i, rec := range own {
		if !model.IsFinite(rec.PayloadMass) {
			return nil, fmt.Errorf("%w: record %d has non-finite payload %v", ErrMalformed, i+1, rec.PayloadMass)
		}
		if rec.PayloadMass < bounds.Min {
			bounds.Min = rec.PayloadMass
		}
		if rec.PayloadMass > bounds.Max {
			bounds.Max = rec.PayloadMass
		}
		if _, ok := seen[rec.Site]; !ok {
			seen[rec.Site] = struct{}{}
			sites = append(sites, rec.Site)
		}
	}
	sort.Strings(sites)
	return &Dataset{records: own, bounds: bounds, sites: sites}, nil
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns a copy of all records in load order.
func (d *Dataset) Records() []model.Record {
	out := make([]model.Record, len(d.records))
	copy(out, d.records)
	return out
}

// Each calls fn for every record in load order without copying.
func (d *Dataset) Each(fn func(model.Record)) {
	for _, rec := range d.records {
		fn(rec)
	}
}

// BySite returns the records launched from site, in load order.
func (d *Dataset) BySite(site string) []model.Record {
	var out []model.Record
	for _, rec := range d.records {
		if rec.Site == site {
			out = append(out, rec)
		}
	}
	return out
}

// HasSite reports whether any record was launched from site.
func (d *Dataset) HasSite(site string) bool {
	i := sort.SearchStrings(d.sites, site)
	return i < len(d.sites) && d.sites[i] == site
}

// Sites returns the distinct launch sites, sorted.
func (d *Dataset) Sites() []string {
	return append([]string(nil), d.sites...)
}

// GlobalPayloadRange returns the payload bounds over the full dataset.
func (d *Dataset) GlobalPayloadRange() model.PayloadRange {
	return d.bounds
}
