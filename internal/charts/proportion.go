package charts

import (
	"sort"

	"github.com/verte-zerg/launchdash/internal/dataset"
	"github.com/verte-zerg/launchdash/internal/model"
)

// ResolveProportion builds the launch success pie chart for sel.
func ResolveProportion(sel model.Selection, ds *dataset.Dataset, colors Colors) model.ChartSpec {
	switch sel.Mode {
	case model.SelectionAll:
		return allSitesPie(ds)
	case model.SelectionSite:
		return sitePie(sel.Site, ds, colors)
	default:
		return placeholderPie(PromptMessage)
	}
}

func placeholderPie(message string) model.ChartSpec {
	return model.ChartSpec{
		Kind:    model.ChartPie,
		Title:   message,
		Message: message,
		Slices:  []model.Slice{{Label: message, Value: 1, Color: paletteColor(0)}},
	}
}

// allSitesPie counts successful launches per site. Sites without a success
// produce no slice.
func allSitesPie(ds *dataset.Dataset) model.ChartSpec {
	counts := map[string]int{}
	ds.Each(func(rec model.Record) {
		if rec.Success {
			counts[rec.Site]++
		}
	})
	sites := make([]string, 0, len(counts))
	for site := range counts {
		sites = append(sites, site)
	}
	sort.Strings(sites)

	slices := make([]model.Slice, 0, len(sites))
	for i, site := range sites {
		slices = append(slices, model.Slice{
			Label: site,
			Value: float64(counts[site]),
			Color: paletteColor(i),
		})
	}
	return model.ChartSpec{
		Kind:   model.ChartPie,
		Title:  AllSitesPieTitle,
		Slices: slices,
	}
}

func sitePie(site string, ds *dataset.Dataset, colors Colors) model.ChartSpec {
	records := ds.BySite(site)
	if len(records) == 0 {
		return placeholderPie(NoDataMessage(site))
	}
	success, failure := 0, 0
	for _, rec := range records {
		if rec.Success {
			success++
		} else {
			failure++
		}
	}
	return model.ChartSpec{
		Kind:  model.ChartPie,
		Title: SitePieTitle(site),
		Slices: []model.Slice{
			{Label: SuccessLabel, Value: float64(success), Color: colors.Success},
			{Label: FailureLabel, Value: float64(failure), Color: colors.Failure},
		},
	}
}
