package charts

import (
	"github.com/verte-zerg/launchdash/internal/dataset"
	"github.com/verte-zerg/launchdash/internal/model"
)

// ResolveCorrelation builds the payload vs. outcome scatter chart. The payload
// range clamps the visible x axis only; every matching record stays in the
// series. An unknown site yields the same no-data placeholder as the
// proportion chart.
func ResolveCorrelation(sel model.Selection, payload model.PayloadRange, ds *dataset.Dataset) model.ChartSpec {
	switch sel.Mode {
	case model.SelectionAll:
		return scatter(AllSitesScatterTitle, ds.Records(), payload)
	case model.SelectionSite:
		records := ds.BySite(sel.Site)
		if len(records) == 0 {
			return placeholderScatter(NoDataMessage(sel.Site))
		}
		return scatter(SiteScatterTitle(sel.Site), records, payload)
	default:
		return placeholderScatter(PromptMessage)
	}
}

// placeholderScatter carries message as the title and both axis titles with no
// series; points are numeric so the text cannot be plotted as data.
func placeholderScatter(message string) model.ChartSpec {
	return model.ChartSpec{
		Kind:    model.ChartScatter,
		Title:   message,
		Message: message,
		XAxis:   model.Axis{Title: message},
		YAxis:   model.Axis{Title: message},
	}
}

// scatter groups records by booster category in order of first appearance.
func scatter(title string, records []model.Record, payload model.PayloadRange) model.ChartSpec {
	index := map[string]int{}
	var series []model.Series
	for _, rec := range records {
		i, ok := index[rec.BoosterCategory]
		if !ok {
			i = len(series)
			index[rec.BoosterCategory] = i
			series = append(series, model.Series{
				Name:  rec.BoosterCategory,
				Color: paletteColor(i),
			})
		}
		series[i].Points = append(series[i].Points, model.Point{X: rec.PayloadMass, Y: rec.Class()})
	}
	return model.ChartSpec{
		Kind:   model.ChartScatter,
		Title:  title,
		Series: series,
		XAxis: model.Axis{
			Title:   PayloadAxisTitle,
			Min:     payload.Min,
			Max:     payload.Max,
			Clamped: true,
		},
		YAxis: model.Axis{
			Title: ClassAxisTitle,
			Min:   0,
			Max:   1,
		},
	}
}
