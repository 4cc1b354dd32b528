// Package charts computes chart specifications from the dataset and the
// current filter state.
package charts

import "fmt"

// Messages and titles shown by the resolvers.
const (
	PromptMessage        = "Please select a launch site from the dropdown menu"
	AllSitesPieTitle     = "Percentage of Successful Launches by Launch Site"
	AllSitesScatterTitle = "Payload vs. Success for All Sites"
	SuccessLabel         = "Success"
	FailureLabel         = "Failure"
	PayloadAxisTitle     = "Payload Mass (kg)"
	ClassAxisTitle       = "class"
)

// Default outcome colours.
const (
	DefaultSuccessColor = "#FF0000"
	DefaultFailureColor = "#0000FF"
)

// Palette assigns colours to sites and booster categories in order.
var Palette = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

// Colors holds the fixed outcome colours of the site proportion chart.
type Colors struct {
	Success string
	Failure string
}

// DefaultColors returns the standard red/blue outcome colours.
func DefaultColors() Colors {
	return Colors{Success: DefaultSuccessColor, Failure: DefaultFailureColor}
}

// NoDataMessage is the placeholder text for a site with no records.
func NoDataMessage(site string) string {
	return fmt.Sprintf("No data available for %s", site)
}

// SitePieTitle is the proportion chart title for one site.
func SitePieTitle(site string) string {
	return fmt.Sprintf("Total Success Launches for %s", site)
}

// SiteScatterTitle is the correlation chart title for one site.
func SiteScatterTitle(site string) string {
	return fmt.Sprintf("Payload vs. Success for %s", site)
}

func paletteColor(i int) string {
	return Palette[i%len(Palette)]
}
