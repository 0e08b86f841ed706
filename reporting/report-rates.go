package reporting

import (
	"fmt"

	"github.com/activecm/asa-elephant/util"
)

// maxHighRateRows caps the high rate flows listed
const maxHighRateRows = 5

func getRateWriter(report Report) (string, error) {
	tmpl := "<tr><td>{{.Name}}</td><td>{{.Count}}</td><td>{{.Percent}}</td></tr>\n"
	analysis := report.Rates
	withRates := analysis.ConnectionsWithRates

	items := []interface{}{
		newShareRow("With calculable rates", withRates, analysis.TotalConnections),
	}
	for _, entry := range analysis.RateCategories.Entries() {
		items = append(items, newShareRow(entry.Key, entry.Count, withRates))
	}
	for _, r := range analysis.RateRanges {
		if r.Count > 0 {
			items = append(items, newShareRow(r.Name, r.Count, withRates))
		}
	}

	flows := analysis.HighRateFlows
	if len(flows) > maxHighRateRows {
		flows = flows[:maxHighRateRows]
	}
	for _, flow := range flows {
		items = append(items, shareRow{
			Name:    fmt.Sprintf("%s %s -> %s", flow.Protocol, flow.Source(), flow.Destination()),
			Count:   util.FormatRate(flow.Mbps),
			Percent: string(flow.RateCategory),
		})
	}
	return executeRows("Rate", tmpl, items)
}
