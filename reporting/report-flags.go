package reporting

import (
	"fmt"

	"github.com/activecm/asa-elephant/pkg/flags"
	"github.com/activecm/asa-elephant/pkg/stats"
	"github.com/activecm/asa-elephant/util"
)

type shareRow struct {
	Name    string
	Count   string
	Percent string
}

func newShareRow(name string, count, total int) shareRow {
	return shareRow{
		Name:    name,
		Count:   util.FormatCount(int64(count)),
		Percent: fmt.Sprintf("%.3f%%", stats.Percent(count, total)),
	}
}

func getFlagWriter(report Report) (string, error) {
	tmpl := "<tr><td>{{.Name}}</td><td>{{.Count}}</td><td>{{.Percent}}</td></tr>\n"
	analysis := report.Flags
	total := analysis.TotalConnections

	items := []interface{}{
		newShareRow("With flags", analysis.ConnectionsWithFlags, total),
	}
	for _, code := range flags.ElephantCodes {
		if count := analysis.ElephantFlagged.Count(code); count > 0 {
			items = append(items, newShareRow("Elephant "+code, count, total))
		}
	}
	items = append(items,
		newShareRow("Offloaded (o)", analysis.Offloaded, total),
		newShareRow("Snort inspected (N*)", analysis.SnortInspected, total),
	)
	for _, entry := range analysis.AllFlags.MostCommon(topN) {
		items = append(items, newShareRow(entry.Key, entry.Count, total))
	}
	return executeRows("Flag", tmpl, items)
}
