package reporting

import (
	"fmt"

	"github.com/activecm/asa-elephant/util"
)

type measure struct {
	Name  string
	Value string
}

func getHomeWriter(report Report) (string, error) {
	tmpl := "<tr><td>{{.Name}}</td><td>{{.Value}}</td></tr>\n"

	fs := report.FlowStats
	crit := report.Criteria
	measures := []measure{
		{"Total connections", util.FormatCount(int64(report.Connections.TotalConnections))},
		{"Elephant flows", fmt.Sprintf("%s (%.2f%%)", util.FormatCount(int64(fs.TotalElephantFlows)), fs.PercentageOfTotal)},
		{"Long-lived only", util.FormatCount(int64(fs.LongLivedOnly))},
		{"High-volume only", util.FormatCount(int64(fs.HighVolumeOnly))},
		{"Long-lived and high-volume", util.FormatCount(int64(fs.BothCriteria))},
		{"High-rate", util.FormatCount(int64(fs.HighRate))},
		{"Flagged (N3-N6)", util.FormatCount(int64(fs.Flagged))},
		{"Offloaded", util.FormatCount(int64(fs.Offloaded))},
		{"Elephant bytes", util.FormatBytes(fs.TotalBytes)},
		{"Largest flow", util.FormatBytes(fs.MaxBytes)},
		{"Average uptime", fmt.Sprintf("%.1f hours", fs.AvgUptimeHours)},
		{"Longest uptime", fmt.Sprintf("%.1f hours", fs.MaxUptimeHours)},
		{"Fastest flow", util.FormatRate(fs.MaxMbps)},
		{"Minimum uptime", fmt.Sprintf("%g hours", crit.MinUptimeHours)},
		{"Minimum bytes", util.FormatBytes(crit.MinBytes)},
		{"Minimum rate", fmt.Sprintf("%g Mbps", crit.MinMbps)},
		{"Include flagged", fmt.Sprint(crit.IncludeFlagged)},
		{"Include offloaded", fmt.Sprint(crit.IncludeOffloaded)},
		{"Sorted by", string(crit.SortBy)},
	}

	var items []interface{}
	for _, m := range measures {
		items = append(items, m)
	}
	return executeRows("Measure", tmpl, items)
}
