package reporting

import (
	"fmt"

	"github.com/activecm/asa-elephant/pkg/stats"
	"github.com/activecm/asa-elephant/util"
)

type statRow struct {
	Statistic string
	Value     string
	Count     string
}

func getConnectionWriter(report Report) (string, error) {
	tmpl := "<tr><td>{{.Statistic}}</td><td>{{.Value}}</td><td>{{.Count}}</td></tr>\n"
	summary := report.Connections

	var items []interface{}
	addDistribution := func(name string, d *stats.Distribution, withPercent bool) {
		for _, entry := range d.MostCommon(topN) {
			count := util.FormatCount(int64(entry.Count))
			if withPercent {
				count = fmt.Sprintf("%s (%.1f%%)", count, stats.Percent(entry.Count, summary.TotalConnections))
			}
			items = append(items, statRow{name, entry.Key, count})
		}
	}

	addDistribution("Protocol", summary.Protocols, true)
	addDistribution("Source interface", summary.SourceInterfaces, false)
	addDistribution("Destination interface", summary.DestinationInterfaces, false)
	addDistribution("Source IP", summary.TopSourceIPs, false)
	addDistribution("Destination IP", summary.TopDestinationIPs, false)
	addDistribution("Destination port", summary.TopPorts, false)
	addDistribution("Flag combination", summary.FlagsSummary, false)

	byteStats := summary.ByteStatistics
	items = append(items,
		statRow{"Bytes", "total", util.FormatCount(byteStats.Total)},
		statRow{"Bytes", "average", fmt.Sprintf("%.2f", byteStats.Average)},
		statRow{"Bytes", "max", util.FormatCount(byteStats.Max)},
		statRow{"Bytes", "min", util.FormatCount(byteStats.Min)},
	)
	return executeRows("Statistic", tmpl, items)
}
