package commands

import (
	"fmt"
	"io"

	"github.com/activecm/asa-elephant/pkg/stats"
	"github.com/activecm/asa-elephant/resources"
	"github.com/activecm/asa-elephant/util"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// summaryTopN is the number of entries listed per distribution
const summaryTopN = 5

func init() {
	command := cli.Command{

		Name:      "show-summary",
		Usage:     "Print connection statistics for a connection table dump",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			humanFlag,
			configFlag,
		},
		Action: func(c *cli.Context) error {
			res := resources.InitResources(c.String("config"))

			_, records, err := loadInput(c, res)
			if err != nil {
				return err
			}

			summary := stats.SummarizeConnections(records)
			if c.Bool("human-readable") {
				showSummaryHuman(c.App.Writer, summary)
				return nil
			}
			showSummary(c.App.Writer, summary)
			return nil
		},
	}
	bootstrapCommands(command)
}

func showSummary(w io.Writer, summary stats.ConnectionSummary) {
	total := summary.TotalConnections
	fmt.Fprintln(w)
	banner(w, "=", 60, "CONNECTION ANALYSIS SUMMARY")

	fmt.Fprintf(w, "\nTotal Connections: %s\n", util.FormatCount(int64(total)))

	printDistribution(w, "Protocol Distribution", summary.Protocols, 0, total)
	printDistribution(w, "Top 5 Source Interfaces", summary.SourceInterfaces, summaryTopN, 0)
	printDistribution(w, "Top 5 Destination Interfaces", summary.DestinationInterfaces, summaryTopN, 0)
	printDistribution(w, "Top 5 Source IPs", summary.TopSourceIPs, summaryTopN, 0)
	printDistribution(w, "Top 5 Destination IPs", summary.TopDestinationIPs, summaryTopN, 0)
	printDistribution(w, "Top 5 Destination Ports", summary.TopPorts, summaryTopN, 0)

	byteStats := summary.ByteStatistics
	fmt.Fprintln(w, "\nByte Statistics:")
	fmt.Fprintf(w, "  Total Bytes: %s\n", util.FormatCount(byteStats.Total))
	fmt.Fprintf(w, "  Average Bytes per Connection: %.2f\n", byteStats.Average)
	fmt.Fprintf(w, "  Max Bytes: %s\n", util.FormatCount(byteStats.Max))
	fmt.Fprintf(w, "  Min Bytes: %s\n", util.FormatCount(byteStats.Min))

	fmt.Fprintln(w, "\nUptime Statistics:")
	fmt.Fprintf(w, "  Total Uptime: %.1f hours\n", summary.TotalUptimeHours)
	fmt.Fprintf(w, "  Average Uptime per Connection: %.1f hours\n", summary.AvgUptimeHours)
	fmt.Fprintf(w, "  Max Uptime: %.1f hours\n", summary.MaxUptimeHours)

	printDistribution(w, "Top 5 Flag Combinations", summary.FlagsSummary, summaryTopN, 0)
}

func showSummaryHuman(w io.Writer, summary stats.ConnectionSummary) {
	total := summary.TotalConnections
	fmt.Fprintf(w, "Total Connections: %s\n\n", util.FormatCount(int64(total)))

	distributionTable(w, "Protocol", summary.Protocols, 0, total)
	distributionTable(w, "Source Interface", summary.SourceInterfaces, summaryTopN, 0)
	distributionTable(w, "Destination Interface", summary.DestinationInterfaces, summaryTopN, 0)
	distributionTable(w, "Source IP", summary.TopSourceIPs, summaryTopN, 0)
	distributionTable(w, "Destination IP", summary.TopDestinationIPs, summaryTopN, 0)
	distributionTable(w, "Destination Port", summary.TopPorts, summaryTopN, 0)

	byteStats := summary.ByteStatistics
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Total Bytes", "Average Bytes", "Max Bytes", "Min Bytes"})
	table.Append([]string{
		util.FormatBytes(byteStats.Total),
		util.FormatBytes(int64(byteStats.Average)),
		util.FormatBytes(byteStats.Max),
		util.FormatBytes(byteStats.Min),
	})
	table.Render()

	table = tablewriter.NewWriter(w)
	table.SetHeader([]string{"Total Uptime", "Average Uptime", "Max Uptime"})
	table.Append([]string{
		fmt.Sprintf("%.1f hours", summary.TotalUptimeHours),
		fmt.Sprintf("%.1f hours", summary.AvgUptimeHours),
		fmt.Sprintf("%.1f hours", summary.MaxUptimeHours),
	})
	table.Render()

	distributionTable(w, "Flags", summary.FlagsSummary, summaryTopN, 0)
}
