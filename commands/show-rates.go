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

func init() {
	command := cli.Command{

		Name:      "show-rates",
		Usage:     "Print the throughput distribution of a connection table dump",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			humanFlag,
			configFlag,
			limitFlag,
			noLimitFlag,
		},
		Action: func(c *cli.Context) error {
			res := resources.InitResources(c.String("config"))

			_, records, err := loadInput(c, res)
			if err != nil {
				return err
			}

			analysis := stats.AnalyzeRates(records)
			limit := 5
			if c.Bool("no-limit") {
				limit = 0
			} else if c.Int("limit") > 0 {
				limit = c.Int("limit")
			}

			if c.Bool("human-readable") {
				showRatesHuman(c.App.Writer, analysis, limit)
				return nil
			}
			showRates(c.App.Writer, analysis, limit)
			return nil
		},
	}
	bootstrapCommands(command)
}

func highRateFlows(analysis stats.RateAnalysis, limit int) []stats.RateFlow {
	if limit > 0 && len(analysis.HighRateFlows) > limit {
		return analysis.HighRateFlows[:limit]
	}
	return analysis.HighRateFlows
}

func showRates(w io.Writer, analysis stats.RateAnalysis, limit int) {
	withRates := analysis.ConnectionsWithRates
	fmt.Fprintf(w, "Total Connections: %s\n", util.FormatCount(int64(analysis.TotalConnections)))
	fmt.Fprintf(w, "Connections with Calculable Rates: %s (%s)\n",
		util.FormatCount(int64(withRates)), pct(withRates, analysis.TotalConnections, 1))

	printDistribution(w, "Rate Distribution", analysis.RateCategories, 0, withRates)

	fmt.Fprintln(w, "\nRate Ranges:")
	for _, rng := range analysis.RateRanges {
		if rng.Count > 0 {
			fmt.Fprintf(w, "  %s: %s (%s)\n", rng.Name, util.FormatCount(int64(rng.Count)), pct(rng.Count, withRates, 2))
		}
	}

	flows := highRateFlows(analysis, limit)
	if len(flows) == 0 {
		return
	}
	fmt.Fprintf(w, "\nTop %d Highest Rate Flows (>%d Mbps):\n", len(flows), stats.HighRateMbps)
	for idx, flow := range flows {
		fmt.Fprintf(w, "  %d. %s %s -> %s: %s\n", idx+1, orNA(flow.Protocol),
			endpoint(flow.SrcIP, flow.SrcPort), endpoint(flow.DstIP, flow.DstPort),
			util.FormatRate(flow.Mbps))
	}
}

func showRatesHuman(w io.Writer, analysis stats.RateAnalysis, limit int) {
	withRates := analysis.ConnectionsWithRates
	distributionTable(w, "Rate Category", analysis.RateCategories, 0, withRates)

	ranges := tablewriter.NewWriter(w)
	ranges.SetHeader([]string{"Range", "Connections", "Percent"})
	ranges.SetAutoFormatHeaders(false)
	for _, rng := range analysis.RateRanges {
		ranges.Append([]string{rng.Name, i(int64(rng.Count)), pct(rng.Count, withRates, 2)})
	}
	ranges.Render()

	flows := highRateFlows(analysis, limit)
	if len(flows) == 0 {
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Protocol", "Source", "Destination", "Mbps", "Category"})
	table.SetAutoFormatHeaders(false)
	for _, flow := range flows {
		table.Append([]string{
			orNA(flow.Protocol),
			endpoint(flow.SrcIP, flow.SrcPort),
			endpoint(flow.DstIP, flow.DstPort),
			f(flow.Mbps),
			string(flow.RateCategory),
		})
	}
	table.Render()
}
