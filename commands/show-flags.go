package commands

import (
	"fmt"
	"io"

	"github.com/activecm/asa-elephant/pkg/flags"
	"github.com/activecm/asa-elephant/pkg/stats"
	"github.com/activecm/asa-elephant/resources"
	"github.com/activecm/asa-elephant/util"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{

		Name:      "show-flags",
		Usage:     "Print how connection flags are used across a connection table dump",
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

			analysis := stats.AnalyzeFlags(records)
			if c.Bool("human-readable") {
				showFlagsHuman(c.App.Writer, analysis)
				return nil
			}
			showFlags(c.App.Writer, analysis)
			return nil
		},
	}
	bootstrapCommands(command)
}

func showFlags(w io.Writer, analysis stats.FlagAnalysis) {
	total := analysis.TotalConnections
	fmt.Fprintf(w, "Total Connections: %s\n", util.FormatCount(int64(total)))
	fmt.Fprintf(w, "Connections with Flags: %s (%s)\n",
		util.FormatCount(int64(analysis.ConnectionsWithFlags)), pct(analysis.ConnectionsWithFlags, total, 1))

	fmt.Fprintln(w, "\nElephant Flow Flags:")
	for _, code := range flags.ElephantCodes {
		if count := analysis.ElephantFlagged.Count(code); count > 0 {
			fmt.Fprintf(w, "  %s: %s (%s)\n", code, util.FormatCount(int64(count)), pct(count, total, 3))
		}
	}

	fmt.Fprintln(w, "\nSpecial Flags:")
	fmt.Fprintf(w, "  Offloaded (o): %s (%s)\n",
		util.FormatCount(int64(analysis.Offloaded)), pct(analysis.Offloaded, total, 3))
	fmt.Fprintf(w, "  Snort Inspected (N*): %s (%s)\n",
		util.FormatCount(int64(analysis.SnortInspected)), pct(analysis.SnortInspected, total, 3))

	printDistribution(w, "Top 10 Flag Combinations", analysis.AllFlags, 10, 0)
}

func showFlagsHuman(w io.Writer, analysis stats.FlagAnalysis) {
	total := analysis.TotalConnections
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Flag", "Connections", "Percent"})
	table.SetAutoFormatHeaders(false)
	table.Append([]string{"any", i(int64(analysis.ConnectionsWithFlags)), pct(analysis.ConnectionsWithFlags, total, 1)})
	for _, code := range flags.ElephantCodes {
		count := analysis.ElephantFlagged.Count(code)
		table.Append([]string{code, i(int64(count)), pct(count, total, 3)})
	}
	table.Append([]string{flags.OffloadCode, i(int64(analysis.Offloaded)), pct(analysis.Offloaded, total, 3)})
	table.Append([]string{"N*", i(int64(analysis.SnortInspected)), pct(analysis.SnortInspected, total, 3)})
	table.Render()

	distributionTable(w, "Flag Combination", analysis.FlagCombinations, 10, 0)
}
