package commands

import (
	"fmt"
	"io"

	"github.com/activecm/asa-elephant/export"
	"github.com/activecm/asa-elephant/pkg/elephant"
	"github.com/activecm/asa-elephant/pkg/stats"
	"github.com/activecm/asa-elephant/resources"
	"github.com/activecm/asa-elephant/util"
	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{

		Name:      "show-elephants",
		Usage:     "Print the elephant flows found in a connection table dump",
		ArgsUsage: "<file>",
		Flags: append([]cli.Flag{
			configFlag,
			limitFlag,
			noLimitFlag,
			cli.BoolFlag{
				Name:  "detailed",
				Usage: "Print a detail block for each of the top flows",
			},
			cli.BoolFlag{
				Name:  "quiet, q",
				Usage: "Print only the flow table and a short summary",
			},
			cli.StringFlag{
				Name:  "export, e",
				Usage: "Write every flow to `CSV_FILE`",
			},
		}, criteriaFlags...),
		Action: func(c *cli.Context) error {
			res := resources.InitResources(c.String("config"))

			crit, err := newCriteria(c, res)
			if err != nil {
				return cli.NewExitError(err.Error(), -1)
			}

			_, records, err := loadInput(c, res)
			if err != nil {
				return err
			}

			flows := crit.classify(records, res.Logger(), nil)
			w := c.App.Writer
			if len(flows) == 0 {
				fmt.Fprintln(w, "No elephant flows found with the specified criteria")
				return nil
			}

			view := elephantView{
				criteria:    crit.conf,
				total:       len(records),
				limit:       rowLimit(c, res),
				detailLimit: res.Config.S.Output.DetailLimit,
				detailed:    c.Bool("detailed"),
				quiet:       c.Bool("quiet"),
			}
			showElephants(w, flows, view)

			if path := c.String("export"); path != "" {
				if err := export.WriteCSV(path, export.FlowFields(flows)); err != nil {
					res.Logger().Error(err)
					return cli.NewExitError(err.Error(), -1)
				}
				if !view.quiet {
					fmt.Fprintf(w, "\nExported %s flows to: %s\n", util.FormatCount(int64(len(flows))), path)
				}
			}
			return nil
		},
	}
	bootstrapCommands(command)
}

// elephantView controls how much of a classification is printed
type elephantView struct {
	criteria    elephant.Config
	total       int
	limit       int
	detailLimit int
	detailed    bool
	quiet       bool
}

func showElephants(w io.Writer, flows []elephant.Result, view elephantView) {
	summary := stats.SummarizeFlows(flows, view.total)

	if !view.quiet {
		printCriteria(w, view.criteria)

		fmt.Fprintln(w, "\nRESULTS:")
		fmt.Fprintf(w, "Found %s elephant flows (%.2f%% of total)\n",
			util.FormatCount(int64(summary.TotalElephantFlows)), summary.PercentageOfTotal)
		fmt.Fprintf(w, "  - Flag-based (N3/N4/N5/N6): %s\n", util.FormatCount(int64(summary.Flagged)))
		fmt.Fprintf(w, "  - Offloaded (o): %s\n", util.FormatCount(int64(summary.Offloaded)))
		fmt.Fprintf(w, "  - High-rate: %s\n", util.FormatCount(int64(summary.HighRate)))
		fmt.Fprintf(w, "  - Long-lived only: %s\n", util.FormatCount(int64(summary.LongLivedOnly)))
		fmt.Fprintf(w, "  - High-volume only: %s\n", util.FormatCount(int64(summary.HighVolumeOnly)))
		fmt.Fprintf(w, "  - Multiple criteria: %s\n", util.FormatCount(int64(summary.BothCriteria)))

		fmt.Fprintln(w, "\nSTATISTICS:")
		fmt.Fprintf(w, "  Total bytes: %s\n", util.FormatCount(summary.TotalBytes))
		fmt.Fprintf(w, "  Average uptime: %.1f hours\n", summary.AvgUptimeHours)
		fmt.Fprintf(w, "  Max uptime: %.1f hours\n", summary.MaxUptimeHours)
		fmt.Fprintf(w, "  Max bytes: %s\n", util.FormatCount(summary.MaxBytes))
	}

	printFlowTable(w, flows, view.limit)

	if view.detailed && !view.quiet {
		printFlowDetails(w, flows, view.detailLimit)
	}

	if view.quiet {
		fmt.Fprintf(w, "Found %s elephant flows (%.2f%%)\n",
			util.FormatCount(int64(summary.TotalElephantFlows)), summary.PercentageOfTotal)
		if summary.Flagged > 0 {
			fmt.Fprintf(w, "Flag-based: %d\n", summary.Flagged)
		}
		if summary.Offloaded > 0 {
			fmt.Fprintf(w, "Offloaded: %d\n", summary.Offloaded)
		}
		if summary.HighRate > 0 {
			fmt.Fprintf(w, "High-rate: %d\n", summary.HighRate)
		}
	}
}

func printCriteria(w io.Writer, conf elephant.Config) {
	fmt.Fprintln(w, "\nCRITERIA:")
	fmt.Fprintf(w, "  Min uptime: %s hours\n", f(conf.MinUptimeHours))
	fmt.Fprintf(w, "  Min bytes: %s MB (%s bytes)\n",
		f(float64(conf.MinBytes)/(1024*1024)), util.FormatCount(conf.MinBytes))
	fmt.Fprintf(w, "  Min rate: %s Mbps\n", f(conf.MinMbps))
	fmt.Fprintf(w, "  Include flags: %t\n", conf.IncludeFlagged)
	fmt.Fprintf(w, "  Include offloaded: %t\n", conf.IncludeOffloaded)
	fmt.Fprintf(w, "  Sort by: %s\n", conf.SortBy)
}
