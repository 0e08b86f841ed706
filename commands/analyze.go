package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/activecm/asa-elephant/parser"
	"github.com/activecm/asa-elephant/pkg/elephant"
	"github.com/activecm/asa-elephant/pkg/stats"
	"github.com/activecm/asa-elephant/resources"
	"github.com/activecm/asa-elephant/util"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"github.com/vbauerster/mpb"
	"github.com/vbauerster/mpb/decor"
)

func init() {
	analyzeCommand := cli.Command{
		Name:      "analyze",
		Usage:     "Run every elephant flow detection scenario against a connection table dump",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			configFlag,
			threadFlag,
		},
		Action: func(c *cli.Context) error {
			res := resources.InitResources(c.String("config"))

			_, records, err := loadInput(c, res)
			if err != nil {
				return err
			}

			threads := res.Config.R.Threads
			if c.Int("threads") > 0 {
				threads = c.Int("threads")
			}
			analyze(c.App.Writer, records, threads, res.Logger())
			return nil
		},
	}

	bootstrapCommands(analyzeCommand)
}

// scenario is one named detection pass of analyze
type scenario struct {
	name        string
	description string
	criteria    criteria
}

var scenarios = []scenario{
	{
		name:        "ASA N3 Flagged Flows",
		description: "Connections explicitly marked as elephant flows by the firewall",
		criteria: criteria{conf: elephant.Config{
			SortBy: elephant.SortBytes, IncludeFlagged: true,
		}, mode: filterFlagged},
	},
	{
		name:        "Offloaded Flows",
		description: "Connections offloaded due to high volume",
		criteria: criteria{conf: elephant.Config{
			SortBy: elephant.SortBytes, IncludeOffloaded: true,
		}, mode: filterOffloaded},
	},
	{
		name:        "High-Rate Flows (>100 Mbps)",
		description: "Connections with very high traffic rates",
		criteria: criteria{conf: elephant.Config{
			MinMbps: 100, SortBy: elephant.SortRate, IncludeFlagged: true, IncludeOffloaded: true,
		}},
	},
	{
		name:        "Traditional Elephant Flows",
		description: "Long-lived (>24h) and high-volume (>1GB) connections",
		criteria: criteria{conf: elephant.Config{
			MinUptimeHours: 24, MinBytes: megabytes(1000), SortBy: elephant.SortBoth,
			IncludeFlagged: true, IncludeOffloaded: true,
		}},
	},
}

// scenarioResult pairs a scenario with the flows it found
type scenarioResult struct {
	scenario
	flows []elephant.Result
}

// runScenarios classifies records once per scenario, drawing a progress bar
// for each pass on progress
func runScenarios(progress io.Writer, records []parser.ConnectionRecord, threads int,
	logger *log.Entry) []scenarioResult {

	results := make([]scenarioResult, 0, len(scenarios))
	if len(records) == 0 {
		for _, scn := range scenarios {
			results = append(results, scenarioResult{scenario: scn})
		}
		return results
	}

	p := mpb.New(mpb.WithWidth(20), mpb.WithOutput(progress))
	for _, scn := range scenarios {
		bar := p.AddBar(int64(len(records)),
			mpb.PrependDecorators(
				decor.Name("\t[-] "+scn.name+":", decor.WC{W: 40, C: decor.DidentRight}),
				decor.CountersNoUnit(" %d / %d ", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(decor.Percentage()),
		)

		crit := scn.criteria
		crit.threads = threads
		start := time.Now()
		flows := crit.classify(records, logger, func() {
			bar.IncrBy(1, time.Since(start))
		})
		results = append(results, scenarioResult{scenario: scn, flows: flows})
	}
	p.Wait()
	return results
}

func analyze(w io.Writer, records []parser.ConnectionRecord, threads int, logger *log.Entry) {
	banner(w, "=", 80, "COMPREHENSIVE ELEPHANT FLOW ANALYSIS")
	fmt.Fprintf(w, "Loaded %s connections\n\n", util.FormatCount(int64(len(records))))

	results := runScenarios(w, records, threads, logger)

	for idx, result := range results {
		fmt.Fprintf(w, "\n%s\n", dashes)
		fmt.Fprintf(w, "SCENARIO %d: %s\n", idx+1, result.name)
		fmt.Fprintf(w, "Description: %s\n", result.description)
		fmt.Fprintln(w, dashes)

		if len(result.flows) == 0 {
			fmt.Fprintln(w, "No flows found with these criteria")
			continue
		}

		summary := stats.SummarizeFlows(result.flows, len(records))
		fmt.Fprintf(w, "Found: %s flows (%.2f%% of total)\n",
			util.FormatCount(int64(summary.TotalElephantFlows)), summary.PercentageOfTotal)
		fmt.Fprintf(w, "Total bytes: %s\n", util.FormatCount(summary.TotalBytes))
		fmt.Fprintf(w, "Average uptime: %.1f hours\n", summary.AvgUptimeHours)

		fmt.Fprintln(w, "\nTop 3 flows:")
		for j, flow := range limitFlows(result.flows, 3) {
			fmt.Fprintf(w, "  %d. %s\n", j+1, flowLine(flow))
			fmt.Fprintf(w, "     %.1fGB, %.1fMbps, %s\n",
				float64(flow.BytesInt)/1e9, flow.Mbps, orNA(flow.Uptime))
		}
	}
}

const dashes = "------------------------------------------------------------"
