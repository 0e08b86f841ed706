package commands

import (
	"fmt"
	"io"

	"github.com/activecm/asa-elephant/export"
	"github.com/activecm/asa-elephant/parser"
	"github.com/activecm/asa-elephant/pkg/elephant"
	"github.com/activecm/asa-elephant/pkg/stats"
	"github.com/activecm/asa-elephant/resources"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"
)

func init() {
	command := cli.Command{

		Name:      "export",
		Usage:     "Write connections, elephant flows and statistics to files",
		ArgsUsage: "<file>",
		Flags: append([]cli.Flag{
			configFlag,
			cli.StringFlag{
				Name:  "connections-csv",
				Usage: "Write every parsed connection to `CSV_FILE`",
			},
			cli.StringFlag{
				Name:  "flows-csv",
				Usage: "Write every elephant flow to `CSV_FILE`",
			},
			cli.StringFlag{
				Name:  "stats-json",
				Usage: "Write connection, flow, flag and rate statistics to `JSON_FILE`",
			},
			cli.StringFlag{
				Name:  "metrics",
				Usage: "Write elephant flow gauges in the Prometheus text format to `PROM_FILE`",
			},
		}, criteriaFlags...),
		Action: func(c *cli.Context) error {
			res := resources.InitResources(c.String("config"))

			targets := exportTargets{
				connectionsCSV: c.String("connections-csv"),
				flowsCSV:       c.String("flows-csv"),
				statsJSON:      c.String("stats-json"),
				metrics:        c.String("metrics"),
			}
			if targets.empty() {
				return cli.NewExitError("Specify at least one of --connections-csv, --flows-csv, --stats-json or --metrics", -1)
			}

			crit, err := newCriteria(c, res)
			if err != nil {
				return cli.NewExitError(err.Error(), -1)
			}

			path, records, err := loadInput(c, res)
			if err != nil {
				return err
			}

			flows := crit.classify(records, res.Logger(), nil)
			err = exportAll(c.App.Writer, targets, path, records, flows, crit.conf, res)
			if err != nil {
				res.Logger().Error(err)
				return cli.NewExitError(err.Error(), -1)
			}
			return nil
		},
	}
	bootstrapCommands(command)
}

// exportTargets names the files to write; empty names are skipped
type exportTargets struct {
	connectionsCSV string
	flowsCSV       string
	statsJSON      string
	metrics        string
}

func (t exportTargets) empty() bool {
	return t.connectionsCSV == "" && t.flowsCSV == "" && t.statsJSON == "" && t.metrics == ""
}

// exportAll writes each requested export concurrently and returns the first
// failure. Nothing is printed unless every export succeeded.
func exportAll(w io.Writer, targets exportTargets, source string, records []parser.ConnectionRecord,
	flows []elephant.Result, conf elephant.Config, res *resources.Resources) error {

	logger := res.Logger()
	var g errgroup.Group
	var written []string

	if targets.connectionsCSV != "" {
		g.Go(func() error {
			return export.WriteCSV(targets.connectionsCSV, export.ConnectionFields(records))
		})
		written = append(written, fmt.Sprintf("Exported %d connections to: %s", len(records), targets.connectionsCSV))
	}

	if targets.flowsCSV != "" {
		g.Go(func() error {
			return export.WriteCSV(targets.flowsCSV, export.FlowFields(flows))
		})
		written = append(written, fmt.Sprintf("Exported %d flows to: %s", len(flows), targets.flowsCSV))
	}

	if targets.statsJSON != "" {
		g.Go(func() error {
			return export.WriteJSON(targets.statsJSON, newStatsDocument(source, records, flows, conf, res))
		})
		written = append(written, "Exported statistics to: "+targets.statsJSON)
	}

	if targets.metrics != "" {
		g.Go(func() error {
			return export.WriteMetrics(targets.metrics, flows, len(records))
		})
		written = append(written, "Exported metrics to: "+targets.metrics)
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, line := range written {
		logger.Info(line)
		fmt.Fprintln(w, line)
	}
	return nil
}

func newStatsDocument(source string, records []parser.ConnectionRecord, flows []elephant.Result,
	conf elephant.Config, res *resources.Resources) export.StatsDocument {

	doc := export.NewStatsDocument(res.RunID.String(), res.Config.S.Version, source,
		stats.SummarizeConnections(records))

	flowSummary := stats.SummarizeFlows(flows, len(records))
	flagAnalysis := stats.AnalyzeFlags(records)
	rateAnalysis := stats.AnalyzeRates(records)

	doc.Criteria = &conf
	doc.Flows = &flowSummary
	doc.Flags = &flagAnalysis
	doc.Rates = &rateAnalysis
	return doc
}
