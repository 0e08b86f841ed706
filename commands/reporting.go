package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/activecm/asa-elephant/reporting"
	"github.com/activecm/asa-elephant/resources"
	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{

		Name:  "html-report",
		Usage: "Create an html report for a connection table dump",
		UsageText: "elephant html-report [command-options] <file>\n\n" +
			"The report is written to a new directory and opened in the default browser.",
		Flags: append([]cli.Flag{
			configFlag,
			cli.StringFlag{
				Name:  "directory, dir",
				Usage: "Write the report to `DIR` (defaults to the configured report directory)",
			},
			cli.BoolFlag{
				Name:  "no-browser",
				Usage: "Do not open the report once it is written",
			},
		}, criteriaFlags...),
		Action: func(c *cli.Context) error {
			res := resources.InitResources(c.String("config"))

			crit, err := newCriteria(c, res)
			if err != nil {
				return cli.NewExitError(err.Error(), -1)
			}

			path, records, err := loadInput(c, res)
			if err != nil {
				return err
			}

			dir := c.String("directory")
			if dir == "" {
				dir = res.Config.S.Output.ReportDir
			}

			flows := crit.classify(records, res.Logger(), nil)
			report := reporting.NewReport(reportName(path), res.RunID.String(), records, flows, crit.conf)
			outDir, err := reporting.PrintHTML(report, dir, !c.Bool("no-browser"), res)
			if err != nil {
				res.Logger().Error(err)
				return cli.NewExitError(err.Error(), -1)
			}
			fmt.Fprintf(c.App.Writer, "Wrote html report to: %s\n", outDir)
			return nil
		},
	}
	bootstrapCommands(command)
}

// reportName derives a report title from the input file name
func reportName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, ".gz")
	return strings.TrimSuffix(name, filepath.Ext(name))
}
