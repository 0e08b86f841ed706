package commands

import (
	"fmt"
	"strings"

	"github.com/activecm/asa-elephant/parser"
	"github.com/activecm/asa-elephant/parser/files"
	"github.com/activecm/asa-elephant/pkg/elephant"
	"github.com/activecm/asa-elephant/resources"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var allCommands []cli.Command

// flags shared across commands
var (
	configFlag = cli.StringFlag{
		Name:  "config, c",
		Usage: "Use a given `CONFIG_FILE` when running this command",
		Value: "",
	}

	humanFlag = cli.BoolFlag{
		Name:  "human-readable, H",
		Usage: "Print a report instead of delimited text",
	}

	limitFlag = cli.IntFlag{
		Name:  "limit, li",
		Usage: "Print the top `N` results (defaults to the configured output limit)",
		Value: 0,
	}

	noLimitFlag = cli.BoolFlag{
		Name:  "no-limit, nl",
		Usage: "Print all results",
	}

	delimFlag = cli.StringFlag{
		Name:  "delimiter, d",
		Usage: "Use a given `DELIM` to separate fields in delimited output",
		Value: "",
	}

	threadFlag = cli.IntFlag{
		Name:  "threads, t",
		Usage: "Classify with `N` workers (0 uses the configured value or half of the CPUs)",
		Value: 0,
	}
)

// criteriaFlags select which connections count as elephant flows. Unset
// flags fall back to the Elephant section of the configuration file.
var criteriaFlags = []cli.Flag{
	cli.Float64Flag{
		Name:  "min-hours",
		Usage: "Minimum uptime in `HOURS` for a long-lived flow",
	},
	cli.Float64Flag{
		Name:  "min-mb",
		Usage: "Minimum transfer in `MB` (1024*1024 bytes) for a high-volume flow",
	},
	cli.Float64Flag{
		Name:  "min-rate",
		Usage: "Minimum throughput in `MBPS` for a high-rate flow",
	},
	cli.StringFlag{
		Name:  "sort, s",
		Usage: "Order flows by `KEY`: uptime, bytes, rate or both",
	},
	cli.BoolTFlag{
		Name:  "include-flags",
		Usage: "Qualify connections carrying an N3, N4, N5 or N6 flag",
	},
	cli.BoolTFlag{
		Name:  "include-offloaded",
		Usage: "Qualify offloaded (o) connections",
	},
	cli.BoolFlag{
		Name:  "flags-only",
		Usage: "Only report connections flagged as elephant flows by the firewall",
	},
	cli.BoolFlag{
		Name:  "offloaded-only",
		Usage: "Only report offloaded connections",
	},
	threadFlag,
}

// bootstrapCommands simply adds a given command to the allCommands array
func bootstrapCommands(commands ...cli.Command) {
	allCommands = append(allCommands, commands...)
}

// Commands provides all of the defined commands to the front end
func Commands() []cli.Command {
	return allCommands
}

// filterMode restricts classified flows after the fact
type filterMode int

const (
	filterNone filterMode = iota
	filterFlagged
	filterOffloaded
)

// criteria is a classification request assembled from the command line
type criteria struct {
	conf    elephant.Config
	mode    filterMode
	threads int
}

// newCriteria starts from the configured thresholds and applies any
// criteria flags the user set
func newCriteria(c *cli.Context, res *resources.Resources) (criteria, error) {
	crit := criteria{
		conf:    res.Config.R.Elephant,
		threads: res.Config.R.Threads,
	}

	if c.IsSet("min-hours") {
		crit.conf.MinUptimeHours = c.Float64("min-hours")
	}
	if c.IsSet("min-mb") {
		crit.conf.MinBytes = megabytes(c.Float64("min-mb"))
	}
	if c.IsSet("min-rate") {
		crit.conf.MinMbps = c.Float64("min-rate")
	}
	if c.IsSet("sort") {
		// unrecognized keys are passed through so the classifier can warn
		crit.conf.SortBy = elephant.SortKey(strings.ToLower(c.String("sort")))
	}
	if c.IsSet("include-flags") {
		crit.conf.IncludeFlagged = c.BoolT("include-flags")
	}
	if c.IsSet("include-offloaded") {
		crit.conf.IncludeOffloaded = c.BoolT("include-offloaded")
	}
	if c.Int("threads") > 0 {
		crit.threads = c.Int("threads")
	}

	flagsOnly, offloadedOnly := c.Bool("flags-only"), c.Bool("offloaded-only")
	switch {
	case flagsOnly && offloadedOnly:
		return crit, fmt.Errorf("--flags-only and --offloaded-only cannot be combined")
	case flagsOnly:
		crit.conf.IncludeFlagged = true
		crit.conf.IncludeOffloaded = false
		crit.mode = filterFlagged
	case offloadedOnly:
		crit.conf.IncludeFlagged = false
		crit.conf.IncludeOffloaded = true
		crit.mode = filterOffloaded
	}
	return crit, nil
}

// classify runs the classifier and applies the post filter of the mode
func (crit criteria) classify(records []parser.ConnectionRecord, logger *log.Entry, progress func()) []elephant.Result {
	flows := elephant.ClassifyParallel(records, crit.conf, crit.threads, logger, progress)
	switch crit.mode {
	case filterFlagged:
		flows = elephant.FlagsOnly(flows)
	case filterOffloaded:
		flows = elephant.OffloadedOnly(flows)
	}
	return flows
}

// megabytes converts binary megabytes to bytes
func megabytes(mb float64) int64 {
	return int64(mb * 1024 * 1024)
}

// inputPath resolves the connection dump named on the command line, falling
// back to the configured default file
func inputPath(c *cli.Context, res *resources.Resources) (string, error) {
	path := c.Args().Get(0)
	if path == "" {
		path = res.Config.S.Input.DefaultFile
	}
	if path == "" {
		return "", fmt.Errorf("Specify a connection table dump")
	}
	return path, nil
}

// loadRecords reads and assembles the connection table dump at path
func loadRecords(path string, res *resources.Resources) ([]parser.ConnectionRecord, error) {
	text, err := files.ReadInput(path, res.Log)
	if err != nil {
		return nil, err
	}

	records := parser.Parse(text)
	res.Logger().WithFields(log.Fields{
		"path":        path,
		"connections": len(records),
	}).Info("Parsed connection table")
	return records, nil
}

// loadInput combines inputPath and loadRecords, reporting failures as exit errors
func loadInput(c *cli.Context, res *resources.Resources) (string, []parser.ConnectionRecord, error) {
	path, err := inputPath(c, res)
	if err != nil {
		return "", nil, cli.NewExitError(err.Error(), -1)
	}
	records, err := loadRecords(path, res)
	if err != nil {
		res.Logger().Error(err)
		return "", nil, cli.NewExitError(err.Error(), -1)
	}
	if len(records) == 0 {
		return "", nil, cli.NewExitError("No connections were found in "+path, -1)
	}
	return path, records, nil
}

// rowLimit returns how many rows to print given the limit flags
func rowLimit(c *cli.Context, res *resources.Resources) int {
	if c.Bool("no-limit") {
		return 0
	}
	if c.Int("limit") > 0 {
		return c.Int("limit")
	}
	return res.Config.S.Output.Limit
}

// delimiter picks the field separator for delimited output
func delimiter(c *cli.Context, res *resources.Resources) rune {
	delim := c.String("delimiter")
	if delim == "" {
		delim = res.Config.S.Output.Delimiter
	}
	if delim == "" {
		return ','
	}
	return []rune(delim)[0]
}
