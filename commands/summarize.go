package commands

import (
	"fmt"
	"io"

	"github.com/activecm/asa-elephant/parser"
	"github.com/activecm/asa-elephant/pkg/elephant"
	"github.com/activecm/asa-elephant/pkg/stats"
	"github.com/activecm/asa-elephant/resources"
	"github.com/activecm/asa-elephant/util"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{

		Name:      "summarize",
		Usage:     "Print an executive summary of the elephant flows in a connection table dump",
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
			summarize(c.App.Writer, records, threads, res.Logger())
			return nil
		},
	}
	bootstrapCommands(command)
}

// executiveSummary holds the detection passes of the summary
type executiveSummary struct {
	total      int
	totalBytes int64
	all        []elephant.Result
	flagged    []elephant.Result
	offloaded  []elephant.Result
	highRate   []elephant.Result
	longLived  []elephant.Result
}

// summaryPasses are the detection passes run by summarize, in print order
var summaryPasses = struct {
	all, flagged, offloaded, highRate, longLived criteria
}{
	all: criteria{conf: elephant.Config{
		MinUptimeHours: 1, MinBytes: megabytes(100), MinMbps: 1,
		SortBy: elephant.SortBytes, IncludeFlagged: true, IncludeOffloaded: true,
	}},
	flagged: criteria{conf: elephant.Config{
		SortBy: elephant.SortBytes, IncludeFlagged: true,
	}, mode: filterFlagged},
	offloaded: criteria{conf: elephant.Config{
		SortBy: elephant.SortBytes, IncludeOffloaded: true,
	}, mode: filterOffloaded},
	highRate: criteria{conf: elephant.Config{
		MinMbps: 50, SortBy: elephant.SortRate, IncludeFlagged: true, IncludeOffloaded: true,
	}},
	longLived: criteria{conf: elephant.Config{
		MinUptimeHours: 24, SortBy: elephant.SortUptime, IncludeFlagged: true, IncludeOffloaded: true,
	}},
}

func newExecutiveSummary(records []parser.ConnectionRecord, threads int, logger *log.Entry) executiveSummary {
	run := func(crit criteria) []elephant.Result {
		crit.threads = threads
		return crit.classify(records, logger, nil)
	}

	return executiveSummary{
		total:      len(records),
		totalBytes: stats.SummarizeConnections(records).ByteStatistics.Total,
		all:        run(summaryPasses.all),
		flagged:    run(summaryPasses.flagged),
		offloaded:  run(summaryPasses.offloaded),
		highRate:   run(summaryPasses.highRate),
		longLived:  run(summaryPasses.longLived),
	}
}

func summarize(w io.Writer, records []parser.ConnectionRecord, threads int, logger *log.Entry) {
	sum := newExecutiveSummary(records, threads, logger)

	banner(w, "=", 80, "ELEPHANT FLOW ANALYSIS - EXECUTIVE SUMMARY")
	fmt.Fprintf(w, "Total connections analyzed: %s\n", util.FormatCount(int64(sum.total)))

	fmt.Fprintln(w, "\nDETECTION SUMMARY:")
	fmt.Fprintf(w, "  Comprehensive Elephant Flows: %s (%s)\n",
		util.FormatCount(int64(len(sum.all))), pct(len(sum.all), sum.total, 1))
	fmt.Fprintf(w, "  ASA N3 Flagged Flows: %s (%s)\n",
		util.FormatCount(int64(len(sum.flagged))), pct(len(sum.flagged), sum.total, 3))
	fmt.Fprintf(w, "  Offloaded Flows: %s (%s)\n",
		util.FormatCount(int64(len(sum.offloaded))), pct(len(sum.offloaded), sum.total, 3))
	fmt.Fprintf(w, "  High-Rate Flows (>50 Mbps): %s\n", util.FormatCount(int64(len(sum.highRate))))

	flaggedBytes := totalBytes(sum.flagged)
	offloadedBytes := totalBytes(sum.offloaded)
	fmt.Fprintln(w, "\nTRAFFIC VOLUME IMPACT:")
	fmt.Fprintf(w, "  Total Network Traffic: %.1f TB\n", float64(sum.totalBytes)/1e12)
	fmt.Fprintf(w, "  N3 Flagged Traffic: %.1f TB%s\n", float64(flaggedBytes)/1e12, shareOf(flaggedBytes, sum.totalBytes))
	fmt.Fprintf(w, "  Offloaded Traffic: %.1f TB%s\n", float64(offloadedBytes)/1e12, shareOf(offloadedBytes, sum.totalBytes))

	fmt.Fprintln(w, "\nTOP ELEPHANT FLOWS:")
	if len(sum.flagged) > 0 {
		top := sum.flagged[0]
		fmt.Fprintln(w, "  Largest N3 Flagged Flow:")
		fmt.Fprintf(w, "     %s\n", flowLine(top))
		fmt.Fprintf(w, "     Volume: %.1f TB, Rate: %.1f Mbps, Uptime: %s\n",
			float64(top.BytesInt)/1e12, top.Mbps, uptimeOrUnknown(top))
	}
	if len(sum.offloaded) > 0 {
		top := sum.offloaded[0]
		fmt.Fprintln(w, "  Largest Offloaded Flow:")
		fmt.Fprintf(w, "     %s\n", flowLine(top))
		fmt.Fprintf(w, "     Volume: %.1f TB, Rate: %.1f Mbps, Uptime: %s\n",
			float64(top.BytesInt)/1e12, top.Mbps, uptimeOrUnknown(top))
	}
	if len(sum.highRate) > 0 {
		top := sum.highRate[0]
		fmt.Fprintln(w, "  Highest Rate Flow:")
		fmt.Fprintf(w, "     %s\n", flowLine(top))
		fmt.Fprintf(w, "     Rate: %.1f Mbps, Volume: %.1f GB, Uptime: %s\n",
			top.Mbps, float64(top.BytesInt)/1e9, uptimeOrUnknown(top))
	}
	if len(sum.longLived) > 0 {
		top := sum.longLived[0]
		fmt.Fprintln(w, "  Longest Running Flow:")
		fmt.Fprintf(w, "     %s\n", flowLine(top))
		fmt.Fprintf(w, "     Uptime: %s, Volume: %.1f GB, Rate: %.1f Mbps\n",
			uptimeOrUnknown(top), float64(top.BytesInt)/1e9, top.Mbps)
	}

	fmt.Fprintln(w, "\nKEY INSIGHTS:")
	fmt.Fprintf(w, "  * Only %s of connections carry a firewall elephant flag\n", pct(len(sum.flagged), sum.total, 3))
	fmt.Fprintf(w, "  * Offloaded flows are %s of connections and %s of the bytes\n",
		pct(len(sum.offloaded), sum.total, 3), bytesShare(offloadedBytes, sum.totalBytes))
	fmt.Fprintln(w, "  * VXLAN tunnels (port 4789) often dominate offloaded traffic")

	fmt.Fprintln(w, "\nFor detailed analysis, use:")
	fmt.Fprintln(w, "  elephant show-elephants --flags-only --detailed <file>")
	fmt.Fprintln(w, "  elephant show-elephants --offloaded-only --detailed <file>")
	fmt.Fprintln(w, "  elephant analyze <file>")
}

func totalBytes(flows []elephant.Result) int64 {
	var total int64
	for _, flow := range flows {
		total += flow.BytesInt
	}
	return total
}

func bytesShare(part, whole int64) string {
	if whole <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(whole)*100)
}

func shareOf(part, whole int64) string {
	if whole <= 0 {
		return ""
	}
	return " (" + bytesShare(part, whole) + " of total)"
}

// flowLine renders a flow as "PROTO src:port -> dst:port"
func flowLine(flow elephant.Result) string {
	return fmt.Sprintf("%s %s -> %s", orNA(flow.Protocol),
		endpoint(flow.SrcIP, flow.SrcPort), endpoint(flow.DstIP, flow.DstPort))
}

func uptimeOrUnknown(flow elephant.Result) string {
	if flow.Uptime == "" {
		return "unknown"
	}
	return flow.Uptime
}
