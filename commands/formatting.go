package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/activecm/asa-elephant/pkg/elephant"
	"github.com/activecm/asa-elephant/pkg/flags"
	"github.com/activecm/asa-elephant/pkg/stats"
	"github.com/activecm/asa-elephant/util"
	"github.com/olekukonko/tablewriter"
)

// helper functions for formatting floats and integers
func f(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}
func i(i int64) string {
	return strconv.FormatInt(i, 10)
}

// pct formats part of whole as a percentage with the given precision
func pct(part, whole int, prec int) string {
	return strconv.FormatFloat(stats.Percent(part, whole), 'f', prec, 64) + "%"
}

func banner(w io.Writer, char string, width int, title string) {
	line := strings.Repeat(char, width)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, line)
}

// endpoint renders ip:port, using N/A for missing parts
func endpoint(ip, port string) string {
	if ip == "" {
		ip = "N/A"
	}
	if port == "" {
		port = "N/A"
	}
	return ip + ":" + port
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// limitFlows returns at most limit flows, or all of them when limit < 1
func limitFlows(flows []elephant.Result, limit int) []elephant.Result {
	if limit > 0 && len(flows) > limit {
		return flows[:limit]
	}
	return flows
}

var flowTableHeader = []string{"#", "Protocol", "Source", "Destination", "Uptime", "Bytes", "Rate", "Flags"}

func flowRow(index int, flow elephant.Result) []string {
	return []string{
		strconv.Itoa(index),
		orNA(flow.Protocol),
		endpoint(flow.SrcIP, flow.SrcPort),
		endpoint(flow.DstIP, flow.DstPort),
		util.FormatUptime(flow.UptimeHours, flow.Uptime),
		util.FormatBytes(flow.BytesInt),
		util.FormatRate(flow.Mbps),
		util.Truncate(flags.Highlight(flow.RawFlags, flow.Classification), 18),
	}
}

// printFlowTable writes the top flows as a fixed width table
func printFlowTable(w io.Writer, flows []elephant.Result, limit int) {
	shown := limitFlows(flows, limit)
	fmt.Fprintf(w, "\nELEPHANT FLOWS - Top %d of %d flows\n", len(shown), len(flows))

	table := tablewriter.NewWriter(w)
	table.SetHeader(flowTableHeader)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for idx, flow := range shown {
		table.Append(flowRow(idx+1, flow))
	}
	table.Render()
}

// printFlowDetails writes a block of everything known about each of the top flows
func printFlowDetails(w io.Writer, flows []elephant.Result, limit int) {
	shown := limitFlows(flows, limit)
	fmt.Fprintln(w)
	banner(w, "=", 80, fmt.Sprintf("DETAILED ELEPHANT FLOW ANALYSIS - Top %d flows", len(shown)))

	for idx, flow := range shown {
		fmt.Fprintf(w, "\n--- Flow #%d ---\n", idx+1)
		fmt.Fprintf(w, "Protocol: %s\n", orNA(flow.Protocol))
		fmt.Fprintf(w, "Source: %s - %s (%s)\n", orNA(flow.SrcInterface),
			endpoint(flow.SrcIP, flow.SrcPort), util.AddressScope(flow.SrcIP))
		fmt.Fprintf(w, "Destination: %s - %s (%s)\n", orNA(flow.DstInterface),
			endpoint(flow.DstIP, flow.DstPort), util.AddressScope(flow.DstIP))
		fmt.Fprintf(w, "Uptime: %s (%.1f hours, %.1f days)\n", orNA(flow.Uptime), flow.UptimeHours, flow.UptimeHours/24)
		fmt.Fprintf(w, "Bytes: %s (%.2f GB)\n", util.FormatCount(flow.BytesInt), float64(flow.BytesInt)/1e9)
		fmt.Fprintf(w, "Traffic Rate: %.2f Mbps (%s)\n", flow.Mbps, flow.RateCategory)
		fmt.Fprintf(w, "  - Bytes/sec: %s\n", util.FormatCount(int64(flow.BytesPerSecond)))
		fmt.Fprintf(w, "  - Bytes/min: %s\n", util.FormatCount(int64(flow.BytesPerMinute)))
		fmt.Fprintf(w, "  - Bytes/hour: %s\n", util.FormatCount(int64(flow.BytesPerHour)))

		fmt.Fprintf(w, "Flags: %s\n", orNA(flow.RawFlags))
		if flow.HasElephantFlag {
			fmt.Fprintf(w, "  ELEPHANT FLAG DETECTED: %s - %s\n", flow.ElephantFlagType, flow.ElephantFlowType)
		}
		if flow.IsOffloaded {
			fmt.Fprintln(w, "  OFFLOADED CONNECTION")
		}
		if flow.IsSnortInspected {
			fmt.Fprintln(w, "  SNORT INSPECTED")
			for _, snort := range flow.SnortFlags {
				fmt.Fprintf(w, "     - %s: %s\n", snort.Code, snort.Description)
			}
		}

		fmt.Fprintf(w, "Classification: %s\n", strings.Join(classifications(flow), ", "))
		fmt.Fprintf(w, "Combined Score: %.2f\n", flow.CombinedScore)
	}
}

func classifications(flow elephant.Result) []string {
	var list []string
	if flow.IsLongLived {
		list = append(list, "Long-lived")
	}
	if flow.IsHighVolume {
		list = append(list, "High-volume")
	}
	if flow.IsHighRate {
		list = append(list, "High-rate")
	}
	if flow.IsFlaggedElephant {
		list = append(list, "Flag-based")
	}
	if flow.IsOffloadedElephant {
		list = append(list, "Offloaded")
	}
	return list
}

// printDistribution writes the n most common entries of d, with their share
// of total when total is positive
func printDistribution(w io.Writer, title string, d *stats.Distribution, n int, total int) {
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, entry := range d.MostCommon(n) {
		if total > 0 {
			fmt.Fprintf(w, "  %s: %s (%s)\n", entry.Key, util.FormatCount(int64(entry.Count)), pct(entry.Count, total, 1))
			continue
		}
		fmt.Fprintf(w, "  %s: %s\n", entry.Key, util.FormatCount(int64(entry.Count)))
	}
}

// distributionTable renders d as a two or three column table
func distributionTable(w io.Writer, header string, d *stats.Distribution, n int, total int) {
	table := tablewriter.NewWriter(w)
	if total > 0 {
		table.SetHeader([]string{header, "Count", "Percent"})
	} else {
		table.SetHeader([]string{header, "Count"})
	}
	for _, entry := range d.MostCommon(n) {
		row := []string{entry.Key, i(int64(entry.Count))}
		if total > 0 {
			row = append(row, pct(entry.Count, total, 1))
		}
		table.Append(row)
	}
	table.Render()
}
