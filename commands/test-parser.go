package commands

import (
	"fmt"
	"io"

	"github.com/activecm/asa-elephant/parser"
	"github.com/activecm/asa-elephant/pkg/duration"
	"github.com/activecm/asa-elephant/pkg/elephant"
	"github.com/activecm/asa-elephant/pkg/flags"
	"github.com/activecm/asa-elephant/pkg/rate"
	"github.com/activecm/asa-elephant/resources"
	"github.com/activecm/asa-elephant/util"
	"github.com/urfave/cli"
)

// sampleDump holds one connection of each shape the parser has to handle
const sampleDump = `UDP FORTISIEM: 10.1.76.4/45879 dc2: 10.1.5.101/53,
    flags - N1, idle 21s, uptime 21s, timeout 2m0s, bytes 28, Rx-RingNum 45, Internal-Data0/1
  Connection lookup keyid: 100587686

TCP FORTISIEM: 10.1.76.3/57798 beproxy: 10.1.19.90/8000,
    flags UIO N1N3, idle 8s, uptime 2h39m, timeout 1h0m, bytes 14395, Rx-RingNum 61, Internal-Data0/1
  Initiator: 10.1.76.3, Responder: 10.1.19.90
  Connection lookup keyid: 1931784606

UDP VPLS:VPLS(VPLS): 10.2.76.3/4789 FORTISIEM: 10.1.76.3/4816,
    flags -o, idle 0s, uptime 1Y25D, timeout 2m0s, bytes 7688943400093, Rx-RingNum 0, Internal-Data0/1
  Connection lookup keyid: 126607738
`

func init() {
	command := cli.Command{
		Name:      "test-parser",
		Usage:     "Check the parser against a built in sample and optionally a real dump",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			configFlag,
		},
		Action: func(c *cli.Context) error {
			res := resources.InitResources(c.String("config"))
			w := c.App.Writer

			banner(w, "=", 80, "VALIDATION AND TESTING")
			if err := validateSample(w); err != nil {
				return cli.NewExitError(err.Error(), -1)
			}

			path := c.Args().Get(0)
			if path != "" {
				fmt.Fprintf(w, "\nTesting with real data from %s...\n", path)
				records, err := loadRecords(path, res)
				if err != nil {
					res.Logger().Error(err)
					return cli.NewExitError(err.Error(), -1)
				}
				printCoverage(w, records)
			}

			fmt.Fprintln(w, "\nValidation completed successfully!")
			return nil
		},
	}

	bootstrapCommands(command)
}

// validateSample parses sampleDump, prints what was extracted and checks it
// against the connections the sample is known to hold
func validateSample(w io.Writer) error {
	fmt.Fprintln(w, "Testing with sample data...")
	records := parser.Parse(sampleDump)
	fmt.Fprintf(w, "Parsed %d sample connections\n", len(records))
	if len(records) != 3 {
		return fmt.Errorf("expected 3 sample connections, parsed %d", len(records))
	}

	for idx, rec := range records {
		fmt.Fprintf(w, "\nSample Connection %d:\n", idx+1)
		fmt.Fprintf(w, "  Protocol: %s\n", rec.Protocol)
		fmt.Fprintf(w, "  Source: %s\n", endpoint(rec.SrcIP, rec.SrcPort))
		fmt.Fprintf(w, "  Destination: %s\n", endpoint(rec.DstIP, rec.DstPort))
		fmt.Fprintf(w, "  Flags: %s\n", rec.RawFlags)
		fmt.Fprintf(w, "  Uptime: %s\n", rec.Uptime)
		fmt.Fprintf(w, "  Bytes: %s\n", rec.BytesStr)
	}

	fmt.Fprintln(w, "\nTesting flag parsing...")
	for _, rec := range records {
		if rec.RawFlags == "" {
			continue
		}
		c := flags.Decode(rec.RawFlags)
		fmt.Fprintf(w, "  Flags '%s' parsed as:\n", rec.RawFlags)
		fmt.Fprintf(w, "    Elephant flag: %t\n", c.HasElephantFlag)
		fmt.Fprintf(w, "    Offloaded: %t\n", c.IsOffloaded)
		fmt.Fprintf(w, "    Snort inspected: %t\n", c.IsSnortInspected)
	}

	fmt.Fprintln(w, "\nTesting rate calculation...")
	for _, rec := range records {
		if rec.Uptime == "" || rec.BytesStr == "" {
			continue
		}
		info := rate.Calculate(elephant.ParseBytes(rec.BytesStr), duration.ParseSeconds(rec.Uptime))
		fmt.Fprintf(w, "  %s bytes over %s = %.2f Mbps\n", rec.BytesStr, rec.Uptime, info.Mbps)
	}

	if !flags.Decode(records[1].RawFlags).HasElephantFlag {
		return fmt.Errorf("sample connection 2 should carry an elephant flag")
	}
	if !flags.Decode(records[2].RawFlags).IsOffloaded {
		return fmt.Errorf("sample connection 3 should be offloaded")
	}
	return nil
}

// printCoverage reports how many records carry flags, bytes and an uptime
func printCoverage(w io.Writer, records []parser.ConnectionRecord) {
	var withFlags, withBytes, withUptime int
	for _, rec := range records {
		if rec.RawFlags != "" {
			withFlags++
		}
		if _, ok := elephant.ByteCount(rec.BytesStr); ok {
			withBytes++
		}
		if rec.Uptime != "" {
			withUptime++
		}
	}

	total := len(records)
	fmt.Fprintf(w, "Successfully parsed %s real connections\n", util.FormatCount(int64(total)))
	fmt.Fprintf(w, "  Connections with flags: %s (%s)\n", util.FormatCount(int64(withFlags)), pct(withFlags, total, 1))
	fmt.Fprintf(w, "  Connections with bytes: %s (%s)\n", util.FormatCount(int64(withBytes)), pct(withBytes, total, 1))
	fmt.Fprintf(w, "  Connections with uptime: %s (%s)\n", util.FormatCount(int64(withUptime)), pct(withUptime, total, 1))
}
