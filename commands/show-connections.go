package commands

import (
	"io"

	"github.com/activecm/asa-elephant/export"
	"github.com/activecm/asa-elephant/parser"
	"github.com/activecm/asa-elephant/resources"
	"github.com/activecm/asa-elephant/util"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{

		Name:      "show-connections",
		Usage:     "Print the connections parsed from a connection table dump",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			humanFlag,
			configFlag,
			delimFlag,
			limitFlag,
			noLimitFlag,
		},
		Action: func(c *cli.Context) error {
			res := resources.InitResources(c.String("config"))

			_, records, err := loadInput(c, res)
			if err != nil {
				return err
			}

			records = limitRecords(records, rowLimit(c, res))

			if c.Bool("human-readable") {
				showConnectionsHuman(c.App.Writer, records)
				return nil
			}
			err = showConnections(c.App.Writer, records, delimiter(c, res))
			if err != nil {
				return cli.NewExitError(err.Error(), -1)
			}
			return nil
		},
	}
	bootstrapCommands(command)
}

func limitRecords(records []parser.ConnectionRecord, limit int) []parser.ConnectionRecord {
	if limit > 0 && len(records) > limit {
		return records[:limit]
	}
	return records
}

// showConnections writes every populated field of the records with a header
// holding the sorted union of field names
func showConnections(w io.Writer, records []parser.ConnectionRecord, delim rune) error {
	header, rows := export.Table(export.ConnectionFields(records))
	return export.WriteDelimited(w, delim, header, rows)
}

func showConnectionsHuman(w io.Writer, records []parser.ConnectionRecord) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Protocol", "Source", "Destination", "Flags", "Uptime", "Bytes", "Key ID"})
	table.SetAutoFormatHeaders(false)
	for _, rec := range records {
		table.Append([]string{
			orNA(rec.Protocol),
			rec.SrcInterface + " " + endpoint(rec.SrcIP, rec.SrcPort),
			rec.DstInterface + " " + endpoint(rec.DstIP, rec.DstPort),
			orNA(rec.RawFlags),
			orNA(util.Truncate(rec.Uptime, 16)),
			orNA(rec.BytesStr),
			orNA(rec.KeyID),
		})
	}
	table.Render()
}
