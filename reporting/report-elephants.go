package reporting

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/activecm/asa-elephant/pkg/elephant"
	"github.com/activecm/asa-elephant/pkg/flags"
	"github.com/activecm/asa-elephant/util"
)

func getElephantWriter(report Report) (string, error) {
	tmpl := "<tr><td>{{.Index}}</td><td>{{.Protocol}}</td><td>{{.Src}}</td><td>{{.Dst}}</td>" +
		"<td>{{.Uptime}}</td><td>{{.Bytes}}</td><td>{{.Rate}}</td><td>{{.RateCategory}}</td>" +
		"<td>{{.Flags}}</td><td>{{.ElephantFlowType}}</td><td>{{.Score}}</td></tr>\n"

	flows := report.Flows
	if len(flows) > maxFlowRows {
		flows = flows[:maxFlowRows]
	}

	var items []interface{}
	for i, flow := range flows {
		items = append(items, struct {
			elephant.Result
			Index  int
			Src    string
			Dst    string
			Uptime string
			Bytes  string
			Rate   string
			Flags  template.HTML
			Score  string
		}{
			Result: flow,
			Index:  i + 1,
			Src:    flow.Source(),
			Dst:    flow.Destination(),
			Uptime: util.FormatUptime(flow.UptimeHours, flow.Uptime),
			Bytes:  util.FormatBytes(flow.BytesInt),
			Rate:   util.FormatRate(flow.Mbps),
			Flags:  highlightHTML(flow),
			Score:  fmt.Sprintf("%.2f", flow.CombinedScore),
		})
	}
	return executeRows("Flow", tmpl, items)
}

// highlightHTML escapes the flag string and emphasizes the notable code
func highlightHTML(flow elephant.Result) template.HTML {
	marked := template.HTMLEscapeString(flags.Highlight(flow.RawFlags, flow.Classification))
	parts := strings.Split(marked, "*")
	var b strings.Builder
	for i, part := range parts {
		if i%2 == 1 && i < len(parts)-1 {
			b.WriteString(`<span class="highlight">` + part + `</span>`)
			continue
		}
		if i%2 == 1 {
			b.WriteString("*")
		}
		b.WriteString(part)
	}
	return template.HTML(b.String())
}
