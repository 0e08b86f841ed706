package reporting

import (
	"bytes"
	"html/template"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"

	"github.com/activecm/asa-elephant/parser"
	"github.com/activecm/asa-elephant/pkg/elephant"
	"github.com/activecm/asa-elephant/pkg/stats"
	htmlTempl "github.com/activecm/asa-elephant/reporting/templates"
	"github.com/activecm/asa-elephant/resources"
	"github.com/activecm/asa-elephant/util"
	"github.com/skratchdot/open-golang/open"
)

// maxFlowRows caps the number of flows written to the flow table
const maxFlowRows = 1000

// topN is the number of entries shown for each distribution
const topN = 10

type (
	// Report holds everything rendered into the html report
	Report struct {
		Name        string
		RunID       string
		Criteria    elephant.Config
		Flows       []elephant.Result
		Connections stats.ConnectionSummary
		FlowStats   stats.FlowSummary
		Flags       stats.FlagAnalysis
		Rates       stats.RateAnalysis
	}

	// page is one html file of the report
	page struct {
		file   string
		templ  string
		writer func(Report) (string, error)
	}
)

var pages = []page{
	{"index.html", htmlTempl.Hometempl, getHomeWriter},
	{"elephants.html", htmlTempl.ElephantsTempl, getElephantWriter},
	{"connections.html", htmlTempl.ConnectionsTempl, getConnectionWriter},
	{"flags.html", htmlTempl.FlagsTempl, getFlagWriter},
	{"rates.html", htmlTempl.RatesTempl, getRateWriter},
}

// NewReport gathers the statistics shown in the report for a classified
// connection table
func NewReport(name, runID string, records []parser.ConnectionRecord,
	flows []elephant.Result, criteria elephant.Config) Report {
	return Report{
		Name:        name,
		RunID:       runID,
		Criteria:    criteria,
		Flows:       flows,
		Connections: stats.SummarizeConnections(records),
		FlowStats:   stats.SummarizeFlows(flows, len(records)),
		Flags:       stats.AnalyzeFlags(records),
		Rates:       stats.AnalyzeRates(records),
	}
}

// PrintHTML writes the report into a new directory named outDir, appending a
// counter when outDir already exists, and returns the directory written.
// The report is opened in the default browser when openBrowser is set.
func PrintHTML(report Report, outDir string, openBrowser bool, res *resources.Resources) (string, error) {
	outFolder := outDir
	counter := 1

	//while the file exists, append the next counter
	for util.Exists(outFolder) {
		outFolder = outDir + strconv.Itoa(counter)
		counter++
	}

	err := os.MkdirAll(outFolder, 0755)
	if err != nil {
		return "", util.NewIOError("create report directory", outFolder, err)
	}

	err = ioutil.WriteFile(filepath.Join(outFolder, "style.css"), htmlTempl.CSStempl, 0644)
	if err != nil {
		return "", util.NewIOError("write", filepath.Join(outFolder, "style.css"), err)
	}

	for _, p := range pages {
		res.Logger().WithField("file", p.file).Debug("Writing report page")
		if err := writePage(outFolder, p, report); err != nil {
			return "", err
		}
	}

	res.Logger().WithField("directory", outFolder).Info("Wrote html report")

	if openBrowser {
		err = open.Run(filepath.Join(outFolder, "index.html"))
		if err != nil {
			res.Logger().WithError(err).Warn("Could not open the report in a browser")
		}
	}
	return outFolder, nil
}

func writePage(dir string, p page, report Report) error {
	path := filepath.Join(dir, p.file)
	f, err := os.Create(path)
	if err != nil {
		return util.NewIOError("create", path, err)
	}
	defer f.Close()

	out, err := template.New(p.file).Parse(p.templ)
	if err != nil {
		return err
	}

	w, err := p.writer(report)
	if err != nil {
		return err
	}

	err = out.Execute(f, &htmlTempl.ReportingInfo{
		Name:   report.Name,
		RunID:  report.RunID,
		Writer: template.HTML(w),
	})
	if err != nil {
		return util.NewIOError("write", path, err)
	}
	return nil
}

// executeRows renders one row template per item
func executeRows(name, tmpl string, items []interface{}) (string, error) {
	out, err := template.New(name).Parse(tmpl)
	if err != nil {
		return "", err
	}
	w := new(bytes.Buffer)
	for _, item := range items {
		err := out.Execute(w, item)
		if err != nil {
			return "", err
		}
	}
	return w.String(), nil
}
