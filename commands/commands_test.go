package commands

import (
	"bytes"
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/activecm/asa-elephant/parser"
	"github.com/activecm/asa-elephant/pkg/elephant"
	"github.com/activecm/asa-elephant/pkg/stats"
	"github.com/activecm/asa-elephant/resources"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

// criteriaContext builds a cli context holding the criteria flags parsed from args
func criteriaContext(t *testing.T, args ...string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range criteriaFlags {
		f.Apply(set)
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(nil, set, nil)
}

func writeSample(t *testing.T) string {
	dir, err := ioutil.TempDir("", "elephant-commands")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "sh_conn_detail.txt")
	require.NoError(t, ioutil.WriteFile(path, []byte(sampleDump), 0644))
	return path
}

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, command := range Commands() {
		names[command.Name] = true
	}

	for _, name := range []string{
		"show-connections", "show-elephants", "show-summary", "summarize",
		"analyze", "show-flags", "show-rates", "export", "html-report",
		"test-parser", "test-config", "version",
	} {
		assert.True(t, names[name], name)
	}
}

func TestNewCriteriaDefaults(t *testing.T) {
	res, _ := resources.InitTestResources(t)

	crit, err := newCriteria(criteriaContext(t), res)
	require.NoError(t, err)
	assert.Equal(t, res.Config.R.Elephant, crit.conf)
	assert.Equal(t, res.Config.R.Threads, crit.threads)
	assert.Equal(t, filterNone, crit.mode)
}

func TestNewCriteriaOverrides(t *testing.T) {
	res, _ := resources.InitTestResources(t)

	ctx := criteriaContext(t,
		"--min-hours", "2",
		"--min-mb", "100",
		"--min-rate", "5",
		"--sort", "RATE",
		"--include-offloaded=false",
		"--threads", "3",
	)
	crit, err := newCriteria(ctx, res)
	require.NoError(t, err)

	assert.Equal(t, 2.0, crit.conf.MinUptimeHours)
	assert.Equal(t, int64(104857600), crit.conf.MinBytes)
	assert.Equal(t, 5.0, crit.conf.MinMbps)
	assert.Equal(t, elephant.SortRate, crit.conf.SortBy)
	assert.False(t, crit.conf.IncludeOffloaded)
	assert.Equal(t, res.Config.R.Elephant.IncludeFlagged, crit.conf.IncludeFlagged)
	assert.Equal(t, 3, crit.threads)
}

func TestNewCriteriaOnlyModes(t *testing.T) {
	res, _ := resources.InitTestResources(t)

	crit, err := newCriteria(criteriaContext(t, "--flags-only"), res)
	require.NoError(t, err)
	assert.Equal(t, filterFlagged, crit.mode)
	assert.True(t, crit.conf.IncludeFlagged)
	assert.False(t, crit.conf.IncludeOffloaded)

	crit, err = newCriteria(criteriaContext(t, "--offloaded-only"), res)
	require.NoError(t, err)
	assert.Equal(t, filterOffloaded, crit.mode)
	assert.False(t, crit.conf.IncludeFlagged)
	assert.True(t, crit.conf.IncludeOffloaded)

	_, err = newCriteria(criteriaContext(t, "--flags-only", "--offloaded-only"), res)
	assert.Error(t, err)
}

func TestCriteriaClassifyPostFilters(t *testing.T) {
	res, _ := resources.InitTestResources(t)
	records := parser.Parse(sampleDump)

	flagged := criteria{conf: elephant.Config{SortBy: elephant.SortBytes, IncludeFlagged: true}, mode: filterFlagged}
	flows := flagged.classify(records, res.Logger(), nil)
	require.Len(t, flows, 1)
	assert.Equal(t, "8000", flows[0].DstPort)

	offloaded := criteria{conf: elephant.Config{SortBy: elephant.SortBytes, IncludeOffloaded: true}, mode: filterOffloaded}
	flows = offloaded.classify(records, res.Logger(), nil)
	require.Len(t, flows, 1)
	assert.Equal(t, "4789", flows[0].SrcPort)
}

func TestCriteriaClassifyWarningCarriesRunID(t *testing.T) {
	res, hook := resources.InitTestResources(t)
	crit := criteria{conf: elephant.Config{SortBy: elephant.SortKey("duration")}, threads: 2}

	flows := crit.classify(parser.Parse(sampleDump), res.Logger(), nil)
	require.Len(t, flows, 3)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "duration", entry.Data["sort_by"])
	assert.Equal(t, res.RunID.String(), entry.Data["run_id"])
}

func TestShowElephants(t *testing.T) {
	res, _ := resources.InitTestResources(t)
	records := parser.Parse(sampleDump)
	flows := elephant.Classify(records, elephant.DefaultConfig(), res.Logger())
	require.Len(t, flows, 3)

	view := elephantView{criteria: elephant.DefaultConfig(), total: len(records), limit: 20, detailLimit: 5, detailed: true}
	var buf bytes.Buffer
	showElephants(&buf, flows, view)
	out := buf.String()

	assert.Contains(t, out, "CRITERIA:")
	assert.Contains(t, out, "Min bytes: 0.953674 MB (1,000,000 bytes)")
	assert.Contains(t, out, "Found 3 elephant flows (100.00% of total)")
	assert.Contains(t, out, "Flag-based (N3/N4/N5/N6): 1")
	assert.Contains(t, out, "UIO N1*N3*")
	assert.Contains(t, out, "*o*")
	assert.Contains(t, out, "--- Flow #1 ---")
	assert.Contains(t, out, "Destination: FORTISIEM - 10.1.76.3:4816 (private)")
	assert.Contains(t, out, "ELEPHANT FLAG DETECTED: N3")
	assert.Contains(t, out, "OFFLOADED CONNECTION")
}

func TestShowElephantsQuiet(t *testing.T) {
	res, _ := resources.InitTestResources(t)
	records := parser.Parse(sampleDump)
	flows := elephant.Classify(records, elephant.DefaultConfig(), res.Logger())

	view := elephantView{criteria: elephant.DefaultConfig(), total: len(records), limit: 1, detailed: true, quiet: true}
	var buf bytes.Buffer
	showElephants(&buf, flows, view)
	out := buf.String()

	assert.NotContains(t, out, "CRITERIA:")
	assert.NotContains(t, out, "--- Flow #1 ---")
	assert.Contains(t, out, "Top 1 of 3 flows")
	assert.Contains(t, out, "Found 3 elephant flows (100.00%)")
	assert.Contains(t, out, "Flag-based: 1")
	assert.Contains(t, out, "Offloaded: 1")
}

func TestShowConnections(t *testing.T) {
	records := parser.Parse(sampleDump)

	var buf bytes.Buffer
	require.NoError(t, showConnections(&buf, records, '|'))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "bytesStr|dstInterface|dstIp|dstPort|"))
	assert.Contains(t, lines[0], "|keyid|")
	assert.Contains(t, lines[3], "7688943400093")

	buf.Reset()
	showConnectionsHuman(&buf, limitRecords(records, 1))
	assert.Contains(t, buf.String(), "100587686")
	assert.NotContains(t, buf.String(), "126607738")
}

func TestShowSummary(t *testing.T) {
	summary := stats.SummarizeConnections(parser.Parse(sampleDump))

	var buf bytes.Buffer
	showSummary(&buf, summary)
	out := buf.String()
	assert.Contains(t, out, "Total Connections: 3")
	assert.Contains(t, out, "UDP: 2 (66.7%)")
	assert.Contains(t, out, "FORTISIEM: 2")
	assert.Contains(t, out, "Total Bytes: 7,688,943,414,516")
	assert.Contains(t, out, "Min Bytes: 28")
	assert.Contains(t, out, "Max Uptime: 9360.0 hours")

	buf.Reset()
	showSummaryHuman(&buf, summary)
	assert.Contains(t, buf.String(), "7.7TB")
}

func TestShowFlags(t *testing.T) {
	analysis := stats.AnalyzeFlags(parser.Parse(sampleDump))

	var buf bytes.Buffer
	showFlags(&buf, analysis)
	out := buf.String()
	assert.Contains(t, out, "Connections with Flags: 3 (100.0%)")
	assert.Contains(t, out, "N3: 1 (33.333%)")
	assert.Contains(t, out, "Offloaded (o): 1 (33.333%)")
	assert.Contains(t, out, "Snort Inspected (N*): 2 (66.667%)")
}

func TestShowRates(t *testing.T) {
	analysis := stats.AnalyzeRates(parser.Parse(sampleDump))

	var buf bytes.Buffer
	showRates(&buf, analysis, 5)
	out := buf.String()
	assert.Contains(t, out, "Connections with Calculable Rates: 3 (100.0%)")
	assert.Contains(t, out, "Rate Ranges:")
	assert.NotContains(t, out, "Highest Rate Flows")
}

func TestSummarize(t *testing.T) {
	res, _ := resources.InitTestResources(t)

	var buf bytes.Buffer
	summarize(&buf, parser.Parse(sampleDump), 2, res.Logger())
	out := buf.String()
	assert.Contains(t, out, "Total connections analyzed: 3")
	assert.Contains(t, out, "ASA N3 Flagged Flows: 1 (33.333%)")
	assert.Contains(t, out, "Offloaded Flows: 1 (33.333%)")
	assert.Contains(t, out, "Largest N3 Flagged Flow:")
	assert.Contains(t, out, "Largest Offloaded Flow:")
	assert.Contains(t, out, "UDP 10.2.76.3:4789 -> 10.1.76.3:4816")
	assert.Contains(t, out, "Highest Rate Flow:")
}

func TestAnalyze(t *testing.T) {
	res, _ := resources.InitTestResources(t)

	var buf bytes.Buffer
	analyze(&buf, parser.Parse(sampleDump), 2, res.Logger())
	out := buf.String()
	assert.Contains(t, out, "SCENARIO 1: ASA N3 Flagged Flows")
	assert.Contains(t, out, "SCENARIO 3: High-Rate Flows (>100 Mbps)")
	assert.NotContains(t, out, "No flows found with these criteria")
	assert.Contains(t, out, "Found: 1 flows (33.33% of total)")
	assert.Contains(t, out, "TCP 10.1.76.3:57798 -> 10.1.19.90:8000")
}

func TestRunScenariosWithoutRecords(t *testing.T) {
	res, _ := resources.InitTestResources(t)

	results := runScenarios(ioutil.Discard, nil, 1, res.Logger())
	require.Len(t, results, len(scenarios))
	for _, result := range results {
		assert.Empty(t, result.flows)
	}
}

func TestValidateSample(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, validateSample(&buf))
	out := buf.String()
	assert.Contains(t, out, "Parsed 3 sample connections")
	assert.Contains(t, out, "Flags 'UIO N1N3' parsed as:")
	assert.Contains(t, out, "= 1.74 Mbps")
}

func TestPrintCoverage(t *testing.T) {
	records := append(parser.Parse(sampleDump), parser.ConnectionRecord{Protocol: parser.TCP, BytesStr: "n/a"})

	var buf bytes.Buffer
	printCoverage(&buf, records)
	out := buf.String()
	assert.Contains(t, out, "Connections with flags: 3 (75.0%)")
	assert.Contains(t, out, "Connections with bytes: 3 (75.0%)")
	assert.Contains(t, out, "Connections with uptime: 3 (75.0%)")
}

func TestExportAll(t *testing.T) {
	res, _ := resources.InitTestResources(t)
	records := parser.Parse(sampleDump)
	flows := elephant.Classify(records, elephant.DefaultConfig(), res.Logger())

	dir, err := ioutil.TempDir("", "elephant-export")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	targets := exportTargets{
		connectionsCSV: filepath.Join(dir, "connections.csv"),
		flowsCSV:       filepath.Join(dir, "flows.csv"),
		statsJSON:      filepath.Join(dir, "stats", "connection_stats.json"),
		metrics:        filepath.Join(dir, "elephant.prom"),
	}
	var buf bytes.Buffer
	require.NoError(t, exportAll(&buf, targets, "sample", records, flows, elephant.DefaultConfig(), res))

	assert.Contains(t, buf.String(), "Exported 3 connections to: "+targets.connectionsCSV)
	for _, path := range []string{targets.connectionsCSV, targets.flowsCSV, targets.statsJSON, targets.metrics} {
		assert.FileExists(t, path)
	}

	doc, err := ioutil.ReadFile(targets.statsJSON)
	require.NoError(t, err)
	assert.Contains(t, string(doc), res.RunID.String())
	assert.Contains(t, string(doc), `"elephantFlows"`)
}

func TestExportAllFailure(t *testing.T) {
	res, _ := resources.InitTestResources(t)
	records := parser.Parse(sampleDump)

	// a regular file cannot hold the export directory
	blocker := writeSample(t)
	targets := exportTargets{
		connectionsCSV: filepath.Join(blocker, "connections.csv"),
		metrics:        filepath.Join(filepath.Dir(blocker), "elephant.prom"),
	}

	var buf bytes.Buffer
	err := exportAll(&buf, targets, "sample", records, nil, elephant.DefaultConfig(), res)
	assert.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestExportTargetsEmpty(t *testing.T) {
	assert.True(t, exportTargets{}.empty())
	assert.False(t, exportTargets{metrics: "m.prom"}.empty())
}

func TestReportName(t *testing.T) {
	assert.Equal(t, "sh_conn_detail", reportName("/tmp/dumps/sh_conn_detail.txt"))
	assert.Equal(t, "sh_conn_detail", reportName("sh_conn_detail.txt.gz"))
	assert.Equal(t, "dump", reportName("dump"))
}

func TestLoadRecords(t *testing.T) {
	res, _ := resources.InitTestResources(t)

	records, err := loadRecords(writeSample(t), res)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	_, err = loadRecords(filepath.Join(os.TempDir(), "elephant-does-not-exist.txt"), res)
	assert.Error(t, err)
}

func TestAppRun(t *testing.T) {
	path := writeSample(t)

	var buf bytes.Buffer
	app := cli.NewApp()
	app.Writer = &buf
	app.Commands = Commands()

	require.NoError(t, app.Run([]string{"elephant", "test-parser", path}))
	assert.Contains(t, buf.String(), "Successfully parsed 3 real connections")
	assert.Contains(t, buf.String(), "Validation completed successfully!")

	buf.Reset()
	require.NoError(t, app.Run([]string{"elephant", "show-elephants", "--quiet", "--flags-only", path}))
	assert.Contains(t, buf.String(), "Found 1 elephant flows (33.33%)")
}
