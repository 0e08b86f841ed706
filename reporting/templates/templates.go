package templates

import "html/template"

//ReportingInfo fills the templates listed in html/template
type ReportingInfo struct {
	Name   string
	RunID  string
	Writer template.HTML
}

var reportHeader = `
<head>
<meta content="text/html;charset=utf-8" http-equiv="Content-Type">
<meta content="utf-8" http-equiv="encoding">
<link rel="stylesheet" type="text/css" href="style.css">
<title>Elephant Flows: {{.Name}}</title>
</head>

<ul>
  <li><a href="index.html">Viewing: {{.Name}}</a></li>
  <li><a href="elephants.html">Elephant Flows</a></li>
  <li><a href="connections.html">Connections</a></li>
  <li><a href="flags.html">Flags</a></li>
  <li><a href="rates.html">Rates</a></li>
  <li style="float:right"><a>Run {{.RunID}}</a></li>
</ul>
`

// Hometempl is our report home page template
var Hometempl = reportHeader + `
<p>
  <div class="info">Elephant flow summary. Click on any of the links above for details.</div>
</p>
<div class="container">
  <table>
    <tr><th>Measure</th><th>Value</th></tr>
    {{.Writer}}
  </table>
</div>
`

// ElephantsTempl is our elephant flows html template
var ElephantsTempl = reportHeader + `
<div class="container">
  <table>
    <tr><th>#</th><th>Protocol</th><th>Source</th><th>Destination</th><th>Uptime</th><th>Bytes</th>
    <th>Rate</th><th>Category</th><th>Flags</th><th>Type</th><th>Score</th></tr>
    {{.Writer}}
  </table>
</div>
`

// ConnectionsTempl is our connection statistics html template
var ConnectionsTempl = reportHeader + `
<div class="container">
  <table>
    <tr><th>Statistic</th><th>Value</th><th>Count</th></tr>
    {{.Writer}}
  </table>
</div>
`

// FlagsTempl is our flag analysis html template
var FlagsTempl = reportHeader + `
<div class="container">
  <table>
    <tr><th>Flags</th><th>Connections</th><th>Percent</th></tr>
    {{.Writer}}
  </table>
</div>
`

// RatesTempl is our rate analysis html template
var RatesTempl = reportHeader + `
<div class="container">
  <table>
    <tr><th>Rate</th><th>Connections</th><th>Percent</th></tr>
    {{.Writer}}
  </table>
</div>
`
