package flags

import "strings"

type (
	// Flag is a single connection flag code and its meaning
	Flag struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	}

	// Classification describes what a connection's flag string says about it.
	// It is always derived from a record's raw flags and never stored on its own.
	Classification struct {
		HasElephantFlag  bool   `json:"hasElephantFlag"`
		ElephantFlagType string `json:"elephantFlagType,omitempty"`
		IsOffloaded      bool   `json:"isOffloaded"`
		IsSnortInspected bool   `json:"isSnortInspected"`
		SnortFlags       []Flag `json:"snortFlags"`
		TCPStateFlags    []Flag `json:"tcpStateFlags"`
		ProtocolFlags    []Flag `json:"protocolFlags"`
		SpecialFlags     []Flag `json:"specialFlags"`
	}
)

// OffloadCode marks a connection whose forwarding bypasses inspection
const OffloadCode = "o"

// ZeroTrustCode marks a zero-trust flow
const ZeroTrustCode = "Z1"

// ElephantCodes are the snort codes which mark elephant flow decisions.
// When a flag string holds more than one, the last code in this order wins.
var ElephantCodes = []string{"N3", "N4", "N5", "N6"}

// SnortFlags are the inspection engine codes, N1 through N6
var SnortFlags = []Flag{
	{"N1", "preserve-connection enabled"},
	{"N2", "preserve-connection in effect"},
	{"N3", "elephant-flow"},
	{"N4", "elephant-flow bypassed"},
	{"N5", "elephant-flow throttled"},
	{"N6", "elephant-flow exempted"},
}

// TCPStateFlags are the single character TCP state codes
var TCPStateFlags = []Flag{
	{"U", "up"},
	{"F", "initiator FIN"},
	{"f", "responder FIN"},
	{"R", "initiator acknowledged FIN"},
	{"r", "responder acknowledged FIN"},
	{"A", "awaiting responder ACK to SYN"},
	{"a", "awaiting initiator ACK to SYN"},
	{"I", "initiator data"},
	{"O", "responder data"},
	{"i", "incomplete"},
}

// ProtocolFlags are the single character protocol, service and cluster codes
var ProtocolFlags = []Flag{
	{"T", "SIP"},
	{"t", "SIP transient"},
	{"H", "H.323"},
	{"h", "H.225.0"},
	{"M", "SMTP data"},
	{"m", "SIP media"},
	{"D", "DNS"},
	{"Q", "QUIC"},
	{"G", "group"},
	{"g", "MGCP"},
	{"J", "GTP"},
	{"j", "GTP data"},
	{"k", "Skinny media"},
	{"L", "decap tunnel"},
	{"q", "SQL*Net data"},
	{"B", "TCP probe for server certificate"},
	{"b", "TCP state-bypass or nailed"},
	{"C", "CTIQBE media"},
	{"c", "cluster centralized"},
	{"d", "dump"},
	{"E", "outside back connection"},
	{"e", "semi-distributed"},
	{"K", "GTP t3-response"},
	{"n", "GUP"},
	{"P", "inside back connection"},
	{"p", "passenger flow"},
	{"V", "VPN orphan"},
	{"v", "M3UA"},
	{"W", "WAAS"},
	{"w", "secondary domain backup"},
	{"X", "inspected by service module"},
	{"x", "per session"},
	{"Y", "director stub flow"},
	{"y", "backup stub flow"},
	{"Z", "Scansafe redirection"},
	{"z", "forwarding stub flow"},
}

// Clean removes the dash markers which separate a flag string from its keyword
func Clean(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, "-", ""))
}

// Decode classifies a raw flag string.
//
// Every code is found with a plain substring test rather than a tokenizer, so
// one string can match several codes even when their characters only line up
// across neighbouring codes: "UZ1" matches both Z and Z1, and "N1o" is both
// snort inspected and offloaded. Results depend on this, keep it.
func Decode(raw string) Classification {
	var c Classification
	codes := Clean(raw)
	if codes == "" {
		return c
	}

	for _, f := range SnortFlags {
		if !strings.Contains(codes, f.Code) {
			continue
		}
		c.SnortFlags = append(c.SnortFlags, f)
		c.IsSnortInspected = true
		if IsElephantCode(f.Code) {
			c.HasElephantFlag = true
			c.ElephantFlagType = f.Code
		}
	}

	if strings.Contains(codes, OffloadCode) {
		c.IsOffloaded = true
		c.SpecialFlags = append(c.SpecialFlags, Flag{OffloadCode, "offloaded"})
	}

	c.TCPStateFlags = matching(codes, TCPStateFlags)
	c.ProtocolFlags = matching(codes, ProtocolFlags)

	if strings.Contains(codes, ZeroTrustCode) {
		c.SpecialFlags = append(c.SpecialFlags, Flag{ZeroTrustCode, "zero-trust flow"})
	}

	return c
}

// IsElephantCode reports whether code is one of N3, N4, N5 or N6
func IsElephantCode(code string) bool {
	for _, e := range ElephantCodes {
		if e == code {
			return true
		}
	}
	return false
}

func matching(codes string, table []Flag) []Flag {
	var found []Flag
	for _, f := range table {
		if strings.Contains(codes, f.Code) {
			found = append(found, f)
		}
	}
	return found
}

// Codes returns just the codes of a flag list
func Codes(list []Flag) []string {
	codes := make([]string, 0, len(list))
	for _, f := range list {
		codes = append(codes, f.Code)
	}
	return codes
}

// Highlight marks the code which made a connection notable by wrapping it in
// asterisks: the elephant code when there is one, otherwise the offload code.
// An empty flag string renders as "N/A".
func Highlight(raw string, c Classification) string {
	switch {
	case raw == "":
		return "N/A"
	case c.HasElephantFlag:
		return strings.ReplaceAll(raw, c.ElephantFlagType, "*"+c.ElephantFlagType+"*")
	case c.IsOffloaded && strings.Contains(raw, OffloadCode):
		return strings.ReplaceAll(raw, OffloadCode, "*"+OffloadCode+"*")
	}
	return raw
}
