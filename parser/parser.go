package parser

import (
	"regexp"
	"strings"
)

var (
	mainLinePattern  = regexp.MustCompile(`^(TCP|UDP|ICMP)`)
	initiatorPattern = regexp.MustCompile(`Initiator:\s+(\d+\.\d+\.\d+\.\d+)`)
	responderPattern = regexp.MustCompile(`Responder:\s+(\d+\.\d+\.\d+\.\d+)`)

	// flagsLineFields are pulled out of a flags line independently of each other
	flagsLineFields = []struct {
		pattern *regexp.Regexp
		set     func(*ConnectionRecord, string)
	}{
		{regexp.MustCompile(`idle\s+(\S+)`), func(r *ConnectionRecord, v string) { r.Idle = v }},
		{regexp.MustCompile(`uptime\s+(\S+)`), func(r *ConnectionRecord, v string) { r.Uptime = v }},
		{regexp.MustCompile(`timeout\s+(\S+)`), func(r *ConnectionRecord, v string) { r.Timeout = v }},
		{regexp.MustCompile(`bytes\s+(\d+)`), func(r *ConnectionRecord, v string) { r.BytesStr = v }},
		{regexp.MustCompile(`Rx-RingNum\s+(\d+)`), func(r *ConnectionRecord, v string) { r.RxRingNum = v }},
		{regexp.MustCompile(`(Internal-Data\S+)`), func(r *ConnectionRecord, v string) { r.InternalData = v }},
	}
)

const (
	flagsKeyword = "flags"
	keyIDMarker  = "Connection lookup keyid:"
)

// assembler groups the lines of a connection table dump into records.
// A record stays open until the next main line or the end of input.
type assembler struct {
	records []ConnectionRecord
	current ConnectionRecord
}

// Parse splits a "show conn detail" dump into connection records, in input order.
// Parsing is best effort: lines which match no known pattern are skipped and
// partial main lines give partial records.
func Parse(text string) []ConnectionRecord {
	a := &assembler{}
	for _, line := range strings.Split(text, "\n") {
		a.feed(line)
	}
	a.flush()
	return a.records
}

// feed applies a single raw line to the open record
func (a *assembler) feed(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	switch {
	case mainLinePattern.MatchString(line):
		a.flush()
		a.current = parseMainLine(line)
	case strings.HasPrefix(line, flagsKeyword):
		parseFlagsLine(line, &a.current)
	case strings.Contains(line, "Initiator:") && strings.Contains(line, "Responder:"):
		parseInitiatorResponder(line, &a.current)
	case strings.Contains(line, keyIDMarker):
		a.current.KeyID = strings.TrimSpace(line[strings.LastIndex(line, ":")+1:])
	}
}

// flush emits the open record unless nothing has been set on it
func (a *assembler) flush() {
	if a.current.IsEmpty() {
		return
	}
	a.records = append(a.records, a.current)
	a.current = ConnectionRecord{}
}

// parseMainLine handles lines like
//   UDP FORTISIEM: 10.1.76.4/45879 dc2: 10.1.5.101/53,
// The endpoints are found by the first interface token (one holding a colon)
// that is directly followed by an ip/port token.
func parseMainLine(line string) ConnectionRecord {
	parts := strings.Fields(line)
	rec := ConnectionRecord{Protocol: parts[0]}

	for i := 0; i+1 < len(parts); i++ {
		if !strings.Contains(parts[i], ":") || !strings.Contains(parts[i+1], "/") {
			continue
		}

		rec.SrcInterface = strings.TrimRight(parts[i], ":")
		rec.SrcIP, rec.SrcPort = splitEndpoint(parts[i+1])

		if i+2 < len(parts) {
			rec.DstInterface = strings.TrimRight(parts[i+2], ":")
		}
		if i+3 < len(parts) {
			rec.DstIP, rec.DstPort = splitEndpoint(parts[i+3])
		}
		break
	}

	return rec
}

// splitEndpoint splits "10.1.5.101/53," into its address and port
func splitEndpoint(token string) (ip string, port string) {
	token = strings.TrimRight(token, ",")
	idx := strings.Index(token, "/")
	if idx < 0 {
		return "", ""
	}
	return token[:idx], token[idx+1:]
}

// parseFlagsLine handles lines like
//   flags - N1, idle 21s, uptime 21s, timeout 2m0s, bytes 28, Rx-RingNum 45, Internal-Data0/1
// Fields found on the line overwrite the ones already on the record.
func parseFlagsLine(line string, rec *ConnectionRecord) {
	flagsPart := line[len(flagsKeyword):]
	if idx := strings.Index(flagsPart, flagsKeyword); idx >= 0 {
		flagsPart = flagsPart[:idx]
	}
	if idx := strings.Index(flagsPart, ","); idx >= 0 {
		flagsPart = flagsPart[:idx]
	}
	flagsPart = strings.TrimSpace(flagsPart)
	flagsPart = strings.ReplaceAll(flagsPart, "- ", "")
	rec.RawFlags = strings.ReplaceAll(flagsPart, "-", "")

	for _, field := range flagsLineFields {
		if match := field.pattern.FindStringSubmatch(line); match != nil {
			field.set(rec, match[1])
		}
	}
}

// parseInitiatorResponder handles lines like
//   Initiator: 10.1.76.3, Responder: 10.1.19.90
func parseInitiatorResponder(line string, rec *ConnectionRecord) {
	if match := initiatorPattern.FindStringSubmatch(line); match != nil {
		rec.InitiatorIP = match[1]
	}
	if match := responderPattern.FindStringSubmatch(line); match != nil {
		rec.ResponderIP = match[1]
	}
}
