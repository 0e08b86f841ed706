package elephant

import (
	"strconv"
	"strings"

	"github.com/activecm/asa-elephant/parser"
	"github.com/activecm/asa-elephant/pkg/flags"
	"github.com/activecm/asa-elephant/pkg/rate"
)

type (
	// Result is a connection that qualified as an elephant flow, along with
	// everything derived while classifying it. Results are snapshots and are
	// never written back to the source records.
	Result struct {
		parser.ConnectionRecord
		flags.Classification
		rate.Info

		UptimeSeconds int64   `json:"uptimeSeconds"`
		UptimeHours   float64 `json:"uptimeHours"`
		BytesInt      int64   `json:"bytesInt"`

		IsLongLived         bool `json:"isLongLived"`
		IsHighVolume        bool `json:"isHighVolume"`
		IsHighRate          bool `json:"isHighRate"`
		IsFlaggedElephant   bool `json:"isFlaggedElephant"`
		IsOffloadedElephant bool `json:"isOffloadedElephant"`

		CombinedScore    float64 `json:"combinedScore"`
		ElephantFlowType string  `json:"elephantFlowType"`
	}
)

// Fields flattens the result into string values keyed by field name,
// including the populated fields of the source record
func (r Result) Fields() map[string]string {
	fields := r.ConnectionRecord.Fields()

	fields["uptimeSeconds"] = strconv.FormatInt(r.UptimeSeconds, 10)
	fields["uptimeHours"] = formatFloat(r.UptimeHours)
	fields["bytesInt"] = strconv.FormatInt(r.BytesInt, 10)

	fields["hasElephantFlag"] = strconv.FormatBool(r.HasElephantFlag)
	fields["elephantFlagType"] = r.ElephantFlagType
	fields["isOffloaded"] = strconv.FormatBool(r.IsOffloaded)
	fields["isSnortInspected"] = strconv.FormatBool(r.IsSnortInspected)
	fields["snortFlags"] = joinFlags(r.SnortFlags)
	fields["tcpStateFlags"] = joinFlags(r.TCPStateFlags)
	fields["protocolFlags"] = joinFlags(r.ProtocolFlags)
	fields["specialFlags"] = joinFlags(r.SpecialFlags)

	fields["bytesPerSecond"] = formatFloat(r.BytesPerSecond)
	fields["bytesPerMinute"] = formatFloat(r.BytesPerMinute)
	fields["bytesPerHour"] = formatFloat(r.BytesPerHour)
	fields["mbps"] = formatFloat(r.Mbps)
	fields["rateCategory"] = string(r.RateCategory)

	fields["isLongLived"] = strconv.FormatBool(r.IsLongLived)
	fields["isHighVolume"] = strconv.FormatBool(r.IsHighVolume)
	fields["isHighRate"] = strconv.FormatBool(r.IsHighRate)
	fields["isFlaggedElephant"] = strconv.FormatBool(r.IsFlaggedElephant)
	fields["isOffloadedElephant"] = strconv.FormatBool(r.IsOffloadedElephant)
	fields["combinedScore"] = formatFloat(r.CombinedScore)
	fields["elephantFlowType"] = r.ElephantFlowType

	return fields
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// joinFlags renders "N1:preserve-connection enabled;N3:elephant-flow"
func joinFlags(list []flags.Flag) string {
	parts := make([]string, 0, len(list))
	for _, f := range list {
		parts = append(parts, f.Code+":"+f.Description)
	}
	return strings.Join(parts, ";")
}
