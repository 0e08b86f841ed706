package elephant

import (
	"sort"
	"strconv"
	"strings"

	"github.com/activecm/asa-elephant/parser"
	"github.com/activecm/asa-elephant/pkg/duration"
	"github.com/activecm/asa-elephant/pkg/flags"
	"github.com/activecm/asa-elephant/pkg/rate"
	log "github.com/sirupsen/logrus"
)

// Classify measures every record against conf and returns the qualifying
// flows ordered by conf.SortBy. A nil logger logs through the logrus standard logger.
//
// A record qualifies when it is long lived, high volume or high rate, or when
// it carries an elephant flag or the offload flag and those are included.
// With every threshold at zero all records qualify.
func Classify(records []parser.ConnectionRecord, conf Config, logger *log.Entry) []Result {
	var results []Result
	for _, rec := range records {
		if res, ok := classifyRecord(rec, conf); ok {
			results = append(results, res)
		}
	}
	sortResults(results, conf.SortBy, logger)
	return results
}

// classifyRecord derives the flow measurements for a single record and
// reports whether it qualifies
func classifyRecord(rec parser.ConnectionRecord, conf Config) (Result, bool) {
	res := Result{ConnectionRecord: rec}

	res.UptimeSeconds = duration.ParseSeconds(rec.Uptime)
	res.UptimeHours = float64(res.UptimeSeconds) / 3600
	res.BytesInt = ParseBytes(rec.BytesStr)
	res.Classification = flags.Decode(rec.RawFlags)
	res.Info = rate.Calculate(res.BytesInt, res.UptimeSeconds)

	res.IsLongLived = float64(res.UptimeSeconds) >= conf.MinUptimeHours*3600
	res.IsHighVolume = res.BytesInt >= conf.MinBytes
	res.IsHighRate = res.Mbps >= conf.MinMbps
	res.IsFlaggedElephant = res.HasElephantFlag && conf.IncludeFlagged
	res.IsOffloadedElephant = res.IsOffloaded && conf.IncludeOffloaded

	if !(res.IsLongLived || res.IsHighVolume || res.IsHighRate ||
		res.IsFlaggedElephant || res.IsOffloadedElephant) {
		return res, false
	}

	// hours + megabytes + ten times the rate; a ranking aid with no unit
	res.CombinedScore = res.UptimeHours + float64(res.BytesInt)/1000000 + res.Mbps*10
	res.ElephantFlowType = flowType(res)

	return res, true
}

// flowType joins the names of the criteria a flow met
func flowType(res Result) string {
	var types []string
	if res.IsLongLived {
		types = append(types, "Long-lived")
	}
	if res.IsHighVolume {
		types = append(types, "High-volume")
	}
	if res.IsHighRate {
		types = append(types, "High-rate")
	}
	if res.IsFlaggedElephant {
		code := res.ElephantFlagType
		if code == "" {
			code = "N?"
		}
		types = append(types, "Flagged-"+code)
	}
	if res.IsOffloadedElephant {
		types = append(types, "Offloaded")
	}
	return strings.Join(types, " + ")
}

// ParseBytes converts a byte count field to an integer. Anything other than
// plain decimal digits that fit in an int64 counts as zero.
func ParseBytes(bytesStr string) int64 {
	n, _ := ByteCount(bytesStr)
	return n
}

// ByteCount is ParseBytes that also reports whether the field held a count
func ByteCount(bytesStr string) (int64, bool) {
	if bytesStr == "" {
		return 0, false
	}
	for _, c := range bytesStr {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(bytesStr, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// sortResults orders results in place, descending. Ties keep no particular order.
func sortResults(results []Result, key SortKey, logger *log.Entry) {
	var less func(i, j int) bool
	switch key {
	case SortUptime:
		less = func(i, j int) bool { return results[i].UptimeSeconds > results[j].UptimeSeconds }
	case SortBytes:
		less = func(i, j int) bool { return results[i].BytesInt > results[j].BytesInt }
	case SortRate:
		less = func(i, j int) bool { return results[i].Mbps > results[j].Mbps }
	case SortBoth:
		less = func(i, j int) bool { return results[i].CombinedScore > results[j].CombinedScore }
	default:
		if logger == nil {
			logger = log.NewEntry(log.StandardLogger())
		}
		logger.WithFields(log.Fields{
			"sort_by": string(key),
			"default": string(SortBytes),
		}).Warn("Invalid sort key, sorting by bytes")
		less = func(i, j int) bool { return results[i].BytesInt > results[j].BytesInt }
	}
	sort.Slice(results, less)
}

// FlagsOnly keeps the results that qualified through an elephant flag
func FlagsOnly(results []Result) []Result {
	var filtered []Result
	for _, res := range results {
		if res.IsFlaggedElephant {
			filtered = append(filtered, res)
		}
	}
	return filtered
}

// OffloadedOnly keeps the results that qualified through the offload flag
func OffloadedOnly(results []Result) []Result {
	var filtered []Result
	for _, res := range results {
		if res.IsOffloadedElephant {
			filtered = append(filtered, res)
		}
	}
	return filtered
}
