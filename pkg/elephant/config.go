package elephant

import "strings"

// SortKey selects the ordering of classified flows
type SortKey string

const (
	//SortUptime orders by uptime, longest first
	SortUptime SortKey = "uptime"
	//SortBytes orders by byte count, largest first
	SortBytes SortKey = "bytes"
	//SortRate orders by throughput, fastest first
	SortRate SortKey = "rate"
	//SortBoth orders by combined score, highest first
	SortBoth SortKey = "both"
)

// SortKeys lists the recognized sort keys
var SortKeys = []SortKey{SortUptime, SortBytes, SortRate, SortBoth}

// ParseSortKey maps a user supplied name to a SortKey. Unrecognized names
// return SortBytes and false.
func ParseSortKey(name string) (SortKey, bool) {
	key := SortKey(strings.ToLower(strings.TrimSpace(name)))
	for _, k := range SortKeys {
		if k == key {
			return k, true
		}
	}
	return SortBytes, false
}

type (
	// Config holds the thresholds a connection is measured against.
	// A connection qualifies when it meets any one of them.
	Config struct {
		MinUptimeHours   float64 `json:"minUptimeHours"`
		MinBytes         int64   `json:"minBytes"`
		MinMbps          float64 `json:"minMbps"`
		SortBy           SortKey `json:"sortBy"`
		IncludeFlagged   bool    `json:"includeFlagged"`
		IncludeOffloaded bool    `json:"includeOffloaded"`
	}
)

// DefaultConfig returns one hour, one million bytes, any rate, sorted by
// bytes, with flagged and offloaded connections included
func DefaultConfig() Config {
	return Config{
		MinUptimeHours:   1,
		MinBytes:         1000000,
		MinMbps:          0,
		SortBy:           SortBytes,
		IncludeFlagged:   true,
		IncludeOffloaded: true,
	}
}
