package stats

import (
	"sort"

	"github.com/activecm/asa-elephant/parser"
	"github.com/activecm/asa-elephant/pkg/duration"
	"github.com/activecm/asa-elephant/pkg/elephant"
	"github.com/activecm/asa-elephant/pkg/flags"
	"github.com/activecm/asa-elephant/pkg/ports"
	"github.com/activecm/asa-elephant/pkg/rate"
)

type (
	// ByteStats summarizes the byte counts of a set of connections.
	// Min is zero when no connection carried a byte count.
	ByteStats struct {
		Total   int64   `json:"totalBytes"`
		Max     int64   `json:"maxBytes"`
		Min     int64   `json:"minBytes"`
		Average float64 `json:"avgBytes"`
	}

	// ConnectionSummary describes a whole connection table
	ConnectionSummary struct {
		TotalConnections      int           `json:"totalConnections"`
		Protocols             *Distribution `json:"protocols"`
		SourceInterfaces      *Distribution `json:"sourceInterfaces"`
		DestinationInterfaces *Distribution `json:"destinationInterfaces"`
		TopSourceIPs          *Distribution `json:"topSourceIps"`
		TopDestinationIPs     *Distribution `json:"topDestinationIps"`
		TopPorts              *Distribution `json:"topPorts"`
		FlagsSummary          *Distribution `json:"flagsSummary"`
		ByteStatistics        ByteStats     `json:"byteStatistics"`
		TotalUptimeHours      float64       `json:"totalUptimeHours"`
		AvgUptimeHours        float64       `json:"avgUptimeHours"`
		MaxUptimeHours        float64       `json:"maxUptimeHours"`
	}

	// FlowSummary describes a set of classified elephant flows
	FlowSummary struct {
		TotalElephantFlows  int           `json:"totalElephantFlows"`
		PercentageOfTotal   float64       `json:"percentageOfTotal"`
		LongLivedOnly       int           `json:"longLivedOnly"`
		HighVolumeOnly      int           `json:"highVolumeOnly"`
		BothCriteria        int           `json:"bothCriteria"`
		HighRate            int           `json:"highRate"`
		Flagged             int           `json:"flagged"`
		Offloaded           int           `json:"offloaded"`
		TotalBytes          int64         `json:"totalBytesElephant"`
		AvgBytes            float64       `json:"avgBytes"`
		MaxBytes            int64         `json:"maxBytes"`
		TotalUptimeHours    float64       `json:"totalUptimeHours"`
		AvgUptimeHours      float64       `json:"avgUptimeHours"`
		MaxUptimeHours      float64       `json:"maxUptimeHours"`
		AvgMbps             float64       `json:"avgMbps"`
		MaxMbps             float64       `json:"maxMbps"`
		Protocols           *Distribution `json:"protocols"`
		TopSourceIPs        *Distribution `json:"topSourceIps"`
		TopDestinationIPs   *Distribution `json:"topDestIps"`
		TopDestinationPorts *Distribution `json:"topDestPorts"`
		DestinationServices *Distribution `json:"destinationServices"`
		FlagStrings         *Distribution `json:"flagStrings"`
		RateCategories      *Distribution `json:"rateCategories"`
		ElephantFlagTypes   *Distribution `json:"elephantFlagTypes"`
	}

	// FlagAnalysis describes the flag strings seen across a connection table
	FlagAnalysis struct {
		TotalConnections     int           `json:"totalConnections"`
		ConnectionsWithFlags int           `json:"connectionsWithFlags"`
		ElephantFlagged      *Distribution `json:"elephantFlagged"`
		Offloaded            int           `json:"offloaded"`
		SnortInspected       int           `json:"snortInspected"`
		AllFlags             *Distribution `json:"allFlags"`
		FlagCombinations     *Distribution `json:"flagCombinations"`
	}

	// RateRange counts the connections whose rate falls in a named band
	RateRange struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	// RateFlow is a connection together with its computed rate
	RateFlow struct {
		parser.ConnectionRecord
		rate.Info
	}

	// RateAnalysis describes the throughput of a connection table
	RateAnalysis struct {
		TotalConnections     int           `json:"totalConnections"`
		ConnectionsWithRates int           `json:"connectionsWithRates"`
		RateCategories       *Distribution `json:"rateCategories"`
		RateRanges           []RateRange   `json:"rateDistribution"`
		HighRateFlows        []RateFlow    `json:"highRateFlows"`
	}
)

// HighRateMbps is the rate above which RateAnalysis keeps a flow
const HighRateMbps = 100

// Percent returns part as a percentage of whole, or zero when whole is zero
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// SummarizeConnections computes protocol, interface, address, port, flag,
// byte and uptime statistics for records. Records without an uptime count as
// zero hours.
func SummarizeConnections(records []parser.ConnectionRecord) ConnectionSummary {
	summary := ConnectionSummary{
		TotalConnections:      len(records),
		Protocols:             NewDistribution(),
		SourceInterfaces:      NewDistribution(),
		DestinationInterfaces: NewDistribution(),
		TopSourceIPs:          NewDistribution(),
		TopDestinationIPs:     NewDistribution(),
		TopPorts:              NewDistribution(),
		FlagsSummary:          NewDistribution(),
	}

	counted := 0
	for _, rec := range records {
		summary.Protocols.Add(rec.Protocol)
		summary.SourceInterfaces.Add(rec.SrcInterface)
		summary.DestinationInterfaces.Add(rec.DstInterface)
		summary.TopSourceIPs.Add(rec.SrcIP)
		summary.TopDestinationIPs.Add(rec.DstIP)
		summary.TopPorts.Add(rec.DstPort)
		summary.FlagsSummary.Add(rec.RawFlags)

		hours := float64(duration.ParseSeconds(rec.Uptime)) / 3600
		summary.TotalUptimeHours += hours
		if hours > summary.MaxUptimeHours {
			summary.MaxUptimeHours = hours
		}

		n, ok := elephant.ByteCount(rec.BytesStr)
		if !ok {
			continue
		}
		byteStats := &summary.ByteStatistics
		if counted == 0 || n < byteStats.Min {
			byteStats.Min = n
		}
		if n > byteStats.Max {
			byteStats.Max = n
		}
		byteStats.Total += n
		counted++
	}

	if counted > 0 {
		summary.ByteStatistics.Average = float64(summary.ByteStatistics.Total) / float64(counted)
	}
	if len(records) > 0 {
		summary.AvgUptimeHours = summary.TotalUptimeHours / float64(len(records))
	}
	return summary
}

// SummarizeFlows computes statistics for classified flows. totalConnections
// is the size of the table the flows were taken from.
func SummarizeFlows(flows []elephant.Result, totalConnections int) FlowSummary {
	summary := FlowSummary{
		TotalElephantFlows:  len(flows),
		PercentageOfTotal:   Percent(len(flows), totalConnections),
		Protocols:           NewDistribution(),
		TopSourceIPs:        NewDistribution(),
		TopDestinationIPs:   NewDistribution(),
		TopDestinationPorts: NewDistribution(),
		DestinationServices: NewDistribution(),
		FlagStrings:         NewDistribution(),
		RateCategories:      NewDistribution(),
		ElephantFlagTypes:   NewDistribution(),
	}

	var totalMbps float64
	for _, flow := range flows {
		switch {
		case flow.IsLongLived && flow.IsHighVolume:
			summary.BothCriteria++
		case flow.IsLongLived:
			summary.LongLivedOnly++
		case flow.IsHighVolume:
			summary.HighVolumeOnly++
		}
		if flow.IsHighRate {
			summary.HighRate++
		}
		if flow.IsFlaggedElephant {
			summary.Flagged++
		}
		if flow.IsOffloadedElephant {
			summary.Offloaded++
		}

		summary.TotalBytes += flow.BytesInt
		summary.TotalUptimeHours += flow.UptimeHours
		totalMbps += flow.Mbps
		if flow.BytesInt > summary.MaxBytes {
			summary.MaxBytes = flow.BytesInt
		}
		if flow.UptimeHours > summary.MaxUptimeHours {
			summary.MaxUptimeHours = flow.UptimeHours
		}
		if flow.Mbps > summary.MaxMbps {
			summary.MaxMbps = flow.Mbps
		}

		summary.Protocols.Add(flow.Protocol)
		summary.TopSourceIPs.Add(flow.SrcIP)
		summary.TopDestinationIPs.Add(flow.DstIP)
		summary.TopDestinationPorts.Add(flow.DstPort)
		summary.DestinationServices.Add(ports.Service(flow.DstPort))
		summary.FlagStrings.Add(flow.RawFlags)
		summary.RateCategories.Add(string(flow.RateCategory))
		summary.ElephantFlagTypes.Add(flow.ElephantFlagType)
	}

	if len(flows) > 0 {
		count := float64(len(flows))
		summary.AvgBytes = float64(summary.TotalBytes) / count
		summary.AvgUptimeHours = summary.TotalUptimeHours / count
		summary.AvgMbps = totalMbps / count
	}
	return summary
}

// AnalyzeFlags decodes the flag string of every record and counts elephant
// codes, offloaded and inspected connections and flag combinations
func AnalyzeFlags(records []parser.ConnectionRecord) FlagAnalysis {
	analysis := FlagAnalysis{
		TotalConnections: len(records),
		ElephantFlagged:  NewDistribution(),
		AllFlags:         NewDistribution(),
		FlagCombinations: NewDistribution(),
	}

	for _, rec := range records {
		if rec.RawFlags == "" {
			continue
		}
		analysis.ConnectionsWithFlags++

		cleaned := flags.Clean(rec.RawFlags)
		analysis.AllFlags.Add(cleaned)
		if len(cleaned) > 1 {
			analysis.FlagCombinations.Add(cleaned)
		}

		decoded := flags.Decode(rec.RawFlags)
		if decoded.HasElephantFlag {
			analysis.ElephantFlagged.Add(decoded.ElephantFlagType)
		}
		if decoded.IsOffloaded {
			analysis.Offloaded++
		}
		if decoded.IsSnortInspected {
			analysis.SnortInspected++
		}
	}
	return analysis
}

// AnalyzeRates computes the rate of every record with a usable uptime and
// byte count, bucketing them by category and by range. Flows at or above
// HighRateMbps are kept, fastest first.
func AnalyzeRates(records []parser.ConnectionRecord) RateAnalysis {
	analysis := RateAnalysis{
		TotalConnections: len(records),
		RateCategories:   NewDistribution(),
		RateRanges: []RateRange{
			{Name: "gbps"},
			{Name: "hundreds_mbps"},
			{Name: "tens_mbps"},
			{Name: "mbps"},
			{Name: "kbps"},
		},
		HighRateFlows: []RateFlow{},
	}

	for _, rec := range records {
		if rec.Uptime == "" {
			continue
		}
		bytesCount, ok := elephant.ByteCount(rec.BytesStr)
		if !ok {
			continue
		}
		seconds := duration.ParseSeconds(rec.Uptime)
		if seconds <= 0 {
			continue
		}

		info := rate.Calculate(bytesCount, seconds)
		analysis.ConnectionsWithRates++
		analysis.RateCategories.Add(string(info.RateCategory))

		switch {
		case info.Mbps >= 1000:
			analysis.RateRanges[0].Count++
		case info.Mbps >= 100:
			analysis.RateRanges[1].Count++
		case info.Mbps >= 10:
			analysis.RateRanges[2].Count++
		case info.Mbps >= 1:
			analysis.RateRanges[3].Count++
		default:
			analysis.RateRanges[4].Count++
		}

		if info.Mbps >= HighRateMbps {
			analysis.HighRateFlows = append(analysis.HighRateFlows, RateFlow{rec, info})
		}
	}

	sort.SliceStable(analysis.HighRateFlows, func(i, j int) bool {
		return analysis.HighRateFlows[i].Mbps > analysis.HighRateFlows[j].Mbps
	})
	return analysis
}
