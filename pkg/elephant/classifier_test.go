package elephant

import (
	"sort"
	"sync/atomic"
	"testing"

	"github.com/activecm/asa-elephant/parser"
	"github.com/activecm/asa-elephant/pkg/flags"
	"github.com/activecm/asa-elephant/pkg/rate"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleRecords mirrors the three connection sample used across the tool
func sampleRecords() []parser.ConnectionRecord {
	return []parser.ConnectionRecord{
		{Protocol: "UDP", SrcIP: "10.1.76.4", SrcPort: "45879", DstIP: "10.1.5.101", DstPort: "53",
			RawFlags: "N1", Uptime: "21s,", BytesStr: "28"},
		{Protocol: "TCP", SrcIP: "10.1.76.3", SrcPort: "57798", DstIP: "10.1.19.90", DstPort: "8000",
			RawFlags: "UIO N1", Uptime: "2h39m,", BytesStr: "14395"},
		{Protocol: "UDP", SrcIP: "10.2.76.3", SrcPort: "4789", DstIP: "10.1.76.3", DstPort: "4816",
			RawFlags: "o", Uptime: "1Y25D,", BytesStr: "7688943400093"},
	}
}

func zeroConfig() Config {
	return Config{SortBy: SortBytes, IncludeOffloaded: true}
}

func TestClassifySample(t *testing.T) {
	results := Classify(sampleRecords(), zeroConfig(), nil)
	require.Len(t, results, 3)

	// sorted by bytes descending
	assert.Equal(t, int64(7688943400093), results[0].BytesInt)
	assert.Equal(t, int64(14395), results[1].BytesInt)
	assert.Equal(t, int64(28), results[2].BytesInt)

	vpls := results[0]
	assert.True(t, vpls.IsOffloadedElephant)
	assert.True(t, vpls.IsOffloaded)
	assert.False(t, vpls.IsFlaggedElephant)
	assert.Equal(t, int64(33696000), vpls.UptimeSeconds)
	assert.InDelta(t, 9360.0, vpls.UptimeHours, 0.0001)
	assert.InDelta(t, 1.74, vpls.Mbps, 0.01)
	assert.Equal(t, rate.Medium, vpls.RateCategory)
	assert.Equal(t, "Long-lived + High-volume + High-rate + Offloaded", vpls.ElephantFlowType)

	tcp := results[1]
	assert.Equal(t, int64(9540), tcp.UptimeSeconds)
	assert.False(t, tcp.IsOffloadedElephant)
	assert.Equal(t, []string{"U", "I", "O"}, flags.Codes(tcp.TCPStateFlags))
}

func TestClassifyCombinedScore(t *testing.T) {
	results := Classify(sampleRecords(), zeroConfig(), nil)
	for _, res := range results {
		expected := float64(res.UptimeSeconds)/3600 + float64(res.BytesInt)/1000000 + res.Mbps*10
		assert.InDelta(t, expected, res.CombinedScore, 1e-9)
	}
}

func TestClassifyThresholds(t *testing.T) {
	conf := Config{
		MinUptimeHours: 24,
		MinBytes:       1 << 40,
		MinMbps:        100,
		SortBy:         SortBytes,
	}
	results := Classify(sampleRecords(), conf, nil)
	require.Len(t, results, 1)
	assert.Equal(t, "10.2.76.3", results[0].SrcIP)
	assert.True(t, results[0].IsLongLived)
	assert.True(t, results[0].IsHighVolume)
	assert.False(t, results[0].IsHighRate)
	assert.Equal(t, "Long-lived + High-volume", results[0].ElephantFlowType)
}

func TestClassifyNothingQualifies(t *testing.T) {
	conf := Config{MinUptimeHours: 1e6, MinBytes: 1 << 62, MinMbps: 1e6, SortBy: SortBytes}
	assert.Empty(t, Classify(sampleRecords(), conf, nil))
	assert.Empty(t, Classify(nil, DefaultConfig(), nil))
}

func TestClassifyFlagged(t *testing.T) {
	records := []parser.ConnectionRecord{
		{Protocol: "TCP", RawFlags: "UIO N1N3", Uptime: "5s", BytesStr: "10"},
		{Protocol: "TCP", RawFlags: "UIO N1", Uptime: "5s", BytesStr: "10"},
	}
	conf := Config{MinUptimeHours: 100, MinBytes: 1 << 40, MinMbps: 1000, SortBy: SortBytes, IncludeFlagged: true}

	results := Classify(records, conf, nil)
	require.Len(t, results, 1)
	assert.True(t, results[0].IsFlaggedElephant)
	assert.Equal(t, "N3", results[0].ElephantFlagType)
	assert.Equal(t, "Flagged-N3", results[0].ElephantFlowType)

	conf.IncludeFlagged = false
	assert.Empty(t, Classify(records, conf, nil))
}

func TestClassifyPassthroughNeedsPostFilter(t *testing.T) {
	conf := Config{SortBy: SortBytes, IncludeFlagged: true}
	all := Classify(sampleRecords(), conf, nil)
	assert.Len(t, all, 3)
	assert.Empty(t, FlagsOnly(all))

	conf = Config{SortBy: SortBytes, IncludeOffloaded: true}
	offloaded := OffloadedOnly(Classify(sampleRecords(), conf, nil))
	require.Len(t, offloaded, 1)
	assert.Equal(t, "4789", offloaded[0].SrcPort)
}

func TestClassifyNonNumericBytes(t *testing.T) {
	records := []parser.ConnectionRecord{
		{Protocol: "TCP", Uptime: "1h", BytesStr: "12abc"},
		{Protocol: "TCP", Uptime: "1h", BytesStr: "-5"},
		{Protocol: "TCP", Uptime: "1h"},
	}
	results := Classify(records, zeroConfig(), nil)
	require.Len(t, results, 3)
	for _, res := range results {
		assert.Equal(t, int64(0), res.BytesInt)
		assert.Equal(t, rate.VeryLow, res.RateCategory)
	}
}

func TestParseBytes(t *testing.T) {
	assert.Equal(t, int64(28), ParseBytes("28"))
	assert.Equal(t, int64(7688943400093), ParseBytes("7688943400093"))
	assert.Equal(t, int64(0), ParseBytes(""))
	assert.Equal(t, int64(0), ParseBytes("+5"))
	assert.Equal(t, int64(0), ParseBytes("1.5"))
	assert.Equal(t, int64(0), ParseBytes("99999999999999999999999"))
}

func TestClassifySortOrders(t *testing.T) {
	records := append(sampleRecords(),
		parser.ConnectionRecord{Protocol: "TCP", Uptime: "10s", BytesStr: "900000000"},
		parser.ConnectionRecord{Protocol: "TCP", Uptime: "3D", BytesStr: "1"},
	)

	conf := zeroConfig()

	conf.SortBy = SortBytes
	results := Classify(records, conf, nil)
	assert.True(t, sort.SliceIsSorted(results, func(i, j int) bool { return results[i].BytesInt > results[j].BytesInt }))

	conf.SortBy = SortUptime
	results = Classify(records, conf, nil)
	assert.True(t, sort.SliceIsSorted(results, func(i, j int) bool { return results[i].UptimeSeconds > results[j].UptimeSeconds }))

	conf.SortBy = SortRate
	results = Classify(records, conf, nil)
	assert.True(t, sort.SliceIsSorted(results, func(i, j int) bool { return results[i].Mbps > results[j].Mbps }))
	assert.Equal(t, "900000000", results[0].BytesStr)

	conf.SortBy = SortBoth
	results = Classify(records, conf, nil)
	for i := 1; i < len(results); i++ {
		assert.True(t, results[i-1].CombinedScore >= results[i].CombinedScore)
	}
}

func TestClassifyInvalidSortKeyWarns(t *testing.T) {
	logger, hook := test.NewNullLogger()
	conf := zeroConfig()
	conf.SortBy = SortKey("duration")

	results := Classify(sampleRecords(), conf, logrus.NewEntry(logger))
	require.Len(t, results, 3)
	for i := 1; i < len(results); i++ {
		assert.True(t, results[i-1].BytesInt >= results[i].BytesInt)
	}

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "duration", hook.LastEntry().Data["sort_by"])
}

func TestParseSortKey(t *testing.T) {
	key, ok := ParseSortKey("Rate")
	assert.True(t, ok)
	assert.Equal(t, SortRate, key)

	key, ok = ParseSortKey("fastest")
	assert.False(t, ok)
	assert.Equal(t, SortBytes, key)
}

func TestClassifyParallelMatchesSequential(t *testing.T) {
	var records []parser.ConnectionRecord
	for i := 0; i < 50; i++ {
		records = append(records, sampleRecords()...)
	}
	conf := zeroConfig()
	conf.SortBy = SortBoth

	var calls int64
	parallel := ClassifyParallel(records, conf, 4, nil, func() { atomic.AddInt64(&calls, 1) })
	sequential := Classify(records, conf, nil)

	assert.Equal(t, int64(len(records)), atomic.LoadInt64(&calls))
	require.Len(t, parallel, len(sequential))
	for i := range parallel {
		assert.Equal(t, sequential[i].CombinedScore, parallel[i].CombinedScore)
	}

	assert.Empty(t, ClassifyParallel(nil, conf, 0, nil, nil))
}

func TestResultFields(t *testing.T) {
	results := Classify(sampleRecords()[2:], zeroConfig(), nil)
	require.Len(t, results, 1)

	fields := results[0].Fields()
	assert.Equal(t, "UDP", fields["protocol"])
	assert.Equal(t, "7688943400093", fields["bytesInt"])
	assert.Equal(t, "33696000", fields["uptimeSeconds"])
	assert.Equal(t, "true", fields["isOffloadedElephant"])
	assert.Equal(t, "o:offloaded", fields["specialFlags"])
	assert.Equal(t, "medium", fields["rateCategory"])
	assert.Equal(t, "", fields["elephantFlagType"])
}
