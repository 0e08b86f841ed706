package rate

// Category is a coarse bucket of a flow's throughput
type Category string

const (
	//VeryLow is below 100 Kbps
	VeryLow Category = "very_low"
	//Low is at least 0.1 Mbps
	Low Category = "low"
	//Medium is at least 1 Mbps
	Medium Category = "medium"
	//High is at least 10 Mbps
	High Category = "high"
	//VeryHigh is at least 100 Mbps
	VeryHigh Category = "very_high"
	//ExtremelyHigh is at least 1000 Mbps
	ExtremelyHigh Category = "extremely_high"
	//Unknown is used when no elapsed time is available
	Unknown Category = "unknown"
)

// Categories lists every category from the slowest to the fastest, followed by Unknown
var Categories = []Category{VeryLow, Low, Medium, High, VeryHigh, ExtremelyHigh, Unknown}

type (
	// Info holds the throughput derived from a byte count and an elapsed time
	Info struct {
		BytesPerSecond float64  `json:"bytesPerSecond"`
		BytesPerMinute float64  `json:"bytesPerMinute"`
		BytesPerHour   float64  `json:"bytesPerHour"`
		Mbps           float64  `json:"mbps"`
		RateCategory   Category `json:"rateCategory"`
	}
)

// Calculate derives throughput metrics for bytes transferred over seconds.
// Megabits use a binary mega (1024*1024).
func Calculate(bytes int64, seconds int64) Info {
	if seconds <= 0 {
		return Info{RateCategory: Unknown}
	}

	bps := float64(bytes) / float64(seconds)
	mbps := bps * 8 / (1024 * 1024)

	return Info{
		BytesPerSecond: bps,
		BytesPerMinute: bps * 60,
		BytesPerHour:   bps * 3600,
		Mbps:           mbps,
		RateCategory:   Categorize(mbps),
	}
}

// Categorize buckets a rate given in Mbps
func Categorize(mbps float64) Category {
	switch {
	case mbps >= 1000:
		return ExtremelyHigh
	case mbps >= 100:
		return VeryHigh
	case mbps >= 10:
		return High
	case mbps >= 1:
		return Medium
	case mbps >= 0.1:
		return Low
	default:
		return VeryLow
	}
}
