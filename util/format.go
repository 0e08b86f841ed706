package util

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatBytes renders a byte count with a decimal unit, e.g. 7.7TB
func FormatBytes(n int64) string {
	b := float64(n)
	switch {
	case b >= 1e12:
		return fmt.Sprintf("%.1fTB", b/1e12)
	case b >= 1e9:
		return fmt.Sprintf("%.1fGB", b/1e9)
	case b >= 1e6:
		return fmt.Sprintf("%.1fMB", b/1e6)
	case b >= 1e3:
		return fmt.Sprintf("%.1fKB", b/1e3)
	}
	return fmt.Sprintf("%dB", n)
}

// FormatRate renders a rate given in Mbps with the most readable unit
func FormatRate(mbps float64) string {
	switch {
	case mbps >= 1000:
		return fmt.Sprintf("%.1fGbps", mbps/1000)
	case mbps >= 1:
		return fmt.Sprintf("%.1fMbps", mbps)
	case mbps >= 0.001:
		return fmt.Sprintf("%.1fKbps", mbps*1000)
	}
	return fmt.Sprintf("%.0fbps", mbps*1000000)
}

// FormatUptime renders an uptime in days or hours. Uptimes under an hour
// fall back to the token as it appeared in the input.
func FormatUptime(hours float64, raw string) string {
	switch {
	case hours >= 24:
		return fmt.Sprintf("%.1fd", hours/24)
	case hours >= 1:
		return fmt.Sprintf("%.1fh", hours)
	case raw == "":
		return "N/A"
	}
	return strings.TrimRight(raw, ",")
}

// FormatCount renders an integer with thousands separators
func FormatCount(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 && !(neg && b.Len() == 1) {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// Truncate shortens s to at most n runes
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
