package duration

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	minute = 60
	hour   = 60 * minute
	day    = 24 * hour
	year   = 365 * day
)

// unit pairs a compound duration suffix with its length in seconds.
// Each unit is searched for independently, so "39m2h" and "2h39m" are equal.
type unit struct {
	pattern *regexp.Regexp
	seconds int64
}

var units = []unit{
	{regexp.MustCompile(`(\d+)Y`), year},
	{regexp.MustCompile(`(\d+)D`), day},
	{regexp.MustCompile(`(\d+)h`), hour},
	{regexp.MustCompile(`(\d+)m`), minute},
	{regexp.MustCompile(`(\d+)s`), 1},
}

// ParseSeconds converts a compound duration token such as "1Y25D", "2h39m"
// or "2m0s," into a total number of seconds. Only the first occurrence of
// each unit counts. Tokens with no recognizable component yield 0. Totals
// beyond the int64 range saturate at math.MaxInt64.
func ParseSeconds(token string) int64 {
	token = strings.TrimRight(token, ",")
	if token == "" {
		return 0
	}

	var total int64
	for _, u := range units {
		match := u.pattern.FindStringSubmatch(token)
		if match == nil {
			continue
		}
		n, err := strconv.ParseInt(match[1], 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			return math.MaxInt64
		}
		if err != nil {
			continue
		}
		if n > math.MaxInt64/u.seconds || total > math.MaxInt64-n*u.seconds {
			return math.MaxInt64
		}
		total += n * u.seconds
	}
	return total
}
