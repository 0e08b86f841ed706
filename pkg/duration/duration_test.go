package duration

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSeconds(t *testing.T) {
	testCases := []struct {
		token    string
		expected int64
	}{
		{"1Y25D", 365*86400 + 25*86400},
		{"2h39m", 2*3600 + 39*60},
		{"21s", 21},
		{"21s,", 21},
		{"1m55s", 115},
		{"2m0s", 120},
		{"1h0m", 3600},
		{"39m2h", 2*3600 + 39*60},
		{"3D4h5m6s", 3*86400 + 4*3600 + 5*60 + 6},
		{"", 0},
		{",", 0},
		{"never", 0},
		{"0s", 0},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, ParseSeconds(tc.token), tc.token)
	}
}

func TestParseSecondsKnownValues(t *testing.T) {
	assert.Equal(t, int64(33696000), ParseSeconds("1Y25D"))
	assert.Equal(t, int64(9540), ParseSeconds("2h39m"))
}

func TestParseSecondsFirstMatchPerUnit(t *testing.T) {
	// only the first minute component is used
	assert.Equal(t, int64(60), ParseSeconds("1m 5m"))
}

func TestParseSecondsSaturates(t *testing.T) {
	testCases := []string{
		"1000000000000Y",
		"99999999999999999999s",
		"292471208677Y200D",
		"106751991167300D16h",
	}

	for _, token := range testCases {
		got := ParseSeconds(token)
		assert.True(t, got >= 0, token)
		assert.Equal(t, int64(math.MaxInt64), got, token)
	}
}

func TestParseSecondsLargeButInRange(t *testing.T) {
	assert.Equal(t, int64(1000000)*year, ParseSeconds("1000000Y"))
}
