package stats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributionMostCommon(t *testing.T) {
	d := NewDistribution()
	for _, key := range []string{"udp", "tcp", "icmp", "tcp", "", "udp", "tcp"} {
		d.Add(key)
	}

	assert.Equal(t, 3, d.Len())
	assert.Equal(t, 6, d.Total())
	assert.Equal(t, 0, d.Count(""))
	assert.Equal(t, []Entry{{"tcp", 3}, {"udp", 2}, {"icmp", 1}}, d.Entries())
	assert.Equal(t, []Entry{{"tcp", 3}}, d.MostCommon(1))
}

func TestDistributionTiesKeepFirstSeenOrder(t *testing.T) {
	d := NewDistribution()
	for _, key := range []string{"b", "a", "c", "a", "b"} {
		d.Add(key)
	}
	assert.Equal(t, []Entry{{"b", 2}, {"a", 2}, {"c", 1}}, d.Entries())
}

func TestDistributionMarshalJSON(t *testing.T) {
	d := NewDistribution()
	d.Add("53")
	d.AddN("443", 4)
	d.AddN("80", 0)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `{"443":4,"53":1}`, string(out))

	out, err = json.Marshal(NewDistribution())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))
}

func TestNilDistribution(t *testing.T) {
	var d *Distribution
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, 0, d.Total())
	assert.Empty(t, d.Entries())
}
