package flags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeSnortAndState(t *testing.T) {
	c := Decode("UIO N1N3")

	assert.ElementsMatch(t, []string{"U", "I", "O"}, Codes(c.TCPStateFlags))
	assert.Equal(t, []string{"N1", "N3"}, Codes(c.SnortFlags))
	assert.True(t, c.IsSnortInspected)
	assert.True(t, c.HasElephantFlag)
	assert.Equal(t, "N3", c.ElephantFlagType)
	assert.False(t, c.IsOffloaded)
}

func TestDecodeOffloaded(t *testing.T) {
	c := Decode("-o")

	assert.True(t, c.IsOffloaded)
	assert.False(t, c.HasElephantFlag)
	assert.Empty(t, c.ElephantFlagType)
	assert.False(t, c.IsSnortInspected)
	assert.Equal(t, []Flag{{"o", "offloaded"}}, c.SpecialFlags)
}

func TestDecodeEmpty(t *testing.T) {
	for _, raw := range []string{"", "-", "- ", "  "} {
		assert.Equal(t, Classification{}, Decode(raw), "raw %q", raw)
	}
}

func TestDecodeElephantTieBreak(t *testing.T) {
	// the later code in N3..N6 order wins, not the later one in the input
	c := Decode("N6N4")
	assert.True(t, c.HasElephantFlag)
	assert.Equal(t, "N6", c.ElephantFlagType)

	c = Decode("N5 N3")
	assert.Equal(t, "N5", c.ElephantFlagType)
	assert.Equal(t, []string{"N3", "N5"}, Codes(c.SnortFlags))
}

func TestDecodeNonElephantSnort(t *testing.T) {
	c := Decode("N1 N2")
	assert.True(t, c.IsSnortInspected)
	assert.False(t, c.HasElephantFlag)
	assert.Empty(t, c.ElephantFlagType)
}

func TestDecodeSubstringMatching(t *testing.T) {
	c := Decode("UZ1")
	assert.Contains(t, Codes(c.ProtocolFlags), "Z")
	assert.Equal(t, []Flag{{"Z1", "zero-trust flow"}}, c.SpecialFlags)

	// offload is matched anywhere in the string, special flags keep o before Z1
	c = Decode("Z1o")
	assert.Equal(t, []string{"o", "Z1"}, Codes(c.SpecialFlags))
}

func TestDecodeProtocolFlagOrder(t *testing.T) {
	c := Decode("zDT")
	// results follow table order, not input order
	assert.Equal(t, []string{"T", "D", "z"}, Codes(c.ProtocolFlags))
}

func TestTables(t *testing.T) {
	assert.Len(t, SnortFlags, 6)
	assert.Len(t, TCPStateFlags, 10)
	assert.Len(t, ProtocolFlags, 36)
	for _, code := range ElephantCodes {
		assert.True(t, IsElephantCode(code))
	}
	assert.False(t, IsElephantCode("N1"))
}

func TestClean(t *testing.T) {
	assert.Equal(t, "N1", Clean("- N1"))
	assert.Equal(t, "o", Clean("-o"))
	assert.Equal(t, "UIO N1", Clean("UIO N1"))
}

func TestHighlight(t *testing.T) {
	assert.Equal(t, "N/A", Highlight("", Classification{}))
	assert.Equal(t, "UIO N1*N3*", Highlight("UIO N1N3", Decode("UIO N1N3")))
	assert.Equal(t, "*o*", Highlight("o", Decode("o")))
	assert.Equal(t, "UIO N1", Highlight("UIO N1", Decode("UIO N1")))
}
