package stations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameStation(t *testing.T) {
	connType, ok := SameStation("NDLS", "NDLS")
	assert.True(t, ok)
	assert.Equal(t, "direct", connType)

	connType, ok = SameStation("NEW DELHI", "NDLS")
	assert.True(t, ok)
	assert.Equal(t, "nearby", connType)

	connType, ok = SameStation("HOWRAH JN", "HOWRAH")
	assert.True(t, ok)
	assert.Equal(t, "nearby", connType)

	_, ok = SameStation("NDLS", "BCT")
	assert.False(t, ok)

	_, ok = SameStation("", "BCT")
	assert.False(t, ok)
}

func TestStripSuffixes(t *testing.T) {
	assert.Equal(t, "RATLAM", StripSuffixes("RATLAM JN"))
	assert.Equal(t, "MUMBAI", StripSuffixes("Mumbai Central"))
	assert.Equal(t, "KANYAKUMARI", StripSuffixes("KANYAKUMARI"))
}

func TestCanonical(t *testing.T) {
	code, ok := Canonical("BOMBAY CENTRAL")
	assert.True(t, ok)
	assert.Equal(t, "BCT", code)

	_, ok = Canonical("NOWHERE HALT")
	assert.False(t, ok)
}

func TestInferCode(t *testing.T) {
	assert.Equal(t, "NDLS", InferCode("NEW DELHI"))
	assert.Equal(t, "RTM", InferCode("RATLAM"))
	// Unknown multi-word names fall back to word initials.
	assert.Equal(t, "SOME", InferCode("SOMEWHERE MEADOW"))
	// Unknown single words fall back to a prefix.
	assert.Equal(t, "KAN", InferCode("KANYAKUMARI"))
}

func TestLookup(t *testing.T) {
	s, ok := Lookup("rtm")
	assert.True(t, ok)
	assert.Equal(t, "RATLAM JN", s.Name)

	_, ok = Lookup("ZZZZ")
	assert.False(t, ok)
}
