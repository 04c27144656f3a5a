package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntrants(t *testing.T) {
	names := Entrants(36)
	assert.Len(t, names, 36)
	assert.Equal(t, "T1", names[0])
	assert.Equal(t, "T36", names[35])
	assert.Empty(t, Entrants(0))
}

func TestEntrantsWithPrefix(t *testing.T) {
	assert.Equal(t, []string{"Club1", "Club2"}, EntrantsWithPrefix("Club", 2))
}

func TestFixedIDs(t *testing.T) {
	assert.Equal(t, []string{"draw-0001", "draw-0002"}, FixedIDs(2))
}
