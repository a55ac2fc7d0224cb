package utils

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	// Jakarta to Bandung, roughly 116 km.
	jakarta := orb.Point{106.8456, -6.2088}
	bandung := orb.Point{107.6191, -6.9175}

	d := Haversine(jakarta, bandung)
	assert.InDelta(t, 116, d, 5)

	assert.Zero(t, Haversine(jakarta, jakarta))
}

func TestCoverBoundIncludesInteriorPoints(t *testing.T) {
	b := orb.Bound{
		Min: orb.Point{106.80, -6.25},
		Max: orb.Point{106.90, -6.15},
	}

	cells := CoverBound(b, 5)
	assert.NotEmpty(t, cells)

	cellSet := make(map[string]struct{}, len(cells))
	for _, c := range cells {
		cellSet[c] = struct{}{}
	}

	// Any point inside the bound must land in a covered cell.
	for _, p := range []orb.Point{
		{106.80, -6.25},
		{106.85, -6.20},
		{106.90, -6.15},
	} {
		_, ok := cellSet[EncodeCell(p, 5)]
		assert.True(t, ok, "cell for %v not covered", p)
	}
}
