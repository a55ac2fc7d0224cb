package models

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Area is immutable reference data: a named region whose boundary is an
// ordered ring of [lon, lat] vertices.
type Area struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`

	// BoundaryJSON is the raw vertex list as stored ([[lon,lat], ...]).
	BoundaryJSON []byte `db:"boundary" json:"-"`

	// Ring and Bound are populated by ParseBoundary.
	Ring  orb.Ring  `db:"-" json:"-"`
	Bound orb.Bound `db:"-" json:"-"`
}

// ParseBoundary decodes the stored vertex list into an orb ring, closing
// it if the source left it open, and caches the bounding box.
func (a *Area) ParseBoundary() error {
	var coords [][2]float64
	if err := json.Unmarshal(a.BoundaryJSON, &coords); err != nil {
		return fmt.Errorf("failed to parse boundary for area %s: %w", a.ID, err)
	}
	if len(coords) < 3 {
		return fmt.Errorf("area %s boundary has %d vertices, need at least 3", a.ID, len(coords))
	}

	ring := make(orb.Ring, 0, len(coords)+1)
	for _, c := range coords {
		ring = append(ring, orb.Point{c[0], c[1]})
	}
	if !ring[0].Equal(ring[len(ring)-1]) {
		ring = append(ring, ring[0])
	}

	a.Ring = ring
	a.Bound = ring.Bound()
	return nil
}

// Polygon returns the area boundary as a single-ring polygon.
func (a *Area) Polygon() orb.Polygon {
	return orb.Polygon{a.Ring}
}

// AreaMatchState is the outcome of testing a coordinate against all
// area boundaries.
type AreaMatchState string

const (
	// AreaMatchNone: the coordinate fell inside no boundary.
	AreaMatchNone AreaMatchState = "none"
	// AreaMatchFound: exactly one boundary contains the coordinate.
	AreaMatchFound AreaMatchState = "matched"
	// AreaMatchAmbiguous: more than one boundary contains the coordinate.
	AreaMatchAmbiguous AreaMatchState = "ambiguous"
)

// AreaMatch records the containment result for one coordinate. Ambiguous
// matches keep every candidate so policy can be applied downstream.
type AreaMatch struct {
	State      AreaMatchState `json:"state"`
	AreaID     uuid.UUID      `json:"area_id,omitempty"`
	Candidates []uuid.UUID    `json:"candidates,omitempty"`
}

// Usable reports whether the match resolved to a single area.
func (m AreaMatch) Usable() bool {
	return m.State == AreaMatchFound
}

func (m AreaMatch) areaIDs() []uuid.UUID {
	switch m.State {
	case AreaMatchFound:
		return []uuid.UUID{m.AreaID}
	case AreaMatchAmbiguous:
		return m.Candidates
	default:
		return nil
	}
}
