package usecase

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/gigmetric/earnmap/internal/pkg/models"
	"github.com/gigmetric/earnmap/internal/utils"
)

// areaIndex answers point-in-area queries. Candidate areas come from a
// geohash cell grid over each boundary's bounding box, so a lookup only
// runs the polygon test against areas whose box overlaps the point's cell.
type areaIndex struct {
	areas     []models.Area
	cells     map[string][]int
	precision uint
}

func buildAreaIndex(areas []models.Area, precision uint) (*areaIndex, error) {
	ix := &areaIndex{
		areas:     make([]models.Area, len(areas)),
		cells:     make(map[string][]int),
		precision: precision,
	}
	copy(ix.areas, areas)

	for i := range ix.areas {
		if err := ix.areas[i].ParseBoundary(); err != nil {
			return nil, fmt.Errorf("failed to index areas: %w", err)
		}
		for _, cell := range utils.CoverBound(ix.areas[i].Bound, precision) {
			ix.cells[cell] = append(ix.cells[cell], i)
		}
	}
	return ix, nil
}

// locate tests a coordinate against every candidate boundary and reports
// the containment outcome. Multiple containing areas are a data problem
// the caller decides on; locate only records all of them.
func (ix *areaIndex) locate(p orb.Point) models.AreaMatch {
	var match models.AreaMatch
	match.State = models.AreaMatchNone

	for _, i := range ix.cells[utils.EncodeCell(p, ix.precision)] {
		area := &ix.areas[i]
		if !area.Bound.Contains(p) {
			continue
		}
		if !planar.PolygonContains(area.Polygon(), p) {
			continue
		}
		match.Candidates = append(match.Candidates, area.ID)
	}

	switch len(match.Candidates) {
	case 0:
	case 1:
		match.State = models.AreaMatchFound
		match.AreaID = match.Candidates[0]
		match.Candidates = nil
	default:
		match.State = models.AreaMatchAmbiguous
	}
	return match
}

// GeocodeStats counts pickup-coordinate outcomes for the run report.
type GeocodeStats struct {
	PickupNoMatch   int
	PickupAmbiguous int
}

// GeocodeJobs attaches the containing area of each job's pickup and
// dropoff coordinate. Under the "first" ambiguity policy an ambiguous
// match collapses to its first candidate in area load order; under the
// default "drop" policy it stays ambiguous and downstream stages skip it.
func GeocodeJobs(jobs []models.Job, areas []models.Area, cfg models.AnalysisConfig) ([]models.Job, GeocodeStats, error) {
	ix, err := buildAreaIndex(areas, cfg.GeohashPrecision)
	if err != nil {
		return nil, GeocodeStats{}, err
	}

	var stats GeocodeStats
	out := make([]models.Job, len(jobs))
	for i, j := range jobs {
		j.PickupArea = applyAmbiguousPolicy(ix.locate(orb.Point{j.PickupLon, j.PickupLat}), cfg.AmbiguousPolicy)
		j.DropoffArea = applyAmbiguousPolicy(ix.locate(orb.Point{j.DropoffLon, j.DropoffLat}), cfg.AmbiguousPolicy)

		switch j.PickupArea.State {
		case models.AreaMatchNone:
			stats.PickupNoMatch++
		case models.AreaMatchAmbiguous:
			stats.PickupAmbiguous++
		}
		out[i] = j
	}
	return out, stats, nil
}

func applyAmbiguousPolicy(m models.AreaMatch, policy string) models.AreaMatch {
	if m.State != models.AreaMatchAmbiguous || policy != "first" {
		return m
	}
	return models.AreaMatch{
		State:  models.AreaMatchFound,
		AreaID: m.Candidates[0],
	}
}
