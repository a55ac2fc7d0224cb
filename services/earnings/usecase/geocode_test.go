package usecase

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigmetric/earnmap/internal/pkg/models"
)

func squareArea(t *testing.T, name string, minLon, minLat, maxLon, maxLat float64) models.Area {
	t.Helper()
	boundary, err := json.Marshal([][2]float64{
		{minLon, minLat}, {maxLon, minLat}, {maxLon, maxLat}, {minLon, maxLat},
	})
	require.NoError(t, err)
	return models.Area{ID: uuid.New(), Name: name, BoundaryJSON: boundary}
}

func geocodeCfg() models.AnalysisConfig {
	return models.AnalysisConfig{
		AmbiguousPolicy:  "drop",
		GeohashPrecision: 3,
	}
}

func TestGeocodeJobs_SingleMatch(t *testing.T) {
	central := squareArea(t, "Central", 106.80, -6.25, 106.90, -6.15)
	north := squareArea(t, "North", 106.80, -6.14, 106.90, -6.05)

	job := models.Job{
		ID:         uuid.New(),
		PickupLon:  106.85,
		PickupLat:  -6.20,
		DropoffLon: 106.85,
		DropoffLat: -6.10,
	}

	jobs, stats, err := GeocodeJobs([]models.Job{job}, []models.Area{central, north}, geocodeCfg())
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	assert.Equal(t, models.AreaMatchFound, jobs[0].PickupArea.State)
	assert.Equal(t, central.ID, jobs[0].PickupArea.AreaID)
	assert.Equal(t, models.AreaMatchFound, jobs[0].DropoffArea.State)
	assert.Equal(t, north.ID, jobs[0].DropoffArea.AreaID)
	assert.Zero(t, stats.PickupNoMatch)
	assert.Zero(t, stats.PickupAmbiguous)
}

func TestGeocodeJobs_NoMatch(t *testing.T) {
	central := squareArea(t, "Central", 106.80, -6.25, 106.90, -6.15)

	job := models.Job{ID: uuid.New(), PickupLon: 100.0, PickupLat: 0.0}

	jobs, stats, err := GeocodeJobs([]models.Job{job}, []models.Area{central}, geocodeCfg())
	require.NoError(t, err)

	assert.Equal(t, models.AreaMatchNone, jobs[0].PickupArea.State)
	assert.Equal(t, 1, stats.PickupNoMatch)
}

func TestGeocodeJobs_AmbiguousDropPolicy(t *testing.T) {
	a := squareArea(t, "A", 106.80, -6.25, 106.90, -6.15)
	b := squareArea(t, "B", 106.85, -6.20, 106.95, -6.10) // overlaps a

	job := models.Job{ID: uuid.New(), PickupLon: 106.87, PickupLat: -6.17}

	jobs, stats, err := GeocodeJobs([]models.Job{job}, []models.Area{a, b}, geocodeCfg())
	require.NoError(t, err)

	assert.Equal(t, models.AreaMatchAmbiguous, jobs[0].PickupArea.State)
	assert.ElementsMatch(t, []uuid.UUID{a.ID, b.ID}, jobs[0].PickupArea.Candidates)
	assert.Equal(t, 1, stats.PickupAmbiguous)
	assert.False(t, jobs[0].PickupArea.Usable())
}

func TestGeocodeJobs_AmbiguousFirstPolicy(t *testing.T) {
	a := squareArea(t, "A", 106.80, -6.25, 106.90, -6.15)
	b := squareArea(t, "B", 106.85, -6.20, 106.95, -6.10)

	cfg := geocodeCfg()
	cfg.AmbiguousPolicy = "first"

	job := models.Job{ID: uuid.New(), PickupLon: 106.87, PickupLat: -6.17}

	jobs, stats, err := GeocodeJobs([]models.Job{job}, []models.Area{a, b}, cfg)
	require.NoError(t, err)

	assert.Equal(t, models.AreaMatchFound, jobs[0].PickupArea.State)
	assert.Equal(t, a.ID, jobs[0].PickupArea.AreaID)
	assert.Zero(t, stats.PickupAmbiguous)
}

func TestGeocodeJobs_BadBoundary(t *testing.T) {
	bad := models.Area{ID: uuid.New(), Name: "Broken", BoundaryJSON: []byte(`not json`)}

	_, _, err := GeocodeJobs(nil, []models.Area{bad}, geocodeCfg())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to index areas")
}
