package usecase

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigmetric/earnmap/internal/pkg/models"
)

func matchedJob(pickup, dropoff time.Time, earnings float64) models.Job {
	return models.Job{
		ID:            uuid.New(),
		DriverID:      uuid.New(),
		PickupArea:    models.AreaMatch{State: models.AreaMatchFound, AreaID: uuid.New()},
		PickupLocal:   pickup,
		DropoffLocal:  dropoff,
		TotalEarnings: earnings,
	}
}

func TestApportionJobs_SumPreserved(t *testing.T) {
	pickup := time.Date(2025, 6, 2, 13, 50, 0, 0, time.UTC)
	dropoff := time.Date(2025, 6, 2, 16, 10, 0, 0, time.UTC)
	job := matchedJob(pickup, dropoff, 30.0)

	rows, stats := ApportionJobs([]models.Job{job})
	require.Len(t, rows, 4)
	assert.Zero(t, stats.ZeroDurationJobs)

	// 13:50-16:10 spans hours 13, 14, 15, 16 with 10+60+60+10 minutes.
	assert.Equal(t, []int{10, 60, 60, 10}, []int{rows[0].Minutes, rows[1].Minutes, rows[2].Minutes, rows[3].Minutes})
	assert.Equal(t, []int{13, 14, 15, 16}, []int{rows[0].Hour, rows[1].Hour, rows[2].Hour, rows[3].Hour})

	sum := 0.0
	for _, r := range rows {
		sum += r.Earnings
	}
	assert.InDelta(t, 30.0, sum, 1e-9)
}

func TestApportionJobs_SingleHour(t *testing.T) {
	pickup := time.Date(2025, 6, 2, 14, 5, 0, 0, time.UTC)
	dropoff := time.Date(2025, 6, 2, 14, 47, 0, 0, time.UTC)
	job := matchedJob(pickup, dropoff, 12.5)

	rows, _ := ApportionJobs([]models.Job{job})
	require.Len(t, rows, 1)

	assert.Equal(t, 14, rows[0].Hour)
	assert.Equal(t, 42, rows[0].Minutes) // dropoff minute - pickup minute
	assert.Equal(t, 12.5, rows[0].Earnings)
}

func TestApportionJobs_MidnightWrap(t *testing.T) {
	// Saturday 23:30 to Sunday 01:10.
	pickup := time.Date(2025, 6, 7, 23, 30, 0, 0, time.UTC)
	dropoff := time.Date(2025, 6, 8, 1, 10, 0, 0, time.UTC)
	job := matchedJob(pickup, dropoff, 50.0)

	rows, _ := ApportionJobs([]models.Job{job})
	require.Len(t, rows, 3)

	assert.Equal(t, 23, rows[0].Hour)
	assert.Equal(t, "2025-06-07", rows[0].Date)
	assert.Equal(t, time.Saturday, rows[0].Weekday)

	assert.Equal(t, 0, rows[1].Hour)
	assert.Equal(t, "2025-06-08", rows[1].Date)
	assert.Equal(t, time.Sunday, rows[1].Weekday)

	assert.Equal(t, 1, rows[2].Hour)
	assert.Equal(t, "2025-06-08", rows[2].Date)

	assert.Equal(t, []int{30, 60, 10}, []int{rows[0].Minutes, rows[1].Minutes, rows[2].Minutes})

	sum := rows[0].Earnings + rows[1].Earnings + rows[2].Earnings
	assert.InDelta(t, 50.0, sum, 1e-9)
}

func TestApportionJobs_ZeroDuration(t *testing.T) {
	at := time.Date(2025, 6, 2, 14, 5, 0, 0, time.UTC)
	job := matchedJob(at, at, 10.0)

	rows, stats := ApportionJobs([]models.Job{job})
	assert.Empty(t, rows)
	assert.Equal(t, 1, stats.ZeroDurationJobs)
}

func TestApportionJobs_SkipsUnmatchedPickup(t *testing.T) {
	pickup := time.Date(2025, 6, 2, 14, 5, 0, 0, time.UTC)
	job := matchedJob(pickup, pickup.Add(30*time.Minute), 10.0)
	job.PickupArea = models.AreaMatch{State: models.AreaMatchNone}

	rows, stats := ApportionJobs([]models.Job{job})
	assert.Empty(t, rows)
	assert.Equal(t, 1, stats.SkippedNoArea)
}

func TestApportionJobs_DropoffOnHourBoundary(t *testing.T) {
	// Ending exactly on the hour: the boundary hour gets no row.
	pickup := time.Date(2025, 6, 2, 13, 40, 0, 0, time.UTC)
	dropoff := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	job := matchedJob(pickup, dropoff, 16.0)

	rows, _ := ApportionJobs([]models.Job{job})
	require.Len(t, rows, 2)
	assert.Equal(t, []int{20, 60}, []int{rows[0].Minutes, rows[1].Minutes})

	sum := rows[0].Earnings + rows[1].Earnings
	assert.InDelta(t, 16.0, sum, 1e-9)
}
