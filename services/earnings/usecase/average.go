package usecase

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/gigmetric/earnmap/internal/pkg/models"
)

type bucketKey struct {
	AreaID  uuid.UUID
	Weekday time.Weekday
	Hour    int
}

type driverHourKey struct {
	DriverID uuid.UUID
	Date     string
	Hour     int
	AreaID   uuid.UUID
}

// collectObservations performs the first aggregation level shared by both
// averagers: per (driver, date, hour, area), sum the prorated earnings.
// Each sum is one observation of "what a driver makes in that cell".
func collectObservations(rows []models.JobHourRow) map[bucketKey][]float64 {
	sums := make(map[driverHourKey]float64)
	weekdays := make(map[driverHourKey]time.Weekday)
	for _, r := range rows {
		k := driverHourKey{DriverID: r.DriverID, Date: r.Date, Hour: r.Hour, AreaID: r.AreaID}
		sums[k] += r.Earnings
		weekdays[k] = r.Weekday
	}

	buckets := make(map[bucketKey][]float64)
	for k, sum := range sums {
		bk := bucketKey{AreaID: k.AreaID, Weekday: weekdays[k], Hour: k.Hour}
		buckets[bk] = append(buckets[bk], sum)
	}
	return buckets
}

// AverageDirect is the plain two-level aggregation: driver-hour sums,
// then the sample mean per (area, weekday, hour) with its standard error.
// A single-observation bucket gets an infinite standard error; it carries
// no usable confidence and the suppressor will mark it unavailable.
func AverageDirect(rows []models.JobHourRow) []models.AreaEstimate {
	buckets := collectObservations(rows)

	estimates := make([]models.AreaEstimate, 0, len(buckets))
	for bk, obs := range buckets {
		mean := stat.Mean(obs, nil)
		stderr := math.Inf(1)
		if len(obs) >= 2 {
			stderr = stat.StdDev(obs, nil) / math.Sqrt(float64(len(obs)))
		}
		estimates = append(estimates, models.AreaEstimate{
			AreaID:  bk.AreaID,
			Weekday: bk.Weekday,
			Hour:    bk.Hour,
			Mean:    mean,
			StdErr:  stderr,
			Count:   len(obs),
		})
	}

	sortEstimates(estimates)
	return estimates
}

func sortEstimates(estimates []models.AreaEstimate) {
	sort.Slice(estimates, func(i, j int) bool {
		a, b := estimates[i], estimates[j]
		if a.AreaID != b.AreaID {
			return a.AreaID.String() < b.AreaID.String()
		}
		if a.Weekday != b.Weekday {
			return a.Weekday < b.Weekday
		}
		return a.Hour < b.Hour
	})
}
