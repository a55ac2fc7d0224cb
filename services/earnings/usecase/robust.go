package usecase

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/gigmetric/earnmap/internal/pkg/models"
)

// AverageRobust is the modeled averager. The regression behind it puts
// earnings on a saturated (area x day-hour) interaction with nothing
// else on the right-hand side, so the weighted fit decomposes into
// independent per-bucket weighted means: each bucket gets a Huber IRLS
// mean that down-weights stragglers continuously instead of dropping
// them, plus a standard error from the weighted sample.
func AverageRobust(rows []models.JobHourRow, cfg models.AnalysisConfig) []models.AreaEstimate {
	buckets := collectObservations(rows)

	estimates := make([]models.AreaEstimate, 0, len(buckets))
	for bk, obs := range buckets {
		mean, stderr := huberMean(obs, cfg.HuberC, cfg.HuberIterations)
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

// huberMean iterates reweighted means until the location estimate
// stabilizes. Scale is the MAD; a zero MAD means at least half the
// observations agree exactly and the plain mean of them is already
// robust.
func huberMean(obs []float64, c float64, maxIter int) (mean, stderr float64) {
	if len(obs) == 1 {
		return obs[0], math.Inf(1)
	}

	mu := median(obs)
	weights := make([]float64, len(obs))
	for i := range weights {
		weights[i] = 1
	}

	for iter := 0; iter < maxIter; iter++ {
		s := madScale(obs, mu)
		if s == 0 {
			break
		}

		for i, v := range obs {
			r := math.Abs(v-mu) / s
			if r <= c {
				weights[i] = 1
			} else {
				weights[i] = c / r
			}
		}

		next := stat.Mean(obs, weights)
		if math.Abs(next-mu) < 1e-9 {
			mu = next
			break
		}
		mu = next
	}

	wMean, wStd := stat.MeanStdDev(obs, weights)
	sumW := floats.Sum(weights)
	if sumW <= 1 || math.IsNaN(wStd) {
		return wMean, math.Inf(1)
	}
	return wMean, wStd / math.Sqrt(sumW)
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

// madScale is the median absolute deviation around mu, scaled to be
// consistent with the standard deviation under normality.
func madScale(values []float64, mu float64) float64 {
	devs := make([]float64, len(values))
	for i, v := range values {
		devs[i] = math.Abs(v - mu)
	}
	return 1.4826 * median(devs)
}
