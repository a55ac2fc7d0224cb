package usecase

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/gigmetric/earnmap/internal/pkg/models"
)

// SuppressEstimates marks every estimate whose confidence interval
// half-width at the configured level exceeds the dollar threshold.
// Suppressed estimates keep their stats for diagnostics; exporters and
// handlers treat them as unavailable.
func SuppressEstimates(estimates []models.AreaEstimate, cfg models.AnalysisConfig) ([]models.AreaEstimate, int) {
	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.5 + cfg.ConfidenceLevel/2)

	suppressed := 0
	out := make([]models.AreaEstimate, len(estimates))
	for i, est := range estimates {
		est.HalfWidth = z * est.StdErr
		est.Suppressed = math.IsInf(est.HalfWidth, 1) ||
			math.IsNaN(est.HalfWidth) ||
			est.HalfWidth > cfg.SuppressAboveDollars
		if est.Suppressed {
			suppressed++
		}
		out[i] = est
	}
	return out, suppressed
}
