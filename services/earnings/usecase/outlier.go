package usecase

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/gigmetric/earnmap/internal/pkg/models"
)

// OutlierStats reports what each detector saw. Only the authoritative
// method drops rows; the other runs for comparison and any disagreement
// is surfaced.
type OutlierStats struct {
	ZScoreFlagged         int
	IQRFlagged            int
	Dropped               int
	DetectorDisagreements int
}

// FilterOutliers removes statistical outliers from the per-hour earnings
// distribution. Both detectors always run; cfg.OutlierMethod picks which
// one's flags actually drop rows.
func FilterOutliers(rows []models.JobHourRow, cfg models.AnalysisConfig) ([]models.JobHourRow, OutlierStats) {
	var stats OutlierStats
	if len(rows) == 0 {
		return rows, stats
	}

	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = r.Earnings
	}

	zFlags := zscoreFlags(values, cfg.ZScoreLimit)
	iqrFlags := iqrFlags(values, cfg.IQRMultiplier)

	authoritative := zFlags
	if cfg.OutlierMethod == "iqr" {
		authoritative = iqrFlags
	}

	kept := make([]models.JobHourRow, 0, len(rows))
	for i, r := range rows {
		if zFlags[i] {
			stats.ZScoreFlagged++
		}
		if iqrFlags[i] {
			stats.IQRFlagged++
		}
		if zFlags[i] != iqrFlags[i] {
			stats.DetectorDisagreements++
		}
		if authoritative[i] {
			stats.Dropped++
			continue
		}
		kept = append(kept, r)
	}
	return kept, stats
}

// zscoreFlags marks values more than limit standard deviations from the
// mean. A degenerate distribution flags nothing.
func zscoreFlags(values []float64, limit float64) []bool {
	flags := make([]bool, len(values))

	mean, std := stat.MeanStdDev(values, nil)
	if std == 0 || math.IsNaN(std) {
		return flags
	}

	for i, v := range values {
		if math.Abs(v-mean)/std > limit {
			flags[i] = true
		}
	}
	return flags
}

// iqrFlags marks values outside [Q1 - k*IQR, Q3 + k*IQR].
func iqrFlags(values []float64, k float64) []bool {
	flags := make([]bool, len(values))
	if len(values) < 4 {
		return flags
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q1 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	q3 := stat.Quantile(0.75, stat.Empirical, sorted, nil)
	iqr := q3 - q1

	lo := q1 - k*iqr
	hi := q3 + k*iqr
	for i, v := range values {
		if v < lo || v > hi {
			flags[i] = true
		}
	}
	return flags
}
