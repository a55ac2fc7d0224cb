package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gigmetric/earnmap/internal/pkg/logger"
	"github.com/gigmetric/earnmap/internal/pkg/models"
	"github.com/gigmetric/earnmap/services/earnings"
)

// EarningsUC implements the earnings.EarningsUC interface: one linear
// pass of load, geocode, normalize, apportion, filter, average, suppress.
// Any stage failure aborts the run; there is no partial result.
type EarningsUC struct {
	cfg  *models.Config
	repo earnings.EarningsRepo

	// exporter and gw are optional sinks; a nil sink is skipped.
	exporter earnings.EstimateExporter
	gw       earnings.RunGW

	mu   sync.RWMutex
	last *models.AnalysisResult
}

// NewEarningsUC creates a new earnings use case
func NewEarningsUC(cfg *models.Config, repo earnings.EarningsRepo, exporter earnings.EstimateExporter, gw earnings.RunGW) *EarningsUC {
	return &EarningsUC{
		cfg:      cfg,
		repo:     repo,
		exporter: exporter,
		gw:       gw,
	}
}

// LastResult returns the most recent completed run, or nil.
func (uc *EarningsUC) LastResult() *models.AnalysisResult {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.last
}

// Run executes the full analysis once.
func (uc *EarningsUC) Run(ctx context.Context) (*models.AnalysisResult, error) {
	analysis := uc.cfg.Analysis
	report := models.RunReport{
		RunID:     uuid.New(),
		Mode:      analysis.Mode,
		StartedAt: time.Now().UTC(),
	}

	until := time.Now().UTC()
	since := until.AddDate(0, 0, -analysis.WindowDays)

	jobs, err := uc.repo.FetchJobs(ctx, since, until)
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}
	areas, err := uc.repo.FetchAreas(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load areas: %w", err)
	}
	report.JobsLoaded = len(jobs)
	report.AreasLoaded = len(areas)
	logger.Info("loaded analysis inputs", logrus.Fields{
		"run_id": report.RunID,
		"jobs":   len(jobs),
		"areas":  len(areas),
		"since":  since,
		"until":  until,
	})

	jobs, geoStats, err := GeocodeJobs(jobs, areas, analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode jobs: %w", err)
	}
	report.PickupNoMatch = geoStats.PickupNoMatch
	report.PickupAmbiguous = geoStats.PickupAmbiguous
	logger.Info("geocoded jobs", logrus.Fields{
		"run_id":           report.RunID,
		"pickup_no_match":  geoStats.PickupNoMatch,
		"pickup_ambiguous": geoStats.PickupAmbiguous,
	})

	jobs, err = NormalizeJobs(jobs)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize jobs: %w", err)
	}

	rows, appStats := ApportionJobs(jobs)
	report.ZeroDurationJobs = appStats.ZeroDurationJobs
	report.RowsApportioned = len(rows)
	logger.Info("apportioned job hours", logrus.Fields{
		"run_id":        report.RunID,
		"rows":          len(rows),
		"zero_duration": appStats.ZeroDurationJobs,
		"no_area":       appStats.SkippedNoArea,
	})

	rows, outStats := FilterOutliers(rows, analysis)
	report.OutliersDropped = outStats.Dropped
	report.DetectorDisagreements = outStats.DetectorDisagreements
	if outStats.DetectorDisagreements > 0 {
		logger.Warn("outlier detectors disagree", logrus.Fields{
			"run_id":         report.RunID,
			"zscore_flagged": outStats.ZScoreFlagged,
			"iqr_flagged":    outStats.IQRFlagged,
			"disagreements":  outStats.DetectorDisagreements,
			"authoritative":  analysis.OutlierMethod,
		})
	}

	rows, errStats := FilterErrors(rows, jobs, analysis)
	report.OverDurationDropped = errStats.OverDurationDropped
	report.InvertedDropped = errStats.InvertedDropped
	report.DuplicatesDropped = errStats.DuplicatesDropped
	report.MultiAreaDropped = errStats.MultiAreaDropped

	var estimates []models.AreaEstimate
	switch analysis.Mode {
	case "direct":
		estimates = AverageDirect(rows)
	case "modeled":
		estimates = AverageRobust(rows, analysis)
	default:
		return nil, fmt.Errorf("unknown analysis mode %q", analysis.Mode)
	}

	estimates, suppressed := SuppressEstimates(estimates, analysis)
	report.Estimates = len(estimates)
	report.Suppressed = suppressed
	report.FinishedAt = time.Now().UTC()
	logger.Info("computed area estimates", logrus.Fields{
		"run_id":     report.RunID,
		"mode":       analysis.Mode,
		"estimates":  len(estimates),
		"suppressed": suppressed,
	})

	result := &models.AnalysisResult{
		Estimates: estimates,
		Report:    report,
	}

	if uc.exporter != nil {
		if err := uc.exporter.ExportEstimates(ctx, report.RunID, estimates); err != nil {
			return nil, fmt.Errorf("failed to export estimates: %w", err)
		}
	}
	if uc.gw != nil {
		if err := uc.gw.PublishRunCompleted(ctx, report); err != nil {
			return nil, fmt.Errorf("failed to publish run completion: %w", err)
		}
	}

	uc.mu.Lock()
	uc.last = result
	uc.mu.Unlock()

	return result, nil
}
