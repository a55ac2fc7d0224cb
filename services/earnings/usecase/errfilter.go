package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gigmetric/earnmap/internal/pkg/models"
)

// ErrorStats counts rows and jobs removed as erroneous rather than
// statistically extreme.
type ErrorStats struct {
	OverDurationDropped int
	InvertedDropped     int
	DuplicatesDropped   int
	MultiAreaDropped    int
}

// FilterErrors applies the sequential plausibility predicates: jobs over
// the type-specific duration ceiling, jobs with inverted timestamps, jobs
// touching too many distinct areas, and duplicate (job, hour, date) rows.
// Each predicate is independent; a row survives only if its job and the
// row itself pass all of them.
//
// Driver double-booking detection is intentionally absent.
func FilterErrors(rows []models.JobHourRow, jobs []models.Job, cfg models.AnalysisConfig) ([]models.JobHourRow, ErrorStats) {
	var stats ErrorStats

	badJobs := make(map[uuid.UUID]struct{})
	for _, j := range jobs {
		if j.DropoffAt.Before(j.PickupAt) {
			stats.InvertedDropped++
			badJobs[j.ID] = struct{}{}
			continue
		}
		if j.Duration() > durationCeiling(j.ServiceType, cfg) {
			stats.OverDurationDropped++
			badJobs[j.ID] = struct{}{}
			continue
		}
		if len(j.TouchedAreaIDs()) > cfg.MaxAreasPerJob {
			stats.MultiAreaDropped++
			badJobs[j.ID] = struct{}{}
		}
	}

	seen := make(map[string]struct{}, len(rows))
	kept := make([]models.JobHourRow, 0, len(rows))
	for _, r := range rows {
		if _, bad := badJobs[r.JobID]; bad {
			continue
		}

		key := fmt.Sprintf("%s|%d|%s", r.JobID, r.Hour, r.Date)
		if _, dup := seen[key]; dup {
			stats.DuplicatesDropped++
			continue
		}
		seen[key] = struct{}{}

		kept = append(kept, r)
	}
	return kept, stats
}

func durationCeiling(st models.ServiceType, cfg models.AnalysisConfig) time.Duration {
	hours := cfg.RideshareMaxHours
	if st == models.ServiceTypeDelivery {
		hours = cfg.DeliveryMaxHours
	}
	return time.Duration(hours * float64(time.Hour))
}
