package usecase

import (
	"fmt"
	"time"

	"github.com/gigmetric/earnmap/internal/pkg/models"
)

// NormalizeJobs converts raw UTC timestamps into the driver's local clock
// and totals the earnings components. Locations are cached per timezone
// name; an unknown timezone aborts the run rather than silently shifting
// a driver's hours.
func NormalizeJobs(jobs []models.Job) ([]models.Job, error) {
	locations := make(map[string]*time.Location)

	out := make([]models.Job, len(jobs))
	for i, j := range jobs {
		loc, ok := locations[j.Timezone]
		if !ok {
			var err error
			loc, err = time.LoadLocation(j.Timezone)
			if err != nil {
				return nil, fmt.Errorf("failed to load timezone %q for driver %s: %w", j.Timezone, j.DriverID, err)
			}
			locations[j.Timezone] = loc
		}

		j.PickupLocal = j.PickupAt.In(loc)
		j.DropoffLocal = j.DropoffAt.In(loc)
		j.TotalEarnings = j.BasePay + j.Tip + j.Incentive
		out[i] = j
	}
	return out, nil
}
