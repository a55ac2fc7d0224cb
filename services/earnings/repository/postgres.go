package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gigmetric/earnmap/internal/pkg/models"
)

// EarningsRepo loads jobs and areas from PostgreSQL.
type EarningsRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewEarningsRepo creates a new earnings repository
func NewEarningsRepo(cfg *models.Config, db *sqlx.DB) *EarningsRepo {
	return &EarningsRepo{
		cfg: cfg,
		db:  db,
	}
}

// FetchJobs retrieves completed jobs picked up inside [since, until),
// joined to the driver's home timezone and the employer's service type.
func (r *EarningsRepo) FetchJobs(ctx context.Context, since, until time.Time) ([]models.Job, error) {
	query := `
		SELECT j.id, j.driver_id, j.employer_id,
		       e.name AS employer_name, e.service_type,
		       j.pickup_at, j.dropoff_at,
		       j.pickup_lon, j.pickup_lat, j.dropoff_lon, j.dropoff_lat,
		       j.base_pay, j.tip, j.incentive,
		       d.timezone
		FROM jobs j
		JOIN drivers d ON d.id = j.driver_id
		JOIN employers e ON e.id = j.employer_id
		WHERE j.pickup_at >= $1 AND j.pickup_at < $2
		ORDER BY j.pickup_at
	`

	var jobs []models.Job
	if err := r.db.SelectContext(ctx, &jobs, query, since, until); err != nil {
		return nil, fmt.Errorf("failed to fetch jobs: %w", err)
	}
	return jobs, nil
}

// FetchAreas retrieves all area boundary records. Boundaries come back as
// raw JSON vertex lists; the geocoder parses them.
func (r *EarningsRepo) FetchAreas(ctx context.Context) ([]models.Area, error) {
	query := `SELECT id, name, boundary FROM areas ORDER BY name`

	var areas []models.Area
	if err := r.db.SelectContext(ctx, &areas, query); err != nil {
		return nil, fmt.Errorf("failed to fetch areas: %w", err)
	}
	return areas, nil
}
