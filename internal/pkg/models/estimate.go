package models

import (
	"time"

	"github.com/google/uuid"
)

// JobHourRow is the derived entity of the apportioner: one row per
// (job, clock hour) pair, carrying the slice of the job's earnings that
// fell inside that hour. Per job, the prorated earnings across its rows
// sum back to the job's total earnings within float tolerance.
type JobHourRow struct {
	JobID    uuid.UUID `json:"job_id"`
	DriverID uuid.UUID `json:"driver_id"`
	AreaID   uuid.UUID `json:"area_id"`

	// Date is the local calendar date of the hour, "2006-01-02".
	Date    string       `json:"date"`
	Weekday time.Weekday `json:"weekday"`
	Hour    int          `json:"hour"`

	// Minutes of overlap between the ride interval and this clock hour.
	Minutes  int     `json:"minutes"`
	Earnings float64 `json:"earnings"`
}

// AreaEstimate is one published heatmap cell: average hourly earnings for
// an (area, weekday, hour) bucket. A suppressed estimate keeps its stats
// for diagnostics but is never exported as a displayable value.
type AreaEstimate struct {
	AreaID  uuid.UUID    `json:"area_id"`
	Weekday time.Weekday `json:"weekday"`
	Hour    int          `json:"hour"`

	Mean   float64 `json:"mean"`
	StdErr float64 `json:"std_err"`
	Count  int     `json:"count"`

	// HalfWidth is the confidence interval half-width at the configured
	// level; Suppressed is set when it exceeds the dollar threshold.
	HalfWidth  float64 `json:"half_width"`
	Suppressed bool    `json:"suppressed"`
}

// RunReport counts what each stage loaded, dropped, and produced in one run.
type RunReport struct {
	RunID      uuid.UUID `json:"run_id"`
	Mode       string    `json:"mode"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	JobsLoaded  int `json:"jobs_loaded"`
	AreasLoaded int `json:"areas_loaded"`

	// Geocoder outcomes, counted per job over the pickup coordinate.
	PickupNoMatch   int `json:"pickup_no_match"`
	PickupAmbiguous int `json:"pickup_ambiguous"`

	ZeroDurationJobs int `json:"zero_duration_jobs"`
	RowsApportioned  int `json:"rows_apportioned"`

	OutliersDropped       int `json:"outliers_dropped"`
	DetectorDisagreements int `json:"detector_disagreements"`

	OverDurationDropped int `json:"over_duration_dropped"`
	InvertedDropped     int `json:"inverted_dropped"`
	DuplicatesDropped   int `json:"duplicates_dropped"`
	MultiAreaDropped    int `json:"multi_area_dropped"`

	Estimates  int `json:"estimates"`
	Suppressed int `json:"suppressed"`
}

// AnalysisResult is what one pipeline run produces.
type AnalysisResult struct {
	Estimates []AreaEstimate `json:"estimates"`
	Report    RunReport      `json:"report"`
}
