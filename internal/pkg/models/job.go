package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceType distinguishes rideshare trips from delivery runs; the two
// carry different plausibility ceilings on duration.
type ServiceType string

const (
	ServiceTypeRideshare ServiceType = "rideshare"
	ServiceTypeDelivery  ServiceType = "delivery"
)

// Job is one completed job as read from storage, joined with driver and
// employer reference data. Pipeline stages never mutate a loaded job in
// place; each stage returns a new slice with the derived fields attached.
type Job struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	DriverID     uuid.UUID   `db:"driver_id" json:"driver_id"`
	EmployerID   uuid.UUID   `db:"employer_id" json:"employer_id"`
	EmployerName string      `db:"employer_name" json:"employer_name"`
	ServiceType  ServiceType `db:"service_type" json:"service_type"`

	// Raw timestamps are stored in UTC.
	PickupAt  time.Time `db:"pickup_at" json:"pickup_at"`
	DropoffAt time.Time `db:"dropoff_at" json:"dropoff_at"`

	PickupLon  float64 `db:"pickup_lon" json:"pickup_lon"`
	PickupLat  float64 `db:"pickup_lat" json:"pickup_lat"`
	DropoffLon float64 `db:"dropoff_lon" json:"dropoff_lon"`
	DropoffLat float64 `db:"dropoff_lat" json:"dropoff_lat"`

	BasePay   float64 `db:"base_pay" json:"base_pay"`
	Tip       float64 `db:"tip" json:"tip"`
	Incentive float64 `db:"incentive" json:"incentive"`

	// Timezone is the driver's home IANA timezone, joined from the
	// drivers table. Local clock fields are derived from it.
	Timezone string `db:"timezone" json:"timezone"`

	// Derived by the geocoder.
	PickupArea  AreaMatch `db:"-" json:"pickup_area"`
	DropoffArea AreaMatch `db:"-" json:"dropoff_area"`

	// Derived by the temporal normalizer.
	PickupLocal   time.Time `db:"-" json:"pickup_local"`
	DropoffLocal  time.Time `db:"-" json:"dropoff_local"`
	TotalEarnings float64   `db:"-" json:"total_earnings"`
}

// Duration returns the raw ride duration. Negative for inverted timestamps.
func (j Job) Duration() time.Duration {
	return j.DropoffAt.Sub(j.PickupAt)
}

// TouchedAreaIDs returns the distinct area ids the job's endpoints may
// belong to. Ambiguous matches contribute every candidate, which is what
// lets the error filter catch jobs smeared across too many areas.
func (j Job) TouchedAreaIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, m := range []AreaMatch{j.PickupArea, j.DropoffArea} {
		for _, id := range m.areaIDs() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
