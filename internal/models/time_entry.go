package models

import (
	"time"
)

// TimeEntry records actual hours logged against an allocation for one ISO
// week, one decimal field per weekday. Each field must be within 0-24.
type TimeEntry struct {
	ID           string    `json:"id"`
	AllocationID string    `json:"allocationId"`
	ResourceID   string    `json:"resourceId"`
	WeekKey      string    `json:"weekKey"`
	Monday       float64   `json:"monday"`
	Tuesday      float64   `json:"tuesday"`
	Wednesday    float64   `json:"wednesday"`
	Thursday     float64   `json:"thursday"`
	Friday       float64   `json:"friday"`
	Saturday     float64   `json:"saturday"`
	Sunday       float64   `json:"sunday"`
	CreateTime   time.Time `json:"createTime"`
	ChangeTime   time.Time `json:"changeTime"`
}

// TotalHours sums the seven weekday fields.
func (e *TimeEntry) TotalHours() float64 {
	return e.Monday + e.Tuesday + e.Wednesday + e.Thursday + e.Friday + e.Saturday + e.Sunday
}

// DayHours lists the weekday fields Monday first.
func (e *TimeEntry) DayHours() []float64 {
	return []float64{e.Monday, e.Tuesday, e.Wednesday, e.Thursday, e.Friday, e.Saturday, e.Sunday}
}

// Validate checks per-day bounds and required references.
func (e *TimeEntry) Validate() bool {
	if e.AllocationID == "" || e.ResourceID == "" || e.WeekKey == "" {
		return false
	}
	for _, h := range e.DayHours() {
		if h < 0 || h > 24 {
			return false
		}
	}
	return true
}
