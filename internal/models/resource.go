package models

import (
	"time"
)

// Resource represents a person who can be allocated to projects.
type Resource struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Department     *string   `json:"department,omitempty"`
	WeeklyCapacity float64   `json:"weeklyCapacity"`
	Active         bool      `json:"active"`
	Deleted        bool      `json:"deleted"`
	CreateTime     time.Time `json:"createTime"`
	ChangeTime     time.Time `json:"changeTime"`
}

// Weekly capacity bounds enforced on create/update.
const (
	MinWeeklyCapacity = 1.0
	MaxWeeklyCapacity = 60.0
)

// IsValid returns true if the resource has the fields the planning
// engine needs. Invalid resources are skipped in aggregates, not fatal.
func (r *Resource) IsValid() bool {
	return r.ID != "" && r.Name != "" && !r.Deleted
}

// IsActive returns true if the resource counts toward utilization summaries.
func (r *Resource) IsActive() bool {
	return r.Active && !r.Deleted
}
