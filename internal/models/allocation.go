package models

import (
	"time"
)

// Allocation statuses.
const (
	AllocationStatusActive    = "active"
	AllocationStatusPlanned   = "planned"
	AllocationStatusCompleted = "completed"
)

// Allocation commits a resource's hours to a project over a date range.
// WeeklyAllocations optionally overrides AllocatedHours for specific ISO
// weeks, keyed "2025-W34". Invariant: StartDate <= EndDate.
type Allocation struct {
	ID                string             `json:"id"`
	ResourceID        string             `json:"resourceId"`
	ProjectID         string             `json:"projectId"`
	AllocatedHours    float64            `json:"allocatedHours"`
	StartDate         time.Time          `json:"startDate"`
	EndDate           time.Time          `json:"endDate"`
	Status            string             `json:"status"`
	WeeklyAllocations map[string]float64 `json:"weeklyAllocations,omitempty"`
	CreateTime        time.Time          `json:"createTime"`
	ChangeTime        time.Time          `json:"changeTime"`
}

// ValidAllocationStatus reports whether s is a known allocation status.
func ValidAllocationStatus(s string) bool {
	switch s {
	case AllocationStatusActive, AllocationStatusPlanned, AllocationStatusCompleted:
		return true
	}
	return false
}

// IsValid returns true if the allocation has the fields the planning
// engine needs. Invalid allocations are skipped, not fatal.
func (a *Allocation) IsValid() bool {
	return a.ID != "" && a.ResourceID != "" && !a.EndDate.Before(a.StartDate)
}

// IsActive returns true if the allocation counts toward utilization.
func (a *Allocation) IsActive() bool {
	return a.Status == AllocationStatusActive
}

// Overlaps reports whether the allocation's date range intersects the
// given window. Any overlap counts in full.
func (a *Allocation) Overlaps(start, end time.Time) bool {
	return !a.StartDate.After(end) && !a.EndDate.Before(start)
}
