package models

import (
	"time"
)

// Project statuses.
const (
	ProjectStatusDraft    = "draft"
	ProjectStatusActive   = "active"
	ProjectStatusClosure  = "closure"
	ProjectStatusRejected = "rejected"
)

// Project types.
const (
	ProjectTypeChange   = "change"
	ProjectTypeBusiness = "business"
)

// Project represents a planned piece of work resources are allocated to.
type Project struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	Status         string    `json:"status"`
	Priority       int       `json:"priority"`
	ProjectType    string    `json:"projectType"`
	DirectorID     *string   `json:"directorId,omitempty"`
	ChangeLeadID   *string   `json:"changeLeadId,omitempty"`
	BusinessLeadID *string   `json:"businessLeadId,omitempty"`
	CreateTime     time.Time `json:"createTime"`
	ChangeTime     time.Time `json:"changeTime"`
}

// ValidProjectStatus reports whether s is a known project status.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusDraft, ProjectStatusActive, ProjectStatusClosure, ProjectStatusRejected:
		return true
	}
	return false
}

// ValidProjectType reports whether t is a known project type.
func ValidProjectType(t string) bool {
	return t == ProjectTypeChange || t == ProjectTypeBusiness
}

// IsActive returns true if the project is in the active status.
func (p *Project) IsActive() bool {
	return p.Status == ProjectStatusActive
}
