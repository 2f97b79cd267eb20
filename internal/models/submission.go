package models

import (
	"time"
)

// Weekly submission statuses.
const (
	SubmissionStatusDraft     = "draft"
	SubmissionStatusSubmitted = "submitted"
)

// WeeklySubmission tracks the sign-off state of one resource's week.
// Time entries for a week are editable only while its submission is in
// draft; unsubmitting reopens the week for corrections.
type WeeklySubmission struct {
	ID          string     `json:"id"`
	ResourceID  string     `json:"resourceId"`
	WeekKey     string     `json:"weekKey"`
	Status      string     `json:"status"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	TotalHours  float64    `json:"totalHours"`
	CreateTime  time.Time  `json:"createTime"`
	ChangeTime  time.Time  `json:"changeTime"`
}

// IsSubmitted returns true if the week has been signed off.
func (s *WeeklySubmission) IsSubmitted() bool {
	return s.Status == SubmissionStatusSubmitted
}

// IsEditable returns true if time entries for this week may be changed.
func (s *WeeklySubmission) IsEditable() bool {
	return s == nil || s.Status == SubmissionStatusDraft
}
