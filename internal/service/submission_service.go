package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/resourcio/resourcio/internal/models"
	"github.com/resourcio/resourcio/internal/planning"
	"github.com/resourcio/resourcio/internal/repository"
)

// Submission workflow errors, mapped to API error codes by the handlers.
var (
	ErrWeekLocked       = errors.New("week is submitted and locked")
	ErrAlreadySubmitted = errors.New("week is already submitted")
	ErrNotSubmitted     = errors.New("week is not submitted")
	ErrGracePeriodOver  = errors.New("unsubmit grace period has passed")
	ErrInvalidEntry     = errors.New("invalid time entry")
)

// SubmissionService owns the weekly workflow: time entry writes, the
// draft to submitted transition, and the grace-period unsubmit. All time
// entry mutation goes through here so the week lock cannot be bypassed.
type SubmissionService struct {
	submissions repository.SubmissionRepository
	timeEntries repository.TimeEntryRepository
	allocations repository.AllocationRepository
	resources   repository.ResourceRepository
	grace       time.Duration

	// nowFn is swapped in tests to pin the grace-period clock.
	nowFn func() time.Time
}

// NewSubmissionService wires the workflow service over a store.
func NewSubmissionService(store *repository.Store, grace time.Duration) *SubmissionService {
	return &SubmissionService{
		submissions: store.Submissions,
		timeEntries: store.TimeEntries,
		allocations: store.Allocations,
		resources:   store.Resources,
		grace:       grace,
		nowFn:       func() time.Time { return time.Now().UTC() },
	}
}

// WeekEditable returns nil when the resource's week accepts time entry
// writes. A missing submission row counts as an open draft.
func (s *SubmissionService) WeekEditable(ctx context.Context, resourceID, weekKey string) error {
	sub, err := s.submissions.GetSubmission(ctx, resourceID, weekKey)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !sub.IsEditable() {
		return ErrWeekLocked
	}
	return nil
}

// SaveTimeEntry validates and upserts one (allocation, week) entry,
// rejecting writes into locked weeks and entries against foreign
// allocations.
func (s *SubmissionService) SaveTimeEntry(ctx context.Context, e *models.TimeEntry) error {
	if !e.Validate() {
		return ErrInvalidEntry
	}
	if _, _, err := planning.ParseWeekKey(e.WeekKey); err != nil {
		return ErrInvalidEntry
	}

	alloc, err := s.allocations.GetAllocation(ctx, e.AllocationID)
	if err != nil {
		return err
	}
	if alloc.ResourceID != e.ResourceID {
		return ErrInvalidEntry
	}

	if err := s.WeekEditable(ctx, e.ResourceID, e.WeekKey); err != nil {
		return err
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return s.timeEntries.UpsertTimeEntry(ctx, e)
}

// WeekEntries lists a resource's entries for one week.
func (s *SubmissionService) WeekEntries(ctx context.Context, resourceID, weekKey string) ([]*models.TimeEntry, error) {
	return s.timeEntries.ListTimeEntriesByResourceWeek(ctx, resourceID, weekKey)
}

// Submit transitions a resource's week from draft to submitted and
// freezes its total hours.
func (s *SubmissionService) Submit(ctx context.Context, resourceID, weekKey string) (*models.WeeklySubmission, error) {
	if _, _, err := planning.ParseWeekKey(weekKey); err != nil {
		return nil, err
	}

	sub, err := s.submissions.GetSubmission(ctx, resourceID, weekKey)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if sub != nil && sub.IsSubmitted() {
		return nil, ErrAlreadySubmitted
	}
	if sub == nil {
		sub = &models.WeeklySubmission{
			ID:         uuid.NewString(),
			ResourceID: resourceID,
			WeekKey:    weekKey,
		}
	}

	entries, err := s.timeEntries.ListTimeEntriesByResourceWeek(ctx, resourceID, weekKey)
	if err != nil {
		return nil, err
	}
	total := 0.0
	for _, e := range entries {
		total += e.TotalHours()
	}

	now := s.nowFn()
	sub.Status = models.SubmissionStatusSubmitted
	sub.SubmittedAt = &now
	sub.TotalHours = total

	if err := s.submissions.SaveSubmission(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Unsubmit reopens a submitted week for corrections, allowed only while
// the grace period since submission has not elapsed.
func (s *SubmissionService) Unsubmit(ctx context.Context, resourceID, weekKey string) (*models.WeeklySubmission, error) {
	sub, err := s.submissions.GetSubmission(ctx, resourceID, weekKey)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotSubmitted
	}
	if err != nil {
		return nil, err
	}
	if !sub.IsSubmitted() {
		return nil, ErrNotSubmitted
	}
	if sub.SubmittedAt != nil && s.nowFn().Sub(*sub.SubmittedAt) > s.grace {
		return nil, ErrGracePeriodOver
	}

	sub.Status = models.SubmissionStatusDraft
	sub.SubmittedAt = nil

	if err := s.submissions.SaveSubmission(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Status returns the submission row for (resource, week); a missing row
// comes back as a synthesized draft.
func (s *SubmissionService) Status(ctx context.Context, resourceID, weekKey string) (*models.WeeklySubmission, error) {
	sub, err := s.submissions.GetSubmission(ctx, resourceID, weekKey)
	if errors.Is(err, repository.ErrNotFound) {
		return &models.WeeklySubmission{
			ResourceID: resourceID,
			WeekKey:    weekKey,
			Status:     models.SubmissionStatusDraft,
		}, nil
	}
	return sub, err
}

// Overview pairs every active resource with its submission state for a
// week, for the controller's overview screen.
type SubmissionOverview struct {
	Resource   *models.Resource         `json:"resource"`
	Submission *models.WeeklySubmission `json:"submission,omitempty"`
	Submitted  bool                     `json:"submitted"`
}

// Overview lists submission state for all active resources in a week.
func (s *SubmissionService) Overview(ctx context.Context, weekKey string) ([]SubmissionOverview, error) {
	if _, _, err := planning.ParseWeekKey(weekKey); err != nil {
		return nil, err
	}

	resources, err := s.resources.ListResources(ctx, false)
	if err != nil {
		return nil, err
	}
	subs, err := s.submissions.ListSubmissionsByWeek(ctx, weekKey)
	if err != nil {
		return nil, err
	}
	byResource := make(map[string]*models.WeeklySubmission, len(subs))
	for _, sub := range subs {
		byResource[sub.ResourceID] = sub
	}

	out := make([]SubmissionOverview, 0, len(resources))
	for _, r := range resources {
		if !r.IsActive() {
			continue
		}
		sub := byResource[r.ID]
		out = append(out, SubmissionOverview{
			Resource:   r,
			Submission: sub,
			Submitted:  sub != nil && sub.IsSubmitted(),
		})
	}
	return out, nil
}

// PendingForWeek lists active resources that have not submitted the
// week, for the reminder job.
func (s *SubmissionService) PendingForWeek(ctx context.Context, weekKey string) ([]*models.Resource, error) {
	overview, err := s.Overview(ctx, weekKey)
	if err != nil {
		return nil, err
	}
	var pending []*models.Resource
	for _, row := range overview {
		if !row.Submitted {
			pending = append(pending, row.Resource)
		}
	}
	return pending, nil
}

// LockWeek force-submits every remaining draft for the week. Run by the
// scheduler on Monday against the week that just ended.
func (s *SubmissionService) LockWeek(ctx context.Context, weekKey string) (int, error) {
	pending, err := s.PendingForWeek(ctx, weekKey)
	if err != nil {
		return 0, err
	}
	locked := 0
	for _, r := range pending {
		if _, err := s.Submit(ctx, r.ID, weekKey); err != nil {
			if errors.Is(err, ErrAlreadySubmitted) {
				continue
			}
			return locked, err
		}
		locked++
	}
	return locked, nil
}
