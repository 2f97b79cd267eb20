package service

import (
	"context"
	"time"

	"github.com/resourcio/resourcio/internal/models"
	"github.com/resourcio/resourcio/internal/planning"
	"github.com/resourcio/resourcio/internal/repository"
)

// PlanningService produces utilization reports and dashboard figures by
// fanning out to the repositories and handing the rows to the engine.
type PlanningService struct {
	resources   repository.ResourceRepository
	projects    repository.ProjectRepository
	allocations repository.AllocationRepository
	engine      *planning.Engine
}

// NewPlanningService wires the report service over a store.
func NewPlanningService(store *repository.Store, engine *planning.Engine) *PlanningService {
	return &PlanningService{
		resources:   store.Resources,
		projects:    store.Projects,
		allocations: store.Allocations,
		engine:      engine,
	}
}

// UtilizationReport computes per-resource utilization over the inclusive
// window [start, end]. Allocations only partially inside the window
// count in full.
func (s *PlanningService) UtilizationReport(ctx context.Context, start, end time.Time) (*planning.Summary, error) {
	resources, allocations, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	allocations = planning.FilterOverlapping(allocations, start, end)
	return s.engine.Summarize(resources, allocations, ""), nil
}

// WeekReport computes utilization for a single ISO week, applying
// per-week allocation overrides.
func (s *PlanningService) WeekReport(ctx context.Context, weekKey string) (*planning.Summary, error) {
	if _, _, err := planning.ParseWeekKey(weekKey); err != nil {
		return nil, err
	}
	resources, allocations, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.Summarize(resources, allocations, weekKey), nil
}

// DashboardSummary is the landing-page aggregate.
type DashboardSummary struct {
	Week            string `json:"week"`
	ActiveProjects  int    `json:"activeProjects"`
	ActiveResources int    `json:"activeResources"`
	Conflicts       int    `json:"conflicts"`
	Available       int    `json:"available"`
}

// Dashboard computes the summary counts for the current ISO week.
func (s *PlanningService) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	week := planning.WeekKey(time.Now().UTC())

	resources, allocations, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	summary := s.engine.Summarize(resources, allocations, week)

	out := &DashboardSummary{
		Week:      week,
		Conflicts: summary.Conflicts,
		Available: summary.Available,
	}
	for _, p := range projects {
		if p.IsActive() {
			out.ActiveProjects++
		}
	}
	for _, r := range resources {
		if r.IsActive() {
			out.ActiveResources++
		}
	}
	return out, nil
}

func (s *PlanningService) load(ctx context.Context) ([]*models.Resource, []*models.Allocation, error) {
	resources, err := s.resources.ListResources(ctx, false)
	if err != nil {
		return nil, nil, err
	}
	allocations, err := s.allocations.ListAllocations(ctx)
	if err != nil {
		return nil, nil, err
	}
	return resources, allocations, nil
}
