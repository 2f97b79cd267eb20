// Package planning implements the allocation and utilization engine.
// All computations are pure functions over already-fetched records; the
// engine holds only configuration (thresholds and the non-project
// overhead), never request state.
package planning

import (
	"math"
	"time"

	"github.com/resourcio/resourcio/internal/models"
)

// DefaultNonProjectHours is the standard weekly allowance for meetings,
// admin and other non-project work, subtracted from capacity.
const DefaultNonProjectHours = 8.0

// Category buckets a utilization percentage.
type Category string

const (
	CategoryUnderUtilized Category = "under_utilized"
	CategoryOptimal       Category = "optimal"
	CategoryWarning       Category = "warning"
	CategoryError         Category = "error"
	CategoryCritical      Category = "critical"
)

// Thresholds configures the utilization bands, as percentages. Each band
// is inclusive on its lower bound: optimal [OptimalMin, Warning),
// warning [Warning, Error), error [Error, Critical), critical >= Critical.
// Below OptimalMin is under-utilized.
type Thresholds struct {
	OptimalMin float64 `json:"optimalMin" mapstructure:"optimal_min"`
	OptimalMax float64 `json:"optimalMax" mapstructure:"optimal_max"`
	Warning    float64 `json:"warning" mapstructure:"warning"`
	Error      float64 `json:"error" mapstructure:"error"`
	Critical   float64 `json:"critical" mapstructure:"critical"`
}

// DefaultThresholds returns the canonical band configuration.
func DefaultThresholds() Thresholds {
	return Thresholds{
		OptimalMin: 50,
		OptimalMax: 90,
		Warning:    90,
		Error:      100,
		Critical:   120,
	}
}

// ResourceUtilization is the per-resource engine output.
type ResourceUtilization struct {
	ResourceID            string   `json:"resourceId"`
	ResourceName          string   `json:"resourceName"`
	TotalAllocatedHours   float64  `json:"totalAllocatedHours"`
	EffectiveCapacity     float64  `json:"effectiveCapacity"`
	UtilizationPercentage float64  `json:"utilizationPercentage"`
	Category              Category `json:"category"`
}

// Summary aggregates engine output across resources.
type Summary struct {
	Resources []ResourceUtilization `json:"resources"`
	Conflicts int                   `json:"conflicts"`
	Available int                   `json:"available"`
}

// Engine computes utilization figures against configured thresholds.
type Engine struct {
	nonProjectHours float64
	thresholds      Thresholds
}

// Option configures the engine.
type Option func(*Engine)

// WithThresholds overrides the default utilization bands.
func WithThresholds(t Thresholds) Option {
	return func(e *Engine) { e.thresholds = t }
}

// WithNonProjectHours overrides the weekly non-project allowance.
func WithNonProjectHours(h float64) Option {
	return func(e *Engine) { e.nonProjectHours = h }
}

// NewEngine creates an engine with the canonical defaults.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		nonProjectHours: DefaultNonProjectHours,
		thresholds:      DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Thresholds returns the configured utilization bands.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// sanitize maps NaN, infinities and negatives to 0 so that malformed
// numeric fields never propagate into a response.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// FilterOverlapping keeps allocations whose date range intersects the
// inclusive window [start, end]. Partial overlap counts in full.
// Allocations failing basic shape validation are dropped.
func FilterOverlapping(allocations []*models.Allocation, start, end time.Time) []*models.Allocation {
	var out []*models.Allocation
	for _, a := range allocations {
		if a == nil || !a.IsValid() {
			continue
		}
		if a.Overlaps(start, end) {
			out = append(out, a)
		}
	}
	return out
}

// WeeklyHoursFor resolves the hours an allocation commits for a specific
// ISO week: the per-week override when present, otherwise the flat
// weekly figure.
func WeeklyHoursFor(a *models.Allocation, weekKey string) float64 {
	if a == nil {
		return 0
	}
	if a.WeeklyAllocations != nil {
		if h, ok := a.WeeklyAllocations[weekKey]; ok {
			return sanitize(h)
		}
	}
	return sanitize(a.AllocatedHours)
}

// EffectiveCapacity is the resource's weekly capacity minus the
// non-project allowance, floored at zero.
func (e *Engine) EffectiveCapacity(r *models.Resource) float64 {
	if r == nil {
		return 0
	}
	capacity := sanitize(r.WeeklyCapacity) - e.nonProjectHours
	if capacity < 0 {
		return 0
	}
	return capacity
}

// Utilization computes the resource's utilization percentage over its
// active allocations. Zero capacity yields 0, never NaN or Inf.
func (e *Engine) Utilization(r *models.Resource, allocations []*models.Allocation) float64 {
	capacity := e.EffectiveCapacity(r)
	if capacity == 0 {
		return 0
	}
	return e.allocatedHours(r, allocations, "") / capacity * 100
}

// WeekUtilization is Utilization with per-week overrides applied.
func (e *Engine) WeekUtilization(r *models.Resource, allocations []*models.Allocation, weekKey string) float64 {
	capacity := e.EffectiveCapacity(r)
	if capacity == 0 {
		return 0
	}
	return e.allocatedHours(r, allocations, weekKey) / capacity * 100
}

// allocatedHours sums hours of the resource's active allocations,
// resolving the weekly override when a week key is given.
func (e *Engine) allocatedHours(r *models.Resource, allocations []*models.Allocation, weekKey string) float64 {
	var total float64
	for _, a := range allocations {
		if a == nil || !a.IsValid() || !a.IsActive() {
			continue
		}
		if a.ResourceID != r.ID {
			continue
		}
		if weekKey != "" {
			total += WeeklyHoursFor(a, weekKey)
		} else {
			total += sanitize(a.AllocatedHours)
		}
	}
	return total
}

// Categorize buckets a utilization percentage into its band.
func (e *Engine) Categorize(percent float64) Category {
	t := e.thresholds
	switch {
	case percent >= t.Critical:
		return CategoryCritical
	case percent >= t.Error:
		return CategoryError
	case percent >= t.Warning:
		return CategoryWarning
	case percent >= t.OptimalMin:
		return CategoryOptimal
	default:
		return CategoryUnderUtilized
	}
}

// Summarize computes per-resource utilization records plus conflict and
// availability counts. A week key applies per-week overrides and limits
// allocations to those overlapping that week; empty weekKey uses flat
// weekly hours over all supplied allocations. Resources failing shape
// validation are dropped from the aggregate rather than aborting it.
func (e *Engine) Summarize(resources []*models.Resource, allocations []*models.Allocation, weekKey string) *Summary {
	if weekKey != "" {
		if start, end, err := WeekBounds(weekKey); err == nil {
			allocations = FilterOverlapping(allocations, start, end)
		}
	}

	summary := &Summary{Resources: []ResourceUtilization{}}
	for _, r := range resources {
		if r == nil || !r.IsValid() {
			continue
		}

		hours := e.allocatedHours(r, allocations, weekKey)
		capacity := e.EffectiveCapacity(r)
		percent := 0.0
		if capacity > 0 {
			percent = hours / capacity * 100
		}

		summary.Resources = append(summary.Resources, ResourceUtilization{
			ResourceID:            r.ID,
			ResourceName:          r.Name,
			TotalAllocatedHours:   hours,
			EffectiveCapacity:     capacity,
			UtilizationPercentage: percent,
			Category:              e.Categorize(percent),
		})

		if r.IsActive() {
			if percent > 100 {
				summary.Conflicts++
			} else if percent < 100 {
				summary.Available++
			}
		}
	}
	return summary
}

// ConflictCount counts active resources allocated beyond 100%.
func (e *Engine) ConflictCount(resources []*models.Resource, allocations []*models.Allocation) int {
	count := 0
	for _, r := range resources {
		if r == nil || !r.IsValid() || !r.IsActive() {
			continue
		}
		if e.Utilization(r, allocations) > 100 {
			count++
		}
	}
	return count
}

// AvailableCount counts active resources allocated below 100%.
func (e *Engine) AvailableCount(resources []*models.Resource, allocations []*models.Allocation) int {
	count := 0
	for _, r := range resources {
		if r == nil || !r.IsValid() || !r.IsActive() {
			continue
		}
		if e.Utilization(r, allocations) < 100 {
			count++
		}
	}
	return count
}
