package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/resourcio/resourcio/internal/models"
)

// MemoryStore is an in-memory implementation of every repository
// interface, selected by the "memory" database driver. It backs demos
// and handler tests; unlike the mock arrays it replaces, it is injected
// like any other Store and holds its own lock, never package state.
type MemoryStore struct {
	mu sync.RWMutex

	resources   map[string]*models.Resource
	projects    map[string]*models.Project
	allocations map[string]*models.Allocation
	timeEntries map[string]*models.TimeEntry       // keyed allocationID|weekKey
	submissions map[string]*models.WeeklySubmission // keyed resourceID|weekKey
	users       map[string]*models.User
}

// NewMemoryStore creates an empty in-memory store wired as a *Store.
func NewMemoryStore() (*Store, *MemoryStore) {
	m := &MemoryStore{
		resources:   make(map[string]*models.Resource),
		projects:    make(map[string]*models.Project),
		allocations: make(map[string]*models.Allocation),
		timeEntries: make(map[string]*models.TimeEntry),
		submissions: make(map[string]*models.WeeklySubmission),
		users:       make(map[string]*models.User),
	}
	return &Store{
		Resources:   m,
		Projects:    m,
		Allocations: m,
		TimeEntries: m,
		Submissions: m,
		Users:       m,
	}, m
}

func entryKey(a, b string) string { return a + "|" + b }

// --- ResourceRepository ---

func (m *MemoryStore) CreateResource(_ context.Context, r *models.Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.resources {
		if strings.EqualFold(existing.Email, r.Email) && !existing.Deleted {
			return ErrDuplicate
		}
	}
	cp := *r
	cp.CreateTime = now()
	cp.ChangeTime = cp.CreateTime
	m.resources[r.ID] = &cp
	return nil
}

func (m *MemoryStore) GetResource(_ context.Context, id string) (*models.Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.resources[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *MemoryStore) GetResourceByEmail(_ context.Context, email string) (*models.Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.resources {
		if strings.EqualFold(r.Email, email) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UpdateResource(_ context.Context, r *models.Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.resources[r.ID]
	if !ok || existing.Deleted {
		return ErrNotFound
	}
	cp := *r
	cp.CreateTime = existing.CreateTime
	cp.ChangeTime = now()
	m.resources[r.ID] = &cp
	return nil
}

func (m *MemoryStore) SoftDeleteResource(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resources[id]
	if !ok || r.Deleted {
		return ErrNotFound
	}
	r.Deleted = true
	r.Active = false
	r.ChangeTime = now()
	return nil
}

func (m *MemoryStore) ListResources(_ context.Context, includeDeleted bool) ([]*models.Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.Resource
	for _, r := range m.resources {
		if r.Deleted && !includeDeleted {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// --- ProjectRepository ---

func (m *MemoryStore) CreateProject(_ context.Context, p *models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	cp.CreateTime = now()
	cp.ChangeTime = cp.CreateTime
	m.projects[p.ID] = &cp
	return nil
}

func (m *MemoryStore) GetProject(_ context.Context, id string) (*models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryStore) UpdateProject(_ context.Context, p *models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.projects[p.ID]
	if !ok {
		return ErrNotFound
	}
	cp := *p
	cp.CreateTime = existing.CreateTime
	cp.ChangeTime = now()
	m.projects[p.ID] = &cp
	return nil
}

func (m *MemoryStore) DeleteProject(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[id]; !ok {
		return ErrNotFound
	}
	delete(m.projects, id)
	return nil
}

func (m *MemoryStore) ListProjects(_ context.Context) ([]*models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.Project
	for _, p := range m.projects {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// --- AllocationRepository ---

func (m *MemoryStore) CreateAllocation(_ context.Context, a *models.Allocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := copyAllocation(a)
	cp.CreateTime = now()
	cp.ChangeTime = cp.CreateTime
	m.allocations[a.ID] = cp
	return nil
}

func (m *MemoryStore) GetAllocation(_ context.Context, id string) (*models.Allocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.allocations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyAllocation(a), nil
}

func (m *MemoryStore) UpdateAllocation(_ context.Context, a *models.Allocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.allocations[a.ID]
	if !ok {
		return ErrNotFound
	}
	cp := copyAllocation(a)
	cp.CreateTime = existing.CreateTime
	cp.ChangeTime = now()
	m.allocations[a.ID] = cp
	return nil
}

func (m *MemoryStore) DeleteAllocation(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.allocations[id]; !ok {
		return ErrNotFound
	}
	delete(m.allocations, id)
	return nil
}

func (m *MemoryStore) ListAllocations(_ context.Context) ([]*models.Allocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.Allocation
	for _, a := range m.allocations {
		out = append(out, copyAllocation(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (m *MemoryStore) ListAllocationsByResource(_ context.Context, resourceID string) ([]*models.Allocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.Allocation
	for _, a := range m.allocations {
		if a.ResourceID == resourceID {
			out = append(out, copyAllocation(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (m *MemoryStore) CountActiveAllocationsByResource(_ context.Context, resourceID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, a := range m.allocations {
		if a.ResourceID == resourceID && a.Status == models.AllocationStatusActive {
			count++
		}
	}
	return count, nil
}

func copyAllocation(a *models.Allocation) *models.Allocation {
	cp := *a
	if a.WeeklyAllocations != nil {
		cp.WeeklyAllocations = make(map[string]float64, len(a.WeeklyAllocations))
		for k, v := range a.WeeklyAllocations {
			cp.WeeklyAllocations[k] = v
		}
	}
	return &cp
}

// --- TimeEntryRepository ---

func (m *MemoryStore) UpsertTimeEntry(_ context.Context, e *models.TimeEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := entryKey(e.AllocationID, e.WeekKey)
	cp := *e
	cp.ChangeTime = now()
	if existing, ok := m.timeEntries[key]; ok {
		cp.ID = existing.ID
		cp.CreateTime = existing.CreateTime
	} else if cp.CreateTime.IsZero() {
		cp.CreateTime = cp.ChangeTime
	}
	m.timeEntries[key] = &cp
	return nil
}

func (m *MemoryStore) GetTimeEntry(_ context.Context, allocationID, weekKey string) (*models.TimeEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.timeEntries[entryKey(allocationID, weekKey)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *MemoryStore) ListTimeEntriesByResourceWeek(_ context.Context, resourceID, weekKey string) ([]*models.TimeEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.TimeEntry
	for _, e := range m.timeEntries {
		if e.ResourceID == resourceID && e.WeekKey == weekKey {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AllocationID < out[j].AllocationID })
	return out, nil
}

// --- SubmissionRepository ---

func (m *MemoryStore) GetSubmission(_ context.Context, resourceID, weekKey string) (*models.WeeklySubmission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.submissions[entryKey(resourceID, weekKey)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *MemoryStore) SaveSubmission(_ context.Context, s *models.WeeklySubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := entryKey(s.ResourceID, s.WeekKey)
	cp := *s
	cp.ChangeTime = now()
	if existing, ok := m.submissions[key]; ok {
		cp.ID = existing.ID
		cp.CreateTime = existing.CreateTime
	} else if cp.CreateTime.IsZero() {
		cp.CreateTime = cp.ChangeTime
	}
	m.submissions[key] = &cp
	return nil
}

func (m *MemoryStore) ListSubmissionsByWeek(_ context.Context, weekKey string) ([]*models.WeeklySubmission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.WeeklySubmission
	for _, s := range m.submissions {
		if s.WeekKey == weekKey {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ResourceID < out[j].ResourceID })
	return out, nil
}

func (m *MemoryStore) ListSubmissionsByResource(_ context.Context, resourceID string) ([]*models.WeeklySubmission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.WeeklySubmission
	for _, s := range m.submissions {
		if s.ResourceID == resourceID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekKey > out[j].WeekKey })
	return out, nil
}

// --- UserRepository ---

func (m *MemoryStore) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrDuplicate
		}
	}
	cp := copyUser(u)
	cp.CreateTime = now()
	cp.ChangeTime = cp.CreateTime
	m.users[u.ID] = cp
	return nil
}

func (m *MemoryStore) GetUser(_ context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (m *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListUsers(_ context.Context) ([]*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.User
	for _, u := range m.users {
		out = append(out, copyUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (m *MemoryStore) SetUserRoles(_ context.Context, userID string, roles []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.Roles = append([]string(nil), roles...)
	u.ChangeTime = now()
	return nil
}

func copyUser(u *models.User) *models.User {
	cp := *u
	cp.Roles = append([]string(nil), u.Roles...)
	return &cp
}
