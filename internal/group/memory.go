package group

import (
	"context"
	"sync"
)

// MemoryRepository keeps groups in process memory. Used by tests and when
// the service runs without a database.
type MemoryRepository struct {
	mu     sync.RWMutex
	groups map[string]*Group
}

// NewMemoryRepository creates an empty in-memory group repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{groups: make(map[string]*Group)}
}

// Create inserts a new group.
func (r *MemoryRepository) Create(ctx context.Context, g *Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *g
	r.groups[g.ID] = &stored
	return nil
}

// GetByID retrieves a group by its ID; returns (nil, nil) when absent.
func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if g, ok := r.groups[id]; ok {
		copied := *g
		return &copied, nil
	}
	return nil, nil
}

// GetByCode retrieves a group by its join code; returns (nil, nil) when absent.
func (r *MemoryRepository) GetByCode(ctx context.Context, code string) (*Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, g := range r.groups {
		if g.Code == code {
			copied := *g
			return &copied, nil
		}
	}
	return nil, nil
}

// ListByMember retrieves every group the participant belongs to.
func (r *MemoryRepository) ListByMember(ctx context.Context, member string) ([]*Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var groups []*Group
	for _, g := range r.groups {
		if g.HasMember(member) {
			copied := *g
			groups = append(groups, &copied)
		}
	}
	return groups, nil
}

// UpdateMembers replaces the group's member list.
func (r *MemoryRepository) UpdateMembers(ctx context.Context, id string, members []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.groups[id]; ok {
		g.Members = append([]string(nil), members...)
	}
	return nil
}
