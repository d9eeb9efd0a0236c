// internal/adapters/out/memory/activity_repository.go
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"nftminter/internal/domain/activity"
)

// ActivityRepository keeps activities in process memory. Used in local mode and tests.
type ActivityRepository struct {
	mu    sync.RWMutex
	items map[string]activity.Activity
}

var _ activity.RepositoryPort = (*ActivityRepository)(nil)

func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{items: make(map[string]activity.Activity)}
}

// Save upserts by ID.
func (r *ActivityRepository) Save(_ context.Context, a activity.Activity) error {
	id := strings.TrimSpace(a.ID)
	if id == "" {
		return activity.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[id] = a
	return nil
}

func (r *ActivityRepository) GetByID(_ context.Context, id string) (*activity.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[strings.TrimSpace(id)]
	if !ok {
		return nil, activity.ErrNotFound
	}
	return &a, nil
}

func (r *ActivityRepository) List(_ context.Context, filter activity.Filter, limit int) ([]activity.Activity, error) {
	r.mu.RLock()
	out := make([]activity.Activity, 0, len(r.items))
	for _, a := range r.items {
		if filter.Matches(a) {
			out = append(out, a)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
