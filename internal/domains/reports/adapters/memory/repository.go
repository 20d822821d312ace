package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/petstore-e2e/internal/domains/reports/domain"
	"github.com/Apurer/petstore-e2e/internal/domains/reports/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory run report adapter.
type Repository struct {
	mu   sync.RWMutex
	runs map[string]*domain.Run
}

func NewRepository() *Repository {
	return &Repository{runs: map[string]*domain.Run{}}
}

func (r *Repository) Save(_ context.Context, run *domain.Run) error {
	if run == nil {
		return errors.New("run is nil")
	}
	if err := run.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.ID] = run.Clone()
	return nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return run.Clone(), nil
}

func (r *Repository) List(_ context.Context, limit int) ([]*domain.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Run, 0, len(r.runs))
	for _, run := range r.runs {
		list = append(list, run.Clone())
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].StartedAt.After(list[j].StartedAt)
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}
