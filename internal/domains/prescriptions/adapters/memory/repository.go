package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/domain"
	"github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory prescription persistence adapter.
type Repository struct {
	mu    sync.RWMutex
	files map[string]*domain.File
}

func NewRepository() *Repository {
	return &Repository{files: map[string]*domain.File{}}
}

func (r *Repository) Save(_ context.Context, file *domain.File) (*domain.File, error) {
	if file == nil {
		return nil, errors.New("prescription file is nil")
	}
	clone := file.Clone()
	r.mu.Lock()
	r.files[clone.ID] = clone
	r.mu.Unlock()
	return clone.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	file, ok := r.files[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return file.Clone(), nil
}

func (r *Repository) ListByOrder(_ context.Context, orderID string) ([]*domain.File, error) {
	return r.filter(func(f *domain.File) bool { return f.OrderID == orderID })
}

func (r *Repository) ListPending(_ context.Context) ([]*domain.File, error) {
	return r.filter(func(f *domain.File) bool { return f.Status == domain.StatusPending })
}

func (r *Repository) filter(keep func(*domain.File) bool) ([]*domain.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.File
	for _, file := range r.files {
		if keep(file) {
			list = append(list, file.Clone())
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].UploadedAt.Before(list[j].UploadedAt)
	})
	return list, nil
}
