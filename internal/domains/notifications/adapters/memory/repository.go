package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/afyakit/pharmacy-api-server/internal/domains/notifications/domain"
	"github.com/afyakit/pharmacy-api-server/internal/domains/notifications/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory append-only notification log.
type Repository struct {
	mu      sync.RWMutex
	records []*domain.Record
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) Append(_ context.Context, record *domain.Record) error {
	if record == nil {
		return errors.New("notification record is nil")
	}
	clone := *record
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, &clone)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Record, 0, len(r.records))
	for _, record := range r.records {
		clone := *record
		list = append(list, &clone)
	}
	return list, nil
}
