package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/afyakit/pharmacy-api-server/internal/domains/audit/domain"
	"github.com/afyakit/pharmacy-api-server/internal/domains/audit/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory append-only audit log.
type Repository struct {
	mu      sync.RWMutex
	entries []*domain.Entry
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) Append(_ context.Context, entry *domain.Entry) error {
	if entry == nil {
		return errors.New("audit entry is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry.Clone())
	return nil
}

func (r *Repository) ListByEntity(_ context.Context, entityType domain.EntityType, entityID string) ([]*domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Entry
	for _, entry := range r.entries {
		if entityType != "" && entry.EntityType != entityType {
			continue
		}
		if entityID != "" && entry.EntityID != entityID {
			continue
		}
		list = append(list, entry.Clone())
	}
	return list, nil
}
