package ports

import (
	"context"

	"github.com/afyakit/pharmacy-api-server/internal/domains/audit/domain"
)

// Repository is the append-only audit store. Beyond appending, the only
// queries are filter-by-entity-type and filter-by-entity-type-and-id.
type Repository interface {
	Append(ctx context.Context, entry *domain.Entry) error
	// ListByEntity returns entries in the order they were recorded. An empty
	// entityID matches all entries of the type; an empty entityType matches
	// everything.
	ListByEntity(ctx context.Context, entityType domain.EntityType, entityID string) ([]*domain.Entry, error)
}
