package ports

import (
	"context"
	"errors"

	"github.com/afyakit/pharmacy-api-server/internal/domains/notifications/domain"
)

var (
	// ErrUnknownTemplate signals a programming error: every caller-visible
	// notification type must have a registered template.
	ErrUnknownTemplate = errors.New("no template registered for notification type")
)

// Repository is the append-only store of notification records.
type Repository interface {
	Append(ctx context.Context, record *domain.Record) error
	List(ctx context.Context) ([]*domain.Record, error)
}

// Deliverer performs the provider round trip for a rendered notification.
// A delivery refusal is returned as an error and recorded as a failed send.
type Deliverer interface {
	Deliver(ctx context.Context, record *domain.Record) error
}

// Dispatcher renders and sends lifecycle notifications.
type Dispatcher interface {
	Send(ctx context.Context, t domain.Type, to string, data map[string]string) (*domain.Record, error)
	History(ctx context.Context) ([]*domain.Record, error)
}
