package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/afyakit/pharmacy-api-server/internal/domains/notifications/domain"
	"github.com/afyakit/pharmacy-api-server/internal/domains/notifications/ports"
	platformmetrics "github.com/afyakit/pharmacy-api-server/internal/platform/metrics"
)

var _ ports.Dispatcher = (*Dispatcher)(nil)

// Dispatcher renders templated lifecycle email and records delivery outcome.
// Sends fail softly: a refused delivery is persisted as a failed record and
// reported as a nil error so primary state changes are never rolled back by
// notification trouble.
type Dispatcher struct {
	repo      ports.Repository
	deliverer ports.Deliverer
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Dispatcher)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// NewDispatcher wires the dispatcher with its store and delivery channel.
func NewDispatcher(repo ports.Repository, deliverer ports.Deliverer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		repo:      repo,
		deliverer: deliverer,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Send renders the template for t, substitutes {placeholder} values from
// data into subject and body, attempts delivery, and appends the record.
// An unknown type is a programming error and returns ErrUnknownTemplate
// before anything is recorded.
func (d *Dispatcher) Send(ctx context.Context, t domain.Type, to string, data map[string]string) (*domain.Record, error) {
	template, ok := templates[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ports.ErrUnknownTemplate, t)
	}

	subject := template.Subject
	content := template.HTMLContent
	for key, value := range data {
		placeholder := "{" + key + "}"
		subject = strings.ReplaceAll(subject, placeholder, value)
		content = strings.ReplaceAll(content, placeholder, value)
	}

	record := &domain.Record{
		ID:      "EMAIL-" + uuid.NewString(),
		To:      to,
		Subject: subject,
		Content: content,
		Type:    t,
		OrderID: data["orderId"],
		SentAt:  d.now().UTC(),
		Status:  domain.StatusSent,
	}
	if err := d.deliverer.Deliver(ctx, record); err != nil {
		record.Status = domain.StatusFailed
		d.logger.Warn("notification delivery failed",
			slog.String("notification.id", record.ID),
			slog.String("notification.type", string(t)),
			slog.String("error", err.Error()))
	}
	platformmetrics.NotificationsSentTotal.WithLabelValues(string(t), string(record.Status)).Inc()

	if err := d.repo.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("append notification record: %w", err)
	}
	return record, nil
}

// History returns all recorded notifications in append order.
func (d *Dispatcher) History(ctx context.Context) ([]*domain.Record, error) {
	return d.repo.List(ctx)
}
