package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/afyakit/pharmacy-api-server/internal/domains/audit/domain"
	"github.com/afyakit/pharmacy-api-server/internal/domains/audit/ports"
)

// Recorder appends immutable audit entries, the system of record for
// "what changed and who changed it".
type Recorder struct {
	repo   ports.Repository
	now    func() time.Time
	origin string
}

type Option func(*Recorder)

func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// WithOrigin sets the origin address stamped on entries.
func WithOrigin(origin string) Option {
	return func(r *Recorder) { r.origin = origin }
}

func NewRecorder(repo ports.Repository, opts ...Option) *Recorder {
	r := &Recorder{repo: repo, now: time.Now, origin: "127.0.0.1"}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Record appends one entry. Prior entries are never touched.
func (r *Recorder) Record(ctx context.Context, actor domain.Actor, action string, entityType domain.EntityType, entityID string, oldValue, newValue map[string]any) error {
	entry := &domain.Entry{
		ID:         "AUDIT-" + uuid.NewString(),
		Actor:      actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		OldValue:   oldValue,
		NewValue:   newValue,
		Timestamp:  r.now().UTC(),
		IPAddress:  r.origin,
	}
	return r.repo.Append(ctx, entry)
}

// Trail returns the entries for an entity type, optionally narrowed to one
// entity id, in recorded order.
func (r *Recorder) Trail(ctx context.Context, entityType domain.EntityType, entityID string) ([]*domain.Entry, error) {
	return r.repo.ListByEntity(ctx, entityType, entityID)
}

// OrderStatusChanged records a lifecycle transition on an order.
func (r *Recorder) OrderStatusChanged(ctx context.Context, actor domain.Actor, orderID, oldStatus, newStatus string) error {
	return r.Record(ctx, actor,
		fmt.Sprintf("Order status changed from %s to %s", oldStatus, newStatus),
		domain.EntityOrder, orderID,
		map[string]any{"status": oldStatus},
		map[string]any{"status": newStatus},
	)
}

// PrescriptionValidated records a validation decision on a prescription.
func (r *Recorder) PrescriptionValidated(ctx context.Context, actor domain.Actor, prescriptionID, status, reason string) error {
	action := fmt.Sprintf("Prescription %s", status)
	newValue := map[string]any{"status": status}
	if reason != "" {
		action = fmt.Sprintf("%s: %s", action, reason)
		newValue["reason"] = reason
	}
	return r.Record(ctx, actor, action,
		domain.EntityPrescription, prescriptionID,
		map[string]any{"status": "pending"},
		newValue,
	)
}
