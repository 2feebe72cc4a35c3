package ports

import (
	"context"
	"errors"

	"github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/domain"
)

var ErrNotFound = errors.New("prescription not found")

// Repository persists prescription records.
type Repository interface {
	Save(ctx context.Context, file *domain.File) (*domain.File, error)
	GetByID(ctx context.Context, id string) (*domain.File, error)
	ListByOrder(ctx context.Context, orderID string) ([]*domain.File, error)
	ListPending(ctx context.Context) ([]*domain.File, error)
}

// Reviewer is the authorized identity making a validation decision.
type Reviewer struct {
	ID   string
	Name string
}

// LinkedOrder is the projection of the owning order needed for notification
// addressing, resolved through the order directory.
type LinkedOrder struct {
	ID           string
	CustomerName string
	Email        string
}

// OrderDirectory resolves the order a prescription belongs to. A missing
// order is not an error: validation still commits, side effects are skipped.
type OrderDirectory interface {
	Find(ctx context.Context, orderID string) (*LinkedOrder, error)
}

// Notifier sends the prescription review outcome to the customer.
type Notifier interface {
	PrescriptionReviewed(ctx context.Context, order LinkedOrder, approved bool, rejectionReason string) error
}

// AuditLog records the validation decision.
type AuditLog interface {
	PrescriptionValidated(ctx context.Context, reviewer Reviewer, prescriptionID string, approved bool, rejectionReason string) error
}

// Service exposes the prescription validation workflow.
type Service interface {
	Upload(ctx context.Context, orderID, fileName string, fileSize int64) (*domain.File, error)
	Validate(ctx context.Context, id string, decision domain.Decision, reviewer Reviewer) (*domain.File, error)
	ListPending(ctx context.Context) ([]*domain.File, error)
	ListForOrder(ctx context.Context, orderID string) ([]*domain.File, error)
}
