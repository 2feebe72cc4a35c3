package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/domain"
	"github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/ports"
)

// Service runs the prescription validation workflow: upload produces a
// pending record, a reviewer decision mutates it exactly once, and a linked
// order triggers one notification plus one audit entry after the record has
// durably changed.
type Service struct {
	repo     ports.Repository
	orders   ports.OrderDirectory
	notifier ports.Notifier
	audit    ports.AuditLog
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo ports.Repository, orders ports.OrderDirectory, notifier ports.Notifier, audit ports.AuditLog, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		orders:   orders,
		notifier: notifier,
		audit:    audit,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Upload records a pending prescription file for the order.
func (s *Service) Upload(ctx context.Context, orderID, fileName string, fileSize int64) (*domain.File, error) {
	file, err := domain.NewFile("PRESC-"+uuid.NewString(), orderID, fileName, fileSize, s.now().UTC())
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, file)
}

// Validate applies a reviewer decision. The record update commits first;
// notification and audit follow best-effort when an order is linked, and
// their failure is logged, never propagated.
func (s *Service) Validate(ctx context.Context, id string, decision domain.Decision, reviewer ports.Reviewer) (*domain.File, error) {
	file, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := file.ApplyDecision(decision, reviewer.Name, s.now().UTC()); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, file)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.Find(ctx, saved.OrderID)
	if err != nil || order == nil {
		if err != nil {
			s.logger.Warn("linked order lookup failed",
				slog.String("prescription.id", id),
				slog.String("order.id", saved.OrderID),
				slog.String("error", err.Error()))
		}
		return saved, nil
	}
	if err := s.notifier.PrescriptionReviewed(ctx, *order, decision.Approve, decision.RejectionReason); err != nil {
		s.logger.Warn("prescription notification failed",
			slog.String("prescription.id", id),
			slog.String("error", err.Error()))
	}
	if err := s.audit.PrescriptionValidated(ctx, reviewer, id, decision.Approve, decision.RejectionReason); err != nil {
		s.logger.Warn("prescription audit write failed",
			slog.String("prescription.id", id),
			slog.String("error", err.Error()))
	}
	return saved, nil
}

// ListPending returns every prescription awaiting review.
func (s *Service) ListPending(ctx context.Context) ([]*domain.File, error) {
	return s.repo.ListPending(ctx)
}

// ListForOrder returns the prescriptions uploaded for one order.
func (s *Service) ListForOrder(ctx context.Context, orderID string) ([]*domain.File, error) {
	return s.repo.ListByOrder(ctx, orderID)
}

var _ ports.Service = (*Service)(nil)
