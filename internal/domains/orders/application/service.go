package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/afyakit/pharmacy-api-server/internal/domains/orders/domain"
	"github.com/afyakit/pharmacy-api-server/internal/domains/orders/ports"
	payports "github.com/afyakit/pharmacy-api-server/internal/domains/payments/ports"
)

const defaultCurrency = "KES"

// Service is the order lifecycle engine: it creates orders, drives the
// status state machine, relays payment gateway outcomes, and fans out
// notification and audit side effects after each primary write.
type Service struct {
	repo     ports.Repository
	gateway  payports.Gateway
	notifier ports.Notifier
	audit    ports.AuditLog
	logger   *slog.Logger
	now      func() time.Time
	locks    keyedMutex
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService wires the engine with its collaborators.
func NewService(repo ports.Repository, gateway payports.Gateway, notifier ports.Notifier, audit ports.AuditLog, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		gateway:  gateway,
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

// CreateOrder validates the checkout submission and persists a pending
// order. Creation triggers no notification or audit entry.
func (s *Service) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	currency := input.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	payment := domain.PaymentInfo{
		Method:     input.PaymentMethod,
		Status:     domain.PaymentPending,
		MpesaPhone: input.MpesaPhone,
		Amount:     input.FinalTotal,
		Currency:   currency,
	}
	order, err := domain.NewOrder(
		"ORD-"+uuid.NewString(),
		input.UserID,
		input.Items,
		input.Shipping,
		payment,
		input.TotalAmount,
		input.DeliveryFee,
		input.FinalTotal,
		s.now().UTC(),
	)
	if err != nil {
		return nil, mapError(err)
	}
	order.DeliveryInstructions = input.DeliveryInstructions
	if len(input.PrescriptionFiles) > 0 {
		order.PrescriptionFiles = append([]string{}, input.PrescriptionFiles...)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// GetOrder loads a single order snapshot.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// ListOrders returns snapshots of every order.
func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

// UpdateOrderStatus transitions the order, persists it, then dispatches the
// mapped lifecycle notification and — when an actor is supplied — an audit
// entry. Side effects are best-effort: their failure never rolls the
// transition back.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus, actor *ports.Actor) (*domain.Order, error) {
	lock := s.locks.lock(id)
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		lock.Unlock()
		return nil, err
	}
	oldStatus := order.Status
	if err := order.TransitionTo(status, s.now().UTC()); err != nil {
		lock.Unlock()
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	lock.Unlock()
	if err != nil {
		return nil, err
	}

	if err := s.notifier.OrderStatusChanged(ctx, saved, status); err != nil {
		s.logger.Warn("order status notification failed",
			slog.String("order.id", id),
			slog.String("order.status", string(status)),
			slog.String("error", err.Error()))
	}
	if actor != nil {
		if err := s.audit.OrderStatusChanged(ctx, *actor, id, oldStatus, status); err != nil {
			s.logger.Warn("order status audit write failed",
				slog.String("order.id", id),
				slog.String("error", err.Error()))
		}
	}
	return saved, nil
}

// InitiateMpesaPayment starts the mobile-money round trip. A declined
// initiation leaves the payment pending and is returned as a value for the
// caller to surface; only a successful push moves the payment to processing.
func (s *Service) InitiateMpesaPayment(ctx context.Context, orderID, phone string) (payports.InitiationResult, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return payports.InitiationResult{}, err
	}
	if order.PaymentInfo.Status == domain.PaymentCompleted {
		return payports.InitiationResult{}, mapError(domain.ErrPaymentSettled)
	}
	result, err := s.gateway.InitiateMpesa(ctx, phone, int64(order.FinalTotal), orderID)
	if err != nil {
		return payports.InitiationResult{}, err
	}
	if !result.Success {
		return result, nil
	}
	if _, err := s.markProcessing(ctx, orderID, func(info *domain.PaymentInfo) {
		info.Method = domain.MethodMpesa
		info.MpesaPhone = phone
	}); err != nil {
		return payports.InitiationResult{}, err
	}
	return result, nil
}

// PollMpesaPayment resolves a pending checkout request and relays the
// outcome into the order.
func (s *Service) PollMpesaPayment(ctx context.Context, orderID, checkoutRequestID string) (*domain.Order, error) {
	outcome, err := s.gateway.CheckMpesaStatus(ctx, checkoutRequestID)
	if err != nil {
		return nil, err
	}
	return s.ApplyPaymentOutcome(ctx, orderID, outcome)
}

// CreateCardIntent provisions a card payment intent for the order total.
func (s *Service) CreateCardIntent(ctx context.Context, orderID string) (payports.IntentResult, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return payports.IntentResult{}, err
	}
	if order.PaymentInfo.Status == domain.PaymentCompleted {
		return payports.IntentResult{}, mapError(domain.ErrPaymentSettled)
	}
	result, err := s.gateway.CreateCardIntent(ctx, int64(order.FinalTotal), orderID)
	if err != nil {
		return payports.IntentResult{}, err
	}
	if !result.Success {
		return result, nil
	}
	if _, err := s.markProcessing(ctx, orderID, func(info *domain.PaymentInfo) {
		info.Method = domain.MethodCard
		info.CardIntentID = result.IntentID
	}); err != nil {
		return payports.IntentResult{}, err
	}
	return result, nil
}

// ConfirmCardPayment confirms the intent and relays the outcome.
func (s *Service) ConfirmCardPayment(ctx context.Context, orderID, intentID, paymentMethodRef string) (*domain.Order, error) {
	outcome, err := s.gateway.ConfirmCardPayment(ctx, intentID, paymentMethodRef)
	if err != nil {
		return nil, err
	}
	return s.ApplyPaymentOutcome(ctx, orderID, outcome)
}

// ApplyPaymentOutcome records a gateway resolution on the order and sends the
// matching payment notification. A completed payment is final; replays are
// rejected.
func (s *Service) ApplyPaymentOutcome(ctx context.Context, orderID string, outcome payports.Outcome) (*domain.Order, error) {
	lock := s.locks.lock(orderID)
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		lock.Unlock()
		return nil, err
	}
	info := order.PaymentInfo
	if outcome.Completed() {
		info.Status = domain.PaymentCompleted
	} else {
		info.Status = domain.PaymentFailed
	}
	if outcome.TransactionID != "" {
		info.TransactionID = outcome.TransactionID
	}
	if outcome.IntentID != "" {
		info.CardIntentID = outcome.IntentID
	}
	if outcome.PaidAt != nil {
		paidAt := outcome.PaidAt.UTC()
		info.PaidAt = &paidAt
	}
	if err := order.ApplyPayment(info, s.now().UTC()); err != nil {
		lock.Unlock()
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	lock.Unlock()
	if err != nil {
		return nil, err
	}

	if err := s.notifier.PaymentResult(ctx, saved, outcome.Completed()); err != nil {
		s.logger.Warn("payment notification failed",
			slog.String("order.id", orderID),
			slog.String("error", err.Error()))
	}
	return saved, nil
}

// markProcessing mutates payment info under the per-order lock.
func (s *Service) markProcessing(ctx context.Context, orderID string, mutate func(*domain.PaymentInfo)) (*domain.Order, error) {
	lock := s.locks.lock(orderID)
	defer lock.Unlock()
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	info := order.PaymentInfo
	info.Status = domain.PaymentProcessing
	mutate(&info)
	if err := order.ApplyPayment(info, s.now().UTC()); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, order)
}

var _ ports.Service = (*Service)(nil)
