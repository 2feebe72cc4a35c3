package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersdomain "github.com/afyakit/pharmacy-api-server/internal/domains/orders/domain"
	ordersports "github.com/afyakit/pharmacy-api-server/internal/domains/orders/ports"
	payports "github.com/afyakit/pharmacy-api-server/internal/domains/payments/ports"
)

const tracerName = "github.com/afyakit/pharmacy-api-server/internal/domains/orders/adapters/observability"

// Service decorates the order lifecycle service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core order service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateOrder(ctx context.Context, input ordersports.CreateOrderInput) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder",
		trace.WithAttributes(
			attribute.String("order.user_id", input.UserID),
			attribute.Int("order.item_count", len(input.Items)),
			attribute.String("payment.method", string(input.PaymentMethod)),
		))
	defer span.End()

	s.logInfo(ctx, "creating order", slog.String("user_id", input.UserID), slog.Int("items", len(input.Items)))
	result, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order", slog.String("user_id", input.UserID))
	}
	s.metrics.recordCreated(ctx, result.Status)
	s.logInfo(ctx, "order created", slog.String("order_id", result.ID), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order_id", id))
	}
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders")
	defer span.End()

	result, err := s.inner.ListOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status ordersdomain.OrderStatus, actor *ordersports.Actor) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateOrderStatus",
		trace.WithAttributes(attribute.String("order.id", id), attribute.String("order.status", string(status))))
	defer span.End()

	s.logInfo(ctx, "updating order status", slog.String("order_id", id), slog.String("status", string(status)))
	result, err := s.inner.UpdateOrderStatus(ctx, id, status, actor)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status",
			slog.String("order_id", id), slog.String("status", string(status)))
	}
	s.metrics.recordTransition(ctx, result.Status)
	s.logInfo(ctx, "order status updated", slog.String("order_id", id), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) InitiateMpesaPayment(ctx context.Context, orderID, phone string) (payports.InitiationResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.InitiateMpesaPayment",
		trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	s.logInfo(ctx, "initiating mpesa payment", slog.String("order_id", orderID))
	result, err := s.inner.InitiateMpesaPayment(ctx, orderID, phone)
	if err != nil {
		return payports.InitiationResult{}, s.handleError(ctx, span, err, "failed to initiate mpesa payment", slog.String("order_id", orderID))
	}
	span.SetAttributes(attribute.Bool("payment.accepted", result.Success))
	return result, nil
}

func (s *Service) PollMpesaPayment(ctx context.Context, orderID, checkoutRequestID string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.PollMpesaPayment",
		trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	result, err := s.inner.PollMpesaPayment(ctx, orderID, checkoutRequestID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to poll mpesa payment", slog.String("order_id", orderID))
	}
	span.SetAttributes(attribute.String("payment.status", string(result.PaymentInfo.Status)))
	return result, nil
}

func (s *Service) CreateCardIntent(ctx context.Context, orderID string) (payports.IntentResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateCardIntent",
		trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	s.logInfo(ctx, "creating card payment intent", slog.String("order_id", orderID))
	result, err := s.inner.CreateCardIntent(ctx, orderID)
	if err != nil {
		return payports.IntentResult{}, s.handleError(ctx, span, err, "failed to create card intent", slog.String("order_id", orderID))
	}
	return result, nil
}

func (s *Service) ConfirmCardPayment(ctx context.Context, orderID, intentID, paymentMethodRef string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ConfirmCardPayment",
		trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	s.logInfo(ctx, "confirming card payment", slog.String("order_id", orderID))
	result, err := s.inner.ConfirmCardPayment(ctx, orderID, intentID, paymentMethodRef)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to confirm card payment", slog.String("order_id", orderID))
	}
	s.metrics.recordPaymentResolved(ctx, result.PaymentInfo.Status)
	span.SetAttributes(attribute.String("payment.status", string(result.PaymentInfo.Status)))
	return result, nil
}

func (s *Service) ApplyPaymentOutcome(ctx context.Context, orderID string, outcome payports.Outcome) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ApplyPaymentOutcome",
		trace.WithAttributes(attribute.String("order.id", orderID), attribute.String("payment.status", string(outcome.Status))))
	defer span.End()

	result, err := s.inner.ApplyPaymentOutcome(ctx, orderID, outcome)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to apply payment outcome", slog.String("order_id", orderID))
	}
	s.metrics.recordPaymentResolved(ctx, result.PaymentInfo.Status)
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersCreated    metric.Int64Counter
	statusChanges    metric.Int64Counter
	paymentsResolved metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersCreated, _ := m.Int64Counter("orders.service.created", metric.WithDescription("Number of orders created"))
	statusChanges, _ := m.Int64Counter("orders.service.status_changes", metric.WithDescription("Number of order status transitions"))
	paymentsResolved, _ := m.Int64Counter("orders.service.payments_resolved", metric.WithDescription("Number of payment round trips resolved"))
	return serviceMetrics{ordersCreated: ordersCreated, statusChanges: statusChanges, paymentsResolved: paymentsResolved}
}

func (m serviceMetrics) recordCreated(ctx context.Context, status ordersdomain.OrderStatus) {
	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m serviceMetrics) recordTransition(ctx context.Context, status ordersdomain.OrderStatus) {
	if m.statusChanges != nil {
		m.statusChanges.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m serviceMetrics) recordPaymentResolved(ctx context.Context, status ordersdomain.PaymentStatus) {
	if m.paymentsResolved != nil {
		m.paymentsResolved.Add(ctx, 1, metric.WithAttributes(attribute.String("payment.status", string(status))))
	}
}

var _ ordersports.Service = (*Service)(nil)
