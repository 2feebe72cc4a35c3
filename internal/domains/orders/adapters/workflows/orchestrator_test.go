package workflows

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordersdomain "github.com/afyakit/pharmacy-api-server/internal/domains/orders/domain"
	"github.com/afyakit/pharmacy-api-server/internal/domains/orders/ports"
	payports "github.com/afyakit/pharmacy-api-server/internal/domains/payments/ports"
)

// fakeChargeService scripts the engine calls the inline orchestrator makes.
type fakeChargeService struct {
	ports.Service

	order *ordersdomain.Order

	initiation   payports.InitiationResult
	pollStatuses []ordersdomain.PaymentStatus
	pollCalls    int
	timeouts     int
}

func (f *fakeChargeService) GetOrder(_ context.Context, _ string) (*ordersdomain.Order, error) {
	return f.order, nil
}

func (f *fakeChargeService) InitiateMpesaPayment(_ context.Context, _, _ string) (payports.InitiationResult, error) {
	return f.initiation, nil
}

func (f *fakeChargeService) PollMpesaPayment(_ context.Context, _, _ string) (*ordersdomain.Order, error) {
	status := ordersdomain.PaymentProcessing
	if f.pollCalls < len(f.pollStatuses) {
		status = f.pollStatuses[f.pollCalls]
	}
	f.pollCalls++
	f.order.PaymentInfo.Status = status
	return f.order, nil
}

func (f *fakeChargeService) ApplyPaymentOutcome(_ context.Context, _ string, outcome payports.Outcome) (*ordersdomain.Order, error) {
	f.timeouts++
	if outcome.Completed() {
		f.order.PaymentInfo.Status = ordersdomain.PaymentCompleted
	} else {
		f.order.PaymentInfo.Status = ordersdomain.PaymentFailed
	}
	return f.order, nil
}

func newInlineUnderTest(service ports.Service, maxAttempts int) *InlinePaymentOrchestrator {
	orchestrator := NewInlinePaymentOrchestrator(service)
	orchestrator.promptDelay = time.Millisecond
	orchestrator.pollInterval = time.Millisecond
	orchestrator.maxAttempts = maxAttempts
	return orchestrator
}

func pendingOrder() *ordersdomain.Order {
	return &ordersdomain.Order{
		ID:          "ORD-1",
		Status:      ordersdomain.StatusPending,
		PaymentInfo: ordersdomain.PaymentInfo{Method: ordersdomain.MethodMpesa, Status: ordersdomain.PaymentPending},
	}
}

func TestInlineRunMpesaPayment_DeclinedInitiationReturnsOrder(t *testing.T) {
	service := &fakeChargeService{
		order:      pendingOrder(),
		initiation: payports.InitiationResult{Success: false, ResponseDescription: "Request failed"},
	}
	orchestrator := newInlineUnderTest(service, 3)

	order, err := orchestrator.RunMpesaPayment(context.Background(), "ORD-1", "254712345678")
	require.NoError(t, err)
	assert.Equal(t, ordersdomain.PaymentPending, order.PaymentInfo.Status)
	assert.Zero(t, service.pollCalls)
}

func TestInlineRunMpesaPayment_ResolvesOnCompletion(t *testing.T) {
	service := &fakeChargeService{
		order:      pendingOrder(),
		initiation: payports.InitiationResult{Success: true, CheckoutRequestID: "ws_CO_1"},
		pollStatuses: []ordersdomain.PaymentStatus{
			ordersdomain.PaymentProcessing,
			ordersdomain.PaymentCompleted,
		},
	}
	orchestrator := newInlineUnderTest(service, 5)

	order, err := orchestrator.RunMpesaPayment(context.Background(), "ORD-1", "254712345678")
	require.NoError(t, err)
	assert.Equal(t, ordersdomain.PaymentCompleted, order.PaymentInfo.Status)
	assert.Equal(t, 2, service.pollCalls)
	assert.Zero(t, service.timeouts)
}

func TestInlineRunMpesaPayment_ExhaustedBudgetFailsPayment(t *testing.T) {
	service := &fakeChargeService{
		order:      pendingOrder(),
		initiation: payports.InitiationResult{Success: true, CheckoutRequestID: "ws_CO_1"},
	}
	orchestrator := newInlineUnderTest(service, 3)

	order, err := orchestrator.RunMpesaPayment(context.Background(), "ORD-1", "254712345678")
	require.NoError(t, err)
	assert.Equal(t, ordersdomain.PaymentFailed, order.PaymentInfo.Status)
	assert.Equal(t, 3, service.pollCalls)
	assert.Equal(t, 1, service.timeouts)
}

func TestInlineRunMpesaPayment_HonorsContextCancellation(t *testing.T) {
	service := &fakeChargeService{
		order:      pendingOrder(),
		initiation: payports.InitiationResult{Success: true, CheckoutRequestID: "ws_CO_1"},
	}
	orchestrator := NewInlinePaymentOrchestrator(service)
	orchestrator.promptDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := orchestrator.RunMpesaPayment(ctx, "ORD-1", "254712345678")
	require.ErrorIs(t, err, context.Canceled)
}
