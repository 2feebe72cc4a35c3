package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	ordersdomain "github.com/afyakit/pharmacy-api-server/internal/domains/orders/domain"
	"github.com/afyakit/pharmacy-api-server/internal/domains/orders/ports"
	payports "github.com/afyakit/pharmacy-api-server/internal/domains/payments/ports"
	payworkflows "github.com/afyakit/pharmacy-api-server/internal/durable/temporal/workflows/payments"
)

var (
	_ ports.PaymentOrchestrator = (*TemporalPaymentOrchestrator)(nil)
	_ ports.PaymentOrchestrator = (*InlinePaymentOrchestrator)(nil)
)

// TemporalPaymentOrchestrator starts payment workflows on a Temporal cluster.
type TemporalPaymentOrchestrator struct {
	client    client.Client
	taskQueue string
}

// NewTemporalPaymentOrchestrator wires a Temporal client into the orchestrator.
func NewTemporalPaymentOrchestrator(c client.Client) *TemporalPaymentOrchestrator {
	return &TemporalPaymentOrchestrator{client: c, taskQueue: payworkflows.MpesaPaymentTaskQueue}
}

// RunMpesaPayment starts the durable workflow that settles a mobile-money
// charge and blocks until it resolves. A workflow already running for the
// same order is joined rather than duplicated, so a retried request cannot
// charge the customer twice.
func (o *TemporalPaymentOrchestrator) RunMpesaPayment(ctx context.Context, orderID, phone string) (*ordersdomain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal payment orchestrator not configured")
	}
	workflowID := fmt.Sprintf("mpesa-charge-%s", orderID)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		payworkflows.MpesaPaymentWorkflowName,
		payworkflows.MpesaPaymentWorkflowInput{OrderID: orderID, Phone: phone, TraceID: workflowTraceID(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var order ordersdomain.Order
			if err := existingRun.Get(ctx, &order); err != nil {
				return nil, err
			}
			return &order, nil
		}
		return nil, err
	}
	var order ordersdomain.Order
	if err := run.Get(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// InlinePaymentOrchestrator drives the charge directly without Temporal,
// useful for tests or dev fallbacks. The polling budget mirrors the durable
// workflow's.
type InlinePaymentOrchestrator struct {
	service ports.Service

	promptDelay  time.Duration
	pollInterval time.Duration
	maxAttempts  int
}

// NewInlinePaymentOrchestrator wraps the order service for synchronous execution.
func NewInlinePaymentOrchestrator(service ports.Service) *InlinePaymentOrchestrator {
	return &InlinePaymentOrchestrator{
		service:      service,
		promptDelay:  5 * time.Second,
		pollInterval: 5 * time.Second,
		maxAttempts:  12,
	}
}

// RunMpesaPayment performs the initiate/poll/resolve loop in-process.
func (o *InlinePaymentOrchestrator) RunMpesaPayment(ctx context.Context, orderID, phone string) (*ordersdomain.Order, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline payment orchestrator not configured")
	}
	initiation, err := o.service.InitiateMpesaPayment(ctx, orderID, phone)
	if err != nil {
		return nil, err
	}
	if !initiation.Success {
		return o.service.GetOrder(ctx, orderID)
	}
	if err := sleepCtx(ctx, o.promptDelay); err != nil {
		return nil, err
	}
	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		order, err := o.service.PollMpesaPayment(ctx, orderID, initiation.CheckoutRequestID)
		if err != nil {
			return nil, err
		}
		if order.PaymentInfo.Status == ordersdomain.PaymentCompleted || order.PaymentInfo.Status == ordersdomain.PaymentFailed {
			return order, nil
		}
		if err := sleepCtx(ctx, o.pollInterval); err != nil {
			return nil, err
		}
	}
	return o.service.ApplyPaymentOutcome(ctx, orderID, timeoutOutcome())
}

func timeoutOutcome() payports.Outcome {
	return payports.Outcome{Rail: payports.RailMpesa, Status: payports.OutcomeFailed}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() || !spanCtx.TraceID().IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
