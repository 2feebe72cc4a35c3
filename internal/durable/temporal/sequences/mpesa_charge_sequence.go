package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	payactivities "github.com/afyakit/pharmacy-api-server/internal/durable/temporal/activities/payments"
	ordersdomain "github.com/afyakit/pharmacy-api-server/internal/domains/orders/domain"
	payports "github.com/afyakit/pharmacy-api-server/internal/domains/payments/ports"
)

const (
	// initialPromptDelay gives the customer time to react to the push prompt
	// before the first status check.
	initialPromptDelay = 5 * time.Second
	// pollInterval spaces the status checks.
	pollInterval = 5 * time.Second
	// maxPollAttempts bounds the polling budget; an unresolved checkout
	// request is folded in as failed after the last attempt.
	maxPollAttempts = 12
)

// RunMpesaChargeSequence executes the ordered set of activities that settle a
// mobile-money charge: push the prompt, poll the pending checkout request
// until it resolves, and fold a timeout in as a failed outcome.
func RunMpesaChargeSequence(ctx workflow.Context, input payactivities.InitiateInput) (*ordersdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("mpesa charge sequence started", "orderId", input.OrderID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var initiation payports.InitiationResult
	if err := workflow.ExecuteActivity(ctx, payactivities.InitiateMpesaActivityName, input).Get(ctx, &initiation); err != nil {
		logger.Error("mpesa charge sequence failed to initiate", "orderId", input.OrderID, "error", err)
		return nil, err
	}
	if !initiation.Success {
		logger.Info("mpesa charge declined at initiation", "orderId", input.OrderID, "responseCode", initiation.ResponseCode)
		var order ordersdomain.Order
		if err := workflow.ExecuteActivity(ctx, payactivities.LoadOrderActivityName, input.OrderID).Get(ctx, &order); err != nil {
			return nil, err
		}
		return &order, nil
	}

	poll := payactivities.PollInput{OrderID: input.OrderID, CheckoutRequestID: initiation.CheckoutRequestID}
	if err := workflow.Sleep(ctx, initialPromptDelay); err != nil {
		return nil, err
	}
	for attempt := 1; attempt <= maxPollAttempts; attempt++ {
		var order ordersdomain.Order
		if err := workflow.ExecuteActivity(ctx, payactivities.PollMpesaActivityName, poll).Get(ctx, &order); err != nil {
			logger.Error("mpesa charge sequence poll failed", "orderId", input.OrderID, "attempt", attempt, "error", err)
			return nil, err
		}
		if resolved(order.PaymentInfo.Status) {
			logger.Info("mpesa charge sequence resolved", "orderId", input.OrderID, "paymentStatus", string(order.PaymentInfo.Status), "attempts", attempt)
			return &order, nil
		}
		if err := workflow.Sleep(ctx, pollInterval); err != nil {
			return nil, err
		}
	}

	logger.Info("mpesa charge sequence exhausted polling budget", "orderId", input.OrderID)
	var order ordersdomain.Order
	if err := workflow.ExecuteActivity(ctx, payactivities.ResolveTimeoutActivityName, poll).Get(ctx, &order); err != nil {
		logger.Error("mpesa charge sequence failed to resolve timeout", "orderId", input.OrderID, "error", err)
		return nil, err
	}
	return &order, nil
}

func resolved(status ordersdomain.PaymentStatus) bool {
	return status == ordersdomain.PaymentCompleted || status == ordersdomain.PaymentFailed
}
