package payments

import (
	"go.temporal.io/sdk/workflow"

	ordersdomain "github.com/afyakit/pharmacy-api-server/internal/domains/orders/domain"
	payactivities "github.com/afyakit/pharmacy-api-server/internal/durable/temporal/activities/payments"
	"github.com/afyakit/pharmacy-api-server/internal/durable/temporal/sequences"
)

const (
	// MpesaPaymentWorkflowName is the public identifier for registering the workflow.
	MpesaPaymentWorkflowName = "payments.workflows.MpesaCharge"
	// MpesaPaymentTaskQueue is the queue consumed by the worker processing payment workflows.
	MpesaPaymentTaskQueue = "MPESA_PAYMENTS"
)

// MpesaPaymentWorkflowInput captures the payload required to settle a
// mobile-money charge for an order.
type MpesaPaymentWorkflowInput struct {
	OrderID string
	Phone   string
	TraceID string
}

// MpesaPaymentWorkflow orchestrates the activities that drive a mobile-money
// charge from prompt to resolution.
func MpesaPaymentWorkflow(ctx workflow.Context, input MpesaPaymentWorkflowInput) (*ordersdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("MpesaPaymentWorkflow started", withTraceID(input.TraceID, "orderId", input.OrderID)...)
	order, err := sequences.RunMpesaChargeSequence(ctx, payactivities.InitiateInput{
		OrderID: input.OrderID,
		Phone:   input.Phone,
	})
	if err != nil {
		logger.Error("MpesaPaymentWorkflow failed", withTraceID(input.TraceID, "orderId", input.OrderID, "error", err)...)
		return nil, err
	}
	if order != nil {
		logger.Info("MpesaPaymentWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID, "paymentStatus", string(order.PaymentInfo.Status))...)
	} else {
		logger.Info("MpesaPaymentWorkflow completed", withTraceID(input.TraceID)...)
	}
	return order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
