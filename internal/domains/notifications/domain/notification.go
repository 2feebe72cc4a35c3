package domain

import "time"

// Type enumerates the lifecycle events that produce customer email.
type Type string

const (
	TypeOrderConfirmed       Type = "order_confirmed"
	TypeOrderProcessing      Type = "order_processing"
	TypeOrderShipped         Type = "order_shipped"
	TypeOrderDelivered       Type = "order_delivered"
	TypePrescriptionApproved Type = "prescription_approved"
	TypePrescriptionRejected Type = "prescription_rejected"
	TypePaymentCompleted     Type = "payment_completed"
	TypePaymentFailed        Type = "payment_failed"
)

// Status is the recorded delivery outcome.
type Status string

const (
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
	StatusPending Status = "pending"
)

// Record is an append-only trace of a rendered notification and its delivery
// outcome. A failed delivery is recorded, never raised.
type Record struct {
	ID      string
	To      string
	Subject string
	Content string
	Type    Type
	OrderID string
	SentAt  time.Time
	Status  Status
}

// Template holds the fixed subject and bodies for one notification type.
// Placeholders use the {name} form and are substituted at send time.
type Template struct {
	Type        Type
	Subject     string
	HTMLContent string
	TextContent string
}
