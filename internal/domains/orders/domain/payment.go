package domain

import "time"

// PaymentMethod identifies the rail used to settle an order.
type PaymentMethod string

const (
	MethodMpesa PaymentMethod = "mpesa"
	MethodCard  PaymentMethod = "card"
)

// Valid reports whether the method is one of the supported rails.
func (m PaymentMethod) Valid() bool {
	return m == MethodMpesa || m == MethodCard
}

// PaymentStatus tracks the settlement state of an order's payment.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentCancelled  PaymentStatus = "cancelled"
)

// PaymentInfo is owned exclusively by its Order and mutated only through
// gateway responses relayed by the lifecycle engine.
type PaymentInfo struct {
	Method        PaymentMethod
	Status        PaymentStatus
	TransactionID string
	MpesaPhone    string
	CardIntentID  string
	Amount        Money
	Currency      string
	PaidAt        *time.Time
}

func (p PaymentInfo) clone() PaymentInfo {
	clone := p
	if p.PaidAt != nil {
		paidAt := *p.PaidAt
		clone.PaidAt = &paidAt
	}
	return clone
}
