package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// OrderStatus enumerates order lifecycle progression.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

var (
	ErrNoItems           = errors.New("order must contain at least one item")
	ErrInvalidQuantity   = errors.New("item quantity must be greater than zero")
	ErrNegativeAmount    = errors.New("monetary amounts must not be negative")
	ErrTotalsMismatch    = errors.New("final total must equal total amount plus delivery fee")
	ErrMissingShipping   = errors.New("shipping information is incomplete")
	ErrInvalidStatus     = errors.New("order status is invalid")
	ErrTerminalStatus    = errors.New("order is in a terminal status")
	ErrPaymentSettled    = errors.New("payment already completed for this order")
	ErrInvalidPayMethod  = errors.New("payment method is invalid")
)

// Money is a fixed-point currency amount in minor units (cents).
type Money int64

// Format renders the amount with its currency code, e.g. "KES 1500.00".
func (m Money) Format(currency string) string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s %s%d.%02d", currency, sign, v/100, v%100)
}

// OrderItem is a line item with price and name snapshots taken at checkout.
type OrderItem struct {
	ProductID            string
	ProductName          string
	ProductImage         string
	Quantity             int32
	UnitPrice            Money
	RequiresPrescription bool
}

// ShippingInfo is the delivery contact captured at checkout.
type ShippingInfo struct {
	FullName   string
	Email      string
	Phone      string
	Address    string
	City       string
	PostalCode string
}

// Order models the purchase order aggregate. Items, shipping info, and totals
// are immutable after creation; only Status, PaymentInfo, and UpdatedAt change.
type Order struct {
	ID                   string
	UserID               string
	Items                []OrderItem
	ShippingInfo         ShippingInfo
	PaymentInfo          PaymentInfo
	Status               OrderStatus
	TotalAmount          Money
	DeliveryFee          Money
	FinalTotal           Money
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeliveryInstructions string
	PrescriptionFiles    []string
}

// NewOrder validates and constructs a pending order. Totals are computed by
// the caller at checkout; creation verifies their consistency.
func NewOrder(id, userID string, items []OrderItem, shipping ShippingInfo, payment PaymentInfo, totalAmount, deliveryFee, finalTotal Money, now time.Time) (*Order, error) {
	order := &Order{
		ID:           id,
		UserID:       userID,
		Items:        append([]OrderItem{}, items...),
		ShippingInfo: shipping,
		PaymentInfo:  payment,
		Status:       StatusPending,
		TotalAmount:  totalAmount,
		DeliveryFee:  deliveryFee,
		FinalTotal:   finalTotal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if item.UnitPrice < 0 {
			return ErrNegativeAmount
		}
	}
	if o.TotalAmount < 0 || o.DeliveryFee < 0 || o.FinalTotal < 0 {
		return ErrNegativeAmount
	}
	if o.FinalTotal != o.TotalAmount+o.DeliveryFee {
		return ErrTotalsMismatch
	}
	if err := o.ShippingInfo.validate(); err != nil {
		return err
	}
	if !isValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	if !o.PaymentInfo.Method.Valid() {
		return ErrInvalidPayMethod
	}
	return nil
}

// TransitionTo moves the order to the requested status. Delivered and
// cancelled are terminal: no further transitions are accepted out of them.
func (o *Order) TransitionTo(status OrderStatus, now time.Time) error {
	if !isValidStatus(status) {
		return ErrInvalidStatus
	}
	if o.Status.Terminal() {
		return ErrTerminalStatus
	}
	o.Status = status
	o.touch(now)
	return nil
}

// ApplyPayment records a payment outcome on the order. A completed payment is
// final; subsequent attempts to overwrite it are rejected.
func (o *Order) ApplyPayment(info PaymentInfo, now time.Time) error {
	if o.PaymentInfo.Status == PaymentCompleted {
		return ErrPaymentSettled
	}
	if !info.Method.Valid() {
		return ErrInvalidPayMethod
	}
	o.PaymentInfo = info
	o.touch(now)
	return nil
}

// Terminal reports whether no further lifecycle transitions are allowed.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (o *Order) Clone() *Order {
	clone := *o
	clone.Items = append([]OrderItem{}, o.Items...)
	if o.PrescriptionFiles != nil {
		clone.PrescriptionFiles = append([]string{}, o.PrescriptionFiles...)
	}
	clone.PaymentInfo = o.PaymentInfo.clone()
	return &clone
}

// ItemCount returns the number of distinct line items.
func (o *Order) ItemCount() int {
	return len(o.Items)
}

func (o *Order) touch(now time.Time) {
	// UpdatedAt must strictly increase even when the wall clock has not
	// advanced between two mutations.
	if !now.After(o.UpdatedAt) {
		now = o.UpdatedAt.Add(time.Nanosecond)
	}
	o.UpdatedAt = now
}

func (s ShippingInfo) validate() error {
	for _, field := range []string{s.FullName, s.Email, s.Phone, s.Address, s.City, s.PostalCode} {
		if strings.TrimSpace(field) == "" {
			return ErrMissingShipping
		}
	}
	return nil
}

func isValidStatus(status OrderStatus) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}
