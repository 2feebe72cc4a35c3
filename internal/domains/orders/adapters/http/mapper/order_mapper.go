package mapper

import (
	"time"

	"github.com/oapi-codegen/runtime/types"

	ordersdomain "github.com/afyakit/pharmacy-api-server/internal/domains/orders/domain"
	ordersports "github.com/afyakit/pharmacy-api-server/internal/domains/orders/ports"
)

// OrderItem is the transport-layer shape of a checkout line item. Price is in
// minor units.
type OrderItem struct {
	ProductID            string `json:"productId"`
	Name                 string `json:"name"`
	Image                string `json:"image,omitempty"`
	Quantity             int32  `json:"quantity"`
	Price                int64  `json:"price"`
	RequiresPrescription bool   `json:"requiresPrescription,omitempty"`
}

// ShippingInfo is the transport-layer delivery contact.
type ShippingInfo struct {
	FullName   string      `json:"fullName"`
	Email      types.Email `json:"email"`
	Phone      string      `json:"phone"`
	Address    string      `json:"address"`
	City       string      `json:"city"`
	PostalCode string      `json:"postalCode,omitempty"`
}

// CreateOrderRequest is the checkout submission payload. Totals are computed
// by the caller and re-validated server side.
type CreateOrderRequest struct {
	UserID               string       `json:"userId"`
	Items                []OrderItem  `json:"items"`
	ShippingInfo         ShippingInfo `json:"shippingInfo"`
	PaymentMethod        string       `json:"paymentMethod"`
	MpesaPhone           string       `json:"mpesaPhone,omitempty"`
	TotalAmount          int64        `json:"totalAmount"`
	DeliveryFee          int64        `json:"deliveryFee"`
	FinalTotal           int64        `json:"finalTotal"`
	Currency             string       `json:"currency,omitempty"`
	DeliveryInstructions string       `json:"deliveryInstructions,omitempty"`
	PrescriptionFiles    []string     `json:"prescriptionFiles,omitempty"`
}

// PaymentInfo is the transport-layer payment snapshot.
type PaymentInfo struct {
	Method        string     `json:"method"`
	Status        string     `json:"status"`
	TransactionID string     `json:"transactionId,omitempty"`
	MpesaPhone    string     `json:"mpesaPhone,omitempty"`
	CardIntentID  string     `json:"cardIntentId,omitempty"`
	Amount        int64      `json:"amount"`
	Currency      string     `json:"currency"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
}

// Order is the transport-layer order representation.
type Order struct {
	ID                   string       `json:"id"`
	UserID               string       `json:"userId"`
	Items                []OrderItem  `json:"items"`
	ShippingInfo         ShippingInfo `json:"shippingInfo"`
	PaymentInfo          PaymentInfo  `json:"paymentInfo"`
	Status               string       `json:"status"`
	TotalAmount          int64        `json:"totalAmount"`
	DeliveryFee          int64        `json:"deliveryFee"`
	FinalTotal           int64        `json:"finalTotal"`
	CreatedAt            time.Time    `json:"createdAt"`
	UpdatedAt            time.Time    `json:"updatedAt"`
	DeliveryInstructions string       `json:"deliveryInstructions,omitempty"`
	PrescriptionFiles    []string     `json:"prescriptionFiles,omitempty"`
}

// ToCreateInput converts the checkout payload into the application input.
func ToCreateInput(req CreateOrderRequest) ordersports.CreateOrderInput {
	items := make([]ordersdomain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, ordersdomain.OrderItem{
			ProductID:            item.ProductID,
			ProductName:          item.Name,
			ProductImage:         item.Image,
			Quantity:             item.Quantity,
			UnitPrice:            ordersdomain.Money(item.Price),
			RequiresPrescription: item.RequiresPrescription,
		})
	}
	return ordersports.CreateOrderInput{
		UserID: req.UserID,
		Items:  items,
		Shipping: ordersdomain.ShippingInfo{
			FullName:   req.ShippingInfo.FullName,
			Email:      string(req.ShippingInfo.Email),
			Phone:      req.ShippingInfo.Phone,
			Address:    req.ShippingInfo.Address,
			City:       req.ShippingInfo.City,
			PostalCode: req.ShippingInfo.PostalCode,
		},
		PaymentMethod:        ordersdomain.PaymentMethod(req.PaymentMethod),
		MpesaPhone:           req.MpesaPhone,
		TotalAmount:          ordersdomain.Money(req.TotalAmount),
		DeliveryFee:          ordersdomain.Money(req.DeliveryFee),
		FinalTotal:           ordersdomain.Money(req.FinalTotal),
		Currency:             req.Currency,
		DeliveryInstructions: req.DeliveryInstructions,
		PrescriptionFiles:    req.PrescriptionFiles,
	}
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	items := make([]OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItem{
			ProductID:            item.ProductID,
			Name:                 item.ProductName,
			Image:                item.ProductImage,
			Quantity:             item.Quantity,
			Price:                int64(item.UnitPrice),
			RequiresPrescription: item.RequiresPrescription,
		})
	}
	return Order{
		ID:     order.ID,
		UserID: order.UserID,
		Items:  items,
		ShippingInfo: ShippingInfo{
			FullName:   order.ShippingInfo.FullName,
			Email:      types.Email(order.ShippingInfo.Email),
			Phone:      order.ShippingInfo.Phone,
			Address:    order.ShippingInfo.Address,
			City:       order.ShippingInfo.City,
			PostalCode: order.ShippingInfo.PostalCode,
		},
		PaymentInfo: PaymentInfo{
			Method:        string(order.PaymentInfo.Method),
			Status:        string(order.PaymentInfo.Status),
			TransactionID: order.PaymentInfo.TransactionID,
			MpesaPhone:    order.PaymentInfo.MpesaPhone,
			CardIntentID:  order.PaymentInfo.CardIntentID,
			Amount:        int64(order.PaymentInfo.Amount),
			Currency:      order.PaymentInfo.Currency,
			PaidAt:        order.PaymentInfo.PaidAt,
		},
		Status:               string(order.Status),
		TotalAmount:          int64(order.TotalAmount),
		DeliveryFee:          int64(order.DeliveryFee),
		FinalTotal:           int64(order.FinalTotal),
		CreatedAt:            order.CreatedAt,
		UpdatedAt:            order.UpdatedAt,
		DeliveryInstructions: order.DeliveryInstructions,
		PrescriptionFiles:    order.PrescriptionFiles,
	}
}

// FromDomainOrders converts a list of domain orders.
func FromDomainOrders(orders []*ordersdomain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, FromDomainOrder(order))
	}
	return result
}
