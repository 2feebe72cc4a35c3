// Package orderdir resolves linked orders through the orders repository.
package orderdir

import (
	"context"
	"errors"

	ordersports "github.com/afyakit/pharmacy-api-server/internal/domains/orders/ports"
	"github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/ports"
)

var _ ports.OrderDirectory = (*Directory)(nil)

// Directory projects orders into the slim view the prescription workflow
// needs for notification addressing.
type Directory struct {
	orders ordersports.Repository
}

func New(orders ordersports.Repository) *Directory {
	return &Directory{orders: orders}
}

func (d *Directory) Find(ctx context.Context, orderID string) (*ports.LinkedOrder, error) {
	order, err := d.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ordersports.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ports.LinkedOrder{
		ID:           order.ID,
		CustomerName: order.ShippingInfo.FullName,
		Email:        order.ShippingInfo.Email,
	}, nil
}
