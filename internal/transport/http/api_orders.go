package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ordersmapper "github.com/afyakit/pharmacy-api-server/internal/domains/orders/adapters/http/mapper"
	ordersdomain "github.com/afyakit/pharmacy-api-server/internal/domains/orders/domain"
	ordersports "github.com/afyakit/pharmacy-api-server/internal/domains/orders/ports"
)

// OrdersAPI wires HTTP transport with the order lifecycle service.
type OrdersAPI struct {
	service ordersports.Service
}

// NewOrdersAPI creates an OrdersAPI backed by the provided service.
func NewOrdersAPI(service ordersports.Service) OrdersAPI {
	return OrdersAPI{service: service}
}

// Post /v1/orders
// Create a new order from a checkout submission
func (api *OrdersAPI) CreateOrder(c *gin.Context) {
	var payload ordersmapper.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := api.service.CreateOrder(c.Request.Context(), ordersmapper.ToCreateInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordersmapper.FromDomainOrder(order))
}

// Get /v1/orders
// List all orders
func (api *OrdersAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.ListOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordersmapper.FromDomainOrders(orders))
}

// Get /v1/orders/:orderId
// Find order by ID
func (api *OrdersAPI) GetOrder(c *gin.Context) {
	order, err := api.service.GetOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordersmapper.FromDomainOrder(order))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// Put /v1/orders/:orderId/status
// Transition an order to a new lifecycle status
func (api *OrdersAPI) UpdateOrderStatus(c *gin.Context) {
	var payload updateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := api.service.UpdateOrderStatus(
		c.Request.Context(),
		c.Param("orderId"),
		ordersdomain.OrderStatus(payload.Status),
		actorFrom(c),
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordersmapper.FromDomainOrder(order))
}
