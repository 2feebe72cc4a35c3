package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	ordersmapper "github.com/afyakit/pharmacy-api-server/internal/domains/orders/adapters/http/mapper"
	ordersdomain "github.com/afyakit/pharmacy-api-server/internal/domains/orders/domain"
	ordersports "github.com/afyakit/pharmacy-api-server/internal/domains/orders/ports"
)

// PaymentsAPI wires HTTP transport with the payment operations of the order
// service and the durable charge orchestrator.
type PaymentsAPI struct {
	service      ordersports.Service
	orchestrator ordersports.PaymentOrchestrator
}

// NewPaymentsAPI creates a PaymentsAPI backed by the provided service and orchestrator.
func NewPaymentsAPI(service ordersports.Service, orchestrator ordersports.PaymentOrchestrator) PaymentsAPI {
	return PaymentsAPI{service: service, orchestrator: orchestrator}
}

type initiatePaymentRequest struct {
	Method string `json:"method"`
	Phone  string `json:"phone,omitempty"`
	// Wait runs the full charge round trip through the orchestrator and
	// returns the settled order instead of the initiation response.
	Wait bool `json:"wait,omitempty"`
}

type initiationResponse struct {
	Success             bool   `json:"success"`
	CheckoutRequestID   string `json:"checkoutRequestId,omitempty"`
	ResponseCode        string `json:"responseCode,omitempty"`
	ResponseDescription string `json:"responseDescription,omitempty"`
	CustomerMessage     string `json:"customerMessage,omitempty"`
}

type intentResponse struct {
	Success      bool   `json:"success"`
	IntentID     string `json:"intentId,omitempty"`
	ClientSecret string `json:"clientSecret,omitempty"`
	Status       string `json:"status,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

// Post /v1/orders/:orderId/payments
// Initiate a payment on the selected rail
func (api *PaymentsAPI) InitiatePayment(c *gin.Context) {
	var payload initiatePaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	orderID := c.Param("orderId")
	switch ordersdomain.PaymentMethod(payload.Method) {
	case ordersdomain.MethodMpesa:
		api.initiateMpesa(c, orderID, payload)
	case ordersdomain.MethodCard:
		api.createCardIntent(c, orderID)
	default:
		respondError(c, http.StatusBadRequest, errors.New("payment method must be mpesa or card"))
	}
}

func (api *PaymentsAPI) initiateMpesa(c *gin.Context, orderID string, payload initiatePaymentRequest) {
	if payload.Wait && api.orchestrator != nil {
		order, err := api.orchestrator.RunMpesaPayment(c.Request.Context(), orderID, payload.Phone)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, ordersmapper.FromDomainOrder(order))
		return
	}
	result, err := api.service.InitiateMpesaPayment(c.Request.Context(), orderID, payload.Phone)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, initiationResponse{
		Success:             result.Success,
		CheckoutRequestID:   result.CheckoutRequestID,
		ResponseCode:        result.ResponseCode,
		ResponseDescription: result.ResponseDescription,
		CustomerMessage:     result.CustomerMessage,
	})
}

func (api *PaymentsAPI) createCardIntent(c *gin.Context, orderID string) {
	result, err := api.service.CreateCardIntent(c.Request.Context(), orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, intentResponse{
		Success:      result.Success,
		IntentID:     result.IntentID,
		ClientSecret: result.ClientSecret,
		Status:       result.Status,
		Reason:       result.Reason,
	})
}

type pollPaymentRequest struct {
	OrderID           string `json:"orderId"`
	CheckoutRequestID string `json:"checkoutRequestId"`
}

// Post /v1/payments/poll
// Poll a pending mobile-money checkout request and fold any resolution into the order
func (api *PaymentsAPI) PollPayment(c *gin.Context) {
	var payload pollPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := api.service.PollMpesaPayment(c.Request.Context(), payload.OrderID, payload.CheckoutRequestID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordersmapper.FromDomainOrder(order))
}

type confirmCardRequest struct {
	OrderID          string `json:"orderId"`
	IntentID         string `json:"intentId"`
	PaymentMethodRef string `json:"paymentMethodRef"`
}

// Post /v1/payments/confirm
// Confirm a card payment intent
func (api *PaymentsAPI) ConfirmCardPayment(c *gin.Context) {
	var payload confirmCardRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := api.service.ConfirmCardPayment(c.Request.Context(), payload.OrderID, payload.IntentID, payload.PaymentMethodRef)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordersmapper.FromDomainOrder(order))
}
