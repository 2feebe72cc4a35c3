package application

import "github.com/afyakit/pharmacy-api-server/internal/domains/notifications/domain"

// templates is the fixed registry of customer email per lifecycle event.
var templates = map[domain.Type]domain.Template{
	domain.TypeOrderConfirmed: {
		Type:    domain.TypeOrderConfirmed,
		Subject: "Order Confirmed - #{orderId}",
		HTMLContent: `<h2>Your order has been confirmed!</h2>
<p>Dear {customerName},</p>
<p>Thank you for your order. We have received your payment and your order is now being processed.</p>
<p><strong>Order Details:</strong></p>
<ul>
  <li>Order ID: {orderId}</li>
  <li>Total: {totalAmount}</li>
  <li>Items: {itemCount} items</li>
</ul>
<p>You can track your order status at any time by visiting your account.</p>
<p>Best regards,<br>Your Pharmacy Team</p>`,
		TextContent: "Your order #{orderId} has been confirmed. Total: {totalAmount}. Track your order in your account.",
	},
	domain.TypeOrderProcessing: {
		Type:    domain.TypeOrderProcessing,
		Subject: "Order Processing - #{orderId}",
		HTMLContent: `<h2>Your order is being processed</h2>
<p>Dear {customerName},</p>
<p>Your order #{orderId} is now being prepared for shipment.</p>
<p>We'll notify you once your order has been shipped.</p>
<p>Best regards,<br>Your Pharmacy Team</p>`,
		TextContent: "Your order #{orderId} is being processed and will be shipped soon.",
	},
	domain.TypeOrderShipped: {
		Type:    domain.TypeOrderShipped,
		Subject: "Order Shipped - #{orderId}",
		HTMLContent: `<h2>Your order has been shipped!</h2>
<p>Dear {customerName},</p>
<p>Great news! Your order #{orderId} has been shipped and is on its way to you.</p>
<p><strong>Delivery Address:</strong><br>{shippingAddress}</p>
<p>Expected delivery: 1-3 business days</p>
<p>Best regards,<br>Your Pharmacy Team</p>`,
		TextContent: "Your order #{orderId} has been shipped! Expected delivery: 1-3 business days.",
	},
	domain.TypeOrderDelivered: {
		Type:    domain.TypeOrderDelivered,
		Subject: "Order Delivered - #{orderId}",
		HTMLContent: `<h2>Your order has been delivered!</h2>
<p>Dear {customerName},</p>
<p>Your order #{orderId} has been successfully delivered.</p>
<p>We hope you're satisfied with your purchase. If you have any questions or concerns, please don't hesitate to contact us.</p>
<p>Thank you for choosing our pharmacy!</p>
<p>Best regards,<br>Your Pharmacy Team</p>`,
		TextContent: "Your order #{orderId} has been delivered! Thank you for choosing our pharmacy.",
	},
	domain.TypePrescriptionApproved: {
		Type:    domain.TypePrescriptionApproved,
		Subject: "Prescription Approved - Order #{orderId}",
		HTMLContent: `<h2>Your prescription has been approved</h2>
<p>Dear {customerName},</p>
<p>Your prescription for order #{orderId} has been reviewed and approved by our licensed pharmacist.</p>
<p>Your order will now proceed to processing and shipment.</p>
<p>Best regards,<br>Your Pharmacy Team</p>`,
		TextContent: "Your prescription for order #{orderId} has been approved and your order will proceed to processing.",
	},
	domain.TypePrescriptionRejected: {
		Type:    domain.TypePrescriptionRejected,
		Subject: "Prescription Requires Attention - Order #{orderId}",
		HTMLContent: `<h2>Prescription requires attention</h2>
<p>Dear {customerName},</p>
<p>We were unable to approve the prescription for order #{orderId}.</p>
<p><strong>Reason:</strong> {rejectionReason}</p>
<p>Please contact us or upload a new prescription to proceed with your order.</p>
<p>Best regards,<br>Your Pharmacy Team</p>`,
		TextContent: "Your prescription for order #{orderId} requires attention. Reason: {rejectionReason}. Please contact us.",
	},
	domain.TypePaymentCompleted: {
		Type:    domain.TypePaymentCompleted,
		Subject: "Payment Received - Order #{orderId}",
		HTMLContent: `<h2>Payment received successfully</h2>
<p>Dear {customerName},</p>
<p>We have successfully received your payment for order #{orderId}.</p>
<p><strong>Payment Details:</strong></p>
<ul>
  <li>Amount: {totalAmount}</li>
  <li>Method: {paymentMethod}</li>
  <li>Transaction ID: {transactionId}</li>
</ul>
<p>Your order will now be processed.</p>
<p>Best regards,<br>Your Pharmacy Team</p>`,
		TextContent: "Payment received for order #{orderId}. Amount: {totalAmount}. Your order will now be processed.",
	},
	domain.TypePaymentFailed: {
		Type:    domain.TypePaymentFailed,
		Subject: "Payment Failed - Order #{orderId}",
		HTMLContent: `<h2>Payment could not be processed</h2>
<p>Dear {customerName},</p>
<p>We were unable to process the payment for order #{orderId}.</p>
<p>Please try again or contact us for assistance.</p>
<p>Best regards,<br>Your Pharmacy Team</p>`,
		TextContent: "Payment failed for order #{orderId}. Please try again or contact us for assistance.",
	},
}

// TemplateFor exposes the registry for rendering previews.
func TemplateFor(t domain.Type) (domain.Template, bool) {
	tpl, ok := templates[t]
	return tpl, ok
}
