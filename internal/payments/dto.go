package payments

// InitiatePaymentResponse returns what the storefront needs to open the
// gateway checkout for an order.
type InitiatePaymentResponse struct {
	OrderID         string `json:"orderId"`
	ProviderOrderID string `json:"providerOrderId"`
	AmountMinor     int64  `json:"amount"`
	Currency        string `json:"currency"`
	KeyID           string `json:"keyId"`
}

// CapturePaymentRequest is the gateway callback payload confirming a payment.
type CapturePaymentRequest struct {
	ProviderOrderID string `json:"razorpayOrderId" validate:"required"`
	PaymentID       string `json:"razorpayPaymentId" validate:"required"`
	Signature       string `json:"razorpaySignature" validate:"required"`
}
