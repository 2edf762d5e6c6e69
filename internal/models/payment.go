package models

// PaymentInit is the backend's answer to a payment-initiation request: the
// externally hosted gateway URL the user must be sent to.
type PaymentInit struct {
	PaymentURL string `json:"paymentUrl"`
}

// PaymentVerification is the backend's verdict on the query payload the
// gateway appended to its return redirect.
type PaymentVerification struct {
	Success     bool   `json:"success"`
	OrderNumber string `json:"orderNumber,omitempty"`
	Message     string `json:"message,omitempty"`
}
