package models

// PaymentRequest describes a charge sent to the payment gateway.
// Currency defaults to USD when left empty.
type PaymentRequest struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Token       string  `json:"token"`
	OrderID     string  `json:"orderId"`
	Source      string  `json:"source"`
	Description string  `json:"description"`
}
