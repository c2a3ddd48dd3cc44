package models

import (
	"time"
)

// PaymentMethod identifies one of the supported payment channels
type PaymentMethod string

const (
	PaymentMethodQRIS         PaymentMethod = "qris"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodGopay        PaymentMethod = "gopay"
	PaymentMethodShopeePay    PaymentMethod = "shopeepay"
)

// Payment represents one payment attempt against a fee.
// Payments are created server-side and mutated only by re-fetch; the client
// never patches one optimistically beyond status normalization.
type Payment struct {
	ID              string        `json:"id" db:"id"`
	FeeID           string        `json:"fee_id" db:"fee_id"`
	UserID          string        `json:"user_id" db:"user_id"`
	Amount          int64         `json:"amount" db:"amount"`
	PaymentMethod   PaymentMethod `json:"payment_method" db:"payment_method"`
	RawStatus       string        `json:"status" db:"status"`
	ExpiryTime      *time.Time    `json:"expiry_time,omitempty" db:"expiry_time"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	RetryOf         *string       `json:"retry_of,omitempty" db:"retry_of"`
	RetryReplacedBy *string       `json:"retry_replaced_by,omitempty" db:"retry_replaced_by"`
}

// CreatePaymentRequest is the request body for creating a new payment
type CreatePaymentRequest struct {
	FeeID         string        `json:"fee_id"`
	Amount        int64         `json:"amount"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}

// PaymentCharge is the gateway response to a create or retry request.
// Redirect-based methods carry PaymentURL; inline methods carry the QR
// fields and optionally deeplinks into the issuing wallet app.
type PaymentCharge struct {
	PaymentID         string     `json:"payment_id"`
	OrderID           string     `json:"order_id"`
	PaymentType       string     `json:"payment_type"`
	PaymentURL        string     `json:"payment_url,omitempty"`
	QRURL             string     `json:"qr_url,omitempty"`
	QRString          string     `json:"qr_string,omitempty"`
	ExpiryTime        *time.Time `json:"expiry_time,omitempty"`
	DeeplinkURL       string     `json:"deeplink_url,omitempty"`
	MobileDeeplinkURL string     `json:"mobile_deeplink_url,omitempty"`
	Message           string     `json:"message,omitempty"`
}

// InlineCode returns the renderable QR payload of an inline charge,
// preferring the hosted image URL over the raw EMV string.
func (c *PaymentCharge) InlineCode() string {
	if c.QRURL != "" {
		return c.QRURL
	}
	return c.QRString
}

// ForceCheckResult is the response of an out-of-band status query against
// the payment gateway.
type ForceCheckResult struct {
	Status         string `json:"status"`
	MidtransStatus string `json:"midtrans_status"`
	Updated        bool   `json:"updated"`
	PaymentID      string `json:"payment_id"`
	Message        string `json:"message,omitempty"`
}
