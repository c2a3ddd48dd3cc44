package models

import (
	"strings"
)

// PaymentStatus is the canonical four-way payment outcome used for all
// downstream display decisions. Every gateway-specific raw status string
// normalizes into exactly one of these values.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusExpired PaymentStatus = "EXPIRED"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// Fee display statuses derived from the canonical payment status
const (
	FeeStatusLunas      = "Lunas"
	FeeStatusPending    = "Pending"
	FeeStatusKadaluarsa = "Kadaluarsa"
	FeeStatusFailed     = "Failed"
)

// NormalizePaymentStatus maps a gateway-specific raw status string to the
// canonical enum, case-insensitively. Unknown values default to Pending so
// an unrecognized gateway state never flips a fee into a terminal display.
func NormalizePaymentStatus(raw string) PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "success", "settlement":
		return PaymentStatusPaid
	case "pending":
		return PaymentStatusPending
	case "expire", "expired", "kadaluarsa":
		return PaymentStatusExpired
	case "failed", "fail", "gagal", "cancel", "deny":
		return PaymentStatusFailed
	default:
		return PaymentStatusPending
	}
}

// Terminal reports whether the status can no longer change
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusPaid || s == PaymentStatusExpired || s == PaymentStatusFailed
}

// DeriveFeeStatus computes a fee's display status from its latest payment.
// When no payment exists the fee's server-reported status passes through
// unchanged.
func DeriveFeeStatus(latest *Payment, fallback string) string {
	if latest == nil {
		return fallback
	}
	switch NormalizePaymentStatus(latest.RawStatus) {
	case PaymentStatusPaid:
		return FeeStatusLunas
	case PaymentStatusExpired:
		return FeeStatusKadaluarsa
	case PaymentStatusFailed:
		return FeeStatusFailed
	default:
		return FeeStatusPending
	}
}
