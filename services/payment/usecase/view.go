package usecase

import (
	"time"

	"github.com/adityarama/iuranpay/internal/pkg/models"
)

// InlinePayment is the view state of an inline (scannable code) flow.
// Populating it never navigates away from the current view.
type InlinePayment struct {
	OrderID           string
	Amount            int64
	Code              string
	Expiry            *time.Time
	DeeplinkURL       string
	MobileDeeplinkURL string
}

// StatusRecord tracks the previous and current canonical status as one
// owned record, independent of any re-render cycle. The zero value means
// no status has been observed yet.
type StatusRecord struct {
	Previous models.PaymentStatus
	Current  models.PaymentStatus
	Seen     bool
}

// Transition is the pure reducer advancing a status record. The returned
// bool reports whether this transition crossed into Expired from a
// non-Expired state, which is the one-time trigger for the expiry notice.
func Transition(rec StatusRecord, next models.PaymentStatus) (StatusRecord, bool) {
	out := StatusRecord{
		Previous: rec.Current,
		Current:  next,
		Seen:     true,
	}
	fired := next == models.PaymentStatusExpired &&
		!(rec.Seen && rec.Current == models.PaymentStatusExpired)
	return out, fired
}

// viewState is the engine's session-scoped view of the subject's payment.
// It holds no durable storage; everything here is rebuilt by reconciliation.
type viewState struct {
	inline    *InlinePayment
	latest    *models.Payment
	feeStatus string
	record    StatusRecord
}
