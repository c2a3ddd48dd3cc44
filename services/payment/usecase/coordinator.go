package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/adityarama/iuranpay/internal/pkg/logger"
	"github.com/adityarama/iuranpay/internal/pkg/models"
	"github.com/adityarama/iuranpay/services/payment"
)

// redirectURLPattern accepts only http and https redirect targets. Anything
// else (javascript:, ftp:, empty) is an upstream misconfiguration and must
// never be navigated to.
var redirectURLPattern = regexp.MustCompile(`(?i)^https?://`)

// PaymentUC coordinates payment actions and status reconciliation for one
// authenticated subject. All public methods catch their own failures; none
// of them ever returns a raised internal error to the caller beyond the
// single-flight sentinel.
type PaymentUC struct {
	cfg      *models.Config
	gw       payment.PaymentGW
	nav      payment.Navigator
	notices  payment.Notices
	classify payment.ErrorClassifier

	// onUpdated is the caller-supplied success callback, typically a
	// reconciliation pass.
	onUpdated func()
	// watchExpiry re-arms the countdown when the active payment changes
	watchExpiry func(expiry *time.Time, active bool)

	mu         sync.Mutex
	processing bool
	checking   bool
	view       viewState
}

// NewPaymentUC creates the payment coordinator/reconciler
func NewPaymentUC(cfg *models.Config, gw payment.PaymentGW, nav payment.Navigator, notices payment.Notices, classify payment.ErrorClassifier) *PaymentUC {
	if classify == nil {
		classify = payment.DefaultErrorClassifier
	}
	return &PaymentUC{
		cfg:      cfg,
		gw:       gw,
		nav:      nav,
		notices:  notices,
		classify: classify,
	}
}

// SetOnUpdated registers the success callback invoked after a retry or a
// force-check that changed server-side state.
func (u *PaymentUC) SetOnUpdated(fn func()) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.onUpdated = fn
}

// SetExpiryWatcher registers the countdown hook re-armed whenever the
// active payment's expiry changes.
func (u *PaymentUC) SetExpiryWatcher(fn func(expiry *time.Time, active bool)) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.watchExpiry = fn
}

// Initiate creates a payment for the fee's nominal amount with the chosen
// method and branches into the inline or redirect flow. Rapid repeated
// calls are deduplicated by a single-flight guard.
func (u *PaymentUC) Initiate(ctx context.Context, fee *models.Fee, method models.PaymentMethod) {
	if !u.begin() {
		return
	}
	defer u.end()

	charge, err := u.gw.CreatePayment(ctx, &models.CreatePaymentRequest{
		FeeID:         fee.ID,
		Amount:        fee.Amount,
		PaymentMethod: method,
	})
	if err != nil {
		u.fail("create payment", err)
		return
	}

	u.applyCharge(fee.ID, fee.Amount, charge)
}

// Retry creates a replacement payment for a previous attempt. The retry
// chain is permissive: a retry against an already-replaced payment is the
// backend's call to reject, not ours.
func (u *PaymentUC) Retry(ctx context.Context, last *models.Payment) {
	if !u.begin() {
		return
	}
	defer u.end()

	charge, err := u.gw.RetryPayment(ctx, last.ID)
	if err != nil {
		u.fail("retry payment", err)
		return
	}

	if u.applyCharge(last.FeeID, last.Amount, charge) {
		if fn := u.callback(); fn != nil {
			fn()
		}
		u.notices.Info("A new bill was created using your previous payment method")
	}
}

// applyCharge routes a charge response into the inline or redirect flow.
// Returns false when the action was aborted by validation.
func (u *PaymentUC) applyCharge(feeID string, amount int64, charge *models.PaymentCharge) bool {
	if u.isInline(charge) {
		u.setInline(charge, amount)
		return true
	}

	if err := ValidateRedirectURL(charge.PaymentURL); err != nil {
		logger.Warn("Rejecting payment redirect target",
			logger.String("payment_id", charge.PaymentID),
			logger.Err(err))
		u.notices.GlobalError("Payment page address is invalid, please contact the administrator")
		return false
	}

	if err := u.nav.OpenExternal(charge.PaymentURL); err != nil {
		logger.Error("Failed to open payment page", logger.Err(err))
		u.notices.GlobalError("Unable to open the payment page")
		return false
	}
	u.nav.NavigateTo(fmt.Sprintf("/payment/processing?payment_id=%s&fee_id=%s", charge.PaymentID, feeID))
	return true
}

// isInline reports whether the charge belongs to the inline-QR flow and
// carries a renderable code.
func (u *PaymentUC) isInline(charge *models.PaymentCharge) bool {
	return strings.EqualFold(charge.PaymentType, string(models.PaymentMethodQRIS)) &&
		charge.InlineCode() != ""
}

func (u *PaymentUC) setInline(charge *models.PaymentCharge, amount int64) {
	u.mu.Lock()
	u.view.inline = &InlinePayment{
		OrderID:           charge.OrderID,
		Amount:            amount,
		Code:              charge.InlineCode(),
		Expiry:            charge.ExpiryTime,
		DeeplinkURL:       charge.DeeplinkURL,
		MobileDeeplinkURL: charge.MobileDeeplinkURL,
	}
	watch := u.watchExpiry
	u.mu.Unlock()

	if watch != nil {
		watch(charge.ExpiryTime, charge.ExpiryTime != nil)
	}
}

// ForceCheckStatus is the user-facing "check status now" action. It is the
// only force-check call site allowed to navigate: a Paid outcome redirects
// to the success screen.
func (u *PaymentUC) ForceCheckStatus(ctx context.Context, paymentID string) {
	u.mu.Lock()
	if u.checking {
		u.mu.Unlock()
		return
	}
	u.checking = true
	u.mu.Unlock()
	defer func() {
		u.mu.Lock()
		u.checking = false
		u.mu.Unlock()
	}()

	result, err := u.gw.ForceCheck(ctx, paymentID)
	if err != nil {
		u.fail("force check", err)
		return
	}

	status := models.NormalizePaymentStatus(result.Status)

	if result.Updated {
		if fn := u.callback(); fn != nil {
			fn()
		}
		u.notices.Success("Payment status has been updated")
	}

	if status == models.PaymentStatusPaid {
		u.nav.NavigateTo(fmt.Sprintf("/payment/success?payment_id=%s", paymentID))
	}
}

// InlineView returns a copy of the current inline payment view, if any
func (u *PaymentUC) InlineView() *InlinePayment {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.view.inline == nil {
		return nil
	}
	cp := *u.view.inline
	return &cp
}

// FeeStatus returns the last derived fee display status
func (u *PaymentUC) FeeStatus() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.view.feeStatus
}

// LatestPayment returns a copy of the cached latest payment, if any
func (u *PaymentUC) LatestPayment() *models.Payment {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.view.latest == nil {
		return nil
	}
	cp := *u.view.latest
	return &cp
}

// ValidateRedirectURL rejects a missing redirect target or one using a
// disallowed scheme.
func ValidateRedirectURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("payment URL is empty")
	}
	if !redirectURLPattern.MatchString(raw) {
		return fmt.Errorf("payment URL scheme is not allowed: %s", raw)
	}
	return nil
}

// begin acquires the single-flight guard for initiate/retry
func (u *PaymentUC) begin() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.processing {
		return false
	}
	u.processing = true
	return true
}

func (u *PaymentUC) end() {
	u.mu.Lock()
	u.processing = false
	u.mu.Unlock()
}

func (u *PaymentUC) callback() func() {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.onUpdated
}

// fail logs a user-action failure and surfaces it per the classifier
func (u *PaymentUC) fail(action string, err error) {
	logger.Error("Payment action failed",
		logger.String("action", action),
		logger.Err(err))

	class, message, duration := u.classify(err)
	switch class {
	case payment.ErrorClassGlobal:
		u.notices.GlobalError(message)
	default:
		u.notices.Toast(message, duration)
	}
}
