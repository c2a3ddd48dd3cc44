package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/adityarama/iuranpay/internal/pkg/logger"
	"github.com/adityarama/iuranpay/internal/pkg/models"
)

// Reconcile re-derives the fee's display state from the latest related
// payment. It is idempotent: re-running it with unchanged server state
// never re-fires side effects. Every trigger (scheduled poll, pushed
// event, countdown expiry) converges here; failures leave the previous
// cached state in effect until the next successful pass.
func (u *PaymentUC) Reconcile(ctx context.Context, fee *models.Fee) {
	payments, err := u.gw.ListPayments(ctx, fee.UserID)
	if err != nil {
		logger.Warn("Reconciliation fetch failed, keeping cached state",
			logger.String("fee_id", fee.ID),
			logger.Err(err))
		return
	}

	latest := latestForFee(payments, fee.ID)
	if latest == nil {
		u.clearPaymentState(fee)
		return
	}

	// A pending raw status gets one bounded force-check round-trip so the
	// client-visible state catches up with the gateway without waiting for
	// the next poll. This call site never navigates.
	if strings.EqualFold(latest.RawStatus, "pending") {
		result, err := u.gw.ForceCheck(ctx, latest.ID)
		if err != nil {
			logger.Warn("Force check during reconciliation failed",
				logger.String("payment_id", latest.ID),
				logger.Err(err))
		} else if result.Status != "" {
			latest.RawStatus = result.Status
		}
	}

	status := models.NormalizePaymentStatus(latest.RawStatus)
	feeStatus := models.DeriveFeeStatus(latest, fee.Status)

	u.mu.Lock()
	record, fireExpiry := Transition(u.view.record, status)
	u.view.record = record
	u.view.latest = latest
	u.view.feeStatus = feeStatus
	watch := u.watchExpiry
	u.mu.Unlock()

	if fireExpiry {
		u.notices.Info("Your payment has expired, please create a new bill")
	}

	if watch != nil {
		watch(latest.ExpiryTime, status == models.PaymentStatusPending)
	}
}

// clearPaymentState drops the cached payment view when no related payment
// exists; the fee falls back to its server-reported status.
func (u *PaymentUC) clearPaymentState(fee *models.Fee) {
	u.mu.Lock()
	u.view.latest = nil
	u.view.inline = nil
	u.view.feeStatus = models.DeriveFeeStatus(nil, fee.Status)
	watch := u.watchExpiry
	u.mu.Unlock()

	if watch != nil {
		watch(nil, false)
	}
}

// latestForFee filters payments to the fee and returns the most recently
// created one, or nil.
func latestForFee(payments []models.Payment, feeID string) *models.Payment {
	related := make([]models.Payment, 0, len(payments))
	for _, p := range payments {
		if p.FeeID == feeID {
			related = append(related, p)
		}
	}
	if len(related) == 0 {
		return nil
	}

	sort.Slice(related, func(i, j int) bool {
		return related[i].CreatedAt.After(related[j].CreatedAt)
	})

	latest := related[0]
	return &latest
}

// Run executes the reconciliation loop until the context is cancelled.
// The cadence is owned here, not by any view lifecycle.
func (u *PaymentUC) Run(ctx context.Context, fee *models.Fee, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	u.Reconcile(ctx, fee)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			u.Reconcile(ctx, fee)
		}
	}
}
