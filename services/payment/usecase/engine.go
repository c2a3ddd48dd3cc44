package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/adityarama/iuranpay/internal/pkg/countdown"
	"github.com/adityarama/iuranpay/internal/pkg/eventbus"
	"github.com/adityarama/iuranpay/internal/pkg/logger"
	"github.com/adityarama/iuranpay/internal/pkg/models"
	"github.com/adityarama/iuranpay/internal/pkg/realtime"
	"github.com/adityarama/iuranpay/services/notification"
)

// Subject is the authenticated user the engine reconciles for
type Subject struct {
	UserID string
	Token  string
	Fee    *models.Fee
}

// Engine owns the shared lifecycle of the realtime transport, the polling
// reconciler, the countdown and the notification bridge subscription.
// Push delivery, scheduled polling and countdown expiry all feed the same
// idempotent reconciliation path.
type Engine struct {
	uc     *PaymentUC
	rt     *realtime.Client
	bridge *notification.Bridge
	timer  *countdown.Timer

	pollInterval time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	unsubs  []func()
	subject Subject
	running bool
	wg      sync.WaitGroup
}

// NewEngine wires the engine from its owned collaborators
func NewEngine(uc *PaymentUC, rt *realtime.Client, bridge *notification.Bridge, pollInterval time.Duration) *Engine {
	e := &Engine{
		uc:           uc,
		rt:           rt,
		bridge:       bridge,
		pollInterval: pollInterval,
	}
	e.timer = countdown.New(e.onCountdownExpired)
	uc.SetExpiryWatcher(e.timer.Start)
	return e
}

// Start connects the push channel and launches the reconciliation loop for
// the subject. Starting an already-running engine is a no-op.
func (e *Engine) Start(ctx context.Context, subject Subject) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return nil
	}
	e.subject = subject

	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	e.unsubs = append(e.unsubs,
		e.rt.Subscribe(eventbus.CategoryDashboard, func(payload interface{}) {
			logger.Debug("Dashboard update pushed, reconciling")
			e.uc.Reconcile(runCtx, subject.Fee)
		}),
		e.rt.Subscribe(eventbus.CategoryNotification, func(payload interface{}) {
			e.handleNotification(runCtx, payload, subject.Fee)
		}),
		e.rt.Subscribe(eventbus.CategoryConnection, func(payload interface{}) {
			if connected, ok := payload.(bool); ok && connected {
				// Catch up on anything missed while offline.
				e.uc.Reconcile(runCtx, subject.Fee)
			}
		}),
	)

	e.running = true
	e.mu.Unlock()

	if err := e.rt.Connect(subject.UserID, subject.Token); err != nil {
		logger.Warn("Realtime connect rejected", logger.Err(err))
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.uc.Run(runCtx, subject.Fee, e.pollInterval)
	}()

	return nil
}

// handleNotification shows a pushed notification and reconciles when it
// concerns a payment.
func (e *Engine) handleNotification(ctx context.Context, payload interface{}, fee *models.Fee) {
	raw, ok := payload.(json.RawMessage)
	if !ok {
		return
	}

	var n models.Notification
	if err := json.Unmarshal(raw, &n); err != nil {
		logger.Warn("Dropping malformed notification payload", logger.Err(err))
		return
	}

	e.bridge.Show(n)

	if n.Category == models.NotificationCategoryPayment {
		e.uc.Reconcile(ctx, fee)
	}
}

// onCountdownExpired routes a countdown crossing into the same
// reconciliation path a push event takes.
func (e *Engine) onCountdownExpired() {
	e.mu.Lock()
	fee := e.subject.Fee
	running := e.running
	e.mu.Unlock()

	if !running || fee == nil {
		return
	}

	logger.Info("Payment countdown expired, reconciling",
		logger.String("fee_id", fee.ID))
	e.uc.Reconcile(context.Background(), fee)
}

// Stop tears the engine down: disconnects the socket, cancels polling,
// stops the countdown and drains subscriptions.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	cancel := e.cancel
	unsubs := e.unsubs
	e.cancel = nil
	e.unsubs = nil
	e.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	for _, unsub := range unsubs {
		unsub()
	}
	e.timer.Stop()
	e.rt.Disconnect()
	e.bridge.Shutdown()
	e.wg.Wait()
}

// Running reports whether the engine has been started and not yet stopped
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Status is a snapshot of the engine for the agent's status endpoint
type Status struct {
	ConnectionState   string `json:"connection_state"`
	ReconnectAttempts int    `json:"reconnect_attempts"`
	FeeStatus         string `json:"fee_status"`
	CountdownLabel    string `json:"countdown_label,omitempty"`
}

// Snapshot reports the engine's current state
func (e *Engine) Snapshot() Status {
	return Status{
		ConnectionState:   e.rt.CurrentState().String(),
		ReconnectAttempts: e.rt.ReconnectAttempts(),
		FeeStatus:         e.uc.FeeStatus(),
		CountdownLabel:    e.timer.Label(),
	}
}
