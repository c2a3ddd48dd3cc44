package notification

import (
	"sync"
	"time"

	"github.com/adityarama/iuranpay/internal/pkg/logger"
	"github.com/adityarama/iuranpay/internal/pkg/models"
)

// autoCloseAfter is how long a non-payment alert stays up before
// auto-dismissing
const autoCloseAfter = 5 * time.Second

// Permission mirrors the native notification permission states
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Presenter is the native alert surface. A nil presenter means the
// capability is absent and every bridge operation is a safe no-op.
type Presenter interface {
	// RequestPermission prompts the user once; subsequent calls return the
	// persisted value without re-prompting.
	RequestPermission() Permission
	// Present renders an alert keyed by the notification ID. Alerts with
	// requireInteraction do not auto-dismiss.
	Present(n models.Notification, requireInteraction bool) error
	// Dismiss closes the alert with the given ID, if still visible
	Dismiss(id string)
}

// Navigator focuses the application and moves the current view when an
// alert is clicked.
type Navigator interface {
	Focus()
	NavigateTo(path string)
}

// Bridge requests notification permission and renders native alerts for
// pushed events. Repeated delivery of the same notification ID replaces
// the alert instead of duplicating it.
type Bridge struct {
	presenter Presenter
	nav       Navigator

	mu         sync.Mutex
	permission Permission
	asked      bool
	active     map[string]*time.Timer
}

// NewBridge creates a notification bridge. presenter may be nil when the
// native capability is absent.
func NewBridge(presenter Presenter, nav Navigator) *Bridge {
	return &Bridge{
		presenter:  presenter,
		nav:        nav,
		permission: PermissionDefault,
		active:     make(map[string]*time.Timer),
	}
}

// IsSupported reports whether a native notification surface exists
func (b *Bridge) IsSupported() bool {
	return b.presenter != nil
}

// RequestPermission asks for notification permission once per session.
// An already-granted or denied value is returned without re-prompting.
func (b *Bridge) RequestPermission() Permission {
	if !b.IsSupported() {
		return PermissionDenied
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.asked || b.permission != PermissionDefault {
		return b.permission
	}

	b.asked = true
	b.permission = b.presenter.RequestPermission()
	return b.permission
}

// Show renders a native alert for the notification. Payment-category
// alerts require explicit interaction; all others auto-close after 5
// seconds. Returns false when the alert was not shown.
func (b *Bridge) Show(n models.Notification) bool {
	if !b.IsSupported() {
		return false
	}

	b.mu.Lock()
	if b.permission != PermissionGranted {
		b.mu.Unlock()
		return false
	}

	// Redelivery of a known ID replaces the pending auto-close.
	if timer, ok := b.active[n.ID]; ok {
		timer.Stop()
		delete(b.active, n.ID)
	}

	requireInteraction := n.Category == models.NotificationCategoryPayment
	if !requireInteraction {
		id := n.ID
		b.active[id] = time.AfterFunc(autoCloseAfter, func() {
			b.dismiss(id)
		})
	}
	b.mu.Unlock()

	if err := b.presenter.Present(n, requireInteraction); err != nil {
		logger.Warn("Failed to present notification",
			logger.String("notification_id", n.ID),
			logger.Err(err))
		return false
	}
	return true
}

// HandleClick focuses the application and navigates to the notification's
// target, then dismisses the alert.
func (b *Bridge) HandleClick(n models.Notification) {
	if b.nav != nil {
		b.nav.Focus()
		if n.TargetURL != "" {
			b.nav.NavigateTo(n.TargetURL)
		}
	}
	b.dismiss(n.ID)
}

func (b *Bridge) dismiss(id string) {
	b.mu.Lock()
	if timer, ok := b.active[id]; ok {
		timer.Stop()
		delete(b.active, id)
	}
	b.mu.Unlock()

	if b.presenter != nil {
		b.presenter.Dismiss(id)
	}
}

// Shutdown cancels all pending auto-close timers
func (b *Bridge) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, timer := range b.active {
		timer.Stop()
		delete(b.active, id)
	}
}
