package constants

// Push-channel message types
const (
	TypeNotification    = "notification"
	TypeDashboardUpdate = "dashboard_update"
)

// CloseManualDisconnect is the sentinel close code sent on an intentional
// teardown. A close carrying it must never trigger an auto-reconnect.
const CloseManualDisconnect = 4000
