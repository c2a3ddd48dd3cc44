package models

import (
	"time"
)

// Notification categories delivered over the push channel
const (
	NotificationCategoryPayment  = "payment"
	NotificationCategoryAnnounce = "announcement"
	NotificationCategorySystem   = "system"
)

// Notification is a pushed event rendered as a native alert.
// Alerts are keyed by ID so redelivery never duplicates.
type Notification struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	TargetURL string    `json:"target_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
