package models

import (
	"time"
)

// Fee represents a billing obligation for one billing period.
// Status is derived client-side from the latest related payment; the
// server-reported value is only a fallback when no payment exists.
type Fee struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Category  string    `json:"category" db:"category"`
	Amount    int64     `json:"amount" db:"amount"`
	Period    string    `json:"period" db:"period"`
	DueDate   time.Time `json:"due_date" db:"due_date"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
