package models

import "encoding/json"

// WSMessage represents the push-channel message envelope
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}
