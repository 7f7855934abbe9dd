package models

import "encoding/json"

// Envelope wraps every Remote Resource API response, success or failure.
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    any                 `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// RawEnvelope is the decoding side: pointer fields detect a missing success or message.
type RawEnvelope struct {
	Success *bool               `json:"success"`
	Message *string             `json:"message"`
	Data    json.RawMessage     `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// ChangeEvent is pushed to an owner's live sessions after a successful mutation.
type ChangeEvent struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
	ID       string `json:"id,omitempty"`
}

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)
