package models

import (
	"time"
)

// FailedMessage is published to the dead letter topic when a record cannot be delivered.
type FailedMessage struct {
	Payload    []byte    `json:"payload"`
	Stream     string    `json:"stream,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	CauseError error     `json:"-"`

	// Error is a string representation of CauseError
	Error string `json:"error"`
}
