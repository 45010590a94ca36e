package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/datafocus/go-inventory-sink/internal/common"
)

const (
	SingerMessageTypeRecord = "RECORD"
	SingerMessageTypeSchema = "SCHEMA"
	SingerMessageTypeState  = "STATE"
)

// SingerMessage is one line of a singer stream, also used as the kafka message value.
type SingerMessage struct {
	Type   string          `json:"type"`
	Stream string          `json:"stream"`
	Record json.RawMessage `json:"record,omitempty"`
}

func (m SingerMessage) IsRecord() bool {
	return strings.EqualFold(m.Type, SingerMessageTypeRecord)
}

// ParseSingerMessage decodes one envelope. A RECORD needs a stream and an object record,
// other message types only need a type.
func ParseSingerMessage(data []byte) (SingerMessage, error) {
	var msg SingerMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return SingerMessage{}, fmt.Errorf("%w: %w", common.ErrInvalidEnvelope, err)
	}

	if msg.Type == "" {
		return msg, fmt.Errorf("%w: missing type", common.ErrInvalidEnvelope)
	}

	if !msg.IsRecord() {
		return msg, nil
	}

	if msg.Stream == "" {
		return msg, fmt.Errorf("%w: record without stream", common.ErrInvalidEnvelope)
	}

	record := bytes.TrimSpace(msg.Record)
	if len(record) == 0 || record[0] != '{' {
		return msg, fmt.Errorf("%w: record of %s is not an object", common.ErrInvalidEnvelope, msg.Stream)
	}

	return msg, nil
}
