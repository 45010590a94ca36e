package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/datafocus/go-inventory-sink/internal/common"
	"github.com/datafocus/go-inventory-sink/internal/common/pyliteral"
)

// LineItems decodes either a JSON array or a string holding a serialized list.
// The string form may be JSON text or a python literal, e.g. "[{'quantity': 2}]".
type LineItems[T any] []T

func (l *LineItems[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	if data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("%w: %v", common.ErrInvalidLineItems, err)
		}
		return l.parseText(text)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidLineItems, err)
	}
	*l = items

	return nil
}

func (l *LineItems[T]) parseText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		*l = nil
		return nil
	}

	var items []T
	if err := json.Unmarshal([]byte(text), &items); err == nil {
		*l = items
		return nil
	}

	converted, err := pyliteral.ToJSON(text)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidLineItems, err)
	}
	if err := json.Unmarshal(converted, &items); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidLineItems, err)
	}
	*l = items

	return nil
}
