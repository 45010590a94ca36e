package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/datafocus/go-inventory-sink/internal/common"
)

// Date is a calendar date read from an ISO-8601 timestamp and written as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{t}
}

// ParseDate accepts any of common.ISO8601Layouts.
func ParseDate(value string) (Date, error) {
	value = strings.TrimSpace(value)
	for _, layout := range common.ISO8601Layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return Date{t}, nil
		}
	}

	return Date{}, fmt.Errorf("%w: %q", common.ErrInvalidDate, value)
}

// String returns an empty string for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(common.DateFormatYYYYMMDD)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", common.ErrInvalidDate, string(data))
	}
	if s == "" {
		*d = Date{}
		return nil
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed

	return nil
}
