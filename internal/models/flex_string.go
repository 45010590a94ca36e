package models

import (
	"bytes"
	"encoding/json"
)

// FlexString holds identifiers that upstream sends either as strings or as JSON numbers.
type FlexString string

func (f FlexString) String() string {
	return string(f)
}

func (f FlexString) IsEmpty() bool {
	return f == ""
}

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())

	return nil
}
