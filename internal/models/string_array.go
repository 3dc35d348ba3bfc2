package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringArray stores an ordered string list as a JSON text column.
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *StringArray) Scan(value interface{}) error {
	if a == nil {
		return fmt.Errorf("models.StringArray: Scan on nil pointer")
	}
	if value == nil {
		*a = StringArray{}
		return nil
	}

	var raw string
	switch v := value.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("models.StringArray: unsupported Scan type %T", value)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		*a = StringArray{}
		return nil
	}

	var arr []string
	if err := json.Unmarshal([]byte(raw), &arr); err != nil {
		// Comma separated values written by hand into the column.
		arr = nil
		for _, part := range strings.Split(raw, ",") {
			if p := strings.TrimSpace(part); p != "" {
				arr = append(arr, p)
			}
		}
	}
	if arr == nil {
		arr = []string{}
	}
	*a = arr
	return nil
}

// MarshalJSON renders a nil list as [] so clients never see null.
func (a StringArray) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(a))
}

// Clone returns an independent copy.
func (a StringArray) Clone() StringArray {
	if a == nil {
		return StringArray{}
	}
	out := make(StringArray, len(a))
	copy(out, a)
	return out
}
