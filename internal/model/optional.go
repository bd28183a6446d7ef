package model

import (
	"encoding/json"
	"strconv"
)

// Optional is a float64 that may be undefined, such as a margin on zero revenue.
type Optional struct {
	Value float64
	Valid bool
}

// Some returns a defined Optional holding v.
func Some(v float64) Optional {
	return Optional{Value: v, Valid: true}
}

// None returns an undefined Optional.
func None() Optional {
	return Optional{}
}

// Get returns the value and whether it is defined.
func (o Optional) Get() (float64, bool) {
	return o.Value, o.Valid
}

// Format renders the value with the given precision, or na when undefined.
func (o Optional) Format(precision int, na string) string {
	if !o.Valid {
		return na
	}
	return strconv.FormatFloat(o.Value, 'f', precision, 64)
}

// MarshalJSON encodes an undefined value as null.
func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON decodes null as undefined.
func (o *Optional) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = None()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
