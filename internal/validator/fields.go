package validator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// The field types below accept both typed JSON values and their string
// spellings, so the same request struct binds from JSON bodies and from
// multipart forms (gin calls UnmarshalParam for form values).

var nullLiteral = []byte("null")

func unquote(data []byte) (string, bool, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, nullLiteral) {
		return "", true, nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", false, err
		}
		return s, false, nil
	}
	return string(data), false, nil
}

// FlexBool is true only for JSON true or the string "true" (any case).
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	s, isNull, err := unquote(data)
	if err != nil {
		return err
	}
	if isNull {
		return nil
	}
	return b.UnmarshalParam(s)
}

func (b *FlexBool) UnmarshalParam(param string) error {
	*b = FlexBool(strings.EqualFold(strings.TrimSpace(param), "true"))
	return nil
}

// FlexInt accepts 3, "3" or "". Empty strings decode as zero.
type FlexInt int

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	s, isNull, err := unquote(data)
	if err != nil {
		return err
	}
	if isNull {
		return nil
	}
	return i.UnmarshalParam(s)
}

func (i *FlexInt) UnmarshalParam(param string) error {
	param = strings.TrimSpace(param)
	if param == "" {
		*i = 0
		return nil
	}
	n, err := strconv.Atoi(param)
	if err != nil {
		f, ferr := strconv.ParseFloat(param, 64)
		if ferr != nil || f != float64(int(f)) {
			return fmt.Errorf("invalid integer %q", param)
		}
		n = int(f)
	}
	*i = FlexInt(n)
	return nil
}

// FlexID accepts positive identifiers as numbers or numeric strings.
type FlexID uint

func (id *FlexID) UnmarshalJSON(data []byte) error {
	s, isNull, err := unquote(data)
	if err != nil {
		return err
	}
	if isNull {
		return nil
	}
	return id.UnmarshalParam(s)
}

func (id *FlexID) UnmarshalParam(param string) error {
	param = strings.TrimSpace(param)
	if param == "" || param == "null" {
		*id = 0
		return nil
	}
	n, err := strconv.ParseUint(param, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", param)
	}
	*id = FlexID(n)
	return nil
}

func (id FlexID) Uint() uint { return uint(id) }

// FlexFloat accepts 12.5 or "12.5".
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s, isNull, err := unquote(data)
	if err != nil {
		return err
	}
	if isNull {
		return nil
	}
	return f.UnmarshalParam(s)
}

func (f *FlexFloat) UnmarshalParam(param string) error {
	param = strings.TrimSpace(param)
	if param == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", param)
	}
	*f = FlexFloat(v)
	return nil
}

// OptionalString distinguishes an absent field from an explicit null.
// Set is true whenever the key was present; Value is nil for JSON null and
// for the literal string "null".
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	s, isNull, err := unquote(data)
	if err != nil {
		return err
	}
	if isNull {
		o.Value = nil
		return nil
	}
	return o.UnmarshalParam(s)
}

func (o *OptionalString) UnmarshalParam(param string) error {
	o.Set = true
	if param == "null" {
		o.Value = nil
		return nil
	}
	o.Value = &param
	return nil
}

// String returns the value or "" when unset or null.
func (o OptionalString) String() string {
	if o.Value == nil {
		return ""
	}
	return *o.Value
}

// RawValue keeps any JSON scalar as loosely typed input for fields whose
// parse failure has its own error message (grades).
type RawValue struct {
	Set   bool
	Value interface{}
}

func (r *RawValue) UnmarshalJSON(data []byte) error {
	r.Set = true
	return json.Unmarshal(data, &r.Value)
}

func (r *RawValue) UnmarshalParam(param string) error {
	r.Set = true
	r.Value = param
	return nil
}
