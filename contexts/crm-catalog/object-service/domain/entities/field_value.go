package entities

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// FieldKind discriminates the closed set of field value types.
type FieldKind string

const (
	KindString FieldKind = "string"
	KindNumber FieldKind = "number"
	KindBool   FieldKind = "bool"
	KindDate   FieldKind = "date"
)

// FieldValue is a tagged union over the supported dynamic field types. The
// zero value is a valid empty string field.
type FieldValue struct {
	Kind FieldKind
	Str  string
	Num  float64
	Bool bool
	Date time.Time
}

func StringValue(v string) FieldValue  { return FieldValue{Kind: KindString, Str: v} }
func NumberValue(v float64) FieldValue { return FieldValue{Kind: KindNumber, Num: v} }
func BoolValue(v bool) FieldValue      { return FieldValue{Kind: KindBool, Bool: v} }
func DateValue(v time.Time) FieldValue { return FieldValue{Kind: KindDate, Date: v.UTC()} }

// String renders the value for display and substring matching. Dates render
// as RFC 3339, numbers without a trailing ".0" for integral values.
func (v FieldValue) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindDate:
		return v.Date.UTC().Format(time.RFC3339)
	default:
		return v.Str
	}
}

// MarshalJSON emits the bare JSON value; the kind is carried by the value's
// JSON type, with dates as RFC 3339 strings.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindDate:
		return json.Marshal(v.Date.UTC().Format(time.RFC3339))
	default:
		return json.Marshal(v.Str)
	}
}

// UnmarshalJSON infers the kind from the bare JSON value. Strings that parse
// as RFC 3339 timestamps become dates; anything else stays a string.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch value := raw.(type) {
	case string:
		if date, err := time.Parse(time.RFC3339, value); err == nil {
			*v = DateValue(date)
			return nil
		}
		*v = StringValue(value)
		return nil
	case float64:
		*v = NumberValue(value)
		return nil
	case bool:
		*v = BoolValue(value)
		return nil
	case nil:
		*v = StringValue("")
		return nil
	default:
		return fmt.Errorf("unsupported field value type %T", raw)
	}
}

// Fields is the dynamic field map of an object, keyed by field name.
type Fields map[string]FieldValue

// Clone returns an independent copy; mutating the copy never touches the
// original map.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	clone := make(Fields, len(f))
	for name, value := range f {
		clone[name] = value
	}
	return clone
}
