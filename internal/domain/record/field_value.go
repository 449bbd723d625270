package record

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/schema"
	"github.com/shopspring/decimal"
)

// ValueKind tags the runtime type of a field value
type ValueKind string

const (
	KindString ValueKind = "string"
	KindNumber ValueKind = "number"
	KindDate   ValueKind = "date"
	KindBool   ValueKind = "boolean"
)

// Date values accept either a bare date or a full RFC 3339 timestamp.
const dateLayout = "2006-01-02"

// FieldValue is a tagged variant over the primitive kinds a record field
// may hold. Values are validated against the registry at the boundary and
// never treated as raw untyped input past it.
type FieldValue struct {
	Kind ValueKind
	Str  string
	Num  decimal.Decimal
	Date time.Time
	Bool bool
}

// StringValue creates a string field value
func StringValue(s string) FieldValue {
	return FieldValue{Kind: KindString, Str: s}
}

// NumberValue creates a numeric field value
func NumberValue(d decimal.Decimal) FieldValue {
	return FieldValue{Kind: KindNumber, Num: d}
}

// DateValue creates a date field value
func DateValue(t time.Time) FieldValue {
	return FieldValue{Kind: KindDate, Date: t}
}

// BoolValue creates a boolean field value
func BoolValue(b bool) FieldValue {
	return FieldValue{Kind: KindBool, Bool: b}
}

// Number returns the numeric value, reporting whether the value is numeric
func (v FieldValue) Number() (decimal.Decimal, bool) {
	if v.Kind != KindNumber {
		return decimal.Zero, false
	}
	return v.Num, true
}

// ConformsTo reports whether the value's kind is acceptable for the given
// field type. Dropdown option membership is checked separately by the
// validator; formula values are always produced by the evaluator.
func (v FieldValue) ConformsTo(fieldType schema.FieldType) bool {
	switch fieldType {
	case schema.FieldTypeString, schema.FieldTypeDropdown:
		return v.Kind == KindString
	case schema.FieldTypeNumber, schema.FieldTypeFormula:
		return v.Kind == KindNumber
	case schema.FieldTypeDate:
		return v.Kind == KindDate
	case schema.FieldTypeBoolean:
		return v.Kind == KindBool
	}
	return false
}

// Interface returns the value as a plain Go value for comparison and
// condition matching
func (v FieldValue) Interface() any {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return v.Num
	case KindDate:
		return v.Date
	case KindBool:
		return v.Bool
	}
	return nil
}

// MarshalJSON encodes the value as its underlying primitive
func (v FieldValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		// decimal.Decimal marshals as a quoted string by default, which
		// would come back from JSONB as a string kind. Emit the raw
		// number so the round trip preserves the numeric kind.
		return []byte(v.Num.String()), nil
	case KindDate:
		return json.Marshal(v.Date.Format(time.RFC3339))
	case KindBool:
		return json.Marshal(v.Bool)
	}
	return nil, fmt.Errorf("field value has unknown kind %q", v.Kind)
}

// UnmarshalJSON decodes a primitive JSON value into a tagged variant.
// Strings that parse as dates become date values.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch val := raw.(type) {
	case bool:
		*v = BoolValue(val)
		return nil
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		if err != nil {
			return fmt.Errorf("invalid numeric field value %q: %w", val.String(), err)
		}
		*v = NumberValue(d)
		return nil
	case string:
		if t, err := time.Parse(time.RFC3339, val); err == nil {
			*v = DateValue(t)
			return nil
		}
		if t, err := time.Parse(dateLayout, val); err == nil {
			*v = DateValue(t)
			return nil
		}
		*v = StringValue(val)
		return nil
	case nil:
		return fmt.Errorf("field value cannot be null")
	}
	return fmt.Errorf("field value must be a string, number or boolean")
}

// FieldValues maps field-definition names to typed values. Keys are
// restricted to definitions applicable to the record's type.
type FieldValues map[string]FieldValue

// Clone returns a shallow copy of the field map
func (f FieldValues) Clone() FieldValues {
	out := make(FieldValues, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Value implements driver.Valuer for JSONB persistence
func (f FieldValues) Value() (driver.Value, error) {
	if f == nil {
		return "{}", nil
	}
	data, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for JSONB persistence
func (f *FieldValues) Scan(value any) error {
	if value == nil {
		*f = FieldValues{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into FieldValues", value)
	}
	if len(data) == 0 {
		*f = FieldValues{}
		return nil
	}
	return json.Unmarshal(data, f)
}
