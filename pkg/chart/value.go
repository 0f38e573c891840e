package chart

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/matzehuels/chartstack/pkg/errors"
)

// Value is a single axis value of a data point: either numeric or a
// categorical string. String values are encoded to stable 1-based integers
// during consolidation so geometry only ever computes on numbers.
type Value struct {
	num      float64
	str      string
	isString bool
}

// Num creates a numeric value.
func Num(v float64) Value {
	return Value{num: v}
}

// Str creates a categorical string value.
func Str(s string) Value {
	return Value{str: s, isString: true}
}

// TimeValue creates a numeric value from a timestamp, encoded as epoch
// milliseconds for use with the time scale family.
func TimeValue(t time.Time) Value {
	return Num(float64(t.UnixMilli()))
}

// ValueOf converts common scalar types into a Value. Unsupported types
// yield Num(0) so malformed inputs degrade instead of panicking.
func ValueOf(v any) Value {
	val, err := decodeValue(v)
	if err != nil {
		return Num(0)
	}
	return val
}

// IsString reports whether the value is a categorical string.
func (v Value) IsString() bool { return v.isString }

// Float returns the numeric value. For string values it returns 0; use the
// consolidated string maps for their encoded positions.
func (v Value) Float() float64 {
	if v.isString {
		return 0
	}
	return v.num
}

// Text returns the raw string for categorical values, "" otherwise.
func (v Value) Text() string {
	if v.isString {
		return v.str
	}
	return ""
}

// String renders the value for display.
func (v Value) String() string {
	if v.isString {
		return v.str
	}
	return strconv.FormatFloat(v.num, 'g', -1, 64)
}

// decodeValue converts a decoded TOML/JSON scalar into a Value.
func decodeValue(raw any) (Value, error) {
	switch x := raw.(type) {
	case float64:
		return Num(x), nil
	case float32:
		return Num(float64(x)), nil
	case int:
		return Num(float64(x)), nil
	case int64:
		return Num(float64(x)), nil
	case string:
		return Str(x), nil
	case time.Time:
		return TimeValue(x), nil
	case Value:
		return x, nil
	default:
		return Value{}, errors.New(errors.ErrCodeInvalidInput, "unsupported value type %T", raw)
	}
}

// MarshalJSON emits the raw number or string.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isString {
		return json.Marshal(v.str)
	}
	return json.Marshal(v.num)
}

// UnmarshalJSON accepts a JSON number or string.
func (v *Value) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*v = Num(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Str(s)
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput, "value must be a number or string: %s", string(data))
}

// UnmarshalTOML accepts a TOML number, string or datetime.
func (v *Value) UnmarshalTOML(data any) error {
	val, err := decodeValue(data)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

// MarshalText renders the value for human-readable output.
func (v Value) MarshalText() ([]byte, error) {
	return fmt.Append(nil, v.String()), nil
}
