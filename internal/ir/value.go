package ir

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"unicode/utf16"
)

// FieldValue is a sealed interface over the value types a block field may
// hold. Only FieldNull, FieldString, FieldInt, and FieldBool implement it.
// No float variant: field values feed canonical hashing and code
// generation, both of which require byte-stable formatting.
type FieldValue interface {
	fieldValue() // sealed

	// Render returns the value as it appears when substituted into a
	// code template. Null renders as the empty string.
	Render() string
}

// FieldNull is an explicit null field value.
type FieldNull struct{}

func (FieldNull) fieldValue()    {}
func (FieldNull) Render() string { return "" }

// MarshalJSON implements json.Marshaler.
func (FieldNull) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// FieldString is a string field value.
type FieldString string

func (FieldString) fieldValue()      {}
func (v FieldString) Render() string { return string(v) }

// FieldInt is an integer field value. Always int64.
type FieldInt int64

func (FieldInt) fieldValue()      {}
func (v FieldInt) Render() string { return strconv.FormatInt(int64(v), 10) }

// FieldBool is a boolean field value.
type FieldBool bool

func (FieldBool) fieldValue() {}
func (v FieldBool) Render() string {
	if v {
		return "true"
	}
	return "false"
}

// FieldObject maps field names to values. Use SortedKeys for
// deterministic iteration.
type FieldObject map[string]FieldValue

// Clone returns a copy of the object. Values are immutable, so a shallow
// copy of the map suffices.
func (o FieldObject) Clone() FieldObject {
	if o == nil {
		return nil
	}
	out := make(FieldObject, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Merge returns a new object with overrides applied over o.
// Override values win on key collision.
func (o FieldObject) Merge(overrides FieldObject) FieldObject {
	out := o.Clone()
	if out == nil {
		out = make(FieldObject, len(overrides))
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code
// units). Go's sort.Strings compares UTF-8 bytes, which orders supplementary
// plane characters differently.
func (o FieldObject) SortedKeys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

func compareUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	n := min(len(a16), len(b16))
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}

// FieldFromGo converts a plain Go value (as produced by yaml/json/cue
// decoding) into a FieldValue. Floats are rejected.
func FieldFromGo(v any) (FieldValue, error) {
	switch val := v.(type) {
	case nil:
		return FieldNull{}, nil
	case FieldValue:
		return val, nil
	case string:
		return FieldString(val), nil
	case int:
		return FieldInt(val), nil
	case int64:
		return FieldInt(val), nil
	case bool:
		return FieldBool(val), nil
	case float64, float32:
		return nil, fmt.Errorf("float field values are forbidden: %v", val)
	default:
		return nil, fmt.Errorf("unsupported field value type: %T", v)
	}
}

// FieldObjectFromGo converts a map of plain Go values into a FieldObject.
func FieldObjectFromGo(m map[string]any) (FieldObject, error) {
	out := make(FieldObject, len(m))
	for k, v := range m {
		fv, err := FieldFromGo(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		out[k] = fv
	}
	return out, nil
}

// UnmarshalJSON implements json.Unmarshaler for FieldObject.
// JSON numbers must be integers; any fractional value is rejected.
func (o *FieldObject) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*o = make(FieldObject, len(raw))
	for k, v := range raw {
		fv, err := unmarshalFieldValue(v)
		if err != nil {
			return fmt.Errorf("field %q: %w", k, err)
		}
		(*o)[k] = fv
	}
	return nil
}

func unmarshalFieldValue(data []byte) (FieldValue, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty JSON value")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return FieldString(s), nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return FieldBool(b), nil
	case 'n':
		return FieldNull{}, nil
	case '{', '[':
		return nil, fmt.Errorf("nested field values are not supported")
	default:
		n, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("field numbers must be integers: %s", data)
		}
		return FieldInt(n), nil
	}
}
