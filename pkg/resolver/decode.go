package resolver

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Kind is the semantic type a value is decoded into.
type Kind string

// Supported kinds.
const (
	KindBool           Kind = "bool"
	KindNumber         Kind = "number"
	KindString         Kind = "string"
	KindOptionalString Kind = "optional-string"
	KindStrings        Kind = "strings"
	KindRecords        Kind = "records"
)

// Kinds returns every supported kind.
func Kinds() []Kind {
	return []Kind{KindBool, KindNumber, KindString, KindOptionalString, KindStrings, KindRecords}
}

// Record is a JSON object stored under a key, such as a custom menu item.
type Record map[string]any

// Decoder turns a raw stored value into T. It reports false when the value
// does not have T's shape.
type Decoder[T any] func(raw json.RawMessage) (T, bool)

func decodeInto[T any](raw json.RawMessage) (T, bool) {
	var v T
	if len(raw) == 0 || isNull(raw) {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

// DecodeBool accepts JSON true and false only.
func DecodeBool(raw json.RawMessage) (bool, bool) { return decodeInto[bool](raw) }

// DecodeNumber accepts any JSON number.
func DecodeNumber(raw json.RawMessage) (float64, bool) { return decodeInto[float64](raw) }

// DecodeString accepts a JSON string.
func DecodeString(raw json.RawMessage) (string, bool) { return decodeInto[string](raw) }

// DecodeOptionalString accepts a JSON string and returns a pointer to it.
func DecodeOptionalString(raw json.RawMessage) (*string, bool) {
	s, ok := DecodeString(raw)
	if !ok {
		return nil, false
	}
	return &s, true
}

// DecodeStrings accepts an array whose elements are all strings.
func DecodeStrings(raw json.RawMessage) ([]string, bool) {
	elems, ok := decodeInto[[]json.RawMessage](raw)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		s, ok := DecodeString(e)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// DecodeRecords accepts an array whose elements are all objects.
func DecodeRecords(raw json.RawMessage) ([]Record, bool) {
	elems, ok := decodeInto[[]json.RawMessage](raw)
	if !ok {
		return nil, false
	}
	out := make([]Record, 0, len(elems))
	for _, e := range elems {
		r, ok := decodeInto[Record](e)
		if !ok {
			return nil, false
		}
		out = append(out, r)
	}
	return out, true
}

// Decode decodes raw as kind. It returns an error wrapping
// ErrUnsupportedValueType when the value has a different shape.
func Decode(kind Kind, raw json.RawMessage) (any, error) {
	var (
		v  any
		ok bool
	)
	switch kind {
	case KindBool:
		v, ok = DecodeBool(raw)
	case KindNumber:
		v, ok = DecodeNumber(raw)
	case KindString:
		v, ok = DecodeString(raw)
	case KindOptionalString:
		v, ok = DecodeOptionalString(raw)
	case KindStrings:
		v, ok = DecodeStrings(raw)
	case KindRecords:
		v, ok = DecodeRecords(raw)
	default:
		return nil, errors.Newf("unknown kind %q", kind)
	}
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedValueType, "value %s is not %s", raw, kind)
	}
	return v, nil
}

// Conforms reports whether raw decodes as kind.
func Conforms(kind Kind, raw json.RawMessage) bool {
	_, err := Decode(kind, raw)
	return err == nil
}
