package neutrino

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var nullLiteral = []byte("null")

// decode maps a success body onto T. Any failure keeps the raw body for diagnosis.
func decode[T any](body []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, &DecodeError{Body: body, Err: err}
	}
	return &v, nil
}

// wireObject is a JSON object split into its raw members.
// Response types decode through it so that drifting field names can be unified.
type wireObject map[string]stdjson.RawMessage

func parseObject(data []byte) (wireObject, error) {
	var obj wireObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.New("expected a JSON object, got null")
	}
	return obj, nil
}

// lookup returns the first non-null member among names, tried in order.
func (o wireObject) lookup(names ...string) (stdjson.RawMessage, string, bool) {
	for _, name := range names {
		raw, ok := o[name]
		if !ok || isNull(raw) {
			continue
		}
		return raw, name, true
	}
	return nil, "", false
}

// field decodes a required member into dst. The first name is the logical
// field name; the others are accepted wire aliases.
func (o wireObject) field(dst any, names ...string) error {
	raw, name, ok := o.lookup(names...)
	if !ok {
		return fmt.Errorf("missing field %q", names[0])
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("field %q: %w", name, err)
	}
	return nil
}

// fields decodes a batch of required members and joins every failure.
func (o wireObject) fields(specs ...fieldSpec) error {
	errs := make([]error, 0, len(specs))
	for _, s := range specs {
		if err := o.field(s.dst, s.names...); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type fieldSpec struct {
	dst   any
	names []string
}

func member(dst any, names ...string) fieldSpec { return fieldSpec{dst: dst, names: names} }

// optionalField decodes a nested record that the service may send as a
// populated object, as {} or as null, or may omit. Only a populated object
// yields a value.
func optionalField[T any](o wireObject, dst **T, names ...string) error {
	raw, name, ok := o.lookup(names...)
	if !ok {
		*dst = nil
		return nil
	}
	v, err := optionalObject[T](raw)
	if err != nil {
		return fmt.Errorf("field %q: %w", name, err)
	}
	*dst = v
	return nil
}

// optionalObject treats an absent value, null and {} as no value.
func optionalObject[T any](raw []byte) (*T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || isNull(trimmed) {
		return nil, nil
	}
	if trimmed[0] == '{' {
		var members map[string]stdjson.RawMessage
		if err := json.Unmarshal(trimmed, &members); err != nil {
			return nil, err
		}
		if len(members) == 0 {
			return nil, nil
		}
	}
	var v T
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// isNull also reports true for an empty member, which is how json-iterator
// hands back a JSON null inside a RawMessage.
func isNull(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, nullLiteral)
}

// parseToken validates text against a closed set of wire tokens.
func parseToken[T ~string](kind string, text []byte, allowed ...T) (T, error) {
	s := T(text)
	for _, a := range allowed {
		if s == a {
			return s, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q", kind, string(text))
}
