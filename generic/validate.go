package generic

import (
	"bytes"
	"encoding/json"
)

// BodyError reports a request body that is not a JSON object or whose
// fields have the wrong JSON types.
type BodyError struct {
	Cause error
}

func (e *BodyError) Error() string { return "Invalid request body" }

func (e *BodyError) Unwrap() error { return ErrValidation }

// DecodeObject parses body as a JSON object, keeping field values raw so
// that presence can be checked before typed decoding.
func DecodeObject(body []byte) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, &BodyError{Cause: err}
	}
	if obj == nil {
		return nil, &BodyError{}
	}
	return obj, nil
}

// RequireFields checks fields in the given order and reports the first
// one that is absent, null or an empty string.
func RequireFields(obj map[string]json.RawMessage, fields ...string) error {
	for _, f := range fields {
		raw, ok := obj[f]
		if !ok || isBlank(raw) {
			return &MissingFieldError{Field: f}
		}
	}
	return nil
}

func isBlank(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	return len(v) == 0 || bytes.Equal(v, []byte("null")) || bytes.Equal(v, []byte(`""`))
}

// DecodeInto decodes body into dst, reporting type mismatches as BodyError.
func DecodeInto(body []byte, dst any) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return &BodyError{Cause: err}
	}
	return nil
}
