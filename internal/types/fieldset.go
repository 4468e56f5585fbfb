// Package types provides type definitions for structured data used throughout the card copy service.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Conventional field names callers use for well-known card attributes.
// Lookups walk each list in order; the first non-empty value wins.
var (
	SubjectKeys     = []string{"card_title", "title", "name"}
	DescriptionKeys = []string{"main_description", "description", "content"}
	AudienceKeys    = []string{"target_audience", "audience"}
	CTAKeys         = []string{"call_to_action", "cta"}
)

// Field is a single named text value supplied by the caller.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FieldSet is an ordered, immutable mapping of field name to text value.
// Order follows the order in which the caller supplied the fields.
type FieldSet struct {
	fields []Field
}

// NewFieldSet builds a FieldSet from fields in order. A repeated name keeps
// its first position and takes the last value.
func NewFieldSet(fields ...Field) FieldSet {
	var out []Field
	for _, f := range fields {
		out = upsertField(out, f.Name, f.Value)
	}
	return FieldSet{fields: out}
}

// Len returns the number of fields.
func (s FieldSet) Len() int {
	return len(s.fields)
}

// Fields returns a copy of the fields in order.
func (s FieldSet) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Names returns the field names in order.
func (s FieldSet) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Values returns the field values in order.
func (s FieldSet) Values() []string {
	values := make([]string, len(s.fields))
	for i, f := range s.fields {
		values[i] = f.Value
	}
	return values
}

// Get returns the value stored under name.
func (s FieldSet) Get(name string) (string, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Lookup returns the first non-empty value among names, or "".
func (s FieldSet) Lookup(names ...string) string {
	for _, name := range names {
		if v, ok := s.Get(name); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// With returns a copy of s with name set to value.
func (s FieldSet) With(name, value string) FieldSet {
	return FieldSet{fields: upsertField(s.Fields(), name, value)}
}

// TotalChars returns the summed length of all values in code points.
func (s FieldSet) TotalChars() int {
	total := 0
	for _, f := range s.fields {
		total += len([]rune(f.Value))
	}
	return total
}

func upsertField(fields []Field, name, value string) []Field {
	for i := range fields {
		if fields[i].Name == name {
			fields[i].Value = value
			return fields
		}
	}
	return append(fields, Field{Name: name, Value: value})
}

// MarshalJSON encodes the set as a JSON object preserving field order.
func (s FieldSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range s.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the set, keeping key order.
// Scalars are coerced to text, arrays of scalars are joined with ", ",
// nested objects are dropped.
func (s *FieldSet) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = FieldSet{}
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read field values: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("field values must be a JSON object")
	}

	var fields []Field
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read field name: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected field name token %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("failed to read value of %q: %w", name, err)
		}

		value, keep := coerceValue(raw)
		if !keep {
			continue
		}
		fields = upsertField(fields, name, value)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read field values: %w", err)
	}

	*s = FieldSet{fields: fields}
	return nil
}

// coerceValue converts a raw JSON value to text. The second result is false
// for values that carry no text (objects).
func coerceValue(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", false
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false
		}
		return s, true
	case 'n':
		return "", true
	case '{':
		return "", false
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return "", false
		}
		parts := make([]string, 0, len(items))
		for _, item := range items {
			item = bytes.TrimSpace(item)
			if len(item) == 0 || item[0] == '[' || item[0] == '{' {
				continue
			}
			if v, ok := coerceValue(item); ok && strings.TrimSpace(v) != "" {
				parts = append(parts, v)
			}
		}
		return strings.Join(parts, ", "), true
	default:
		// numbers and booleans keep their literal text
		return string(trimmed), true
	}
}
