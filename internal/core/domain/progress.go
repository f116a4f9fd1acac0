package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Progress is the completion state the service reports after every turn.
// It is replaced wholesale; the client never recomputes it.
type Progress struct {
	Percentage float64     `json:"percentage"`
	Status     FieldStatus `json:"status"`
	IsComplete bool        `json:"is_complete"`
}

// FieldFlag is one collected field and whether the service has it yet.
type FieldFlag struct {
	Name string
	Done bool
}

// Label renders the field name for display, e.g. "category_name" as "category name".
func (f FieldFlag) Label() string {
	return strings.ReplaceAll(f.Name, "_", " ")
}

// FieldStatus maps field names to completion flags, keeping the order the
// service sent them in.
type FieldStatus []FieldFlag

// UnmarshalJSON reads a JSON object while preserving key order.
// Null or a missing value yields an empty status; non-boolean values count as false.
func (s *FieldStatus) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*s = FieldStatus{}
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("status: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("status: %w", err)
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("status %q: %w", key, err)
		}
		var done bool
		if err := json.Unmarshal(raw, &done); err != nil {
			done = false
		}
		*s = append(*s, FieldFlag{Name: key, Done: done})
	}
	return nil
}

// MarshalJSON writes a JSON object in field order.
func (s FieldStatus) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if f.Done {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Done returns the completion flag for a field and whether the field exists.
func (s FieldStatus) Done(name string) (bool, bool) {
	for _, f := range s {
		if f.Name == name {
			return f.Done, true
		}
	}
	return false, false
}

// ClampedPercentage bounds the reported percentage to 0..100 for drawing.
// The stored value is left as reported.
func (p Progress) ClampedPercentage() float64 {
	switch {
	case p.Percentage < 0:
		return 0
	case p.Percentage > 100:
		return 100
	default:
		return p.Percentage
	}
}

// ChatTurn is one response from the chat service.
type ChatTurn struct {
	// ChatID is only set by start_chat.
	ChatID     string
	AIResponse string
	Progress   Progress
}
