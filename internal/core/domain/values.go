package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var jsonNull = []byte("null")

// FlexString is a string field the service may send as a number, bool, or null.
// It always serialises as a JSON string.
type FlexString string

// UnmarshalJSON coerces scalars to their textual form. Null becomes empty.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		*s = ""
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = FlexString(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = FlexString(num.String())
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*s = FlexString(strconv.FormatBool(b))
		return nil
	}

	return fmt.Errorf("%w: expected a scalar, got %s", ErrNormalization, truncate(string(data), 40))
}

// String returns the plain value.
func (s FlexString) String() string {
	return string(s)
}

// FlexFloat is a number the service may send as a numeric string. Anything
// unreadable is 0; decoding never fails.
type FlexFloat float64

// UnmarshalJSON accepts a number or a numeric string.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = 0
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		if v, err := num.Float64(); err == nil {
			*f = FlexFloat(v)
		}
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
			*f = FlexFloat(v)
		}
	}
	return nil
}

// FlexBool is a flag the service may send as a string such as "true" or
// "1". Anything unreadable is false; decoding never fails.
type FlexBool bool

// UnmarshalJSON accepts a bool, a string, or a number.
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	*b = false
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = FlexBool(v)
		return nil
	}
	var text FlexString
	if err := json.Unmarshal(data, &text); err == nil {
		if v, err := strconv.ParseBool(strings.TrimSpace(text.String())); err == nil {
			*b = FlexBool(v)
		}
	}
	return nil
}

// Timeline is a date range. The service sends either an object with
// start_date and end_date or a free-form string; both shapes round-trip.
type Timeline struct {
	StartDate string
	EndDate   string
	// Text holds the free-form form. When set, the dates are empty.
	Text string
	// Raw holds any other shape verbatim, e.g. a list of years.
	Raw json.RawMessage
}

type timelineObject struct {
	StartDate FlexString `json:"start_date"`
	EndDate   FlexString `json:"end_date"`
}

// UnmarshalJSON accepts a start/end object, a scalar, or null. Any other
// shape is kept in Raw unchanged.
func (t *Timeline) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*t = Timeline{}
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return nil
	}

	switch data[0] {
	case '{':
		if obj, ok := decodeTimelineObject(data); ok {
			t.StartDate = obj.StartDate.String()
			t.EndDate = obj.EndDate.String()
			return nil
		}
	case '[':
	default:
		var text FlexString
		if err := json.Unmarshal(data, &text); err == nil {
			t.Text = text.String()
			return nil
		}
	}

	t.Raw = compactRaw(data)
	return nil
}

// decodeTimelineObject reads an object holding only start_date and end_date.
func decodeTimelineObject(data []byte) (timelineObject, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return timelineObject{}, false
	}
	for k := range fields {
		if k != "start_date" && k != "end_date" {
			return timelineObject{}, false
		}
	}
	var obj timelineObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return timelineObject{}, false
	}
	return obj, true
}

// MarshalJSON writes the shape the value was read from.
func (t Timeline) MarshalJSON() ([]byte, error) {
	if len(t.Raw) > 0 {
		return t.Raw, nil
	}
	if t.Text != "" {
		return json.Marshal(t.Text)
	}
	if t.IsZero() {
		return jsonNull, nil
	}
	return json.Marshal(timelineObject{
		StartDate: FlexString(t.StartDate),
		EndDate:   FlexString(t.EndDate),
	})
}

// MarshalYAML mirrors MarshalJSON for YAML encoders.
func (t Timeline) MarshalYAML() (any, error) {
	if len(t.Raw) > 0 {
		return rawValue(t.Raw), nil
	}
	if t.Text != "" {
		return t.Text, nil
	}
	if t.IsZero() {
		return nil, nil
	}
	return map[string]string{"start_date": t.StartDate, "end_date": t.EndDate}, nil
}

// IsZero reports whether no date information is present.
func (t Timeline) IsZero() bool {
	return t.Text == "" && t.StartDate == "" && t.EndDate == "" && len(t.Raw) == 0
}

// Range renders the timeline, using fallback for a missing end date.
func (t Timeline) Range(fallback string) string {
	if len(t.Raw) > 0 {
		return rawText(t.Raw, " - ")
	}
	if t.Text != "" {
		return t.Text
	}
	if t.IsZero() {
		return ""
	}
	end := t.EndDate
	if end == "" {
		end = fallback
	}
	return t.StartDate + " - " + end
}

// String renders the timeline with an empty end date left blank.
func (t Timeline) String() string {
	return strings.TrimSuffix(t.Range(""), " - ")
}

// Description is free text the service sends as a string or a list of lines.
// The shape is preserved so lists render as bullets.
type Description struct {
	Lines  []string
	IsList bool
	// Raw holds any other shape verbatim, e.g. an object.
	Raw json.RawMessage
}

// NewTextDescription wraps a single paragraph.
func NewTextDescription(text string) Description {
	if text == "" {
		return Description{}
	}
	return Description{Lines: []string{text}}
}

// UnmarshalJSON accepts a scalar, a list of scalars, or null. Any other
// shape is kept in Raw unchanged.
func (d *Description) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*d = Description{}
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return nil
	}

	switch data[0] {
	case '[':
		var items []FlexString
		if err := json.Unmarshal(data, &items); err == nil {
			d.IsList = true
			d.Lines = make([]string, 0, len(items))
			for _, item := range items {
				d.Lines = append(d.Lines, item.String())
			}
			return nil
		}
	case '{':
	default:
		var text FlexString
		if err := json.Unmarshal(data, &text); err == nil {
			*d = NewTextDescription(text.String())
			return nil
		}
	}

	d.Raw = compactRaw(data)
	return nil
}

// MarshalJSON writes the shape the value was read from.
func (d Description) MarshalJSON() ([]byte, error) {
	if len(d.Raw) > 0 {
		return d.Raw, nil
	}
	if d.IsList {
		lines := d.Lines
		if lines == nil {
			lines = []string{}
		}
		return json.Marshal(lines)
	}
	return json.Marshal(d.Text())
}

// MarshalYAML mirrors MarshalJSON for YAML encoders.
func (d Description) MarshalYAML() (any, error) {
	if len(d.Raw) > 0 {
		return rawValue(d.Raw), nil
	}
	if d.IsList {
		return d.Lines, nil
	}
	return d.Text(), nil
}

// Text joins the lines with a single space.
func (d Description) Text() string {
	if len(d.Raw) > 0 {
		return rawText(d.Raw, " ")
	}
	return strings.Join(d.Lines, " ")
}

// IsZero reports whether there is no text.
func (d Description) IsZero() bool {
	if len(d.Raw) > 0 {
		return rawText(d.Raw, " ") == ""
	}
	for _, l := range d.Lines {
		if l != "" {
			return false
		}
	}
	return true
}

// compactRaw copies data without insignificant whitespace, matching what
// json.Marshal emits for it.
func compactRaw(data []byte) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return append(json.RawMessage(nil), data...)
	}
	return buf.Bytes()
}

// rawValue decodes raw for encoders that cannot take JSON directly.
func rawValue(raw json.RawMessage) any {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

// rawText renders an arbitrary JSON value as plain text. List items are
// joined with sep; object fields render as "key: value" in key order.
func rawText(raw json.RawMessage, sep string) string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return string(raw)
	}
	return plainText(v, sep)
}

func plainText(v any, sep string) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if text := plainText(item, sep); text != "" {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, sep)
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			if text := plainText(v[k], sep); text != "" {
				parts = append(parts, k+": "+text)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
