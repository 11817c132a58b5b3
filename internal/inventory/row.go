package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Row is one inventory record. Field order follows the source columns and
// survives persistence; values are either string or float64.
type Row struct {
	keys   []string
	values map[string]any
}

// Field is a single name/value pair used to build rows.
type Field struct {
	Name  string
	Value any
}

// NewRow builds a row from fields in the given order.
func NewRow(fields ...Field) *Row {
	r := &Row{}
	for _, f := range fields {
		r.Set(f.Name, f.Value)
	}
	return r
}

// Set stores value under name, appending the name if it is new.
func (r *Row) Set(name string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.values[name] = normalizeValue(value)
}

// Get returns the raw value stored under name.
func (r *Row) Get(name string) (any, bool) {
	if r == nil || r.values == nil {
		return nil, false
	}
	v, ok := r.values[name]
	return v, ok
}

// Text returns the display form of the value stored under name.
func (r *Row) Text(name string) string {
	v, _ := r.Get(name)
	return FormatValue(v)
}

// Keys returns the field names in natural order.
func (r *Row) Keys() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.keys...)
}

func (r *Row) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Clone returns a deep copy.
func (r *Row) Clone() *Row {
	if r == nil {
		return nil
	}
	out := &Row{keys: append([]string(nil), r.keys...), values: make(map[string]any, len(r.values))}
	for k, v := range r.values {
		out.values[k] = v
	}
	return out
}

// Equal reports whether both rows carry the same fields, in the same order,
// with the same values.
func (r *Row) Equal(other *Row) bool {
	if r.Len() != other.Len() {
		return false
	}
	for i, k := range r.keys {
		if other.keys[i] != k {
			return false
		}
		if r.values[k] != other.values[k] {
			return false
		}
	}
	return true
}

// String concatenates every field name and value, lower-cased. Used for search.
func (r *Row) String() string {
	var b strings.Builder
	for _, k := range r.keys {
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(FormatValue(r.values[k]))
		b.WriteByte(' ')
	}
	return b.String()
}

func (r *Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("row: expected object, got %v", tok)
	}
	*r = Row{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("row: unexpected key %v", tok)
		}
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("row field %q: %w", name, err)
		}
		switch v := raw.(type) {
		case json.Number:
			f, err := v.Float64()
			if err != nil {
				r.Set(name, v.String())
				continue
			}
			r.Set(name, f)
		case string:
			r.Set(name, v)
		case nil:
			r.Set(name, "")
		default:
			r.Set(name, fmt.Sprint(v))
		}
	}
	_, err = dec.Token()
	return err
}

// ParseValue turns text that parses fully as a finite number into float64;
// anything else is returned unchanged.
func ParseValue(s string) any {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	return f
}

// FormatValue renders a stored value for display.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return ""
	case string, float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case int32:
		return float64(val)
	case uint:
		return float64(val)
	case uint64:
		return float64(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
