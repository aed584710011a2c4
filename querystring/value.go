package querystring

import (
	"encoding/json"
	"math"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a scalar, a list of values or an ordered map of values.
// The zero Value is null.
type Value struct {
	kind   Kind
	text   string
	items  []Value
	fields []Field
}

// Field is a single key/value entry of a Map.
type Field struct {
	Key   string
	Value Value
}

// F is shorthand for Field{Key: key, Value: value}.
func F(key string, value Value) Field {
	return Field{Key: key, Value: value}
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Int returns a number value.
func Int(n int64) Value {
	return Value{kind: KindNumber, text: strconv.FormatInt(n, 10)}
}

// Float returns a number value formatted in its shortest decimal form.
func Float(f float64) Value {
	return Value{kind: KindNumber, text: formatFloat(f)}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, text: strconv.FormatBool(b)}
}

// List returns a list of the given items.
func List(items ...Value) Value {
	return Value{kind: KindList, items: items}
}

// Map returns a map holding fields in the given order.
// A later field with the same key as an earlier one replaces it in place.
func Map(fields ...Field) Value {
	v := Value{kind: KindMap}
	for _, f := range fields {
		v = v.With(f.Key, f.Value)
	}
	return v
}

func number(text string) Value {
	return Value{kind: KindNumber, text: text}
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Text returns the textual form of a scalar. It is empty for null, lists and maps.
func (v Value) Text() string {
	return v.text
}

// Items returns the elements of a list.
func (v Value) Items() []Value {
	return v.items
}

// Fields returns the entries of a map in order.
func (v Value) Fields() []Field {
	return v.fields
}

// Len returns the number of list items or map fields.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.items)
	case KindMap:
		return len(v.fields)
	}
	return 0
}

// Lookup returns the value stored under key in a map.
func (v Value) Lookup(key string) (Value, bool) {
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// With returns a copy of the map v with key set to value.
// An existing key keeps its position. Calling With on a non-map value starts a new map.
func (v Value) With(key string, value Value) Value {
	out := Value{kind: KindMap}
	if v.kind == KindMap {
		out.fields = make([]Field, len(v.fields), len(v.fields)+1)
		copy(out.fields, v.fields)
	}
	for i, f := range out.fields {
		if f.Key == key {
			out.fields[i].Value = value
			return out
		}
	}
	out.fields = append(out.fields, Field{Key: key, Value: value})
	return out
}

// Equal reports whether v and other hold the same variant and contents.
// Map fields are compared in order.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind || v.text != other.text {
		return false
	}
	switch v.kind {
	case KindList:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
	case KindMap:
		if len(v.fields) != len(other.fields) {
			return false
		}
		for i := range v.fields {
			if v.fields[i].Key != other.fields[i].Key || !v.fields[i].Value.Equal(other.fields[i].Value) {
				return false
			}
		}
	}
	return true
}

// Interface converts v into plain Go values: nil, string, json.Number, bool,
// []any and map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.text
	case KindNumber:
		return json.Number(v.text)
	case KindBool:
		return v.text == "true"
	case KindList:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.fields))
		for _, f := range v.fields {
			out[f.Key] = f.Value.Interface()
		}
		return out
	}
	return nil
}

// MarshalJSON encodes v as JSON, keeping map field order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.text)
	case KindNumber, KindBool:
		return []byte(v.text), nil
	case KindList:
		buf := []byte{'['}
		for i, item := range v.items {
			if i > 0 {
				buf = append(buf, ',')
			}
			b, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf = append(buf, b...)
		}
		return append(buf, ']'), nil
	case KindMap:
		buf := []byte{'{'}
		for i, f := range v.fields {
			if i > 0 {
				buf = append(buf, ',')
			}
			k, err := json.Marshal(f.Key)
			if err != nil {
				return nil, err
			}
			b, err := f.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf = append(buf, k...)
			buf = append(buf, ':')
			buf = append(buf, b...)
		}
		return append(buf, '}'), nil
	}
	return []byte("null"), nil
}
