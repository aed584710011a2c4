package querystring

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/tidwall/gjson"
)

var (
	// ErrUnsupportedType is returned by FromAny for values it cannot represent.
	ErrUnsupportedType = errors.New("unsupported value type")

	// ErrInvalidJSON is returned by FromJSON for malformed documents.
	ErrInvalidJSON = errors.New("invalid JSON")
)

// FromAny converts plain Go values into a Value.
//
// Supported types are nil, Value, string, bool, all integer and float kinds,
// json.Number, []any, []string, []Value, map[string]any and map[string]string.
// Map keys are sorted.
func FromAny(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return number(strconv.FormatUint(uint64(t), 10)), nil
	case uint8:
		return number(strconv.FormatUint(uint64(t), 10)), nil
	case uint16:
		return number(strconv.FormatUint(uint64(t), 10)), nil
	case uint32:
		return number(strconv.FormatUint(uint64(t), 10)), nil
	case uint64:
		return number(strconv.FormatUint(t, 10)), nil
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case json.Number:
		return number(t.String()), nil
	case []Value:
		return List(t...), nil
	case []string:
		items := make([]Value, len(t))
		for i, s := range t {
			items[i] = String(s)
		}
		return List(items...), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			converted, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items[i] = converted
		}
		return List(items...), nil
	case map[string]string:
		fields := make([]Field, 0, len(t))
		for _, k := range sortedKeys(t) {
			fields = append(fields, F(k, String(t[k])))
		}
		return Value{kind: KindMap, fields: fields}, nil
	case map[string]any:
		fields := make([]Field, 0, len(t))
		for _, k := range sortedKeys(t) {
			converted, err := FromAny(t[k])
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", k, err)
			}
			fields = append(fields, F(k, converted))
		}
		return Value{kind: KindMap, fields: fields}, nil
	}
	return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FromJSON converts a JSON document into a Value, keeping object keys in
// document order. Numbers keep their literal text.
func FromJSON(doc string) (Value, error) {
	if !gjson.Valid(doc) {
		return Value{}, ErrInvalidJSON
	}
	return fromResult(gjson.Parse(doc)), nil
}

func fromResult(r gjson.Result) Value {
	switch r.Type {
	case gjson.String:
		return String(r.Str)
	case gjson.Number:
		return number(r.Raw)
	case gjson.True:
		return Bool(true)
	case gjson.False:
		return Bool(false)
	case gjson.JSON:
		if r.IsArray() {
			var items []Value
			r.ForEach(func(_, item gjson.Result) bool {
				items = append(items, fromResult(item))
				return true
			})
			return List(items...)
		}
		v := Value{kind: KindMap}
		r.ForEach(func(key, item gjson.Result) bool {
			v = v.With(key.Str, fromResult(item))
			return true
		})
		return v
	}
	return Null()
}
