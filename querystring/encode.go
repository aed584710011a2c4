package querystring

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Option configures Encode.
type Option func(*encoder)

// WithSortedKeys encodes map fields in ascending key order instead of insertion order.
func WithSortedKeys() Option {
	return func(e *encoder) {
		e.sortKeys = true
	}
}

// WithSkipIndices encodes list elements as key[] instead of key[0], key[1], ...
func WithSkipIndices() Option {
	return func(e *encoder) {
		e.skipIndices = true
	}
}

type encoder struct {
	sortKeys    bool
	skipIndices bool
	pairs       []string
}

// Encode serializes v into a query string without a leading "?".
// Only a Map produces output; any other top-level value encodes to "".
func Encode(v Value, opts ...Option) string {
	if v.kind != KindMap {
		return ""
	}

	e := &encoder{}
	for _, opt := range opts {
		opt(e)
	}

	for _, f := range e.ordered(v.fields) {
		e.encode(Escape(f.Key), f.Value)
	}
	return strings.Join(e.pairs, "&")
}

func (e *encoder) encode(prefix string, v Value) {
	switch v.kind {
	case KindNull:
		e.pairs = append(e.pairs, prefix+"=")
	case KindString, KindNumber, KindBool:
		e.pairs = append(e.pairs, prefix+"="+Escape(v.text))
	case KindList:
		for i, item := range v.items {
			if e.skipIndices {
				e.encode(prefix+"[]", item)
			} else {
				e.encode(prefix+"["+strconv.Itoa(i)+"]", item)
			}
		}
	case KindMap:
		for _, f := range e.ordered(v.fields) {
			e.encode(prefix+"["+Escape(f.Key)+"]", f.Value)
		}
	}
}

func (e *encoder) ordered(fields []Field) []Field {
	if !e.sortKeys {
		return fields
	}
	sorted := make([]Field, len(fields))
	copy(sorted, fields)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Key < sorted[j].Key
	})
	return sorted
}

// Escape escapes s as a query component. Spaces become "+" and every byte
// outside the unreserved set A-Z a-z 0-9 - _ . ~ is percent-encoded.
func Escape(s string) string {
	return url.QueryEscape(s)
}
