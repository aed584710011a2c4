package querystring

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// node is the mutable tree Parse builds before freezing it into a Value.
type node struct {
	leaf     bool
	text     string
	keys     []string
	children map[string]*node
}

func newContainer() *node {
	return &node{children: make(map[string]*node)}
}

func (n *node) child(key string) *node {
	if n.leaf {
		*n = *newContainer()
	}
	if c, ok := n.children[key]; ok {
		return c
	}
	c := newContainer()
	n.children[key] = c
	n.keys = append(n.keys, key)
	return c
}

// set stores a scalar under key. A repeated key turns the entry into a list.
func (n *node) set(key, text string) {
	if n.leaf {
		*n = *newContainer()
	}
	existing, ok := n.children[key]
	if !ok {
		n.children[key] = &node{leaf: true, text: text}
		n.keys = append(n.keys, key)
		return
	}
	if existing.leaf {
		prev := existing.text
		*existing = *newContainer()
		existing.set("0", prev)
	}
	existing.set(strconv.Itoa(len(existing.keys)), text)
}

// Parse decodes a query string written in nested-bracket notation.
//
// Segments that are all numeric indices, or empty brackets, become lists
// ordered by index; every empty bracket starts a new element. Scalars always
// decode as strings. A leading "?" is ignored.
func Parse(raw string) (Value, error) {
	root := newContainer()
	raw = strings.TrimPrefix(raw, "?")

	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")

		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return Value{}, fmt.Errorf("invalid key %q: %w", rawKey, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return Value{}, fmt.Errorf("invalid value for %q: %w", key, err)
		}
		if key == "" {
			continue
		}

		segments := splitKey(key)
		parent := root
		for _, seg := range segments[:len(segments)-1] {
			if seg == "" {
				seg = strconv.Itoa(len(parent.keys))
			}
			parent = parent.child(seg)
		}
		last := segments[len(segments)-1]
		if last == "" {
			last = strconv.Itoa(len(parent.keys))
		}
		parent.set(last, value)
	}

	return freeze(root, true), nil
}

// splitKey splits a[b][0] into [a b 0]. Keys with unbalanced brackets are kept whole.
func splitKey(key string) []string {
	open := strings.IndexByte(key, '[')
	if open <= 0 {
		return []string{key}
	}

	segments := []string{key[:open]}
	rest := key[open:]
	for rest != "" {
		if rest[0] != '[' {
			return []string{key}
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return []string{key}
		}
		segments = append(segments, rest[1:end])
		rest = rest[end+1:]
	}
	return segments
}

func freeze(n *node, top bool) Value {
	if n.leaf {
		return String(n.text)
	}
	if !top {
		if indices, ok := listIndices(n.keys); ok {
			items := make([]Value, 0, len(indices))
			for _, idx := range indices {
				items = append(items, freeze(n.children[strconv.Itoa(idx)], false))
			}
			return List(items...)
		}
	}
	fields := make([]Field, 0, len(n.keys))
	for _, k := range n.keys {
		fields = append(fields, F(k, freeze(n.children[k], false)))
	}
	return Value{kind: KindMap, fields: fields}
}

// listIndices reports whether every key is a canonical non-negative integer,
// returning the indices in ascending order.
func listIndices(keys []string) ([]int, bool) {
	if len(keys) == 0 {
		return nil, false
	}
	indices := make([]int, 0, len(keys))
	for _, k := range keys {
		idx, err := strconv.Atoi(k)
		if err != nil || idx < 0 || strconv.Itoa(idx) != k {
			return nil, false
		}
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices, true
}
