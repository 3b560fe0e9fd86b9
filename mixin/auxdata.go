// Package mixin holds the capability state entities compose: auxiliary
// key/value storage, tags, data-source classification, selection
// expressions, and labels. Each mixin is an independent value with no
// knowledge of the identity core; entities embed the ones they need.
package mixin

import (
	"errors"
	"fmt"
	"slices"
)

// ErrNoEntry is returned when reading an absent auxiliary key.
var ErrNoEntry = errors.New("no auxiliary entry")

// AuxData is an ordered key/value store for free-form per-object data.
// The zero value is ready to use. Keys keep their first-insertion position
// across overwrites.
type AuxData struct {
	keys []string
	data map[string]any
}

// Set stores value under key, keeping the key's original position when it
// already exists.
func (a *AuxData) Set(key string, value any) {
	if a.data == nil {
		a.data = make(map[string]any)
	}
	if _, ok := a.data[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.data[key] = value
}

// Get returns the value stored under key, or ErrNoEntry.
func (a *AuxData) Get(key string) (any, error) {
	v, ok := a.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoEntry, key)
	}
	return v, nil
}

// GetDefault returns the value stored under key, or def when absent.
func (a *AuxData) GetDefault(key string, def any) any {
	if v, ok := a.data[key]; ok {
		return v
	}
	return def
}

// Has reports whether key is present.
func (a *AuxData) Has(key string) bool {
	_, ok := a.data[key]
	return ok
}

// Remove deletes key if present.
func (a *AuxData) Remove(key string) {
	if _, ok := a.data[key]; !ok {
		return
	}
	delete(a.data, key)
	a.keys = slices.DeleteFunc(a.keys, func(k string) bool { return k == key })
}

// Clear deletes every entry.
func (a *AuxData) Clear() {
	a.keys = nil
	a.data = nil
}

// Keys returns a snapshot of the keys in insertion order.
func (a *AuxData) Keys() []string {
	return slices.Clone(a.keys)
}

// Len returns the number of entries.
func (a *AuxData) Len() int {
	return len(a.keys)
}

// Clone returns an independent copy. Values of the common container shapes
// (maps and slices of strings or any) are copied recursively; other values
// are copied as-is.
func (a *AuxData) Clone() AuxData {
	out := AuxData{}
	for _, key := range a.keys {
		out.Set(key, deepCopyValue(a.data[key]))
	}
	return out
}

func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = deepCopyValue(item)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(val))
		for k, item := range val {
			out[k] = item
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopyValue(item)
		}
		return out
	case []string:
		return slices.Clone(val)
	case []float64:
		return slices.Clone(val)
	case []int:
		return slices.Clone(val)
	default:
		return v
	}
}
