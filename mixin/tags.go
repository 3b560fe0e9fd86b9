package mixin

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ordolab/ordo/match"
)

// ErrEmptyTag is returned when adding an empty tag.
var ErrEmptyTag = errors.New("tag must not be empty")

// Tags is a set of string tags testable against glob or regex patterns.
// The zero value is ready to use.
type Tags struct {
	set map[string]struct{}
}

// NewTags creates a tag set from the given tags.
func NewTags(tags ...string) (Tags, error) {
	var t Tags
	if err := t.Add(tags...); err != nil {
		return Tags{}, err
	}
	return t, nil
}

// Add inserts tags into the set. Fails on empty tags without inserting
// anything.
func (t *Tags) Add(tags ...string) error {
	for _, tag := range tags {
		if tag == "" {
			return fmt.Errorf("%w", ErrEmptyTag)
		}
	}
	if t.set == nil {
		t.set = make(map[string]struct{})
	}
	for _, tag := range tags {
		t.set[tag] = struct{}{}
	}
	return nil
}

// Remove deletes tags from the set; absent tags are ignored.
func (t *Tags) Remove(tags ...string) {
	for _, tag := range tags {
		delete(t.set, tag)
	}
}

// Has reports whether any tag matches pattern.
func (t *Tags) Has(pattern string, opts ...match.Option) (bool, error) {
	return t.HasAny([]string{pattern}, opts...)
}

// HasAny reports whether at least one pattern matches some tag.
func (t *Tags) HasAny(patterns []string, opts ...match.Option) (bool, error) {
	for _, pattern := range patterns {
		ok, err := t.matches(pattern, opts...)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// HasAll reports whether every pattern matches some tag.
func (t *Tags) HasAll(patterns []string, opts ...match.Option) (bool, error) {
	for _, pattern := range patterns {
		ok, err := t.matches(pattern, opts...)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// matches reports whether pattern matches at least one tag.
func (t *Tags) matches(pattern string, opts ...match.Option) (bool, error) {
	for tag := range t.set {
		ok, err := match.One(tag, pattern, opts...)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Slice returns the tags sorted alphabetically.
func (t *Tags) Slice() []string {
	out := make([]string, 0, len(t.set))
	for tag := range t.set {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of tags.
func (t *Tags) Len() int {
	return len(t.set)
}

// Clone returns an independent copy of the set.
func (t *Tags) Clone() Tags {
	out := Tags{}
	if len(t.set) > 0 {
		out.set = make(map[string]struct{}, len(t.set))
		for tag := range t.set {
			out.set[tag] = struct{}{}
		}
	}
	return out
}
