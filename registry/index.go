package registry

import (
	"fmt"
	"slices"

	"github.com/ordolab/ordo/match"
)

// Index is the registry for one (kind, context) pair. Every entry is
// reachable both by name and by id; iteration follows insertion order.
type Index struct {
	kind    string
	context string
	order   []int64
	byID    map[int64]Entry
	byName  map[string]int64
	nextID  int64
}

// NewIndex creates an empty index for the given kind and context.
func NewIndex(kind, context string) *Index {
	return &Index{
		kind:    kind,
		context: context,
		byID:    make(map[int64]Entry),
		byName:  make(map[string]int64),
	}
}

// Kind returns the entry kind this index holds.
func (ix *Index) Kind() string {
	return ix.kind
}

// Context returns the uniqueness scope this index belongs to.
func (ix *Index) Context() string {
	return ix.context
}

// Len returns the number of entries.
func (ix *Index) Len() int {
	return len(ix.order)
}

// NextID returns the id the next auto-assigned entry would get: one above
// the highest id ever added, or 0 for a fresh index. Ids removed from the
// index are not reused; Clear resets the watermark.
func (ix *Index) NextID() int64 {
	return ix.nextID
}

// Add inserts an entry, enforcing name and id uniqueness. The entry must
// already carry a concrete id; auto-id assignment happens in the Universe.
func (ix *Index) Add(e Entry) error {
	if e == nil {
		return ErrNilEntry
	}
	if e.ID() < 0 {
		return fmt.Errorf("%w: entry %q has no concrete id", ErrInvalidID, e.Name())
	}
	if _, ok := ix.byName[e.Name()]; ok {
		return fmt.Errorf("%w: %s %q in context %q", ErrDuplicateName, ix.kind, e.Name(), ix.context)
	}
	if _, ok := ix.byID[e.ID()]; ok {
		return fmt.Errorf("%w: %s id %d in context %q", ErrDuplicateID, ix.kind, e.ID(), ix.context)
	}

	ix.order = append(ix.order, e.ID())
	ix.byID[e.ID()] = e
	ix.byName[e.Name()] = e.ID()
	if e.ID() >= ix.nextID {
		ix.nextID = e.ID() + 1
	}
	return nil
}

// ByName returns the entry registered under name.
func (ix *Index) ByName(name string) (Entry, error) {
	id, ok := ix.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s %q in context %q", ErrNotFound, ix.kind, name, ix.context)
	}
	return ix.byID[id], nil
}

// ByID returns the entry registered under id.
func (ix *Index) ByID(id int64) (Entry, error) {
	e, ok := ix.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s id %d in context %q", ErrNotFound, ix.kind, id, ix.context)
	}
	return e, nil
}

// ByKey returns the entry registered under both name and id, failing with
// ErrKeyMismatch when name and id resolve to different entries.
func (ix *Index) ByKey(name string, id int64) (Entry, error) {
	e, err := ix.ByName(name)
	if err != nil {
		return nil, err
	}
	if e.ID() != id {
		return nil, fmt.Errorf("%w: %s name %q has id %d, not %d",
			ErrKeyMismatch, ix.kind, name, e.ID(), id)
	}
	return e, nil
}

// Has reports whether an entry is registered under name.
func (ix *Index) Has(name string) bool {
	_, ok := ix.byName[name]
	return ok
}

// HasID reports whether an entry is registered under id.
func (ix *Index) HasID(id int64) bool {
	_, ok := ix.byID[id]
	return ok
}

// HasEntry reports whether exactly this entry is registered.
func (ix *Index) HasEntry(e Entry) bool {
	if e == nil {
		return false
	}
	return ix.byID[e.ID()] == e
}

// First returns the earliest-inserted entry.
func (ix *Index) First() (Entry, bool) {
	if len(ix.order) == 0 {
		return nil, false
	}
	return ix.byID[ix.order[0]], true
}

// Last returns the latest-inserted entry.
func (ix *Index) Last() (Entry, bool) {
	if len(ix.order) == 0 {
		return nil, false
	}
	return ix.byID[ix.order[len(ix.order)-1]], true
}

// Names returns a snapshot of the entry names in insertion order.
func (ix *Index) Names() []string {
	names := make([]string, 0, len(ix.order))
	for _, id := range ix.order {
		names = append(names, ix.byID[id].Name())
	}
	return names
}

// IDs returns a snapshot of the entry ids in insertion order.
func (ix *Index) IDs() []int64 {
	return slices.Clone(ix.order)
}

// Values returns a snapshot of the entries in insertion order.
func (ix *Index) Values() []Entry {
	values := make([]Entry, 0, len(ix.order))
	for _, id := range ix.order {
		values = append(values, ix.byID[id])
	}
	return values
}

// Match returns every entry whose name matches at least one of the
// patterns, in insertion order. Options are forwarded to the matcher.
func (ix *Index) Match(patterns []string, opts ...match.Option) ([]Entry, error) {
	matched := make([]Entry, 0)
	for _, id := range ix.order {
		e := ix.byID[id]
		ok, err := match.Multi(e.Name(), patterns, opts...)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// RemoveByName removes the entry registered under name.
func (ix *Index) RemoveByName(name string) error {
	id, ok := ix.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s %q in context %q", ErrNotFound, ix.kind, name, ix.context)
	}
	ix.drop(name, id)
	return nil
}

// RemoveByID removes the entry registered under id.
func (ix *Index) RemoveByID(id int64) error {
	e, ok := ix.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s id %d in context %q", ErrNotFound, ix.kind, id, ix.context)
	}
	ix.drop(e.Name(), id)
	return nil
}

// Remove removes exactly this entry.
func (ix *Index) Remove(e Entry) error {
	if e == nil {
		return ErrNilEntry
	}
	if !ix.HasEntry(e) {
		return fmt.Errorf("%w: %s in context %q", ErrNotFound, Describe(e), ix.context)
	}
	ix.drop(e.Name(), e.ID())
	return nil
}

// Discard removes the entry registered under name if present, reporting
// whether anything was removed. The soft counterpart to RemoveByName.
func (ix *Index) Discard(name string) bool {
	id, ok := ix.byName[name]
	if !ok {
		return false
	}
	ix.drop(name, id)
	return true
}

// Clear removes every entry and resets the auto-id watermark.
func (ix *Index) Clear() {
	ix.order = nil
	ix.byID = make(map[int64]Entry)
	ix.byName = make(map[string]int64)
	ix.nextID = 0
}

func (ix *Index) drop(name string, id int64) {
	delete(ix.byName, name)
	delete(ix.byID, id)
	ix.order = slices.DeleteFunc(ix.order, func(v int64) bool { return v == id })
}
