// Package registry implements the unique-object identity core: objects
// carry a (name, id) identity, live in per-(kind, context) indexes with
// bidirectional name/id lookup, and are scoped by an explicit Universe so
// independent uniqueness domains never contaminate each other.
//
// The core is synchronous and carries no locks; callers that mutate a
// Universe from multiple goroutines must serialize access themselves.
package registry

import (
	"fmt"
	"slices"
	"strings"
)

// AutoID marks an object whose id should be assigned on registration: the
// smallest integer above every id the target index has ever seen (0 for an
// empty index).
const AutoID int64 = -1

// DefaultContext is the uniqueness scope used when none is named.
const DefaultContext = "default"

// Entry is anything that can live in an Index. Concrete entities embed
// Object and contribute Kind.
type Entry interface {
	Name() string
	ID() int64
	Kind() string
	Contexts() []string
}

// Object is the identity part of a unique entity: an immutable non-empty
// name, a non-negative id (or AutoID until registration), and the set of
// contexts it is registered in. Entities embed it by value.
type Object struct {
	name     string
	id       int64
	contexts []string
}

// NewObject validates name and id and returns the identity value. The id
// may be AutoID, in which case registration assigns the next free id.
func NewObject(name string, id int64) (Object, error) {
	if name == "" {
		return Object{}, fmt.Errorf("%w: name must not be empty", ErrInvalidName)
	}
	if id < 0 && id != AutoID {
		return Object{}, fmt.Errorf("%w: %d (must be >= 0 or AutoID)", ErrInvalidID, id)
	}
	return Object{name: name, id: id}, nil
}

// Name returns the object name.
func (o *Object) Name() string {
	return o.name
}

// ID returns the object id, or AutoID before registration assigned one.
func (o *Object) ID() int64 {
	return o.id
}

// Contexts returns a snapshot of the contexts the object is registered in,
// in registration order.
func (o *Object) Contexts() []string {
	return slices.Clone(o.contexts)
}

// InContext reports whether the object is registered in context.
func (o *Object) InContext(context string) bool {
	return slices.Contains(o.contexts, context)
}

func (o *Object) assignID(id int64) {
	o.id = id
}

func (o *Object) addContext(context string) {
	if !slices.Contains(o.contexts, context) {
		o.contexts = append(o.contexts, context)
	}
}

func (o *Object) removeContext(context string) {
	o.contexts = slices.DeleteFunc(o.contexts, func(c string) bool {
		return c == context
	})
}

// Equal reports whether two entries denote the same object: same kind, same
// id, and at least one shared context. Id collisions across disjoint
// contexts are permitted and compare unequal. Name is not part of equality;
// it is enforced at registration.
func Equal(a, b Entry) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Kind() != b.Kind() || a.ID() != b.ID() {
		return false
	}
	bctx := b.Contexts()
	for _, c := range a.Contexts() {
		if slices.Contains(bctx, c) {
			return true
		}
	}
	return false
}

// Describe renders an entry for diagnostics.
func Describe(e Entry) string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(name=%q, id=%d, contexts=[%s])",
		e.Kind(), e.Name(), e.ID(), strings.Join(e.Contexts(), ", "))
}
