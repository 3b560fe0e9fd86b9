package registry

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/ordolab/ordo/internal/log"
	"github.com/ordolab/ordo/internal/pubsub"
)

// Change describes a registration or unregistration, published on the
// universe's event stream.
type Change struct {
	Kind    string
	Name    string
	ID      int64
	Context string
}

// Universe scopes uniqueness: it maps context name -> kind -> Index and is
// the only way objects enter or leave indexes. Pass a Universe into entity
// constructors instead of relying on process-global state; tests create
// their own and stay independent.
//
// A Universe is not safe for concurrent mutation.
type Universe struct {
	contexts map[string]map[string]*Index
	events   *pubsub.Broker[Change]
}

// NewUniverse creates an empty universe.
func NewUniverse() *Universe {
	return &Universe{
		contexts: make(map[string]map[string]*Index),
		events:   pubsub.NewBroker[Change](),
	}
}

// Subscribe returns a channel of registration events. The subscription ends
// when ctx is cancelled.
func (u *Universe) Subscribe(ctx context.Context) <-chan pubsub.Event[Change] {
	return u.events.Subscribe(ctx)
}

// Close shuts down the event stream. Registration keeps working; events are
// simply no longer delivered.
func (u *Universe) Close() {
	u.events.Close()
}

// Index returns the index for (kind, context) if one exists.
func (u *Universe) Index(kind, context string) (*Index, bool) {
	kinds, ok := u.contexts[context]
	if !ok {
		return nil, false
	}
	ix, ok := kinds[kind]
	return ix, ok
}

// index returns the index for (kind, context), creating it lazily.
func (u *Universe) index(kind, context string) *Index {
	kinds, ok := u.contexts[context]
	if !ok {
		kinds = make(map[string]*Index)
		u.contexts[context] = kinds
	}
	ix, ok := kinds[kind]
	if !ok {
		ix = NewIndex(kind, context)
		kinds[kind] = ix
	}
	return ix
}

// Contexts returns the known context names, sorted.
func (u *Universe) Contexts() []string {
	names := make([]string, 0, len(u.contexts))
	for name := range u.contexts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Kinds returns the kinds registered in context, sorted.
func (u *Universe) Kinds(context string) []string {
	kinds := make([]string, 0, len(u.contexts[context]))
	for kind := range u.contexts[context] {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// DropContext removes a context and all of its indexes. Objects registered
// there remain usable but lose that context membership. Contexts are never
// pruned automatically; this is the explicit removal path.
func (u *Universe) DropContext(context string) error {
	kinds, ok := u.contexts[context]
	if !ok {
		return fmt.Errorf("%w: context %q", ErrNotFound, context)
	}
	for _, ix := range kinds {
		for _, e := range ix.Values() {
			if tracker, ok := e.(contextTracker); ok {
				tracker.removeContext(context)
			}
		}
	}
	delete(u.contexts, context)
	log.Debug(log.CatRegistry, "context dropped", "context", context)
	return nil
}

type idAssigner interface {
	assignID(int64)
}

type contextTracker interface {
	addContext(string)
	removeContext(string)
}

// Register inserts e into the index for its kind in every named context
// (default: the contexts e already belongs to, else DefaultContext).
// An AutoID entry gets the smallest id that is fresh in all target indexes.
// Registration is atomic: name or id collisions in any target context leave
// every index unchanged.
func (u *Universe) Register(e Entry, contexts ...string) error {
	if e == nil {
		return ErrNilEntry
	}
	if e.Name() == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidName)
	}
	if e.ID() < 0 && e.ID() != AutoID {
		return fmt.Errorf("%w: %d", ErrInvalidID, e.ID())
	}

	targets, err := normalizeContexts(contexts, e.Contexts())
	if err != nil {
		return err
	}

	indexes := make([]*Index, 0, len(targets))
	for _, ctx := range targets {
		indexes = append(indexes, u.index(e.Kind(), ctx))
	}

	// Resolve the id without committing it yet: the highest next-id across
	// all target indexes, so one id is fresh everywhere.
	id := e.ID()
	var assigner idAssigner
	if id == AutoID {
		var ok bool
		assigner, ok = e.(idAssigner)
		if !ok {
			return fmt.Errorf("%w: %s does not embed registry.Object", ErrAutoID, e.Kind())
		}
		id = 0
		for _, ix := range indexes {
			if next := ix.NextID(); next > id {
				id = next
			}
		}
	}

	// All-or-nothing: check every target before touching any of them.
	for _, ix := range indexes {
		if ix.Has(e.Name()) {
			return fmt.Errorf("%w: %s %q in context %q", ErrDuplicateName, e.Kind(), e.Name(), ix.Context())
		}
		if ix.HasID(id) {
			return fmt.Errorf("%w: %s id %d in context %q", ErrDuplicateID, e.Kind(), id, ix.Context())
		}
	}

	if assigner != nil {
		assigner.assignID(id)
	}

	for _, ix := range indexes {
		if err := ix.Add(e); err != nil {
			// Unreachable after the pre-check; kept as a hard failure.
			return err
		}
		if tracker, ok := e.(contextTracker); ok {
			tracker.addContext(ix.Context())
		}
		u.events.Publish(pubsub.CreatedEvent, Change{
			Kind:    e.Kind(),
			Name:    e.Name(),
			ID:      id,
			Context: ix.Context(),
		})
	}

	log.Debug(log.CatRegistry, "registered", "kind", e.Kind(), "name", e.Name(), "id", id, "contexts", len(indexes))
	return nil
}

// Unregister removes e from the named contexts (default: every context it
// belongs to). The object stays usable in memory; it is simply absent from
// lookups. Removal is atomic across the named contexts.
func (u *Universe) Unregister(e Entry, contexts ...string) error {
	if e == nil {
		return ErrNilEntry
	}

	targets, err := normalizeContexts(contexts, e.Contexts())
	if err != nil {
		return err
	}

	indexes := make([]*Index, 0, len(targets))
	for _, ctx := range targets {
		ix, ok := u.Index(e.Kind(), ctx)
		if !ok || !ix.HasEntry(e) {
			return fmt.Errorf("%w: %s in context %q", ErrNotRegistered, Describe(e), ctx)
		}
		indexes = append(indexes, ix)
	}

	for _, ix := range indexes {
		if err := ix.Remove(e); err != nil {
			return err
		}
		if tracker, ok := e.(contextTracker); ok {
			tracker.removeContext(ix.Context())
		}
		u.events.Publish(pubsub.DeletedEvent, Change{
			Kind:    e.Kind(),
			Name:    e.Name(),
			ID:      e.ID(),
			Context: ix.Context(),
		})
	}

	log.Debug(log.CatRegistry, "unregistered", "kind", e.Kind(), "name", e.Name(), "id", e.ID(), "contexts", len(indexes))
	return nil
}

// normalizeContexts validates and dedupes the requested contexts, falling
// back to the object's own contexts and finally to DefaultContext.
func normalizeContexts(requested, fallback []string) ([]string, error) {
	contexts := requested
	if len(contexts) == 0 {
		contexts = fallback
	}
	if len(contexts) == 0 {
		contexts = []string{DefaultContext}
	}

	out := make([]string, 0, len(contexts))
	for _, ctx := range contexts {
		if ctx == "" {
			return nil, fmt.Errorf("%w: context name must not be empty", ErrInvalidContext)
		}
		if !slices.Contains(out, ctx) {
			out = append(out, ctx)
		}
	}
	return out, nil
}
