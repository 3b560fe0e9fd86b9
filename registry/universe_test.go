package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ordolab/ordo/internal/pubsub"
)

func TestUniverse_RegisterDefaultContext(t *testing.T) {
	u := NewUniverse()
	defer u.Close()
	s := newSample(t, "a", AutoID)

	require.NoError(t, u.Register(s))

	require.Equal(t, []string{DefaultContext}, s.Contexts())
	ix, ok := u.Index("sample", DefaultContext)
	require.True(t, ok)
	require.True(t, ix.HasEntry(s))
}

func TestUniverse_RegisterLookupRoundTrip(t *testing.T) {
	u := NewUniverse()
	defer u.Close()
	s := newSample(t, "jet1_pt", 4)
	require.NoError(t, u.Register(s, "run2"))

	ix, ok := u.Index("sample", "run2")
	require.True(t, ok)

	byName, err := ix.ByName("jet1_pt")
	require.NoError(t, err)
	byID, err := ix.ByID(4)
	require.NoError(t, err)
	byKey, err := ix.ByKey("jet1_pt", 4)
	require.NoError(t, err)

	require.Same(t, s, byName.(*sample))
	require.Same(t, s, byID.(*sample))
	require.Same(t, s, byKey.(*sample))
}

func TestUniverse_AutoIDStartsAtZero(t *testing.T) {
	u := NewUniverse()
	defer u.Close()

	first := newSample(t, "a", AutoID)
	second := newSample(t, "b", AutoID)
	require.NoError(t, u.Register(first))
	require.NoError(t, u.Register(second))

	require.Equal(t, int64(0), first.ID())
	require.Equal(t, int64(1), second.ID())
}

func TestUniverse_AutoIDAboveExplicit(t *testing.T) {
	u := NewUniverse()
	defer u.Close()

	require.NoError(t, u.Register(newSample(t, "a", 41)))
	auto := newSample(t, "b", AutoID)
	require.NoError(t, u.Register(auto))

	require.Equal(t, int64(42), auto.ID())
}

func TestUniverse_AutoIDNeverReused(t *testing.T) {
	u := NewUniverse()
	defer u.Close()

	a := newSample(t, "a", AutoID)
	require.NoError(t, u.Register(a))
	require.NoError(t, u.Unregister(a))

	b := newSample(t, "b", AutoID)
	require.NoError(t, u.Register(b))

	require.Equal(t, int64(1), b.ID())
}

func TestUniverse_AutoIDMultiContextConsistent(t *testing.T) {
	u := NewUniverse()
	defer u.Close()

	// Push the watermark of one context ahead of the other.
	require.NoError(t, u.Register(newSample(t, "seed", 9), "busy"))

	s := newSample(t, "a", AutoID)
	require.NoError(t, u.Register(s, "busy", "fresh"))

	// One id valid in every requested context.
	require.Equal(t, int64(10), s.ID())
	busy, _ := u.Index("sample", "busy")
	fresh, _ := u.Index("sample", "fresh")
	require.True(t, busy.HasID(10))
	require.True(t, fresh.HasID(10))
}

func TestUniverse_DuplicateNameSameContext(t *testing.T) {
	u := NewUniverse()
	defer u.Close()
	require.NoError(t, u.Register(newSample(t, "a", 0)))

	err := u.Register(newSample(t, "a", 1))

	require.ErrorIs(t, err, ErrDuplicateName)
}

func TestUniverse_DuplicateIDSameContext(t *testing.T) {
	u := NewUniverse()
	defer u.Close()
	require.NoError(t, u.Register(newSample(t, "a", 0)))

	err := u.Register(newSample(t, "b", 0))

	require.ErrorIs(t, err, ErrDuplicateID)
}

func TestUniverse_SameNameDifferentContexts(t *testing.T) {
	u := NewUniverse()
	defer u.Close()

	require.NoError(t, u.Register(newSample(t, "a", 0), "left"))
	require.NoError(t, u.Register(newSample(t, "a", 0), "right"))

	left, _ := u.Index("sample", "left")
	right, _ := u.Index("sample", "right")
	require.True(t, left.Has("a"))
	require.True(t, right.Has("a"))
}

func TestUniverse_RegisterAtomicAcrossContexts(t *testing.T) {
	u := NewUniverse()
	defer u.Close()

	// Occupy the name in the second context only.
	require.NoError(t, u.Register(newSample(t, "a", 0), "second"))

	s := newSample(t, "a", AutoID)
	err := u.Register(s, "first", "second")

	require.ErrorIs(t, err, ErrDuplicateName)

	// The first context must be untouched.
	first, ok := u.Index("sample", "first")
	require.True(t, ok)
	require.Equal(t, 0, first.Len())
	require.Empty(t, s.Contexts())
}

func TestUniverse_RegisterEmptyContextName(t *testing.T) {
	u := NewUniverse()
	defer u.Close()

	err := u.Register(newSample(t, "a", 0), "")

	require.ErrorIs(t, err, ErrInvalidContext)
}

func TestUniverse_RegisterNil(t *testing.T) {
	u := NewUniverse()
	defer u.Close()

	require.ErrorIs(t, u.Register(nil), ErrNilEntry)
}

func TestUniverse_RegisterDedupesContexts(t *testing.T) {
	u := NewUniverse()
	defer u.Close()
	s := newSample(t, "a", AutoID)

	require.NoError(t, u.Register(s, "ctx", "ctx"))

	require.Equal(t, []string{"ctx"}, s.Contexts())
}

func TestUniverse_UnregisterOneContextLeavesOthers(t *testing.T) {
	u := NewUniverse()
	defer u.Close()
	s := newSample(t, "a", 0)
	require.NoError(t, u.Register(s, "left", "right"))

	require.NoError(t, u.Unregister(s, "left"))

	left, _ := u.Index("sample", "left")
	right, _ := u.Index("sample", "right")
	require.False(t, left.Has("a"))
	require.True(t, right.Has("a"))
	require.Equal(t, []string{"right"}, s.Contexts())
}

func TestUniverse_UnregisterAllByDefault(t *testing.T) {
	u := NewUniverse()
	defer u.Close()
	s := newSample(t, "a", 0)
	require.NoError(t, u.Register(s, "left", "right"))

	require.NoError(t, u.Unregister(s))

	require.Empty(t, s.Contexts())
}

func TestUniverse_UnregisterNotRegistered(t *testing.T) {
	u := NewUniverse()
	defer u.Close()
	s := newSample(t, "a", 0)

	err := u.Unregister(s, "nowhere")

	require.ErrorIs(t, err, ErrNotRegistered)
}

func TestUniverse_UnregisterAtomic(t *testing.T) {
	u := NewUniverse()
	defer u.Close()
	s := newSample(t, "a", 0)
	require.NoError(t, u.Register(s, "left"))

	err := u.Unregister(s, "left", "missing")

	require.ErrorIs(t, err, ErrNotRegistered)
	left, _ := u.Index("sample", "left")
	require.True(t, left.Has("a"))
}

func TestUniverse_ContextsAndKinds(t *testing.T) {
	u := NewUniverse()
	defer u.Close()
	require.NoError(t, u.Register(newSample(t, "a", 0), "zeta"))
	require.NoError(t, u.Register(newSample(t, "b", 0), "alpha"))

	require.Equal(t, []string{"alpha", "zeta"}, u.Contexts())
	require.Equal(t, []string{"sample"}, u.Kinds("alpha"))
}

func TestUniverse_DropContext(t *testing.T) {
	u := NewUniverse()
	defer u.Close()
	s := newSample(t, "a", 0)
	require.NoError(t, u.Register(s, "doomed", "kept"))

	require.NoError(t, u.DropContext("doomed"))

	require.NotContains(t, u.Contexts(), "doomed")
	require.Equal(t, []string{"kept"}, s.Contexts())

	require.ErrorIs(t, u.DropContext("doomed"), ErrNotFound)
}

func TestUniverse_Events(t *testing.T) {
	u := NewUniverse()
	defer u.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := u.Subscribe(ctx)

	s := newSample(t, "a", AutoID)
	require.NoError(t, u.Register(s))
	require.NoError(t, u.Unregister(s))

	expectEvent := func(eventType pubsub.EventType) pubsub.Event[Change] {
		select {
		case ev := <-events:
			require.Equal(t, eventType, ev.Type)
			return ev
		case <-time.After(time.Second):
			t.Fatalf("no %s event", eventType)
			return pubsub.Event[Change]{}
		}
	}

	created := expectEvent(pubsub.CreatedEvent)
	require.Equal(t, Change{Kind: "sample", Name: "a", ID: 0, Context: DefaultContext}, created.Payload)

	deleted := expectEvent(pubsub.DeletedEvent)
	require.Equal(t, Change{Kind: "sample", Name: "a", ID: 0, Context: DefaultContext}, deleted.Payload)
}
