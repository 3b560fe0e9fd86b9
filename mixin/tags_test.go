package mixin

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ordolab/ordo/match"
)

func TestTags_AddAndSlice(t *testing.T) {
	var tags Tags

	require.NoError(t, tags.Add("foo", "bar", "foo"))

	require.Equal(t, []string{"bar", "foo"}, tags.Slice())
	require.Equal(t, 2, tags.Len())
}

func TestTags_AddEmpty(t *testing.T) {
	var tags Tags

	err := tags.Add("ok", "")

	require.ErrorIs(t, err, ErrEmptyTag)
	// Nothing inserted on failure.
	require.Zero(t, tags.Len())
}

func TestTags_Remove(t *testing.T) {
	tags, err := NewTags("a", "b")
	require.NoError(t, err)

	tags.Remove("a", "absent")

	require.Equal(t, []string{"b"}, tags.Slice())
}

func TestTags_HasGlob(t *testing.T) {
	tags, err := NewTags("foo", "baz")
	require.NoError(t, err)

	ok, err := tags.Has("ba*")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = tags.Has("nope*")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTags_HasRegex(t *testing.T) {
	tags, err := NewTags("foo", "bar2")
	require.NoError(t, err)

	ok, err := tags.Has(`^bar\d$`, match.WithDialect(match.Regex))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestTags_HasAnyAll(t *testing.T) {
	tags, err := NewTags("foo", "baz")
	require.NoError(t, err)

	any, err := tags.HasAny([]string{"fo*", "nope"})
	require.NoError(t, err)
	require.True(t, any)

	all, err := tags.HasAll([]string{"fo*", "nope"})
	require.NoError(t, err)
	require.False(t, all)

	all, err = tags.HasAll([]string{"fo*", "ba*"})
	require.NoError(t, err)
	require.True(t, all)
}

func TestTags_HasBadPattern(t *testing.T) {
	tags, err := NewTags("foo")
	require.NoError(t, err)

	_, err = tags.Has("[", match.WithDialect(match.Regex))

	require.Error(t, err)
}

func TestTags_CloneIndependent(t *testing.T) {
	tags, err := NewTags("a")
	require.NoError(t, err)

	clone := tags.Clone()
	require.NoError(t, tags.Add("b"))

	require.Equal(t, []string{"a"}, clone.Slice())
}
