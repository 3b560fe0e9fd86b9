package match

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOne_GlobMatch(t *testing.T) {
	ok, err := One("jet1_pt", "jet*")

	require.NoError(t, err)
	require.True(t, ok)
}

func TestOne_GlobNoMatch(t *testing.T) {
	ok, err := One("jet1_pt", "muon*")

	require.NoError(t, err)
	require.False(t, ok)
}

func TestOne_RegexMatch(t *testing.T) {
	ok, err := One("jet1_pt", `^jet\d+_pt$`, WithDialect(Regex))

	require.NoError(t, err)
	require.True(t, ok)
}

func TestOne_RegexIsCached(t *testing.T) {
	// Second call goes through the cache; behavior must be identical.
	for i := 0; i < 2; i++ {
		ok, err := One("muon_eta", `muon_.*`, WithDialect(Regex))
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestOne_BadRegex(t *testing.T) {
	_, err := One("name", "(", WithDialect(Regex))

	require.ErrorIs(t, err, ErrBadPattern)
}

func TestOne_BadGlob(t *testing.T) {
	_, err := One("name", "[", WithDialect(Glob))

	require.ErrorIs(t, err, ErrBadPattern)
}

func TestOne_UnknownDialect(t *testing.T) {
	_, err := One("name", "x", WithDialect(Dialect("fuzzy")))

	require.ErrorIs(t, err, ErrUnknownDialect)
}

func TestMulti_AnyMode(t *testing.T) {
	ok, err := Multi("foo", []string{"baz", "f*"})

	require.NoError(t, err)
	require.True(t, ok)
}

func TestMulti_AnyMode_NoneMatch(t *testing.T) {
	ok, err := Multi("foo", []string{"baz", "qux"})

	require.NoError(t, err)
	require.False(t, ok)
}

func TestMulti_AllMode(t *testing.T) {
	ok, err := Multi("foo", []string{"f*", "*o"}, WithMode(All))

	require.NoError(t, err)
	require.True(t, ok)
}

func TestMulti_AllMode_OneMisses(t *testing.T) {
	ok, err := Multi("foo", []string{"f*", "baz"}, WithMode(All))

	require.NoError(t, err)
	require.False(t, ok)
}

func TestMulti_EmptyPatterns(t *testing.T) {
	anyOK, err := Multi("foo", nil)
	require.NoError(t, err)
	require.False(t, anyOK)

	allOK, err := Multi("foo", nil, WithMode(All))
	require.NoError(t, err)
	require.True(t, allOK)
}
