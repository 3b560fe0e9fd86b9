// Package match compares names against one or many patterns in either a glob
// or a regular-expression dialect. Compiled regular expressions are reused
// across calls through an in-memory cache, so hot paths (tag queries, index
// filtering) do not recompile the same pattern over and over.
package match

import (
	"errors"
	"fmt"
	"path"
	"regexp"

	gocache "github.com/patrickmn/go-cache"
)

// Matching errors
var (
	ErrUnknownDialect = errors.New("unknown match dialect")
	ErrBadPattern     = errors.New("malformed pattern")
)

// Dialect selects the pattern syntax.
type Dialect string

const (
	Glob  Dialect = "glob"
	Regex Dialect = "regex"
)

// Mode combines results across multiple patterns.
type Mode int

const (
	// Any succeeds when at least one pattern matches.
	Any Mode = iota
	// All succeeds only when every pattern matches.
	All
)

// Option configures a match call.
type Option func(*settings)

type settings struct {
	dialect Dialect
	mode    Mode
}

// WithDialect selects the pattern dialect (default Glob).
func WithDialect(d Dialect) Option {
	return func(s *settings) { s.dialect = d }
}

// WithMode selects the multi-pattern combination mode (default Any).
func WithMode(m Mode) Option {
	return func(s *settings) { s.mode = m }
}

var regexCache = gocache.New(gocache.NoExpiration, 0)

func compile(pattern string) (*regexp.Regexp, error) {
	if v, ok := regexCache.Get(pattern); ok {
		return v.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: regex %q: %w", ErrBadPattern, pattern, err)
	}
	regexCache.Set(pattern, re, gocache.NoExpiration)
	return re, nil
}

// One reports whether name matches a single pattern.
func One(name, pattern string, opts ...Option) (bool, error) {
	return Multi(name, []string{pattern}, opts...)
}

// Multi reports whether name matches patterns under the configured mode.
// With no patterns, Multi returns false for Any and true for All.
func Multi(name string, patterns []string, opts ...Option) (bool, error) {
	s := settings{dialect: Glob, mode: Any}
	for _, opt := range opts {
		opt(&s)
	}

	for _, pattern := range patterns {
		ok, err := matchOne(name, pattern, s.dialect)
		if err != nil {
			return false, err
		}
		switch s.mode {
		case Any:
			if ok {
				return true, nil
			}
		case All:
			if !ok {
				return false, nil
			}
		default:
			return false, fmt.Errorf("unknown match mode: %d", s.mode)
		}
	}

	return s.mode == All, nil
}

func matchOne(name, pattern string, dialect Dialect) (bool, error) {
	switch dialect {
	case Glob:
		ok, err := path.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("%w: glob %q", ErrBadPattern, pattern)
		}
		return ok, nil
	case Regex:
		re, err := compile(pattern)
		if err != nil {
			return false, err
		}
		return re.MatchString(name), nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownDialect, dialect)
	}
}
