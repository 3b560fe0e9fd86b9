// Package selexpr joins selection-expression clauses in the two dialects the
// entity model supports: "root" (TTree draw expressions, `&&` conjunction)
// and "numexpr" (array expressions, `&` conjunction). Joining is pure and
// deterministic; clauses are parenthesized unless already fully bracketed so
// the result stays re-parseable in the same dialect.
package selexpr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned for selection modes other than root or numexpr.
var ErrUnknownMode = errors.New("unknown selection mode")

// Mode is a selection-expression dialect.
type Mode string

const (
	ModeRoot    Mode = "root"
	ModeNumexpr Mode = "numexpr"
)

// DefaultMode is used when an entity does not specify a dialect.
const DefaultMode = ModeRoot

// Valid reports whether m is a supported dialect.
func (m Mode) Valid() bool {
	return m == ModeRoot || m == ModeNumexpr
}

// Validate returns ErrUnknownMode for unsupported dialects.
func (m Mode) Validate() error {
	if !m.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMode, m)
	}
	return nil
}

func (m Mode) defaultOp() string {
	if m == ModeNumexpr {
		return "&"
	}
	return "&&"
}

// Option configures a Join call.
type Option func(*settings)

type settings struct {
	op      string
	bracket bool
}

// WithOp overrides the joining operator (e.g. "*" for weights).
func WithOp(op string) Option {
	return func(s *settings) { s.op = op }
}

// Bracket wraps the joined result in one more level of parentheses.
func Bracket() Option {
	return func(s *settings) { s.bracket = true }
}

// Join combines the non-empty parts into a single expression in the given
// dialect. Each part is wrapped in parentheses unless already fully
// bracketed, then the parts are joined with the dialect's conjunction (or
// the operator set via WithOp). With no non-empty parts, Join returns "".
func Join(mode Mode, parts []string, opts ...Option) (string, error) {
	if err := mode.Validate(); err != nil {
		return "", err
	}

	s := settings{op: mode.defaultOp()}
	for _, opt := range opts {
		opt(&s)
	}

	wrapped := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		wrapped = append(wrapped, wrap(part))
	}
	if len(wrapped) == 0 {
		return "", nil
	}

	joined := strings.Join(wrapped, " "+s.op+" ")
	if s.bracket {
		joined = wrap(joined)
	}
	return joined, nil
}

// wrap parenthesizes s unless it is already fully bracketed.
func wrap(s string) string {
	if bracketed(s) {
		return s
	}
	return "(" + s + ")"
}

// bracketed reports whether the opening parenthesis of s closes only at the
// very end, i.e. the whole expression is enclosed by one pair.
func bracketed(s string) bool {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return false
			}
		}
	}
	return depth == 0
}
