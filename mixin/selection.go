package mixin

import (
	"github.com/ordolab/ordo/selexpr"
)

// DefaultSelection selects every event.
const DefaultSelection = "1"

// Selection holds a boolean event-selection expression together with the
// dialect its clauses join in. The zero value selects everything in the
// default dialect.
type Selection struct {
	expr string
	mode selexpr.Mode
}

// NewSelection creates a selection from expr in the given dialect. An empty
// expr means DefaultSelection; an empty mode means selexpr.DefaultMode.
func NewSelection(expr string, mode selexpr.Mode) (Selection, error) {
	s := Selection{}
	if err := s.SetMode(mode); err != nil {
		return Selection{}, err
	}
	if err := s.SetExpr(expr); err != nil {
		return Selection{}, err
	}
	return s, nil
}

// Expr returns the current expression.
func (s *Selection) Expr() string {
	if s.expr == "" {
		return DefaultSelection
	}
	return s.expr
}

// Mode returns the current dialect.
func (s *Selection) Mode() selexpr.Mode {
	if s.mode == "" {
		return selexpr.DefaultMode
	}
	return s.mode
}

// SetExpr replaces the expression. Empty resets to DefaultSelection;
// everything else is normalized through a single-clause join so stored
// expressions are always bracketed.
func (s *Selection) SetExpr(expr string) error {
	if expr == "" || expr == DefaultSelection {
		s.expr = DefaultSelection
		return nil
	}
	joined, err := selexpr.Join(s.Mode(), []string{expr})
	if err != nil {
		return err
	}
	s.expr = joined
	return nil
}

// SetMode replaces the dialect. Empty means selexpr.DefaultMode.
func (s *Selection) SetMode(mode selexpr.Mode) error {
	if mode == "" {
		mode = selexpr.DefaultMode
	}
	if err := mode.Validate(); err != nil {
		return err
	}
	s.mode = mode
	return nil
}

// Add extends the selection by joining further clauses onto the current
// expression with the dialect's AND operator. Options pass through to
// selexpr.Join, so a caller can override the operator or bracket the
// joined result.
func (s *Selection) Add(clauses []string, opts ...selexpr.Option) error {
	parts := append([]string{s.Expr()}, clauses...)
	joined, err := selexpr.Join(s.Mode(), parts, opts...)
	if err != nil {
		return err
	}
	s.expr = joined
	return nil
}

// Combined returns the selection joined with extra clauses without mutating
// the stored expression. Options pass through to selexpr.Join, so a caller
// can combine with a different operator (e.g. a weight product).
func (s *Selection) Combined(clauses []string, opts ...selexpr.Option) (string, error) {
	parts := append([]string{s.Expr()}, clauses...)
	return selexpr.Join(s.Mode(), parts, opts...)
}
