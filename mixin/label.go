package mixin

import (
	"github.com/ordolab/ordo/rootlatex"
)

// Label stores a display label with an optional short form. Both default to
// a fallback (typically the owning object's name) supplied at construction.
type Label struct {
	fallback func() string
	label    string
	short    string
}

// NewLabel creates a Label whose unset values resolve through fallback.
// A nil fallback resolves to the empty string.
func NewLabel(fallback func() string) Label {
	return Label{fallback: fallback}
}

func (l *Label) fall() string {
	if l.fallback == nil {
		return ""
	}
	return l.fallback()
}

// Text returns the label, falling back when unset.
func (l *Label) Text() string {
	if l.label == "" {
		return l.fall()
	}
	return l.label
}

// Short returns the short label, falling back to the full label.
func (l *Label) Short() string {
	if l.short == "" {
		return l.Text()
	}
	return l.short
}

// Root returns the label converted to ROOT latex.
func (l *Label) Root() string {
	return rootlatex.Convert(l.Text())
}

// ShortRoot returns the short label converted to ROOT latex.
func (l *Label) ShortRoot() string {
	return rootlatex.Convert(l.Short())
}

// SetText replaces the label; empty resets to the fallback.
func (l *Label) SetText(label string) {
	l.label = label
}

// SetShort replaces the short label; empty resets to the full label.
func (l *Label) SetShort(short string) {
	l.short = short
}

// Raw returns the explicitly set label, empty when unset. Copying code uses
// it to carry labels over without freezing a fallback value.
func (l *Label) Raw() string {
	return l.label
}

// RawShort returns the explicitly set short label, empty when unset.
func (l *Label) RawShort() string {
	return l.short
}
