package variable

import (
	"github.com/ordolab/ordo/registry"
)

// CopyCallback adjusts the draft parameters of a copy before validation.
// Callbacks registered on the source run first, then the options passed to
// Copy, so explicit options always win.
type CopyCallback func(src *Variable, draft *Params)

// Params returns the variable's current configuration as a draft. The id is
// reset to auto assignment and contexts are carried over; tags and
// auxiliary data are deep copies.
func (v *Variable) Params() Params {
	binning := v.Binning()
	p := Params{
		Name:          v.Name(),
		ID:            registry.AutoID,
		Contexts:      v.Contexts(),
		Binning:       &binning,
		XTitle:        v.xTitle.Raw(),
		XTitleShort:   v.xTitle.RawShort(),
		YTitle:        v.yTitle.Raw(),
		YTitleShort:   v.yTitle.RawShort(),
		LogX:          v.logX,
		LogY:          v.logY,
		Selection:     v.selection.Expr(),
		SelectionMode: v.selection.Mode(),
		Tags:          v.tags.Slice(),
		Aux:           v.aux.Clone(),
		CopyCallbacks: v.copyCallbacks,
	}
	if v.expression.IsSet() {
		p.Expression, _ = v.expression.Get()
	}
	if v.unit.IsSet() {
		p.Unit, _ = v.unit.Get()
	}
	return p
}

// Copy creates a new variable from this one's configuration and registers
// it in the same universe. The copy gets an auto id; pass WithName to avoid
// the name collision when copying within the same contexts. The source's
// copy callbacks run on the draft first, then the options.
func (v *Variable) Copy(opts ...Option) (*Variable, error) {
	draft := v.Params()
	for _, cb := range v.copyCallbacks {
		cb(v, &draft)
	}
	for _, opt := range opts {
		opt(&draft)
	}
	return FromParams(v.universe, draft)
}
