// Package variable implements the histogram-variable entity: a uniquely
// named, registered object describing how an event quantity is read
// (expression), binned, selected and labelled for plotting.
package variable

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ordolab/ordo/mixin"
	"github.com/ordolab/ordo/property"
	"github.com/ordolab/ordo/registry"
	"github.com/ordolab/ordo/rootlatex"
	"github.com/ordolab/ordo/selexpr"
)

// Kind is the registry kind shared by all variables.
const Kind = "variable"

// DefaultYTitle labels the count axis when no y title is set.
const DefaultYTitle = "Entries"

// DefaultUnit is the dimensionless unit; it is suppressed in titles.
const DefaultUnit = "1"

// Binning describes a uniform binning: N bins between Min and Max.
type Binning struct {
	N   int
	Min float64
	Max float64
}

// DefaultBinning is a single unit bin.
var DefaultBinning = Binning{N: 1, Min: 0, Max: 1}

// Validate checks that the binning has at least one bin and a non-empty
// range.
func (b Binning) Validate() error {
	if b.N < 1 {
		return fmt.Errorf("number of bins must be >= 1, got %d", b.N)
	}
	if !(b.Max > b.Min) {
		return fmt.Errorf("bin range must satisfy max > min, got [%v, %v]", b.Min, b.Max)
	}
	return nil
}

// Width returns the width of a single bin.
func (b Binning) Width() float64 {
	return (b.Max - b.Min) / float64(b.N)
}

// Edges returns the N+1 bin edges.
func (b Binning) Edges() []float64 {
	edges := make([]float64, b.N+1)
	w := b.Width()
	for i := range edges {
		edges[i] = b.Min + float64(i)*w
	}
	edges[b.N] = b.Max
	return edges
}

// Variable is a registered histogram variable. Create one with New or
// FromParams; the zero value is not usable.
type Variable struct {
	registry.Object

	universe *registry.Universe

	expression property.Field[string]
	binning    property.Field[Binning]
	unit       property.Field[string]
	xTitle     mixin.Label
	yTitle     mixin.Label
	logX       bool
	logY       bool

	tags      mixin.Tags
	aux       mixin.AuxData
	selection mixin.Selection

	copyCallbacks []CopyCallback
}

// Params carries every configurable attribute of a variable. FromParams
// validates it as a whole before anything is registered; Copy hands a draft
// Params to callbacks and overrides.
type Params struct {
	Name     string
	ID       int64
	Contexts []string

	Expression  string
	Binning     *Binning
	XTitle      string
	XTitleShort string
	YTitle      string
	YTitleShort string
	Unit        string
	LogX        bool
	LogY        bool

	Selection     string
	SelectionMode selexpr.Mode
	Tags          []string
	Aux           mixin.AuxData

	CopyCallbacks []CopyCallback
}

// Option mutates a Params draft before validation.
type Option func(*Params)

// WithID sets an explicit id instead of registry.AutoID.
func WithID(id int64) Option {
	return func(p *Params) { p.ID = id }
}

// WithName renames the draft; mainly useful with Copy.
func WithName(name string) Option {
	return func(p *Params) { p.Name = name }
}

// WithContexts sets the contexts the variable registers in.
func WithContexts(contexts ...string) Option {
	return func(p *Params) { p.Contexts = contexts }
}

// WithExpression sets the expression read from the event record.
func WithExpression(expr string) Option {
	return func(p *Params) { p.Expression = expr }
}

// WithBinning sets a uniform binning.
func WithBinning(n int, min, max float64) Option {
	return func(p *Params) { p.Binning = &Binning{N: n, Min: min, Max: max} }
}

// WithXTitle sets the x-axis title, optionally in latex.
func WithXTitle(title string) Option {
	return func(p *Params) { p.XTitle = title }
}

// WithXTitleShort sets the abbreviated x-axis title.
func WithXTitleShort(title string) Option {
	return func(p *Params) { p.XTitleShort = title }
}

// WithYTitle sets the y-axis title.
func WithYTitle(title string) Option {
	return func(p *Params) { p.YTitle = title }
}

// WithYTitleShort sets the abbreviated y-axis title.
func WithYTitleShort(title string) Option {
	return func(p *Params) { p.YTitleShort = title }
}

// WithUnit sets the unit shown in axis titles ("1" suppresses it).
func WithUnit(unit string) Option {
	return func(p *Params) { p.Unit = unit }
}

// WithLogX marks the x axis logarithmic.
func WithLogX() Option {
	return func(p *Params) { p.LogX = true }
}

// WithLogY marks the y axis logarithmic.
func WithLogY() Option {
	return func(p *Params) { p.LogY = true }
}

// WithSelection sets the event selection expression.
func WithSelection(expr string) Option {
	return func(p *Params) { p.Selection = expr }
}

// WithSelectionMode sets the selection dialect.
func WithSelectionMode(mode selexpr.Mode) Option {
	return func(p *Params) { p.SelectionMode = mode }
}

// WithTags adds tags to the draft.
func WithTags(tags ...string) Option {
	return func(p *Params) { p.Tags = append(p.Tags, tags...) }
}

// WithAux stores an auxiliary key/value pair.
func WithAux(key string, value any) Option {
	return func(p *Params) { p.Aux.Set(key, value) }
}

// WithCopyCallback registers a callback run on every Copy of the variable.
func WithCopyCallback(cb CopyCallback) Option {
	return func(p *Params) { p.CopyCallbacks = append(p.CopyCallbacks, cb) }
}

// New creates a variable named name, applies the options and registers it
// in u. The id defaults to registry.AutoID.
func New(u *registry.Universe, name string, opts ...Option) (*Variable, error) {
	p := Params{Name: name, ID: registry.AutoID}
	for _, opt := range opts {
		opt(&p)
	}
	return FromParams(u, p)
}

// FromParams validates p in full and registers the resulting variable in u.
// Nothing is registered when any attribute is invalid.
func FromParams(u *registry.Universe, p Params) (*Variable, error) {
	if u == nil {
		return nil, fmt.Errorf("variable %q: universe must not be nil", p.Name)
	}

	obj, err := registry.NewObject(p.Name, p.ID)
	if err != nil {
		return nil, err
	}

	v := &Variable{
		Object:        obj,
		universe:      u,
		expression:    property.New[string]("expression", parseNonEmpty),
		binning:       property.New[Binning]("binning", parseBinning),
		unit:          property.New[string]("unit", nil),
		logX:          p.LogX,
		logY:          p.LogY,
		copyCallbacks: p.CopyCallbacks,
	}
	v.xTitle = mixin.NewLabel(v.Name)
	v.yTitle = mixin.NewLabel(func() string { return DefaultYTitle })
	v.xTitle.SetText(p.XTitle)
	v.xTitle.SetShort(p.XTitleShort)
	v.yTitle.SetText(p.YTitle)
	v.yTitle.SetShort(p.YTitleShort)

	if p.Expression != "" {
		if err := v.expression.Set(p.Expression); err != nil {
			return nil, err
		}
	}
	if p.Binning != nil {
		if err := v.binning.Set(*p.Binning); err != nil {
			return nil, err
		}
	}
	if p.Unit != "" {
		if err := v.unit.Set(p.Unit); err != nil {
			return nil, err
		}
	}

	v.selection, err = mixin.NewSelection(p.Selection, p.SelectionMode)
	if err != nil {
		return nil, err
	}
	if err := v.tags.Add(p.Tags...); err != nil {
		return nil, err
	}
	v.aux = p.Aux.Clone()

	// Registration comes last: a variable that fails validation never
	// becomes visible in any index.
	if err := u.Register(v, p.Contexts...); err != nil {
		return nil, err
	}
	return v, nil
}

func parseNonEmpty(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("must not be empty")
	}
	return s, nil
}

func parseBinning(b Binning) (Binning, error) {
	if err := b.Validate(); err != nil {
		return Binning{}, err
	}
	return b, nil
}

// Kind returns the registry kind of variables.
func (v *Variable) Kind() string {
	return Kind
}

// Universe returns the universe the variable registers in.
func (v *Variable) Universe() *registry.Universe {
	return v.universe
}

// Expression returns the event expression, falling back to the name.
func (v *Variable) Expression() string {
	return v.expression.GetDefault(v.Name())
}

// SetExpression replaces the expression; it must not be empty.
func (v *Variable) SetExpression(expr string) error {
	return v.expression.Set(expr)
}

// Binning returns the binning, defaulting to a single unit bin.
func (v *Variable) Binning() Binning {
	return v.binning.GetDefault(DefaultBinning)
}

// SetBinning replaces the binning.
func (v *Variable) SetBinning(n int, min, max float64) error {
	return v.binning.Set(Binning{N: n, Min: min, Max: max})
}

// Unit returns the unit, defaulting to the dimensionless "1".
func (v *Variable) Unit() string {
	return v.unit.GetDefault(DefaultUnit)
}

// SetUnit replaces the unit.
func (v *Variable) SetUnit(unit string) error {
	return v.unit.Set(unit)
}

// LogX reports whether the x axis is logarithmic.
func (v *Variable) LogX() bool {
	return v.logX
}

// SetLogX marks the x axis (non-)logarithmic.
func (v *Variable) SetLogX(log bool) {
	v.logX = log
}

// LogY reports whether the y axis is logarithmic.
func (v *Variable) LogY() bool {
	return v.logY
}

// SetLogY marks the y axis (non-)logarithmic.
func (v *Variable) SetLogY(log bool) {
	v.logY = log
}

// XTitle returns the x-axis label.
func (v *Variable) XTitle() *mixin.Label {
	return &v.xTitle
}

// YTitle returns the y-axis label.
func (v *Variable) YTitle() *mixin.Label {
	return &v.yTitle
}

// Tags returns the tag set.
func (v *Variable) Tags() *mixin.Tags {
	return &v.tags
}

// Aux returns the auxiliary data store.
func (v *Variable) Aux() *mixin.AuxData {
	return &v.aux
}

// Selection returns the event selection.
func (v *Variable) Selection() *mixin.Selection {
	return &v.selection
}

// TitleOption adjusts how full titles are rendered.
type TitleOption func(*titleSettings)

type titleSettings struct {
	short bool
	root  bool
}

// Short renders the abbreviated titles.
func Short() TitleOption {
	return func(s *titleSettings) { s.short = true }
}

// Root converts latex in the titles to ROOT latex.
func Root() TitleOption {
	return func(s *titleSettings) { s.root = true }
}

func titleOptions(opts []TitleOption) titleSettings {
	var s titleSettings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// FullXTitle returns the x title with the unit appended in brackets, e.g.
// "p_{T} [GeV]". The dimensionless unit is suppressed.
func (v *Variable) FullXTitle(opts ...TitleOption) string {
	s := titleOptions(opts)
	title := v.xTitle.Text()
	if s.short {
		title = v.xTitle.Short()
	}
	if unit := v.Unit(); unit != DefaultUnit {
		title = fmt.Sprintf("%s [%s]", title, unit)
	}
	if s.root {
		title = rootlatex.Convert(title)
	}
	return title
}

// FullYTitle returns the y title with the bin width and unit appended, e.g.
// "Entries / 0.5 GeV". The width is rounded to two decimals and printed
// without trailing zeros; the dimensionless unit is suppressed.
func (v *Variable) FullYTitle(opts ...TitleOption) string {
	s := titleOptions(opts)
	title := v.yTitle.Text()
	if s.short {
		title = v.yTitle.Short()
	}
	title = fmt.Sprintf("%s / %s", title, formatWidth(v.Binning().Width()))
	if unit := v.Unit(); unit != DefaultUnit {
		title = fmt.Sprintf("%s %s", title, unit)
	}
	if s.root {
		title = rootlatex.Convert(title)
	}
	return title
}

// FullTitle returns "name;x title;y title", the ROOT histogram title
// format.
func (v *Variable) FullTitle(opts ...TitleOption) string {
	return fmt.Sprintf("%s;%s;%s", v.Name(), v.FullXTitle(opts...), v.FullYTitle(opts...))
}

func formatWidth(w float64) string {
	rounded := math.Round(w*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
