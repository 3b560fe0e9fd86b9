// Package defs loads variable definitions from YAML files and registers
// them in a universe, with optional file watching for live reloads.
package defs

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ordolab/ordo/internal/log"
	"github.com/ordolab/ordo/registry"
	"github.com/ordolab/ordo/selexpr"
	"github.com/ordolab/ordo/variable"
)

// BinningDef is the YAML shape of a uniform binning.
type BinningDef struct {
	N   int     `yaml:"n"`
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// VariableDef is the YAML shape of a single variable definition. Absent
// fields keep the entity defaults; an absent id means auto assignment.
type VariableDef struct {
	Name          string         `yaml:"name"`
	ID            *int64         `yaml:"id"`
	Contexts      []string       `yaml:"contexts"`
	Expression    string         `yaml:"expression"`
	Binning       *BinningDef    `yaml:"binning"`
	XTitle        string         `yaml:"x_title"`
	XTitleShort   string         `yaml:"x_title_short"`
	YTitle        string         `yaml:"y_title"`
	YTitleShort   string         `yaml:"y_title_short"`
	Unit          string         `yaml:"unit"`
	LogX          bool           `yaml:"log_x"`
	LogY          bool           `yaml:"log_y"`
	Selection     string         `yaml:"selection"`
	SelectionMode string         `yaml:"selection_mode"`
	Tags          []string       `yaml:"tags"`
	Aux           map[string]any `yaml:"aux"`
}

// File is the YAML shape of a definitions file. Contexts and SelectionMode
// apply to every variable that does not name its own.
type File struct {
	Contexts      []string      `yaml:"contexts"`
	SelectionMode string        `yaml:"selection_mode"`
	Variables     []VariableDef `yaml:"variables"`
}

// Option adjusts file-level defaults before registration. YAML values win
// over options.
type Option func(*File)

// WithSelectionMode sets the dialect for definitions that name none.
func WithSelectionMode(mode selexpr.Mode) Option {
	return func(f *File) {
		if f.SelectionMode == "" {
			f.SelectionMode = string(mode)
		}
	}
}

// WithContexts sets the contexts for definitions that name none.
func WithContexts(contexts ...string) Option {
	return func(f *File) {
		if len(f.Contexts) == 0 {
			f.Contexts = contexts
		}
	}
}

// Parse decodes a definitions file without registering anything. Unknown
// fields are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &File{}, nil
		}
		return nil, fmt.Errorf("parsing definitions: %w", err)
	}
	return &f, nil
}

// Load parses a definitions file and registers every variable in u.
// Loading stops at the first invalid definition; variables registered
// before it stay registered.
func Load(u *registry.Universe, r io.Reader, opts ...Option) ([]*variable.Variable, error) {
	f, err := Parse(r)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(f)
	}
	return Register(u, f)
}

// LoadFile loads a definitions file from disk.
func LoadFile(u *registry.Universe, path string, opts ...Option) ([]*variable.Variable, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening definitions file: %w", err)
	}
	defer fh.Close()

	vars, err := Load(u, fh, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Info(log.CatDefs, "definitions loaded", "path", path, "variables", len(vars))
	return vars, nil
}

// Register registers every definition in f into u.
func Register(u *registry.Universe, f *File) ([]*variable.Variable, error) {
	vars := make([]*variable.Variable, 0, len(f.Variables))
	for _, def := range f.Variables {
		v, err := register(u, f, def)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", def.Name, err)
		}
		vars = append(vars, v)
	}
	return vars, nil
}

func register(u *registry.Universe, f *File, def VariableDef) (*variable.Variable, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", registry.ErrInvalidName)
	}

	p := variable.Params{
		Name:          def.Name,
		ID:            registry.AutoID,
		Contexts:      def.Contexts,
		Expression:    def.Expression,
		XTitle:        def.XTitle,
		XTitleShort:   def.XTitleShort,
		YTitle:        def.YTitle,
		YTitleShort:   def.YTitleShort,
		Unit:          def.Unit,
		LogX:          def.LogX,
		LogY:          def.LogY,
		Selection:     def.Selection,
		SelectionMode: selexpr.Mode(def.SelectionMode),
		Tags:          def.Tags,
	}
	if def.ID != nil {
		p.ID = *def.ID
	}
	if len(p.Contexts) == 0 {
		p.Contexts = f.Contexts
	}
	if p.SelectionMode == "" {
		p.SelectionMode = selexpr.Mode(f.SelectionMode)
	}
	if def.Binning != nil {
		p.Binning = &variable.Binning{N: def.Binning.N, Min: def.Binning.Min, Max: def.Binning.Max}
	}

	// YAML maps are unordered; insert sorted so aux key order is stable.
	keys := make([]string, 0, len(def.Aux))
	for k := range def.Aux {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		p.Aux.Set(k, def.Aux[k])
	}

	return variable.FromParams(u, p)
}
