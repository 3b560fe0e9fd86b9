package defs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ordolab/ordo/registry"
	"github.com/ordolab/ordo/selexpr"
	"github.com/ordolab/ordo/variable"
)

const sampleDefs = `
contexts: [run2]
variables:
  - name: jet1_pt
    expression: Jet.PT[0]
    binning: {n: 40, min: 0, max: 20}
    x_title: "p_{T}"
    unit: GeV
    selection: "myBranchC > 0"
    tags: [kinematics]
  - name: jet1_eta
    id: 10
    expression: Jet.Eta[0]
    binning: {n: 50, min: -2.5, max: 2.5}
    x_title: "#eta"
    contexts: [run3]
    aux:
      campaign: legacy
`

func TestLoad_RegistersVariables(t *testing.T) {
	u := registry.NewUniverse()
	defer u.Close()

	vars, err := Load(u, strings.NewReader(sampleDefs))
	require.NoError(t, err)
	require.Len(t, vars, 2)

	// File-level contexts apply when a definition names none.
	ix, ok := u.Index(variable.Kind, "run2")
	require.True(t, ok)
	pt, err := ix.ByName("jet1_pt")
	require.NoError(t, err)
	v := pt.(*variable.Variable)
	require.Equal(t, "Jet.PT[0]", v.Expression())
	require.Equal(t, variable.Binning{N: 40, Min: 0, Max: 20}, v.Binning())
	require.Equal(t, "(myBranchC > 0)", v.Selection().Expr())
	require.Equal(t, "jet1_pt;p_{T} [GeV];Entries / 0.5 GeV", v.FullTitle())
	require.Equal(t, int64(0), v.ID())

	// Per-definition contexts and explicit ids win.
	ix3, ok := u.Index(variable.Kind, "run3")
	require.True(t, ok)
	eta, err := ix3.ByKey("jet1_eta", 10)
	require.NoError(t, err)
	require.Equal(t, "legacy", eta.(*variable.Variable).Aux().GetDefault("campaign", ""))
}

func TestLoad_DefaultContextWhenFileNamesNone(t *testing.T) {
	u := registry.NewUniverse()
	defer u.Close()

	_, err := Load(u, strings.NewReader("variables:\n  - name: a\n"))
	require.NoError(t, err)

	ix, ok := u.Index(variable.Kind, registry.DefaultContext)
	require.True(t, ok)
	require.True(t, ix.Has("a"))
}

func TestLoad_EmptyInput(t *testing.T) {
	u := registry.NewUniverse()
	defer u.Close()

	vars, err := Load(u, strings.NewReader(""))

	require.NoError(t, err)
	require.Empty(t, vars)
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	u := registry.NewUniverse()
	defer u.Close()

	_, err := Load(u, strings.NewReader("variables:\n  - name: a\n    binz: {n: 1}\n"))

	require.Error(t, err)
	require.Contains(t, err.Error(), "binz")
}

func TestLoad_MissingName(t *testing.T) {
	u := registry.NewUniverse()
	defer u.Close()

	_, err := Load(u, strings.NewReader("variables:\n  - expression: x\n"))

	require.ErrorIs(t, err, registry.ErrInvalidName)
}

func TestLoad_DuplicateName(t *testing.T) {
	u := registry.NewUniverse()
	defer u.Close()

	_, err := Load(u, strings.NewReader("variables:\n  - name: a\n  - name: a\n"))

	require.ErrorIs(t, err, registry.ErrDuplicateName)
}

func TestLoad_InvalidBinningNamesVariable(t *testing.T) {
	u := registry.NewUniverse()
	defer u.Close()

	_, err := Load(u, strings.NewReader("variables:\n  - name: bad\n    binning: {n: 0, min: 0, max: 1}\n"))

	require.Error(t, err)
	require.Contains(t, err.Error(), `"bad"`)
}

func TestLoad_InvalidSelectionMode(t *testing.T) {
	u := registry.NewUniverse()
	defer u.Close()

	_, err := Load(u, strings.NewReader("variables:\n  - name: a\n    selection_mode: sql\n"))

	require.Error(t, err)
}

func TestLoad_FileLevelSelectionMode(t *testing.T) {
	u := registry.NewUniverse()
	defer u.Close()

	input := "selection_mode: numexpr\nvariables:\n  - name: a\n    selection: \"x > 0\"\n"
	vars, err := Load(u, strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, vars, 1)

	require.NoError(t, vars[0].Selection().Add([]string{"y < 1"}))
	require.Equal(t, "(x > 0) & (y < 1)", vars[0].Selection().Expr())
}

func TestLoad_OptionDefaultsYieldToYAML(t *testing.T) {
	u := registry.NewUniverse()
	defer u.Close()

	input := "contexts: [run2]\nvariables:\n  - name: a\n"
	vars, err := Load(u, strings.NewReader(input),
		WithContexts("ignored"),
		WithSelectionMode(selexpr.ModeNumexpr),
	)
	require.NoError(t, err)

	// YAML contexts win over the option default.
	require.Equal(t, []string{"run2"}, vars[0].Contexts())
	// The file names no dialect, so the option applies.
	require.Equal(t, selexpr.ModeNumexpr, vars[0].Selection().Mode())
}
