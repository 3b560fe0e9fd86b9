package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ordolab/ordo/internal/log"
	"github.com/ordolab/ordo/registry"
	"github.com/ordolab/ordo/variable"
)

var (
	listTags    []string
	listContext string
	listOutput  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the variables defined in the definitions file",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringSliceVarP(&listTags, "tag", "t", nil,
		"only list variables carrying every given tag (glob patterns)")
	listCmd.Flags().StringVar(&listContext, "context", "",
		"only list variables registered in this context")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "",
		"output format: text or json")

	rootCmd.AddCommand(listCmd)
}

// listRow is the JSON shape of one listed variable.
type listRow struct {
	Name       string   `json:"name"`
	ID         int64    `json:"id"`
	Contexts   []string `json:"contexts"`
	Expression string   `json:"expression"`
	Binning    string   `json:"binning"`
	Unit       string   `json:"unit"`
	Selection  string   `json:"selection"`
	Tags       []string `json:"tags,omitempty"`
	Title      string   `json:"title"`
}

func runList(cmd *cobra.Command, args []string) error {
	u := registry.NewUniverse()
	defer u.Close()

	vars, err := loadDefs(u)
	if err != nil {
		return err
	}

	selected, err := filterVariables(vars)
	if err != nil {
		return err
	}
	log.Debug(log.CatCLI, "listing variables", "total", len(vars), "selected", len(selected))

	output := cfg.Output
	if listOutput != "" {
		output = listOutput
	}

	switch output {
	case "json":
		return printJSON(cmd, selected)
	case "", "text":
		printText(cmd, selected)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

func filterVariables(vars []*variable.Variable) ([]*variable.Variable, error) {
	context := listContext
	if context == "" {
		context = cfg.Context
	}

	out := make([]*variable.Variable, 0, len(vars))
	for _, v := range vars {
		if context != "" && !v.InContext(context) {
			continue
		}
		if len(listTags) > 0 {
			ok, err := v.Tags().HasAll(listTags)
			if err != nil {
				return nil, fmt.Errorf("tag pattern: %w", err)
			}
			if !ok {
				continue
			}
		}
		out = append(out, v)
	}
	return out, nil
}

func printJSON(cmd *cobra.Command, vars []*variable.Variable) error {
	rows := make([]listRow, 0, len(vars))
	for _, v := range vars {
		b := v.Binning()
		rows = append(rows, listRow{
			Name:       v.Name(),
			ID:         v.ID(),
			Contexts:   v.Contexts(),
			Expression: v.Expression(),
			Binning:    fmt.Sprintf("%d,%v,%v", b.N, b.Min, b.Max),
			Unit:       v.Unit(),
			Selection:  v.Selection().Expr(),
			Tags:       v.Tags().Slice(),
			Title:      v.FullTitle(),
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func printText(cmd *cobra.Command, vars []*variable.Variable) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tID\tEXPRESSION\tBINNING\tUNIT\tSELECTION")
	for _, v := range vars {
		b := v.Binning()
		fmt.Fprintf(w, "%s\t%d\t%s\t%d,%v,%v\t%s\t%s\n",
			v.Name(), v.ID(), v.Expression(), b.N, b.Min, b.Max, v.Unit(), v.Selection().Expr())
	}
	_ = w.Flush()
}
