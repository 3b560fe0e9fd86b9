package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ordolab/ordo/defs"
	"github.com/ordolab/ordo/internal/log"
	"github.com/ordolab/ordo/registry"
)

var validateWatch bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the definitions file",
	Long: `Validate parses the definitions file and registers every variable in a
fresh universe, reporting the first duplicate name or id, invalid binning
or malformed selection. With --watch (or auto_reload in the config) it
stays running and re-validates on every change to the file.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVarP(&validateWatch, "watch", "w", false,
		"keep running and re-validate when the file changes (default: the auto_reload config)")

	rootCmd.AddCommand(validateCmd)
}

// shouldWatch resolves watch mode: an explicit --watch wins, otherwise the
// auto_reload config applies.
func shouldWatch(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("watch") {
		return validateWatch
	}
	return cfg.AutoReload
}

func runValidate(cmd *cobra.Command, args []string) error {
	watch := shouldWatch(cmd)

	if err := validateOnce(cmd); err != nil {
		if !watch {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "invalid: %v\n", err)
	}

	if !watch {
		return nil
	}

	wcfg := defs.DefaultWatcherConfig(cfg.Defs)
	if cfg.ReloadDebounce > 0 {
		wcfg.DebounceDur = cfg.ReloadDebounce
	}
	w, err := defs.NewWatcher(wcfg)
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	changes, err := w.Start()
	if err != nil {
		return err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	fmt.Fprintf(cmd.OutOrStdout(), "watching %s\n", cfg.Defs)
	for {
		select {
		case <-changes:
			log.Debug(log.CatWatch, "definitions changed, re-validating", "path", cfg.Defs)
			if err := validateOnce(cmd); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "invalid: %v\n", err)
			}
		case <-sigs:
			return nil
		}
	}
}

func validateOnce(cmd *cobra.Command) error {
	u := registry.NewUniverse()
	defer u.Close()

	vars, err := loadDefs(u)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d variables ok\n", cfg.Defs, len(vars))
	return nil
}
