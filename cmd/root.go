// Package cmd implements the ordo command line: tooling around variable
// definition files (listing, validation, live re-validation).
package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ordolab/ordo/defs"
	"github.com/ordolab/ordo/internal/config"
	"github.com/ordolab/ordo/internal/log"
	"github.com/ordolab/ordo/registry"
	"github.com/ordolab/ordo/selexpr"
	"github.com/ordolab/ordo/variable"
)

var (
	version = "dev"
	cfgFile string
	debug   bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ordo",
	Short: "Inspect and validate variable definition files",
	Long: `Ordo manages uniquely named analysis variables: expressions, binnings,
selections and plot labels defined in YAML files. The CLI lists and
validates those files without touching them.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/ordo/config.yaml)")
	rootCmd.PersistentFlags().StringP("defs", "d", "",
		"path to the variable definitions file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"write a debug log to ordo.log")

	_ = viper.BindPFlag("defs", rootCmd.PersistentFlags().Lookup("defs"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("defs", defaults.Defs)
	viper.SetDefault("context", defaults.Context)
	viper.SetDefault("selection_mode", defaults.SelectionMode)
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("reload_debounce", defaults.ReloadDebounce)
	viper.SetDefault("output", defaults.Output)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .ordo/config.yaml (current directory)
		// 2. ~/.config/ordo/config.yaml (user config)
		if _, err := os.Stat(".ordo/config.yaml"); err == nil {
			viper.SetConfigFile(".ordo/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "ordo"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file found anywhere - create default at .ordo/config.yaml
			defaultPath := filepath.Join(".ordo", "config.yaml")
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		} else {
			cobra.CheckErr(err)
		}
	}

	cobra.CheckErr(viper.Unmarshal(&cfg))
	cobra.CheckErr(cfg.Validate())
}

func initLogging() {
	if !debug && os.Getenv("ORDO_DEBUG") == "" {
		return
	}
	cleanup, err := log.Init("ordo.log")
	if err != nil {
		return
	}
	cobra.OnFinalize(cleanup)
	log.Info(log.CatCLI, "debug logging enabled")
}

// loadDefs loads the configured definitions file into u, applying the
// configured default selection dialect.
func loadDefs(u *registry.Universe) ([]*variable.Variable, error) {
	return defs.LoadFile(u, cfg.Defs,
		defs.WithSelectionMode(selexpr.Mode(cfg.SelectionMode)))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
