// Package cmd provides the CLI commands for factgraph.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"factgraph/internal/config"
	"factgraph/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "factgraph",
	Short: "Run and inspect FactGraph registries",
	Long: `factgraph is a test harness for the FactGraph evaluation engine.

It evaluates a built-in fact registry against a JSON input fixture and
prints the resulting module.fact = value table.

Examples:
  factgraph evaluate --registry circles --input ./fixtures/s1.json
  factgraph version`,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: built-in defaults, no file is read)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}
