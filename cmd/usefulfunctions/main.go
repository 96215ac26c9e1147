package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"usefulfunctions/pkg/config"
)

var (
	configPath string
	cfg        *config.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("usefulfunctions: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "usefulfunctions",
		Short:         "A collection of small image, chart, table and math helpers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "usefulfunctions.yaml", "Configuration file (.yaml or .toml)")

	root.AddCommand(
		newSliceCmd(),
		newHaversineCmd(),
		newEastNorthCmd(),
		newNullsCmd(),
		newCleanNamesCmd(),
		newErrorsCmd(),
		newHeatmapCmd(),
		newCorrCmd(),
		newMultiTableCmd(),
		newTimeSeriesCmd(),
		newConfigCmd(),
	)
	return root
}

// logf prints progress lines when verbose output is enabled
func logf(format string, args ...any) {
	if cfg != nil && cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Manage the configuration file"}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write a default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.CreateDefaultConfigFile(path); err != nil {
				return err
			}
			fmt.Printf("Default configuration written to %s\n", path)
			return nil
		},
	})
	return cmd
}
