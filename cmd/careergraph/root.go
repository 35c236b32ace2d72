package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/careergraph/internal/cli"
	"github.com/aretw0/careergraph/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "careergraph",
	Short: "careergraph renders a career history as a progressively revealed graph",
	Long: `careergraph lays a career dataset out on a timeline and reveals it in timed stages.
It serves live views over HTTP, exposes the graph to MCP agents, and simulates
or prints the graph from the terminal.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("dataset", "", "Dataset file (.yaml or .json); defaults to the embedded dataset")
	rootCmd.PersistentFlags().String("achievements", "", "Directory of achievement documents merged into the dataset")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
}

// loadConfig layers command-line flags over the file and environment configuration.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	override := func(name string, dst *string) {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	override("dataset", &cfg.Dataset)
	override("achievements", &cfg.Achievements)
	override("log-level", &cfg.Log.Level)
	override("log-format", &cfg.Log.Format)
	return cfg, cfg.Validate()
}

func loadStack(cmd *cobra.Command) (*cli.Stack, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return loadStackFrom(cmd, cfg)
}

func loadStackFrom(cmd *cobra.Command, cfg config.Config) (*cli.Stack, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return cli.NewStack(ctx, cfg)
}
