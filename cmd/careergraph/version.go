package main

import (
	"fmt"

	"github.com/aretw0/careergraph"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of careergraph",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "careergraph version %s\n", careergraph.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
