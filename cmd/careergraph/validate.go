package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errInvalidDataset = errors.New("dataset has integrity issues")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the dataset for consistency",
	Long:  `Builds the graph and reports dropped edges, rejected nodes and timeline problems.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadStack(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		report := st.Engine.Report()
		out := cmd.OutOrStdout()
		if jsonMode, _ := cmd.Flags().GetBool("json"); jsonMode {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(out, report.String())
		}

		if !report.OK() {
			return errInvalidDataset
		}
		g := st.Engine.Graph()
		fmt.Fprintf(out, "Graph is valid! %d nodes, %d edges, fingerprint %s\n", len(g.Nodes), len(g.Edges), st.Engine.Fingerprint())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("json", false, "Print the report as JSON")
}
