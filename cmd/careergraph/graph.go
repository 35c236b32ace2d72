package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/careergraph/pkg/render"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the graph visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the normalized graph, or the graph itself as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadStack(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(st.Engine.Graph())
		case "mermaid":
			visible, _ := cmd.Flags().GetStringSlice("visible")
			expanded, _ := cmd.Flags().GetStringSlice("expanded")
			var overlay *render.GraphOverlay
			if len(visible) > 0 || len(expanded) > 0 {
				overlay = &render.GraphOverlay{VisibleNodes: visible, ExpandedNodes: expanded}
			}
			fmt.Fprint(cmd.OutOrStdout(), st.Engine.Mermaid(overlay))
			return nil
		}
		return fmt.Errorf("unknown format %q: use mermaid or json", format)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("format", "mermaid", "Output format: mermaid or json")
	graphCmd.Flags().StringSlice("visible", nil, "Highlight these node ids as visible")
	graphCmd.Flags().StringSlice("expanded", nil, "Highlight these achievement ids as expanded")
}
