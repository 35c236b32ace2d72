package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/careergraph/internal/cli"
	"github.com/aretw0/careergraph/pkg/domain"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay a reveal on a simulated clock",
	Long: `Mounts a view, points at the graph, then hovers and clicks the given nodes,
printing every insertion and camera fit with its time offset.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadStack(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		width, _ := cmd.Flags().GetFloat64("width")
		height, _ := cmd.Flags().GetFloat64("height")
		hover, _ := cmd.Flags().GetStringSlice("hover")
		click, _ := cmd.Flags().GetStringSlice("click")
		settle, _ := cmd.Flags().GetDuration("settle")
		jsonMode, _ := cmd.Flags().GetBool("json")

		events, snap, err := cli.Simulate(cmd.Context(), st.Engine, cli.SimulateOptions{
			Viewport: domain.Viewport{Width: width, Height: height},
			Hover:    hover,
			Click:    click,
			Settle:   settle,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonMode {
			enc := json.NewEncoder(out)
			for _, e := range events {
				if err := enc.Encode(e); err != nil {
					return err
				}
			}
			return nil
		}
		for _, e := range events {
			fmt.Fprintln(out, e)
		}
		fmt.Fprintf(out, "visible: %d nodes, %d edges\n", len(snap.Nodes), len(snap.Edges))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().Float64("width", 1920, "Viewport width in pixels")
	simulateCmd.Flags().Float64("height", 1080, "Viewport height in pixels")
	simulateCmd.Flags().StringSlice("hover", nil, "Timeline nodes to hover, in order")
	simulateCmd.Flags().StringSlice("click", nil, "Achievements to toggle after hovering")
	simulateCmd.Flags().Duration("settle", 0, "Clock advance after each intent (default 5s)")
	simulateCmd.Flags().Bool("json", false, "Print events as NDJSON")
}
