package main

import (
	"fmt"

	"github.com/aretw0/careergraph/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the career timeline with achievement cards",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadStack(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		out := cmd.OutOrStdout()
		plain, _ := cmd.Flags().GetBool("plain")
		if !tui.IsTerminal(out) {
			plain = true
		}
		expandedIDs, _ := cmd.Flags().GetStringSlice("expand")
		all, _ := cmd.Flags().GetBool("all")

		g := st.Engine.Graph()
		expanded := make(map[string]bool, len(expandedIDs))
		for _, id := range expandedIDs {
			expanded[id] = true
		}
		if all {
			for _, id := range g.Timeline {
				for _, a := range g.Achievements(id) {
					expanded[a] = true
				}
			}
		}

		renderMarkdown, err := tui.NewRenderer(tui.Width(out, 100), plain)
		if err != nil {
			return err
		}
		rendered, err := renderMarkdown(tui.TimelineMarkdown(g, expanded))
		if err != nil {
			return err
		}

		if !plain {
			tui.PrintBanner(out)
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringSlice("expand", nil, "Achievement ids to show in full")
	showCmd.Flags().Bool("all", false, "Show every achievement in full")
	showCmd.Flags().Bool("plain", false, "Disable colours and the banner")
}
