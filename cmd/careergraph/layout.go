package main

import (
	"encoding/json"

	"github.com/aretw0/careergraph/pkg/domain"
	"github.com/spf13/cobra"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print node positions for a viewport as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadStack(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		width, _ := cmd.Flags().GetFloat64("width")
		height, _ := cmd.Flags().GetFloat64("height")
		nodes, err := st.Engine.Layout(cmd.Context(), domain.Viewport{Width: width, Height: height})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(nodes)
	},
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.Flags().Float64("width", 1920, "Viewport width in pixels")
	layoutCmd.Flags().Float64("height", 1080, "Viewport height in pixels")
}
