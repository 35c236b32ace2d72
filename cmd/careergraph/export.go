package main

import (
	"fmt"
	"os"
	"path/filepath"

	loamadapter "github.com/aretw0/careergraph/pkg/adapters/loam"
	"github.com/aretw0/loam"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [dir]",
	Short: "Write the dataset's achievements as an editable document library",
	Long: `Writes one markdown document per achievement into dir (default "achievements").
Point --achievements at the directory afterwards to edit achievements as files.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		targetDir := "achievements"
		if len(args) > 0 {
			targetDir = args[0]
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		// The export reads the base dataset only.
		cfg.Achievements = ""
		st, err := loadStackFrom(cmd, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		src, err := st.Engine.Source().Load(cmd.Context())
		if err != nil {
			return err
		}

		if err := os.MkdirAll(targetDir, 0755); err != nil {
			return err
		}
		absPath, err := filepath.Abs(targetDir)
		if err != nil {
			return err
		}
		// No versioning: plain file generation.
		repo, err := loam.Init(absPath, loam.WithVersioning(false), loam.WithForceTemp(false))
		if err != nil {
			return fmt.Errorf("failed to init loam: %w", err)
		}
		if err := loamadapter.Export(cmd.Context(), repo, src.Achievements); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d achievements to %s\n", len(src.Achievements), absPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
