package cmd

import (
	"github.com/justinav/pamoka/internal/archive"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pamoka",
	Short: "AI lesson-plan assistant for teachers",
	Long:  "Pamoka — terminal assistant that generates differentiated lesson plans, with refinement, a local archive and PDF export.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PAMOKA_DB env var)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(plansCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then PAMOKA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, archive.EnsureDir(p)
	}
	return archive.DefaultDBPath()
}
