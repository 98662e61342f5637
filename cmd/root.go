package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kulugbekwork/lema/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lema",
	Short: "AI course builder in your terminal",
	Long:  "Lema turns a learning goal into a structured course with lessons, slides and quizzes, generated on demand.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Database path or postgres:// URL (overrides LEMA_DATABASE_URL / LEMA_DB)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDSN returns the data source using the --db flag (highest
// priority), then the LEMA_DATABASE_URL / LEMA_DB env vars, then the
// default XDG path.
func resolveDSN(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, nil
	}
	return store.DefaultDSN()
}
