package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kulugbekwork/lema/internal/logger"
	"github.com/kulugbekwork/lema/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all courses, answers and progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Println("This deletes every course, answer and progress record.")
			fmt.Println("Run again with --force to confirm.")
			return nil
		}

		dsn, err := resolveDSN(cmd)
		if err != nil {
			return fmt.Errorf("resolve data source: %w", err)
		}
		s, err := store.Open(dsn, logger.Nop())
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		if err := s.Reset(context.Background()); err != nil {
			return err
		}
		fmt.Println("All learning data deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("force", false, "Skip the confirmation step")
}
