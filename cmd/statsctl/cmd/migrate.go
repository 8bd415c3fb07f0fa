package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:      "migrate",
	Short:    "Apply the bundled schema migrations",
	Args:     cobra.NoArgs,
	PreRunE:  connect,
	PostRunE: disconnect,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.Migrate(cmd.Context(), logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s schema is up to date\n", db.Dialect())
		return nil
	},
}
