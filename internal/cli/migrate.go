package cli

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := setup(ctx)
		if err != nil {
			return err
		}
		defer e.db.Close()
		return e.migrate(ctx)
	},
}

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create the admin account from ADMIN_USERNAME and ADMIN_PASSWORD if missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := setup(ctx)
		if err != nil {
			return err
		}
		defer e.db.Close()
		if err := e.migrate(ctx); err != nil {
			return err
		}
		return e.seedAdmin(ctx, e.adminService())
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedAdminCmd)
}
