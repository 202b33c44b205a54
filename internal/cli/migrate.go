package cli

import (
	"github.com/spf13/cobra"

	"github.com/rsvp-planner/app/internal/database"
)

func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.Config
			db, err := database.InitDB(cfg.Database.Driver, cfg.Database.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			rootOpts.Logger.Info().Str("driver", cfg.Database.Driver).Msg("schema applied")
			return nil
		},
	}
}
