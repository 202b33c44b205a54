package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rsvp-planner/app/internal/database"
	"github.com/rsvp-planner/app/internal/fixture"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	Owner string
}

// NewImportCommand loads an event fixture for an existing organizer and
// prints each household's RSVP link token.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{}

	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import an event with its sessions, households, guests and questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fixture.LoadFile(args[0])
			if err != nil {
				return err
			}

			cfg := rootOpts.Config
			db, err := database.InitDB(cfg.Database.Driver, cfg.Database.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			owner, err := database.GetUserByEmail(ctx, db, opts.Owner)
			if errors.Is(err, database.ErrNotFound) {
				return fmt.Errorf("no organizer registered as %s", opts.Owner)
			}
			if err != nil {
				return err
			}

			res, err := fixture.Apply(ctx, db, owner.ID, f)
			if err != nil {
				return err
			}

			rootOpts.Logger.Info().
				Str("event_id", res.Event.ID).
				Int("sessions", len(res.Sessions)).
				Int("questions", len(res.Questions)).
				Int("households", len(res.Households)).
				Int("guests", res.Guests).
				Msg("event imported")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "event %s (%s)\n", res.Event.Slug, res.Event.ID)
			for _, h := range res.Households {
				fmt.Fprintf(out, "%s\t/r/%s\t%s\n", h.Name, h.RSVPToken, h.AccessCode)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Owner, "owner", "", "email of the organizer who will own the event")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}
