package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rsvp-planner/app/internal/config"
)

// Version is overridden at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// RootOptions carries state shared by every subcommand.
type RootOptions struct {
	ConfigFile string

	viper  *viper.Viper
	Config *config.Config
	Logger zerolog.Logger
}

// NewRootCommand creates the rsvp command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{viper: config.New()}
	opts.viper.SetDefault("app_version", Version)

	cmd := &cobra.Command{
		Use:   "rsvp",
		Short: "Event RSVP service",
		Long:  "Serves household RSVP pages and the organizer API for multi-session events.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.viper, opts.ConfigFile)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts.Config = cfg
			opts.Logger = logger.With().Str("service", cfg.ServiceName).Logger()
			return nil
		},
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ConfigFile, "config", "", "path to a YAML config file")
	flags.String("log-level", "info", "log level (trace|debug|info|warn|error)")
	flags.Bool("log-pretty", false, "human readable console logs")
	flags.String("db-driver", "sqlite3", "database driver (sqlite3|postgres)")
	flags.String("db-dsn", "rsvp.db", "database data source name")
	_ = opts.viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = opts.viper.BindPFlag("log.pretty", flags.Lookup("log-pretty"))
	_ = opts.viper.BindPFlag("database.driver", flags.Lookup("db-driver"))
	_ = opts.viper.BindPFlag("database.dsn", flags.Lookup("db-dsn"))

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}
