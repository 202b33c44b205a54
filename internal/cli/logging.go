package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/rsvp-planner/app/internal/config"
)

func newLogger(cfg config.Log, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log.level %q: %w", cfg.Level, err)
	}
	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
