package cli

import (
	"log/slog"

	"github.com/aretw0/kinetree/internal/logging"
)

// NewLogger creates the stderr logger for a --log-level value.
func NewLogger(level string) (*slog.Logger, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl), nil
}
