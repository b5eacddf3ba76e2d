package testutils

import (
	"log/slog"
	"testing"

	"github.com/aretw0/kinetree/internal/logging"
)

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// Logger returns a debug logger that writes through t.Log.
func Logger(t *testing.T) *slog.Logger {
	return logging.NewWithWriter(testWriter{t: t}, slog.LevelDebug)
}
