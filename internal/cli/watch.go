package cli

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/kinetree/internal/logging"
)

// PartWatcher reports changed part ids until its context is done.
type PartWatcher interface {
	Watch(ctx context.Context) (<-chan string, error)
}

// WatchOptions configures Watch.
type WatchOptions struct {
	// Path is the description file; its modification time is polled.
	Path string
	// Parts, when set, triggers a rebuild whenever a part changes.
	Parts    PartWatcher
	Interval time.Duration
	Logger   *slog.Logger
}

// Watch calls build once and then again after every change to the
// description file or to the part library, until ctx is done. Build
// errors are logged and do not stop the loop.
func Watch(ctx context.Context, opts WatchOptions, build func(context.Context) error) error {
	if opts.Interval <= 0 {
		opts.Interval = 500 * time.Millisecond
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	var partEvents <-chan string
	if opts.Parts != nil {
		ch, err := opts.Parts.Watch(ctx)
		if err != nil {
			return err
		}
		partEvents = ch
	}

	rebuild := func(reason string) {
		logger.Info("Rebuilding", "reason", reason)
		if err := build(ctx); err != nil {
			logger.Error("Build failed", "err", err)
		}
	}

	last := modTime(opts.Path)
	rebuild("start")

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watcher")
			return nil
		case id, ok := <-partEvents:
			if !ok {
				partEvents = nil
				continue
			}
			rebuild("part " + id)
		case <-ticker.C:
			if mt := modTime(opts.Path); !mt.Equal(last) {
				last = mt
				rebuild("description changed")
			}
		}
	}
}

func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
