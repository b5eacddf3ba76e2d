package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/kinetree"
	loamAdapter "github.com/aretw0/kinetree/pkg/adapters/loam"
)

// NewEngine creates the engine used by the commands. When partsDir is set
// the engine resolves parts from a loam library rooted there, and the
// library is returned for listing and watching.
func NewEngine(partsDir string, logger *slog.Logger) (*kinetree.Engine, *loamAdapter.Library, error) {
	opts := []kinetree.Option{kinetree.WithLogger(logger)}
	if partsDir == "" {
		return kinetree.New(opts...), nil, nil
	}

	lib, err := loamAdapter.Open(partsDir)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening part library: %w", err)
	}
	logger.Debug("Part library opened", "dir", partsDir)
	return kinetree.New(append(opts, kinetree.WithParts(lib))...), lib, nil
}
