package kinetree

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/kinetree/internal/compiler"
	"github.com/aretw0/kinetree/internal/logging"
	"github.com/aretw0/kinetree/pkg/kinematic"
	"github.com/aretw0/kinetree/pkg/urdf"
)

// PartResolver looks sub-assemblies up by id. The loam and memory adapters
// implement it.
type PartResolver = compiler.PartResolver

// Engine is the high-level entry point of the library.
type Engine struct {
	compiler *compiler.Compiler
	logger   *slog.Logger
	parts    PartResolver
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger used by the engine and its compiler.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithParts enables joints that reference parts of a library.
func WithParts(r PartResolver) Option {
	return func(e *Engine) {
		e.parts = r
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}

	copts := []compiler.Option{compiler.WithLogger(e.logger)}
	if e.parts != nil {
		copts = append(copts, compiler.WithParts(e.parts))
	}
	e.compiler = compiler.New(copts...)
	return e
}

// Compile builds the robot described by data.
func (e *Engine) Compile(ctx context.Context, data []byte) (*kinematic.Robot, error) {
	return e.compiler.Compile(ctx, data)
}

// Render compiles data and marshals the robot.
func (e *Engine) Render(ctx context.Context, data []byte, cfg urdf.Config) ([]byte, error) {
	robot, err := e.Compile(ctx, data)
	if err != nil {
		return nil, err
	}
	out, err := urdf.Marshal(robot, cfg)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("Rendered robot", "robot", robot.Name(), "bytes", len(out))
	return out, nil
}

// RenderFile is Render over the contents of a file.
func (e *Engine) RenderFile(ctx context.Context, path string, cfg urdf.Config) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read description: %w", err)
	}
	return e.Render(ctx, data, cfg)
}

// RenderPart renders a single part of the library as a robot of its own.
func (e *Engine) RenderPart(ctx context.Context, id string, cfg urdf.Config) ([]byte, error) {
	if e.parts == nil {
		return nil, errors.New("no part library configured")
	}
	d, err := e.parts.ResolvePart(ctx, id)
	if err != nil {
		return nil, err
	}
	robot, err := e.compiler.Build(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("part %q: %w", id, err)
	}
	return urdf.Marshal(robot, cfg)
}

// Inspect compiles data and summarizes the resulting tree.
func (e *Engine) Inspect(ctx context.Context, data []byte) (kinematic.Overview, error) {
	robot, err := e.Compile(ctx, data)
	if err != nil {
		return kinematic.Overview{}, err
	}
	return robot.Overview(), nil
}
