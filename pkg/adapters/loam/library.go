// Package loam serves a part library from a directory of Markdown, JSON or
// YAML documents managed by loam.
package loam

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/kinetree/internal/dto"
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/loam"
)

// Part describes one library entry.
type Part struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	Links       int    `json:"links"`
	Joints      int    `json:"joints"`
}

// Library adapts a loam repository to a part resolver.
type Library struct {
	Repo *loam.TypedRepository[PartMetadata]
}

// New creates a new Loam part library.
func New(repo *loam.TypedRepository[PartMetadata]) *Library {
	return &Library{
		Repo: repo,
	}
}

// Open initializes a read-only, strict library rooted at dir.
func Open(dir string) (*Library, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve part directory: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open part library: %w", err)
	}
	return New(loam.NewTypedRepository[PartMetadata](repo)), nil
}

// ResolvePart decodes the part stored under id. The id may omit the file
// extension.
func (l *Library) ResolvePart(ctx context.Context, id string) (*dto.Description, error) {
	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPartNotFound, id)
		}
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}
	desc, err := dto.Decode(doc.Data.raw(trimExtension(id)))
	if err != nil {
		return nil, fmt.Errorf("part %s: %w", id, err)
	}
	return desc, nil
}

// ListParts returns the normalized part ids, sorted.
func (l *Library) ListParts(ctx context.Context) ([]string, error) {
	parts, err := l.Parts(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(parts))
	for i, p := range parts {
		ids[i] = p.ID
	}
	return ids, nil
}

// Parts lists every part with its description. A part's description comes
// from its metadata or, failing that, from the document body.
func (l *Library) Parts(ctx context.Context) ([]Part, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	parts := make([]Part, 0, len(docs))
	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: part '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID

		description := doc.Data.Description
		if description == "" {
			// List only carries metadata; the body needs a full read.
			full, err := l.Repo.Get(ctx, doc.ID)
			if err != nil {
				return nil, fmt.Errorf("loam get failed for %s: %w", doc.ID, err)
			}
			description = strings.TrimSpace(full.Content)
		}
		parts = append(parts, Part{
			ID:          id,
			Description: description,
			Links:       len(doc.Data.Links),
			Joints:      len(doc.Data.Joints),
		})
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].ID < parts[j].ID })
	return parts, nil
}

// Watch reports the ids of parts that change on disk until ctx is done.
func (l *Library) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
