package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/kinetree/internal/dto"
	"github.com/aretw0/kinetree/pkg/domain"
)

// Parts is a part library backed by a map of YAML descriptions.
type Parts struct {
	parts map[string][]byte
}

// NewParts creates a library from raw YAML documents keyed by part id.
func NewParts(data map[string]string) *Parts {
	parts := make(map[string][]byte, len(data))
	for k, v := range data {
		parts[k] = []byte(v)
	}
	return &Parts{parts: parts}
}

// ResolvePart parses the description stored under id.
func (p *Parts) ResolvePart(ctx context.Context, id string) (*dto.Description, error) {
	content, ok := p.parts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPartNotFound, id)
	}
	return dto.Parse(content)
}

// ListParts returns all part ids in deterministic order.
func (p *Parts) ListParts(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(p.parts))
	for k := range p.parts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
