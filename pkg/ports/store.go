package ports

import (
	"context"

	"github.com/aretw0/kinetree/pkg/domain"
)

// DocumentStore persists rendered robots by name.
type DocumentStore interface {
	// Save stores doc under doc.Name, replacing any previous version.
	Save(ctx context.Context, doc *domain.Document) error

	// Load retrieves a document.
	// Returns domain.ErrDocumentNotFound if the name is unknown.
	Load(ctx context.Context, name string) (*domain.Document, error)

	// Delete removes a document. Deleting an unknown name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored names in ascending order.
	List(ctx context.Context) ([]string, error)
}
