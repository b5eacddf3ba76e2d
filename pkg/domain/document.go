package domain

import (
	"errors"
	"time"
)

// ErrDocumentNotFound is returned when no rendered document exists under a name.
var ErrDocumentNotFound = errors.New("document not found")

// Document is a rendered robot as kept by a document store.
type Document struct {
	Name      string    `json:"name"`
	URDF      []byte    `json:"urdf"`
	Source    []byte    `json:"source,omitempty"` // description the URDF was rendered from
	Summary   string    `json:"summary,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := *d
	out.URDF = append([]byte(nil), d.URDF...)
	if d.Source != nil {
		out.Source = append([]byte(nil), d.Source...)
	}
	return &out
}

// ErrPartNotFound is returned by part libraries for unknown part ids.
var ErrPartNotFound = errors.New("part not found")
