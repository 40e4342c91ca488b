package domain

import "time"

// Attachment describes a file attached to a document. The engine only carries
// attachment metadata; the bytes live with the document collaborator.
type Attachment struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Document is a readable document as seen by the viewer engine: an immutable
// identifier plus the already-extracted text content. The engine never mutates
// a document.
type Document struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`

	// Optimized marks content that was pre-shaped for mobile rendering.
	Optimized bool `json:"optimized"`

	Attachments []Attachment `json:"attachments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// HasContent reports whether the document carries extractable text. A document
// without text still opens as an empty-content session rather than failing.
func (d *Document) HasContent() bool {
	return d != nil && d.Content != ""
}

// DocumentStore defines the document registry the host serves sessions from.
type DocumentStore interface {
	Register(doc *Document) (*Document, error)
	Get(id string) (*Document, error)
	List() []*Document
}
