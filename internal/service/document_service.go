package service

import (
	"strings"
	"sync"
	"time"

	"instruction-viewer/internal/domain"

	"github.com/google/uuid"
)

// DocumentService is the in-memory document registry the host serves viewer
// sessions from. Documents are immutable once registered.
type DocumentService struct {
	mu     sync.RWMutex
	docs   map[string]*domain.Document
	logger domain.Logger
}

// NewDocumentService creates an empty registry.
func NewDocumentService(logger domain.Logger) *DocumentService {
	return &DocumentService{
		docs:   make(map[string]*domain.Document),
		logger: logger,
	}
}

// Register stores a document. A missing id is generated; a missing title is a
// validation failure.
func (s *DocumentService) Register(doc *domain.Document) (*domain.Document, error) {
	if doc == nil {
		return nil, &domain.ValidationError{Message: "document is required"}
	}
	if doc.Title == "" {
		return nil, &domain.ValidationError{Field: "title", Message: "title is required"}
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
	s.logger.Info("Document registered", "document_id", doc.ID, "title", doc.Title, "bytes", len(doc.Content))
	return doc, nil
}

// Get returns the document with the given id.
func (s *DocumentService) Get(id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return doc, nil
}

// List returns all registered documents.
func (s *DocumentService) List() []*domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]*domain.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	return docs
}

// ExtractHeadings scans document content for markdown-style headings and
// returns the (level, title, position) tuples the navigation outline is built
// from. Position is the byte offset of the heading line.
func ExtractHeadings(content string) []domain.Heading {
	headings := []domain.Heading{}
	offset := 0
	for _, line := range strings.SplitAfter(content, "\n") {
		trimmed := strings.TrimRight(line, "\n")
		level := headingLevel(trimmed)
		if level > 0 {
			title := strings.TrimSpace(trimmed[level:])
			if title != "" {
				headings = append(headings, domain.Heading{
					Level:    level,
					Title:    title,
					Position: offset,
				})
			}
		}
		offset += len(line)
	}
	return headings
}

// headingLevel counts leading '#' characters followed by a space; zero means
// the line is not a heading.
func headingLevel(line string) int {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0
	}
	if level >= len(line) || line[level] != ' ' {
		return 0
	}
	return level
}
