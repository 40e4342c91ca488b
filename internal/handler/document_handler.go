// Package handler provides HTTP handlers for the API.
package handler

import (
	"net/http"

	"instruction-viewer/internal/domain"
	"instruction-viewer/internal/service"

	"github.com/gorilla/mux"
)

// DocumentHandler handles document-related HTTP requests
type DocumentHandler struct {
	documents *service.DocumentService
	logger    domain.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documents *service.DocumentService, logger domain.Logger) *DocumentHandler {
	return &DocumentHandler{
		documents: documents,
		logger:    logger,
	}
}

// RegisterDocument stores a document the host can open sessions against.
func (h *DocumentHandler) RegisterDocument(w http.ResponseWriter, r *http.Request) {
	var doc domain.Document
	if err := decodeBody(r, &doc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	registered, err := h.documents.Register(&doc)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, registered)
}

// GetDocument returns a single registered document.
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doc, err := h.documents.Get(vars["id"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// ListDocuments returns all registered documents.
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs := h.documents.List()
	// Ensure JSON is [] not null when there are no documents.
	if docs == nil {
		docs = []*domain.Document{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}
