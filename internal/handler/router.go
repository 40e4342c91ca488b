package handler

import (
	"net/http"

	"instruction-viewer/internal/config"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"instruction-viewer"}`))
	}).Methods("GET")

	// Initialize handlers
	documentHandler := NewDocumentHandler(container.DocumentService, container.Logger)
	sessionHandler := NewSessionHandler(container.SessionManager, container.Logger)
	eventsHandler := NewEventsHandler(container.Broadcaster, container.Logger)

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(RequestLogging(container.Logger))

	// Document routes
	api.HandleFunc("/documents", documentHandler.RegisterDocument).Methods("POST")
	api.HandleFunc("/documents", documentHandler.ListDocuments).Methods("GET")
	api.HandleFunc("/documents/{id}", documentHandler.GetDocument).Methods("GET")

	// Session lifecycle
	api.HandleFunc("/sessions", sessionHandler.CreateSession).Methods("POST")
	api.HandleFunc("/sessions/{id}", sessionHandler.GetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", sessionHandler.DisposeSession).Methods("DELETE")

	// Session commands
	api.HandleFunc("/sessions/{id}/progress", sessionHandler.UpdateProgress).Methods("POST")
	api.HandleFunc("/sessions/{id}/bookmark", sessionHandler.ToggleBookmark).Methods("POST")
	api.HandleFunc("/sessions/{id}/notes", sessionHandler.AddNote).Methods("POST")
	api.HandleFunc("/sessions/{id}/notes/{noteId}", sessionHandler.UpdateNote).Methods("PUT")
	api.HandleFunc("/sessions/{id}/notes/{noteId}", sessionHandler.DeleteNote).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/highlights", sessionHandler.AddHighlight).Methods("POST")
	api.HandleFunc("/sessions/{id}/highlights/{highlightId}", sessionHandler.RemoveHighlight).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/settings", sessionHandler.UpdateSettings).Methods("PUT")
	api.HandleFunc("/sessions/{id}/navigate", sessionHandler.Navigate).Methods("POST")
	api.HandleFunc("/sessions/{id}/navigation", sessionHandler.GetNavigation).Methods("GET")
	api.HandleFunc("/sessions/{id}/search", sessionHandler.Search).Methods("GET")
	api.HandleFunc("/sessions/{id}/search/navigate", sessionHandler.NavigateToSearchResult).Methods("POST")
	api.HandleFunc("/sessions/{id}/zoom", sessionHandler.SetZoom).Methods("POST")
	api.HandleFunc("/sessions/{id}/rotate", sessionHandler.Rotate).Methods("POST")
	api.HandleFunc("/sessions/{id}/fullscreen", sessionHandler.ToggleFullscreen).Methods("POST")
	api.HandleFunc("/sessions/{id}/autoscroll/start", sessionHandler.StartAutoScroll).Methods("POST")
	api.HandleFunc("/sessions/{id}/autoscroll/stop", sessionHandler.StopAutoScroll).Methods("POST")
	api.HandleFunc("/sessions/{id}/gesture", sessionHandler.HandleGesture).Methods("POST")
	api.HandleFunc("/sessions/{id}/share", sessionHandler.Share).Methods("POST")
	api.HandleFunc("/sessions/{id}/export", sessionHandler.Export).Methods("POST")
	api.HandleFunc("/sessions/{id}/print", sessionHandler.Print).Methods("POST")

	// Analytics stream
	api.HandleFunc("/events", eventsHandler.Stream).Methods("GET")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: container.Config.GetAllowedOrigins(),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
