package config

import (
	"instruction-viewer/internal/domain"
	"instruction-viewer/internal/repository"
	"instruction-viewer/internal/service"
	"instruction-viewer/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config          domain.Config
	Logger          domain.Logger
	DocumentService *service.DocumentService
	SessionManager  *service.SessionManager
	Broadcaster     *service.Broadcaster
	EventRepository *repository.EventRepository
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	broadcaster := service.NewBroadcaster(config.GetEventBufferSize(), appLogger)
	documentService := service.NewDocumentService(appLogger)

	// The event repository is the optional external store; the host runs
	// without persistence when Supabase is unconfigured.
	var eventRepo *repository.EventRepository
	if config.GetSupabaseURL() != "" && config.GetSupabaseKey() != "" {
		repo, err := repository.NewEventRepository(config, appLogger)
		if err != nil {
			appLogger.Error("Event repository unavailable, continuing without persistence", err)
		} else {
			eventRepo = repo
		}
	}

	sink := composeSink(broadcaster, eventRepo, appLogger)
	sessionManager := service.NewSessionManager(documentService, sink, appLogger)

	return &Container{
		Config:          config,
		Logger:          appLogger,
		DocumentService: documentService,
		SessionManager:  sessionManager,
		Broadcaster:     broadcaster,
		EventRepository: eventRepo,
	}
}

// composeSink fans engine events into the SSE broadcaster, the debug log, and
// the optional event store.
func composeSink(broadcaster *service.Broadcaster, eventRepo *repository.EventRepository, appLogger domain.Logger) domain.EventSink {
	var storeSink domain.EventSink
	if eventRepo != nil {
		storeSink = eventRepo.Sink()
	}
	return func(event domain.ViewerEvent) {
		appLogger.Debug("Viewer event", "type", string(event.Type), "session_id", event.SessionID, "user_id", event.UserID)
		broadcaster.Publish(event)
		if storeSink != nil {
			storeSink(event)
		}
	}
}
