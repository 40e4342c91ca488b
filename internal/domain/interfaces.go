package domain

// ScrollPort is the scroll-position capability the engine depends on but does
// not implement. Implementations belong to the hosting environment (browser
// shell, native shell, or the headless host) and must be safe for concurrent
// use: the auto-scroll timer advances the port from its own goroutine while
// the session's owner may scroll it at the same time.
type ScrollPort interface {
	// Position returns the current scroll offset.
	Position() float64
	// ScrollTo moves the viewport to an absolute offset.
	ScrollTo(offset float64)
	// ScrollBy moves the viewport by delta and reports whether the end of
	// the content has been reached.
	ScrollBy(delta float64) (atEnd bool)
}

// FullscreenPort is the exclusive-display capability seam. OnChange registers
// a listener for externally triggered mode changes (for example an escape-key
// exit) and returns a detach function for disposal.
type FullscreenPort interface {
	Request() error
	Exit() error
	OnChange(func(active bool)) (detach func())
}

// SelectionPort exposes the host's current text selection, if any. Start and
// End are byte offsets into the document text.
type SelectionPort interface {
	Selection() (text string, start, end int, ok bool)
}

// ViewportPort reports the viewport size used for device classification.
type ViewportPort interface {
	Width() int
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetAllowedOrigins() []string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetAutoScrollInterval() int // milliseconds
	GetEventBufferSize() int
}
