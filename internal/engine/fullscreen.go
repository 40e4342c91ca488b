package engine

import (
	"sync"

	"instruction-viewer/internal/domain"
)

// FullscreenController tracks the viewer's exclusive display mode. When the
// platform rejects the request it falls back to flipping the internal flag
// only, flagging the emitted event with error=true so the session still
// reflects the intended state.
//
// The active flag is guarded: platform ports may deliver change notifications
// from their own goroutine. The mutex is never held across a port call, which
// keeps ports free to notify synchronously from Request/Exit.
type FullscreenController struct {
	port    domain.FullscreenPort
	emitter *AnalyticsEmitter
	logger  domain.Logger
	detach  func()

	mu     sync.Mutex
	active bool
}

// NewFullscreenController creates a controller in Normal mode and subscribes
// to externally triggered mode changes (for example an escape-key exit) so the
// internal flag stays in sync without emitting duplicate toggle events.
func NewFullscreenController(port domain.FullscreenPort, emitter *AnalyticsEmitter, logger domain.Logger) *FullscreenController {
	c := &FullscreenController{
		port:    port,
		emitter: emitter,
		logger:  logger,
	}
	if port != nil {
		c.detach = port.OnChange(func(active bool) {
			c.mu.Lock()
			c.active = active
			c.mu.Unlock()
		})
	}
	return c
}

// Toggle requests the platform enter or exit exclusive mode and emits exactly
// one fullscreen_toggle event.
func (c *FullscreenController) Toggle() bool {
	c.mu.Lock()
	desired := !c.active
	c.mu.Unlock()

	var err error
	switch {
	case c.port == nil:
		err = domain.ErrFullscreenUnavailable
	case desired:
		err = c.port.Request()
	default:
		err = c.port.Exit()
	}

	data := map[string]any{"fullscreen": desired}
	if err != nil {
		// Keep the UI consistent even though the platform did not honor
		// the request.
		c.logger.Warn("Fullscreen request not honored by platform", "error", err)
		data["error"] = true
	}
	c.mu.Lock()
	c.active = desired
	c.mu.Unlock()
	c.emitter.Emit(domain.EventFullscreen, data)
	return desired
}

// Active reports whether the viewer is in fullscreen mode.
func (c *FullscreenController) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Close detaches the platform change listener. Safe to call more than once.
func (c *FullscreenController) Close() {
	if c.detach != nil {
		c.detach()
		c.detach = nil
	}
}
