package engine

import (
	"sync"
	"time"
)

// DefaultTickInterval is the auto-scroll tick period when the host does not
// configure one.
const DefaultTickInterval = 50 * time.Millisecond

// unitsPerSpeedLevel is the scroll advance per tick for each speed level.
const unitsPerSpeedLevel = 10

// AutoScrollController advances the scroll position at a configurable rate
// until the content ends or it is explicitly stopped. It is the only source of
// asynchronous re-entry into the viewer; everything it touches goes through
// the advance callback, never through session state.
//
// The controller never inspects view state. The orchestrator is responsible
// for stopping it when the content view is left or auto-scroll is disabled.
type AutoScrollController struct {
	mu       sync.Mutex
	interval time.Duration
	advance  func(step float64) (atEnd bool)
	stop     chan struct{}
	done     chan struct{}
}

// NewAutoScrollController creates a stopped controller. advance moves the
// scroll collaborator by step units and reports whether the end of content was
// reached.
func NewAutoScrollController(interval time.Duration, advance func(step float64) (atEnd bool)) *AutoScrollController {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &AutoScrollController{
		interval: interval,
		advance:  advance,
	}
}

// Start begins the recurring tick at the given speed level (clamped to 1..10).
// Starting while already running is idempotent; no duplicate timers.
func (c *AutoScrollController) Start(speedLevel int) {
	if speedLevel < 1 {
		speedLevel = 1
	}
	if speedLevel > 10 {
		speedLevel = 10
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return
	}
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	go c.run(float64(speedLevel*unitsPerSpeedLevel), c.stop, c.done)
}

// Stop cancels the recurring tick and waits for the tick loop to exit.
// Stopping while already stopped is a no-op.
func (c *AutoScrollController) Stop() {
	c.mu.Lock()
	stop, done := c.stop, c.done
	c.stop, c.done = nil, nil
	c.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// Running reports whether the tick loop is active.
func (c *AutoScrollController) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

func (c *AutoScrollController) run(step float64, stop chan struct{}, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if c.advance != nil && c.advance(step) {
				// End of content: transition to stopped without
				// waiting for an explicit Stop call.
				c.mu.Lock()
				if c.stop == stop {
					c.stop, c.done = nil, nil
				}
				c.mu.Unlock()
				return
			}
		}
	}
}
