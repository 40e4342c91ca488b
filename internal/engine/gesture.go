package engine

import "instruction-viewer/internal/domain"

// swipeThreshold is the minimum axis delta for a touch movement to count as a
// swipe rather than a tap.
const swipeThreshold = 50

// gestureScrollStep is the fixed scroll increment a vertical swipe requests.
const gestureScrollStep = 100

// GestureKind classifies the outcome of a touch delta.
type GestureKind int

const (
	GestureNone GestureKind = iota
	GestureNextView
	GesturePrevView
	GestureScrollForward
	GestureScrollBack
)

// TouchPoint is one touch coordinate.
type TouchPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RouteGesture classifies a touch start/end delta into a navigation or scroll
// command. Gestures are mobile-only; other device classes are ignored
// entirely. Movement below the threshold on both axes is treated as a tap and
// produces no command.
func RouteGesture(start, end TouchPoint, device domain.DeviceClass) GestureKind {
	if device != domain.DeviceMobile {
		return GestureNone
	}

	deltaX := end.X - start.X
	deltaY := end.Y - start.Y
	absX := abs(deltaX)
	absY := abs(deltaY)

	switch {
	case absX > absY && absX > swipeThreshold:
		if deltaX < 0 {
			return GestureNextView // left swipe
		}
		return GesturePrevView
	case absY > absX && absY > swipeThreshold:
		if deltaY < 0 {
			return GestureScrollForward // swipe up
		}
		return GestureScrollBack
	default:
		return GestureNone
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
