package ports

// Unsubscribe releases a signal subscription. Safe to call more than once.
// Every Subscribe-style call returns one; triggers hold it and release it
// on deactivation, which is the system's only cancellation mechanism.
type Unsubscribe func()

// ReferenceFrame selects the coordinate space a source reports in.
// The frame is resolved at subscribe time: the same trigger code serves
// standalone pages (viewport frame) and embedded previews (container frame).
type ReferenceFrame string

const (
	FrameViewport  ReferenceFrame = "viewport"
	FrameContainer ReferenceFrame = "container"
)

// ScrollEvent is one raw scroll sample.
type ScrollEvent struct {
	// Offset is the current scroll position in pixels.
	Offset float64
	// ContentHeight is the total scrollable height.
	ContentHeight float64
	// ViewportHeight is the visible height.
	ViewportHeight float64
}

// ScrollSource delivers raw scroll samples.
type ScrollSource interface {
	SubscribeScroll(fn func(ScrollEvent)) (Unsubscribe, error)
}

// PointerEvent is one raw pointer sample in the subscribed frame.
type PointerEvent struct {
	X float64
	Y float64
}

// PointerSource delivers raw pointer movement.
type PointerSource interface {
	SubscribePointer(frame ReferenceFrame, fn func(PointerEvent)) (Unsubscribe, error)
}

// ViewportSource delivers the current viewport height, firing once on
// subscribe and again on every resize. Contained mode implementations
// size-observe the container element instead of the window.
type ViewportSource interface {
	SubscribeViewport(frame ReferenceFrame, fn func(heightPx float64)) (Unsubscribe, error)
}

// MotionPreferenceSource mirrors the system reduced-motion preference,
// firing once on subscribe and again on every user/system change.
type MotionPreferenceSource interface {
	SubscribeReducedMotion(fn func(prefersReduced bool)) (Unsubscribe, error)
}

// IntersectionSource observes a single element's visibility ratio against
// the given threshold ladder.
type IntersectionSource interface {
	ObserveElement(elementID string, thresholds []float64, fn func(ratio float64)) (Unsubscribe, error)
}

// ElementEvent announces an observable element entering or leaving the
// page. ExternallyManaged elements are driven by explicit state rather
// than spatial intersection; the intersection trigger must skip them to
// avoid double-driving their visibility.
type ElementEvent struct {
	ID                string
	Removed           bool
	ExternallyManaged bool
}

// ElementWatcher discovers observable elements: those present at subscribe
// time and those inserted later (browser adapters back this with a
// mutation observer).
type ElementWatcher interface {
	WatchElements(fn func(ElementEvent)) (Unsubscribe, error)
}

// SignalSources bundles every capability a full trigger set needs.
// Individual fields may be nil; the corresponding trigger is skipped.
type SignalSources struct {
	Scroll       ScrollSource
	Pointer      PointerSource
	Viewport     ViewportSource
	Motion       MotionPreferenceSource
	Intersection IntersectionSource
	Elements     ElementWatcher
}
