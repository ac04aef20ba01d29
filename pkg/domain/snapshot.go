package domain

// Well-known signal keys written by the built-in triggers.
// Triggers own disjoint keys; patches never touch a sibling's key.
const (
	// SignalScrollProgress is the document scroll ratio, clamped to [0,1].
	SignalScrollProgress = "scrollProgress"
	// SignalIsScrolling is true while the user is actively scrolling and
	// flips back to false after a quiet period.
	SignalIsScrolling = "isScrolling"
	// SignalCursorX / SignalCursorY are pointer coordinates in pixels,
	// relative to the container root in contained mode, else the viewport.
	SignalCursorX = "cursorX"
	SignalCursorY = "cursorY"
	// SignalViewportHeight is the current viewport height in pixels.
	SignalViewportHeight = "viewportHeight"
	// SignalSectionVisibility is a map of section ID -> visibility ratio.
	SignalSectionVisibility = "sectionVisibilities"
	// SignalReducedMotion mirrors the system accessibility preference.
	SignalReducedMotion = "prefersReducedMotion"
)

// Snapshot is a point-in-time view of the signal store.
// Values are owned by the caller; mutating a snapshot never writes back.
type Snapshot map[string]any

// Float returns the value under key as a float64, or fallback if the key
// is absent or holds a non-numeric value.
func (s Snapshot) Float(key string, fallback float64) float64 {
	switch v := s[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	default:
		return fallback
	}
}

// Bool returns the value under key as a bool, or fallback on a miss.
func (s Snapshot) Bool(key string, fallback bool) bool {
	if v, ok := s[key].(bool); ok {
		return v
	}
	return fallback
}

// Visibility returns the intersection ratio recorded for a section ID,
// or 0 when the section has never been observed.
func (s Snapshot) Visibility(sectionID string) float64 {
	vis, ok := s[SignalSectionVisibility].(map[string]float64)
	if !ok {
		return 0
	}
	return vis[sectionID]
}

// ReducedMotion reports whether the user requested reduced motion.
func (s Snapshot) ReducedMotion() bool {
	return s.Bool(SignalReducedMotion, false)
}
