// Package memory provides in-process adapter implementations: a scripted
// signal feed standing in for the browser observer APIs, and an in-memory
// snapshot store. Both back the test suites and the headless simulator.
package memory

import (
	"sync"

	"github.com/vitrinehq/vitrine/pkg/ports"
)

// SignalFeed is a scripted implementation of every signal source port.
// Tests and the simulator emit events into it; subscribed triggers react
// exactly as they would to a browser adapter.
// Safe for concurrent use.
type SignalFeed struct {
	mu     sync.Mutex
	nextID int

	scrollSubs   map[int]func(ports.ScrollEvent)
	pointerSubs  map[int]func(ports.PointerEvent)
	viewportSubs map[int]func(float64)
	motionSubs   map[int]func(bool)
	elementSubs  map[int]func(ports.ElementEvent)
	ratioSubs    map[string]map[int]func(float64)

	viewportHeight float64
	reducedMotion  bool
	elements       map[string]ports.ElementEvent
}

// NewSignalFeed creates an empty feed.
func NewSignalFeed() *SignalFeed {
	return &SignalFeed{
		scrollSubs:   make(map[int]func(ports.ScrollEvent)),
		pointerSubs:  make(map[int]func(ports.PointerEvent)),
		viewportSubs: make(map[int]func(float64)),
		motionSubs:   make(map[int]func(bool)),
		elementSubs:  make(map[int]func(ports.ElementEvent)),
		ratioSubs:    make(map[string]map[int]func(float64)),
		elements:     make(map[string]ports.ElementEvent),
	}
}

// Sources exposes the feed as the full capability bundle.
func (f *SignalFeed) Sources() ports.SignalSources {
	return ports.SignalSources{
		Scroll:       f,
		Pointer:      f,
		Viewport:     f,
		Motion:       f,
		Intersection: f,
		Elements:     f,
	}
}

func (f *SignalFeed) subID() int {
	f.nextID++
	return f.nextID
}

// SubscribeScroll implements ports.ScrollSource.
func (f *SignalFeed) SubscribeScroll(fn func(ports.ScrollEvent)) (ports.Unsubscribe, error) {
	f.mu.Lock()
	id := f.subID()
	f.scrollSubs[id] = fn
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		delete(f.scrollSubs, id)
		f.mu.Unlock()
	}, nil
}

// EmitScroll delivers a raw scroll sample to every subscriber.
func (f *SignalFeed) EmitScroll(offset, contentHeight, viewportHeight float64) {
	ev := ports.ScrollEvent{Offset: offset, ContentHeight: contentHeight, ViewportHeight: viewportHeight}
	for _, fn := range f.scrollListeners() {
		fn(ev)
	}
}

func (f *SignalFeed) scrollListeners() []func(ports.ScrollEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]func(ports.ScrollEvent), 0, len(f.scrollSubs))
	for _, fn := range f.scrollSubs {
		out = append(out, fn)
	}
	return out
}

// SubscribePointer implements ports.PointerSource. The frame is recorded
// by real adapters to resolve coordinates; the fake delivers as scripted.
func (f *SignalFeed) SubscribePointer(_ ports.ReferenceFrame, fn func(ports.PointerEvent)) (ports.Unsubscribe, error) {
	f.mu.Lock()
	id := f.subID()
	f.pointerSubs[id] = fn
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		delete(f.pointerSubs, id)
		f.mu.Unlock()
	}, nil
}

// EmitPointer delivers a pointer sample.
func (f *SignalFeed) EmitPointer(x, y float64) {
	f.mu.Lock()
	listeners := make([]func(ports.PointerEvent), 0, len(f.pointerSubs))
	for _, fn := range f.pointerSubs {
		listeners = append(listeners, fn)
	}
	f.mu.Unlock()
	for _, fn := range listeners {
		fn(ports.PointerEvent{X: x, Y: y})
	}
}

// SubscribeViewport implements ports.ViewportSource, firing once with the
// current height.
func (f *SignalFeed) SubscribeViewport(_ ports.ReferenceFrame, fn func(float64)) (ports.Unsubscribe, error) {
	f.mu.Lock()
	id := f.subID()
	f.viewportSubs[id] = fn
	height := f.viewportHeight
	f.mu.Unlock()

	fn(height)
	return func() {
		f.mu.Lock()
		delete(f.viewportSubs, id)
		f.mu.Unlock()
	}, nil
}

// SetViewportHeight updates the height and notifies subscribers.
func (f *SignalFeed) SetViewportHeight(height float64) {
	f.mu.Lock()
	f.viewportHeight = height
	listeners := make([]func(float64), 0, len(f.viewportSubs))
	for _, fn := range f.viewportSubs {
		listeners = append(listeners, fn)
	}
	f.mu.Unlock()
	for _, fn := range listeners {
		fn(height)
	}
}

// SubscribeReducedMotion implements ports.MotionPreferenceSource, firing
// once with the current preference.
func (f *SignalFeed) SubscribeReducedMotion(fn func(bool)) (ports.Unsubscribe, error) {
	f.mu.Lock()
	id := f.subID()
	f.motionSubs[id] = fn
	current := f.reducedMotion
	f.mu.Unlock()

	fn(current)
	return func() {
		f.mu.Lock()
		delete(f.motionSubs, id)
		f.mu.Unlock()
	}, nil
}

// SetReducedMotion updates the preference and notifies subscribers.
func (f *SignalFeed) SetReducedMotion(prefersReduced bool) {
	f.mu.Lock()
	f.reducedMotion = prefersReduced
	listeners := make([]func(bool), 0, len(f.motionSubs))
	for _, fn := range f.motionSubs {
		listeners = append(listeners, fn)
	}
	f.mu.Unlock()
	for _, fn := range listeners {
		fn(prefersReduced)
	}
}

// WatchElements implements ports.ElementWatcher, replaying the elements
// already present before streaming changes.
func (f *SignalFeed) WatchElements(fn func(ports.ElementEvent)) (ports.Unsubscribe, error) {
	f.mu.Lock()
	id := f.subID()
	f.elementSubs[id] = fn
	existing := make([]ports.ElementEvent, 0, len(f.elements))
	for _, ev := range f.elements {
		existing = append(existing, ev)
	}
	f.mu.Unlock()

	for _, ev := range existing {
		fn(ev)
	}
	return func() {
		f.mu.Lock()
		delete(f.elementSubs, id)
		f.mu.Unlock()
	}, nil
}

// AddElement scripts an observable element appearing on the page.
func (f *SignalFeed) AddElement(id string, externallyManaged bool) {
	ev := ports.ElementEvent{ID: id, ExternallyManaged: externallyManaged}
	f.mu.Lock()
	f.elements[id] = ev
	listeners := f.elementListenersLocked()
	f.mu.Unlock()
	for _, fn := range listeners {
		fn(ev)
	}
}

// RemoveElement scripts an element leaving the page.
func (f *SignalFeed) RemoveElement(id string) {
	f.mu.Lock()
	delete(f.elements, id)
	listeners := f.elementListenersLocked()
	f.mu.Unlock()
	for _, fn := range listeners {
		fn(ports.ElementEvent{ID: id, Removed: true})
	}
}

func (f *SignalFeed) elementListenersLocked() []func(ports.ElementEvent) {
	out := make([]func(ports.ElementEvent), 0, len(f.elementSubs))
	for _, fn := range f.elementSubs {
		out = append(out, fn)
	}
	return out
}

// ObserveElement implements ports.IntersectionSource.
func (f *SignalFeed) ObserveElement(elementID string, _ []float64, fn func(float64)) (ports.Unsubscribe, error) {
	f.mu.Lock()
	id := f.subID()
	if f.ratioSubs[elementID] == nil {
		f.ratioSubs[elementID] = make(map[int]func(float64))
	}
	f.ratioSubs[elementID][id] = fn
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		delete(f.ratioSubs[elementID], id)
		f.mu.Unlock()
	}, nil
}

// EmitIntersection delivers a visibility ratio for one element.
func (f *SignalFeed) EmitIntersection(elementID string, ratio float64) {
	f.mu.Lock()
	listeners := make([]func(float64), 0, len(f.ratioSubs[elementID]))
	for _, fn := range f.ratioSubs[elementID] {
		listeners = append(listeners, fn)
	}
	f.mu.Unlock()
	for _, fn := range listeners {
		fn(ratio)
	}
}

// Observed reports whether any observer is attached to the element.
func (f *SignalFeed) Observed(elementID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ratioSubs[elementID]) > 0
}

var _ ports.ScrollSource = (*SignalFeed)(nil)
var _ ports.PointerSource = (*SignalFeed)(nil)
var _ ports.ViewportSource = (*SignalFeed)(nil)
var _ ports.MotionPreferenceSource = (*SignalFeed)(nil)
var _ ports.IntersectionSource = (*SignalFeed)(nil)
var _ ports.ElementWatcher = (*SignalFeed)(nil)
