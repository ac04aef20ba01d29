// Package trigger contains the observer components that translate raw
// browser signals into normalized store state.
//
// Each trigger subscribes to exactly one class of signal, computes a
// normalized value, writes it into the shared store via a partial patch,
// and releases its subscription on stop. Triggers own disjoint store keys,
// so they run concurrently without coordination.
package trigger

import (
	"io"
	"log/slog"

	"github.com/vitrinehq/vitrine/pkg/ports"
	"github.com/vitrinehq/vitrine/pkg/store"
)

// Trigger kind names, referenced by experience definitions.
const (
	KindScroll       = "scroll"
	KindCursor       = "cursor"
	KindViewport     = "viewport"
	KindIntersection = "intersection"
	KindMotion       = "motion"
)

// Trigger is one signal observer. Start subscribes and returns the stop
// function releasing the subscription; one subscription per trigger
// instance.
type Trigger interface {
	Kind() string
	Start(st *store.Store) (stop func(), err error)
}

// ForKinds builds the triggers named by kinds from the available sources.
// Kinds without a backing source are skipped with a warning; an empty
// kinds list means the full set.
func ForKinds(kinds []string, sources ports.SignalSources, frame ports.ReferenceFrame, logger *slog.Logger) []Trigger {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if len(kinds) == 0 {
		kinds = []string{KindScroll, KindCursor, KindViewport, KindIntersection, KindMotion}
	}

	var out []Trigger
	for _, kind := range kinds {
		var t Trigger
		switch kind {
		case KindScroll:
			if sources.Scroll != nil {
				t = NewScroll(sources.Scroll)
			}
		case KindCursor:
			if sources.Pointer != nil {
				t = NewCursor(sources.Pointer, frame)
			}
		case KindViewport:
			if sources.Viewport != nil {
				t = NewViewport(sources.Viewport, frame)
			}
		case KindIntersection:
			if sources.Intersection != nil && sources.Elements != nil {
				t = NewIntersection(sources.Intersection, sources.Elements)
			}
		case KindMotion:
			if sources.Motion != nil {
				t = NewMotion(sources.Motion)
			}
		default:
			logger.Warn("unknown trigger kind, skipped", "kind", kind)
			continue
		}
		if t == nil {
			logger.Warn("no source for trigger kind, skipped", "kind", kind)
			continue
		}
		out = append(out, t)
	}
	return out
}

// StartAll starts every trigger and returns a single stop function.
// If any Start fails, the already started ones are stopped and the error
// is returned.
func StartAll(triggers []Trigger, st *store.Store) (func(), error) {
	stops := make([]func(), 0, len(triggers))
	stopAll := func() {
		for _, stop := range stops {
			stop()
		}
	}
	for _, t := range triggers {
		stop, err := t.Start(st)
		if err != nil {
			stopAll()
			return nil, err
		}
		stops = append(stops, stop)
	}
	return stopAll, nil
}
