package domain

import "time"

// PatchEvent records one store patch: which keys a trigger wrote.
type PatchEvent struct {
	Keys []string
	At   time.Time
}

// TrackEvent records timeline track execution for observability.
type TrackEvent struct {
	TimelineID string
	TrackID    string
	Duration   time.Duration
	Err        error
}

// LifecycleHooks defines optional callbacks for engine observability.
// All hooks may be nil and must be cheap; they run inline on hot paths.
type LifecycleHooks struct {
	OnStorePatch   func(PatchEvent)
	OnRegistryMiss func(registry, id string)
	OnTrackStart   func(timelineID, trackID string)
	OnTrackDone    func(TrackEvent)
	OnActivate     func(experienceID string)
}
