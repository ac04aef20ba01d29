package domain

import "errors"

// ErrNotRegistered is returned when an ID cannot be found in a registry.
var ErrNotRegistered = errors.New("entry not registered")

// ErrSessionNotFound is returned when a preview session ID cannot be found in the snapshot store.
var ErrSessionNotFound = errors.New("session not found")

// ErrLoaderFailed is returned when a lazy registry entry's loader rejects.
var ErrLoaderFailed = errors.New("lazy loader failed")

// ErrTimelinePlaying is returned when a timeline is mutated while a run is in flight.
var ErrTimelinePlaying = errors.New("timeline already playing")
