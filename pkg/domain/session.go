package domain

import "time"

// PreviewSession captures a preview/dev session's resumable state: the
// active dev overrides plus the last published signal snapshot. Persisting
// it lets a preview reconnect resume where it left off; regular page views
// never persist anything.
type PreviewSession struct {
	ID        string      `json:"id"`
	Overrides DevOverride `json:"overrides"`
	Signals   Snapshot    `json:"signals,omitempty"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// NewPreviewSession creates an empty session for the given ID.
func NewPreviewSession(id string) *PreviewSession {
	return &PreviewSession{
		ID:      id,
		Signals: make(Snapshot),
	}
}
