package domain

import "time"

// DefaultSessionID is the reserved id for the dataset loaded from the
// fallback workbook at startup.
const DefaultSessionID = "default"

// Session owns one uploaded Dataset. The dataset is immutable for the
// session's lifetime; filter criteria are rebuilt from request parameters
// on every interaction and never stored here.
type Session struct {
	ID         string
	Filename   string
	Dataset    *Dataset
	CreatedAt  time.Time
	LastAccess time.Time
}

// NewSession wraps a freshly decoded dataset.
func NewSession(id, filename string, dataset *Dataset) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:         id,
		Filename:   filename,
		Dataset:    dataset,
		CreatedAt:  now,
		LastAccess: now,
	}
}
