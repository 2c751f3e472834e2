package order

import (
	"time"
)

// HistoryEntry records one status transition of an order.
// The history is append-only: every transition appends exactly one entry and
// entries are never rewritten or truncated, so the sequence forms the audit
// trail shown on the tracking view.
type HistoryEntry struct {
	status    Status
	timestamp time.Time
}

// NewHistoryEntry creates a history entry for a status at a point in time.
func NewHistoryEntry(status Status, timestamp time.Time) HistoryEntry {
	return HistoryEntry{status: status, timestamp: timestamp}
}

// Status returns the status recorded by this entry.
func (e HistoryEntry) Status() Status {
	return e.status
}

// Timestamp returns when the transition happened.
func (e HistoryEntry) Timestamp() time.Time {
	return e.timestamp
}
