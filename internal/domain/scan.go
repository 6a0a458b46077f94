package domain

import "time"

type ScanStatus string

const (
	ScanIdle      ScanStatus = "idle"
	ScanActive    ScanStatus = "active"
	ScanCompleted ScanStatus = "completed"
)

// ScanState is the durable resume point for one user's catalog scan.
// Invariant: a nil ScrollToken never coexists with ScanActive; the scanner
// either completes the scan or re-initializes it.
type ScanState struct {
	UserID            int64      `db:"user_id"`
	ScrollToken       *string    `db:"scroll_token"`
	TotalProducts     int        `db:"total_products"`
	ProcessedProducts int        `db:"processed_products"`
	DuplicateCount    int        `db:"duplicate_count"`
	Status            ScanStatus `db:"status"`
	StartedAt         time.Time  `db:"started_at"`
	CompletedAt       *time.Time `db:"completed_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

// SearchPage is one page of the external enumeration: item identifiers plus
// the opaque continuation token. A nil ScrollToken means enumeration is done;
// an empty ItemIDs slice with a token does not.
type SearchPage struct {
	ItemIDs     []string
	ScrollToken *string
	Total       int
}

// PageResult is what one scanner invocation reports back to its caller.
type PageResult struct {
	HasMore           bool
	ScanCompleted     bool
	ProcessedInBatch  int
	NewInBatch        int
	TotalSoFar        int
	TotalKnown        int
	DuplicatesSkipped int
	Restarted         bool
}

// ReconcileStats counts the outcome of one reconciled batch.
type ReconcileStats struct {
	New       int
	Updated   int
	Unchanged int
	Failed    int
}

func (s ReconcileStats) Written() int { return s.New + s.Updated }
