package domain

import "time"

// IngestionStatus is the lifecycle state of an ingestion run.
type IngestionStatus string

// Ingestion states.
const (
	// IngestionRunning is set when a run starts. A run left in this state
	// was interrupted before it could record an outcome.
	IngestionRunning IngestionStatus = "running"

	// IngestionComplete means every chunk was stored.
	IngestionComplete IngestionStatus = "complete"

	// IngestionPartial means some, but not all, chunks were stored.
	IngestionPartial IngestionStatus = "partial"

	// IngestionFailed means nothing was stored.
	IngestionFailed IngestionStatus = "failed"
)

// IsValid returns true if the status is recognised.
func (s IngestionStatus) IsValid() bool {
	switch s {
	case IngestionRunning, IngestionComplete, IngestionPartial, IngestionFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s IngestionStatus) String() string {
	return string(s)
}

// Ingestion is a ledger entry for one ingestion run.
type Ingestion struct {
	ID            string
	Kind          DocumentKind
	Input         string
	Source        string
	ProcessedPath string
	ChunksTotal   int
	ChunksWritten int
	Status        IngestionStatus
	Error         string
	StartedAt     time.Time
	FinishedAt    *time.Time
}

// Finish records the outcome of a run from the number of stored chunks
// and the error that stopped it, if any.
func (i *Ingestion) Finish(written int, err error, at time.Time) {
	i.ChunksWritten = written
	i.FinishedAt = &at
	switch {
	case err == nil:
		i.Status = IngestionComplete
		i.Error = ""
	case written > 0:
		i.Status = IngestionPartial
		i.Error = err.Error()
	default:
		i.Status = IngestionFailed
		i.Error = err.Error()
	}
}
