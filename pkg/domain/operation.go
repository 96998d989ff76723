package domain

import "time"

// OperationStatus is the terminal status of an operation record.
type OperationStatus string

const (
	StatusSucceeded OperationStatus = "succeeded"
	// StatusPartial means the deformer was created but painting did not run
	// to completion. The node is left in the scene for the artist to inspect.
	StatusPartial OperationStatus = "partial"
	StatusFailed  OperationStatus = "failed"
)

// OperationRecord is the audit record of one deformer operation. Records are
// persisted through ports.OperationStore after the transaction closes; they
// are informational and never replayed.
type OperationRecord struct {
	ID           string          `json:"id"`
	Kind         DeformerKind    `json:"kind"`
	DeformerName string          `json:"deformer_name,omitempty"`
	BaseObject   string          `json:"base_object"`
	Mode         SelectionMode   `json:"mode"`
	Components   int             `json:"components"`
	SmoothRadius int             `json:"smooth_radius"`
	Status       OperationStatus `json:"status"`
	Error        string          `json:"error,omitempty"`
	StartedAt    time.Time       `json:"started_at"`
	FinishedAt   time.Time       `json:"finished_at"`
}
