package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Job statuses. There is deliberately no "processing" status: in-flight work
// only ever exists in memory, so a crashed dispatcher leaves jobs dispatchable.
const (
	JobStatusNew       = "new"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// Job is one queued form submission.
type Job struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	Payload       json.RawMessage `db:"payload" json:"payload"`
	JobType       string          `db:"job_type" json:"job_type"`
	ExternalID    string          `db:"external_id" json:"external_id"`
	Status        string          `db:"status" json:"status"`
	RetryCount    int             `db:"retry_count" json:"retry_count"`
	LastRetriedAt *time.Time      `db:"last_retried_at" json:"last_retried_at,omitempty"`
	Error         *string         `db:"error" json:"error,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// QueueSummary reports queue state by status.
type QueueSummary struct {
	New       int `db:"new" json:"new"`
	Completed int `db:"completed" json:"completed"`
	Failed    int `db:"failed" json:"failed"`
	Exhausted int `db:"exhausted" json:"exhausted"`
}
