package models

import (
	"time"

	"github.com/google/uuid"
)

// Run status constants
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// SampleRun records one project's pass through the quota partitioner.
type SampleRun struct {
	ID                    uuid.UUID  `json:"id"`
	Project               string     `json:"project"`
	ModelID               string     `json:"model_id"`
	Strategy              string     `json:"strategy"`
	ArchitecturalLimit    int        `json:"architectural_limit"`
	NonArchitecturalLimit int        `json:"non_architectural_limit"`
	Candidates            int        `json:"candidates"`
	Architectural         int        `json:"architectural"`
	NonArchitectural      int        `json:"non_architectural"`
	Unlabeled             int        `json:"unlabeled"`
	Dropped               int        `json:"dropped"`
	Status                string     `json:"status"`
	Error                 *string    `json:"error,omitempty"`
	StartedAt             time.Time  `json:"started_at"`
	FinishedAt            *time.Time `json:"finished_at,omitempty"`
}

// IsFinished returns true once the run has completed or failed.
func (r *SampleRun) IsFinished() bool {
	return r.Status == RunStatusCompleted || r.Status == RunStatusFailed
}

// QuotaMet returns true if both category caps were reached.
func (r *SampleRun) QuotaMet() bool {
	return r.Architectural >= r.ArchitecturalLimit && r.NonArchitectural >= r.NonArchitecturalLimit
}
