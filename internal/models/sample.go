package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Sample is one issue written into an output destination by a sample run.
type Sample struct {
	ID          uuid.UUID       `json:"id"`
	RunID       uuid.UUID       `json:"run_id"`
	Destination string          `json:"destination"`
	Project     string          `json:"project"`
	Category    Category        `json:"category"`
	IssueID     string          `json:"issue_id"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SampleCount is the number of samples per destination, project and category.
type SampleCount struct {
	Destination string   `json:"destination"`
	Project     string   `json:"project"`
	Category    Category `json:"category"`
	Count       int64    `json:"count"`
}
