package models

import (
	"encoding/json"
	"time"
)

// Issue is a candidate record: one issue-tracker document from a source collection.
// Payload holds the full original document and is written to samples unchanged.
type Issue struct {
	Collection string          `json:"collection"`
	ID         string          `json:"id"`
	Key        string          `json:"key"`
	Payload    json.RawMessage `json:"payload"`
	CreatedAt  time.Time       `json:"created_at"`
}
