package db

import "errors"

// Domain-level database error sentinels.
var (
	// Issue errors
	ErrIssueNotFound = errors.New("issue not found")

	// Label errors
	ErrLabelNotFound = errors.New("issue label not found")

	// Sample run errors
	ErrRunNotFound = errors.New("sample run not found")
)
