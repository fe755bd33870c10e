package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"decisionsampler/internal/models"
)

const issueColumns = `collection, id, key, payload, created_at`

// keyPrefixPattern returns a LIKE pattern matching keys of the form "<prefix>-...".
func keyPrefixPattern(keyPrefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(keyPrefix) + "-%"
}

func scanIssues(rows pgx.Rows) ([]models.Issue, error) {
	defer rows.Close()

	var issues []models.Issue
	for rows.Next() {
		var issue models.Issue
		if err := rows.Scan(&issue.Collection, &issue.ID, &issue.Key, &issue.Payload, &issue.CreatedAt); err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}
	return issues, rows.Err()
}

// SampleIssues draws a server-side random sample of up to size issues whose key
// starts with "<keyPrefix>-".
func (d *DB) SampleIssues(ctx context.Context, collection, keyPrefix string, size int) ([]models.Issue, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+issueColumns+`
		FROM issues
		WHERE collection = $1 AND key LIKE $2
		ORDER BY random()
		LIMIT $3
	`, collection, keyPrefixPattern(keyPrefix), size)
	if err != nil {
		return nil, fmt.Errorf("failed to sample issues: %w", err)
	}
	issues, err := scanIssues(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan sampled issues: %w", err)
	}
	return issues, nil
}

// FetchIssues returns up to limit issues whose key starts with "<keyPrefix>-",
// in key order. Callers shuffle the result themselves.
func (d *DB) FetchIssues(ctx context.Context, collection, keyPrefix string, limit int) ([]models.Issue, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+issueColumns+`
		FROM issues
		WHERE collection = $1 AND key LIKE $2
		ORDER BY key
		LIMIT $3
	`, collection, keyPrefixPattern(keyPrefix), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch issues: %w", err)
	}
	issues, err := scanIssues(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan issues: %w", err)
	}
	return issues, nil
}

// GetIssue returns a single issue by collection and id.
func (d *DB) GetIssue(ctx context.Context, collection, id string) (*models.Issue, error) {
	var issue models.Issue
	err := d.Pool.QueryRow(ctx, `
		SELECT `+issueColumns+`
		FROM issues
		WHERE collection = $1 AND id = $2
	`, collection, id).Scan(&issue.Collection, &issue.ID, &issue.Key, &issue.Payload, &issue.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}
	return &issue, nil
}

// UpsertIssues inserts or replaces issues in a single batch.
func (d *DB) UpsertIssues(ctx context.Context, issues []models.Issue) error {
	if len(issues) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, issue := range issues {
		batch.Queue(`
			INSERT INTO issues (collection, id, key, payload)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (collection, id) DO UPDATE
			SET key = EXCLUDED.key, payload = EXCLUDED.payload
		`, issue.Collection, issue.ID, issue.Key, issue.Payload)
	}

	br := d.Pool.SendBatch(ctx, batch)
	defer br.Close()

	for _, issue := range issues {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to upsert issue %s: %w", issue.Key, err)
		}
	}
	return nil
}

// CountIssues returns the number of issues in a collection matching the key prefix.
func (d *DB) CountIssues(ctx context.Context, collection, keyPrefix string) (int, error) {
	var count int
	err := d.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM issues WHERE collection = $1 AND key LIKE $2
	`, collection, keyPrefixPattern(keyPrefix)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count issues: %w", err)
	}
	return count, nil
}
