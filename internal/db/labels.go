package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"decisionsampler/internal/models"
)

// GetIssueLabels returns the labels for the given ids, keyed by id.
// Ids without a label are absent from the result.
func (d *DB) GetIssueLabels(ctx context.Context, ids []string) (map[string]models.IssueLabel, error) {
	labels := make(map[string]models.IssueLabel, len(ids))
	if len(ids) == 0 {
		return labels, nil
	}

	rows, err := d.Pool.Query(ctx, `
		SELECT id, predictions, updated_at
		FROM issue_labels
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query issue labels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var label models.IssueLabel
		if err := rows.Scan(&label.ID, &label.Predictions, &label.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan issue label: %w", err)
		}
		labels[label.ID] = label
	}
	return labels, rows.Err()
}

// GetIssueLabel returns a single label by id.
func (d *DB) GetIssueLabel(ctx context.Context, id string) (*models.IssueLabel, error) {
	var label models.IssueLabel
	err := d.Pool.QueryRow(ctx, `
		SELECT id, predictions, updated_at
		FROM issue_labels
		WHERE id = $1
	`, id).Scan(&label.ID, &label.Predictions, &label.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLabelNotFound
		}
		return nil, fmt.Errorf("failed to get issue label: %w", err)
	}
	return &label, nil
}

// UpsertIssueLabels inserts labels, merging prediction blocks into existing ones.
func (d *DB) UpsertIssueLabels(ctx context.Context, labels []models.IssueLabel) error {
	if len(labels) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, label := range labels {
		predictions := label.Predictions
		if predictions == nil {
			predictions = map[string]*models.ModelPrediction{}
		}
		batch.Queue(`
			INSERT INTO issue_labels (id, predictions)
			VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE
			SET predictions = issue_labels.predictions || EXCLUDED.predictions, updated_at = NOW()
		`, label.ID, predictions)
	}

	br := d.Pool.SendBatch(ctx, batch)
	defer br.Close()

	for _, label := range labels {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to upsert issue label %s: %w", label.ID, err)
		}
	}
	return nil
}
