package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"decisionsampler/internal/models"
)

const sampleColumns = `id, run_id, destination, project, category, issue_id, payload, created_at`

func scanSamples(rows pgx.Rows) ([]models.Sample, error) {
	defer rows.Close()

	var samples []models.Sample
	for rows.Next() {
		var s models.Sample
		if err := rows.Scan(&s.ID, &s.RunID, &s.Destination, &s.Project, &s.Category, &s.IssueID, &s.Payload, &s.CreatedAt); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

// InsertSample appends one sampled issue to its destination.
func (d *DB) InsertSample(ctx context.Context, sample *models.Sample) error {
	if sample.ID == uuid.Nil {
		sample.ID = uuid.New()
	}

	err := d.Pool.QueryRow(ctx, `
		INSERT INTO samples (id, run_id, destination, project, category, issue_id, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, sample.ID, sample.RunID, sample.Destination, sample.Project, sample.Category, sample.IssueID, sample.Payload).Scan(&sample.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert sample: %w", err)
	}
	return nil
}

// RandomSamples returns up to size randomly chosen samples from a destination.
func (d *DB) RandomSamples(ctx context.Context, destination string, size int) ([]models.Sample, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+sampleColumns+`
		FROM samples
		WHERE destination = $1
		ORDER BY random()
		LIMIT $2
	`, destination, size)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	samples, err := scanSamples(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan samples: %w", err)
	}
	return samples, nil
}

// GetSamplesByRun returns the samples written by a run, oldest first.
func (d *DB) GetSamplesByRun(ctx context.Context, runID uuid.UUID) ([]models.Sample, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+sampleColumns+`
		FROM samples
		WHERE run_id = $1
		ORDER BY created_at, id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	samples, err := scanSamples(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan samples: %w", err)
	}
	return samples, nil
}

// CountSamples returns sample counts grouped by destination, project and category.
func (d *DB) CountSamples(ctx context.Context) ([]models.SampleCount, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT destination, project, category, COUNT(*)
		FROM samples
		GROUP BY destination, project, category
		ORDER BY destination, project, category
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count samples: %w", err)
	}
	defer rows.Close()

	var counts []models.SampleCount
	for rows.Next() {
		var c models.SampleCount
		if err := rows.Scan(&c.Destination, &c.Project, &c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan sample count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// DeleteDestination removes every sample written to a destination.
func (d *DB) DeleteDestination(ctx context.Context, destination string) (int64, error) {
	tag, err := d.Pool.Exec(ctx, `DELETE FROM samples WHERE destination = $1`, destination)
	if err != nil {
		return 0, fmt.Errorf("failed to delete samples: %w", err)
	}
	return tag.RowsAffected(), nil
}
