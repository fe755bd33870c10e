package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"decisionsampler/internal/models"
)

const sampleRunColumns = `id, project, model_id, strategy, architectural_limit, non_architectural_limit,
	candidates, architectural, non_architectural, unlabeled, dropped, status, error, started_at, finished_at`

func scanSampleRun(row pgx.Row) (*models.SampleRun, error) {
	var r models.SampleRun
	err := row.Scan(
		&r.ID,
		&r.Project,
		&r.ModelID,
		&r.Strategy,
		&r.ArchitecturalLimit,
		&r.NonArchitecturalLimit,
		&r.Candidates,
		&r.Architectural,
		&r.NonArchitectural,
		&r.Unlabeled,
		&r.Dropped,
		&r.Status,
		&r.Error,
		&r.StartedAt,
		&r.FinishedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateSampleRun records the start of a run and sets its ID, status and start time.
func (d *DB) CreateSampleRun(ctx context.Context, run *models.SampleRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	run.Status = models.RunStatusRunning

	err := d.Pool.QueryRow(ctx, `
		INSERT INTO sample_runs (id, project, model_id, strategy, architectural_limit, non_architectural_limit, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING started_at
	`, run.ID, run.Project, run.ModelID, run.Strategy, run.ArchitecturalLimit, run.NonArchitecturalLimit, run.Status).Scan(&run.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to create sample run: %w", err)
	}
	return nil
}

// CompleteSampleRun stores the final counts of a run and marks it completed.
func (d *DB) CompleteSampleRun(ctx context.Context, run *models.SampleRun) error {
	run.Status = models.RunStatusCompleted

	err := d.Pool.QueryRow(ctx, `
		UPDATE sample_runs
		SET candidates = $2, architectural = $3, non_architectural = $4, unlabeled = $5, dropped = $6,
			status = $7, finished_at = NOW()
		WHERE id = $1
		RETURNING finished_at
	`, run.ID, run.Candidates, run.Architectural, run.NonArchitectural, run.Unlabeled, run.Dropped, run.Status).Scan(&run.FinishedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrRunNotFound
		}
		return fmt.Errorf("failed to complete sample run: %w", err)
	}
	return nil
}

// FailSampleRun marks a run failed with the given error message.
func (d *DB) FailSampleRun(ctx context.Context, id uuid.UUID, errMsg string) error {
	tag, err := d.Pool.Exec(ctx, `
		UPDATE sample_runs
		SET status = 'failed', error = $2, finished_at = NOW()
		WHERE id = $1
	`, id, errMsg)
	if err != nil {
		return fmt.Errorf("failed to mark sample run failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRunNotFound
	}
	return nil
}

// GetSampleRun returns a run by ID.
func (d *DB) GetSampleRun(ctx context.Context, id uuid.UUID) (*models.SampleRun, error) {
	run, err := scanSampleRun(d.Pool.QueryRow(ctx, `SELECT `+sampleRunColumns+` FROM sample_runs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, ErrRunNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get sample run: %w", err)
	}
	return run, nil
}

// ListSampleRuns returns the most recent runs, optionally filtered by project.
func (d *DB) ListSampleRuns(ctx context.Context, project string, limit int) ([]models.SampleRun, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+sampleRunColumns+`
		FROM sample_runs
		WHERE $1 = '' OR project = $1
		ORDER BY started_at DESC
		LIMIT $2
	`, project, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sample runs: %w", err)
	}
	defer rows.Close()

	var runs []models.SampleRun
	for rows.Next() {
		run, err := scanSampleRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sample run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}
