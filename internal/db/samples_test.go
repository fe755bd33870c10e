package db

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"decisionsampler/internal/models"
)

func createRun(t *testing.T, d *DB, project string) *models.SampleRun {
	t.Helper()
	run := &models.SampleRun{
		Project:               project,
		ModelID:               testModel,
		Strategy:              "server",
		ArchitecturalLimit:    2,
		NonArchitecturalLimit: 3,
	}
	if err := d.CreateSampleRun(context.Background(), run); err != nil {
		t.Fatalf("CreateSampleRun() error = %v", err)
	}
	return run
}

func TestInsertSample(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	run := createRun(t, db, "CASSANDRA")

	sample := &models.Sample{
		RunID:       run.ID,
		Destination: "SampleApache",
		Project:     "CASSANDRA",
		Category:    models.CategoryArchitectural,
		IssueID:     "12345",
		Payload:     json.RawMessage(`{"id":"12345","key":"CASSANDRA-1"}`),
	}
	if err := db.InsertSample(ctx, sample); err != nil {
		t.Fatalf("InsertSample() error = %v", err)
	}
	if sample.ID == uuid.Nil {
		t.Error("InsertSample() did not set ID")
	}
	if sample.CreatedAt.IsZero() {
		t.Error("InsertSample() did not set CreatedAt")
	}

	samples, err := db.GetSamplesByRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetSamplesByRun() error = %v", err)
	}
	if len(samples) != 1 || samples[0].Category != models.CategoryArchitectural {
		t.Errorf("GetSamplesByRun() = %+v, want one architectural sample", samples)
	}
}

func TestCountSamples(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	run := createRun(t, db, "HDFS")

	for i, category := range []models.Category{
		models.CategoryArchitectural,
		models.CategoryNonArchitectural,
		models.CategoryNonArchitectural,
	} {
		err := db.InsertSample(ctx, &models.Sample{
			RunID:       run.ID,
			Destination: "SampleApache",
			Project:     "HDFS",
			Category:    category,
			IssueID:     uuid.NewString(),
			Payload:     json.RawMessage(`{"n":` + string(rune('0'+i)) + `}`),
		})
		if err != nil {
			t.Fatalf("InsertSample() error = %v", err)
		}
	}

	counts, err := db.CountSamples(ctx)
	if err != nil {
		t.Fatalf("CountSamples() error = %v", err)
	}
	got := map[models.Category]int64{}
	for _, c := range counts {
		got[c.Category] = c.Count
	}
	if got[models.CategoryArchitectural] != 1 || got[models.CategoryNonArchitectural] != 2 {
		t.Errorf("CountSamples() = %+v, want 1 architectural and 2 non-architectural", counts)
	}
}

func TestRandomSamples_LimitsSize(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	run := createRun(t, db, "YARN")
	for i := 0; i < 5; i++ {
		err := db.InsertSample(ctx, &models.Sample{
			RunID:       run.ID,
			Destination: "SampleApache",
			Project:     "YARN",
			Category:    models.CategoryNonArchitectural,
			IssueID:     uuid.NewString(),
			Payload:     json.RawMessage(`{}`),
		})
		if err != nil {
			t.Fatalf("InsertSample() error = %v", err)
		}
	}

	samples, err := db.RandomSamples(ctx, "SampleApache", 3)
	if err != nil {
		t.Fatalf("RandomSamples() error = %v", err)
	}
	if len(samples) != 3 {
		t.Errorf("RandomSamples() returned %d samples, want 3", len(samples))
	}

	deleted, err := db.DeleteDestination(ctx, "SampleApache")
	if err != nil {
		t.Fatalf("DeleteDestination() error = %v", err)
	}
	if deleted != 5 {
		t.Errorf("DeleteDestination() deleted %d, want 5", deleted)
	}
}

func TestSampleRunLifecycle(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	run := createRun(t, db, "MAPREDUCE")
	if run.Status != models.RunStatusRunning {
		t.Errorf("CreateSampleRun() status = %q, want %q", run.Status, models.RunStatusRunning)
	}

	run.Candidates = 40
	run.Architectural = 2
	run.NonArchitectural = 3
	run.Unlabeled = 10
	run.Dropped = 4
	if err := db.CompleteSampleRun(ctx, run); err != nil {
		t.Fatalf("CompleteSampleRun() error = %v", err)
	}

	got, err := db.GetSampleRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetSampleRun() error = %v", err)
	}
	if got.Status != models.RunStatusCompleted || got.FinishedAt == nil {
		t.Errorf("GetSampleRun() = %+v, want completed with finish time", got)
	}
	if !got.QuotaMet() {
		t.Errorf("QuotaMet() = false, want true")
	}

	failed := createRun(t, db, "MAPREDUCE")
	if err := db.FailSampleRun(ctx, failed.ID, "connection reset"); err != nil {
		t.Fatalf("FailSampleRun() error = %v", err)
	}

	runs, err := db.ListSampleRuns(ctx, "MAPREDUCE", 10)
	if err != nil {
		t.Fatalf("ListSampleRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListSampleRuns() returned %d runs, want 2", len(runs))
	}

	if _, err := db.GetSampleRun(ctx, uuid.New()); err != ErrRunNotFound {
		t.Errorf("GetSampleRun() error = %v, want ErrRunNotFound", err)
	}
}
