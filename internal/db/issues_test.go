package db

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"decisionsampler/internal/models"
)

func seedIssues(t *testing.T, d *DB, collection, prefix string, n int) {
	t.Helper()
	var issues []models.Issue
	for i := 1; i <= n; i++ {
		key := fmt.Sprintf("%s-%d", prefix, i)
		id := fmt.Sprintf("%s%d", prefix, 1000+i)
		issues = append(issues, models.Issue{
			Collection: collection,
			ID:         id,
			Key:        key,
			Payload:    json.RawMessage(fmt.Sprintf(`{"id":%q,"key":%q,"fields":{"summary":"issue %d"}}`, id, key, i)),
		})
	}
	if err := d.UpsertIssues(context.Background(), issues); err != nil {
		t.Fatalf("UpsertIssues() error = %v", err)
	}
}

func TestSampleIssues_FiltersByPrefix(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	seedIssues(t, db, "Apache", "HDFS", 10)
	seedIssues(t, db, "Apache", "HADOOP", 5)
	seedIssues(t, db, "Other", "HDFS", 3)

	issues, err := db.SampleIssues(ctx, "Apache", "HDFS", 2000)
	if err != nil {
		t.Fatalf("SampleIssues() error = %v", err)
	}
	if len(issues) != 10 {
		t.Fatalf("SampleIssues() returned %d issues, want 10", len(issues))
	}
	for _, issue := range issues {
		if issue.Collection != "Apache" {
			t.Errorf("SampleIssues() returned issue from collection %q", issue.Collection)
		}
	}
}

func TestSampleIssues_RespectsSize(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	seedIssues(t, db, "Apache", "YARN", 20)

	issues, err := db.SampleIssues(context.Background(), "Apache", "YARN", 7)
	if err != nil {
		t.Fatalf("SampleIssues() error = %v", err)
	}
	if len(issues) != 7 {
		t.Errorf("SampleIssues() returned %d issues, want 7", len(issues))
	}
}

func TestFetchIssues_PrefixIsNotSubstring(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	// "HADOOP" must not match "HADOOPX-1".
	seedIssues(t, db, "Apache", "HADOOP", 3)
	seedIssues(t, db, "Apache", "HADOOPX", 3)

	issues, err := db.FetchIssues(context.Background(), "Apache", "HADOOP", 200)
	if err != nil {
		t.Fatalf("FetchIssues() error = %v", err)
	}
	if len(issues) != 3 {
		t.Errorf("FetchIssues() returned %d issues, want 3", len(issues))
	}
}

func TestUpsertIssues_PreservesPayload(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	seedIssues(t, db, "Apache", "TAJO", 1)

	issue, err := db.GetIssue(ctx, "Apache", "TAJO1001")
	if err != nil {
		t.Fatalf("GetIssue() error = %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(issue.Payload, &doc); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if doc["key"] != "TAJO-1" {
		t.Errorf("payload key = %v, want TAJO-1", doc["key"])
	}
}

func TestGetIssue_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := db.GetIssue(context.Background(), "Apache", "missing")
	if err != ErrIssueNotFound {
		t.Errorf("GetIssue() error = %v, want ErrIssueNotFound", err)
	}
}

func TestCountIssues(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	seedIssues(t, db, "Apache", "HDFS", 4)
	seedIssues(t, db, "Apache", "HADOOP", 2)
	seedIssues(t, db, "Other", "HDFS", 3)

	tests := []struct {
		collection string
		prefix     string
		want       int
	}{
		{"Apache", "HDFS", 4},
		{"Apache", "HADOOP", 2},
		{"Apache", "HAD", 0},
		{"Other", "HDFS", 3},
		{"Missing", "HDFS", 0},
	}

	for _, tt := range tests {
		t.Run(tt.collection+"/"+tt.prefix, func(t *testing.T) {
			got, err := db.CountIssues(context.Background(), tt.collection, tt.prefix)
			if err != nil {
				t.Fatalf("CountIssues() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CountIssues(%q, %q) = %d, want %d", tt.collection, tt.prefix, got, tt.want)
			}
		})
	}
}
