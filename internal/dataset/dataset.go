// Package dataset reads issue and label documents from JSON exports and
// writes sampled issues back out as JSON.
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"decisionsampler/internal/models"
)

// ParseIssueFile reads a JSON array of issue documents from path.
func ParseIssueFile(path, collection string) ([]models.Issue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open issue file: %w", err)
	}
	defer f.Close()
	return ParseIssues(f, collection)
}

// ParseIssues reads a JSON array of issue documents. Each document must carry
// an "id" (string or number) and a "key"; the whole document becomes the payload.
func ParseIssues(r io.Reader, collection string) ([]models.Issue, error) {
	docs, err := decodeArray(r)
	if err != nil {
		return nil, fmt.Errorf("decode issues: %w", err)
	}

	issues := make([]models.Issue, 0, len(docs))
	for i, doc := range docs {
		var head struct {
			ID  json.RawMessage `json:"id"`
			Key string          `json:"key"`
		}
		if err := json.Unmarshal(doc, &head); err != nil {
			return nil, fmt.Errorf("issue %d: %w", i, err)
		}
		id, err := scalarString(head.ID)
		if err != nil {
			return nil, fmt.Errorf("issue %d: id: %w", i, err)
		}
		if head.Key == "" {
			return nil, fmt.Errorf("issue %d: missing key", i)
		}
		issues = append(issues, models.Issue{
			Collection: collection,
			ID:         id,
			Key:        head.Key,
			Payload:    doc,
		})
	}
	return issues, nil
}

// ParseLabelFile reads a JSON array of label documents from path.
func ParseLabelFile(path string) ([]models.IssueLabel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open label file: %w", err)
	}
	defer f.Close()
	return ParseLabels(f)
}

// ParseLabels reads a JSON array of label documents keyed by "_id" or "id".
func ParseLabels(r io.Reader) ([]models.IssueLabel, error) {
	docs, err := decodeArray(r)
	if err != nil {
		return nil, fmt.Errorf("decode labels: %w", err)
	}

	labels := make([]models.IssueLabel, 0, len(docs))
	for i, doc := range docs {
		var raw struct {
			MongoID     string                             `json:"_id"`
			ID          string                             `json:"id"`
			Predictions map[string]*models.ModelPrediction `json:"predictions"`
		}
		if err := json.Unmarshal(doc, &raw); err != nil {
			return nil, fmt.Errorf("label %d: %w", i, err)
		}
		id := raw.MongoID
		if id == "" {
			id = raw.ID
		}
		if id == "" {
			return nil, fmt.Errorf("label %d: missing _id", i)
		}
		labels = append(labels, models.IssueLabel{ID: id, Predictions: raw.Predictions})
	}
	return labels, nil
}

// WriteSamples writes the payloads of samples as an indented JSON array.
func WriteSamples(w io.Writer, samples []models.Sample) error {
	payloads := make([]json.RawMessage, 0, len(samples))
	for _, s := range samples {
		payloads = append(payloads, s.Payload)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(payloads)
}

// WriteSampleFile writes samples to path, replacing any existing file.
func WriteSampleFile(path string, samples []models.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sample file: %w", err)
	}
	if err := WriteSamples(f, samples); err != nil {
		f.Close()
		return fmt.Errorf("write sample file: %w", err)
	}
	return f.Close()
}

func decodeArray(r io.Reader) ([]json.RawMessage, error) {
	var docs []json.RawMessage
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// scalarString accepts a JSON string or number and returns its text.
func scalarString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", errors.New("missing")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		if strings.TrimSpace(s) == "" {
			return "", errors.New("empty")
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("must be a string or number: %w", err)
	}
	return n.String(), nil
}
