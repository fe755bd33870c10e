package models

import "time"

// Sub-prediction names as stored under a model's prediction block.
const (
	PredictionExistence = "existence"
	PredictionExecutive = "executive"
	PredictionProperty  = "property"
)

// SubPrediction is a single binary prediction produced by a classifier.
type SubPrediction struct {
	Prediction bool    `json:"prediction"`
	Confidence float64 `json:"confidence,omitempty"`
}

// ModelPrediction groups the three decision-type predictions of one model version.
// Any of them may be absent; an absent sub-prediction is treated as false.
type ModelPrediction struct {
	Existence *SubPrediction `json:"existence,omitempty"`
	Executive *SubPrediction `json:"executive,omitempty"`
	Property  *SubPrediction `json:"property,omitempty"`
}

// IsArchitectural reports whether any of the sub-predictions is positive.
func (p ModelPrediction) IsArchitectural() bool {
	return p.Existence.positive() || p.Executive.positive() || p.Property.positive()
}

func (s *SubPrediction) positive() bool {
	return s != nil && s.Prediction
}

// IssueLabel holds the predictions for one issue, keyed by "<Namespace>-<issue id>".
// Predictions is keyed by model identifier ("<model>-<version>"); a block stored
// as null decodes to a nil entry and counts as absent.
type IssueLabel struct {
	ID          string                      `json:"id"`
	Predictions map[string]*ModelPrediction `json:"predictions"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// Classify returns the category of the issue under the given model.
// ok is false when the label carries no prediction block for that model.
func (l IssueLabel) Classify(modelID string) (category Category, ok bool) {
	prediction := l.Predictions[modelID]
	if prediction == nil {
		return "", false
	}
	if prediction.IsArchitectural() {
		return CategoryArchitectural, true
	}
	return CategoryNonArchitectural, true
}
