// Package sampling implements quota-bounded partitioning of candidate issues
// into architectural and non-architectural samples.
package sampling

import "decisionsampler/internal/models"

// Quota holds the per-category caps for one project.
type Quota struct {
	Architectural    int
	NonArchitectural int
}

// Satisfied reports whether both caps have been reached by the given counts.
// A scan stops as soon as this holds.
func (q Quota) Satisfied(architectural, nonArchitectural int) bool {
	return architectural >= q.Architectural && nonArchitectural >= q.NonArchitectural
}

// Selection is a candidate that was written into one of the two buckets.
type Selection struct {
	Issue    models.Issue
	Category models.Category
}

// Result is the outcome of a single Partition call.
type Result struct {
	Selected         []Selection
	Architectural    int
	NonArchitectural int

	// Evaluated counts candidates looked at before the scan stopped.
	Evaluated int
	// Unlabeled counts candidates skipped for lack of a label or model block.
	Unlabeled int
	// Dropped counts classified candidates whose bucket was already full.
	Dropped int
}

// Labels resolves label entries by label id.
type Labels interface {
	Lookup(id string) (models.IssueLabel, bool)
}

// LabelMap is an in-memory Labels backed by a bulk lookup.
type LabelMap map[string]models.IssueLabel

// Lookup returns the label stored under id.
func (m LabelMap) Lookup(id string) (models.IssueLabel, bool) {
	label, ok := m[id]
	return label, ok
}

// Partition scans candidates in order and routes each classifiable one into the
// architectural or non-architectural bucket until the bucket's cap is reached.
// Candidates without a label, or whose label has no block for modelID, are skipped.
// An architectural candidate is never moved to the non-architectural bucket.
// Once both caps are reached no further candidate is evaluated.
func Partition(candidates []models.Issue, labels Labels, namespace, modelID string, quota Quota) Result {
	var res Result

	for _, issue := range candidates {
		if quota.Satisfied(res.Architectural, res.NonArchitectural) {
			break
		}
		res.Evaluated++

		label, ok := labels.Lookup(LabelID(namespace, issue.ID))
		if !ok {
			res.Unlabeled++
			continue
		}
		category, ok := label.Classify(modelID)
		if !ok {
			res.Unlabeled++
			continue
		}

		switch {
		case category == models.CategoryArchitectural && res.Architectural < quota.Architectural:
			res.Architectural++
		case category == models.CategoryNonArchitectural && res.NonArchitectural < quota.NonArchitectural:
			res.NonArchitectural++
		default:
			res.Dropped++
			continue
		}
		res.Selected = append(res.Selected, Selection{Issue: issue, Category: category})
	}

	return res
}
