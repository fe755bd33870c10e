package sampling

import "decisionsampler/internal/models"

// LabelID builds the label key for an issue, e.g. "Apache-13012345".
func LabelID(namespace, issueID string) string {
	return namespace + "-" + issueID
}

// LabelIDs returns the label keys for all issues, in order.
func LabelIDs(namespace string, issues []models.Issue) []string {
	ids := make([]string, 0, len(issues))
	for _, issue := range issues {
		ids = append(ids, LabelID(namespace, issue.ID))
	}
	return ids
}
