package models

// ProjectResponse describes a configured project quota.
type ProjectResponse struct {
	KeyPrefix             string `json:"key_prefix"`
	ArchitecturalLimit    int    `json:"architectural_limit"`
	NonArchitecturalLimit int    `json:"non_architectural_limit"`
	Issues                int    `json:"issues"`
}

// ProjectsResponse lists the configured projects with the shared sampling settings.
type ProjectsResponse struct {
	ModelID          string            `json:"model_id"`
	Namespace        string            `json:"namespace"`
	SourceCollection string            `json:"source_collection"`
	Strategy         string            `json:"strategy"`
	OutputMode       string            `json:"output_mode"`
	Projects         []ProjectResponse `json:"projects"`
}

// LabelResponse contains a label and its classification under the configured model.
// Classification is nil when the label has no prediction block for that model.
type LabelResponse struct {
	Label          IssueLabel `json:"label"`
	ModelID        string     `json:"model_id"`
	Classification *Category  `json:"classification"`
}

// HealthResponse reports service and database health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
