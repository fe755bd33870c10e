package validation

import (
	"fmt"
	"regexp"
	"strings"

	"decisionsampler/internal/config"
)

// KeyPrefixPattern defines the valid Jira project key format.
var KeyPrefixPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// NamePattern defines valid namespace and collection names.
var NamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ModelIDPattern matches "<model>-<version>" identifiers.
var ModelIDPattern = regexp.MustCompile(`^[A-Za-z0-9]+-[A-Za-z0-9]+$`)

// ValidateKeyPrefix checks if a project key prefix is well formed.
func ValidateKeyPrefix(prefix string) bool {
	if prefix == "" || len(prefix) > 50 {
		return false
	}
	return KeyPrefixPattern.MatchString(prefix)
}

// ValidateName checks namespace, collection and destination names.
func ValidateName(name string) bool {
	if name == "" || len(name) > 100 {
		return false
	}
	return NamePattern.MatchString(name)
}

// ValidateModelID checks if a model id has the "<model>-<version>" form.
func ValidateModelID(modelID string) (bool, string) {
	if modelID == "" {
		return false, "model id is required"
	}
	if !ModelIDPattern.MatchString(modelID) {
		return false, "model id must have the form <model>-<version>"
	}
	return true, ""
}

// ValidateProject checks a single project quota.
func ValidateProject(p config.ProjectConfig) (bool, string) {
	if !ValidateKeyPrefix(p.KeyPrefix) {
		return false, fmt.Sprintf("invalid key prefix %q", p.KeyPrefix)
	}
	if p.ArchitecturalLimit < 0 {
		return false, fmt.Sprintf("%s: architectural limit must not be negative", p.KeyPrefix)
	}
	if p.NonArchitecturalLimit < 0 {
		return false, fmt.Sprintf("%s: non-architectural limit must not be negative", p.KeyPrefix)
	}
	return true, ""
}

// ValidateProjects checks every project and rejects duplicate key prefixes.
func ValidateProjects(projects []config.ProjectConfig) error {
	if len(projects) == 0 {
		return fmt.Errorf("no projects configured")
	}

	seen := make(map[string]bool, len(projects))
	for _, p := range projects {
		if ok, msg := ValidateProject(p); !ok {
			return fmt.Errorf("%s", msg)
		}
		key := strings.ToUpper(p.KeyPrefix)
		if seen[key] {
			return fmt.Errorf("duplicate project %s", p.KeyPrefix)
		}
		seen[key] = true
	}
	return nil
}

// ValidateSampling checks the sampling settings of the runtime configuration.
func ValidateSampling(cfg *config.Config) error {
	if ok, msg := ValidateModelID(cfg.ModelID); !ok {
		return fmt.Errorf("%s", msg)
	}
	if !ValidateName(cfg.Namespace) {
		return fmt.Errorf("invalid namespace %q", cfg.Namespace)
	}
	if !ValidateName(cfg.SourceCollection) {
		return fmt.Errorf("invalid source collection %q", cfg.SourceCollection)
	}

	switch cfg.Strategy {
	case config.StrategyServer:
		if cfg.SampleSize <= 0 {
			return fmt.Errorf("sample size must be positive")
		}
	case config.StrategyShuffle:
		if cfg.FetchLimit <= 0 {
			return fmt.Errorf("fetch limit must be positive")
		}
	default:
		return fmt.Errorf("unknown sampling strategy %q", cfg.Strategy)
	}

	if cfg.LabelLookup != config.LookupBulk && cfg.LabelLookup != config.LookupSingle {
		return fmt.Errorf("unknown label lookup %q", cfg.LabelLookup)
	}
	if cfg.OutputMode != config.OutputCombined && cfg.OutputMode != config.OutputSplit {
		return fmt.Errorf("unknown output mode %q", cfg.OutputMode)
	}
	return nil
}
