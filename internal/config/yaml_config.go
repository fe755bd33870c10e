package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// The project list is easier to manage in YAML than env vars.
type YAMLConfig struct {
	ModelID          string          `yaml:"model_id,omitempty"`
	Namespace        string          `yaml:"namespace,omitempty"`
	SourceCollection string          `yaml:"source_collection,omitempty"`
	Projects         []ProjectConfig `yaml:"projects"`
}

// ProjectConfig defines one project's quota.
type ProjectConfig struct {
	KeyPrefix             string `yaml:"key_prefix" json:"key_prefix"`
	ArchitecturalLimit    int    `yaml:"architectural_limit" json:"architectural_limit"`
	NonArchitecturalLimit int    `yaml:"non_architectural_limit" json:"non_architectural_limit"`
}

// DefaultProjects is the project list used when no config file is present.
var DefaultProjects = []ProjectConfig{
	{KeyPrefix: "CASSANDRA", ArchitecturalLimit: 55, NonArchitecturalLimit: 76},
	{KeyPrefix: "HADOOP", ArchitecturalLimit: 44, NonArchitecturalLimit: 40},
	{KeyPrefix: "HDFS", ArchitecturalLimit: 34, NonArchitecturalLimit: 38},
	{KeyPrefix: "MAPREDUCE", ArchitecturalLimit: 10, NonArchitecturalLimit: 16},
	{KeyPrefix: "TAJO", ArchitecturalLimit: 14, NonArchitecturalLimit: 19},
	{KeyPrefix: "YARN", ArchitecturalLimit: 27, NonArchitecturalLimit: 31},
}

// LoadYAMLConfig loads the YAML configuration file at path.
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	return ParseYAMLConfig(data)
}

// ParseYAMLConfig parses YAML configuration bytes.
func ParseYAMLConfig(data []byte) (*YAMLConfig, error) {
	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	for i := range cfg.Projects {
		cfg.Projects[i].KeyPrefix = strings.TrimSpace(cfg.Projects[i].KeyPrefix)
	}

	return &cfg, nil
}

// GetProjects returns the configured projects, falling back to DefaultProjects.
func (c *YAMLConfig) GetProjects() []ProjectConfig {
	if c == nil || len(c.Projects) == 0 {
		out := make([]ProjectConfig, len(DefaultProjects))
		copy(out, DefaultProjects)
		return out
	}
	return c.Projects
}

// GetProjectByPrefix finds a project by its key prefix.
func (c *YAMLConfig) GetProjectByPrefix(prefix string) *ProjectConfig {
	projects := c.GetProjects()
	for i := range projects {
		if strings.EqualFold(projects[i].KeyPrefix, prefix) {
			return &projects[i]
		}
	}
	return nil
}
