package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is the state file that marks a directory as a crewforge
// project.
const ConfigFileName = "crewforge.json"

// Config mirrors crewforge.json. Optional fields are omitted when empty so
// the file only records what was actually set.
type Config struct {
	Framework        string   `json:"framework"`
	Tools            []string `json:"tools"`
	TelemetryOptOut  bool     `json:"telemetry_opt_out,omitempty"`
	DefaultModel     string   `json:"default_model,omitempty"`
	CrewforgeVersion string   `json:"crewforge_version,omitempty"`
	Template         string   `json:"template,omitempty"`
	TemplateVersion  int      `json:"template_version,omitempty"`
}

// LoadConfig reads crewforge.json from dir.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("not a crewforge project (no %s in %s): %w", ConfigFileName, dir, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config back to dir.
func (c *Config) Save(dir string) error {
	if c.Tools == nil {
		c.Tools = []string{}
	}
	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// HasTool reports whether a tool is recorded as installed.
func (c *Config) HasTool(name string) bool {
	for _, t := range c.Tools {
		if t == name {
			return true
		}
	}
	return false
}

// AddTool records a tool as installed.
func (c *Config) AddTool(name string) {
	if !c.HasTool(name) {
		c.Tools = append(c.Tools, name)
	}
}

// RemoveTool removes a tool from the installed list.
func (c *Config) RemoveTool(name string) {
	out := c.Tools[:0]
	for _, t := range c.Tools {
		if t != name {
			out = append(out, t)
		}
	}
	c.Tools = out
}

// Find walks from dir upward to the nearest directory containing
// crewforge.json and returns it.
func Find(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(abs, ConfigFileName)); err == nil {
			return abs, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("no crewforge project found in %s or any parent directory", dir)
		}
		abs = parent
	}
}
