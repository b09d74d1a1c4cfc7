package blueprint

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"sort"
	"strings"
	"time"
)

// SupportedVersion is the template_version this CLI understands.
const SupportedVersion = 1

//go:embed blueprints/*.json
var blueprintFS embed.FS

// Blueprint is the declarative description of a project to generate.
type Blueprint struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	TemplateVersion int      `json:"template_version"`
	Framework       string   `json:"framework"`
	Method          string   `json:"method"`
	Agents          []Agent  `json:"agents"`
	Tasks           []Task   `json:"tasks"`
	Tools           []Tool   `json:"tools"`
	Inputs          []string `json:"inputs"`
}

// Agent declares one agent of the generated crew.
type Agent struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Goal      string `json:"goal"`
	Backstory string `json:"backstory"`
	Model     string `json:"model"`
}

// Task declares one task and the agent responsible for it.
type Task struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	ExpectedOutput string `json:"expected_output"`
	Agent          string `json:"agent"`
}

// Tool attaches a toolkit entry to one or more agents. An empty Agents list
// means every agent.
type Tool struct {
	Name   string   `json:"name"`
	Agents []string `json:"agents"`
}

var httpClient = &http.Client{Timeout: 30 * time.Second}

// FromName loads a blueprint from the embedded library.
func FromName(name string) (*Blueprint, error) {
	data, err := blueprintFS.ReadFile(path.Join("blueprints", name+".json"))
	if err != nil {
		return nil, fmt.Errorf("no built-in blueprint %q (run `crewforge templates list`)", name)
	}
	return FromJSON(data)
}

// FromFile loads a blueprint from a local JSON file.
func FromFile(filePath string) (*Blueprint, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading blueprint %s: %w", filePath, err)
	}
	bp, err := FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("blueprint %s: %w", filePath, err)
	}
	return bp, nil
}

// FromURL fetches a blueprint over https. Plain http is rejected.
func FromURL(url string) (*Blueprint, error) {
	if !strings.HasPrefix(url, "https://") {
		return nil, fmt.Errorf("blueprint URLs must use https, got %q", url)
	}
	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching blueprint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching blueprint from %s: status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading blueprint response: %w", err)
	}
	bp, err := FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("blueprint from %s: %w", url, err)
	}
	return bp, nil
}

// FromJSON validates raw JSON against the blueprint schema and unmarshals it.
func FromJSON(data []byte) (*Blueprint, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("invalid blueprint: %s", result.Summary())
	}

	var bp Blueprint
	if err := json.Unmarshal(data, &bp); err != nil {
		return nil, fmt.Errorf("parsing blueprint JSON: %w", err)
	}
	if bp.TemplateVersion > SupportedVersion {
		return nil, fmt.Errorf("blueprint requires template_version %d, this CLI supports up to %d (run `crewforge update`)",
			bp.TemplateVersion, SupportedVersion)
	}
	if bp.Method == "" {
		bp.Method = "sequential"
	}
	return &bp, nil
}

// ToJSON renders the blueprint as indented JSON, the format `templates
// export` writes.
func (b *Blueprint) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshaling blueprint: %w", err)
	}
	return append(data, '\n'), nil
}

// AgentNames returns the declared agent names in blueprint order.
func (b *Blueprint) AgentNames() []string {
	names := make([]string, len(b.Agents))
	for i, a := range b.Agents {
		names[i] = a.Name
	}
	return names
}

// Names lists the embedded blueprint library, sorted.
func Names() []string {
	entries, err := blueprintFS.ReadDir("blueprints")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

// All loads every embedded blueprint, sorted by name.
func All() ([]*Blueprint, error) {
	var all []*Blueprint
	for _, name := range Names() {
		bp, err := FromName(name)
		if err != nil {
			return nil, err
		}
		all = append(all, bp)
	}
	return all, nil
}
