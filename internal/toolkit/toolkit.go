package toolkit

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
)

//go:embed manifests/*.json
var manifestFS embed.FS

// EnvVar is one environment variable a tool needs, with the placeholder
// default written to .env files on install. Order in the manifest is
// preserved.
type EnvVar struct {
	Name    string `json:"name"`
	Default string `json:"default"`
}

// Tool describes one installable tool adapter.
type Tool struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	URL         string   `json:"url,omitempty"`
	ImportPath  string   `json:"import_path"`
	Alias       string   `json:"package_alias"`
	Constructor string   `json:"constructor"`
	Env         []EnvVar `json:"env,omitempty"`
	CTA         string   `json:"cta,omitempty"`
}

var (
	loadOnce sync.Once
	loadErr  error
	registry map[string]Tool
)

func load() error {
	loadOnce.Do(func() {
		registry = make(map[string]Tool)
		entries, err := manifestFS.ReadDir("manifests")
		if err != nil {
			loadErr = fmt.Errorf("reading tool manifests: %w", err)
			return
		}
		for _, e := range entries {
			data, err := manifestFS.ReadFile("manifests/" + e.Name())
			if err != nil {
				loadErr = fmt.Errorf("reading manifest %s: %w", e.Name(), err)
				return
			}
			result, err := Validate(data)
			if err != nil {
				loadErr = fmt.Errorf("validating manifest %s: %w", e.Name(), err)
				return
			}
			if !result.Valid {
				loadErr = fmt.Errorf("invalid tool manifest %s: %s", e.Name(), result.Summary())
				return
			}
			var t Tool
			if err := json.Unmarshal(data, &t); err != nil {
				loadErr = fmt.Errorf("parsing manifest %s: %w", e.Name(), err)
				return
			}
			registry[t.Name] = t
		}
	})
	return loadErr
}

// All returns every registered tool, sorted by name.
func All() ([]Tool, error) {
	if err := load(); err != nil {
		return nil, err
	}
	tools := make([]Tool, 0, len(registry))
	for _, t := range registry {
		tools = append(tools, t)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })
	return tools, nil
}

// Get looks up a tool by name. A miss returns an UnknownToolError carrying
// close-match suggestions.
func Get(name string) (Tool, error) {
	if err := load(); err != nil {
		return Tool{}, err
	}
	if t, ok := registry[name]; ok {
		return t, nil
	}
	return Tool{}, &UnknownToolError{Name: name, Suggestions: suggest(name)}
}

// Categories returns the distinct tool categories, sorted.
func Categories() ([]string, error) {
	if err := load(); err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var cats []string
	for _, t := range registry {
		if !seen[t.Category] {
			seen[t.Category] = true
			cats = append(cats, t.Category)
		}
	}
	sort.Strings(cats)
	return cats, nil
}

// suggest returns registry names that fuzzily match the query, best first.
func suggest(query string) []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)

	matches := fuzzy.Find(query, names)
	var out []string
	for i, m := range matches {
		if i == 3 {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

// UnknownToolError is returned by Get for a name not in the registry.
type UnknownToolError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownToolError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("no known tool %q", e.Name)
	}
	return fmt.Sprintf("no known tool %q (did you mean %s?)", e.Name, strings.Join(e.Suggestions, ", "))
}
