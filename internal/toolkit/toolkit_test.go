package toolkit

import (
	"errors"
	"testing"
)

func TestAllSortedByName(t *testing.T) {
	tools, err := All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(tools) < 5 {
		t.Fatalf("expected a populated registry, got %d tools", len(tools))
	}
	for i := 1; i < len(tools); i++ {
		if tools[i-1].Name >= tools[i].Name {
			t.Errorf("registry not sorted: %s before %s", tools[i-1].Name, tools[i].Name)
		}
	}
	for _, tool := range tools {
		if tool.ImportPath == "" || tool.Alias == "" || tool.Constructor == "" {
			t.Errorf("tool %s missing adapter wiring: %+v", tool.Name, tool)
		}
	}
}

func TestGetKnown(t *testing.T) {
	tool, err := Get("exa")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if tool.Alias != "exatool" || tool.Constructor != "NewFromEnv" {
		t.Errorf("unexpected exa spec: %+v", tool)
	}
	if len(tool.Env) == 0 || tool.Env[0].Name != "EXA_API_KEY" {
		t.Errorf("exa should declare EXA_API_KEY, got %+v", tool.Env)
	}
}

func TestGetUnknownSuggests(t *testing.T) {
	_, err := Get("firecrwl")
	var uerr *UnknownToolError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UnknownToolError, got %v", err)
	}
	found := false
	for _, s := range uerr.Suggestions {
		if s == "firecrawl" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected firecrawl among suggestions, got %v", uerr.Suggestions)
	}
}

func TestGetUnknownNoMatch(t *testing.T) {
	_, err := Get("zzzzzz")
	var uerr *UnknownToolError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UnknownToolError, got %v", err)
	}
}

func TestCategories(t *testing.T) {
	cats, err := Categories()
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	seen := make(map[string]bool)
	for _, c := range cats {
		if seen[c] {
			t.Errorf("duplicate category %s", c)
		}
		seen[c] = true
	}
	for i := 1; i < len(cats); i++ {
		if cats[i-1] >= cats[i] {
			t.Errorf("categories not sorted: %v", cats)
		}
	}
	for _, want := range []string{"search", "web", "files"} {
		if !seen[want] {
			t.Errorf("expected category %s, got %v", want, cats)
		}
	}
}
