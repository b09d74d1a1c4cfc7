package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const crewFile = `package main

import (
	"context"
	"fmt"
)

// ResearchCrew drives the research pipeline.
//
//crewforge:crew
type ResearchCrew struct {
	verbose bool
}

// Researcher digs up source material.
//
//crewforge:agent
func (c *ResearchCrew) Researcher() string {
	return "researcher"
}

//crewforge:agent
func (c ResearchCrew) Writer() string {
	return "writer"
}

//crewforge:task
func (c *ResearchCrew) ResearchTask(ctx context.Context) error {
	fmt.Println("research")
	return nil
}

//crewforge:crew
func (c *ResearchCrew) Crew() string {
	return "crew"
}

type helper struct{}

func (h helper) Researcher() string { return "not an agent" }
`

func TestMarkedTypesFindsCrew(t *testing.T) {
	f := parseSource(t, crewFile)

	defs := f.MarkedTypes("crew")
	if len(defs) != 1 {
		t.Fatalf("expected 1 marked type, got %d", len(defs))
	}
	if defs[0].Name != "ResearchCrew" {
		t.Errorf("expected ResearchCrew, got %s", defs[0].Name)
	}
	if defs[0].Kind != KindType {
		t.Errorf("expected kind %s, got %s", KindType, defs[0].Kind)
	}
}

func TestMarkedTypesNoMatchesIsEmptyNotError(t *testing.T) {
	f := parseSource(t, crewFile)

	defs := f.MarkedTypes("pipeline")
	if defs == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(defs) != 0 {
		t.Errorf("expected no matches, got %d", len(defs))
	}
}

func TestMarkedTypesSourceOrder(t *testing.T) {
	src := `package main

//crewforge:crew
type Alpha struct{}

type skipped struct{}

//crewforge:crew
type Beta struct{}

//crewforge:crew
type Gamma struct{}
`
	f := parseSource(t, src)

	defs := f.MarkedTypes("crew")
	got := make([]string, len(defs))
	for i, d := range defs {
		got[i] = d.Name
	}
	want := []string{"Alpha", "Beta", "Gamma"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("expected order %v, got %v", want, got)
	}
}

func TestMarkedMethodsScopedAndOrdered(t *testing.T) {
	f := parseSource(t, crewFile)

	agents := f.MarkedMethods("ResearchCrew", "agent")
	if len(agents) != 2 {
		t.Fatalf("expected 2 agent methods, got %d", len(agents))
	}
	if agents[0].Name != "Researcher" || agents[1].Name != "Writer" {
		t.Errorf("expected [Researcher Writer], got [%s %s]", agents[0].Name, agents[1].Name)
	}
	for _, a := range agents {
		if a.Receiver != "ResearchCrew" {
			t.Errorf("expected receiver ResearchCrew, got %s", a.Receiver)
		}
	}

	tasks := f.MarkedMethods("ResearchCrew", "task")
	if len(tasks) != 1 || tasks[0].Name != "ResearchTask" {
		t.Fatalf("expected [ResearchTask], got %v", tasks)
	}

	// The helper type's method has no markers and belongs to another type.
	if got := f.MarkedMethods("helper", "agent"); len(got) != 0 {
		t.Errorf("expected no marked methods on helper, got %d", len(got))
	}
}

func TestDirectiveVariantsDoNotMatch(t *testing.T) {
	src := `package main

//crewforge:agent model=gpt-4
type Parameterized struct{}

//crewforge:agent.v2
type Namespaced struct{}

//crewforge:agent()
type CallForm struct{}

// crewforge:agent
type SpacedComment struct{}

//otherforge:agent
type WrongPrefix struct{}

//crewforge:agent
type Plain struct{}
`
	f := parseSource(t, src)

	defs := f.MarkedTypes("agent")
	if len(defs) != 1 {
		t.Fatalf("expected only the plain directive to match, got %d matches", len(defs))
	}
	if defs[0].Name != "Plain" {
		t.Errorf("expected Plain, got %s", defs[0].Name)
	}
}

func TestDefinitionCarriesAllMarkers(t *testing.T) {
	src := `package main

// Crew runs everything.
//
//crewforge:crew
//crewforge:experimental
type Crew struct{}
`
	f := parseSource(t, src)

	def, err := f.RequireMarkedType("crew")
	if err != nil {
		t.Fatalf("RequireMarkedType: %v", err)
	}
	if len(def.Markers) != 2 {
		t.Fatalf("expected 2 markers, got %v", def.Markers)
	}
	if def.Markers[0] != "crew" || def.Markers[1] != "experimental" {
		t.Errorf("unexpected markers %v", def.Markers)
	}
}

func TestRequireMarkedTypeNotFound(t *testing.T) {
	f := parseSource(t, "package main\n\ntype Plain struct{}\n")

	_, err := f.RequireMarkedType("crew")
	var notFound *MarkerNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected MarkerNotFoundError, got %v", err)
	}
	if notFound.Marker != "crew" {
		t.Errorf("expected marker crew in error, got %s", notFound.Marker)
	}
}

func TestParseErrorOnMalformedSource(t *testing.T) {
	_, err := Parse("broken.go", []byte("package main\n\nfunc {oops\n"))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Path != "broken.go" {
		t.Errorf("expected path in error, got %s", parseErr.Path)
	}
}

func TestLoadMissingFileIsParseError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.go"))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError for missing file, got %v", err)
	}
}

func TestSelectorRefRendersBaseDotAttr(t *testing.T) {
	got, err := RenderExpr(SelectorRef("goto", "browser"))
	if err != nil {
		t.Fatalf("RenderExpr: %v", err)
	}
	if got != "browser.goto" {
		t.Errorf("expected %q, got %q", "browser.goto", got)
	}
}

func TestSpliceInsertsAndReparses(t *testing.T) {
	f := parseSource(t, crewFile)

	def, err := f.RequireMarkedType("crew")
	if err != nil {
		t.Fatalf("RequireMarkedType: %v", err)
	}
	method := "\n\n//crewforge:agent\nfunc (c *ResearchCrew) Editor() string {\n\treturn \"editor\"\n}"
	if err := f.Insert(def.End, method); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	agents := f.MarkedMethods("ResearchCrew", "agent")
	if len(agents) != 3 {
		t.Fatalf("expected 3 agents after insert, got %d", len(agents))
	}
	if agents[0].Name != "Editor" {
		t.Errorf("expected inserted Editor first, got %s", agents[0].Name)
	}
}

func TestSpliceRejectsInvalidResult(t *testing.T) {
	f := parseSource(t, crewFile)
	before := string(f.Bytes())

	err := f.Insert(len(f.Bytes()), "\nfunc (c *ResearchCrew) Broken( {")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if string(f.Bytes()) != before {
		t.Error("source changed despite failed splice")
	}
}

func TestInsertAfterTag(t *testing.T) {
	src := `package main

// Agent definitions

// Task definitions
`
	f := parseSource(t, src)

	if err := f.InsertAfterTag("// Agent definitions", "// inserted\n"); err != nil {
		t.Fatalf("InsertAfterTag: %v", err)
	}
	text := string(f.Bytes())
	agentIdx := strings.Index(text, "// Agent definitions")
	insertedIdx := strings.Index(text, "// inserted")
	taskIdx := strings.Index(text, "// Task definitions")
	if !(agentIdx < insertedIdx && insertedIdx < taskIdx) {
		t.Errorf("insertion landed in the wrong place:\n%s", text)
	}

	err := f.InsertAfterTag("// No such anchor", "// nope\n")
	if !errors.Is(err, ErrTagNotFound) {
		t.Errorf("expected ErrTagNotFound, got %v", err)
	}
}

func TestImportHandling(t *testing.T) {
	src := `package main

import (
	"context"
	"fmt"
)

func use(ctx context.Context) { fmt.Println(ctx) }
`
	f := parseSource(t, src)

	if f.HasImport("github.com/crewforge-labs/crewforge/tools/exa") {
		t.Fatal("import reported before being added")
	}
	if err := f.AddImport("github.com/crewforge-labs/crewforge/tools/exa"); err != nil {
		t.Fatalf("AddImport: %v", err)
	}
	if !f.HasImport("github.com/crewforge-labs/crewforge/tools/exa") {
		t.Fatal("import not found after AddImport")
	}

	// Adding again is a no-op.
	if err := f.AddImport("github.com/crewforge-labs/crewforge/tools/exa"); err != nil {
		t.Fatalf("repeat AddImport: %v", err)
	}
	if strings.Count(string(f.Bytes()), "tools/exa") != 1 {
		t.Error("duplicate import added")
	}

	if err := f.RemoveImport("github.com/crewforge-labs/crewforge/tools/exa"); err != nil {
		t.Fatalf("RemoveImport: %v", err)
	}
	if f.HasImport("github.com/crewforge-labs/crewforge/tools/exa") {
		t.Error("import still present after RemoveImport")
	}
}

func TestAddImportWithoutExistingImports(t *testing.T) {
	f := parseSource(t, "package main\n\nfunc main() {}\n")

	if err := f.AddImport("os"); err != nil {
		t.Fatalf("AddImport: %v", err)
	}
	if !f.HasImport("os") {
		t.Error("import not added to file without import block")
	}
}

func TestCompositeLitInsideMethod(t *testing.T) {
	src := `package main

type Tool interface{ Name() string }

type Crew struct{}

//crewforge:agent
func (c *Crew) Researcher() []Tool {
	return []Tool{
		first(),
		second(),
	}
}
`
	f := parseSource(t, src)

	agents := f.MarkedMethods("Crew", "agent")
	if len(agents) != 1 {
		t.Fatalf("expected 1 agent, got %d", len(agents))
	}

	start, end, err := f.CompositeLitInside(agents[0], "[]Tool")
	if err != nil {
		t.Fatalf("CompositeLitInside: %v", err)
	}
	if start <= 0 || end <= start {
		t.Fatalf("bad literal range [%d:%d)", start, end)
	}

	elems, err := f.CompositeLitElems(agents[0], "[]Tool")
	if err != nil {
		t.Fatalf("CompositeLitElems: %v", err)
	}
	if len(elems) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elems))
	}
	if elems[0].Text != "first()" || elems[1].Text != "second()" {
		t.Errorf("unexpected elements %v", elems)
	}

	if _, _, err := f.CompositeLitInside(agents[0], "[]Missing"); err == nil {
		t.Error("expected error for absent literal type")
	}
}

func TestSaveFormatsAndWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crew.go")
	unformatted := "package main\n\nfunc   main(){\nprintln( \"hi\" )\n}\n"
	if err := os.WriteFile(path, []byte(unformatted), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := f.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(written), "func   main") {
		t.Error("Save did not format the source")
	}
	if _, err := Load(path); err != nil {
		t.Errorf("saved file does not parse: %v", err)
	}
}

// ─── Test Helpers ──────────────────────────────────────────────────

func parseSource(t *testing.T, src string) *File {
	t.Helper()
	f, err := Parse("test.go", []byte(src))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return f
}
