package scaffold

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crewforge-labs/crewforge/internal/blueprint"
	"github.com/crewforge-labs/crewforge/internal/source"
)

func testBlueprint() *blueprint.Blueprint {
	return &blueprint.Blueprint{
		Name:        "trip_planner",
		Description: "Plans trips",
		Framework:   "langchaingo",
		Method:      "sequential",
		Agents: []blueprint.Agent{
			{Name: "planner", Role: "Planner", Goal: "Plan the trip", Backstory: "Organized", Model: "openai/gpt-4o"},
			{Name: "booker", Role: "Booker", Goal: "Book everything", Backstory: "Thrifty", Model: "openai/gpt-4o-mini"},
		},
		Tasks: []blueprint.Task{
			{Name: "plan_route", Description: "Plan a route for {{destination}}", ExpectedOutput: "An itinerary", Agent: "planner"},
			{Name: "book_hotels", Description: "Book hotels", ExpectedOutput: "Confirmations", Agent: "booker"},
		},
		Tools: []blueprint.Tool{
			{Name: "exa", Agents: []string{"planner"}},
		},
		Inputs: []string{"destination"},
	}
}

func TestNewDataResolvesTools(t *testing.T) {
	d, err := NewData(testBlueprint(), "1.0.0")
	if err != nil {
		t.Fatalf("NewData: %v", err)
	}

	if d.TypeName != "TripPlanner" {
		t.Errorf("TypeName = %q, want TripPlanner", d.TypeName)
	}
	if d.Module != "tripplanner" {
		t.Errorf("Module = %q, want tripplanner", d.Module)
	}
	if len(d.Tools) != 1 || d.Tools[0].Alias != "exatool" {
		t.Fatalf("Tools = %+v, want a single exatool entry", d.Tools)
	}
	if len(d.Agents[0].Tools) != 1 {
		t.Errorf("planner should carry the exa tool, got %+v", d.Agents[0].Tools)
	}
	if len(d.Agents[1].Tools) != 0 {
		t.Errorf("booker should carry no tools, got %+v", d.Agents[1].Tools)
	}
	if d.Tasks[0].AgentMethod != "Planner" {
		t.Errorf("AgentMethod = %q, want Planner", d.Tasks[0].AgentMethod)
	}
}

func TestNewDataDedupesImportsByAlias(t *testing.T) {
	bp := testBlueprint()
	bp.Tools = []blueprint.Tool{
		{Name: "file_read"},
		{Name: "directory_search"},
	}

	d, err := NewData(bp, "1.0.0")
	if err != nil {
		t.Fatalf("NewData: %v", err)
	}
	if len(d.Tools) != 2 {
		t.Fatalf("Tools = %+v, want two entries", d.Tools)
	}
	if len(d.Imports) != 1 || d.Imports[0].Alias != "fileio" {
		t.Errorf("Imports = %+v, want a single fileio entry", d.Imports)
	}
}

func TestNewDataUnknownTool(t *testing.T) {
	bp := testBlueprint()
	bp.Tools = append(bp.Tools, blueprint.Tool{Name: "no_such_tool"})

	_, err := NewData(bp, "1.0.0")
	var merr *MaterializationError
	if !errors.As(err, &merr) {
		t.Fatalf("expected MaterializationError, got %v", err)
	}
	if merr.Key != "no_such_tool" {
		t.Errorf("Key = %q, want no_such_tool", merr.Key)
	}
}

func TestGenerateLangchaingo(t *testing.T) {
	d, err := NewData(testBlueprint(), "1.0.0")
	if err != nil {
		t.Fatalf("NewData: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "trip_planner")
	result, err := Generate("langchaingo", d, dir)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Files) == 0 {
		t.Error("Result.Files is empty")
	}

	for _, name := range []string{"crew.go", "core.go", "main.go", "go.mod", "README.md", ".env.example", ".gitignore", "config/agents.yaml", "config/tasks.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name))); err != nil {
			t.Errorf("missing generated file %s: %v", name, err)
		}
	}

	crew := readGenerated(t, dir, "crew.go")
	assertContains(t, crew, "type TripPlannerCrew struct")
	assertContains(t, crew, "//crewforge:crew")
	assertContains(t, crew, "func (c *TripPlannerCrew) Planner() *Agent")
	assertContains(t, crew, "exatool.NewFromEnv()")

	// Method source order follows blueprint order.
	if strings.Index(crew, "Planner()") > strings.Index(crew, "Booker()") {
		t.Error("agent methods out of blueprint order")
	}
	if strings.Index(crew, "PlanRoute()") > strings.Index(crew, "BookHotels()") {
		t.Error("task methods out of blueprint order")
	}

	env := readGenerated(t, dir, ".env.example")
	assertContains(t, env, "EXA_API_KEY")

	agents := readGenerated(t, dir, filepath.Join("config", "agents.yaml"))
	assertContains(t, agents, "planner:")
	assertContains(t, agents, "booker:")
}

func TestGeneratedEntrypointInspects(t *testing.T) {
	d, err := NewData(testBlueprint(), "1.0.0")
	if err != nil {
		t.Fatalf("NewData: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "trip_planner")
	if _, err := Generate("langchaingo", d, dir); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	file, err := source.Load(filepath.Join(dir, "crew.go"))
	if err != nil {
		t.Fatalf("parsing generated entrypoint: %v", err)
	}
	crew, err := file.RequireMarkedType("crew")
	if err != nil {
		t.Fatalf("crew marker not found: %v", err)
	}
	if crew.Name != "TripPlannerCrew" {
		t.Errorf("crew type = %q", crew.Name)
	}

	agents := file.MarkedMethods(crew.Name, "agent")
	if len(agents) != 2 || agents[0].Name != "Planner" || agents[1].Name != "Booker" {
		t.Errorf("agent methods = %+v", agents)
	}
	tasks := file.MarkedMethods(crew.Name, "task")
	if len(tasks) != 2 || tasks[0].Name != "PlanRoute" || tasks[1].Name != "BookHotels" {
		t.Errorf("task methods = %+v", tasks)
	}
}

func TestGenerateSwarmgo(t *testing.T) {
	bp := testBlueprint()
	bp.Framework = "swarmgo"
	d, err := NewData(bp, "1.0.0")
	if err != nil {
		t.Fatalf("NewData: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "trip_planner")
	if _, err := Generate("swarmgo", d, dir); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	team := readGenerated(t, dir, "team.go")
	assertContains(t, team, "type TripPlannerTeam struct")
	assertContains(t, team, "func (t *TripPlannerTeam) Planner() *Agent")
	assertContains(t, team, "[]Tool{")
}

func TestGenerateUnknownFamily(t *testing.T) {
	d, err := NewData(testBlueprint(), "1.0.0")
	if err != nil {
		t.Fatalf("NewData: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "out")
	if _, err := Generate("crewpy", d, dir); err == nil {
		t.Fatal("expected an error for an unknown scaffold family")
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("failed generation left the target directory behind")
	}
}

func TestGenerateNonEmptyTarget(t *testing.T) {
	d, err := NewData(testBlueprint(), "1.0.0")
	if err != nil {
		t.Fatalf("NewData: %v", err)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "existing.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Generate("langchaingo", d, dir); err == nil {
		t.Error("expected an error for a non-empty target directory")
	}
	if _, err := os.Stat(filepath.Join(dir, "existing.txt")); err != nil {
		t.Errorf("existing file disturbed: %v", err)
	}
}

func TestGenerateEmptyTargetAccepted(t *testing.T) {
	d, err := NewData(testBlueprint(), "1.0.0")
	if err != nil {
		t.Fatalf("NewData: %v", err)
	}

	dir := t.TempDir() // exists, but empty
	if _, err := Generate("langchaingo", d, dir); err != nil {
		t.Fatalf("Generate into empty directory: %v", err)
	}
	assertFileExists(t, filepath.Join(dir, "crew.go"))
}

func TestFamilies(t *testing.T) {
	got := Families()
	want := []string{"langchaingo", "swarmgo"}
	if len(got) != len(want) {
		t.Fatalf("Families() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Families()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func readGenerated(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading generated file %s: %v", name, err)
	}
	return string(data)
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("expected to find %q in:\n%s", substr, content)
	}
}
