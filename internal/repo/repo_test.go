package repo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	git "github.com/go-git/go-git/v5"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func headMessage(t *testing.T, dir string) string {
	t.Helper()
	r, err := git.PlainOpen(dir)
	if err != nil {
		t.Fatalf("opening repository: %v", err)
	}
	ref, err := r.Head()
	if err != nil {
		t.Fatalf("reading HEAD: %v", err)
	}
	commit, err := r.CommitObject(ref.Hash())
	if err != nil {
		t.Fatalf("reading commit: %v", err)
	}
	return commit.Message
}

func TestInitCommitsEverything(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "crew.go", "package main\n")

	if err := Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}

	msg := headMessage(t, dir)
	if !strings.HasPrefix(msg, "Initial commit") {
		t.Errorf("HEAD message = %q", msg)
	}
	if !strings.Contains(msg, automatedNote) {
		t.Errorf("commit not marked as automated: %q", msg)
	}
}

func TestInitExistingRepository(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "crew.go", "package main\n")
	if err := Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	before := headMessage(t, dir)

	if err := Init(dir); err != nil {
		t.Fatalf("Init on existing repository: %v", err)
	}
	if headMessage(t, dir) != before {
		t.Error("second Init should leave the repository untouched")
	}
}

func TestCommitStagesChanges(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "crew.go", "package main\n")
	if err := Init(dir); err != nil {
		t.Fatal(err)
	}

	writeFile(t, dir, "team.go", "package main\n")
	if err := Commit(dir, "Add editor agent"); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	msg := headMessage(t, dir)
	if !strings.HasPrefix(msg, "Add editor agent") {
		t.Errorf("HEAD message = %q", msg)
	}
}

func TestCommitCleanWorktree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "crew.go", "package main\n")
	if err := Init(dir); err != nil {
		t.Fatal(err)
	}
	before := headMessage(t, dir)

	if err := Commit(dir, "Nothing changed"); err != nil {
		t.Fatalf("Commit with clean worktree: %v", err)
	}
	if headMessage(t, dir) != before {
		t.Error("clean-worktree commit should be a no-op")
	}
}

func TestCommitOutsideRepository(t *testing.T) {
	err := Commit(t.TempDir(), "anything")
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		t.Fatalf("expected ErrRepositoryNotExists, got %v", err)
	}
}
