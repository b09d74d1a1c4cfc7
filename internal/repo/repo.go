// Package repo wraps the small amount of git the CLI performs: initializing
// a repository in a freshly generated project and committing the changes each
// command makes. Failures here are soft — a broken or absent git setup never
// blocks scaffolding.
package repo

import (
	"errors"
	"fmt"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const automatedNote = "(This commit was made automatically by CrewForge)"

var signature = object.Signature{
	Name:  "CrewForge",
	Email: "bot@crewforge.dev",
}

// Init creates a git repository in dir with an initial commit of everything
// present. An existing repository is left untouched.
func Init(dir string) error {
	r, err := git.PlainInit(dir, false)
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("initializing git repository: %w", err)
	}
	return commitAll(r, "Initial commit")
}

// Commit stages every change in dir's repository and commits it with the
// given message, marked as automated. Committing with a clean worktree is
// not an error.
func Commit(dir, message string) error {
	r, err := git.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("opening git repository: %w", err)
	}
	return commitAll(r, message)
}

func commitAll(r *git.Repository, message string) error {
	wt, err := r.Worktree()
	if err != nil {
		return err
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("staging changes: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return err
	}
	if status.IsClean() {
		return nil
	}

	sig := signature
	sig.When = time.Now()
	_, err = wt.Commit(message+"\n\n"+automatedNote, &git.CommitOptions{
		Author: &sig,
	})
	if err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}
