package fileio

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	// maxMatches caps the result list handed to the model.
	maxMatches = 50
	// maxScanBytes skips files too large to be worth line-scanning.
	maxScanBytes = 1 << 20
)

// SearchConfig confines the search to a directory and glob patterns.
type SearchConfig struct {
	Root  string
	Allow []string
}

// Search greps file contents under an allowed directory.
type Search struct {
	gate gate
}

// NewSearch builds a Search from explicit configuration.
func NewSearch(cfg SearchConfig) *Search {
	return &Search{gate: newGate(cfg.Root, cfg.Allow)}
}

// NewSearchFromEnv builds a Search rooted at DIRECTORY_SEARCH_TOOL_PATH,
// defaulting to the working directory.
func NewSearchFromEnv() *Search {
	return NewSearch(SearchConfig{Root: os.Getenv("DIRECTORY_SEARCH_TOOL_PATH")})
}

func (s *Search) Name() string { return "directory_search" }

func (s *Search) Description() string {
	return "Search file contents under the configured directory. Input is a text query; output lists matching files and lines."
}

// Call searches for the query, case-insensitively, line by line. Failures
// come back as diagnostic text rather than an error.
func (s *Search) Call(ctx context.Context, input string) (string, error) {
	query := strings.ToLower(strings.TrimSpace(input))
	if query == "" {
		return "Provide a non-empty search query.", nil
	}

	root, err := filepath.Abs(s.gate.root)
	if err != nil {
		return fmt.Sprintf("Could not resolve the search directory %s: %v", s.gate.root, err), nil
	}

	var b strings.Builder
	matches := 0
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		name := d.Name()
		if d.IsDir() {
			if strings.HasPrefix(name, ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		if _, diag := s.gate.resolve(path); diag != "" {
			return nil
		}
		if info, err := d.Info(); err != nil || info.Size() > maxScanBytes {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		matches += scanFile(&b, path, rel, query, maxMatches-matches)
		if matches >= maxMatches {
			return filepath.SkipAll
		}
		return nil
	})
	if walkErr != nil && walkErr == ctx.Err() {
		return "", walkErr
	}

	if matches == 0 {
		return fmt.Sprintf("No matches for %q under %s.", input, s.gate.root), nil
	}
	header := fmt.Sprintf("Found %d matching lines:\n", matches)
	if matches >= maxMatches {
		header = fmt.Sprintf("Found %d matching lines (capped, refine the query for more):\n", matches)
	}
	return header + strings.TrimRight(b.String(), "\n"), nil
}

// scanFile appends up to limit matching lines to b and returns how many it
// found. Unreadable files are skipped silently.
func scanFile(b *strings.Builder, path, rel, query string, limit int) int {
	if limit <= 0 {
		return 0
	}
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	found := 0
	lineNo := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.Contains(strings.ToLower(line), query) {
			fmt.Fprintf(b, "%s:%d: %s\n", rel, lineNo, strings.TrimSpace(line))
			found++
			if found >= limit {
				break
			}
		}
	}
	return found
}
