// Package fileio provides local filesystem tools for agents: a file reader
// and a directory content search. Both are confined to a root directory and
// a set of glob patterns, so an agent can never wander outside what the
// project allows.
package fileio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// gate confines tool access to files under Root whose root-relative path
// matches at least one Allow pattern.
type gate struct {
	root  string
	allow []string
}

func newGate(root string, allow []string) gate {
	if root == "" {
		root = "."
	}
	if len(allow) == 0 {
		allow = []string{"**"}
	}
	return gate{root: root, allow: allow}
}

// resolve maps a user-supplied path to an absolute path inside the root.
// Paths that escape the root or match no allow pattern are rejected with a
// diagnostic.
func (g gate) resolve(input string) (abs string, diag string) {
	root, err := filepath.Abs(g.root)
	if err != nil {
		return "", fmt.Sprintf("Could not resolve the allowed directory %s: %v", g.root, err)
	}

	path := strings.TrimSpace(input)
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	path = filepath.Clean(path)

	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Sprintf("Access to %s is not allowed: it is outside %s.", input, g.root)
	}

	relSlash := filepath.ToSlash(rel)
	for _, pattern := range g.allow {
		if ok, err := doublestar.Match(pattern, relSlash); err == nil && ok {
			return path, ""
		}
	}
	return "", fmt.Sprintf("Access to %s is not allowed by the configured patterns.", input)
}
