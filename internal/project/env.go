package project

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// EnvEntry is a single key-value pair from a .env file.
type EnvEntry struct {
	Key   string
	Value string
}

// EnvFile is an append-only view of one .env file. Existing lines, comments
// included, are never rewritten: new variables are appended on Write, and
// setting a key that already exists is refused. This keeps user edits and
// secrets intact across tool installs.
type EnvFile struct {
	Path string

	entries []EnvEntry
	pending []EnvEntry
}

// LoadEnv reads the .env file at path. A missing file yields an empty
// EnvFile whose Write will create it.
func LoadEnv(path string) (*EnvFile, error) {
	e := &EnvFile{Path: path}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return e, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		e.entries = append(e.entries, EnvEntry{
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return e, nil
}

// Entries returns all known entries, file order, pending appends last.
func (e *EnvFile) Entries() []EnvEntry {
	out := make([]EnvEntry, 0, len(e.entries)+len(e.pending))
	out = append(out, e.entries...)
	out = append(out, e.pending...)
	return out
}

// Get returns the value for key and whether it is set.
func (e *EnvFile) Get(key string) (string, bool) {
	for _, entry := range e.Entries() {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return "", false
}

// Has reports whether key is set.
func (e *EnvFile) Has(key string) bool {
	_, ok := e.Get(key)
	return ok
}

// AppendIfNew stages key=value for appending unless the key already exists.
// Reports whether the value was staged.
func (e *EnvFile) AppendIfNew(key, value string) bool {
	if e.Has(key) {
		return false
	}
	e.pending = append(e.pending, EnvEntry{Key: key, Value: value})
	return true
}

// Set stages key=value and errors when the key already exists. Overwriting
// is deliberately unsupported.
func (e *EnvFile) Set(key, value string) error {
	if !e.AppendIfNew(key, value) {
		return fmt.Errorf("%s is already set in %s; edit the file to change it", key, e.Path)
	}
	return nil
}

// Write appends the staged entries to the file. Nothing is written when no
// entries are pending.
func (e *EnvFile) Write() error {
	if len(e.pending) == 0 {
		return nil
	}
	f, err := os.OpenFile(e.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening env file %s: %w", e.Path, err)
	}
	defer f.Close()

	for _, entry := range e.pending {
		if _, err := fmt.Fprintf(f, "\n%s=%s", entry.Key, entry.Value); err != nil {
			return fmt.Errorf("appending to %s: %w", e.Path, err)
		}
	}
	e.entries = append(e.entries, e.pending...)
	e.pending = nil
	return nil
}

// sensitivePatterns are key substrings whose values get redacted on display.
var sensitivePatterns = []string{"TOKEN", "SECRET", "PASSWORD", "KEY", "CREDENTIAL"}

// Redact masks value when the key looks sensitive: 4+ character values show
// the first 4 characters plus "***", shorter ones become "***".
func Redact(key, value string) string {
	upper := strings.ToUpper(key)
	for _, pattern := range sensitivePatterns {
		if strings.Contains(upper, pattern) {
			if len(value) >= 4 {
				return value[:4] + "***"
			}
			return "***"
		}
	}
	return value
}
