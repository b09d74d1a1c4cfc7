package fileio

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"
)

// maxReadBytes caps how much of a file is handed to the model.
const maxReadBytes = 256 * 1024

// ReaderConfig confines the reader to a directory and glob patterns.
type ReaderConfig struct {
	Root  string
	Allow []string
}

// Reader reads files under an allowed directory.
type Reader struct {
	gate gate
}

// NewReader builds a Reader from explicit configuration.
func NewReader(cfg ReaderConfig) *Reader {
	return &Reader{gate: newGate(cfg.Root, cfg.Allow)}
}

// NewReaderFromEnv builds a Reader rooted at the working directory with all
// files allowed.
func NewReaderFromEnv() *Reader {
	return NewReader(ReaderConfig{})
}

func (r *Reader) Name() string { return "file_read" }

func (r *Reader) Description() string {
	return "Read a local file. Input is a path relative to the project directory; output is the file's text."
}

// Call reads the file at the input path. Access violations and read failures
// come back as diagnostic text rather than an error.
func (r *Reader) Call(_ context.Context, input string) (string, error) {
	path, diag := r.gate.resolve(input)
	if diag != "" {
		return diag, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Sprintf("Could not read %s: %v", input, err), nil
	}
	if info.IsDir() {
		return fmt.Sprintf("%s is a directory; provide a file path.", input), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("Could not read %s: %v", input, err), nil
	}
	truncated := false
	if len(data) > maxReadBytes {
		data = data[:maxReadBytes]
		// A cut can land mid-rune; drop at most the partial rune.
		for i := 0; i < utf8.UTFMax && len(data) > 0 && !utf8.Valid(data); i++ {
			data = data[:len(data)-1]
		}
		truncated = true
	}
	if !utf8.Valid(data) {
		return fmt.Sprintf("%s does not look like a text file.", input), nil
	}
	if truncated {
		return string(data) + "\n\n[truncated: file exceeds the read limit]", nil
	}
	return string(data), nil
}
