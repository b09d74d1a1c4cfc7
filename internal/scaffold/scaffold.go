package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
)

//go:embed all:scaffolds
var scaffoldFS embed.FS

// Result holds the outcome of a materialization run.
type Result struct {
	OutputDir string
	Files     []string
}

// Families lists the embedded scaffold families, sorted.
func Families() []string {
	entries, err := scaffoldFS.ReadDir("scaffolds")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Generate materializes the named scaffold family against data into
// outputDir. Files ending in .tmpl are rendered with text/template; all
// other files are copied verbatim. The whole run is atomic: every file is
// rendered into a hidden staging directory first, and only a fully resolved
// tree is renamed into place. On any failure the staging directory is
// removed and the target is left untouched.
func Generate(family string, data *Data, outputDir string) (*Result, error) {
	familyDir := path.Join("scaffolds", family)
	if _, err := scaffoldFS.ReadDir(familyDir); err != nil {
		return nil, fmt.Errorf("scaffold family %q not found: %w", family, err)
	}

	if err := checkTarget(outputDir); err != nil {
		return nil, err
	}

	parent := filepath.Dir(outputDir)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return nil, fmt.Errorf("creating parent directory: %w", err)
	}
	staging, err := os.MkdirTemp(parent, "."+filepath.Base(outputDir)+".staging-")
	if err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}

	result := &Result{OutputDir: outputDir}
	err = fs.WalkDir(scaffoldFS, familyDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(p, familyDir), "/")
		if d.IsDir() {
			if rel == "" {
				return nil
			}
			return os.MkdirAll(filepath.Join(staging, rel), 0755)
		}

		raw, err := scaffoldFS.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}

		outName := rel
		if strings.HasSuffix(outName, ".tmpl") {
			outName = strings.TrimSuffix(outName, ".tmpl")
			raw, err = render(rel, raw, data)
			if err != nil {
				return err
			}
		}

		if err := os.WriteFile(filepath.Join(staging, outName), raw, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outName, err)
		}
		result.Files = append(result.Files, outName)
		return nil
	})
	if err != nil {
		os.RemoveAll(staging)
		return nil, err
	}

	// Target may have been created concurrently; re-check before the move.
	if err := checkTarget(outputDir); err != nil {
		os.RemoveAll(staging)
		return nil, err
	}
	os.Remove(outputDir) // drop an empty directory so the rename lands cleanly
	if err := os.Rename(staging, outputDir); err != nil {
		os.RemoveAll(staging)
		return nil, fmt.Errorf("moving staged project into place: %w", err)
	}

	sort.Strings(result.Files)
	return result, nil
}

// render executes one template file against data. Unresolvable references
// become MaterializationErrors naming the file and the missing key.
func render(name string, raw []byte, data *Data) ([]byte, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, &MaterializationError{File: name, Err: err}
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, &MaterializationError{File: name, Key: missingKey(err), Err: err}
	}
	return buf.Bytes(), nil
}

// missingKey pulls the offending reference out of a template execution
// error, e.g. `... at <.Missing>: can't evaluate field ...` yields ".Missing".
func missingKey(err error) string {
	msg := err.Error()
	start := strings.Index(msg, "at <")
	if start == -1 {
		return ""
	}
	rest := msg[start+len("at <"):]
	end := strings.Index(rest, ">")
	if end == -1 {
		return ""
	}
	return rest[:end]
}

// checkTarget requires the output directory to be absent or empty.
func checkTarget(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking output directory: %w", err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("output directory %s is not empty; remove existing files first", dir)
	}
	return nil
}
