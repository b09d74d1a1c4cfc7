package runtime

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce collapses the burst of filesystem events an editor save produces
// into a single rerun.
const debounce = 400 * time.Millisecond

// Watch runs the project once, then reruns it whenever a source or config
// file changes, until ctx is canceled. Runs are sequential: a change during
// a run queues exactly one rerun. Notice receives a line before every rerun,
// typically os.Stderr.
func Watch(ctx context.Context, rt Runtime, dir string, env map[string]string, notice io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}
	// The config directory holds agents.yaml and tasks.yaml; its absence is
	// fine, the entrypoint watch still covers code changes.
	_ = watcher.Add(filepath.Join(dir, "config"))

	run := func() {
		if _, err := rt.Run(ctx, dir, env); err != nil && ctx.Err() == nil {
			io.WriteString(notice, "run failed: "+err.Error()+"\n")
		}
	}
	run()

	var timer *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event.Name) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			io.WriteString(notice, "watch error: "+err.Error()+"\n")
		case <-pending:
			io.WriteString(notice, "change detected, rerunning\n")
			run()
		}
	}
}

// relevant filters events down to the files a rerun cares about: Go sources,
// the YAML config, and the env file. Editor temp files and the lock file are
// noise.
func relevant(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") && base != ".env" {
		return false
	}
	switch filepath.Ext(base) {
	case ".go", ".yaml", ".yml", ".env":
		return true
	}
	return base == ".env"
}
