package project

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is the advisory lock file in a project directory.
const LockFileName = ".crewforge.lock"

// Lock takes the project's advisory lock. The materializer's staging step
// only protects one process against partial writes; concurrent CLI
// invocations against the same project must be excluded here. The caller
// must Unlock the returned lock.
func Lock(dir string) (*flock.Flock, error) {
	lock := flock.New(filepath.Join(dir, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking project %s: %w", dir, err)
	}
	if !ok {
		return nil, fmt.Errorf("project %s is locked by another crewforge process", dir)
	}
	return lock, nil
}
