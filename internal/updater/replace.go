package updater

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/crewforge-labs/crewforge/internal/branding"
)

const verifyTimeout = 5 * time.Second

// ReplaceBinary swaps the binary at currentPath for the one at newPath,
// keeping a backup until the new binary has been verified. On failure the
// backup is restored.
func ReplaceBinary(newPath, currentPath, expectedVersion string) error {
	if runtime.GOOS == "windows" {
		return fmt.Errorf("self-update is not supported on Windows. Please download the latest version manually from https://github.com/%s/releases", branding.GitHubRepo())
	}

	info, err := os.Stat(currentPath)
	if err != nil {
		return fmt.Errorf("stat current binary: %w", err)
	}

	backupPath := currentPath + ".backup"
	if err := move(currentPath, backupPath); err != nil {
		return fmt.Errorf("creating backup: %w", err)
	}
	if err := move(newPath, currentPath); err != nil {
		RollbackBinary(backupPath, currentPath)
		return fmt.Errorf("installing new binary: %w", err)
	}
	os.Chmod(currentPath, info.Mode().Perm())

	if err := VerifyBinary(currentPath, expectedVersion); err != nil {
		RollbackBinary(backupPath, currentPath)
		return fmt.Errorf("verification failed, rolled back: %w", err)
	}

	os.Remove(backupPath)
	return nil
}

// VerifyBinary runs the binary's `version --json` and checks that it reports
// the expected version. An empty expectedVersion only checks that the binary
// starts and produces parseable output.
func VerifyBinary(binaryPath, expectedVersion string) error {
	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, binaryPath, "version", "--json").Output()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("new binary timed out after %s", verifyTimeout)
	}
	if err != nil {
		return fmt.Errorf("new binary exited with error: %w", err)
	}

	var info map[string]string
	if err := json.Unmarshal(output, &info); err != nil {
		return fmt.Errorf("parsing version output: %w", err)
	}
	if expectedVersion == "" {
		return nil
	}
	got := strings.TrimPrefix(info["version"], "v")
	want := strings.TrimPrefix(expectedVersion, "v")
	if got != want {
		return fmt.Errorf("new binary reports version %q, expected %q", info["version"], expectedVersion)
	}
	return nil
}

// RollbackBinary restores the backup to the current path.
func RollbackBinary(backupPath, currentPath string) error {
	if err := move(backupPath, currentPath); err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}
	return nil
}

// move renames src to dst, falling back to copy-and-remove when the rename
// crosses filesystems.
func move(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
