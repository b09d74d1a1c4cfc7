// Package telemetry reports anonymous usage events. An event carries the
// command name, the CLI version, and a random machine id — never project
// contents, paths, or env values. Opt out with CREWFORGE_TELEMETRY_OPT_OUT=1
// or `crewforge config set telemetry_opt_out true`.
package telemetry

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crewforge-labs/crewforge/internal/branding"
	"github.com/crewforge-labs/crewforge/internal/config"
)

const machineIDFile = "machine_id"

var httpClient = &http.Client{Timeout: 3 * time.Second}

type event struct {
	Event     string            `json:"event"`
	MachineID string            `json:"machine_id"`
	Version   string            `json:"version"`
	OS        string            `json:"os"`
	Arch      string            `json:"arch"`
	Props     map[string]string `json:"props,omitempty"`
}

// OptedOut reports whether the user has disabled telemetry, via env var or
// the user-level config file.
func OptedOut() bool {
	if truthy(os.Getenv(branding.EnvVar("TELEMETRY_OPT_OUT"))) {
		return true
	}
	return truthy(config.Get("telemetry_opt_out"))
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// Capture sends one usage event. It never returns an error and never blocks
// longer than the short request timeout: telemetry must not get in the
// user's way.
func Capture(name, version string, props map[string]string) {
	if OptedOut() {
		return
	}
	payload, err := json.Marshal(event{
		Event:     name,
		MachineID: machineID(),
		Version:   version,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Props:     props,
	})
	if err != nil {
		return
	}
	resp, err := httpClient.Post(branding.TelemetryURL(), "application/json", bytes.NewReader(payload))
	if err != nil {
		return
	}
	resp.Body.Close()
}

// machineID returns a random id persisted in the user config directory, so
// event counts can be deduplicated without identifying anyone.
func machineID() string {
	path := filepath.Join(config.Dir(), machineIDFile)
	if data, err := os.ReadFile(path); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id
		}
	}
	id := uuid.NewString()
	if err := config.EnsureDir(); err == nil {
		_ = os.WriteFile(path, []byte(id+"\n"), 0644)
	}
	return id
}
