// Package config manages user-level settings stored at ~/.crewforge/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the download mirror URL used by the self-update mechanism.
package config