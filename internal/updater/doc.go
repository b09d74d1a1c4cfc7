// Package updater implements the self-update mechanism for the crewforge binary.
// It checks GitHub Releases for new versions, downloads and verifies checksums,
// extracts the binary, and replaces the running executable. An hourly-cached
// version check powers the startup banner.
package updater
