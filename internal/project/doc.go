// Package project manages the per-project state files the generator reads
// and writes: crewforge.json (framework, installed tools, preferences), the
// append-only .env files, and the advisory lock that serializes concurrent
// CLI invocations against one project directory.
package project
