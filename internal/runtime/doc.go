// Package runtime executes generated projects. The Dispatch function selects
// the Runtime implementation by identifier; GoRuntime runs a project with
// `go run .` in its directory, and Watch reruns it on file changes.
package runtime
