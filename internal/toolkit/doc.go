// Package toolkit is the registry of tool adapters a generated project can
// install. Each tool is described by an embedded JSON manifest (import path,
// constructor, required environment variables) validated against an embedded
// schema. The registry is read-only; installing a tool into a project is the
// generate package's job.
package toolkit
