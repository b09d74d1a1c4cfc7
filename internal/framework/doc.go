// Package framework enumerates the supported orchestration framework
// families and the per-family conventions the generator relies on: the
// entrypoint file name, the scaffold set, and the shape of an agent's tool
// list. Project validation lives here because "is this a crewforge project
// of family X" is a framework question, not a source question.
package framework
