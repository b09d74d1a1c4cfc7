// Package scaffold materializes new agent projects from embedded template
// families. It powers the "crewforge init" command, rendering one skeleton
// tree per supported orchestration framework into a concrete, runnable
// project. Materialization is all-or-nothing: files are staged in a hidden
// sibling directory and renamed into place only when every template resolved.
package scaffold
