// Package generate applies post-init modifications to an existing project:
// adding agents and tasks (YAML config plus a spliced method on the crew
// type), installing and removing tools, and reading a project back into a
// blueprint for export. Every source edit goes through the source package's
// splice-and-reparse path, so a modification that would produce unparsable
// code is rejected before anything touches disk.
package generate
