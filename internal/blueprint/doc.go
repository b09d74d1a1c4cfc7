// Package blueprint defines the project specification consumed by the
// materializer: agents, tasks, tools, and inputs. Blueprints load from the
// embedded library, a local JSON file, or an https URL, and every load is
// validated against the embedded JSON Schema before use. Blueprints are
// read-only to the rest of the system.
package blueprint
