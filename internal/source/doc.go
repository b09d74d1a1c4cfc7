// Package source parses generated project source files and locates the
// declarations tagged with crewforge marker directives (//crewforge:crew,
// //crewforge:agent, //crewforge:task). It also provides splice-based
// editing with re-parse validation, so callers can insert code next to a
// located declaration without ever writing an unparsable file.
package source
