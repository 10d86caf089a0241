// Package mcptools exposes the storage services as MCP tools.
//
// Each tool group follows the same pattern: a struct with its dependencies
// injected via constructor and a Register method that attaches the tool
// definitions and handlers to an MCP server. Handlers uphold the uniform
// contract of the tool surface: every outcome, success or failure, is
// returned to the caller as a readable text result — nothing raises past a
// tool boundary.
package mcptools
