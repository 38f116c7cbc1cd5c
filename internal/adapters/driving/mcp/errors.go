// Package mcp provides an MCP (Model Context Protocol) server adapter for boothcache.
// Every cache operation is exposed as a tool with JSON input and output, and
// collections, items and statistics are readable as resources.
package mcp

import "errors"

// ErrMissingService is returned when a required service is not provided.
var ErrMissingService = errors.New("mcp: service is required")
