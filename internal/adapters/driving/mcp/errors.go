// Package mcp provides an MCP (Model Context Protocol) server adapter for
// boexplorer. It lets AI assistants like Claude search beneficial ownership
// registries and read the aggregated BODS statements.
package mcp

import "errors"

// ErrMissingExplorer is returned when the explorer service is not provided.
var ErrMissingExplorer = errors.New("mcp: explorer service is required")
