// Package server implements the MCP (Model Context Protocol) server for the
// pixel-art rendering tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the pixel-art
// pipeline and its supporting image inspection tools through the MCP protocol,
// so MCP-compatible clients can render and verify pixel-art output.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Color Inspection:
//   - image_sample_color: Get color at pixel
//   - image_palette: Exact distinct-color census
//
// Rendering:
//   - pixelart_render: Run the pipeline, return base64 PNG
//   - pixelart_render_file: Run the pipeline, write the result to disk
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
