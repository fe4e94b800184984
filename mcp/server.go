// Package mcp provides the axecheck MCP server, exposing accessibility
// scans as tools for agent clients.
package mcp

import (
	_ "embed"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pinchtab/axecheck"
	"github.com/pinchtab/axecheck/internal/store"
)

//go:embed instructions.md
var Instructions string

// runCacheSize bounds how many recent scan results stay in memory.
// Older runs are still served from disk.
const runCacheSize = 16

// handler holds shared dependencies for all tool handlers.
type handler struct {
	cfg     *Config
	scanner Scanner
	store   store.Store
}

// NewServer creates an MCP server with the axecheck tools registered.
// A nil cfg selects DefaultConfig.
func NewServer(cfg *Config, opts ...ServerOption) *mcp.Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var so serverOptions
	for _, o := range opts {
		o(&so)
	}
	if so.scanner == nil {
		so.scanner = NewSession(cfg.Browser)
	}

	h := &handler{
		cfg:     cfg,
		scanner: so.scanner,
		store:   store.NewLRUStore(runCacheSize, store.NewDiskStore()),
	}

	mcpOpts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "axecheck", Version: axecheck.Version}, mcpOpts)

	mcp.AddTool(s, &mcp.Tool{
		Name: "axe_scan",
		Description: `Scan a web page for accessibility violations with axe-core.

Navigates a managed headless browser to the URL, injects axe, and runs the scan.
Returns a run ID and a one-line-per-rule summary. Use axe_report for full details
and axe_save to write the raw results to disk.`,
	}, h.scanHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "axe_report",
		Description: `Render the detailed violation report for a previous axe_scan run.

Each violation lists the rule, help URL, impact, tags, and every affected
element with its HTML snippet and failure messages. Pass rule_id to report
on a single rule.`,
	}, h.reportHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "axe_save",
		Description: `Write the raw axe results of a previous run to a JSON file.

Defaults to results.json in the server's working directory. Set
violations_only to strip passing, incomplete, and inapplicable entries.`,
	}, h.saveHandler)

	return s
}

// ServerOption configures the axecheck MCP server.
type ServerOption func(*serverOptions)

type serverOptions struct {
	scanner Scanner
}

// WithScanner replaces the managed browser session, e.g. in tests.
func WithScanner(s Scanner) ServerOption {
	return func(o *serverOptions) {
		o.scanner = s
	}
}

// textResult is a helper to build a successful text tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
