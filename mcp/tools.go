package mcp

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pinchtab/axecheck"
	"github.com/pinchtab/axecheck/internal/store"
)

type scanParams struct {
	URL          string   `json:"url" jsonschema:"URL of the page to scan, e.g. https://example.com/checkout."`
	Selectors    []string `json:"selectors,omitempty" jsonschema:"CSS selectors limiting the scan to parts of the page. Defaults to the whole document."`
	Tags         []string `json:"tags,omitempty" jsonschema:"Axe rule tags to run, e.g. wcag2a, wcag2aa. Overrides the configured tags."`
	DisableRules []string `json:"disable_rules,omitempty" jsonschema:"Rule IDs to disable for this scan, e.g. color-contrast."`
	ResultTypes  []string `json:"result_types,omitempty" jsonschema:"Result categories to compute: violations, passes, incomplete, inapplicable. Defaults to violations."`
}

func (h *handler) scanHandler(ctx context.Context, req *mcp.CallToolRequest, params scanParams) (*mcp.CallToolResult, any, error) {
	if params.URL == "" {
		return errorResult("url is required")
	}

	var scope *axecheck.Context
	if len(params.Selectors) > 0 {
		scope = axecheck.Selectors(params.Selectors...)
	}

	results, err := h.scanner.Scan(ctx, params.URL, scope, h.scanOptions(params))
	if err != nil {
		return errorResult(fmt.Sprintf("scan failed: %v", err))
	}

	entry := &store.Entry{
		ID:        uuid.New().String(),
		URL:       params.URL,
		ScannedAt: time.Now().UTC(),
		Results:   results,
	}
	if err := h.store.Save(entry); err != nil {
		return errorResult(fmt.Sprintf("storing results: %v", err))
	}

	snap, err := results.Snapshot()
	if err != nil {
		return errorResult(fmt.Sprintf("summarising results: %v", err))
	}
	return textResult(formatScan(entry, snap))
}

// scanOptions merges the configured scan defaults with per-call overrides.
// Returns nil when neither supplies anything, selecting the engine defaults.
func (h *handler) scanOptions(params scanParams) *axecheck.RunOptions {
	opts := h.cfg.Scan.Options()
	if len(params.Tags) == 0 && len(params.ResultTypes) == 0 && len(params.DisableRules) == 0 {
		return opts
	}
	if opts == nil {
		opts = &axecheck.RunOptions{}
	}
	if len(params.Tags) > 0 {
		opts.RunOnly = &axecheck.RunOnly{Type: "tag", Values: params.Tags}
	}
	if len(params.ResultTypes) > 0 {
		opts.ResultTypes = params.ResultTypes
	}
	for _, id := range params.DisableRules {
		if opts.Rules == nil {
			opts.Rules = make(map[string]axecheck.RuleOption)
		}
		opts.Rules[id] = axecheck.RuleOption{Enabled: false}
	}
	return opts
}

func formatScan(entry *store.Entry, snapshot string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run: %s\n", entry.ID)
	fmt.Fprintf(&b, "URL: %s\n\n", entry.URL)
	fmt.Fprintf(&b, "Violations: %d\n", entry.Results.ViolationCount())
	if snapshot != "" {
		fmt.Fprintf(&b, "\n%s\n", snapshot)
	}
	fmt.Fprintf(&b, "\nDetails: axe_report with run_id=%s. Raw JSON: axe_save.", entry.ID)
	return b.String()
}

type reportParams struct {
	RunID  string `json:"run_id" jsonschema:"Run ID returned by axe_scan."`
	RuleID string `json:"rule_id,omitempty" jsonschema:"Report only violations of this rule ID, e.g. color-contrast."`
}

func (h *handler) reportHandler(ctx context.Context, req *mcp.CallToolRequest, params reportParams) (*mcp.CallToolResult, any, error) {
	if _, err := uuid.Parse(params.RunID); err != nil {
		return errorResult(fmt.Sprintf("invalid run ID %q", params.RunID))
	}
	entry, err := h.store.Load(params.RunID)
	if err != nil {
		return errorResult(fmt.Sprintf("loading run: %v", err))
	}

	report, err := entry.Results.Report(params.RuleID)
	if err != nil {
		return errorResult(fmt.Sprintf("rendering report: %v", err))
	}
	if report == "" && params.RuleID != "" {
		return textResult(fmt.Sprintf("No violation with rule ID %q in run %s.", params.RuleID, params.RunID))
	}
	return textResult(report)
}

type saveParams struct {
	RunID          string `json:"run_id" jsonschema:"Run ID returned by axe_scan."`
	Path           string `json:"path,omitempty" jsonschema:"Output file path. Defaults to results.json."`
	ViolationsOnly bool   `json:"violations_only,omitempty" jsonschema:"Strip passes, incomplete, and inapplicable results before writing."`
}

func (h *handler) saveHandler(ctx context.Context, req *mcp.CallToolRequest, params saveParams) (*mcp.CallToolResult, any, error) {
	if _, err := uuid.Parse(params.RunID); err != nil {
		return errorResult(fmt.Sprintf("invalid run ID %q", params.RunID))
	}
	entry, err := h.store.Load(params.RunID)
	if err != nil {
		return errorResult(fmt.Sprintf("loading run: %v", err))
	}

	if err := entry.Results.Save(params.Path, params.ViolationsOnly); err != nil {
		return errorResult(fmt.Sprintf("saving results: %v", err))
	}

	path := params.Path
	if path == "" {
		path = axecheck.DefaultSavePath
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return textResult(fmt.Sprintf("Results for run %s written to %s", params.RunID, path))
}
