package axecheck

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// Page is the capability a Runner needs from a browser automation driver:
// evaluate script text in the page and return its JSON-serializable value.
// Adapters for chromedp and Playwright live under driver/.
type Page interface {
	Evaluate(ctx context.Context, expression string) (json.RawMessage, error)
}

// runTemplate invokes the injected entry point and resolves with the raw
// scan response.
const runTemplate = "axe.run(%s).then(results => results)"

// Runner injects axe-core into pages and runs scans. The zero value scans
// with the bundled build. A Runner holds no mutable state after
// construction, so it is safe for concurrent use across distinct pages;
// a single page handle must not be scanned by two calls at once.
type Runner struct {
	// Script is the axe-core source to inject. Empty means the bundled build.
	Script string
	// Logger receives debug-level scan events. Nil means slog.Default().
	Logger *slog.Logger
}

// New returns a Runner over the bundled axe-core build.
func New() *Runner { return &Runner{} }

// NewFromFile returns a Runner over an alternative axe-core build read from
// path. The file must exist and decode as UTF-8 text.
func NewFromFile(path string) (*Runner, error) {
	src, err := readScriptFile(path)
	if err != nil {
		return nil, err
	}
	return &Runner{Script: src}, nil
}

func (r *Runner) script() string {
	if r.Script != "" {
		return r.Script
	}
	return bundledScript
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Run injects the axe-core script into page, invokes the scan restricted by
// scope and configured by opts, and wraps the raw response. Nil opts scans
// with DefaultOptions; a zero *RunOptions passes no options argument at
// all, letting the engine apply its own defaults. Driver failures propagate
// wrapped and untranslated; nothing is retried.
func (r *Runner) Run(ctx context.Context, page Page, scope *Context, opts *RunOptions) (*Results, error) {
	script := r.script()
	if _, err := page.Evaluate(ctx, script); err != nil {
		return nil, fmt.Errorf("injecting axe script: %w", err)
	}
	r.logger().Debug("axe script injected", "bytes", len(script))

	if opts == nil {
		opts = DefaultOptions()
	}
	args, err := formatScriptArgs(scope, opts)
	if err != nil {
		return nil, err
	}

	r.logger().Debug("running axe scan", "args", args)
	raw, err := page.Evaluate(ctx, fmt.Sprintf(runTemplate, args))
	if err != nil {
		return nil, fmt.Errorf("running axe scan: %w", err)
	}

	return ParseResults(raw)
}

// formatScriptArgs renders scope and opts as a comma-joined literal
// argument list in (context, options) order. Zero values contribute no
// argument. JSON doubles as script literal syntax, so nothing is
// hand-quoted and caller values cannot break out of the call expression.
func formatScriptArgs(scope *Context, opts *RunOptions) (string, error) {
	var args []string
	if !scope.isZero() {
		b, err := json.Marshal(scope)
		if err != nil {
			return "", fmt.Errorf("encoding scan context: %w", err)
		}
		args = append(args, string(b))
	}
	if !opts.isZero() {
		b, err := json.Marshal(opts)
		if err != nil {
			return "", fmt.Errorf("encoding scan options: %w", err)
		}
		args = append(args, string(b))
	}
	return strings.Join(args, ","), nil
}
