// Package cdp adapts a chromedp tab to the axecheck Page capability.
package cdp

import (
	"context"
	"encoding/json"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// Page wraps a chromedp tab. Per chromedp convention the tab handle is the
// context returned by chromedp.NewContext.
type Page struct {
	tab context.Context
}

// From wraps a chromedp tab context.
func From(tab context.Context) *Page {
	return &Page{tab: tab}
}

// Evaluate runs expression in the tab and returns its value as raw JSON.
// Promise values are awaited and resolved by value; undefined and null
// results yield a nil message rather than an error. Cancelling ctx aborts
// the evaluation without closing the tab.
func (p *Page) Evaluate(ctx context.Context, expression string) (json.RawMessage, error) {
	runCtx, cancel := context.WithCancel(p.tab)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var raw json.RawMessage
	err := chromedp.Run(runCtx, chromedp.Evaluate(expression, &raw, awaitPromise))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	return normalizeResult(raw), nil
}

// normalizeResult maps the literal null payload chromedp delivers to a
// raw-message target for JS undefined and null onto a nil message.
func normalizeResult(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return raw
}

// awaitPromise makes Evaluate resolve promise values instead of returning
// the pending promise object.
func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}
