// Package playwright adapts a playwright-go page to the axecheck Page
// capability.
package playwright

import (
	"context"
	"encoding/json"
	"fmt"

	pw "github.com/playwright-community/playwright-go"
)

// Page wraps a Playwright page handle.
type Page struct {
	page pw.Page
}

// Wrap adapts a Playwright page.
func Wrap(page pw.Page) *Page {
	return &Page{page: page}
}

// Evaluate runs expression in the page and re-encodes the decoded value as
// raw JSON. Playwright awaits thenables itself, so promise expressions
// resolve to their settled value. The underlying driver has no context
// plumbing; ctx is honored before dispatch only.
func (p *Page) Evaluate(ctx context.Context, expression string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, err := p.page.Evaluate(expression)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding evaluate result: %w", err)
	}
	return data, nil
}
