package axecheck

import (
	"errors"
	"strings"
	"testing"
)

const reportResponse = `{
	"violations": [
		{
			"id": "color-contrast",
			"impact": "serious",
			"description": "Elements must meet minimum color contrast ratio thresholds",
			"helpUrl": "https://dequeuniversity.com/rules/axe/4.10/color-contrast",
			"tags": ["cat.color", "wcag2aa"],
			"nodes": [
				{
					"target": ["#low"],
					"html": "<p\nclass=\"dim\">text</p>",
					"all": [{"message": "msg-all"}],
					"any": [{"message": "msg-any"}],
					"none": [{"message": "msg-none"}]
				},
				{
					"target": ["#low2"],
					"html": "<span>y</span>",
					"any": [{"message": "Fix contrast"}]
				}
			]
		},
		{
			"id": "image-alt",
			"impact": "critical",
			"description": "Images must have alternate text",
			"helpUrl": "https://dequeuniversity.com/rules/axe/4.10/image-alt",
			"tags": ["cat.text-alternatives", "wcag2a"],
			"nodes": [
				{
					"target": ["iframe", "img.hero"],
					"html": "<img src=\"x.png\">",
					"any": [{"message": "Add alt text"}]
				}
			]
		}
	]
}`

func TestReportZeroViolations(t *testing.T) {
	got, err := mustParse(t, `{"violations": []}`).Report("")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if got != "Found 0 accessibility violations:\n" {
		t.Errorf("report = %q", got)
	}
}

func TestReportAll(t *testing.T) {
	got, err := mustParse(t, reportResponse).Report("")
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	if !strings.HasPrefix(got, "Found 2 accessibility violations:\n") {
		t.Errorf("missing summary line in %q", got)
	}

	wants := []string{
		"Rule Violated:\ncolor-contrast - Elements must meet minimum color contrast ratio thresholds",
		"\tURL: https://dequeuniversity.com/rules/axe/4.10/color-contrast",
		"\tImpact Level: serious",
		"\n\n\t1)\tTarget: #low",
		"\n\n\t2)\tTarget: #low2",
		"\n\n\t1)\tTarget: iframe, img.hero",
		"\n\t\tSnippet: <span>y</span>",
		"\n\t\t* Fix contrast",
		"Rule Violated:\nimage-alt - Images must have alternate text",
	}
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q", want)
		}
	}

	// Embedded newlines in snippets are stripped.
	if !strings.Contains(got, `Snippet: <pclass="dim">text</p>`) {
		t.Error("snippet newline was not stripped")
	}

	// Check messages flatten in all, any, none order.
	allIdx := strings.Index(got, "* msg-all")
	anyIdx := strings.Index(got, "* msg-any")
	noneIdx := strings.Index(got, "* msg-none")
	if allIdx < 0 || anyIdx < 0 || noneIdx < 0 || !(allIdx < anyIdx && anyIdx < noneIdx) {
		t.Errorf("messages out of order: all=%d any=%d none=%d", allIdx, anyIdx, noneIdx)
	}
}

func TestReportRuleFilter(t *testing.T) {
	got, err := mustParse(t, reportResponse).Report("image-alt")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if strings.Contains(got, "Found") {
		t.Error("filtered report should not carry a summary line")
	}
	if !strings.Contains(got, "image-alt") {
		t.Error("filtered report missing the requested rule")
	}
	if strings.Contains(got, "color-contrast") {
		t.Error("filtered report leaked another rule")
	}
}

func TestReportRuleFilterMissingID(t *testing.T) {
	data := `{"violations": [{"impact": "minor", "nodes": []}]}`
	_, err := mustParse(t, data).Report("image-alt")
	var keyErr *KeyError
	if !errors.As(err, &keyErr) {
		t.Fatalf("expected *KeyError, got %v", err)
	}
	if keyErr.Key != "id" {
		t.Errorf("key = %q, want id", keyErr.Key)
	}
}

func TestReportRuleFilterNoMatch(t *testing.T) {
	got, err := mustParse(t, reportResponse).Report("no-such-rule")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty report, got %q", got)
	}
}

func TestReportMissingTemplateField(t *testing.T) {
	data := `{"violations": [{"id": "x", "impact": "minor", "description": "d", "tags": [], "nodes": []}]}`
	_, err := mustParse(t, data).Report("")
	if err == nil {
		t.Fatal("expected substitution error for missing template field")
	}
	if !strings.Contains(err.Error(), "helpUrl") {
		t.Errorf("error should name the missing field: %v", err)
	}
}

func TestReportMissingNodeFields(t *testing.T) {
	tests := []struct {
		name    string
		node    string
		wantKey string
	}{
		{"no target", `{"html": "<i></i>"}`, "target"},
		{"no html", `{"target": ["#a"]}`, "html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := `{"violations": [{"id": "x", "impact": "minor", "description": "d", "helpUrl": "u", "tags": [], "nodes": [` + tt.node + `]}]}`
			_, err := mustParse(t, data).Report("")
			var keyErr *KeyError
			if !errors.As(err, &keyErr) {
				t.Fatalf("expected *KeyError, got %v", err)
			}
			if keyErr.Key != tt.wantKey {
				t.Errorf("key = %q, want %q", keyErr.Key, tt.wantKey)
			}
		})
	}
}

func TestReportMissingViolationsKey(t *testing.T) {
	_, err := mustParse(t, `{}`).Report("")
	var keyErr *KeyError
	if !errors.As(err, &keyErr) {
		t.Fatalf("expected *KeyError, got %v", err)
	}
	if keyErr.Key != "violations" {
		t.Errorf("key = %q, want violations", keyErr.Key)
	}
}
