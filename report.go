package axecheck

import (
	_ "embed"
	"fmt"
	"maps"
	"strings"
	"text/template"
)

// reportTemplate is the per-violation report body. It is parsed on every
// Report call and executed with missingkey=error, so a field the template
// references but the violation lacks is a substitution error, not a blank.
//
//go:embed violations.txt
var reportTemplate string

// Report renders a human-readable violation report. An empty ruleID
// reports every violation behind a `Found <N> accessibility violations:`
// summary line; a non-empty ruleID renders only matching violations, with
// no summary line and an empty string when nothing matches.
func (r *Results) Report(ruleID string) (string, error) {
	violations, err := r.violationMaps()
	if err != nil {
		return "", err
	}

	tmpl, err := template.New("violations").Option("missingkey=error").Parse(reportTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing report template: %w", err)
	}

	var b strings.Builder
	if ruleID == "" {
		fmt.Fprintf(&b, "Found %d accessibility violations:\n", len(violations))
	}
	for _, v := range violations {
		if ruleID != "" {
			id, ok := v["id"]
			if !ok {
				return "", &KeyError{Key: "id"}
			}
			if id != ruleID {
				continue
			}
		}
		elements, err := formatNodes(Violation(v).Nodes())
		if err != nil {
			return "", err
		}
		data := maps.Clone(v)
		data["elements"] = elements
		if err := tmpl.Execute(&b, data); err != nil {
			return "", fmt.Errorf("rendering violation report: %w", err)
		}
	}
	return b.String(), nil
}

// formatNodes renders the enumerated per-node detail block: the joined
// target selectors, the source snippet with embedded newlines stripped,
// and the flattened check messages.
func formatNodes(nodes []Node) (string, error) {
	var b strings.Builder
	for i, n := range nodes {
		if _, ok := n["target"]; !ok {
			return "", &KeyError{Key: "target"}
		}
		if _, ok := n["html"]; !ok {
			return "", &KeyError{Key: "html"}
		}
		fmt.Fprintf(&b, "\n\n\t%d)\tTarget: %s", i+1, strings.Join(n.Targets(), ", "))
		fmt.Fprintf(&b, "\n\t\tSnippet: %s", strings.ReplaceAll(n.HTML(), "\n", ""))
		b.WriteString("\n\t\tMessages:")
		for _, msg := range n.Messages() {
			fmt.Fprintf(&b, "\n\t\t* %s", msg)
		}
	}
	return b.String(), nil
}
