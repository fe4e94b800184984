package axecheck

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"strings"
)

// DefaultSavePath is where Save writes when no path is given.
const DefaultSavePath = "results.json"

// resultCategories are the top-level keys an axe response carries besides
// violations. Save strips them, in this order, for violations-only output.
var resultCategories = []string{"inapplicable", "incomplete", "passes"}

// KeyError reports a field expected in the raw axe response but absent.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("axe results missing key %q", e.Key)
}

// Results is a read-only view over one raw axe response. Accessors never
// mutate the wrapped mapping; Save filters a copy.
type Results struct {
	raw map[string]any
}

// ParseResults decodes a raw JSON axe response.
func ParseResults(data []byte) (*Results, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding axe response: %w", err)
	}
	return &Results{raw: raw}, nil
}

// NewResults wraps an already-decoded axe response.
func NewResults(raw map[string]any) *Results {
	return &Results{raw: raw}
}

// Raw returns the wrapped response mapping. Callers must treat it as
// read-only.
func (r *Results) Raw() map[string]any { return r.raw }

// MarshalJSON serializes the wrapped response unchanged.
func (r *Results) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.raw)
}

// UnmarshalJSON replaces the wrapped response.
func (r *Results) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &r.raw)
}

// ViolationCount returns the number of violations in the response, zero
// when the violations key is absent.
func (r *Results) ViolationCount() int {
	return len(r.Violations())
}

// Violations returns the violation records in response order.
func (r *Results) Violations() []Violation {
	items, _ := r.raw["violations"].([]any)
	out := make([]Violation, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Violation(m))
		}
	}
	return out
}

// Snapshot renders one line per violation, `<id> (<impact>) : <node
// count>`, newline-joined in response order. Output is stable across runs
// against a stable page, so it suits exact-match snapshot assertions.
func (r *Results) Snapshot() (string, error) {
	violations, err := r.violationMaps()
	if err != nil {
		return "", err
	}
	lines := make([]string, 0, len(violations))
	for _, v := range violations {
		id, ok := v["id"]
		if !ok {
			return "", &KeyError{Key: "id"}
		}
		impact, ok := v["impact"]
		if !ok {
			return "", &KeyError{Key: "impact"}
		}
		nodesAny, ok := v["nodes"]
		if !ok {
			return "", &KeyError{Key: "nodes"}
		}
		nodes, ok := nodesAny.([]any)
		if !ok {
			return "", fmt.Errorf("axe results: nodes is %T, not a list", nodesAny)
		}
		lines = append(lines, fmt.Sprintf("%v (%v) : %d", id, impact, len(nodes)))
	}
	return strings.Join(lines, "\n"), nil
}

// Save writes the response as pretty-printed JSON to path, or to
// results.json in the current directory when path is empty. Existing files
// are overwritten and the write is not atomic. With violationsOnly the
// inapplicable, incomplete, and passes categories are removed from the
// written copy, failing with a *KeyError when one is absent; the wrapped
// response itself is never modified.
func (r *Results) Save(path string, violationsOnly bool) error {
	if path == "" {
		path = DefaultSavePath
	}
	out := r.raw
	if violationsOnly {
		out = maps.Clone(r.raw)
		for _, key := range resultCategories {
			if _, ok := out[key]; !ok {
				return &KeyError{Key: key}
			}
			delete(out, key)
		}
	}
	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding axe results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing axe results: %w", err)
	}
	return nil
}

// violationMaps returns the violations sequence, with a *KeyError when the
// key is absent.
func (r *Results) violationMaps() ([]map[string]any, error) {
	items, ok := r.raw["violations"]
	if !ok {
		return nil, &KeyError{Key: "violations"}
	}
	seq, ok := items.([]any)
	if !ok {
		return nil, fmt.Errorf("axe results: violations is %T, not a list", items)
	}
	out := make([]map[string]any, 0, len(seq))
	for _, item := range seq {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("axe results: violation entry is %T, not a mapping", item)
		}
		out = append(out, m)
	}
	return out, nil
}

// Violation is one rule violation record, a dynamic view over the raw
// mapping so unrecognized fields stay reachable.
type Violation map[string]any

// ID returns the rule identifier.
func (v Violation) ID() string { return stringField(v, "id") }

// Impact returns the severity label.
func (v Violation) Impact() string { return stringField(v, "impact") }

// Nodes returns the affected node records.
func (v Violation) Nodes() []Node {
	items, _ := v["nodes"].([]any)
	nodes := make([]Node, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			nodes = append(nodes, Node(m))
		}
	}
	return nodes
}

// Node is one affected DOM node record within a violation.
type Node map[string]any

// Targets returns the selector chain identifying the node.
func (n Node) Targets() []string {
	items, _ := n["target"].([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, fmt.Sprint(item))
	}
	return out
}

// HTML returns the node's source snippet.
func (n Node) HTML() string { return stringField(n, "html") }

// Messages returns the node's check messages flattened across the all,
// any, and none categories, in that order. Absent categories contribute
// nothing.
func (n Node) Messages() []string {
	var out []string
	for _, cat := range []string{"all", "any", "none"} {
		checks, _ := n[cat].([]any)
		for _, c := range checks {
			if m, ok := c.(map[string]any); ok {
				if msg, ok := m["message"].(string); ok {
					out = append(out, msg)
				}
			}
		}
	}
	return out
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
