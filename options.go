package axecheck

import "encoding/json"

// Context narrows a scan to part of the page: a single CSS selector, a list
// of selectors, or explicit include/exclude selector chains as understood
// by axe-core. The zero value means "scan the whole document" and emits no
// call argument. Values pass through to the page verbatim, unvalidated.
type Context struct {
	Selector  string
	Selectors []string
	Include   [][]string
	Exclude   [][]string
}

// Selector scans only the subtree matched by one CSS selector.
func Selector(sel string) *Context { return &Context{Selector: sel} }

// Selectors scans the subtrees matched by each of the given CSS selectors.
func Selectors(sels ...string) *Context { return &Context{Selectors: sels} }

func (c *Context) isZero() bool {
	return c == nil || (c.Selector == "" && len(c.Selectors) == 0 &&
		len(c.Include) == 0 && len(c.Exclude) == 0)
}

// MarshalJSON emits the axe context argument in whichever of the three
// accepted shapes matches the populated fields: string, array, or an
// include/exclude object. Selector wins over Selectors wins over
// Include/Exclude when more than one is set.
func (c *Context) MarshalJSON() ([]byte, error) {
	switch {
	case c.Selector != "":
		return json.Marshal(c.Selector)
	case len(c.Selectors) > 0:
		return json.Marshal(c.Selectors)
	default:
		obj := make(map[string][][]string, 2)
		if len(c.Include) > 0 {
			obj["include"] = c.Include
		}
		if len(c.Exclude) > 0 {
			obj["exclude"] = c.Exclude
		}
		return json.Marshal(obj)
	}
}

// RunOptions configures an axe.run call. Fields map one-to-one onto the
// axe-core options document; zero fields stay out of the serialized form,
// and a zero RunOptions emits no options argument at all.
type RunOptions struct {
	RunOnly       *RunOnly              `json:"runOnly,omitempty"`
	Rules         map[string]RuleOption `json:"rules,omitempty"`
	Reporter      string                `json:"reporter,omitempty"`
	ResultTypes   []string              `json:"resultTypes,omitempty"`
	Selectors     *bool                 `json:"selectors,omitempty"`
	Ancestry      *bool                 `json:"ancestry,omitempty"`
	XPath         *bool                 `json:"xpath,omitempty"`
	AbsolutePaths *bool                 `json:"absolutePaths,omitempty"`
	IFrames       *bool                 `json:"iframes,omitempty"`
	FrameWaitTime int                   `json:"frameWaitTime,omitempty"`
}

// RunOnly restricts a scan to rules selected by tag or by rule ID.
type RunOnly struct {
	Type   string   `json:"type"`
	Values []string `json:"values"`
}

// RuleOption enables or disables a single rule.
type RuleOption struct {
	Enabled bool `json:"enabled"`
}

// DefaultOptions returns the options applied when Run receives nil options:
// report violations only.
func DefaultOptions() *RunOptions {
	return &RunOptions{ResultTypes: []string{"violations"}}
}

func (o *RunOptions) isZero() bool {
	return o == nil || (o.RunOnly == nil && len(o.Rules) == 0 && o.Reporter == "" &&
		len(o.ResultTypes) == 0 && o.Selectors == nil && o.Ancestry == nil &&
		o.XPath == nil && o.AbsolutePaths == nil && o.IFrames == nil && o.FrameWaitTime == 0)
}
