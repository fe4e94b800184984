package mcp

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pinchtab/axecheck"
)

// ConfigFile is the optional per-project configuration file name.
const ConfigFile = ".axecheck.yaml"

// defaultNavTimeout bounds page navigation before a scan.
const defaultNavTimeout = 30 * time.Second

// Config controls the scan server. Every field has a working default, so a
// missing config file is not an error.
type Config struct {
	Browser BrowserConfig `yaml:"browser"`
	Scan    ScanConfig    `yaml:"scan"`
}

// BrowserConfig controls the managed browser session.
type BrowserConfig struct {
	// Headless defaults to true when unset.
	Headless *bool `yaml:"headless"`
	// NoSandbox disables the Chrome sandbox, needed in most containers.
	NoSandbox bool `yaml:"no_sandbox"`
	// RawNavTimeout is a Go duration string, e.g. "30s".
	RawNavTimeout string `yaml:"nav_timeout"`
}

// ScanConfig supplies default axe options applied to every scan.
type ScanConfig struct {
	// Tags restricts scans to rules carrying these axe tags.
	Tags []string `yaml:"tags"`
	// ResultTypes selects the result categories to report.
	ResultTypes []string `yaml:"result_types"`
	// Rules enables or disables individual rules by ID.
	Rules map[string]bool `yaml:"rules"`
}

// DefaultConfig returns the configuration used when no file is present:
// headless browser, 30s navigation timeout, engine-default scan options.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig reads .axecheck.yaml from dir, returning DefaultConfig when
// the file does not exist.
func LoadConfig(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ConfigFile, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFile, err)
	}
	return &cfg, nil
}

// IsHeadless reports whether the browser runs headless. Default true.
func (c *BrowserConfig) IsHeadless() bool {
	if c.Headless != nil {
		return *c.Headless
	}
	return true
}

// NavTimeout returns the navigation timeout, defaulting to 30s when the
// configured value is missing or unparseable.
func (c *BrowserConfig) NavTimeout() time.Duration {
	d, err := time.ParseDuration(c.RawNavTimeout)
	if err != nil || d <= 0 {
		return defaultNavTimeout
	}
	return d
}

// Options builds default scan options from the config. An empty scan
// section yields nil, which selects axecheck.DefaultOptions at run time.
func (c *ScanConfig) Options() *axecheck.RunOptions {
	if len(c.Tags) == 0 && len(c.ResultTypes) == 0 && len(c.Rules) == 0 {
		return nil
	}
	opts := &axecheck.RunOptions{}
	if len(c.Tags) > 0 {
		opts.RunOnly = &axecheck.RunOnly{Type: "tag", Values: c.Tags}
	}
	if len(c.ResultTypes) > 0 {
		opts.ResultTypes = c.ResultTypes
	}
	for id, enabled := range c.Rules {
		if opts.Rules == nil {
			opts.Rules = make(map[string]axecheck.RuleOption)
		}
		opts.Rules[id] = axecheck.RuleOption{Enabled: enabled}
	}
	return opts
}
