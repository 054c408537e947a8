// Package projectconfig provides the ProjectConfig struct and loader for
// .metadoc.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// Default values for project configuration. These are the single source of
// truth; New() references them and no other code should duplicate them.
const (
	DefaultDecisionsDir  = "docs/decisions"
	DefaultChecklistFile = "compliance.yaml"

	DefaultReviewAfterDays = 180

	DefaultLintWorkers = 4

	DefaultServerPort = 3000

	DefaultExportOutput = "decision-log.tar.gz"
)

// PathsConfig holds workspace-relative paths for decisions, the compliance
// checklist, and custom record templates.
type PathsConfig struct {
	Decisions string `yaml:"decisions,omitempty"`
	Checklist string `yaml:"checklist,omitempty"`
	Templates string `yaml:"templates,omitempty"`
}

// NewConfig holds defaults applied when creating records with `metadoc new`.
type NewConfig struct {
	Author          string   `yaml:"author,omitempty"`
	Tags            []string `yaml:"tags,omitempty"`
	ReviewAfterDays int      `yaml:"review_after_days,omitempty"`
}

// RuleConfig holds the per-rule lint settings. Enabled defaults to true;
// any other keys under the rule are free-form options decoded on demand.
type RuleConfig struct {
	Enabled *bool          `yaml:"enabled,omitempty"`
	Options map[string]any `yaml:",inline"`
}

// LintConfig holds lint execution settings and per-rule overrides.
type LintConfig struct {
	Workers int                   `yaml:"workers,omitempty"`
	Rules   map[string]RuleConfig `yaml:"rules,omitempty"`
}

// ServerConfig holds dashboard server settings.
type ServerConfig struct {
	Port      int   `yaml:"port,omitempty"`
	NoBrowser *bool `yaml:"no_browser,omitempty"`
}

// ExportConfig holds export bundle settings.
type ExportConfig struct {
	Output string `yaml:"output,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .metadoc.yaml.
type ProjectConfig struct {
	Paths  PathsConfig  `yaml:"paths,omitempty"`
	New    NewConfig    `yaml:"new,omitempty"`
	Lint   LintConfig   `yaml:"lint,omitempty"`
	Server ServerConfig `yaml:"server,omitempty"`
	Export ExportConfig `yaml:"export,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Paths: PathsConfig{
			Decisions: DefaultDecisionsDir,
			Checklist: DefaultChecklistFile,
			Templates: "",
		},
		New: NewConfig{
			Author:          "",
			Tags:            nil,
			ReviewAfterDays: DefaultReviewAfterDays,
		},
		Lint: LintConfig{
			Workers: DefaultLintWorkers,
		},
		Server: ServerConfig{
			Port:      DefaultServerPort,
			NoBrowser: boolPtr(false),
		},
		Export: ExportConfig{
			Output: DefaultExportOutput,
		},
	}
}

// Load finds .metadoc.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading .metadoc.yaml: %w", err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing .metadoc.yaml: %w", err)
	}

	// Merge file values onto defaults.
	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// RuleEnabled reports whether the named lint rule is enabled. Rules are on
// unless the config explicitly disables them.
func (c LintConfig) RuleEnabled(name string) bool {
	rule, ok := c.Rules[name]
	if !ok || rule.Enabled == nil {
		return true
	}
	return *rule.Enabled
}

// RuleOptions decodes the free-form option map for the named rule into opts.
// An absent rule or an empty option map leaves opts untouched.
func (c LintConfig) RuleOptions(name string, opts any) error {
	rule, ok := c.Rules[name]
	if !ok || len(rule.Options) == 0 {
		return nil
	}
	if err := mapstructure.Decode(rule.Options, opts); err != nil {
		return fmt.Errorf("lint rule %q options: %w", name, err)
	}
	return nil
}

// findConfigFile walks up from dir looking for .metadoc.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found. Propagates real I/O
// errors (e.g. permission denied) instead of silently swallowing them.
func findConfigFile(dir string) ([]byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ".metadoc.yaml")
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Paths
	if src.Paths.Decisions != "" {
		dst.Paths.Decisions = src.Paths.Decisions
	}
	if src.Paths.Checklist != "" {
		dst.Paths.Checklist = src.Paths.Checklist
	}
	if src.Paths.Templates != "" {
		dst.Paths.Templates = src.Paths.Templates
	}

	// New
	if src.New.Author != "" {
		dst.New.Author = src.New.Author
	}
	if src.New.Tags != nil {
		dst.New.Tags = src.New.Tags
	}
	if src.New.ReviewAfterDays != 0 {
		dst.New.ReviewAfterDays = src.New.ReviewAfterDays
	}

	// Lint
	if src.Lint.Workers != 0 {
		dst.Lint.Workers = src.Lint.Workers
	}
	if src.Lint.Rules != nil {
		dst.Lint.Rules = src.Lint.Rules
	}

	// Server
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.NoBrowser != nil {
		dst.Server.NoBrowser = src.Server.NoBrowser
	}

	// Export
	if src.Export.Output != "" {
		dst.Export.Output = src.Export.Output
	}
}

func boolPtr(b bool) *bool {
	return &b
}
