package docastest

import (
	"context"
	"fmt"

	"github.com/viant/afs/storage"
	"github.com/viant/docastest/service/meta"
	"github.com/viant/docastest/service/naming"
)

const (
	// DefaultDocsRoot is the documentation root used when none is configured.
	DefaultDocsRoot = "./docs"
	// DefaultExtension is the artifact extension used when none is configured.
	DefaultExtension = "adoc"
)

// Config is a serialisable representation of the approval setup. It can be
// populated from YAML or JSON; see LoadConfig.
type Config struct {
	DocsRoot  string     `json:"docsRoot" yaml:"docsRoot"`
	Extension string     `json:"extension" yaml:"extension"`
	Separator string     `json:"separator" yaml:"separator"`
	Diff      DiffConfig `json:"diff" yaml:"diff"`
}

// DiffConfig controls the unified diff attached to mismatch reports.
type DiffConfig struct {
	Unified bool `json:"unified" yaml:"unified"`
	Context int  `json:"context" yaml:"context"`
}

// DefaultConfig returns the documented defaults: ./docs, adoc, "::" and a
// unified diff with three lines of context.
func DefaultConfig() *Config {
	return &Config{
		DocsRoot:  DefaultDocsRoot,
		Extension: DefaultExtension,
		Separator: naming.DefaultSeparator,
		Diff: DiffConfig{
			Unified: true,
			Context: 3,
		},
	}
}

// Validate returns an error describing the first invalid setting or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.DocsRoot == "" {
		return fmt.Errorf("docsRoot must not be empty")
	}
	if c.Extension == "" {
		return fmt.Errorf("extension must not be empty")
	}
	if c.Separator == "" || c.Separator == "/" {
		return fmt.Errorf("separator must be non-empty and differ from '/'")
	}
	if c.Diff.Context < 0 {
		return fmt.Errorf("diff.context must be >= 0")
	}
	return nil
}

// Scheme returns the artifact layout described by c.
func (c *Config) Scheme() naming.Scheme {
	return naming.Scheme{Root: c.DocsRoot, Extension: c.Extension, Separator: c.Separator}
}

// LoadConfig reads the YAML or JSON document at URL over the defaults.
// ${env.KEY} expressions are expanded from the process environment.
// fsOptions are passed to afs, e.g. an *embed.FS for embed:// URLs.
func LoadConfig(ctx context.Context, URL string, fsOptions ...storage.Option) (*Config, error) {
	cfg := DefaultConfig()
	if err := meta.New(nil, nil, fsOptions...).Load(ctx, URL, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", URL, err)
	}
	return cfg, nil
}
