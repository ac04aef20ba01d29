// Package config loads site and page experience configuration from YAML
// and watches it for changes in dev mode.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vitrinehq/vitrine/pkg/domain"
)

// File is the on-disk configuration: one site-wide layer plus per-page
// overrides keyed by slug. Absent fields defer down the precedence chain.
type File struct {
	Site  domain.ExperienceConfig            `yaml:"site"`
	Pages map[string]domain.ExperienceConfig `yaml:"pages"`
}

// Load reads and parses a configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &f, nil
}

// Page returns the page-level configuration for slug, zero when the page
// has no overrides.
func (f *File) Page(slug string) domain.ExperienceConfig {
	if f.Pages == nil {
		return domain.ExperienceConfig{}
	}
	return f.Pages[slug]
}
