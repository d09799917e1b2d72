// Package config reads policygen settings files. A settings file may be JSON
// or YAML and carries prefilled answers plus rendering preferences; command
// line flags override whatever it sets.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-policygen/pkg/answers"
)

// Settings is the decoded settings file.
type Settings struct {
	// Answers prefill the record, keyed by question field.
	Answers map[string]string `json:"answers" yaml:"answers"`
	// Theme and Variant select the go-theme manifest for link colours.
	Theme   string `json:"theme" yaml:"theme"`
	Variant string `json:"variant" yaml:"variant"`
	// LinkColor overrides the theme colour when set.
	LinkColor string `json:"linkColor" yaml:"linkColor"`
	// Sanitize strips markup from answers before rendering. Nil means unset.
	Sanitize *bool `json:"sanitize" yaml:"sanitize"`
	// Policies restricts rendering to these template ids.
	Policies []string `json:"policies" yaml:"policies"`
	// Output is the export directory.
	Output string `json:"output" yaml:"output"`
}

// Load reads and parses the settings file at path.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes settings from JSON, falling back to YAML.
func Parse(data []byte, source string) (Settings, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Settings{}, fmt.Errorf("config: file %s is empty", source)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		s = Settings{}
		if yerr := yaml.Unmarshal(data, &s); yerr != nil {
			return Settings{}, fmt.Errorf("config: parse %s: invalid JSON or YAML: %w", source, yerr)
		}
	}
	return s.normalise(), nil
}

func (s Settings) normalise() Settings {
	s.Theme = strings.TrimSpace(s.Theme)
	s.Variant = strings.TrimSpace(s.Variant)
	s.LinkColor = strings.TrimSpace(s.LinkColor)
	s.Output = strings.TrimSpace(s.Output)

	if len(s.Policies) > 0 {
		policies := make([]string, 0, len(s.Policies))
		for _, id := range s.Policies {
			if id = strings.TrimSpace(id); id != "" {
				policies = append(policies, id)
			}
		}
		s.Policies = policies
	}
	return s
}

// Record returns the prefilled answers with derived fields applied.
func (s Settings) Record() answers.Record {
	return answers.Derive(answers.FromMap(s.Answers))
}

// SanitizeOr returns the sanitize preference, or fallback when unset.
func (s Settings) SanitizeOr(fallback bool) bool {
	if s.Sanitize == nil {
		return fallback
	}
	return *s.Sanitize
}
