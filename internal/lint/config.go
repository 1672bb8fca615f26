package lint

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-book/pkg/interfaces"
)

// RuleSetting toggles a rule and optionally overrides its severity.
type RuleSetting struct {
	Enabled  *bool  `yaml:"enabled"`
	Severity string `yaml:"severity"`
}

// Config controls which rules run and how strict they are. The zero value is
// not useful; start from DefaultConfig or LoadConfig.
type Config struct {
	// Languages lists the tracked snippet languages, normally ruby and python.
	Languages []string `yaml:"languages"`
	// AllowedTags lists the language tags fences may carry.
	AllowedTags []string `yaml:"allowed_tags"`
	// Rules holds per-rule overrides keyed by rule ID.
	Rules map[string]RuleSetting `yaml:"rules"`
}

// DefaultConfig returns the rule set used when no YAML file is supplied.
func DefaultConfig() Config {
	return Config{
		Languages:   []string{"ruby", "python"},
		AllowedTags: []string{"ruby", "python", "text", "console", "bash"},
		Rules:       map[string]RuleSetting{},
	}
}

// LoadConfig reads a YAML rule configuration and merges it over the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("lint config read %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("lint config parse %s: %w", path, err)
	}
	if cfg.Rules == nil {
		cfg.Rules = map[string]RuleSetting{}
	}
	return cfg, nil
}

func (c Config) ruleEnabled(id string) bool {
	setting, ok := c.Rules[id]
	if !ok || setting.Enabled == nil {
		return true
	}
	return *setting.Enabled
}

func (c Config) ruleSeverity(id string, fallback interfaces.Severity) interfaces.Severity {
	setting, ok := c.Rules[id]
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(setting.Severity)) {
	case string(interfaces.SeverityError):
		return interfaces.SeverityError
	case string(interfaces.SeverityWarning):
		return interfaces.SeverityWarning
	default:
		return fallback
	}
}
