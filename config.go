package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	defaultInputPath = "tickets.csv"
	defaultOutputDir = "outputs"
)

type CategoryConfig struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Config carries the audit settings. Everything has a built-in default,
// so a missing config file still yields a complete run.
type Config struct {
	InputPath        string           `yaml:"input_path"`
	OutputDir        string           `yaml:"output_dir"`
	MinMessageLength int              `yaml:"min_message_length"`
	PunctuationMarks []string         `yaml:"punctuation_marks"`
	Categories       []CategoryConfig `yaml:"categories"`
}

func defaultConfig() Config {
	rules := defaultFlagRules()
	cfg := Config{
		InputPath:        defaultInputPath,
		OutputDir:        defaultOutputDir,
		MinMessageLength: rules.MinMessageLength,
		PunctuationMarks: rules.PunctuationMarks,
	}
	for _, rule := range defaultIssueRules() {
		cfg.Categories = append(cfg.Categories, CategoryConfig{Label: rule.Label, Keywords: rule.Keywords})
	}
	return cfg
}

// loadAuditConfig reads the optional YAML config and applies env-var
// overrides on top. A missing file is not an error; a malformed one is.
func loadAuditConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if data, err := os.ReadFile(path); err == nil {
		var overlay Config
		if err := yaml.Unmarshal(data, &overlay); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
		applyOverlay(&cfg, overlay)
	} else if !os.IsNotExist(err) {
		return Config{}, err
	}

	envOverride(&cfg.InputPath, "TICKET_AUDIT_INPUT")
	envOverride(&cfg.OutputDir, "TICKET_AUDIT_OUTPUT")
	envOverrideInt(&cfg.MinMessageLength, "TICKET_AUDIT_MIN_MESSAGE_LENGTH")

	return cfg, nil
}

func applyOverlay(cfg *Config, overlay Config) {
	if overlay.InputPath != "" {
		cfg.InputPath = overlay.InputPath
	}
	if overlay.OutputDir != "" {
		cfg.OutputDir = overlay.OutputDir
	}
	if overlay.MinMessageLength > 0 {
		cfg.MinMessageLength = overlay.MinMessageLength
	}
	if len(overlay.PunctuationMarks) > 0 {
		cfg.PunctuationMarks = overlay.PunctuationMarks
	}
	if len(overlay.Categories) > 0 {
		cfg.Categories = overlay.Categories
	}
}

func envOverride(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

func envOverrideInt(target *int, key string) {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

func (c Config) issueRules() []issueRule {
	rules := make([]issueRule, 0, len(c.Categories))
	for _, category := range c.Categories {
		rules = append(rules, issueRule{Label: category.Label, Keywords: category.Keywords})
	}
	return rules
}

func (c Config) flagRules() flagRules {
	return flagRules{
		MinMessageLength: c.MinMessageLength,
		PunctuationMarks: c.PunctuationMarks,
	}
}
