// Package config loads the run configuration from a YAML file and supplies
// defaults matching the tool's conventional directory layout.
package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config is the complete run configuration. Every field has a usable
// default; a missing config file is not an error.
type Config struct {
	// InputDir is the directory (or single file) holding dictionaries to
	// annotate.
	InputDir string `yaml:"input_dir"`
	// OutputDir receives annotated files, mirroring the input layout.
	OutputDir string `yaml:"output_dir"`
	// PinyinDir holds user pinyin override files.
	PinyinDir string `yaml:"pinyin_dir"`
	// AuxSepRegex matches the first character of an auxiliary tag.
	AuxSepRegex string `yaml:"aux_sep_regex"`
	// Patterns are doublestar globs selecting input files under InputDir.
	Patterns []string `yaml:"patterns"`
	// Workers bounds file-level concurrency.
	Workers int `yaml:"workers"`
	// ReviewDB is the sqlite file recording flagged lines; empty disables it.
	ReviewDB string `yaml:"review_db"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		InputDir:    "./input",
		OutputDir:   "./output",
		PinyinDir:   "./pinyin_data",
		AuxSepRegex: `[;\[]`,
		Patterns:    []string{"**/*.txt", "**/*.dict.yaml"},
		Workers:     4,
	}
}

// Load reads path over the defaults. A missing file returns the defaults
// unchanged; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration before a run.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if _, err := regexp.Compile(c.AuxSepRegex); err != nil {
		return fmt.Errorf("aux_sep_regex: %w", err)
	}
	if len(c.Patterns) == 0 {
		return fmt.Errorf("at least one input pattern is required")
	}
	return nil
}

// WriteDefault writes the default configuration to path, for users who want
// a starting point to edit.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
