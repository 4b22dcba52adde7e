// Package config loads the YAML configuration holding the recovery
// heuristics and output locations.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/egoistcookie/playWright/internal/document"
	"github.com/egoistcookie/playWright/internal/fetcher"
	"github.com/egoistcookie/playWright/internal/parser"
	"github.com/egoistcookie/playWright/internal/pipeline"
	"github.com/egoistcookie/playWright/internal/text"
)

// Config holds all application configuration.
type Config struct {
	Title               string   `yaml:"title"`
	SimilarityThreshold float64  `yaml:"similarity_threshold"`
	MinContentLength    int      `yaml:"min_content_length"`
	MinBlockLength      int      `yaml:"min_block_length"`
	SystemKeywordCutoff int      `yaml:"system_keyword_cutoff"`
	FallbackLimit       int      `yaml:"fallback_limit"`
	NavigationKeywords  []string `yaml:"navigation_keywords"`
	NoiseKeywords       []string `yaml:"noise_keywords"`
	SystemKeywords      []string `yaml:"system_keywords"`
	CacheDir            string   `yaml:"cache_dir"`
	ExportDir           string   `yaml:"export_dir"`
	FetchMode           string   `yaml:"fetch_mode"`
}

// Defaults.
const (
	DefaultCacheDir  = ".notes-cache"
	DefaultExportDir = "笔记导出"
)

// Load reads configuration from a YAML file and applies defaults.
// An empty path yields the defaults (plus environment overrides).
//
// The file is decoded over Default(), so a key that is present keeps its
// value even when it is zero; absent keys keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	applyDefaults(cfg)
	applyEnvironmentOverrides(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Title:               document.DefaultTitle,
		SimilarityThreshold: text.DefaultSimilarityThreshold,
		MinContentLength:    parser.DefaultMinContentLen,
		MinBlockLength:      parser.DefaultMinBlockLen,
		SystemKeywordCutoff: text.DefaultValidityRules().KeywordCutoff,
		FallbackLimit:       document.DefaultFallbackLimit,
		NavigationKeywords:  text.DefaultNavigationKeywords,
		NoiseKeywords:       parser.DefaultNoiseKeywords,
		SystemKeywords:      text.DefaultSystemKeywords,
		CacheDir:            DefaultCacheDir,
		ExportDir:           DefaultExportDir,
		FetchMode:           string(fetcher.ModeAuto),
	}
}

// GetConfigPath returns the config file path from the environment, or ""
// when unset.
func GetConfigPath() string {
	return os.Getenv("NOTES_CONFIG")
}

// applyDefaults restores values that were explicitly set empty and have
// no meaningful empty form.
func applyDefaults(cfg *Config) {
	if cfg.Title == "" {
		cfg.Title = document.DefaultTitle
	}
	if cfg.FallbackLimit == 0 {
		cfg.FallbackLimit = document.DefaultFallbackLimit
	}
	if len(cfg.NavigationKeywords) == 0 {
		cfg.NavigationKeywords = text.DefaultNavigationKeywords
	}
	if len(cfg.NoiseKeywords) == 0 {
		cfg.NoiseKeywords = parser.DefaultNoiseKeywords
	}
	if len(cfg.SystemKeywords) == 0 {
		cfg.SystemKeywords = text.DefaultSystemKeywords
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = DefaultCacheDir
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = DefaultExportDir
	}
	if cfg.FetchMode == "" {
		cfg.FetchMode = string(fetcher.ModeAuto)
	}
}

func applyEnvironmentOverrides(cfg *Config) {
	if dir := os.Getenv("NOTES_CACHE_DIR"); dir != "" {
		cfg.CacheDir = dir
	}
	if dir := os.Getenv("NOTES_EXPORT_DIR"); dir != "" {
		cfg.ExportDir = dir
	}
}

func validate(cfg *Config) error {
	if cfg.SimilarityThreshold <= 0 || cfg.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold must be in (0, 1], got %v", cfg.SimilarityThreshold)
	}
	if cfg.MinContentLength < 0 {
		return errors.New("min_content_length must not be negative")
	}
	if cfg.MinBlockLength < 0 {
		return errors.New("min_block_length must not be negative")
	}
	if cfg.SystemKeywordCutoff < 0 {
		return errors.New("system_keyword_cutoff must not be negative")
	}
	if cfg.FallbackLimit < 0 {
		return errors.New("fallback_limit must not be negative")
	}
	if _, err := fetcher.ParseMode(cfg.FetchMode); err != nil {
		return fmt.Errorf("fetch_mode: %w", err)
	}
	return nil
}

// Rules returns the recovery rules described by cfg.
func (c *Config) Rules() pipeline.Rules {
	return pipeline.Rules{
		Title:               c.Title,
		SimilarityThreshold: c.SimilarityThreshold,
		MinContentLen:       c.MinContentLength,
		NavigationKeywords:  c.NavigationKeywords,
		NoiseKeywords:       c.NoiseKeywords,
	}
}

// ValidityRules returns the content validity thresholds described by cfg.
func (c *Config) ValidityRules() text.ValidityRules {
	r := text.DefaultValidityRules()
	r.MinLength = c.MinBlockLength
	r.KeywordCutoff = c.SystemKeywordCutoff
	r.SystemKeywords = c.SystemKeywords
	return r
}
