package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/egoistcookie/playWright/internal/document"
	"github.com/egoistcookie/playWright/internal/fetcher"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	t.Setenv("NOTES_CACHE_DIR", "")
	t.Setenv("NOTES_EXPORT_DIR", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Title != document.DefaultTitle {
		t.Errorf("title = %q", cfg.Title)
	}
	if cfg.SimilarityThreshold != 0.90 {
		t.Errorf("similarity_threshold = %v", cfg.SimilarityThreshold)
	}
	if cfg.MinContentLength != 5 || cfg.MinBlockLength != 10 {
		t.Errorf("lengths = %d / %d", cfg.MinContentLength, cfg.MinBlockLength)
	}
	if cfg.SystemKeywordCutoff != 3 || cfg.FallbackLimit != 10000 {
		t.Errorf("cutoff = %d, fallback = %d", cfg.SystemKeywordCutoff, cfg.FallbackLimit)
	}
	if cfg.CacheDir != DefaultCacheDir || cfg.ExportDir != DefaultExportDir {
		t.Errorf("dirs = %q / %q", cfg.CacheDir, cfg.ExportDir)
	}
	if cfg.FetchMode != string(fetcher.ModeAuto) {
		t.Errorf("fetch_mode = %q", cfg.FetchMode)
	}
	if len(cfg.NavigationKeywords) == 0 || len(cfg.NoiseKeywords) == 0 || len(cfg.SystemKeywords) == 0 {
		t.Error("keyword lists should default to the built-in vocabularies")
	}
}

func TestLoad_File(t *testing.T) {
	t.Setenv("NOTES_CACHE_DIR", "")
	t.Setenv("NOTES_EXPORT_DIR", "")
	path := writeConfig(t, `
title: My Diary
similarity_threshold: 0.8
min_content_length: 3
navigation_keywords: [菜单, 首页]
fetch_mode: markdown
export_dir: out
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Title != "My Diary" || cfg.SimilarityThreshold != 0.8 || cfg.MinContentLength != 3 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if len(cfg.NavigationKeywords) != 2 || cfg.NavigationKeywords[0] != "菜单" {
		t.Errorf("navigation keywords = %v", cfg.NavigationKeywords)
	}
	if cfg.ExportDir != "out" || cfg.FetchMode != "markdown" {
		t.Errorf("export_dir = %q, fetch_mode = %q", cfg.ExportDir, cfg.FetchMode)
	}

	rules := cfg.Rules()
	if rules.Title != "My Diary" || rules.MinContentLen != 3 || rules.SimilarityThreshold != 0.8 {
		t.Errorf("rules = %+v", rules)
	}

	validity := cfg.ValidityRules()
	if validity.MinLength != 10 || validity.KeywordCutoff != 3 {
		t.Errorf("validity rules = %+v", validity)
	}
}

func TestLoad_ExplicitZeroIsKept(t *testing.T) {
	t.Setenv("NOTES_CACHE_DIR", "")
	t.Setenv("NOTES_EXPORT_DIR", "")
	path := writeConfig(t, "min_content_length: 0\nmin_block_length: 0\nsystem_keyword_cutoff: 0\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MinContentLength != 0 || cfg.MinBlockLength != 0 || cfg.SystemKeywordCutoff != 0 {
		t.Errorf("explicit zeros replaced: content=%d block=%d cutoff=%d",
			cfg.MinContentLength, cfg.MinBlockLength, cfg.SystemKeywordCutoff)
	}
	if rules := cfg.Rules(); rules.MinContentLen != 0 {
		t.Errorf("rules.MinContentLen = %d", rules.MinContentLen)
	}
	if v := cfg.ValidityRules(); v.MinLength != 0 || v.KeywordCutoff != 0 {
		t.Errorf("validity rules = %+v", v)
	}
}

func TestLoad_ZeroThresholdRejected(t *testing.T) {
	if _, err := Load(writeConfig(t, "similarity_threshold: 0\n")); err == nil {
		t.Error("expected error for explicit zero similarity_threshold")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("NOTES_CACHE_DIR", "/tmp/cache")
	t.Setenv("NOTES_EXPORT_DIR", "/tmp/exports")
	path := writeConfig(t, "cache_dir: ignored\nexport_dir: ignored\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CacheDir != "/tmp/cache" || cfg.ExportDir != "/tmp/exports" {
		t.Errorf("dirs = %q / %q", cfg.CacheDir, cfg.ExportDir)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"threshold above one", "similarity_threshold: 1.5\n"},
		{"negative threshold", "similarity_threshold: -0.1\n"},
		{"negative min content", "min_content_length: -1\n"},
		{"negative fallback", "fallback_limit: -5\n"},
		{"unknown mode", "fetch_mode: telepathy\n"},
		{"bad yaml", "title: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
