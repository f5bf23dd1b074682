package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/develo3899/TrendTracker/pkg/apperr"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
llm:
  base_url: "https://llm.example/v1/"
  api_key: "llm-key"
  model: "test-model"
search:
  provider: "tavily"
  tavily:
    api_key: "tvly-key"
search_domains:
  - "news.naver.com"
num_results: 7
csv_path: "custom/history.csv"
log:
  level: "debug"
concurrency:
  qps: 2
  rpm: 30
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.LLM.Model != "test-model" || cfg.LLM.APIKey != "llm-key" {
		t.Errorf("LLM 설정 불일치: %+v", cfg.LLM)
	}
	if cfg.Search.Tavily.APIKey != "tvly-key" {
		t.Errorf("Tavily 키 = %q", cfg.Search.Tavily.APIKey)
	}
	if cfg.NumResults != 7 {
		t.Errorf("NumResults = %d, want 7", cfg.NumResults)
	}
	if cfg.CSVPath != "custom/history.csv" {
		t.Errorf("CSVPath = %q", cfg.CSVPath)
	}
	if len(cfg.SearchDomains) != 1 || cfg.SearchDomains[0] != "news.naver.com" {
		t.Errorf("SearchDomains = %v", cfg.SearchDomains)
	}
	if cfg.Concurrency.QPS != 2 || cfg.Concurrency.RPM != 30 {
		t.Errorf("Concurrency = %+v", cfg.Concurrency)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
llm:
  api_key: "llm-key"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.CSVPath != "data/search_history.csv" {
		t.Errorf("기본 CSVPath = %q", cfg.CSVPath)
	}
	if cfg.NumResults != 5 {
		t.Errorf("기본 NumResults = %d, want 5", cfg.NumResults)
	}
	if cfg.Concurrency.QPS != 1 || cfg.Concurrency.RPM != 10 {
		t.Errorf("기본 Concurrency = %+v", cfg.Concurrency)
	}
	if cfg.LLM.Model != "gemini-2.5-flash" {
		t.Errorf("기본 모델 = %q", cfg.LLM.Model)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "없는파일.yaml")); err == nil {
		t.Fatal("LoadConfig() error = nil, want error")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfig(t, "llm: [깨진: yaml")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig() error = nil, want error")
	}
}

func TestValidateCollectsAllMissing(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	err := cfg.Validate()
	if !apperr.IsKind(err, apperr.MissingCredential) {
		t.Fatalf("err = %v, want missing_credential", err)
	}

	// 누락 항목은 한 번에 모두 보고한다
	msg := err.Error()
	for _, field := range []string{"search.tavily.api_key", "llm.api_key"} {
		if !strings.Contains(msg, field) {
			t.Errorf("오류 메시지에 %q가 없음: %q", field, msg)
		}
	}
}

func TestValidatePerProvider(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantMissing string
	}{
		{
			name:        "searxng는 base_url 필수",
			mutate:      func(c *Config) { c.Search.Provider = "searxng" },
			wantMissing: "search.searxng.base_url",
		},
		{
			name:        "rss는 피드 필수",
			mutate:      func(c *Config) { c.Search.Provider = "rss" },
			wantMissing: "search.rss.feeds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{LLM: LLMConfig{APIKey: "llm-key"}}
			cfg.applyDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantMissing) {
				t.Errorf("오류 메시지에 %q가 없음: %v", tt.wantMissing, err)
			}
		})
	}
}

func TestValidateOK(t *testing.T) {
	cfg := &Config{
		LLM:    LLMConfig{APIKey: "llm-key"},
		Search: SearchConfig{Provider: "tavily", Tavily: TavilyConfig{APIKey: "tvly-key"}},
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}
