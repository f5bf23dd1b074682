package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/develo3899/TrendTracker/pkg/apperr"
)

// Config 프로젝트 설정 구조체
type Config struct {
	LLM           LLMConfig         `yaml:"llm"`
	Search        SearchConfig      `yaml:"search"`
	SearchDomains []string          `yaml:"search_domains"` // 비어 있으면 전체 도메인 검색
	NumResults    int               `yaml:"num_results"`
	CSVPath       string            `yaml:"csv_path"`
	Log           LogConfig         `yaml:"log"`
	Concurrency   ConcurrencyConfig `yaml:"concurrency"`
}

// LLMConfig LLM 관련 설정. base_url은 OpenAI 호환 엔드포인트를 가리킨다.
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// SearchConfig 검색 관련 설정
type SearchConfig struct {
	Provider string        `yaml:"provider"` // tavily / searxng / rss
	Tavily   TavilyConfig  `yaml:"tavily"`
	SearXNG  SearXNGConfig `yaml:"searxng"`
	RSS      RSSConfig     `yaml:"rss"`
}

// TavilyConfig Tavily 설정
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// SearXNGConfig SearXNG 설정
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// RSSConfig RSS 피드 검색 설정
type RSSConfig struct {
	Feeds   []string `yaml:"feeds"`
	Timeout int      `yaml:"timeout"`
}

// LogConfig 로그 관련 설정
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig LLM 호출 속도 제한 설정
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// LoadConfig 지정된 경로에서 설정을 읽는다.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.CSVPath == "" {
		c.CSVPath = "data/search_history.csv"
	}
	if c.NumResults <= 0 {
		c.NumResults = 5
	}
	if c.Concurrency.QPS <= 0 {
		c.Concurrency.QPS = 1
	}
	if c.Concurrency.RPM <= 0 {
		c.Concurrency.RPM = 10
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gemini-2.5-flash"
	}
}

// Validate 필수 자격 증명이 모두 설정되어 있는지 확인한다.
// 누락된 항목을 한 번에 모아 하나의 오류로 보고한다.
func (c *Config) Validate() error {
	var missing []string

	switch c.Search.Provider {
	case "", "tavily":
		if c.Search.Tavily.APIKey == "" {
			missing = append(missing, "search.tavily.api_key")
		}
	case "searxng":
		if c.Search.SearXNG.BaseURL == "" {
			missing = append(missing, "search.searxng.base_url")
		}
	case "rss":
		if len(c.Search.RSS.Feeds) == 0 {
			missing = append(missing, "search.rss.feeds")
		}
	}

	if c.LLM.APIKey == "" {
		missing = append(missing, "llm.api_key")
	}

	if len(missing) > 0 {
		return apperr.Newf(apperr.MissingCredential,
			"설정이 누락되었습니다: %s (configs/config.yaml 을 확인하세요. 발급 안내: Tavily https://tavily.com/ , LLM 게이트웨이 키는 운영 환경 가이드 참고)",
			strings.Join(missing, ", "))
	}
	return nil
}
