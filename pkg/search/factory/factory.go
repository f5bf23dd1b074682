package factory

import (
	"github.com/develo3899/TrendTracker/pkg/apperr"
	"github.com/develo3899/TrendTracker/pkg/config"
	"github.com/develo3899/TrendTracker/pkg/rss"
	"github.com/develo3899/TrendTracker/pkg/search"
	"github.com/develo3899/TrendTracker/pkg/searxng"
	"github.com/develo3899/TrendTracker/pkg/tavily"
)

// NewSearcher 설정에 따라 검색 클라이언트를 만든다.
func NewSearcher(cfg *config.Config) (search.Searcher, error) {
	provider := cfg.Search.Provider
	if provider == "" {
		// 기본 동작: tavily 키가 있으면 tavily를 사용한다.
		if cfg.Search.Tavily.APIKey != "" {
			provider = "tavily"
		} else {
			return nil, apperr.New(apperr.MissingCredential, "검색 제공자가 설정되지 않았습니다")
		}
	}

	switch provider {
	case "tavily":
		if cfg.Search.Tavily.APIKey == "" {
			return nil, apperr.New(apperr.MissingCredential, "tavily api key가 없습니다")
		}
		return tavily.NewClient(cfg.Search.Tavily.APIKey), nil

	case "searxng":
		if cfg.Search.SearXNG.BaseURL == "" {
			return nil, apperr.New(apperr.MissingCredential, "searxng base url이 없습니다")
		}
		return searxng.NewClient(cfg.Search.SearXNG.BaseURL, cfg.Search.SearXNG.Timeout), nil

	case "rss":
		if len(cfg.Search.RSS.Feeds) == 0 {
			return nil, apperr.New(apperr.MissingCredential, "rss 피드 목록이 없습니다")
		}
		return rss.NewClient(cfg.Search.RSS.Feeds, cfg.Search.RSS.Timeout), nil

	default:
		return nil, apperr.Newf(apperr.InvalidInput, "알 수 없는 검색 제공자: %s", provider)
	}
}
