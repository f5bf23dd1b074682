package engine

import (
	"context"
	"time"

	"github.com/develo3899/TrendTracker/pkg/ai"
	"github.com/develo3899/TrendTracker/pkg/apperr"
	"github.com/develo3899/TrendTracker/pkg/config"
	"github.com/develo3899/TrendTracker/pkg/logger"
	"github.com/develo3899/TrendTracker/pkg/model"
	"github.com/develo3899/TrendTracker/pkg/news"
	"github.com/develo3899/TrendTracker/pkg/repository"
	"github.com/develo3899/TrendTracker/pkg/search/factory"
	"github.com/develo3899/TrendTracker/pkg/searchkey"
	"github.com/develo3899/TrendTracker/pkg/trends"
)

// Engine 검색 한 건의 전체 파이프라인(검색 → 요약 → 인사이트 → 저장)을 조율한다.
// 모든 협력 서비스는 생성 시 주입되며 프로세스 전역 상태를 두지 않는다.
type Engine struct {
	cfg   *config.Config
	repo  *repository.Repository
	newsS *news.Service
	aiS   *ai.Service
}

// NewEngine 엔진 인스턴스를 만든다.
func NewEngine(ctx context.Context, cfg *config.Config, repo *repository.Repository) (*Engine, error) {
	searcher, err := factory.NewSearcher(cfg)
	if err != nil {
		return nil, err
	}

	aiS, err := ai.NewService(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// RSS 제공자는 본문을 이미 포함하는 경우가 많아 스니펫 보강은 API 제공자에서만 켠다.
	enrich := cfg.Search.Provider != "rss"
	newsS := news.NewService(searcher, cfg.SearchDomains, enrich)

	return &Engine{
		cfg:   cfg,
		repo:  repo,
		newsS: newsS,
		aiS:   aiS,
	}, nil
}

// NewEngineWithServices 테스트용 생성자
func NewEngineWithServices(cfg *config.Config, repo *repository.Repository, newsS *news.Service, aiS *ai.Service) *Engine {
	return &Engine{cfg: cfg, repo: repo, newsS: newsS, aiS: aiS}
}

// RunOptions 실행 옵션
type RunOptions struct {
	NumResults  int  // 0이면 설정값 사용
	SkipInsight bool // 인사이트 생성 생략
}

// Run 키워드 하나에 대한 검색 파이프라인을 실행하고 결과를 저장한다.
// 요약 실패는 전체 실패로 전파되고, 인사이트 실패는 본문에 오류 문구로만 남는다.
// 저장 실패 시에도 화면 표시는 가능하도록 조립된 결과와 StorageFailure 오류를 함께 돌려준다.
func (e *Engine) Run(ctx context.Context, keyword string) (*model.SearchResult, error) {
	return e.RunWithOptions(ctx, keyword, RunOptions{})
}

// RunWithOptions 옵션을 적용해 파이프라인을 실행한다.
func (e *Engine) RunWithOptions(ctx context.Context, keyword string, opts RunOptions) (*model.SearchResult, error) {
	if keyword == "" {
		return nil, apperr.New(apperr.InvalidInput, "키워드를 입력해주세요")
	}

	numResults := opts.NumResults
	if numResults <= 0 {
		numResults = e.cfg.NumResults
	}

	now := time.Now()
	key := searchkey.Generate(keyword, now)
	logger.Log.Infof("검색 시작 [%s] (키: %s)", keyword, key)

	articles, err := e.newsS.SearchNews(ctx, keyword, numResults)
	if err != nil {
		return nil, err
	}
	logger.Log.Infof("기사 %d건 수집 [%s]", len(articles), keyword)

	// AI 요약: 실패하면 전체 실행 실패
	inputs := make([]ai.ArticleInput, 0, len(articles))
	for _, a := range articles {
		inputs = append(inputs, ai.ArticleInput{Title: a.Title, Snippet: a.Snippet})
	}
	summary, err := e.aiS.Summarize(ctx, inputs)
	if err != nil {
		return nil, err
	}

	// AI 인사이트: 실패해도 오류 문구가 본문에 들어갈 뿐 실행은 계속된다
	var insights string
	if !opts.SkipInsight {
		insights = e.aiS.Insights(ctx, keyword)
	}

	result := &model.SearchResult{
		SearchKey:  key,
		SearchTime: now,
		Keyword:    keyword,
		Articles:   articles,
		AISummary:  summary,
		AIInsights: insights,
		TrendsURL:  trends.URL(keyword),
	}

	if ok := e.repo.Save(result); !ok {
		// 조립된 결과는 돌려주되 저장 실패는 알린다
		return result, apperr.New(apperr.StorageFailure, "검색 기록 저장 실패")
	}
	logger.Log.Infof("검색 결과 저장 완료 (키: %s, 행 %d개)", key, len(result.ToRows()))

	return result, nil
}
