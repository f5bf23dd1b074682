package news

import (
	"context"
	"sort"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/develo3899/TrendTracker/pkg/apperr"
	"github.com/develo3899/TrendTracker/pkg/logger"
	"github.com/develo3899/TrendTracker/pkg/model"
	"github.com/develo3899/TrendTracker/pkg/search"
)

const (
	// noTitle / noDate 검색 API가 해당 필드를 주지 않았을 때 쓰는 대체 문구
	noTitle = "제목 없음"
	noDate  = "날짜 정보 없음"

	// snippetMinRunes 이보다 짧은 스니펫은 원문 본문으로 보강을 시도한다.
	snippetMinRunes = 200
	// snippetMaxRunes 보강된 본문의 상한
	snippetMaxRunes = 1000

	fetchTimeout = 15 * time.Second
)

// Service 뉴스 검색 서비스. 검색 클라이언트를 주입받아 재시도, 최신순 정렬,
// 누락 필드 보정을 수행한다.
type Service struct {
	searcher search.Searcher
	domains  []string
	// enrich가 true면 짧은 스니펫을 기사 원문에서 추출해 보강한다.
	enrich bool
}

// NewService 뉴스 검색 서비스를 만든다.
func NewService(searcher search.Searcher, domains []string, enrich bool) *Service {
	return &Service{
		searcher: searcher,
		domains:  domains,
		enrich:   enrich,
	}
}

// SearchNews 키워드로 뉴스를 검색해 최신순 상위 numResults건을 돌려준다.
// 일시적 네트워크 오류에 한해 1회 재시도한다.
func (s *Service) SearchNews(ctx context.Context, keyword string, numResults int) ([]model.Article, error) {
	if numResults <= 0 {
		numResults = 5
	}

	// 최신순 정렬 후 상위만 취하기 위해 여유 있게 요청한다.
	maxToFetch := numResults * 3
	if maxToFetch < 20 {
		maxToFetch = 20
	}

	req := &search.Request{
		Query:          keyword,
		Topic:          "news",
		MaxResults:     maxToFetch,
		IncludeDomains: s.domains,
	}

	const retries = 1
	var resp *search.Response
	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		resp, err = s.searcher.Search(ctx, req)
		if err == nil {
			break
		}
		if apperr.IsKind(err, apperr.NetworkFailure) && attempt < retries {
			logger.Log.Warnf("뉴스 검색 네트워크 오류, 재시도: %v", err)
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return nil, apperr.Wrap(apperr.NetworkFailure, "검색이 취소되었습니다", ctx.Err())
			}
			continue
		}
		return nil, err
	}

	if resp == nil || len(resp.Results) == 0 {
		return nil, nil
	}

	// published_date 내림차순(최신순) 정렬. 날짜 없는 항목은 뒤로 보낸다.
	results := make([]search.Result, len(resp.Results))
	copy(results, resp.Results)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].PublishedDate > results[j].PublishedDate
	})

	if len(results) > numResults {
		results = results[:numResults]
	}

	articles := make([]model.Article, 0, len(results))
	for _, item := range results {
		title := item.Title
		if title == "" {
			title = noTitle
		}
		pubDate := item.PublishedDate
		if pubDate == "" {
			pubDate = noDate
		}

		snippet := item.Content
		if s.enrich && len([]rune(snippet)) < snippetMinRunes && item.URL != "" {
			if fetched, ferr := fetchAndCleanContent(item.URL); ferr == nil && len(fetched) > len(snippet) {
				snippet = fetched
			}
		}
		if r := []rune(snippet); len(r) > snippetMaxRunes {
			snippet = string(r[:snippetMaxRunes])
		}

		articles = append(articles, model.Article{
			Title:   title,
			URL:     item.URL,
			Snippet: snippet,
			PubDate: pubDate,
		})
	}

	return articles, nil
}

// fetchAndCleanContent 기사 원문을 받아 본문 텍스트만 추출한다.
func fetchAndCleanContent(url string) (string, error) {
	article, err := readability.FromURL(url, fetchTimeout)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}
