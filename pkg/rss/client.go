package rss

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/develo3899/TrendTracker/pkg/apperr"
	"github.com/develo3899/TrendTracker/pkg/logger"
	"github.com/develo3899/TrendTracker/pkg/search"
)

// Client 설정된 RSS 피드 목록을 키워드로 필터링하는 검색 클라이언트.
// 외부 검색 API 없이 동작하는 오프라인 친화적 대안이다.
type Client struct {
	feeds   []string
	timeout time.Duration
	parser  *gofeed.Parser
}

// NewClient 새 RSS 검색 클라이언트를 만든다. timeout 단위는 초.
func NewClient(feeds []string, timeout int) *Client {
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 30 * time.Second
	}
	return &Client{
		feeds:   feeds,
		timeout: t,
		parser:  gofeed.NewParser(),
	}
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// Search 모든 피드를 병렬로 읽어 제목/본문에 키워드가 포함된 항목만 돌려준다.
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	if len(c.feeds) == 0 {
		return nil, apperr.New(apperr.InvalidInput, "rss 피드가 설정되지 않았습니다")
	}

	fetchCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	type feedResult struct {
		items []search.Result
		err   error
	}

	results := make(chan feedResult, len(c.feeds))

	var wg sync.WaitGroup
	for _, feedURL := range c.feeds {
		wg.Add(1)
		go func(feedURL string) {
			defer wg.Done()
			feed, err := c.parser.ParseURLWithContext(feedURL, fetchCtx)
			if err != nil {
				results <- feedResult{err: err}
				return
			}
			results <- feedResult{items: matchItems(feed, req.Query)}
		}(feedURL)
	}

	wg.Wait()
	close(results)

	var merged []search.Result
	var failed int
	var lastErr error
	for r := range results {
		if r.err != nil {
			failed++
			lastErr = r.err
			continue
		}
		merged = append(merged, r.items...)
	}

	// 전 피드가 실패했을 때만 오류로 본다. 일부 실패는 경고만 남긴다.
	if failed == len(c.feeds) {
		return nil, apperr.Wrap(apperr.NetworkFailure, "모든 rss 피드 조회 실패", lastErr)
	}
	if failed > 0 {
		logger.Log.Warnf("rss 피드 %d개 조회 실패: %v", failed, lastErr)
	}

	if req.MaxResults > 0 && len(merged) > req.MaxResults {
		merged = merged[:req.MaxResults]
	}

	return &search.Response{Results: merged}, nil
}

// matchItems 피드 항목 중 키워드가 제목이나 본문에 포함된 것만 추린다.
func matchItems(feed *gofeed.Feed, keyword string) []search.Result {
	needle := strings.ToLower(keyword)

	var items []search.Result
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		haystack := strings.ToLower(item.Title + " " + item.Description)
		if !strings.Contains(haystack, needle) {
			continue
		}

		content := item.Description
		if content == "" {
			content = item.Content
		}

		published := item.Published
		if item.PublishedParsed != nil {
			published = item.PublishedParsed.Format(time.DateOnly)
		}

		items = append(items, search.Result{
			Title:         item.Title,
			URL:           item.Link,
			Content:       content,
			PublishedDate: published,
		})
	}
	return items
}
