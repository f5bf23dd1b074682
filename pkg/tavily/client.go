package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/develo3899/TrendTracker/pkg/apperr"
	"github.com/develo3899/TrendTracker/pkg/search"
)

const baseURL = "https://api.tavily.com/search"

// Client Tavily API 클라이언트
type Client struct {
	apiKey string
	client *http.Client
}

// NewClient 새 Tavily 클라이언트를 만든다.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		client: http.DefaultClient,
	}
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// Search implements search.Searcher
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	tavilyReq := SearchRequest{
		Query:          req.Query,
		SearchDepth:    "advanced",
		Topic:          req.Topic,
		MaxResults:     req.MaxResults,
		IncludeDomains: req.IncludeDomains,
	}

	resp, err := c.doSearch(ctx, tavilyReq)
	if err != nil {
		return nil, err
	}

	var results []search.Result
	for _, r := range resp.Results {
		results = append(results, search.Result{
			Title:         r.Title,
			URL:           r.URL,
			Content:       r.Content,
			Score:         r.Score,
			PublishedDate: r.PublishedDate,
		})
	}

	return &search.Response{Results: results}, nil
}

// SearchRequest Tavily 검색 요청 파라미터
type SearchRequest struct {
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth,omitempty"` // basic or advanced
	Topic          string   `json:"topic,omitempty"`        // general or news
	MaxResults     int      `json:"max_results,omitempty"`
	IncludeDomains []string `json:"include_domains,omitempty"`
	ExcludeDomains []string `json:"exclude_domains,omitempty"`
}

// SearchResponse Tavily 검색 응답
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Answer  string         `json:"answer"`
}

// SearchResult 검색 결과 한 건
type SearchResult struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	Score         float64 `json:"score"`
	PublishedDate string  `json:"published_date"`
}

// doSearch 검색 실행 (Internal)
func (c *Client) doSearch(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if req.SearchDepth == "" {
		req.SearchDepth = "basic"
	}
	if req.MaxResults == 0 {
		req.MaxResults = 5
	}
	if req.Topic == "" {
		req.Topic = "general"
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request failed: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	httpReq.Header.Add("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Add("Content-Type", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, apperr.Wrap(apperr.NetworkFailure, "tavily 요청 실패", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.NetworkFailure, "tavily 응답 읽기 실패", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, classifyStatus(res.StatusCode, body)
	}

	var searchResp SearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, apperr.Wrap(apperr.UpstreamError, "tavily 응답 파싱 실패", err)
	}

	return &searchResp, nil
}

// classifyStatus HTTP 상태 코드를 오류 Kind로 분류한다.
func classifyStatus(status int, body []byte) error {
	msg := fmt.Sprintf("tavily api error (status %d): %s", status, string(body))
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apperr.New(apperr.MissingCredential, msg)
	case status == http.StatusBadRequest:
		return apperr.New(apperr.InvalidInput, msg)
	case status == http.StatusTooManyRequests:
		return apperr.New(apperr.RateLimited, msg)
	case status >= 500:
		return apperr.New(apperr.UpstreamError, msg)
	default:
		return apperr.New(apperr.UpstreamError, msg)
	}
}
