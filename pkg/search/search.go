package search

import "context"

// Searcher 공용 검색 인터페이스
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 공용 검색 요청
type Request struct {
	Query          string
	Topic          string // "news" 또는 "general"
	MaxResults     int
	IncludeDomains []string // 검색 대상 도메인 제한. 비어 있으면 전체.
}

// Response 공용 검색 응답
type Response struct {
	Results []Result
}

// Result 검색 결과 한 건
type Result struct {
	Title         string
	URL           string
	Content       string
	Score         float64
	PublishedDate string
}
