package model

import "time"

// Article 개별 뉴스 기사 정보. 생성 이후 변경하지 않는다.
type Article struct {
	Title   string
	URL     string
	Snippet string
	PubDate string // 원문 발행일 텍스트. CSV에는 저장하지 않으므로 재로딩 시 빈 문자열이 된다.
}

// SearchResult 한 번의 검색 수행 결과 (키워드, 기사 리스트, AI 요약/인사이트, 트렌드 URL)
type SearchResult struct {
	SearchKey  string    // PK, "키워드-yyyymmddHHMM" 형식
	SearchTime time.Time // 검색 실행 시각
	Keyword    string    // 검색 키워드
	Articles   []Article // 검색된 기사. 관련도/최신순 정렬 상태를 유지한다.
	AISummary  string    // AI 요약 결과
	AIInsights string    // AI 심층 인사이트
	TrendsURL  string    // Google Trends URL
}

// NoArticlesTitle 기사가 없는 검색을 나타내는 플레이스홀더 행의 제목
const NoArticlesTitle = "No Articles"

// Columns CSV 스키마의 정규 컬럼 순서
var Columns = []string{
	"search_key", "search_time", "keyword", "article_index",
	"title", "url", "snippet", "ai_summary", "ai_insights", "trends_url",
}

// Row long format 인코딩의 한 행. 검색 단위 필드는 같은 search_key의 모든 행에 반복된다.
type Row struct {
	SearchKey    string
	SearchTime   time.Time
	Keyword      string
	ArticleIndex int // 1부터 시작. 0은 기사 없음 플레이스홀더.
	Title        string
	URL          string
	Snippet      string
	AISummary    string
	AIInsights   string
	TrendsURL    string
}

// ToRows 검색 결과를 long format 행으로 평탄화한다.
// 기사가 없어도 요약/인사이트를 조회할 수 있도록 article_index=0 플레이스홀더 행을 정확히 1개 생성한다.
func (r *SearchResult) ToRows() []Row {
	base := Row{
		SearchKey:  r.SearchKey,
		SearchTime: r.SearchTime,
		Keyword:    r.Keyword,
		AISummary:  r.AISummary,
		AIInsights: r.AIInsights,
		TrendsURL:  r.TrendsURL,
	}

	if len(r.Articles) == 0 {
		sentinel := base
		sentinel.ArticleIndex = 0
		sentinel.Title = NoArticlesTitle
		return []Row{sentinel}
	}

	rows := make([]Row, 0, len(r.Articles))
	for i, article := range r.Articles {
		row := base
		row.ArticleIndex = i + 1
		row.Title = article.Title
		row.URL = article.URL
		row.Snippet = article.Snippet
		rows = append(rows, row)
	}
	return rows
}
