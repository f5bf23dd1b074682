package tavily

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/develo3899/TrendTracker/pkg/apperr"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   apperr.Kind
	}{
		{"401은 자격 오류", 401, apperr.MissingCredential},
		{"403은 자격 오류", 403, apperr.MissingCredential},
		{"400은 입력 오류", 400, apperr.InvalidInput},
		{"429는 한도 초과", 429, apperr.RateLimited},
		{"500은 상류 오류", 500, apperr.UpstreamError},
		{"503은 상류 오류", 503, apperr.UpstreamError},
		{"그 외 코드는 상류 오류", 418, apperr.UpstreamError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyStatus(tt.status, []byte("detail"))
			if !apperr.IsKind(err, tt.want) {
				t.Errorf("classifyStatus(%d) kind = %q, want %q", tt.status, apperr.KindOf(err), tt.want)
			}
			// 원본 상태와 본문은 진단을 위해 메시지에 남긴다
			if !strings.Contains(err.Error(), "detail") {
				t.Errorf("오류 메시지에 응답 본문이 없음: %v", err)
			}
		})
	}
}

func TestSearchRequestMarshal(t *testing.T) {
	req := SearchRequest{
		Query:          "금리 전망",
		SearchDepth:    "advanced",
		Topic:          "news",
		MaxResults:     10,
		IncludeDomains: []string{"news.naver.com"},
	}

	payload, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["query"] != "금리 전망" || decoded["search_depth"] != "advanced" || decoded["topic"] != "news" {
		t.Errorf("직렬화 결과 불일치: %s", payload)
	}
	// 비어 있는 exclude_domains는 필드 자체가 빠져야 한다
	if _, ok := decoded["exclude_domains"]; ok {
		t.Errorf("빈 exclude_domains가 포함됨: %s", payload)
	}
}

func TestSearchResponseUnmarshal(t *testing.T) {
	raw := `{
		"query": "금리",
		"results": [
			{"title": "기사", "url": "https://n.example/1", "content": "본문", "score": 0.91, "published_date": "2024-03-01"}
		],
		"answer": ""
	}`

	var resp SearchResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("결과 수 = %d, want 1", len(resp.Results))
	}
	r := resp.Results[0]
	if r.Title != "기사" || r.PublishedDate != "2024-03-01" || r.Score != 0.91 {
		t.Errorf("결과 불일치: %+v", r)
	}
}
