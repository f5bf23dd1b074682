package news

import (
	"context"
	"strings"
	"testing"

	"github.com/develo3899/TrendTracker/pkg/apperr"
	"github.com/develo3899/TrendTracker/pkg/search"
)

// fakeSearcher 호출 순서대로 준비된 응답/오류를 돌려주는 검색 클라이언트 대역
type fakeSearcher struct {
	responses []*search.Response
	errs      []error
	calls     int
	lastReq   *search.Request
}

func (f *fakeSearcher) Search(_ context.Context, req *search.Request) (*search.Response, error) {
	idx := f.calls
	f.calls++
	f.lastReq = req

	var err error
	if idx < len(f.errs) {
		err = f.errs[idx]
	}
	var resp *search.Response
	if idx < len(f.responses) {
		resp = f.responses[idx]
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func TestSearchNewsSortsByDateDescending(t *testing.T) {
	fake := &fakeSearcher{
		responses: []*search.Response{{
			Results: []search.Result{
				{Title: "과거 기사", URL: "https://n.example/old", Content: "내용", PublishedDate: "2024-01-01"},
				{Title: "최신 기사", URL: "https://n.example/new", Content: "내용", PublishedDate: "2024-03-01"},
				{Title: "중간 기사", URL: "https://n.example/mid", Content: "내용", PublishedDate: "2024-02-01"},
			},
		}},
	}
	svc := NewService(fake, nil, false)

	articles, err := svc.SearchNews(context.Background(), "금리", 5)
	if err != nil {
		t.Fatalf("SearchNews() error = %v", err)
	}
	if len(articles) != 3 {
		t.Fatalf("기사 수 = %d, want 3", len(articles))
	}

	wantOrder := []string{"최신 기사", "중간 기사", "과거 기사"}
	for i, want := range wantOrder {
		if articles[i].Title != want {
			t.Errorf("articles[%d].Title = %q, want %q", i, articles[i].Title, want)
		}
	}
}

func TestSearchNewsDatelessGoesLast(t *testing.T) {
	fake := &fakeSearcher{
		responses: []*search.Response{{
			Results: []search.Result{
				{Title: "날짜 없는 기사", URL: "https://n.example/a", Content: "내용"},
				{Title: "날짜 있는 기사", URL: "https://n.example/b", Content: "내용", PublishedDate: "2024-01-15"},
			},
		}},
	}
	svc := NewService(fake, nil, false)

	articles, err := svc.SearchNews(context.Background(), "금리", 5)
	if err != nil {
		t.Fatalf("SearchNews() error = %v", err)
	}
	if articles[0].Title != "날짜 있는 기사" {
		t.Errorf("첫 기사 = %q, 날짜 있는 기사가 먼저여야 함", articles[0].Title)
	}
	if articles[1].PubDate != noDate {
		t.Errorf("날짜 없는 기사의 PubDate = %q, want %q", articles[1].PubDate, noDate)
	}
}

func TestSearchNewsFillsMissingFields(t *testing.T) {
	fake := &fakeSearcher{
		responses: []*search.Response{{
			Results: []search.Result{
				{URL: "https://n.example/untitled", Content: "제목이 없는 결과"},
			},
		}},
	}
	svc := NewService(fake, nil, false)

	articles, err := svc.SearchNews(context.Background(), "금리", 5)
	if err != nil {
		t.Fatalf("SearchNews() error = %v", err)
	}
	if articles[0].Title != noTitle {
		t.Errorf("Title = %q, want %q", articles[0].Title, noTitle)
	}
	if articles[0].PubDate != noDate {
		t.Errorf("PubDate = %q, want %q", articles[0].PubDate, noDate)
	}
}

func TestSearchNewsTruncatesToRequestedCount(t *testing.T) {
	var results []search.Result
	for i := 0; i < 12; i++ {
		results = append(results, search.Result{
			Title:         "기사",
			URL:           "https://n.example/x",
			Content:       "내용",
			PublishedDate: "2024-01-01",
		})
	}
	fake := &fakeSearcher{responses: []*search.Response{{Results: results}}}
	svc := NewService(fake, nil, false)

	articles, err := svc.SearchNews(context.Background(), "금리", 3)
	if err != nil {
		t.Fatalf("SearchNews() error = %v", err)
	}
	if len(articles) != 3 {
		t.Errorf("기사 수 = %d, want 3", len(articles))
	}

	// 정렬 후 상위만 취할 수 있도록 요청 건수는 여유 있게 잡는다
	if fake.lastReq.MaxResults < 3 {
		t.Errorf("요청 MaxResults = %d, 요구 건수 이상이어야 함", fake.lastReq.MaxResults)
	}
}

func TestSearchNewsRetriesOnNetworkFailure(t *testing.T) {
	fake := &fakeSearcher{
		errs: []error{apperr.New(apperr.NetworkFailure, "timeout"), nil},
		responses: []*search.Response{nil, {
			Results: []search.Result{
				{Title: "재시도 성공", URL: "https://n.example/r", Content: "내용", PublishedDate: "2024-01-01"},
			},
		}},
	}
	svc := NewService(fake, nil, false)

	articles, err := svc.SearchNews(context.Background(), "금리", 5)
	if err != nil {
		t.Fatalf("SearchNews() error = %v, 재시도로 성공해야 함", err)
	}
	if fake.calls != 2 {
		t.Errorf("호출 수 = %d, want 2", fake.calls)
	}
	if len(articles) != 1 || articles[0].Title != "재시도 성공" {
		t.Errorf("기사 = %+v", articles)
	}
}

func TestSearchNewsNoRetryOnOtherKinds(t *testing.T) {
	fake := &fakeSearcher{
		errs: []error{apperr.New(apperr.MissingCredential, "API 키 없음")},
	}
	svc := NewService(fake, nil, false)

	_, err := svc.SearchNews(context.Background(), "금리", 5)
	if !apperr.IsKind(err, apperr.MissingCredential) {
		t.Fatalf("err = %v, want missing_credential", err)
	}
	if fake.calls != 1 {
		t.Errorf("호출 수 = %d, 자격 오류는 재시도하면 안 됨", fake.calls)
	}
}

func TestSearchNewsEmptyResults(t *testing.T) {
	fake := &fakeSearcher{responses: []*search.Response{{}}}
	svc := NewService(fake, nil, false)

	articles, err := svc.SearchNews(context.Background(), "아주희귀한검색어", 5)
	if err != nil {
		t.Fatalf("SearchNews() error = %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("기사 수 = %d, want 0", len(articles))
	}
}

func TestSearchNewsPassesDomains(t *testing.T) {
	fake := &fakeSearcher{responses: []*search.Response{{}}}
	domains := []string{"news.naver.com", "hankyung.com"}
	svc := NewService(fake, domains, false)

	if _, err := svc.SearchNews(context.Background(), "금리", 5); err != nil {
		t.Fatalf("SearchNews() error = %v", err)
	}
	if got := strings.Join(fake.lastReq.IncludeDomains, ","); got != strings.Join(domains, ",") {
		t.Errorf("IncludeDomains = %v, want %v", fake.lastReq.IncludeDomains, domains)
	}
	if fake.lastReq.Topic != "news" {
		t.Errorf("Topic = %q, want %q", fake.lastReq.Topic, "news")
	}
}

func TestSearchNewsTruncatesLongSnippet(t *testing.T) {
	long := strings.Repeat("가", snippetMaxRunes+100)
	fake := &fakeSearcher{
		responses: []*search.Response{{
			Results: []search.Result{
				{Title: "긴 기사", URL: "https://n.example/long", Content: long, PublishedDate: "2024-01-01"},
			},
		}},
	}
	svc := NewService(fake, nil, false)

	articles, err := svc.SearchNews(context.Background(), "금리", 5)
	if err != nil {
		t.Fatalf("SearchNews() error = %v", err)
	}
	if got := len([]rune(articles[0].Snippet)); got != snippetMaxRunes {
		t.Errorf("스니펫 길이 = %d룬, want %d", got, snippetMaxRunes)
	}
}
