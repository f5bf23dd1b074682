package server

import (
	"embed"
	"encoding/json"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/develo3899/TrendTracker/pkg/model"
	"github.com/develo3899/TrendTracker/pkg/repository"
	"github.com/develo3899/TrendTracker/pkg/searchkey"
)

//go:embed assets/*
var assets embed.FS

// historyEntry /api/history 응답의 한 항목
type historyEntry struct {
	Key     string `json:"key"`
	Keyword string `json:"keyword"`
	Time    string `json:"time"`
}

// articleDTO /api/result 응답의 기사 한 건
type articleDTO struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// resultDTO /api/result 응답
type resultDTO struct {
	SearchKey  string       `json:"search_key"`
	SearchTime string       `json:"search_time"`
	Keyword    string       `json:"keyword"`
	Articles   []articleDTO `json:"articles"`
	AISummary  string       `json:"ai_summary"`
	AIInsights string       `json:"ai_insights"`
	TrendsURL  string       `json:"trends_url"`
}

// NewHTTPServer 검색 기록 조회 전용 HTTP 서버를 만든다. 저장소에 쓰기는 하지 않는다.
func NewHTTPServer(c *Server, repo *repository.Repository, logger log.Logger) *http.Server {
	h := log.NewHelper(logger)

	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c.Http.Addr != "" {
		opts = append(opts, http.Address(c.Http.Addr))
	}
	if c.Http.Timeout != "" {
		if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)

	srv.HandleFunc("/api/history", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		keys := repo.ListKeys()
		entries := make([]historyEntry, 0, len(keys))
		for _, key := range keys {
			entry := historyEntry{Key: key}
			if keyword, ts, ok := searchkey.Parse(key); ok {
				entry.Keyword = keyword
				entry.Time = ts.Format("2006-01-02 15:04")
			}
			entries = append(entries, entry)
		}
		writeJSON(w, entries, h)
	})

	srv.HandleFunc("/api/result", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		key := r.URL.Query().Get("key")
		if key == "" {
			nethttp.Error(w, "key 파라미터가 필요합니다", nethttp.StatusBadRequest)
			return
		}

		result := repo.FindByKey(key)
		if result == nil {
			nethttp.Error(w, "해당 키의 기록이 없습니다", nethttp.StatusNotFound)
			return
		}
		writeJSON(w, toDTO(result), h)
	})

	srv.HandleFunc("/api/export", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="search_history.csv"`)
		if _, err := w.Write([]byte(repo.ExportAll())); err != nil {
			h.Errorf("export 응답 쓰기 실패: %v", err)
		}
	})

	srv.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/" {
			nethttp.NotFound(w, r)
			return
		}
		content, _ := assets.ReadFile("assets/index.html")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(content)
	})

	return srv
}

func toDTO(result *model.SearchResult) resultDTO {
	articles := make([]articleDTO, 0, len(result.Articles))
	for _, a := range result.Articles {
		articles = append(articles, articleDTO{Title: a.Title, URL: a.URL, Snippet: a.Snippet})
	}
	return resultDTO{
		SearchKey:  result.SearchKey,
		SearchTime: result.SearchTime.Format("2006-01-02 15:04:05"),
		Keyword:    result.Keyword,
		Articles:   articles,
		AISummary:  result.AISummary,
		AIInsights: result.AIInsights,
		TrendsURL:  result.TrendsURL,
	}
}

func writeJSON(w nethttp.ResponseWriter, v any, h *log.Helper) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Errorf("JSON 응답 쓰기 실패: %v", err)
	}
}
