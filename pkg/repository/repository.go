package repository

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/develo3899/TrendTracker/pkg/logger"
	"github.com/develo3899/TrendTracker/pkg/model"
)

// utf8BOM 스프레드시트 호환을 위해 파일 맨 앞에 붙이는 바이트 순서 표식
const utf8BOM = "\xEF\xBB\xBF"

// timeLayout CSV에 기록하는 search_time 형식
const timeLayout = "2006-01-02 15:04:05"

// readTimeLayouts 읽기 시 허용하는 search_time 형식들.
// 과거 버전 파일과 외부에서 편집된 파일을 수용한다.
var readTimeLayouts = []string{
	timeLayout,
	"2006-01-02 15:04:05.999999",
	time.RFC3339,
	"2006-01-02",
}

// Repository CSV 파일 하나로 검색 기록을 관리하는 리포지토리.
// 모든 쓰기는 전체 파일을 다시 읽어 덧붙인 뒤 통째로 다시 쓰는 방식이다.
// 동시 쓰기는 조율하지 않으며 마지막 쓰기가 이긴다 (단일 사용자 도구의 수용된 한계).
type Repository struct {
	csvPath string
}

// NewRepository 리포지토리를 만들고 저장 디렉터리를 준비한다.
func NewRepository(csvPath string) (*Repository, error) {
	dir := filepath.Dir(csvPath)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &Repository{csvPath: csvPath}, nil
}

// Load CSV 파일의 전체 행을 읽는다.
// 파일이 없거나, 비어 있거나, 손상된 경우 모두 복구 가능한 상태로 보고 빈 슬라이스를 돌려준다.
func (r *Repository) Load() []model.Row {
	f, err := os.Open(r.csvPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Log.Warnf("CSV 열기 실패: %v", err)
		}
		return nil
	}
	defer f.Close()

	rows, err := decodeTable(f)
	if err != nil {
		logger.Log.Warnf("CSV 로드 실패, 기록이 없는 것으로 처리: %v", err)
		return nil
	}
	return rows
}

// Save 검색 결과를 CSV 파일에 덧붙여 저장한다.
// 실패 시 false를 돌려주며 오류는 로그로만 남긴다. 호출자는 반환값을 확인해야 한다.
func (r *Repository) Save(result *model.SearchResult) bool {
	// 캐시가 아닌 디스크의 현재 상태를 새로 읽는다.
	rows := r.Load()
	rows = append(rows, result.ToRows()...)

	f, err := os.Create(r.csvPath)
	if err != nil {
		logger.Log.Errorf("CSV 저장 실패: %v", err)
		return false
	}
	defer f.Close()

	if err := encodeTable(f, rows); err != nil {
		logger.Log.Errorf("CSV 저장 실패: %v", err)
		return false
	}
	return true
}

// ListKeys 고유 search_key 목록을 최신순으로 돌려준다.
func (r *Repository) ListKeys() []string {
	rows := r.Load()
	if len(rows) == 0 {
		return nil
	}

	sorted := make([]model.Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SearchTime.After(sorted[j].SearchTime)
	})

	seen := make(map[string]bool)
	var keys []string
	for _, row := range sorted {
		if seen[row.SearchKey] {
			continue
		}
		seen[row.SearchKey] = true
		keys = append(keys, row.SearchKey)
	}
	return keys
}

// FindByKey search_key로 저장된 검색 결과를 복원한다. 없으면 nil.
func (r *Repository) FindByKey(searchKey string) *model.SearchResult {
	rows := r.Load()

	var matched []model.Row
	for _, row := range rows {
		if row.SearchKey == searchKey {
			matched = append(matched, row)
		}
	}
	if len(matched) == 0 {
		return nil
	}

	return fromRows(matched)
}

// ExportAll 전체 기록을 다운로드용 CSV 문자열로 직렬화한다.
// 기록이 없어도 헤더 행은 항상 포함된다.
func (r *Repository) ExportAll() string {
	rows := r.Load()

	var buf bytes.Buffer
	// 인코딩 실패는 bytes.Buffer 대상에서는 발생하지 않는다.
	if err := encodeTable(&buf, rows); err != nil {
		logger.Log.Errorf("CSV 직렬화 실패: %v", err)
	}
	return buf.String()
}

// fromRows 같은 search_key의 행들로부터 SearchResult를 재구성한다.
// 검색 단위 필드는 첫 행에서 취하고, article_index가 0보다 큰 행만 기사로 되살린다.
// 발행일은 CSV에 저장되지 않으므로 항상 빈 문자열이 된다.
func fromRows(rows []model.Row) *model.SearchResult {
	first := rows[0]

	sorted := make([]model.Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ArticleIndex < sorted[j].ArticleIndex
	})

	var articles []model.Article
	for _, row := range sorted {
		if row.ArticleIndex <= 0 {
			continue
		}
		articles = append(articles, model.Article{
			Title:   row.Title,
			URL:     row.URL,
			Snippet: row.Snippet,
			PubDate: "",
		})
	}

	return &model.SearchResult{
		SearchKey:  first.SearchKey,
		SearchTime: first.SearchTime,
		Keyword:    first.Keyword,
		Articles:   articles,
		AISummary:  first.AISummary,
		AIInsights: first.AIInsights,
		TrendsURL:  first.TrendsURL,
	}
}

// decodeTable CSV 스트림을 행 목록으로 해석한다.
// 구버전 8컬럼 파일과의 호환 처리는 전부 이 함수(및 decodeRow)에 모은다.
func decodeTable(src io.Reader) ([]model.Row, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1 // 구버전 스키마의 좁은 행을 허용

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	if len(header) > 0 {
		// 파일 선두의 BOM 제거
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(name)] = i
	}

	var rows []model.Row
	for _, record := range records[1:] {
		rows = append(rows, decodeRow(colIndex, record))
	}
	return rows, nil
}

// decodeRow 레코드 한 줄을 Row로 바꾼다. 없는 컬럼(ai_insights, trends_url 등)은 빈 값으로 둔다.
func decodeRow(colIndex map[string]int, record []string) model.Row {
	get := func(name string) string {
		idx, ok := colIndex[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	articleIndex, err := strconv.Atoi(get("article_index"))
	if err != nil {
		articleIndex = 0
	}

	return model.Row{
		SearchKey:    get("search_key"),
		SearchTime:   parseSearchTime(get("search_time")),
		Keyword:      get("keyword"),
		ArticleIndex: articleIndex,
		Title:        get("title"),
		URL:          get("url"),
		Snippet:      get("snippet"),
		AISummary:    get("ai_summary"),
		AIInsights:   get("ai_insights"),
		TrendsURL:    get("trends_url"),
	}
}

// parseSearchTime 저장된 시각 문자열을 해석한다.
// 해석에 실패하면 전체 복원을 중단하는 대신 현재 시각으로 대체한다 (손실 허용 폴백).
func parseSearchTime(value string) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range readTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t
		}
	}
	logger.Log.Warnf("search_time 해석 실패, 현재 시각으로 대체: %q", value)
	return time.Now()
}

// encodeTable 행 목록을 정규 10컬럼 스키마로 직렬화한다. 쓰기는 항상 최신 스키마를 사용한다.
func encodeTable(dst io.Writer, rows []model.Row) error {
	if _, err := io.WriteString(dst, utf8BOM); err != nil {
		return err
	}

	writer := csv.NewWriter(dst)
	if err := writer.Write(model.Columns); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.SearchKey,
			row.SearchTime.Format(timeLayout),
			row.Keyword,
			strconv.Itoa(row.ArticleIndex),
			row.Title,
			row.URL,
			row.Snippet,
			row.AISummary,
			row.AIInsights,
			row.TrendsURL,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
