package searchkey

import (
	"strings"
	"time"
)

// timestampLayout 검색 키에 붙는 타임스탬프 형식 (분 단위 해상도)
const timestampLayout = "200601021504"

// Generate 키워드와 시각을 조합해 고유 검색 키를 만든다.
// 형식: "키워드-yyyymmddHHMM". 같은 분에 같은 키워드를 다시 검색하면 동일한 키가 나온다.
func Generate(keyword string, now time.Time) string {
	return keyword + "-" + now.Format(timestampLayout)
}

// Parse 검색 키를 키워드와 시각으로 되돌린다.
// 키워드 안에 '-'가 포함될 수 있으므로 반드시 마지막 '-' 기준으로 분리한다.
// 형식이 맞지 않으면 ok=false를 돌려준다.
func Parse(key string) (keyword string, ts time.Time, ok bool) {
	idx := strings.LastIndex(key, "-")
	if idx <= 0 || idx == len(key)-1 {
		return "", time.Time{}, false
	}

	keyword = key[:idx]
	ts, err := time.ParseInLocation(timestampLayout, key[idx+1:], time.Local)
	if err != nil {
		return "", time.Time{}, false
	}
	return keyword, ts, true
}
