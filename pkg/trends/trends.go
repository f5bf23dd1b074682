package trends

import (
	"net/url"
	"strings"
)

// URL 키워드에 대한 Google Trends 탐색 페이지 주소를 만든다.
// 한국 지역(geo=KR), 최근 7일(date=now 7-d) 기준. 네트워크 호출이 없는 순수 함수다.
func URL(keyword string) string {
	// 공백은 '+'가 아니라 %20으로 인코딩한다.
	encoded := strings.ReplaceAll(url.QueryEscape(keyword), "+", "%20")
	return "https://trends.google.com/trends/explore?q=" + encoded + "&geo=KR&date=now%207-d"
}
