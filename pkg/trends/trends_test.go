package trends

import (
	"strings"
	"testing"
)

func TestURL(t *testing.T) {
	tests := []struct {
		name    string
		keyword string
		want    string
	}{
		{
			name:    "영문 키워드",
			keyword: "AI",
			want:    "https://trends.google.com/trends/explore?q=AI&geo=KR&date=now%207-d",
		},
		{
			name:    "공백은 %20으로 인코딩",
			keyword: "금리 전망",
			want:    "https://trends.google.com/trends/explore?q=%EA%B8%88%EB%A6%AC%20%EC%A0%84%EB%A7%9D&geo=KR&date=now%207-d",
		},
		{
			name:    "특수문자 이스케이프",
			keyword: "C&C",
			want:    "https://trends.google.com/trends/explore?q=C%26C&geo=KR&date=now%207-d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := URL(tt.keyword); got != tt.want {
				t.Errorf("URL(%q) = %q, want %q", tt.keyword, got, tt.want)
			}
		})
	}
}

func TestURLNoPlusEncoding(t *testing.T) {
	// 공백이 '+'로 인코딩되면 Trends 페이지에서 검색어가 깨진다
	if got := URL("전기차 보조금"); strings.Contains(got, "+") {
		t.Errorf("URL에 '+'가 포함됨: %q", got)
	}
}
