package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/develo3899/TrendTracker/pkg/model"
	"github.com/develo3899/TrendTracker/pkg/searchkey"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")).MarginTop(1)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	linkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Underline(true)
	errStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// renderResult 검색 결과 전체를 터미널에 출력한다.
func renderResult(result *model.SearchResult) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("📈 '%s' 트렌드 리포트", result.Keyword)))
	fmt.Println(dimStyle.Render(fmt.Sprintf("검색 키: %s / 실행 시각: %s",
		result.SearchKey, result.SearchTime.Format("2006-01-02 15:04"))))

	if result.AISummary != "" {
		fmt.Println(sectionStyle.Render("📝 AI 요약"))
		fmt.Println(result.AISummary)
	}

	if result.AIInsights != "" {
		fmt.Println(sectionStyle.Render("💡 AI 인사이트"))
		fmt.Println(result.AIInsights)
	}

	fmt.Println(sectionStyle.Render(fmt.Sprintf("📰 기사 목록 (%d건)", len(result.Articles))))
	if len(result.Articles) == 0 {
		fmt.Println(dimStyle.Render("표시할 기사가 없습니다."))
	}
	for i, article := range result.Articles {
		fmt.Printf("%d. %s\n", i+1, article.Title)
		if article.PubDate != "" {
			fmt.Println("   " + dimStyle.Render(article.PubDate))
		}
		if article.URL != "" {
			fmt.Println("   " + linkStyle.Render(article.URL))
		}
		if article.Snippet != "" {
			fmt.Println("   " + truncate(article.Snippet, 160))
		}
	}

	if result.TrendsURL != "" {
		fmt.Println(sectionStyle.Render("🔗 Google Trends"))
		fmt.Println(linkStyle.Render(result.TrendsURL))
	}
}

// renderHistoryLine 키 하나를 "키워드 (시각)" 형태의 한 줄로 만든다.
func renderHistoryLine(key string) string {
	keyword, ts, ok := searchkey.Parse(key)
	if !ok {
		return key
	}
	return fmt.Sprintf("%s %s", keyword, dimStyle.Render("("+ts.Format("2006-01-02 15:04")+")"))
}

func truncate(s string, maxRunes int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= maxRunes {
		return s
	}
	return string(r[:maxRunes]) + "…"
}
