package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/develo3899/TrendTracker/pkg/apperr"
	"github.com/develo3899/TrendTracker/pkg/engine"
)

var (
	searchCount      int
	searchNoInsights bool
)

var searchCmd = &cobra.Command{
	Use:   "search [키워드]",
	Short: "키워드로 뉴스를 검색하고 AI 분석과 함께 기록한다",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchCount, "count", 0, "가져올 기사 수 (기본: 설정값)")
	searchCmd.Flags().BoolVar(&searchNoInsights, "no-insights", false, "AI 인사이트 생성 생략")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	repo, err := newRepo()
	if err != nil {
		return err
	}

	ctx := context.Background()
	eng, err := engine.NewEngine(ctx, cfg, repo)
	if err != nil {
		return err
	}

	result, err := eng.RunWithOptions(ctx, args[0], engine.RunOptions{
		NumResults:  searchCount,
		SkipInsight: searchNoInsights,
	})
	if err != nil {
		// 저장만 실패한 경우 결과는 보여주고 오류도 보고한다
		var ae *apperr.Error
		if result != nil && errors.As(err, &ae) && ae.Kind == apperr.StorageFailure {
			renderResult(result)
		}
		return err
	}

	renderResult(result)
	return nil
}
