package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/develo3899/TrendTracker/pkg/apperr"
	"github.com/develo3899/TrendTracker/pkg/config"
	"github.com/develo3899/TrendTracker/pkg/logger"
	"github.com/develo3899/TrendTracker/pkg/repository"
)

var (
	confPath string
	cfg      *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "trend_tracker",
	Short: "키워드 기반 트렌드 리서치 도구",
	Long: `키워드로 최신 뉴스를 검색하고 AI 요약/인사이트와 함께
CSV 기록으로 축적하는 트렌드 리서치 도구입니다.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadConfig(confPath)
		if err != nil {
			return fmt.Errorf("설정 파일을 읽을 수 없습니다 (%s): %w", confPath, err)
		}
		cfg = c

		if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
			return fmt.Errorf("로거 초기화 실패: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&confPath, "conf", "configs/config.yaml", "설정 파일 경로")
}

// Execute 루트 명령을 실행한다. 오류 종류별 안내 문구를 표준 오류로 출력한다.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("✗ "+apperr.UserMessage(err)))
		fmt.Fprintf(os.Stderr, "  상세: %v\n", err)
	}
	return err
}

// newRepo 설정된 경로로 리포지토리를 연다.
func newRepo() (*repository.Repository, error) {
	repo, err := repository.NewRepository(cfg.CSVPath)
	if err != nil {
		return nil, apperr.Wrap(apperr.StorageFailure, "저장 디렉터리 준비 실패", err)
	}
	return repo, nil
}
