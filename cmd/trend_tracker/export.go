package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/develo3899/TrendTracker/pkg/apperr"
)

var exportOutPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "전체 검색 기록을 CSV로 내보낸다",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutPath, "output", "o", "", "저장할 파일 경로 (생략 시 표준 출력)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	repo, err := newRepo()
	if err != nil {
		return err
	}

	data := repo.ExportAll()

	if exportOutPath == "" {
		fmt.Print(data)
		return nil
	}

	if err := os.WriteFile(exportOutPath, []byte(data), 0o644); err != nil {
		return apperr.Wrap(apperr.StorageFailure, "내보내기 파일 쓰기 실패", err)
	}
	fmt.Printf("내보내기 완료: %s\n", exportOutPath)
	return nil
}
