package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/develo3899/TrendTracker/pkg/apperr"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "저장된 검색 기록을 최신순으로 나열한다",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var showCmd = &cobra.Command{
	Use:   "show [검색 키]",
	Short: "검색 키로 저장된 결과를 다시 표시한다",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	repo, err := newRepo()
	if err != nil {
		return err
	}

	keys := repo.ListKeys()
	if len(keys) == 0 {
		fmt.Println(dimStyle.Render("저장된 검색 기록이 없습니다."))
		return nil
	}

	for _, key := range keys {
		fmt.Printf("%s\n    %s\n", renderHistoryLine(key), dimStyle.Render(key))
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	repo, err := newRepo()
	if err != nil {
		return err
	}

	result := repo.FindByKey(args[0])
	if result == nil {
		return apperr.Newf(apperr.NoResults, "검색 키를 찾을 수 없습니다: %s", args[0])
	}

	renderResult(result)
	return nil
}
