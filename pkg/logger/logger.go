package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log 전역 로거 인스턴스
var Log *logrus.Logger

// CustomFormatter 커스텀 로그 포맷
type CustomFormatter struct{}

// Format logrus.Formatter 인터페이스 구현
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	// 호출 위치 (파일명:라인)
	var fileLine string
	if entry.HasCaller() {
		fileName := filepath.Base(entry.Caller.File)
		fileLine = fmt.Sprintf("%s:%d", fileName, entry.Caller.Line)
	}

	// 레벨 표기를 4자로 맞춤 (INFO, WARN, ERRO ...)
	level := strings.ToUpper(entry.Level.String())
	if len(level) > 4 {
		level = level[:4]
	}

	timeStr := entry.Time.Format("2006-01-02 15:04:05")

	msg := fmt.Sprintf("[%s] [%s] [%s] %s\n", timeStr, level, fileLine, entry.Message)
	return []byte(msg), nil
}

// InitLogger 로거 초기화. 레벨 문자열이 잘못되면 Info 레벨로 동작한다.
func InitLogger(levelStr string, filePath string) error {
	Log = logrus.New()

	Log.SetReportCaller(true)
	Log.SetFormatter(&CustomFormatter{})

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// 콘솔과 파일에 동시 출력
	writers := []io.Writer{os.Stdout}
	if filePath != "" {
		logDir := filepath.Dir(filePath)
		if logDir != "." {
			if err := os.MkdirAll(logDir, 0o755); err != nil {
				return fmt.Errorf("로그 디렉터리 생성 실패: %w", err)
			}
		}

		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return err
		}
		writers = append(writers, file)
	}
	Log.SetOutput(io.MultiWriter(writers...))

	return nil
}

func init() {
	// 초기화 전에 Log를 참조해도 nil 패닉이 나지 않도록 기본 로거를 둔다.
	Log = logrus.New()
	Log.SetFormatter(&CustomFormatter{})
}
