package apperr

import (
	"errors"
	"fmt"
)

// Kind 애플리케이션 오류 분류. 복구 가능한 조건의 집합은 여기에 정의된 값으로 닫혀 있다.
type Kind string

const (
	MissingCredential Kind = "missing_credential" // API 키 미설정 또는 무효
	RateLimited       Kind = "rate_limited"       // 호출 한도 초과
	NetworkFailure    Kind = "network_failure"    // 네트워크 / 타임아웃
	UpstreamError     Kind = "upstream_error"     // 외부 서비스 5xx 등
	NoResults         Kind = "no_results"         // 검색 결과 없음
	StorageFailure    Kind = "storage_failure"    // 저장소 입출력 실패
	InvalidInput      Kind = "invalid_input"      // 잘못된 요청 파라미터
)

// userMessages 사용자에게 보여줄 짧은 안내 문구
var userMessages = map[Kind]string{
	MissingCredential: "API 키가 설정되지 않았거나 유효하지 않습니다. 설정 파일을 확인해주세요.",
	RateLimited:       "API 호출 한도를 초과했습니다. 잠시 후 다시 시도해주세요.",
	NetworkFailure:    "네트워크 연결에 실패했습니다. 연결 상태를 확인해주세요.",
	UpstreamError:     "외부 서비스에 일시적인 문제가 발생했습니다.",
	NoResults:         "검색 결과가 없습니다. 다른 키워드로 시도해보세요.",
	StorageFailure:    "검색 기록 저장에 실패했습니다.",
	InvalidInput:      "입력값이 올바르지 않습니다.",
}

// Error Kind 태그를 가진 애플리케이션 오류
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" && e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// New 원인 오류 없이 새 오류를 만든다.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf 포맷 문자열 버전
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap 원인 오류를 감싼다. err가 이미 *Error면 Kind를 덮어쓰지 않고 그대로 돌려준다.
func Wrap(kind Kind, msg string, err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf err에 태그된 Kind를 돌려준다. 태그가 없으면 UpstreamError로 본다.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return UpstreamError
}

// IsKind err가 해당 Kind로 태그되어 있는지 검사한다.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

// UserMessage Kind에 대응하는 사용자 안내 문구
func UserMessage(err error) string {
	if msg, ok := userMessages[KindOf(err)]; ok {
		return msg
	}
	return userMessages[UpstreamError]
}
