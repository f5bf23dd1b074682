package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/develo3899/TrendTracker/pkg/apperr"
	"github.com/develo3899/TrendTracker/pkg/config"
	"github.com/develo3899/TrendTracker/pkg/logger"
)

// Service LLM 기반 요약/인사이트 서비스.
// 전역 싱글톤이 아니라 명시적으로 생성해 주입한다. 테스트에서는 chatModel에 페이크를 넣는다.
type Service struct {
	chatModel model.BaseChatModel
	limiter   *rate.Limiter
}

// NewService 설정으로부터 LLM 클라이언트와 속도 제한기를 초기화한다.
func NewService(ctx context.Context, cfg *config.Config) (*Service, error) {
	if cfg.LLM.APIKey == "" {
		return nil, apperr.New(apperr.MissingCredential, "llm api key가 없습니다")
	}

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 초기화 실패: %w", err)
	}

	limit := rate.Limit(float64(cfg.Concurrency.RPM) / 60.0)
	limiter := rate.NewLimiter(limit, cfg.Concurrency.QPS)

	return &Service{chatModel: chatModel, limiter: limiter}, nil
}

// NewServiceWithModel 테스트용 생성자. 임의의 chat model을 주입한다.
func NewServiceWithModel(cm model.BaseChatModel, limiter *rate.Limiter) *Service {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &Service{chatModel: cm, limiter: limiter}
}

// Summarize 기사 목록을 분석해 한국어 불릿 요약을 생성한다.
// 호출 한도 초과 시 지수 백오프로 재시도하며, 그 외 오류는 분류해 그대로 반환한다.
func (s *Service) Summarize(ctx context.Context, articles []ArticleInput) (string, error) {
	if len(articles) == 0 {
		return "요약할 기사가 없습니다.", nil
	}

	var sb strings.Builder
	for i, article := range articles {
		fmt.Fprintf(&sb, "%d. 제목: %s\n   내용: %s\n\n", i+1, article.Title, article.Snippet)
	}

	prompt := fmt.Sprintf(`다음 뉴스 기사들의 핵심 내용을 한국어로 요약해주세요:
- 불릿 포인트 형식으로 최대 5개 항목
- 각 항목은 1~2문장

[뉴스 목록]
%s`, sb.String())

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return "", classifyLLMError(err)
	}
	if text == "" {
		return "", apperr.New(apperr.UpstreamError, "빈 요약 응답")
	}
	return text, nil
}

// ArticleInput 요약 프롬프트에 들어가는 기사 정보
type ArticleInput struct {
	Title   string
	Snippet string
}

// Insights 키워드에 대한 심층 트렌드 분석을 생성한다.
// 요약과 달리 실패해도 오류를 올리지 않고 안내 문구를 그대로 돌려준다.
func (s *Service) Insights(ctx context.Context, keyword string) string {
	prompt := fmt.Sprintf(`전문가적인 시각에서 '%s'에 대한 현재 트렌드와 미래 전망을 분석해주세요.
다음 구조로 한국어로 답변해주세요:
1. 🌟 현재 위상: 이 키워드가 현재 시장이나 사회에서 어떤 위치에 있는지
2. 💡 핵심 동력: 이 트렌드를 이끄는 주요 요인들
3. 🚀 미래 전망: 향후 1~2년 내의 발전 방향
4. ⚠️ 주의점: 관련하여 주목해야 할 리스크나 한계점

답변은 친절하고 전문적인 톤으로 작성해주세요.`, keyword)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		logger.Log.Errorf("AI 인사이트 생성 실패 [%s]: %v", keyword, err)
		return fmt.Sprintf("AI 인사이트 로드 중 오류 발생: %v", err)
	}
	if text == "" {
		return "인사이트를 생성할 수 없습니다."
	}
	return text
}

// generate 속도 제한과 429 재시도를 적용해 LLM을 호출한다.
func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	const maxRetries = 3
	baseDelay := 2 * time.Second
	var lastErr error

	for i := 0; i <= maxRetries; i++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", err
		}

		messages := []*schema.Message{
			{Role: schema.System, Content: "당신은 한국어 트렌드 분석 어시스턴트입니다."},
			{Role: schema.User, Content: prompt},
		}

		resp, err := s.chatModel.Generate(ctx, messages)
		if err != nil {
			lastErr = err
			if isRateLimitError(err) && i < maxRetries {
				delay := baseDelay * time.Duration(1<<i)
				logger.Log.Warnf("LLM 호출 한도 초과, %v 후 재시도", delay)
				select {
				case <-time.After(delay):
				case <-ctx.Done():
					return "", ctx.Err()
				}
				continue
			}
			return "", err
		}

		return strings.TrimSpace(resp.Content), nil
	}
	return "", lastErr
}

// isRateLimitError 메시지 내용으로 429 계열 오류를 감지한다.
func isRateLimitError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit")
}

// classifyLLMError LLM 오류를 apperr Kind로 분류한다.
func classifyLLMError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api_key") || strings.Contains(msg, "api key") ||
		strings.Contains(msg, "unauthorized") || strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "401"):
		return apperr.Wrap(apperr.MissingCredential, "LLM 인증 실패", err)
	case isRateLimitError(err):
		return apperr.Wrap(apperr.RateLimited, "LLM 호출 한도 초과", err)
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "connection"):
		return apperr.Wrap(apperr.NetworkFailure, "LLM 네트워크 오류", err)
	default:
		return apperr.Wrap(apperr.UpstreamError, "LLM 호출 실패", err)
	}
}
