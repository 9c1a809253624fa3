package usecase

import (
	"context"
	"fmt"
	"strings"

	"dukkan/internal/domain/advisor"
	"dukkan/internal/domain/service"
	"dukkan/pkg/errors"
	"dukkan/pkg/logger"
	"dukkan/pkg/metrics"
)

const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"
)

type AdvisorUseCase struct {
	stats    *StatsUseCase
	products *ProductUseCase
	ai       service.AIService
	table    *advisor.Table
}

// NewAdvisorUseCase wires the advisor. ai may be nil, in which case every answer comes
// from the content table.
func NewAdvisorUseCase(stats *StatsUseCase, products *ProductUseCase, ai service.AIService, table *advisor.Table) *AdvisorUseCase {
	return &AdvisorUseCase{
		stats:    stats,
		products: products,
		ai:       ai,
		table:    table,
	}
}

type AdvisorInput struct {
	Question  string `json:"question" validate:"max=2000"`
	ProductID string `json:"productId"`
}

type AdvisorAnswer struct {
	Answer string `json:"answer"`
	Source string `json:"source"`
	Topic  string `json:"topic"`
}

func (uc *AdvisorUseCase) Ask(ctx context.Context, kindName string, input AdvisorInput) (*AdvisorAnswer, error) {
	kind, ok := advisor.ParseKind(kindName)
	if !ok {
		return nil, errors.NotFound("Advisor "+kindName, nil)
	}
	if kind == advisor.KindAsk && strings.TrimSpace(input.Question) == "" {
		return nil, errors.BadRequest("Question is required", nil)
	}

	question := input.Question
	if input.ProductID != "" {
		product, err := uc.products.Get(ctx, input.ProductID)
		if err != nil {
			return nil, err
		}
		question = fmt.Sprintf("المنتج: %s، سعر الجملة %.0f، المخزون %d. %s",
			product.Name, product.Price, product.Stock, question)
	}

	if uc.ai != nil {
		answer, err := uc.complete(ctx, kind, question)
		if err == nil {
			metrics.AdvisorCounter.WithLabelValues(string(kind), SourceLLM).Inc()
			return &AdvisorAnswer{Answer: answer, Source: SourceLLM, Topic: kind.Topic()}, nil
		}
		logger.Warn("Advisor %s falling back to content table: %v", kind, err)
	}

	block := uc.table.Match(input.Question, kind)
	metrics.AdvisorCounter.WithLabelValues(string(kind), SourceFallback).Inc()
	return &AdvisorAnswer{Answer: block.Content, Source: SourceFallback, Topic: block.Topic}, nil
}

func (uc *AdvisorUseCase) complete(ctx context.Context, kind advisor.Kind, question string) (string, error) {
	stats, err := uc.stats.Dashboard(ctx)
	if err != nil {
		return "", err
	}
	answer, err := uc.ai.Complete(ctx, advisor.SystemPrompt(kind), advisor.UserPrompt(stats, question))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(answer) == "" {
		return "", fmt.Errorf("empty completion")
	}
	return answer, nil
}
