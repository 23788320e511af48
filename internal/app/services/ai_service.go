package services

import (
	"context"
	"encoding/json"

	"github.com/altan/schoolhub/internal/app/models/dto"
	"github.com/altan/schoolhub/internal/cache"
	"github.com/altan/schoolhub/internal/pkg/logger"
)

// Analyzer forwards structured tasks to the AI service.
type Analyzer interface {
	Analyze(ctx context.Context, request dto.AnalyzeRequest) (*dto.AnalyzeResult, error)
}

// AIResultCache caches serialized AI answers keyed by request payload.
type AIResultCache interface {
	GetAIResponse(ctx context.Context, key string) (string, bool, error)
	SetAIResponse(ctx context.Context, key, value string) error
}

// AIService proxies analyze requests to the external AI service with a
// short-lived response cache. Identical payloads within the TTL are answered
// from redis without touching the bridge.
type AIService struct {
	analyzer Analyzer
	results  AIResultCache
}

// NewAIService creates a new AIService
func NewAIService(analyzer Analyzer, results AIResultCache) *AIService {
	return &AIService{analyzer: analyzer, results: results}
}

// Analyze forwards one task to the AI service.
func (s *AIService) Analyze(ctx context.Context, req *dto.AnalyzeRequest) (*dto.AnalyzeResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	key := cache.AICacheKey(payload)

	if cached, ok, err := s.results.GetAIResponse(ctx, key); err == nil && ok {
		var result dto.AnalyzeResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return &result, nil
		}
	}

	result, err := s.analyzer.Analyze(ctx, *req)
	if err != nil {
		return nil, err
	}

	if result.Success {
		if serialized, err := json.Marshal(result); err == nil {
			if err := s.results.SetAIResponse(ctx, key, string(serialized)); err != nil {
				logger.Warn().Err(err).Msg("Failed to cache AI response")
			}
		}
	}

	return result, nil
}
