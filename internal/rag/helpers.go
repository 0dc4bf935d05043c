package rag

import (
	"context"
	"fmt"
	"time"

	"github.com/Wissal65/RAG-Application/internal/domain/jobModel"
	"github.com/Wissal65/RAG-Application/internal/metrics"
	"github.com/Wissal65/RAG-Application/internal/rag/vectorDB"
	"github.com/Wissal65/RAG-Application/pkg/logger_i"
)

func (s *service) executeEmbeddingStep(ctx context.Context, logger *logger_i.Logger, job *jobModel.Job) ([]float32, error) {
	job.CurrentStep = jobModel.EmbeddingAPICall
	start := time.Now()

	vector, err := s.embedder.GetEmbedding(ctx, job.JobPayload.Question)
	metrics.CaptureExecutionMetrics("embedding_api", time.Since(start))
	if err != nil {
		logger.Error("Embedding failed", "error", err)
		return nil, err
	}
	return vector, nil
}

func (s *service) executeCacheCheckStep(ctx context.Context, logger *logger_i.Logger, job *jobModel.Job, vector []float32) (string, bool) {
	job.CurrentStep = jobModel.CacheCall
	start := time.Now()

	answer, found, err := s.vectorDB.GetCachedAnswer(ctx, job.UserId, vector)
	metrics.CaptureExecutionMetrics("semantic_cache", time.Since(start))
	if err != nil {
		// cache miss on error, the pipeline continues
		logger.Warn("Cache lookup failed", "error", err)
		return "", false
	}
	if found {
		logger.Info("Semantic cache hit")
		metrics.CountCacheHit()
	}
	return answer, found
}

func (s *service) executeVectorSearchStep(ctx context.Context, logger *logger_i.Logger, job *jobModel.Job, vector []float32) ([]vectorDB.Match, error) {
	job.CurrentStep = jobModel.VectorDBCall
	start := time.Now()

	collection := vectorDB.CollectionForUser(job.UserId)
	matches, err := s.vectorDB.Search(ctx, collection, vector, job.JobPayload.DocumentIds, 0)
	metrics.CaptureExecutionMetrics("vector_db", time.Since(start))
	if err != nil {
		logger.Error("Vector search failed", "error", err)
		return nil, err
	}
	job.JobPayload.Sources = collectSources(matches)
	return matches, nil
}

func (s *service) executeLLMStep(ctx context.Context, logger *logger_i.Logger, job *jobModel.Job, matches []vectorDB.Match, messageHistory []string) (string, error) {
	job.CurrentStep = jobModel.LLMCall
	start := time.Now()

	excerpts := make([]string, 0, len(matches))
	for _, m := range matches {
		excerpts = append(excerpts, m.Content)
	}
	answer, err := s.llmProvider.Generate(ctx, job.JobPayload.Question, excerpts, messageHistory)
	metrics.CaptureExecutionMetrics("llm_generation", time.Since(start))
	if err != nil {
		logger.Error("LLM generation failed", "error", err)
		return "", err
	}
	return answer, nil
}

// collectSources builds the de-duplicated citation list preserving match order.
func collectSources(matches []vectorDB.Match) []string {
	seen := make(map[string]struct{}, len(matches))
	sources := make([]string, 0, len(matches))
	for _, m := range matches {
		label := fmt.Sprintf("%s (chunk %d)", m.DocName, m.ChunkOrder)
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		sources = append(sources, label)
	}
	return sources
}

func returnOutput(job jobModel.Job, answer string) jobModel.Job {
	job.JobPayload.Answer = answer
	job.CurrentStep = jobModel.Complete
	job.Status = jobModel.JobStatusComplete
	return job
}
