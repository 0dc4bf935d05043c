package rag

import (
	"context"
	"net/http"
	"time"

	"github.com/Wissal65/RAG-Application/internal/adapter/utils"
	"github.com/Wissal65/RAG-Application/internal/config"
	"github.com/Wissal65/RAG-Application/internal/domain/commonModels"
	"github.com/Wissal65/RAG-Application/internal/domain/jobModel"
	"github.com/Wissal65/RAG-Application/internal/metrics"
	"github.com/Wissal65/RAG-Application/internal/rag/embedding"
	"github.com/Wissal65/RAG-Application/internal/rag/ingest"
	"github.com/Wissal65/RAG-Application/internal/rag/llm"
	"github.com/Wissal65/RAG-Application/internal/rag/vectorDB"
	"github.com/Wissal65/RAG-Application/pkg/logger_i"
)

// Service is the contract the worker calls. It hides the embedder, the
// vector store and the LLM provider behind one seam so all three can be
// mocked in tests.
type Service interface {
	ProcessRequest(ctx context.Context, job jobModel.Job, messageHistory []string) jobModel.Job
	IngestDocument(ctx context.Context, job jobModel.Job, doc commonModels.Document) jobModel.Job
	SummarizeDocument(ctx context.Context, text string) (string, error)
}

type service struct {
	vectorDB    vectorDB.DataProcessor
	llmProvider llm.Provider
	embedder    embedding.Embedder
	logger      *logger_i.Logger
}

// NewService constructor
func NewService(vector vectorDB.DataProcessor, llmP llm.Provider, em embedding.Embedder) Service {
	return &service{
		vectorDB:    vector,
		llmProvider: llmP,
		embedder:    em,
		logger:      logger_i.NewLogger("RAG Service"),
	}
}

// ProcessRequest runs the query pipeline: embed the question, check the
// semantic cache, search the user's collection restricted to the allow-list,
// then generate. Each step is timed for the dependency-latency histogram.
func (s *service) ProcessRequest(ctx context.Context, jobt jobModel.Job, messageHistory []string) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", jobt.TraceId, "JobId", jobt.Id)

	processContext, cancel := context.WithTimeout(ctx, config.JobTimeout)
	defer cancel()

	jobt.CurrentStep = jobModel.RAGCall

	// Embedding
	queryVector, err := s.executeEmbeddingStep(processContext, inMethodLogger, &jobt)
	if err != nil {
		return s.jobError(jobt, err, "EMBEDDING_FAILURE", true)
	}

	// Cache Check
	cachedAnswer, found := s.executeCacheCheckStep(processContext, inMethodLogger, &jobt, queryVector)
	if found {
		return returnOutput(jobt, cachedAnswer)
	}

	// Vector DB Search
	matches, err := s.executeVectorSearchStep(processContext, inMethodLogger, &jobt, queryVector)
	if err != nil {
		return s.jobError(jobt, err, "VECTOR_DB_FAILURE", true)
	}

	// LLM Generation
	answer, err := s.executeLLMStep(processContext, inMethodLogger, &jobt, matches, messageHistory)
	if err != nil {
		return s.jobError(jobt, err, "LLM_GENERATION_FAILURE", true)
	}

	// Background Cache Save
	go func() {
		saveCtx, saveCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer saveCancel()
		if err := s.vectorDB.SaveToCache(saveCtx, jobt.UserId, utils.GetNewUUID(), queryVector, answer); err != nil {
			s.logger.Error("Failed to save to cache", "error", err)
		}
	}()

	return returnOutput(jobt, answer)
}

// IngestDocument chunks and embeds one document into the user's collection.
// When the job requests it, an auto-summary of the extracted text goes back
// in the payload.
func (s *service) IngestDocument(ctx context.Context, job jobModel.Job, doc commonModels.Document) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("Document_ingestion", time.Since(start)) }()

	job.CurrentStep = jobModel.IngestProcessing
	collection := vectorDB.CollectionForUser(job.UserId)

	result, err := ingest.ProcessDocumentIngestion(ctx, doc, collection, s.embedder, s.vectorDB)
	if err != nil {
		metrics.CountDocumentIngested("failure")
		return s.jobError(job, err, "INGESTION_FAILURE", true)
	}
	metrics.CountDocumentIngested("success")
	job.JobPayload.ChunkCount = result.ChunkCount

	if job.JobPayload.AutoSummary {
		job.CurrentStep = jobModel.SummaryCall
		summary, err := s.SummarizeDocument(ctx, result.Text)
		if err != nil {
			// the document is ingested; a failed summary is not fatal
			s.logger.Error("Auto-summary failed", "documentId", doc.Id, "error", err)
		} else {
			job.JobPayload.Summary = summary
		}
	}

	job.CurrentStep = jobModel.Complete
	job.Status = jobModel.JobStatusComplete
	return job
}

func (s *service) SummarizeDocument(ctx context.Context, text string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_summary", time.Since(start)) }()
	return s.llmProvider.Summarize(ctx, text)
}

func (s *service) jobError(job jobModel.Job, err error, message string, canRetry bool) jobModel.Job {
	s.logger.Error(message, "error", err)

	job.Error = jobModel.JobError{
		Code:    http.StatusInternalServerError,
		Message: "Internal Server Error",
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	return job
}
