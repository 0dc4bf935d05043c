package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/Wissal65/RAG-Application/internal/adapter/utils"
	"github.com/Wissal65/RAG-Application/internal/config"
	"github.com/Wissal65/RAG-Application/internal/domain/commonModels"
	jobmodel "github.com/Wissal65/RAG-Application/internal/domain/jobModel"
	"github.com/Wissal65/RAG-Application/internal/metrics"
	"github.com/Wissal65/RAG-Application/internal/rag/ingest"
	"github.com/Wissal65/RAG-Application/pkg/logger_i"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		// Record total time at the end
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.JobTimeout)
	defer cancel()
	logger.With("trace Id ", job.TraceId)
	logger.Debug("Processing job:", "job Id:", job.Id)

	saveJobState(ctx, job, jobmodel.JobStatusRunning)

	switch job.JobType {
	case jobmodel.JobTypeIngest:
		job.CurrentStep = jobmodel.IngestProcessing
		job = ingestDocument(ctx, job, logger)

	case jobmodel.JobTypeSummarize:
		job.CurrentStep = jobmodel.SummaryCall
		job = summarizeDocument(ctx, job, logger)

	default:
		job = processQuery(ctx, job, logger)
		if job.Status != jobmodel.JobStatusError {
			persistChatEntry(ctx, &job, logger)
		}
	}

	job.EndTime = time.Now()
	if job.Status != jobmodel.JobStatusError {
		job.Status = jobmodel.JobStatusComplete
	}
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to save terminal job state", "err", err)
	}
	_jobService.NotifyWaiter(job)
}

func removeWorker(reason string) {

	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker ", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()

}

// retireIdleWorker gives up this worker's slot unless the pool is already at
// its minimum size. The CAS arbitrates between workers idling out at the same
// time so the pool never shrinks below minWorkerCount.
func retireIdleWorker() bool {
	for {
		count := atomic.LoadInt64(&currentWorkerCount)
		if count <= minWorkerCount {
			return false
		}
		if atomic.CompareAndSwapInt64(&currentWorkerCount, count, count-1) {
			workerWaitGroup.Done()
			logger.Info("Removed worker ", "reason", "Idle worker timeout", "workerCount", currentWorkerCount)
			metrics.DecrementActiveWorkerCount()
			return true
		}
	}
}

func ingestDocument(ctx context.Context, job jobmodel.Job, logger *logger_i.Logger) jobmodel.Job {
	doc, err := _sqlStore.GetDocument(ctx, job.UserId, job.JobPayload.IngestDocumentId)
	if err != nil {
		logger.Error("Document lookup failed", "documentId", job.JobPayload.IngestDocumentId, "err", err)
		return failJob(job, "document not found")
	}

	job = _ragService.IngestDocument(ctx, job, *doc)
	if job.Status == jobmodel.JobStatusError {
		if err := _sqlStore.UpdateDocumentStatus(ctx, doc.Id, commonModels.DocStatusFailed, 0); err != nil {
			logger.Error("Failed to mark document failed", "err", err)
		}
		return job
	}

	if err := _sqlStore.UpdateDocumentStatus(ctx, doc.Id, commonModels.DocStatusReady, job.JobPayload.ChunkCount); err != nil {
		logger.Error("Failed to mark document ready", "err", err)
	}

	if job.JobPayload.Summary != "" {
		saveSummaryNote(ctx, job.UserId, doc.Name, job.JobPayload.Summary, logger)
	}
	return job
}

func summarizeDocument(ctx context.Context, job jobmodel.Job, logger *logger_i.Logger) jobmodel.Job {
	doc, err := _sqlStore.GetDocument(ctx, job.UserId, job.JobPayload.IngestDocumentId)
	if err != nil {
		logger.Error("Document lookup failed", "documentId", job.JobPayload.IngestDocumentId, "err", err)
		return failJob(job, "document not found")
	}

	text := doc.TextContent
	if text == "" {
		text, err = ingest.ExtractFullText(*doc)
		if err != nil {
			logger.Error("Text extraction failed", "documentId", doc.Id, "err", err)
			return failJob(job, "text extraction failed")
		}
	}

	summary, err := _ragService.SummarizeDocument(ctx, text)
	if err != nil {
		logger.Error("Summary generation failed", "documentId", doc.Id, "err", err)
		return failJob(job, "summary generation failed")
	}

	job.JobPayload.Summary = summary
	saveSummaryNote(ctx, job.UserId, doc.Name, summary, logger)
	job.CurrentStep = jobmodel.Complete
	return job
}

func processQuery(ctx context.Context, job jobmodel.Job, logger *logger_i.Logger) jobmodel.Job {
	messageHistory := loadMessageHistory(ctx, job.UserId, logger)
	return _ragService.ProcessRequest(ctx, job, messageHistory)
}

// loadMessageHistory returns the last few exchanges oldest-first, each as a
// compact JSON question/answer pair for the prompt.
func loadMessageHistory(ctx context.Context, userId string, logger *logger_i.Logger) []string {
	entries, err := _sqlStore.ListChatHistory(ctx, userId, config.HistoryWindow)
	if err != nil {
		logger.Error("Failed to get message history", "err", err)
		return nil
	}

	history := make([]string, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		line, err := json.Marshal(map[string]string{
			"question": entries[i].Question,
			"answer":   entries[i].Answer,
		})
		if err != nil {
			continue
		}
		history = append(history, string(line))
	}
	return history
}

func persistChatEntry(ctx context.Context, job *jobmodel.Job, logger *logger_i.Logger) {
	entry := commonModels.ChatEntry{
		Id:          utils.GetNewUUID(),
		UserId:      job.UserId,
		Question:    job.JobPayload.Question,
		Answer:      job.JobPayload.Answer,
		Sources:     job.JobPayload.Sources,
		DocumentIds: job.JobPayload.DocumentIds,
		CreatedAt:   time.Now(),
	}
	if err := _sqlStore.CreateChatEntry(ctx, &entry); err != nil {
		logger.Error("Failed to save chat history", "err", err)
		return
	}
	job.JobPayload.ChatEntryId = entry.Id
}

func saveSummaryNote(ctx context.Context, userId, docName, summary string, logger *logger_i.Logger) {
	note := commonModels.Note{
		Id:       utils.GetNewUUID(),
		UserId:   userId,
		Content:  fmt.Sprintf("Summary of %s:\n\n%s", docName, summary),
		NoteType: commonModels.NoteTypeAIGenerated,
	}
	if err := _sqlStore.CreateNote(ctx, &note); err != nil {
		logger.Error("Failed to save summary note", "err", err)
	}
}

func failJob(job jobmodel.Job, message string) jobmodel.Job {
	job.Error = jobmodel.JobError{
		Code:    http.StatusInternalServerError,
		Message: message,
		Retry:   false,
	}
	job.Status = jobmodel.JobStatusError
	return job
}

func saveJobState(ctx context.Context, job jobmodel.Job, jobStatus jobmodel.JobStatus) {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update job status", "err", err)
	}
}
