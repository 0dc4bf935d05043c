package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Wissal65/RAG-Application/internal/config"
	"github.com/Wissal65/RAG-Application/internal/domain/jobModel"
	"github.com/Wissal65/RAG-Application/internal/job"
	"github.com/Wissal65/RAG-Application/internal/metrics"
	"github.com/Wissal65/RAG-Application/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

type JobHandler struct {
	service *job.Service
}

type newJobData struct {
	id          string
	userId      string
	traceId     string
	jobType     jobModel.JobType
	question    string
	documentIds []string
	documentId  string
	autoSummary bool
}

func InitJobHandler(jobService *job.Service) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService}

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})

}

func CreateNewJob(newJob newJobData) {
	logJH.With("traceId", newJob.traceId, "job id", newJob.id)
	logJH.Info("To create new job")
	handlerInstance.pushToJobChannel(newJob)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

// CreateJobAndWait enqueues the job and blocks until a worker finishes it or
// the sync deadline passes. The waiter is registered before the push so a
// fast worker cannot complete the job unobserved. On timeout the caller
// falls back to the 202-and-poll contract.
func CreateJobAndWait(newJob newJobData) (jobModel.Job, bool) {
	waiter := handlerInstance.service.RegisterWaiter(newJob.id)
	defer handlerInstance.service.CancelWaiter(newJob.id)

	CreateNewJob(newJob)

	select {
	case finished := <-waiter:
		return finished, true
	case <-time.After(config.SyncQueryTimeout):
		return jobModel.Job{}, false
	}
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {

	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.UserId = newJob.userId
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobModel.JobStatusQueued
	_job.JobType = newJob.jobType

	switch newJob.jobType {
	case jobModel.JobTypeIngest:
		_job.CurrentStep = jobModel.IngestInit
		_job.JobPayload.IngestDocumentId = newJob.documentId
		_job.JobPayload.AutoSummary = newJob.autoSummary

	case jobModel.JobTypeSummarize:
		_job.CurrentStep = jobModel.SummaryCall
		_job.JobPayload.IngestDocumentId = newJob.documentId

	default:
		_job.CurrentStep = jobModel.UserQueryInit
		_job.JobPayload.Question = newJob.question
		_job.JobPayload.DocumentIds = newJob.documentIds
	}

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //this is a blocking send to prevent the system from being overwhelmed
	logJH.Info("Created new job")

	//we will start a new worker every 10 requests - can also be configured
	// or
	//for performance - a new worker is added for an ingestion type job
	//ingestion involves batch embedding which might take time - external system call
	//worker will be removed if it has idle time - so it should be ok
	//this also allows us to only keep 1 worker running at most times therefore cutting resource spend

	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1) //after sending a request increment counter
	if accurateCount%config.RequestsPerNewWorkerCount == 0 || _job.JobType != jobModel.JobTypeQuery {
		metrics.StartDispatcherSignalCount() //metrics
		logJH.Debug("Worker count ", accurateCount)
		h.service.DispatcherChannel <- true
	}
}
