package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Wissal65/RAG-Application/internal/config"
	"github.com/Wissal65/RAG-Application/internal/data/sqlStore"
	"github.com/Wissal65/RAG-Application/internal/domain/commonModels"
	"github.com/Wissal65/RAG-Application/internal/domain/jobModel"
	"github.com/Wissal65/RAG-Application/internal/job"
	"github.com/Wissal65/RAG-Application/pkg/logger_i"
)

// MockRagService to track if jobs are executed
type MockRagService struct {
	ProcessedCount int32
}

func (m *MockRagService) ProcessRequest(ctx context.Context, j jobModel.Job, hist []string) jobModel.Job {
	atomic.AddInt32(&m.ProcessedCount, 1)
	j.Status = jobModel.JobStatusComplete
	return j
}

func (m *MockRagService) IngestDocument(ctx context.Context, j jobModel.Job, doc commonModels.Document) jobModel.Job {
	atomic.AddInt32(&m.ProcessedCount, 1)
	j.Status = jobModel.JobStatusComplete
	return j
}

func (m *MockRagService) SummarizeDocument(ctx context.Context, text string) (string, error) {
	return "summary", nil
}

type MockJobStore struct {
	OnSaveJob func(ctx context.Context, job jobModel.Job) error
}

func (m *MockJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	return jobModel.Job{}, false
}

func (m *MockJobStore) DeleteJob(ctx context.Context, jobID string) {}

func (m *MockJobStore) SaveJob(ctx context.Context, j jobModel.Job) error {
	if m.OnSaveJob != nil {
		return m.OnSaveJob(ctx, j)
	}
	return nil
}

// MockStore overrides only what the worker touches; anything else is a bug
// in the test and panics.
type MockStore struct {
	sqlStore.Store

	OnCreateChatEntry func(ctx context.Context, entry *commonModels.ChatEntry) error
	OnGetDocument     func(ctx context.Context, userId, docId string) (*commonModels.Document, error)
}

func (m *MockStore) ListChatHistory(ctx context.Context, userId string, limit int) ([]commonModels.ChatEntry, error) {
	return nil, nil
}

func (m *MockStore) CreateChatEntry(ctx context.Context, entry *commonModels.ChatEntry) error {
	if m.OnCreateChatEntry != nil {
		return m.OnCreateChatEntry(ctx, entry)
	}
	return nil
}

func (m *MockStore) GetDocument(ctx context.Context, userId, docId string) (*commonModels.Document, error) {
	if m.OnGetDocument != nil {
		return m.OnGetDocument(ctx, userId, docId)
	}
	return &commonModels.Document{Id: docId, UserId: userId}, nil
}

func (m *MockStore) UpdateDocumentStatus(ctx context.Context, docId string, status commonModels.DocStatus, chunkCount int) error {
	return nil
}

func (m *MockStore) CreateNote(ctx context.Context, note *commonModels.Note) error {
	return nil
}

func TestWorkerPool_Flow(t *testing.T) {
	// 1. Setup
	jobSvc := job.InitJobService(job.ServiceConfig{
		JobChannel:        make(chan jobModel.Job, 10),
		DispatcherChannel: make(chan bool, 10),
		JobStore:          &MockJobStore{},
	})
	mockRag := &MockRagService{}
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	InitServices(jobSvc, mockRag, &MockStore{})
	InitWorkerPool(stopChan, wg)

	// Reset global state for test
	atomic.StoreInt64(&currentWorkerCount, 0)

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		// Signal dispatcher to create a worker
		jobSvc.DispatcherChannel <- true

		// Give it a millisecond to spawn
		time.Sleep(50 * time.Millisecond)

		count := atomic.LoadInt64(&currentWorkerCount)
		if count < 1 {
			t.Errorf("Expected at least 1 worker, got %d", count)
		}
	})

	t.Run("Worker processes a job", func(t *testing.T) {
		testJob := jobModel.Job{Id: "test-1", JobType: jobModel.JobTypeQuery}
		jobSvc.JobChannel <- testJob

		// Wait for worker to pick up and process
		time.Sleep(50 * time.Millisecond)

		processed := atomic.LoadInt32(&mockRag.ProcessedCount)
		if processed != 1 {
			t.Errorf("Expected 1 job processed, got %d", processed)
		}
	})

	t.Run("Worker notifies sync waiter", func(t *testing.T) {
		testJob := jobModel.Job{Id: "waited-job", JobType: jobModel.JobTypeQuery}
		waiter := jobSvc.RegisterWaiter(testJob.Id)
		jobSvc.JobChannel <- testJob

		select {
		case finished := <-waiter:
			if finished.Status != jobModel.JobStatusComplete {
				t.Errorf("Waiter got status %v, want COMPLETE", finished.Status)
			}
		case <-time.After(2 * time.Second):
			t.Error("Waiter never notified")
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		// Send stop signal
		close(stopChan)

		// Wait for workers to exit
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			// Success
		case <-time.After(2 * time.Second):
			t.Error("Workers did not stop within timeout")
		}
	})
}

func TestWorker_IngestUpdatesDocument(t *testing.T) {
	var gotStatus commonModels.DocStatus
	store := &MockStore{}
	statusStore := &ingestRecordingStore{MockStore: store, onStatus: func(s commonModels.DocStatus) { gotStatus = s }}

	jobSvc := job.InitJobService(job.ServiceConfig{
		JobChannel:        make(chan jobModel.Job, 1),
		DispatcherChannel: make(chan bool, 1),
		JobStore:          &MockJobStore{},
	})
	logger = logger_i.NewLogger("TestWorkerPool")
	InitServices(jobSvc, &MockRagService{}, statusStore)

	executeJob(jobModel.Job{
		Id:      "ingest-1",
		UserId:  "user-1",
		JobType: jobModel.JobTypeIngest,
		JobPayload: jobModel.JobPayload{
			IngestDocumentId: "doc-1",
		},
	})

	if gotStatus != commonModels.DocStatusReady {
		t.Errorf("Document status got %v, want READY", gotStatus)
	}
}

type ingestRecordingStore struct {
	*MockStore
	onStatus func(commonModels.DocStatus)
}

func (s *ingestRecordingStore) UpdateDocumentStatus(ctx context.Context, docId string, status commonModels.DocStatus, chunkCount int) error {
	s.onStatus(status)
	return nil
}

func TestWorker_IdleTimeout(t *testing.T) {
	// Shrink the timeout so the suite doesn't wait a real minute
	savedTimeout := idleWorkerTimeout
	idleWorkerTimeout = 100 * time.Millisecond
	defer func() { idleWorkerTimeout = savedTimeout }()

	atomic.StoreInt64(&currentWorkerCount, 0)
	logger = logger_i.NewLogger("TestWorkerPool")
	jobSvc := job.InitJobService(job.ServiceConfig{
		JobChannel: make(chan jobModel.Job),
	})
	InitServices(jobSvc, &MockRagService{}, &MockStore{})

	wg := &sync.WaitGroup{}
	stopChan := make(chan bool)
	workerWaitGroup = wg
	stopWorkerChannel = stopChan

	// Two idle workers over an empty channel with the production minimum of 1:
	// the pool must shrink back down to the minimum and no further.
	createWorker()
	createWorker()

	deadline := time.After(2 * time.Second)
	for atomic.LoadInt64(&currentWorkerCount) > config.MinWorkerCount {
		select {
		case <-deadline:
			t.Fatalf("Idle workers never retired: worker count is %d, want %d", atomic.LoadInt64(&currentWorkerCount), config.MinWorkerCount)
		case <-time.After(20 * time.Millisecond):
		}
	}

	// The last worker is the minimum and must survive further idle periods
	time.Sleep(3 * idleWorkerTimeout)
	if count := atomic.LoadInt64(&currentWorkerCount); count != config.MinWorkerCount {
		t.Errorf("Minimum worker retired: worker count is %d, want %d", count, config.MinWorkerCount)
	}

	close(stopChan)
	wg.Wait()
}
