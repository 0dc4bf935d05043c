package job

import (
	"sync"

	"github.com/Wissal65/RAG-Application/internal/domain/jobModel"
)

type Service struct {
	JobChannel        chan jobModel.Job
	RequestCount      int64
	DispatcherChannel chan bool
	JobStore          jobModel.JobStore

	waiterMutex sync.Mutex
	waiters     map[string]chan jobModel.Job
}

type ServiceConfig struct {
	JobChannel        chan jobModel.Job
	RequestCount      int64
	DispatcherChannel chan bool
	JobStore          jobModel.JobStore
}

func InitJobService(cfg ServiceConfig) *Service {
	return &Service{
		JobChannel:        cfg.JobChannel,
		RequestCount:      cfg.RequestCount,
		DispatcherChannel: cfg.DispatcherChannel,
		JobStore:          cfg.JobStore,
		waiters:           make(map[string]chan jobModel.Job),
	}
}

// RegisterWaiter hands back a channel that receives the finished job once a
// worker completes it. Callers running in sync mode block on it with their
// own deadline, then must call CancelWaiter.
func (s *Service) RegisterWaiter(jobId string) <-chan jobModel.Job {
	ch := make(chan jobModel.Job, 1)
	s.waiterMutex.Lock()
	s.waiters[jobId] = ch
	s.waiterMutex.Unlock()
	return ch
}

func (s *Service) CancelWaiter(jobId string) {
	s.waiterMutex.Lock()
	delete(s.waiters, jobId)
	s.waiterMutex.Unlock()
}

// NotifyWaiter delivers the terminal job state to a registered waiter, if
// any. The send never blocks; a waiter that already timed out simply misses
// the delivery and the result stays available through the job store.
func (s *Service) NotifyWaiter(job jobModel.Job) {
	s.waiterMutex.Lock()
	ch, ok := s.waiters[job.Id]
	if ok {
		delete(s.waiters, job.Id)
	}
	s.waiterMutex.Unlock()
	if ok {
		select {
		case ch <- job:
		default:
		}
	}
}
