package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/surajroboto/cookie-trac/internal/logging"
	"github.com/surajroboto/cookie-trac/internal/model"
)

type JobEventType string

const (
	JobEventStatus JobEventType = "status"
	JobEventResult JobEventType = "result"
)

type JobEvent struct {
	JobID string       `json:"job_id"`
	Type  JobEventType `json:"type"`

	Status JobStatus `json:"status,omitempty"`
	Error  string    `json:"error,omitempty"`
}

type JobStatus string

const (
	JobPending  JobStatus = "pending"
	JobRunning  JobStatus = "running"
	JobDone     JobStatus = "done"
	JobFailed   JobStatus = "failed"
	JobCanceled JobStatus = "canceled"
)

// ScanJob is one asynchronous scan run tracked by the orchestrator. Jobs
// live in memory only; nothing survives a process restart. Accessors hand
// out point-in-time copies, never the tracked struct; Events is the one
// handle shared between a copy and the running job.
type ScanJob struct {
	ID        string        `json:"id"`
	Website   string        `json:"website"`
	Status    JobStatus     `json:"status"`
	Error     string        `json:"error,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	EndedAt   time.Time     `json:"ended_at"`
	Events    chan JobEvent `json:"-"`

	Report     *model.Report `json:"report,omitempty"`
	ReportPath string        `json:"report_path,omitempty"`
}

// Orchestrator runs scans as background jobs for the API server. The CLI
// path calls Scanner.Scan directly and never touches this.
type Orchestrator struct {
	cfg     *Config
	scanner *Scanner
	logger  logging.Logger

	jobsMu     sync.Mutex
	jobs       map[string]*ScanJob
	jobCancels map[string]context.CancelFunc
}

// NewOrchestrator ties together config, scanner and logger.
func NewOrchestrator(cfg *Config, scanner *Scanner, logger logging.Logger) *Orchestrator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Orchestrator{
		cfg:        cfg,
		scanner:    scanner,
		logger:     logger,
		jobs:       make(map[string]*ScanJob),
		jobCancels: make(map[string]context.CancelFunc),
	}
}

func (o *Orchestrator) emitJobEvent(jobID string, ev JobEvent) {
	o.jobsMu.Lock()
	job, ok := o.jobs[jobID]
	o.jobsMu.Unlock()
	if !ok || job == nil || job.Events == nil {
		return
	}

	// Non-blocking send; drop if buffer is full.
	select {
	case job.Events <- ev:
	default:
	}
}

func (o *Orchestrator) setStatus(jobID string, status JobStatus, errMsg string) {
	o.jobsMu.Lock()
	if j, ok := o.jobs[jobID]; ok {
		j.Status = status
		j.Error = errMsg
	}
	o.jobsMu.Unlock()
	o.emitJobEvent(jobID, JobEvent{
		JobID:  jobID,
		Type:   JobEventStatus,
		Status: status,
		Error:  errMsg,
	})
}

// StartScanJob launches a scan of site in the background and returns the
// tracking job immediately.
func (o *Orchestrator) StartScanJob(ctx context.Context, site string) (*ScanJob, error) {
	jobID := uuid.New().String()
	now := time.Now().UTC()

	job := &ScanJob{
		ID:        jobID,
		Website:   site,
		Status:    JobPending,
		StartedAt: now,
		Events:    make(chan JobEvent, 16),
	}

	o.jobsMu.Lock()
	o.jobs[jobID] = job
	o.jobsMu.Unlock()

	jobCtx, cancel := context.WithCancel(ctx)
	o.jobsMu.Lock()
	o.jobCancels[jobID] = cancel
	o.jobsMu.Unlock()

	o.emitJobEvent(jobID, JobEvent{
		JobID:  jobID,
		Type:   JobEventStatus,
		Status: JobPending,
	})

	go func() {
		defer func() {
			o.jobsMu.Lock()
			if j, ok := o.jobs[jobID]; ok {
				j.EndedAt = time.Now().UTC()
			}
			delete(o.jobCancels, jobID)
			j := o.jobs[jobID]
			o.jobsMu.Unlock()

			// Close events channel so websocket loops can terminate cleanly.
			if j != nil && j.Events != nil {
				close(j.Events)
			}
		}()

		o.setStatus(jobID, JobRunning, "")

		result, err := o.scanner.Scan(jobCtx, site)
		if err != nil {
			select {
			case <-jobCtx.Done():
				o.setStatus(jobID, JobCanceled, jobCtx.Err().Error())
			default:
				o.setStatus(jobID, JobFailed, err.Error())
			}
			return
		}

		o.jobsMu.Lock()
		if j, ok := o.jobs[jobID]; ok {
			j.Status = JobDone
			j.Report = result.Report
			j.ReportPath = result.ReportPath
		}
		o.jobsMu.Unlock()
		o.emitJobEvent(jobID, JobEvent{
			JobID:  jobID,
			Type:   JobEventResult,
			Status: JobDone,
		})
	}()

	o.jobsMu.Lock()
	cp := *job
	o.jobsMu.Unlock()
	return &cp, nil
}

func (o *Orchestrator) CancelJob(jobID string) {
	o.jobsMu.Lock()
	cancel := o.jobCancels[jobID]
	o.jobsMu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// GetJob returns a copy of the job, or nil when unknown. The scan goroutine
// keeps mutating the tracked struct under jobsMu, so callers get a snapshot
// they can read and marshal freely.
func (o *Orchestrator) GetJob(jobID string) *ScanJob {
	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()
	j, ok := o.jobs[jobID]
	if !ok {
		return nil
	}
	cp := *j
	return &cp
}

// ListJobs returns copies of every tracked job.
func (o *Orchestrator) ListJobs() []*ScanJob {
	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()
	out := make([]*ScanJob, 0, len(o.jobs))
	for _, j := range o.jobs {
		cp := *j
		out = append(out, &cp)
	}
	return out
}
