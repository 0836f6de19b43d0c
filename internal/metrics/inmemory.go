package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Signups               uint64 `json:"signups"`
	Logins                uint64 `json:"logins"`
	LoginsFailed          uint64 `json:"logins_failed"`
	JobsCreated           uint64 `json:"jobs_created"`
	JobsUpdated           uint64 `json:"jobs_updated"`
	JobsDeleted           uint64 `json:"jobs_deleted"`
	ApplicationsCreated   uint64 `json:"applications_created"`
	ApplicationDuplicates uint64 `json:"application_duplicates"`
	Forbidden             uint64 `json:"forbidden"`
}

// InMemoryRecorder stores metrics in memory.
// Used by tests and the /metrics debug endpoint.
type InMemoryRecorder struct {
	signups               uint64
	logins                uint64
	loginsFailed          uint64
	jobsCreated           uint64
	jobsUpdated           uint64
	jobsDeleted           uint64
	applicationsCreated   uint64
	applicationDuplicates uint64
	forbidden             uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		Signups:               atomic.LoadUint64(&m.signups),
		Logins:                atomic.LoadUint64(&m.logins),
		LoginsFailed:          atomic.LoadUint64(&m.loginsFailed),
		JobsCreated:           atomic.LoadUint64(&m.jobsCreated),
		JobsUpdated:           atomic.LoadUint64(&m.jobsUpdated),
		JobsDeleted:           atomic.LoadUint64(&m.jobsDeleted),
		ApplicationsCreated:   atomic.LoadUint64(&m.applicationsCreated),
		ApplicationDuplicates: atomic.LoadUint64(&m.applicationDuplicates),
		Forbidden:             atomic.LoadUint64(&m.forbidden),
	}
}

// IncSignup increments the signup counter.
func (m *InMemoryRecorder) IncSignup() {
	atomic.AddUint64(&m.signups, 1)
}

// IncLogin increments the successful login counter.
func (m *InMemoryRecorder) IncLogin() {
	atomic.AddUint64(&m.logins, 1)
}

// IncLoginFailed increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailed() {
	atomic.AddUint64(&m.loginsFailed, 1)
}

// IncJobCreated increments the job created counter.
func (m *InMemoryRecorder) IncJobCreated() {
	atomic.AddUint64(&m.jobsCreated, 1)
}

// IncJobUpdated increments the job updated counter.
func (m *InMemoryRecorder) IncJobUpdated() {
	atomic.AddUint64(&m.jobsUpdated, 1)
}

// IncJobDeleted increments the job deleted counter.
func (m *InMemoryRecorder) IncJobDeleted() {
	atomic.AddUint64(&m.jobsDeleted, 1)
}

// IncApplicationCreated increments the application created counter.
func (m *InMemoryRecorder) IncApplicationCreated() {
	atomic.AddUint64(&m.applicationsCreated, 1)
}

// IncApplicationDuplicate increments the duplicate application counter.
func (m *InMemoryRecorder) IncApplicationDuplicate() {
	atomic.AddUint64(&m.applicationDuplicates, 1)
}

// IncForbidden increments the forbidden counter.
func (m *InMemoryRecorder) IncForbidden() {
	atomic.AddUint64(&m.forbidden, 1)
}
