package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncSignup is a no-op.
func (n *NoopRecorder) IncSignup() {}

// IncLogin is a no-op.
func (n *NoopRecorder) IncLogin() {}

// IncLoginFailed is a no-op.
func (n *NoopRecorder) IncLoginFailed() {}

// IncJobCreated is a no-op.
func (n *NoopRecorder) IncJobCreated() {}

// IncJobUpdated is a no-op.
func (n *NoopRecorder) IncJobUpdated() {}

// IncJobDeleted is a no-op.
func (n *NoopRecorder) IncJobDeleted() {}

// IncApplicationCreated is a no-op.
func (n *NoopRecorder) IncApplicationCreated() {}

// IncApplicationDuplicate is a no-op.
func (n *NoopRecorder) IncApplicationDuplicate() {}

// IncForbidden is a no-op.
func (n *NoopRecorder) IncForbidden() {}
