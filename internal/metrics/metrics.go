// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Account metrics
	IncSignup()
	IncLogin()
	IncLoginFailed()

	// Job management metrics
	IncJobCreated()
	IncJobUpdated()
	IncJobDeleted()

	// Application metrics
	IncApplicationCreated()
	IncApplicationDuplicate()

	// Policy metrics
	IncForbidden() // role or ownership check rejected a request
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
