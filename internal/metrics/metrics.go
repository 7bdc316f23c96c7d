// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Catalog metrics
	IncProductCreated()
	IncProductUpdated()
	IncProductDeleted()
	IncProductListed()
	IncProductRetrieved()
	ObserveSlugRetries(retries int)

	// Auth metrics
	IncUserRegistered()
	IncLoginSucceeded()
	IncLoginFailed()
	IncAuthRejected()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
