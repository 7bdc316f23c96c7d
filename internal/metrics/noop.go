package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncProductCreated is a no-op.
func (n *NoopRecorder) IncProductCreated() {}

// IncProductUpdated is a no-op.
func (n *NoopRecorder) IncProductUpdated() {}

// IncProductDeleted is a no-op.
func (n *NoopRecorder) IncProductDeleted() {}

// IncProductListed is a no-op.
func (n *NoopRecorder) IncProductListed() {}

// IncProductRetrieved is a no-op.
func (n *NoopRecorder) IncProductRetrieved() {}

// ObserveSlugRetries is a no-op.
func (n *NoopRecorder) ObserveSlugRetries(retries int) {}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncLoginSucceeded is a no-op.
func (n *NoopRecorder) IncLoginSucceeded() {}

// IncLoginFailed is a no-op.
func (n *NoopRecorder) IncLoginFailed() {}

// IncAuthRejected is a no-op.
func (n *NoopRecorder) IncAuthRejected() {}
