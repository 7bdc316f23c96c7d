package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	ProductsCreated   uint64
	ProductsUpdated   uint64
	ProductsDeleted   uint64
	ProductsListed    uint64
	ProductsRetrieved uint64
	SlugRetriesTotal  uint64
	UsersRegistered   uint64
	LoginsSucceeded   uint64
	LoginsFailed      uint64
	AuthRejected      uint64
}

// InMemoryRecorder stores metrics in memory.
// Used by the /metrics endpoint and by tests.
type InMemoryRecorder struct {
	productsCreated   uint64
	productsUpdated   uint64
	productsDeleted   uint64
	productsListed    uint64
	productsRetrieved uint64
	slugRetriesTotal  uint64
	usersRegistered   uint64
	loginsSucceeded   uint64
	loginsFailed      uint64
	authRejected      uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		ProductsCreated:   atomic.LoadUint64(&m.productsCreated),
		ProductsUpdated:   atomic.LoadUint64(&m.productsUpdated),
		ProductsDeleted:   atomic.LoadUint64(&m.productsDeleted),
		ProductsListed:    atomic.LoadUint64(&m.productsListed),
		ProductsRetrieved: atomic.LoadUint64(&m.productsRetrieved),
		SlugRetriesTotal:  atomic.LoadUint64(&m.slugRetriesTotal),
		UsersRegistered:   atomic.LoadUint64(&m.usersRegistered),
		LoginsSucceeded:   atomic.LoadUint64(&m.loginsSucceeded),
		LoginsFailed:      atomic.LoadUint64(&m.loginsFailed),
		AuthRejected:      atomic.LoadUint64(&m.authRejected),
	}
}

// IncProductCreated increments the product created counter.
func (m *InMemoryRecorder) IncProductCreated() {
	atomic.AddUint64(&m.productsCreated, 1)
}

// IncProductUpdated increments the product updated counter.
func (m *InMemoryRecorder) IncProductUpdated() {
	atomic.AddUint64(&m.productsUpdated, 1)
}

// IncProductDeleted increments the product deleted counter.
func (m *InMemoryRecorder) IncProductDeleted() {
	atomic.AddUint64(&m.productsDeleted, 1)
}

// IncProductListed increments the listing counter.
func (m *InMemoryRecorder) IncProductListed() {
	atomic.AddUint64(&m.productsListed, 1)
}

// IncProductRetrieved increments the single-product lookup counter.
func (m *InMemoryRecorder) IncProductRetrieved() {
	atomic.AddUint64(&m.productsRetrieved, 1)
}

// ObserveSlugRetries accumulates slug suffix retries.
func (m *InMemoryRecorder) ObserveSlugRetries(retries int) {
	if retries > 0 {
		atomic.AddUint64(&m.slugRetriesTotal, uint64(retries))
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncLoginSucceeded increments the successful login counter.
func (m *InMemoryRecorder) IncLoginSucceeded() {
	atomic.AddUint64(&m.loginsSucceeded, 1)
}

// IncLoginFailed increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailed() {
	atomic.AddUint64(&m.loginsFailed, 1)
}

// IncAuthRejected increments the rejected request counter.
func (m *InMemoryRecorder) IncAuthRejected() {
	atomic.AddUint64(&m.authRejected, 1)
}
