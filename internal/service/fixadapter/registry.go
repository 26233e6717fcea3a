package fixadapter

import "sync"

// SpotKey is the subscription identity of a spot request for one symbol.
func SpotKey(symbol string) string {
	return symbol + "::SPOT"
}

// ForwardKey is the subscription identity of a forward request for one
// symbol and normalized tenor.
func ForwardKey(symbol, normalizedTenor string) string {
	return symbol + "::" + normalizedTenor
}

// SubscriptionRegistry is the dedup gate for outbound market data requests.
// It is the only shared mutable state in the adapter core: logon fan-out for
// distinct sessions may run concurrently, so reservation is atomic per key.
// The registry is session-scoped and cleared at the start of each logon
// cycle.
type SubscriptionRegistry struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func NewSubscriptionRegistry() *SubscriptionRegistry {
	return &SubscriptionRegistry{keys: make(map[string]struct{})}
}

// TryReserve atomically inserts key and reports whether it was newly added.
// A false result means the subscription was already requested.
func (r *SubscriptionRegistry) TryReserve(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.keys[key]; ok {
		return false
	}
	r.keys[key] = struct{}{}
	return true
}

// Release removes a reservation so a later retry can re-attempt the key.
// Called when a send fails after the key was reserved.
func (r *SubscriptionRegistry) Release(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.keys, key)
}

// Clear drops all reservations. Invoked once per new logon cycle.
func (r *SubscriptionRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = make(map[string]struct{})
}

func (r *SubscriptionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.keys)
}
