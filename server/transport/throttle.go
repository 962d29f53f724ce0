package transport

import (
	"sync"

	"golang.org/x/time/rate"
)

// Throttle limits the rate of requests per client address using RPM
// (requests per minute) and RPS (requests per second) limiter pairs.
type Throttle struct {
	defaultRPS int
	defaultRPM int
	mu         sync.Mutex
	limiters   map[string]*limiterPair
}

// limiterPair holds the RPS and RPM limiters for one client
type limiterPair struct {
	rpsLimiter *rate.Limiter
	rpmLimiter *rate.Limiter
}

// NewThrottle creates a new throttle. A zero or negative value disables the
// corresponding limit; with both disabled Allow always returns true.
func NewThrottle(defaultRPS, defaultRPM int) *Throttle {
	return &Throttle{
		defaultRPS: defaultRPS,
		defaultRPM: defaultRPM,
		limiters:   make(map[string]*limiterPair),
	}
}

// getLimiters gets or creates rate limiters for a client address
func (t *Throttle) getLimiters(clientAddr string) *limiterPair {
	t.mu.Lock()
	defer t.mu.Unlock()

	pair, ok := t.limiters[clientAddr]
	if ok {
		return pair
	}

	pair = &limiterPair{}
	if t.defaultRPM > 0 {
		// Convert RPM to requests per second for the limiter
		pair.rpmLimiter = rate.NewLimiter(rate.Limit(t.defaultRPM)/60.0, t.defaultRPM)
	}
	if t.defaultRPS > 0 {
		pair.rpsLimiter = rate.NewLimiter(rate.Limit(t.defaultRPS), t.defaultRPS)
	}
	t.limiters[clientAddr] = pair
	return pair
}

// Allow reports whether one more request from clientAddr fits both limits.
func (t *Throttle) Allow(clientAddr string) bool {
	pair := t.getLimiters(clientAddr)

	if pair.rpmLimiter != nil && !pair.rpmLimiter.Allow() {
		return false
	}
	if pair.rpsLimiter != nil && !pair.rpsLimiter.Allow() {
		return false
	}
	return true
}
