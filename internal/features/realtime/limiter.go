package realtime

import (
	"sync"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	publishEventsPerSecond = 10
	publishBurst           = 20
)

// publishLimiter throttles event broadcasts per user. The hub is
// process-local, so an in-process limiter matches its scope.
type publishLimiter struct {
	mu       sync.Mutex
	limiters map[uuid.UUID]*rate.Limiter
}

func newPublishLimiter() *publishLimiter {
	return &publishLimiter{
		limiters: make(map[uuid.UUID]*rate.Limiter),
	}
}

func (l *publishLimiter) Allow(userID uuid.UUID) bool {
	l.mu.Lock()
	limiter, exists := l.limiters[userID]
	if !exists {
		limiter = rate.NewLimiter(rate.Limit(publishEventsPerSecond), publishBurst)
		l.limiters[userID] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}
