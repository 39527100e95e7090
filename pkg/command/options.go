package command

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger replaces the default component logger.
func WithLogger(l *log.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithClock replaces time.Now for cooldown and rate-limit arithmetic.
func WithClock(now Clock) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// WithObserver reports every dispatch outcome to o.
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) {
		d.observer = o
	}
}

// WithBinder makes Register bind each root with the host platform.
func WithBinder(b Binder) Option {
	return func(d *Dispatcher) {
		d.binder = b
	}
}

// WithStrictRegistration makes Register fail with a DuplicateRegistrationError
// instead of letting the later node shadow an existing name or alias.
func WithStrictRegistration() Option {
	return func(d *Dispatcher) {
		d.strict = true
	}
}

// WithRateLimit caps every identified caller at perSecond dispatches with the
// given burst. Callers without an identity are not limited.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(d *Dispatcher) {
		if perSecond <= 0 {
			d.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		d.limiter = newCallerLimiter(rate.Limit(perSecond), burst)
	}
}

// WithCooldownCapacity bounds each node's cooldown table to capacity callers,
// evicting the least recently seen. Zero keeps the unbounded default.
func WithCooldownCapacity(capacity int) Option {
	return func(d *Dispatcher) {
		d.cooldownCapacity = capacity
	}
}

// callerLimiter keeps one token bucket per caller identity.
type callerLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

func newCallerLimiter(limit rate.Limit, burst int) *callerLimiter {
	return &callerLimiter{
		limit:    limit,
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *callerLimiter) allow(identity string, now time.Time) bool {
	l.mu.Lock()
	lim, ok := l.limiters[identity]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[identity] = lim
	}
	l.mu.Unlock()
	return lim.AllowN(now, 1)
}
