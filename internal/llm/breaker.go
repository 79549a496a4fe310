package llm

import (
	"context"
	"sync"
	"time"
)

// CircuitState represents the state of the circuit breaker
type CircuitState int

const (
	CircuitClosed   CircuitState = iota // Normal operation
	CircuitOpen                         // Failing, reject requests
	CircuitHalfOpen                     // Testing if recovered
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	}
	return "unknown"
}

// Breaker is a Completer that stops calling a failing upstream for a while.
// While open, Complete returns ErrCircuitOpen without a network call.
type Breaker struct {
	next Completer
	now  func() time.Time

	mu              sync.Mutex
	state           CircuitState
	failures        int
	successes       int
	lastFailureTime time.Time

	FailureThreshold int           // Number of failures before opening
	SuccessThreshold int           // Number of successes before closing
	Timeout          time.Duration // How long to wait before half-open
	OnStateChange    func(from, to CircuitState)
}

// NewBreaker wraps next with default thresholds
func NewBreaker(next Completer) *Breaker {
	return &Breaker{
		next:             next,
		now:              time.Now,
		state:            CircuitClosed,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
	}
}

// Complete forwards to the wrapped Completer when the circuit allows it
func (b *Breaker) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if !b.allow() {
		return "", ErrCircuitOpen
	}

	text, err := b.next.Complete(ctx, req)
	if err != nil {
		b.recordFailure()
		return "", err
	}

	b.recordSuccess()
	return text, nil
}

func (b *Breaker) Model() string {
	return b.next.Model()
}

// State returns the current state
func (b *Breaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitClosed, CircuitHalfOpen:
		return true
	case CircuitOpen:
		if b.now().Sub(b.lastFailureTime) > b.Timeout {
			b.setState(CircuitHalfOpen)
			return true
		}
	}
	return false
}

func (b *Breaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitHalfOpen:
		b.successes++
		if b.successes >= b.SuccessThreshold {
			b.setState(CircuitClosed)
			b.failures = 0
			b.successes = 0
		}
	case CircuitClosed:
		b.failures = 0
	}
}

func (b *Breaker) recordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	b.lastFailureTime = b.now()

	switch b.state {
	case CircuitClosed:
		if b.failures >= b.FailureThreshold {
			b.setState(CircuitOpen)
		}
	case CircuitHalfOpen:
		b.setState(CircuitOpen)
		b.successes = 0
	}
}

func (b *Breaker) setState(newState CircuitState) {
	if b.OnStateChange != nil && b.state != newState {
		b.OnStateChange(b.state, newState)
	}
	b.state = newState
}
