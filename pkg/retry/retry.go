// Package retry retries transient store failures with exponential backoff and jitter.
package retry

import (
	"context"
	"database/sql/driver"
	"errors"
	"math"
	"math/rand/v2"
	"net"
	"strings"
	"time"

	"skill_matrix_backend/internal/config"
)

// Policy controls how many attempts are made and how long to wait between them.
type Policy struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// FromConfig builds a Policy from the retry section of the config.
func FromConfig(cfg config.RetryConfig) Policy {
	p := Policy{
		MaxAttempts: cfg.MaxAttempts,
		InitialWait: time.Duration(cfg.InitialWaitMS) * time.Millisecond,
		MaxWait:     time.Duration(cfg.MaxWaitMS) * time.Millisecond,
		Multiplier:  cfg.Multiplier,
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}
	if p.Multiplier < 1 {
		p.Multiplier = 1
	}
	return p
}

// Do runs fn until it succeeds, returns a non-transient error, the context
// ends, or the attempts are used up.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := range attempts {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !IsTransient(err) {
			return err
		}
		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.backoff(attempt)):
		}
	}
	return lastErr
}

// backoff computes the wait before the next attempt with full jitter.
func (p Policy) backoff(attempt int) time.Duration {
	base := float64(p.InitialWait) * math.Pow(p.Multiplier, float64(attempt))
	if p.MaxWait > 0 && base > float64(p.MaxWait) {
		base = float64(p.MaxWait)
	}
	if base <= 0 {
		return 0
	}
	// Full jitter in [base/2, base).
	half := base / 2
	return time.Duration(half + rand.Float64()*half)
}

// IsTransient reports whether err is worth retrying: dropped connections,
// network timeouts, deadlocks and serialization failures. Context errors
// are never transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

var transientMarkers = []string{
	"deadlock",
	"could not serialize access",
	"connection reset",
	"connection refused",
	"broken pipe",
	"database is locked",
	"bad connection",
	"lock wait timeout",
}
