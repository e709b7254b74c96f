package geoloc

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Fix is a single acquired coordinate reading. Immutable; a retry produces a
// new Fix rather than mutating the old one.
type Fix struct {
	Latitude   float64
	Longitude  float64
	AcquiredAt time.Time
}

// Options controls a single acquisition attempt.
type Options struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaxFixAge    time.Duration
}

// DefaultOptions are the fixed policy values used by the kiosk. They are not
// user-configurable.
func DefaultOptions() Options {
	return Options{
		HighAccuracy: true,
		Timeout:      10 * time.Second,
		MaxFixAge:    5 * time.Minute,
	}
}

// Source is the platform location capability.
type Source interface {
	// Locate blocks until a fix is available or ctx expires.
	Locate(ctx context.Context, highAccuracy bool) (Fix, error)
}

// Acquirer requests coordinates from a Source and keeps the last fix and
// last error for the display layer. It never retries on its own; the caller
// re-invokes Acquire.
type Acquirer struct {
	source Source
	opts   Options
	now    func() time.Time

	mu      sync.Mutex
	lastFix *Fix
	lastErr error
}

func NewAcquirer(source Source, opts Options) *Acquirer {
	return &Acquirer{
		source: source,
		opts:   opts,
		now:    time.Now,
	}
}

// Acquire returns current coordinates. A cached fix younger than MaxFixAge is
// served without touching the source. A failed attempt records the error but
// leaves any previously acquired fix in place.
func (a *Acquirer) Acquire(ctx context.Context) (Fix, error) {
	a.mu.Lock()

	if a.source == nil {
		a.lastErr = ErrUnavailable
		a.mu.Unlock()
		return Fix{}, ErrUnavailable
	}

	if a.lastFix != nil && a.now().Sub(a.lastFix.AcquiredAt) <= a.opts.MaxFixAge {
		fix := *a.lastFix
		a.mu.Unlock()
		return fix, nil
	}
	a.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
	defer cancel()

	fix, err := a.source.Locate(ctx, a.opts.HighAccuracy)

	a.mu.Lock()
	defer a.mu.Unlock()

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = ErrTimeout
		}
		a.lastErr = err
		return Fix{}, err
	}

	if fix.AcquiredAt.IsZero() {
		fix.AcquiredAt = a.now()
	}

	a.lastFix = &fix
	a.lastErr = nil
	return fix, nil
}

// LastFix returns the most recent successful fix, if any.
func (a *Acquirer) LastFix() *Fix {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.lastFix == nil {
		return nil
	}
	fix := *a.lastFix
	return &fix
}

// LastError returns the most recent acquisition error, cleared by the next
// successful fix.
func (a *Acquirer) LastError() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}
