package submission

import (
	"context"
	"errors"
	"sync"

	"github.com/presensia/attendance-portal-go/internal/pkg/camera"
	"github.com/presensia/attendance-portal-go/internal/pkg/geoloc"
	"github.com/presensia/attendance-portal-go/internal/pkg/portalapi"
)

var (
	// ErrNotReady indicates the capture or the fix is missing. No network
	// call is attempted.
	ErrNotReady = errors.New("submission not ready: capture and location fix required")

	// ErrAlreadyInProgress indicates another submission is still in
	// flight.
	ErrAlreadyInProgress = errors.New("submission already in progress")

	// ErrSuperseded indicates the submission completed after the
	// coordinator was invalidated; its result was discarded.
	ErrSuperseded = errors.New("submission superseded")
)

// Submitter sends a sealed payload to the attendance service.
type Submitter interface {
	MarkAttendance(ctx context.Context, image []byte, latitude, longitude float64) (*portalapi.MarkResult, error)
}

// Coordinator gates submission until both a captured image and a location
// fix exist, then performs exactly one in-flight call at a time.
type Coordinator struct {
	submitter Submitter

	mu         sync.Mutex
	inFlight   bool
	generation uint64
}

func NewCoordinator(submitter Submitter) *Coordinator {
	return &Coordinator{
		submitter: submitter,
	}
}

// Submit seals the captured image and fix into one payload and hands it to
// the service. On success the session's image is cleared so the next
// submission needs a fresh capture; the fix stays for display. On failure
// both are left untouched so the user can retry.
func (c *Coordinator) Submit(ctx context.Context, session *camera.Session, fix *geoloc.Fix) (*portalapi.MarkResult, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil, ErrAlreadyInProgress
	}

	if session == nil || session.State() != camera.StateCaptured || fix == nil {
		c.mu.Unlock()
		return nil, ErrNotReady
	}

	image := session.Image()
	if len(image) == 0 {
		c.mu.Unlock()
		return nil, ErrNotReady
	}

	c.inFlight = true
	gen := c.generation
	c.mu.Unlock()

	result, err := c.submitter.MarkAttendance(ctx, image, fix.Latitude, fix.Longitude)

	c.mu.Lock()
	c.inFlight = false
	stale := gen != c.generation
	c.mu.Unlock()

	if stale {
		// The caller moved on while the call was in flight. Do not touch
		// the session or surface the result.
		return nil, ErrSuperseded
	}

	if err != nil {
		return nil, err
	}

	session.ClearImage()
	return result, nil
}

// Invalidate marks any in-flight submission stale so its completion is
// discarded. Called on teardown or when the user abandons the flow.
func (c *Coordinator) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
}
