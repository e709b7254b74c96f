package camera

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"sync"

	"golang.org/x/image/draw"
)

// Session states.
type State int

const (
	StateIdle State = iota
	StateStreaming
	StateCaptured
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStreaming:
		return "streaming"
	case StateCaptured:
		return "captured"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Still-image export parameters. 640x480 at JPEG quality 80; smaller native
// frames are exported at native size.
const (
	targetWidth  = 640
	targetHeight = 480
	jpegQuality  = 80
)

// Session manages a camera device from activation to still-image export.
// It owns the device handle exclusively while streaming and guarantees the
// handle is released exactly once on every path out of the streaming state.
type Session struct {
	device Device

	mu     sync.Mutex
	state  State
	opened bool // device handle currently held
	image  []byte
}

func NewSession(device Device) *Session {
	return &Session{
		device: device,
		state:  StateIdle,
	}
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Image returns the captured still, or nil if none is held.
func (s *Session) Image() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.image
}

// Start opens the device and begins streaming. Starting while already
// streaming or after a capture discards the previous cycle first, so each
// Start begins a fresh capture intent.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.releaseLocked()
	s.image = nil

	if err := s.device.Open(ctx); err != nil {
		s.state = StateIdle
		return fmt.Errorf("failed to start capture session: %w", err)
	}

	s.opened = true
	s.state = StateStreaming
	return nil
}

// Capture grabs a frame, encodes it, and moves the session to Captured,
// releasing the device. Calling Capture while not streaming is a no-op and
// returns no artifact.
func (s *Session) Capture(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateStreaming {
		return nil, nil
	}

	frame, err := s.device.Frame(ctx)
	if err != nil {
		s.releaseLocked()
		s.state = StateFailed
		return nil, fmt.Errorf("failed to capture frame: %w", err)
	}

	encoded, err := encodeStill(frame)
	if err != nil {
		s.releaseLocked()
		s.state = StateFailed
		return nil, err
	}

	s.releaseLocked()
	s.image = encoded
	s.state = StateCaptured
	return encoded, nil
}

// Stop releases the device and returns the session to Idle. Safe to call in
// any state; calling it twice in a row is a no-op the second time.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.releaseLocked()
	if s.state == StateStreaming {
		s.state = StateIdle
	}
}

// ClearImage drops the captured still without touching the device, forcing a
// fresh capture cycle before the next submission.
func (s *Session) ClearImage() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.image = nil
	if s.state == StateCaptured {
		s.state = StateIdle
	}
}

// releaseLocked closes the device handle if it is held. Callers hold s.mu.
func (s *Session) releaseLocked() {
	if !s.opened {
		return
	}
	s.opened = false
	_ = s.device.Close()
}

// encodeStill scales a frame down to the target dimensions (keeping smaller
// native frames as-is) and encodes it as JPEG.
func encodeStill(frame image.Image) ([]byte, error) {
	bounds := frame.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > targetWidth || height > targetHeight {
		scaleW := float64(targetWidth) / float64(width)
		scaleH := float64(targetHeight) / float64(height)
		scale := scaleW
		if scaleH < scale {
			scale = scaleH
		}

		newWidth := int(float64(width) * scale)
		newHeight := int(float64(height) * scale)

		scaled := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), frame, bounds, draw.Over, nil)
		frame = scaled
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, frame, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode still image: %w", err)
	}

	return buf.Bytes(), nil
}
