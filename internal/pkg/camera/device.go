package camera

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // Import for JPEG decoding support
	_ "image/png"  // Import for PNG decoding support
	"io"
	"net/http"
	"time"
)

// Device is a camera source the session can stream frames from. Open and
// Close bracket exclusive ownership of the underlying handle.
type Device interface {
	// Open acquires the device. Implementations return
	// ErrDeviceUnavailable or ErrPermissionDenied on failure.
	Open(ctx context.Context) error

	// Frame grabs the current frame. Only valid between Open and Close.
	Frame(ctx context.Context) (image.Image, error)

	// Close releases the device handle.
	Close() error
}

// SnapshotDevice reads frames from an IP camera's HTTP snapshot endpoint.
// Most kiosk webcams expose one (e.g. /snapshot.jpg on the local mjpeg
// streamer).
type SnapshotDevice struct {
	url    string
	client *http.Client
	open   bool
}

func NewSnapshotDevice(url string, timeout time.Duration) *SnapshotDevice {
	return &SnapshotDevice{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (d *SnapshotDevice) Open(ctx context.Context) error {
	// Probe once so a missing or locked camera fails at start time,
	// not at capture time.
	if _, err := d.fetch(ctx); err != nil {
		return err
	}
	d.open = true
	return nil
}

func (d *SnapshotDevice) Frame(ctx context.Context) (image.Image, error) {
	if !d.open {
		return nil, ErrDeviceUnavailable
	}
	return d.fetch(ctx)
}

func (d *SnapshotDevice) Close() error {
	d.open = false
	return nil
}

func (d *SnapshotDevice) fetch(ctx context.Context) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrPermissionDenied
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: snapshot endpoint returned %d", ErrDeviceUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	return img, nil
}
