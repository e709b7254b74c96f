package camera

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDevice struct {
	frame      image.Image
	openErr    error
	frameErr   error
	openCount  int
	closeCount int
}

func (d *fakeDevice) Open(ctx context.Context) error {
	if d.openErr != nil {
		return d.openErr
	}
	d.openCount++
	return nil
}

func (d *fakeDevice) Frame(ctx context.Context) (image.Image, error) {
	if d.frameErr != nil {
		return nil, d.frameErr
	}
	return d.frame, nil
}

func (d *fakeDevice) Close() error {
	d.closeCount++
	return nil
}

func testFrame(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func TestSessionStartCapture(t *testing.T) {
	device := &fakeDevice{frame: testFrame(1280, 720)}
	session := NewSession(device)

	assert.Equal(t, StateIdle, session.State())

	err := session.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateStreaming, session.State())

	img, err := session.Capture(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, img)
	assert.Equal(t, StateCaptured, session.State())
	assert.Equal(t, img, session.Image())

	// Capture releases the device once the still is produced.
	assert.Equal(t, 1, device.closeCount)
}

func TestSessionStartFailsDeviceUnavailable(t *testing.T) {
	device := &fakeDevice{openErr: ErrDeviceUnavailable}
	session := NewSession(device)

	err := session.Start(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDeviceUnavailable)
	assert.Equal(t, StateIdle, session.State())
	assert.Equal(t, 0, device.closeCount)
}

func TestSessionStopReleasesExactlyOnce(t *testing.T) {
	device := &fakeDevice{frame: testFrame(640, 480)}
	session := NewSession(device)

	require.NoError(t, session.Start(context.Background()))
	require.Equal(t, 1, device.openCount)

	session.Stop()
	assert.Equal(t, StateIdle, session.State())
	assert.Equal(t, 1, device.closeCount)

	// Second stop is idempotent: no double release.
	session.Stop()
	assert.Equal(t, 1, device.closeCount)
}

func TestSessionCaptureWhileNotStreamingIsNoOp(t *testing.T) {
	device := &fakeDevice{frame: testFrame(640, 480)}
	session := NewSession(device)

	img, err := session.Capture(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, img)
	assert.Equal(t, StateIdle, session.State())

	// Same after a completed capture cycle.
	require.NoError(t, session.Start(context.Background()))
	_, err = session.Capture(context.Background())
	require.NoError(t, err)

	img, err = session.Capture(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, img)
	assert.Equal(t, StateCaptured, session.State())
}

func TestSessionRestartDiscardsPreviousImage(t *testing.T) {
	device := &fakeDevice{frame: testFrame(640, 480)}
	session := NewSession(device)

	require.NoError(t, session.Start(context.Background()))
	_, err := session.Capture(context.Background())
	require.NoError(t, err)
	require.NotNil(t, session.Image())

	require.NoError(t, session.Start(context.Background()))
	assert.Equal(t, StateStreaming, session.State())
	assert.Nil(t, session.Image())

	session.Stop()
	// One close per completed open: capture released the first handle,
	// stop released the second.
	assert.Equal(t, 2, device.closeCount)
}

func TestSessionCaptureFrameError(t *testing.T) {
	device := &fakeDevice{frame: testFrame(640, 480)}
	session := NewSession(device)

	require.NoError(t, session.Start(context.Background()))
	device.frameErr = errors.New("sensor fault")

	img, err := session.Capture(context.Background())
	require.Error(t, err)
	assert.Nil(t, img)
	assert.Equal(t, StateFailed, session.State())
	assert.Equal(t, 1, device.closeCount)

	// A failed session can start a fresh cycle.
	device.frameErr = nil
	require.NoError(t, session.Start(context.Background()))
	assert.Equal(t, StateStreaming, session.State())
}

func TestSessionClearImage(t *testing.T) {
	device := &fakeDevice{frame: testFrame(320, 240)}
	session := NewSession(device)

	require.NoError(t, session.Start(context.Background()))
	_, err := session.Capture(context.Background())
	require.NoError(t, err)

	session.ClearImage()
	assert.Nil(t, session.Image())
	assert.Equal(t, StateIdle, session.State())
	// ClearImage never touches the device handle.
	assert.Equal(t, 1, device.closeCount)
}
