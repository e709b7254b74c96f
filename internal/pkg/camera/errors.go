package camera

import "errors"

var (
	// ErrDeviceUnavailable indicates no camera device could be opened.
	ErrDeviceUnavailable = errors.New("camera device unavailable")

	// ErrPermissionDenied indicates the device refused access.
	ErrPermissionDenied = errors.New("camera permission denied")
)
