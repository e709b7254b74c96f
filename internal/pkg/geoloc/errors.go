package geoloc

import "errors"

var (
	// ErrUnavailable indicates the platform has no location capability.
	ErrUnavailable = errors.New("geolocation unavailable")

	// ErrPermissionDenied indicates the location source refused access.
	ErrPermissionDenied = errors.New("geolocation permission denied")

	// ErrTimeout indicates the fix did not arrive within the configured
	// timeout.
	ErrTimeout = errors.New("geolocation timed out")
)
