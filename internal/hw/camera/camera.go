package camera

import (
	"errors"
	"image"
)

// ErrNotFound reports that no camera exists at the probed index.
// Backends return it (wrapped or bare) for plain absence; any other
// open error is an acquisition fault and halts a running probe scan.
var ErrNotFound = errors.New("camera not found")

// Device is one open camera. It is exclusively owned by its caller and
// must be closed on every exit path; it is never shared or kept open
// across scheduler iterations.
type Device interface {
	// ReadFrame reads a single frame from the device.
	ReadFrame() (image.Image, error)
	// Close releases the device.
	Close() error
}

// Backend is the abstract capture capability used by the rest of the
// application, regardless of how frames are acquired (OpenCV, V4L2, a
// mock for development and tests).
type Backend interface {
	// Open acquires the camera at the given zero-based index.
	Open(index int) (Device, error)
}
