// Package probe detects usable cameras by walking device indices.
package probe

import (
	"errors"
	"fmt"

	"github.com/kpfzipoh/camsnap/internal/debug"
	"github.com/kpfzipoh/camsnap/internal/hw/camera"
)

// Scan probes device indices 0..maxIndex-1 and returns, in ascending
// order, those that both opened and produced a test frame. Absence at
// an index is not an error and the scan moves on; an acquisition fault
// is logged and stops the scan, returning what was found so far.
// Every opened device is released before Scan returns.
func Scan(backend camera.Backend, maxIndex int) []int {
	var devices []int
	debug.Info("Starting camera detection")

	for i := 0; i < maxIndex; i++ {
		dev, err := backend.Open(i)
		if err != nil {
			if errors.Is(err, camera.ErrNotFound) {
				debug.Verbose("No camera at index %d", i)
				continue
			}
			debug.Error(fmt.Errorf("probing camera %d: %w", i, err))
			break
		}

		if _, rerr := dev.ReadFrame(); rerr == nil {
			devices = append(devices, i)
			debug.Detected(i)
		} else {
			debug.Live("Camera %d opened but produced no frame: %v", i, rerr)
		}
		if cerr := dev.Close(); cerr != nil {
			debug.Error(fmt.Errorf("releasing camera %d after probe: %w", i, cerr))
		}
	}

	return devices
}
