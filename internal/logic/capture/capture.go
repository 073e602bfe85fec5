// Package capture takes single still frames and writes them to disk.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/kpfzipoh/camsnap/internal/debug"
	"github.com/kpfzipoh/camsnap/internal/hw/camera"
)

// Kind classifies the outcome of a single capture attempt, so callers
// can tell apart the failure causes instead of a bare boolean.
type Kind int

const (
	OK         Kind = iota
	DirFault        // output directory could not be created
	OpenFault       // device could not be acquired
	ReadFault       // device opened but produced no frame
	WriteFault      // frame could not be encoded or written
)

func (k Kind) String() string {
	switch k {
	case OK:
		return "ok"
	case DirFault:
		return "directory fault"
	case OpenFault:
		return "acquisition fault"
	case ReadFault:
		return "read fault"
	case WriteFault:
		return "write fault"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Result describes one capture attempt for one device.
type Result struct {
	Device int    // zero-based device index
	Kind   Kind
	Path   string // written file, set only on success
	Err    error  // underlying cause, nil on success
}

// Success reports whether the frame was captured and saved.
func (r Result) Success() bool {
	return r.Kind == OK
}

// Snapshotter captures single frames from a camera backend.
type Snapshotter struct {
	backend camera.Backend
}

func NewSnapshotter(b camera.Backend) *Snapshotter {
	return &Snapshotter{backend: b}
}

// CaptureOne acquires the device at index, reads exactly one frame,
// writes it to outputDir as {YYYYMMDD_HHMMSS}_cam{index+1}.png and
// releases the device. The device handle is released on every exit
// path, and never acquired at all if the directory cannot be created.
// Two captures of the same device in the same second overwrite.
func (s *Snapshotter) CaptureOne(index int, outputDir string) Result {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Result{Device: index, Kind: DirFault,
			Err: fmt.Errorf("create output directory %s: %w", outputDir, err)}
	}

	dev, err := s.backend.Open(index)
	if err != nil {
		return Result{Device: index, Kind: OpenFault,
			Err: fmt.Errorf("open camera %d: %w", index, err)}
	}
	defer func() {
		if cerr := dev.Close(); cerr != nil {
			debug.Error(fmt.Errorf("releasing camera %d: %w", index, cerr))
		}
	}()

	img, err := dev.ReadFrame()
	if err != nil {
		return Result{Device: index, Kind: ReadFault,
			Err: fmt.Errorf("capture frame from camera %d: %w", index, err)}
	}

	name := fmt.Sprintf("%s_cam%d.png", time.Now().Format("20060102_150405"), index+1)
	path := filepath.Join(outputDir, name)
	debug.Verbose("Writing frame from camera %d to %s", index, path)

	if err := writePNG(img, path); err != nil {
		return Result{Device: index, Kind: WriteFault,
			Err: fmt.Errorf("save frame from camera %d: %w", index, err)}
	}

	debug.Snapshot(index, path)
	return Result{Device: index, Kind: OK, Path: path}
}

func writePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
