package camera

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/kpfzipoh/camsnap/internal/debug"
)

// Mock is a Backend that simulates cameras producing synthetic frames.
// Used for development without hardware and for testing; the failure
// maps let tests script per-index open faults and read failures.
type Mock struct {
	mu      sync.Mutex
	present map[int]bool

	// OpenFaults maps an index to an acquisition fault returned by
	// Open. Indices absent from `present` return ErrNotFound instead.
	OpenFaults map[int]error
	// ReadFaults marks indices whose devices open fine but fail to
	// produce a frame.
	ReadFaults map[int]bool

	opens  int
	closes int
}

// NewMock creates a mock backend with n present cameras at indices 0..n-1.
func NewMock(n int) *Mock {
	present := make(map[int]bool, n)
	for i := 0; i < n; i++ {
		present[i] = true
	}
	debug.Info("Using MOCK camera backend (%d simulated cameras)", n)
	return &Mock{present: present}
}

// SetPresent overrides the set of present device indices.
func (m *Mock) SetPresent(indices ...int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.present = make(map[int]bool, len(indices))
	for _, i := range indices {
		m.present[i] = true
	}
}

func (m *Mock) Open(index int) (Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.OpenFaults[index]; ok {
		return nil, err
	}
	if !m.present[index] {
		return nil, fmt.Errorf("mock camera %d: %w", index, ErrNotFound)
	}
	m.opens++
	return &mockDevice{backend: m, index: index, failRead: m.ReadFaults[index]}, nil
}

// OpenCount reports how many devices have been acquired so far.
func (m *Mock) OpenCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opens
}

// CloseCount reports how many devices have been released so far.
func (m *Mock) CloseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closes
}

type mockDevice struct {
	backend  *Mock
	index    int
	failRead bool
	closed   bool
}

func (d *mockDevice) ReadFrame() (image.Image, error) {
	if d.closed {
		return nil, fmt.Errorf("mock camera %d: device closed", d.index)
	}
	if d.failRead {
		return nil, fmt.Errorf("mock camera %d: no frame received", d.index)
	}
	return syntheticFrame(d.index), nil
}

func (d *mockDevice) Close() error {
	if d.closed {
		return fmt.Errorf("mock camera %d: already closed", d.index)
	}
	d.closed = true
	d.backend.mu.Lock()
	d.backend.closes++
	d.backend.mu.Unlock()
	return nil
}

// syntheticFrame renders a small gradient tinted by device index so
// saved files are visually distinguishable.
func syntheticFrame(index int) image.Image {
	const w, h = 64, 48
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: uint8((index * 64) % 256),
				A: 255,
			})
		}
	}
	return img
}
