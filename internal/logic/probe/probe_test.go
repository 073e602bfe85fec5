package probe

import (
	"errors"
	"sort"
	"testing"

	"github.com/kpfzipoh/camsnap/internal/hw/camera"
)

func TestScan_AllPresent(t *testing.T) {
	m := camera.NewMock(3)
	devices := Scan(m, 10)
	if want := []int{0, 1, 2}; !equal(devices, want) {
		t.Errorf("Scan = %v, want %v", devices, want)
	}
}

func TestScan_SparseIndices(t *testing.T) {
	m := camera.NewMock(0)
	m.SetPresent(1, 4, 7)
	devices := Scan(m, 10)
	if want := []int{1, 4, 7}; !equal(devices, want) {
		t.Errorf("Scan = %v, want %v", devices, want)
	}
}

func TestScan_MaxIndexBoundsResult(t *testing.T) {
	m := camera.NewMock(0)
	m.SetPresent(1, 4, 7)
	devices := Scan(m, 5)
	if want := []int{1, 4}; !equal(devices, want) {
		t.Errorf("Scan = %v, want %v", devices, want)
	}
}

func TestScan_ZeroMaxIndex(t *testing.T) {
	m := camera.NewMock(3)
	if devices := Scan(m, 0); len(devices) != 0 {
		t.Errorf("Scan with maxIndex 0 = %v, want empty", devices)
	}
}

func TestScan_Ascending(t *testing.T) {
	m := camera.NewMock(8)
	devices := Scan(m, 8)
	if !sort.IntsAreSorted(devices) {
		t.Errorf("Scan result not ascending: %v", devices)
	}
}

func TestScan_ReadFailureExcludesButContinues(t *testing.T) {
	m := camera.NewMock(3)
	m.ReadFaults = map[int]bool{1: true}
	devices := Scan(m, 10)
	if want := []int{0, 2}; !equal(devices, want) {
		t.Errorf("Scan = %v, want %v", devices, want)
	}
}

func TestScan_AcquisitionFaultStopsScan(t *testing.T) {
	m := camera.NewMock(5)
	m.OpenFaults = map[int]error{2: errors.New("device busy")}
	devices := Scan(m, 10)
	if want := []int{0, 1}; !equal(devices, want) {
		t.Errorf("Scan = %v, want %v (no index past the fault)", devices, want)
	}
	for _, d := range devices {
		if d > 2 {
			t.Errorf("index %d returned after fault at 2", d)
		}
	}
}

func TestScan_ReleasesEveryOpenedDevice(t *testing.T) {
	m := camera.NewMock(4)
	m.ReadFaults = map[int]bool{2: true}
	Scan(m, 10)
	if m.OpenCount() != m.CloseCount() {
		t.Errorf("open count %d != close count %d", m.OpenCount(), m.CloseCount())
	}
	if m.OpenCount() != 4 {
		t.Errorf("open count = %d, want 4", m.OpenCount())
	}
}

func equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
