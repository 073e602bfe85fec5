// Package schedule drives still captures across detected cameras,
// either once or at a fixed cadence over a bounded duration.
package schedule

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kpfzipoh/camsnap/internal/debug"
	"github.com/kpfzipoh/camsnap/internal/logic/capture"
)

// Snapper captures one frame from one device into a directory.
// Satisfied by *capture.Snapshotter.
type Snapper interface {
	CaptureOne(index int, outputDir string) capture.Result
}

// Params defines one scheduler run.
type Params struct {
	Devices   []int  // probed device indices, ascending
	OutputDir string // destination for image files

	OneShot  bool          // capture once per device, ignore cadence fields
	Captures int           // repetitions per interval
	Interval time.Duration // target spacing between cycle starts
	Total    time.Duration // total run time before stopping
}

// Validate checks the cadence parameters. One-shot mode ignores them
// entirely, so any values are accepted there.
func (p Params) Validate() error {
	if p.OneShot {
		return nil
	}
	if p.Captures < 1 {
		return fmt.Errorf("captures per interval must be >= 1, got %d", p.Captures)
	}
	if p.Interval <= 0 {
		return fmt.Errorf("interval must be > 0, got %v", p.Interval)
	}
	if p.Total <= 0 {
		return fmt.Errorf("total duration must be > 0, got %v", p.Total)
	}
	return nil
}

// Scheduler runs capture passes over the probed devices. All captures
// are strictly sequential; the only suspension point is the sleep
// between interval-mode cycles.
type Scheduler struct {
	snapper Snapper

	// Notices receives a user-visible line for every capture outcome,
	// independent of the debug level. Defaults to stdout.
	Notices io.Writer
}

func NewScheduler(s Snapper) *Scheduler {
	return &Scheduler{snapper: s, Notices: os.Stdout}
}

// Run executes either one-shot or interval mode per p. Context
// cancellation is a graceful stop, not an error; it is honored between
// captures and during the inter-cycle sleep. A failed capture for one
// device is logged and skipped, and never affects later attempts.
func (s *Scheduler) Run(ctx context.Context, p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if len(p.Devices) == 0 {
		debug.Info("No cameras to capture from")
		return nil
	}
	if p.OneShot {
		return s.runOnce(ctx, p)
	}
	return s.runInterval(ctx, p)
}

// runOnce captures exactly one frame per device, in probed order.
func (s *Scheduler) runOnce(ctx context.Context, p Params) error {
	debug.Section("One-shot capture")
	for _, d := range p.Devices {
		select {
		case <-ctx.Done():
			debug.Live("Capture interrupted")
			return nil
		default:
		}
		s.report(s.snapper.CaptureOne(d, p.OutputDir))
	}
	return nil
}

// runInterval repeats capture cycles until Total elapses. Each cycle
// runs Captures passes over the device list (outer loop repetitions,
// inner loop devices), then sleeps for whatever remains of Interval.
func (s *Scheduler) runInterval(ctx context.Context, p Params) error {
	debug.Section("Interval capture")
	debug.Value("Captures per interval", p.Captures)
	debug.Value("Interval", p.Interval)
	debug.Value("Total duration", p.Total)

	start := time.Now()
	cycle := 0
	for time.Since(start) < p.Total {
		cycle++
		debug.Cycle(cycle, time.Since(start))
		cycleStart := time.Now()

		for rep := 0; rep < p.Captures; rep++ {
			for _, d := range p.Devices {
				select {
				case <-ctx.Done():
					debug.Live("Capture interrupted")
					return nil
				default:
				}
				s.report(s.snapper.CaptureOne(d, p.OutputDir))
			}
		}

		if wait := p.Interval - time.Since(cycleStart); wait > 0 {
			debug.Live("Sleeping %v until next cycle", wait.Round(time.Millisecond))
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				debug.Live("Capture interrupted during sleep")
				return nil
			case <-timer.C:
			}
		}
	}

	debug.Info("Total duration elapsed after %d cycle(s)", cycle)
	return nil
}

func (s *Scheduler) report(r capture.Result) {
	if r.Success() {
		fmt.Fprintf(s.Notices, "Successfully captured and saved frame from camera %d\n", r.Device)
		return
	}
	fmt.Fprintf(s.Notices, "Failed to capture frame from camera %d\n", r.Device)
	debug.Errorf("Camera %d capture failed (%s): %v", r.Device, r.Kind, r.Err)
}
