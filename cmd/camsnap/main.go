package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/kpfzipoh/camsnap/internal/config"
	"github.com/kpfzipoh/camsnap/internal/debug"
	"github.com/kpfzipoh/camsnap/internal/hw/camera"
	"github.com/kpfzipoh/camsnap/internal/logic/capture"
	"github.com/kpfzipoh/camsnap/internal/logic/probe"
	"github.com/kpfzipoh/camsnap/internal/logic/schedule"
)

func main() {
	// CLI flags
	cfgPath := flag.String("config", "", "path to YAML config file; empty uses built-in defaults")
	outputDir := flag.String("output", "", "override output directory for captured images")
	captures := flag.Int("captures", 1, "captures per interval")
	interval := flag.Float64("interval", 10, "seconds between capture cycles")
	duration := flag.Float64("duration", 60, "total run time in minutes")
	oneShot := flag.Bool("onetimeonly", false, "capture a single frame per camera and exit")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load configuration
	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("load config failed: %v", err)
		}
	}

	// Apply CLI overrides (only flags the user actually set)
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	applyOverrides(cfg, set, *outputDir, *captures, *interval, *duration, *oneShot)

	// Validate parameters before any device I/O; one-shot ignores cadence
	if err := validateOutput(cfg.Output.Dir); err != nil {
		log.Fatalf("invalid capture parameters: %v", err)
	}
	if !cfg.Schedule.OneShot {
		if err := validateCadence(cfg.Schedule.CapturesPerInterval,
			cfg.Schedule.IntervalSeconds, cfg.Schedule.DurationMinutes); err != nil {
			log.Fatalf("invalid capture parameters: %v", err)
		}
	}

	// Initialize debug system, teeing output to the capture log
	debug.Init(cfg.Defaults.DebugLevel)
	var logFile *os.File
	if cfg.Defaults.LogFile != "" {
		f, err := os.OpenFile(cfg.Defaults.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("open log file failed: %v", err)
		}
		logFile = f
		defer logFile.Close()
		debug.SetOutput(io.MultiWriter(os.Stdout, logFile))
	}
	debug.Section("Initialization")
	debug.Value("Camera backend", cfg.Camera.Type)
	debug.Value("Output directory", cfg.Output.Dir)
	debug.Value("One-shot mode", cfg.Schedule.OneShot)

	// Initialize capture backend
	debug.Step(1, "Initializing capture backend")
	backend, err := newBackendFromConfig(cfg)
	if err != nil {
		log.Fatalf("init camera backend failed: %v", err)
	}

	// Detect available cameras
	debug.Step(2, "Probing for cameras")
	devices := probe.Scan(backend, cfg.Camera.MaxProbeIndex)
	debug.Info("Found %d camera(s): %v", len(devices), devices)
	if len(devices) == 0 {
		fmt.Println("No cameras detected. Check connections and try again.")
		return
	}

	debug.Step(3, "Starting capture run")
	sched := schedule.NewScheduler(capture.NewSnapshotter(backend))
	err = sched.Run(ctx, schedule.Params{
		Devices:   devices,
		OutputDir: cfg.Output.Dir,
		OneShot:   cfg.Schedule.OneShot,
		Captures:  cfg.Schedule.CapturesPerInterval,
		Interval:  cfg.Interval(),
		Total:     cfg.TotalDuration(),
	})
	if err != nil {
		debug.Error(err)
		fmt.Fprintf(os.Stderr, "An unexpected error occurred: %v\n", err)
		if logFile != nil {
			logFile.Close()
		}
		os.Exit(1)
	}

	if ctx.Err() != nil {
		debug.Info("Program terminated by user")
		fmt.Println("Program terminated by user")
		return
	}
	debug.Section("Capture run complete")
}

// applyOverrides mutates cfg with CLI flag values. Only flags the user
// explicitly set are applied; everything else keeps config defaults.
func applyOverrides(cfg *config.Config, set map[string]bool,
	outputDir string, captures int, interval, duration float64, oneShot bool) {
	if set["output"] {
		cfg.Output.Dir = outputDir
	}
	if set["captures"] {
		cfg.Schedule.CapturesPerInterval = captures
	}
	if set["interval"] {
		cfg.Schedule.IntervalSeconds = interval
	}
	if set["duration"] {
		cfg.Schedule.DurationMinutes = duration
	}
	if set["onetimeonly"] {
		cfg.Schedule.OneShot = oneShot
	}
}

// validateOutput rejects an empty output directory, whether it came
// from the config file or an explicit --output "".
func validateOutput(dir string) error {
	if dir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	return nil
}

// validateCadence checks interval-mode parameters: captures per
// interval, interval seconds and total duration minutes.
func validateCadence(captures int, intervalSec, durationMin float64) error {
	if captures < 1 {
		return fmt.Errorf("captures must be >= 1, got %d", captures)
	}
	if math.IsNaN(intervalSec) || math.IsInf(intervalSec, 0) || intervalSec <= 0 {
		return fmt.Errorf("interval must be a positive number of seconds, got %g", intervalSec)
	}
	if math.IsNaN(durationMin) || math.IsInf(durationMin, 0) || durationMin <= 0 {
		return fmt.Errorf("duration must be a positive number of minutes, got %g", durationMin)
	}
	return nil
}

// newBackendFromConfig selects a capture backend implementation based
// on configuration.
func newBackendFromConfig(cfg *config.Config) (camera.Backend, error) {
	switch cfg.Camera.Type {
	case "opencv":
		return camera.NewOpenCV(), nil
	case "v4l2":
		return camera.NewV4L2(cfg.Camera.DevicePattern, cfg.ReadTimeout()), nil
	case "mock":
		return camera.NewMock(cfg.Camera.MockDevices), nil
	default:
		return nil, fmt.Errorf("unsupported camera type: %s", cfg.Camera.Type)
	}
}
