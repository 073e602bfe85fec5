package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// CameraConfig selects and tunes the capture backend.
// Type selects a concrete implementation ("opencv", "v4l2" or "mock").
type CameraConfig struct {
	Type          string `yaml:"type"`            // capture backend, default "opencv"
	MaxProbeIndex int    `yaml:"max_probe_index"` // probe device indices 0..N-1
	DevicePattern string `yaml:"device_pattern"`  // v4l2 only, e.g. "/dev/video%d"
	ReadTimeoutS  int    `yaml:"read_timeout_s"`  // v4l2 only: per-frame wait (s)
	MockDevices   int    `yaml:"mock_devices"`    // mock only: simulated camera count
}

// OutputConfig describes where captured frames are written.
type OutputConfig struct {
	Dir string `yaml:"dir"` // destination for {timestamp}_cam{N}.png files
}

// ScheduleConfig holds capture cadence parameters. One-shot mode
// ignores everything except OneShot itself.
type ScheduleConfig struct {
	CapturesPerInterval int     `yaml:"captures_per_interval"`
	IntervalSeconds     float64 `yaml:"interval_seconds"`
	DurationMinutes     float64 `yaml:"duration_minutes"`
	OneShot             bool    `yaml:"one_shot"`
}

// DefaultsConfig contains generic parameters (logging, etc.).
type DefaultsConfig struct {
	DebugLevel int    `yaml:"debug_level"` // debug level 0-4 (0=off, 1=info, 2=live, 3=verbose, 4=trace)
	LogFile    string `yaml:"log_file"`    // append-only capture log; "" disables the file sink
}

// Config aggregates all application configuration.
type Config struct {
	Camera   CameraConfig   `yaml:"camera"`
	Output   OutputConfig   `yaml:"output"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// Default returns the built-in configuration, used when no config file
// is given. Values mirror the documented CLI defaults.
func Default() *Config {
	return &Config{
		Camera: CameraConfig{
			Type:          "opencv",
			MaxProbeIndex: 10,
			DevicePattern: "/dev/video%d",
			ReadTimeoutS:  5,
			MockDevices:   2,
		},
		Output: OutputConfig{
			Dir: "captures",
		},
		Schedule: ScheduleConfig{
			CapturesPerInterval: 1,
			IntervalSeconds:     10,
			DurationMinutes:     60,
		},
		Defaults: DefaultsConfig{
			DebugLevel: 1,
			LogFile:    "camera_capture.log",
		},
	}
}

// Load reads a YAML file and returns the configuration.
// Fields omitted from the file keep their built-in defaults;
// schedule values are deliberately not validated here, since their
// validity depends on the selected capture mode.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	// Basic validation
	switch cfg.Camera.Type {
	case "opencv", "v4l2", "mock":
	default:
		return nil, fmt.Errorf("unsupported camera type: %s", cfg.Camera.Type)
	}
	if cfg.Camera.MaxProbeIndex < 0 {
		return nil, fmt.Errorf("max_probe_index must be >= 0, got %d", cfg.Camera.MaxProbeIndex)
	}
	if cfg.Camera.DevicePattern == "" {
		cfg.Camera.DevicePattern = "/dev/video%d"
	}
	if cfg.Camera.ReadTimeoutS <= 0 {
		cfg.Camera.ReadTimeoutS = 5
	}
	if cfg.Camera.MockDevices < 0 {
		return nil, fmt.Errorf("mock_devices must be >= 0, got %d", cfg.Camera.MockDevices)
	}
	if cfg.Output.Dir == "" {
		return nil, fmt.Errorf("output.dir is required")
	}
	if cfg.Defaults.DebugLevel < 0 || cfg.Defaults.DebugLevel > 4 {
		return nil, fmt.Errorf("debug_level must be between 0 and 4, got %d", cfg.Defaults.DebugLevel)
	}

	return cfg, nil
}

// Interval returns the pause target between two capture cycles.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Schedule.IntervalSeconds * float64(time.Second))
}

// TotalDuration returns the total run time for interval mode.
func (c *Config) TotalDuration() time.Duration {
	return time.Duration(c.Schedule.DurationMinutes * float64(time.Minute))
}

// ReadTimeout returns the per-frame wait budget for the V4L2 backend.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Camera.ReadTimeoutS) * time.Second
}
