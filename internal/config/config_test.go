package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ---------- Load ----------

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "camera: [unclosed")
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid yaml, got nil")
	}
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Camera.Type != def.Camera.Type {
		t.Errorf("camera type = %q, want %q", cfg.Camera.Type, def.Camera.Type)
	}
	if cfg.Camera.MaxProbeIndex != def.Camera.MaxProbeIndex {
		t.Errorf("max probe index = %d, want %d", cfg.Camera.MaxProbeIndex, def.Camera.MaxProbeIndex)
	}
	if cfg.Output.Dir != def.Output.Dir {
		t.Errorf("output dir = %q, want %q", cfg.Output.Dir, def.Output.Dir)
	}
	if cfg.Schedule.CapturesPerInterval != 1 || cfg.Schedule.IntervalSeconds != 10 || cfg.Schedule.DurationMinutes != 60 {
		t.Errorf("schedule defaults = %+v", cfg.Schedule)
	}
	if cfg.Defaults.LogFile != "camera_capture.log" {
		t.Errorf("log file = %q", cfg.Defaults.LogFile)
	}
}

func TestLoad_PartialOverride(t *testing.T) {
	path := writeConfig(t, `
camera:
  type: v4l2
  max_probe_index: 4
schedule:
  interval_seconds: 2.5
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Camera.Type != "v4l2" {
		t.Errorf("camera type = %q, want v4l2", cfg.Camera.Type)
	}
	if cfg.Camera.MaxProbeIndex != 4 {
		t.Errorf("max probe index = %d, want 4", cfg.Camera.MaxProbeIndex)
	}
	// Untouched sections keep defaults
	if cfg.Camera.DevicePattern != "/dev/video%d" {
		t.Errorf("device pattern = %q", cfg.Camera.DevicePattern)
	}
	if cfg.Schedule.CapturesPerInterval != 1 {
		t.Errorf("captures per interval = %d, want 1", cfg.Schedule.CapturesPerInterval)
	}
	if cfg.Schedule.IntervalSeconds != 2.5 {
		t.Errorf("interval seconds = %g, want 2.5", cfg.Schedule.IntervalSeconds)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown_backend", "camera:\n  type: gstreamer\n", "unsupported camera type"},
		{"negative_probe_index", "camera:\n  max_probe_index: -1\n", "max_probe_index"},
		{"negative_mock_devices", "camera:\n  mock_devices: -2\n", "mock_devices"},
		{"empty_output_dir", "output:\n  dir: \"\"\n", "output.dir"},
		{"debug_level_too_high", "defaults:\n  debug_level: 5\n", "debug_level"},
		{"debug_level_negative", "defaults:\n  debug_level: -1\n", "debug_level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

// ---------- Duration getters ----------

func TestDurationGetters(t *testing.T) {
	cfg := Default()
	cfg.Schedule.IntervalSeconds = 0.5
	cfg.Schedule.DurationMinutes = 1.5
	cfg.Camera.ReadTimeoutS = 3

	if got := cfg.Interval(); got != 500*time.Millisecond {
		t.Errorf("Interval() = %v, want 500ms", got)
	}
	if got := cfg.TotalDuration(); got != 90*time.Second {
		t.Errorf("TotalDuration() = %v, want 90s", got)
	}
	if got := cfg.ReadTimeout(); got != 3*time.Second {
		t.Errorf("ReadTimeout() = %v, want 3s", got)
	}
}
