package debug

import (
	"io"
	"log"
	"os"
	"time"
)

// Debug levels
const (
	LevelOff     = 0 // No output
	LevelInfo    = 1 // Important info (probe results, capture outcomes)
	LevelLive    = 2 // Live info (cycles, per-capture progress)
	LevelVerbose = 3 // Verbose (scheduling details, filenames)
	LevelTrace   = 4 // Trace (backend negotiation, very low level)
)

var (
	level  int
	logger *log.Logger
)

// Init initializes the debug system with a level (0-4).
// 0 = no output
// 1 = important info (detected cameras, capture outcomes)
// 2 = live info (capture cycles, sleeps)
// 3 = verbose (filenames, per-index probe detail)
// 4 = trace (backend format negotiation, raw reads)
func Init(debugLevel int) {
	level = debugLevel
	if level > LevelOff {
		logger = log.New(os.Stdout, "[camsnap] ", log.LstdFlags|log.Lmicroseconds)
	}
}

// SetOutput redirects all debug output, e.g. to tee stdout and the
// append-only capture log via io.MultiWriter.
func SetOutput(w io.Writer) {
	if logger != nil {
		logger.SetOutput(w)
	}
}

// Level returns the current debug level.
func Level() int {
	return level
}

// IsEnabled returns true if debug level is >= the requested level.
func IsEnabled(minLevel int) bool {
	return level >= minLevel
}

// --- Level 1 functions (Info): important info ---

// Info prints a level 1 message (important info).
func Info(format string, args ...interface{}) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[INFO] "+format, args...)
	}
}

// Detected prints a successful camera probe (level 1).
func Detected(index int) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[INFO] Camera %d detected", index)
	}
}

// Snapshot prints a saved capture (level 1).
func Snapshot(index int, path string) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[INFO] Photo from camera %d saved to %s", index, path)
	}
}

// Value prints a named value in formatted form (level 1).
func Value(name string, value interface{}) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[INFO]   %s = %v", name, value)
	}
}

// --- Level 2 functions (Live): real-time info ---

// Live prints a level 2 message (live info).
func Live(format string, args ...interface{}) {
	if level >= LevelLive && logger != nil {
		logger.Printf("[LIVE] "+format, args...)
	}
}

// Cycle prints the start of a capture cycle (level 2).
func Cycle(n int, elapsed time.Duration) {
	if level >= LevelLive && logger != nil {
		logger.Printf("[LIVE] Starting capture cycle %d (elapsed: %v)", n, elapsed.Round(time.Millisecond))
	}
}

// --- Level 3 functions (Verbose): everything ---

// Verbose prints a level 3 message (verbose).
func Verbose(format string, args ...interface{}) {
	if level >= LevelVerbose && logger != nil {
		logger.Printf("[VERBOSE] "+format, args...)
	}
}

// Section prints a section separator (level 3).
func Section(name string) {
	if level >= LevelVerbose && logger != nil {
		logger.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		logger.Printf("  %s", name)
		logger.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	}
}

// Step prints a numbered step (level 3).
func Step(num int, description string) {
	if level >= LevelVerbose && logger != nil {
		logger.Printf("[VERBOSE] Step %d: %s", num, description)
	}
}

// --- Level 4 functions (Trace): very low level ---

// Trace prints a level 4 message (trace, backend internals).
func Trace(format string, args ...interface{}) {
	if level >= LevelTrace && logger != nil {
		logger.Printf("[TRACE] "+format, args...)
	}
}

// --- General functions ---

// Error prints a debug error (level 1+).
func Error(err error) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[ERROR] %v", err)
	}
}

// Errorf prints a formatted error message (level 1+).
func Errorf(format string, args ...interface{}) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[ERROR] "+format, args...)
	}
}
