// Package logging is the leveled logger shared by the rwplot tools.
//
// Lines go to stderr as "<time> [LEVEL] message". The level is process wide
// and comes from --log-level or RWPLOT_LOG_LEVEL.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// Level is a message severity.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelTags = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return fmt.Sprintf("Level(%d)", int32(l))
	}
	return levelTags[l]
}

// EnvLogLevel is consulted by SetLogLevelFromEnv when no flag was given.
const EnvLogLevel = "RWPLOT_LOG_LEVEL"

const logFlags = log.Ldate | log.Ltime | log.Lmicroseconds

var (
	level  atomic.Int32
	logger atomic.Pointer[log.Logger]
)

func init() {
	level.Store(int32(LevelInfo))
	logger.Store(log.New(os.Stderr, "", logFlags))
}

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return 0, fmt.Errorf("invalid log level %q (debug, info, warn, error)", s)
}

// SetLogLevel sets the global level. It reports false, and leaves the level
// alone, for an unknown name.
func SetLogLevel(s string) bool {
	l, err := ParseLevel(s)
	if err != nil {
		return false
	}
	level.Store(int32(l))
	return true
}

// SetLogLevelFromEnv applies RWPLOT_LOG_LEVEL when s is empty.
func SetLogLevelFromEnv(s string) {
	if strings.TrimSpace(s) == "" {
		s = os.Getenv(EnvLogLevel)
	}
	SetLogLevel(s)
}

// GetLogLevel returns the current global level.
func GetLogLevel() Level { return Level(level.Load()) }

// SetOutput redirects log lines and returns a func restoring the previous writer.
func SetOutput(w io.Writer) (restore func()) {
	prev := logger.Swap(log.New(w, "", logFlags))
	return func() { logger.Store(prev) }
}

func logf(l Level, format string, args ...interface{}) {
	if GetLogLevel() > l {
		return
	}
	msg := format
	// no args: print as-is so a % in a file name or title survives
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	logger.Load().Printf("[%s] %s", l, msg)
}

func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// TimeTrack logs how long a phase took, at debug level.
//
//	defer logging.TimeTrack(time.Now(), "render msd_avg.png")
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start).Round(time.Microsecond))
}
