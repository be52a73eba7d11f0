/*
package logging holds the process-wide logger used by rhoprof. Output is
logfmt on stderr, filtered by Mode.
*/
package logging

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

type Flag int

const (
	Nil Flag = iota
	Performance
	Debug
)

func (f Flag) String() string {
	switch f {
	case Nil:
		return "nil"
	case Performance:
		return "performance"
	case Debug:
		return "debug"
	}
	panic("Impossible")
}

// ParseFlag converts the name of a logging mode into a Flag.
func ParseFlag(s string) (Flag, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nil":
		return Nil, nil
	case "performance":
		return Performance, nil
	case "debug":
		return Debug, nil
	}
	return Nil, fmt.Errorf("I don't recognize the logging mode '%s'. The "+
		"known modes are nil, performance, and debug.", s)
}

// This is handled this way so that the GlobalConfig doesn't need to be passed
// to literally every function in the project.
var (
	Mode   Flag       = Nil
	output io.Writer  = os.Stderr
	logger log.Logger = newLogger(output, Mode)
)

func newLogger(w io.Writer, mode Flag) log.Logger {
	l := log.NewLogfmtLogger(log.NewSyncWriter(w))
	l = log.With(l, "ts", log.DefaultTimestampUTC)

	switch mode {
	case Debug:
		return level.NewFilter(l, level.AllowDebug())
	case Performance:
		return level.NewFilter(l, level.AllowInfo())
	default:
		// Warnings are shown even when logging is turned off.
		return level.NewFilter(l, level.AllowWarn())
	}
}

// SetMode changes the logging mode.
func SetMode(mode Flag) {
	Mode = mode
	logger = newLogger(output, Mode)
}

// SetOutput redirects all log output to w.
func SetOutput(w io.Writer) {
	output = w
	logger = newLogger(output, Mode)
}

// Logger returns the current logger with the given key/value context
// attached.
func Logger(keyvals ...interface{}) log.Logger {
	if len(keyvals) == 0 {
		return logger
	}
	return log.With(logger, keyvals...)
}

func LogDebug(l log.Logger, keyvals ...interface{}) {
	level.Debug(l).Log(keyvals...)
}

func LogInfo(l log.Logger, keyvals ...interface{}) {
	level.Info(l).Log(keyvals...)
}

func LogWarn(l log.Logger, keyvals ...interface{}) {
	level.Warn(l).Log(keyvals...)
}

// MemString returns a string containing various statistics on the current
// memory usage of rhoprof.
func MemString() string {
	ms := runtime.MemStats{}
	runtime.ReadMemStats(&ms)
	return fmt.Sprintf(
		"Alloc - %d MB; Sys - %d MB Integrated - %d MB",
		ms.Alloc>>20, ms.Sys>>20, ms.TotalAlloc>>20,
	)
}
