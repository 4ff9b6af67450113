// log.go - Progress logging and diagnostics output

package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"gopkg.in/natefinch/lumberjack.v2"
)

// logger writes progress lines to stderr or to a rotated log file. It is
// shared by concurrent batch compiles.
type logger struct {
	mu      sync.Mutex
	out     io.Writer
	closer  io.Closer
	verbose bool
	stamp   bool
}

func newLogger(cfg Config, stderr io.Writer) *logger {
	l := &logger{out: stderr, verbose: cfg.Verbose}
	if cfg.LogFile != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
		}
		l.out, l.closer, l.stamp = lj, lj, true
	}
	return l
}

func (l *logger) write(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stamp {
		fmt.Fprint(l.out, time.Now().Format("2006-01-02 15:04:05 "))
	}
	fmt.Fprintf(l.out, format+"\n", args...)
}

// Infof always logs.
func (l *logger) Infof(format string, args ...any) {
	l.write(format, args...)
}

// Debugf logs only with --verbose.
func (l *logger) Debugf(format string, args ...any) {
	if l.verbose {
		l.write(format, args...)
	}
}

func (l *logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// ---------------------------------------------------------------------
// Diagnostics
// ---------------------------------------------------------------------

var (
	errorLabel = color.New(color.FgRed, color.Bold)
	titleColor = color.New(color.FgHiMagenta, color.Bold)
)

// setColorMode switches colored output on or off for the whole process.
func setColorMode(mode string, tty bool) error {
	switch mode {
	case "auto":
		color.NoColor = !tty
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", mode)
	}
	return nil
}

// printDiagnostic writes a report starting with "ERROR: " to w with the
// label in red.
func (l *logger) printDiagnostic(w io.Writer, report string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	errorLabel.Fprint(w, "ERROR: ")
	fmt.Fprintln(w, strings.TrimPrefix(report, "ERROR: "))
}

// errorHeader is the first line of an output file that holds a diagnostic.
func errorHeader(now time.Time) string {
	return fmt.Sprintf("%s v%s %s\n\n", appName, appVersion, now.Format("2006-01-02 15:04:05"))
}
