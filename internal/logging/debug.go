package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu     sync.Mutex
	output io.Writer = os.Stderr
)

// DebugEnabled returns true if debug mode is enabled via TL_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("TL_DEBUG") != ""
}

// SetOutput redirects log output and returns the previous writer
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := output
	output = w
	return prev
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		write("DEBUG", fmt.Sprintf(format, args...))
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		write("DEBUG", fmt.Sprintln(args...))
	}
}

// Errorf always prints a formatted error message
func Errorf(format string, args ...interface{}) {
	write("ERROR", fmt.Sprintf(format, args...))
}

func write(level, msg string) {
	mu.Lock()
	defer mu.Unlock()
	if n := len(msg); n > 0 && msg[n-1] == '\n' {
		msg = msg[:n-1]
	}
	fmt.Fprintf(output, "%s %s %s\n", time.Now().Format(time.RFC3339), level, msg)
}
