package testutil

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/lucas-albers-lz4/nsdebug/pkg/log"
)

// mutex protects concurrent access to logger state
var mutex sync.Mutex

// SuppressLogging discards all pkg/log output until the returned function is called.
func SuppressLogging() func() {
	mutex.Lock()
	defer mutex.Unlock()

	restoreLog := log.SetOutput(io.Discard)
	return func() {
		mutex.Lock()
		defer mutex.Unlock()
		restoreLog()
	}
}

// CaptureLogging captures pkg/log output. Call the returned function to
// restore the original output and retrieve what was captured.
// Direct writes to os.Stdout or os.Stderr are not captured.
func CaptureLogging() func() string {
	mutex.Lock()

	var logBuf bytes.Buffer
	logRestore := log.SetOutput(&logBuf)

	return func() string {
		defer mutex.Unlock()
		logRestore()
		return logBuf.String()
	}
}

// UseTestLogger buffers log output and prints it only if the test fails.
// Verbose runs log straight through.
func UseTestLogger(t *testing.T) {
	t.Helper()

	if testing.Verbose() {
		return
	}
	restoreAndGetLogs := CaptureLogging()
	t.Cleanup(func() {
		capturedLogs := restoreAndGetLogs()
		if t.Failed() {
			t.Logf("Log output captured during test:\n%s", capturedLogs)
		}
	})
}
