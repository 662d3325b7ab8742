// Package testutil provides helpers shared by the nsdebug test suites.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucas-albers-lz4/nsdebug/pkg/log"
)

// CaptureLogOutput redirects log output using log.SetOutput while testFunc runs
// and returns what was logged. The original output and level are restored afterwards.
//
//	output, err := testutil.CaptureLogOutput(log.LevelDebug, func() {
//	    log.Info("This will be captured")
//	})
//	require.NoError(t, err)
//	assert.Contains(t, output, "This will be captured")
func CaptureLogOutput(logLevel log.Level, testFunc func()) (string, error) {
	originalLevel := log.CurrentLevel()

	var logBuf bytes.Buffer
	restoreLog := log.SetOutput(&logBuf)
	defer restoreLog()

	log.SetLevel(logLevel)
	defer log.SetLevel(originalLevel)

	if err := runRecovering(testFunc); err != nil {
		return logBuf.String(), err
	}
	return logBuf.String(), nil
}

// ContainsLog checks if the log output contains the specified message
func ContainsLog(output, message string) bool {
	return strings.Contains(output, message)
}

// CaptureJSONLogs captures log output in JSON format and parses each line.
// LOG_FORMAT is forced to "json" for the duration of the capture.
func CaptureJSONLogs(t *testing.T, logLevel log.Level, testFunc func()) []map[string]any {
	t.Helper()
	t.Setenv("LOG_FORMAT", "json")

	output, err := CaptureLogOutput(logLevel, testFunc)
	require.NoError(t, err)

	var parsed []map[string]any
	for i, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var entry map[string]any
		require.NoErrorf(t, json.Unmarshal([]byte(line), &entry), "log line %d is not JSON: %s", i+1, line)
		parsed = append(parsed, entry)
	}
	return parsed
}

// AssertLogContainsJSON checks that some entry in logs holds every key/value of expected.
func AssertLogContainsJSON(t *testing.T, logs []map[string]any, expected map[string]any) {
	t.Helper()
	for _, entry := range logs {
		if containsAll(entry, expected) {
			return
		}
	}

	expectedJSON, _ := json.MarshalIndent(expected, "", "  ") //nolint:errcheck // Ignore error for test helper
	actualJSON, _ := json.MarshalIndent(logs, "", "  ")       //nolint:errcheck // Ignore error for test helper
	assert.Fail(t, "Expected log entry not found",
		"Expected log containing:\n%s\n\nActual captured logs:\n%s", expectedJSON, actualJSON)
}

// containsAll compares top-level keys; JSON numbers are compared as float64.
func containsAll(actual, expected map[string]any) bool {
	for key, want := range expected {
		got, ok := actual[key]
		if !ok {
			return false
		}
		if f, isFloat := got.(float64); isFloat {
			if w, isInt := want.(int); isInt {
				want = float64(w)
			}
			if f != want {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

// CaptureStdout runs testFunc with os.Stdout redirected to a pipe and returns
// everything written to it.
func CaptureStdout(t *testing.T, testFunc func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	panicErr := runRecovering(testFunc)

	os.Stdout = oldStdout
	require.NoError(t, w.Close())
	out := <-done
	require.NoError(t, panicErr)
	return out
}

func runRecovering(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during capture: %v", r)
		}
	}()
	fn()
	return nil
}
