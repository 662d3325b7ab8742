package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucas-albers-lz4/nsdebug/pkg/log"
)

func TestCaptureLogOutput(t *testing.T) {
	t.Setenv("LOG_FORMAT", "text")

	output, err := CaptureLogOutput(log.LevelInfo, func() {
		log.Info("This is an info message")
		log.Debug("This is a debug message")
	})
	require.NoError(t, err)
	assert.Contains(t, output, `msg="This is an info message"`)
	assert.NotContains(t, output, `msg="This is a debug message"`)

	output, err = CaptureLogOutput(log.LevelDebug, func() {
		log.Info("This is an info message")
		log.Debug("This is a debug message")
	})
	require.NoError(t, err)
	assert.Contains(t, output, `msg="This is an info message"`)
	assert.Contains(t, output, `msg="This is a debug message"`)

	savedLevel := log.CurrentLevel()
	_, err = CaptureLogOutput(log.LevelDebug, func() {})
	require.NoError(t, err)
	assert.Equal(t, savedLevel, log.CurrentLevel())
}

func TestCaptureLogOutput_Panic(t *testing.T) {
	_, err := CaptureLogOutput(log.LevelInfo, func() {
		panic("boom")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestContainsLog(t *testing.T) {
	testOutput := "time=... level=ERROR msg=\"Some error message\" key=value\nline 3"

	assert.True(t, ContainsLog(testOutput, "level=ERROR"))
	assert.True(t, ContainsLog(testOutput, `msg="Some error message"`))
	assert.False(t, ContainsLog(testOutput, "level=WARNING"))
}

func TestCaptureJSONLogs(t *testing.T) {
	logs := CaptureJSONLogs(t, log.LevelDebug, func() {
		log.Debug("ignoring namespace list without brackets", "text", "foo")
		log.Warn("second", "count", 2)
	})

	require.Len(t, logs, 2)
	AssertLogContainsJSON(t, logs, map[string]any{"level": "DEBUG", "text": "foo"})
	AssertLogContainsJSON(t, logs, map[string]any{"msg": "second", "count": 2})
}

func TestCaptureStdout(t *testing.T) {
	out := CaptureStdout(t, func() {
		fmt.Println("hello stdout")
	})
	assert.Equal(t, "hello stdout\n", out)
}
