package main

import (
	"os"
	"testing"

	"github.com/spf13/afero"

	"github.com/lucas-albers-lz4/nsdebug/pkg/log"
	"github.com/lucas-albers-lz4/nsdebug/pkg/testutil"
)

// setupCLITest isolates a CLI test: an in-memory filesystem, a fake HOME, no
// inherited DEBUG/DEBUG_COLORS/NSDEBUG_LOG_LEVEL, and the log level restored afterwards.
func setupCLITest(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	t.Cleanup(SetFs(fs))
	t.Setenv("HOME", "/home/tester")
	for _, key := range []string{"DEBUG", "DEBUG_COLORS", log.EnvLogLevel} {
		unsetEnv(t, key)
	}

	originalLevel := log.CurrentLevel()
	t.Cleanup(func() { log.SetLevel(originalLevel) })
	testutil.UseTestLogger(t)
	return fs
}

// unsetEnv removes key from the environment for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	if v, ok := os.LookupEnv(key); ok {
		t.Cleanup(func() {
			if err := os.Setenv(key, v); err != nil {
				t.Logf("Failed to restore %s: %v", key, err)
			}
		})
	}
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("Failed to unset %s: %v", key, err)
	}
}
