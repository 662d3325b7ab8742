package main

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucas-albers-lz4/nsdebug/pkg/fileutil"
	"github.com/lucas-albers-lz4/nsdebug/pkg/log"
	"github.com/lucas-albers-lz4/nsdebug/pkg/testutil"
)

func TestRootCommand_NoSubcommand(t *testing.T) {
	setupCLITest(t)
	_, err := executeCommand(newRootCmd())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a subcommand is required")
}

func TestRootCommand_Help(t *testing.T) {
	setupCLITest(t)
	output, err := executeCommand(newRootCmd(), "help")
	require.NoError(t, err)
	assert.Contains(t, output, "nsdebug evaluates a DEBUG allow-list")
	for _, sub := range []string{"check", "patterns", "emit", "config", "version"} {
		assert.Contains(t, output, sub)
	}
}

func TestDebugArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "flag absent", args: []string{"patterns"}, want: nil},
		{name: "bare flag", args: []string{"--debug", "patterns"}, want: []string{"--debug"}},
		{name: "flag with list", args: []string{"--debug=[a,b]", "patterns"}, want: []string{"--debug=[a,b]"}},
		{name: "flag after subcommand", args: []string{"patterns", "--debug=0"}, want: []string{"--debug=0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)
			root := newRootCmd()
			var got []string
			root.SetArgs(tt.args)
			root.SetOut(new(bytes.Buffer))
			patternsCmd, _, err := root.Find([]string{"patterns"})
			require.NoError(t, err)
			patternsCmd.PostRun = func(cmd *cobra.Command, _ []string) {
				got = debugArgs(cmd)
			}
			require.NoError(t, root.Execute())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogLevelFlag(t *testing.T) {
	setupCLITest(t)

	_, err := executeCommand(newRootCmd(), "--log-level", "debug", "version")
	require.NoError(t, err)
	assert.Equal(t, log.LevelDebug, log.CurrentLevel())
}

func TestLogLevelFromEnvironment(t *testing.T) {
	setupCLITest(t)
	t.Setenv(log.EnvLogLevel, "error")

	_, err := executeCommand(newRootCmd(), "version")
	require.NoError(t, err)
	assert.Equal(t, log.LevelError, log.CurrentLevel())
}

func TestInvalidLogLevelFallsBack(t *testing.T) {
	setupCLITest(t)

	_, err := executeCommand(newRootCmd(), "--log-level", "loud", "version")
	require.NoError(t, err)
	assert.Equal(t, log.LevelWarn, log.CurrentLevel())
}

func TestDebugLevelLogsEffectiveSettings(t *testing.T) {
	fs := setupCLITest(t)
	require.NoError(t, afero.WriteFile(fs, testConfigPath, []byte("debug: \"[app:*]\"\n"), fileutil.ReadWriteUserPermission))

	output, err := testutil.CaptureLogOutput(log.LevelWarn, func() {
		_, execErr := executeCommand(newRootCmd(), "--config", testConfigPath, "--log-level", "debug", "patterns")
		require.NoError(t, execErr)
	})
	require.NoError(t, err)
	assert.True(t, testutil.ContainsLog(output, "Effective settings from"))
	assert.Contains(t, output, "app:*")

	output, err = testutil.CaptureLogOutput(log.LevelWarn, func() {
		_, execErr := executeCommand(newRootCmd(), "--config", testConfigPath, "patterns")
		require.NoError(t, execErr)
	})
	require.NoError(t, err)
	assert.False(t, testutil.ContainsLog(output, "Effective settings from"))
}

func TestCLITraceGoesToStderr(t *testing.T) {
	setupCLITest(t)
	t.Setenv("DEBUG", "[nsdebug:cli]")
	t.Setenv("DEBUG_COLORS", "0")

	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"check", "app"})
	require.NoError(t, root.Execute())

	assert.Contains(t, stderr.String(), "[ nsdebug:cli ]")
	assert.Contains(t, stderr.String(), "allowed: [nsdebug:cli]")
	assert.NotContains(t, stdout.String(), "nsdebug:cli ]")
	assert.Contains(t, stdout.String(), "app")
}

func TestVersionCommand(t *testing.T) {
	setupCLITest(t)
	output, err := executeCommand(newRootCmd(), "version")
	require.NoError(t, err)
	assert.Contains(t, output, "nsdebug ")
	assert.Contains(t, output, "(commit ")
}
