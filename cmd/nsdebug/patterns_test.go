package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternsCommand(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "nothing enabled",
			args:     []string{"patterns"},
			contains: []string{"No namespaces enabled."},
		},
		{
			name: "every pattern kind",
			env:  "[app:*, db, @acme/{api:web}]",
			args: []string{"patterns"},
			contains: []string{
				"PATTERN", "KIND", "MATCHES",
				"app:*", "prefix", "app:...",
				"db", "exact",
				"@acme/{api:web}", "scoped", "@acme/api, @acme/web",
			},
		},
		{
			name:     "bare flag enables all",
			env:      "[app]",
			args:     []string{"--debug", "patterns"},
			contains: []string{"all", "every namespace"},
			excludes: []string{"exact"},
		},
		{
			name:     "environment then flag, deduplicated",
			env:      "[foo, bar]",
			args:     []string{"--debug=[bar, baz]", "patterns"},
			contains: []string{"foo", "bar", "baz"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)
			if tt.env != "" {
				t.Setenv("DEBUG", tt.env)
			}

			output, err := executeCommand(newRootCmd(), tt.args...)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, output, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, output, s)
			}
		})
	}
}

func TestPatternsCommand_Order(t *testing.T) {
	setupCLITest(t)
	t.Setenv("DEBUG", "[foo, bar]")

	output, err := executeCommand(newRootCmd(), "--debug=[bar, baz]", "patterns")
	require.NoError(t, err)

	foo, bar, baz := indexOf(output, "\nfoo"), indexOf(output, "\nbar"), indexOf(output, "\nbaz")
	require.True(t, foo >= 0 && bar >= 0 && baz >= 0, "output:\n%s", output)
	assert.Less(t, foo, bar)
	assert.Less(t, bar, baz)
	assert.Equal(t, bar, lastIndexOf(output, "\nbar"), "bar should be listed once")
}

func indexOf(s, sub string) int     { return strings.Index(s, sub) }
func lastIndexOf(s, sub string) int { return strings.LastIndex(s, sub) }
