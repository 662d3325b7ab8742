// Package main implements the nsdebug command-line interface.
// It inspects and exercises a DEBUG allow-list the same way debug emitters see it.
//
// The main CLI commands are:
//   - check: Report whether namespaces are enabled
//   - patterns: Show the merged allowed set and how each pattern matches
//   - emit: Create a debug emitter and print one line through it
//   - config: Show or change the nsdebug config file
//   - version: Print the build version
//
// The allow-list comes from the DEBUG environment variable and the --debug flag,
// with the "debug" key of the config file used when DEBUG is not set.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lucas-albers-lz4/nsdebug/pkg/debug"
	"github.com/lucas-albers-lz4/nsdebug/pkg/exitcodes"
	log "github.com/lucas-albers-lz4/nsdebug/pkg/log"
	"github.com/lucas-albers-lz4/nsdebug/pkg/namespace"
)

// Global flag variables
var (
	cfgFile   string
	debugSpec string
	logLevel  string

	// settings holds the config file and environment view of the current invocation.
	settings *viper.Viper

	// cliDebug traces the CLI itself under the "nsdebug:cli" namespace.
	cliDebug *debug.Emitter
)

// AppFs defines the filesystem interface to use, allows mocking in tests.
var AppFs = afero.NewOsFs()

// SetFs replaces the current filesystem with the provided one and returns a function to restore it.
// This is primarily used for testing.
func SetFs(newFs afero.Fs) func() {
	oldFs := AppFs
	AppFs = newFs
	return func() { AppFs = oldFs }
}

// newRootCmd builds the command tree. A fresh tree per execution keeps flag
// state from leaking between test runs.
func newRootCmd() *cobra.Command {
	cfgFile, debugSpec, logLevel = "", "", ""

	rootCmd := &cobra.Command{
		Use:   "nsdebug",
		Short: "Inspect and exercise namespace-scoped debug output",
		Long: `nsdebug evaluates a DEBUG allow-list the way namespace-scoped debug emitters do.

The allow-list is read from the DEBUG environment variable and the --debug flag:

  DEBUG=""  DEBUG=false  DEBUG=0     nothing enabled
  DEBUG="*" DEBUG=true   DEBUG=1     everything enabled
  DEBUG="[app:*, db, @scope/{a:b}]"  only the listed namespaces

Patterns are exact names, prefix wildcards ending in "*", or scoped
brace expansions. Both sources are merged; a "*" in either enables everything.
DEBUG_COLORS=false turns off ANSI colors in emitted lines.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupInvocation,
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("a subcommand is required")
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.nsdebug.yaml)")
	flags.StringVar(&debugSpec, "debug", "", `namespace allow-list, e.g. --debug='[app:*]'; a bare --debug enables all`)
	flags.Lookup("debug").NoOptDefVal = namespace.Wildcard
	flags.StringVar(&logLevel, "log-level", "", "set nsdebug's own log level (debug, info, warn, error)")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newPatternsCmd())
	rootCmd.AddCommand(newEmitCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// setupInvocation loads settings, applies the log level and prepares the CLI's own emitter.
func setupInvocation(cmd *cobra.Command, _ []string) error {
	v, err := loadSettings(AppFs, cfgFile)
	if err != nil {
		return err
	}
	settings = v

	levelStr := logLevel
	if levelStr == "" {
		levelStr = settings.GetString(configKeyLogLevel)
	}
	if levelStr != "" {
		level, parseErr := log.ParseLevel(levelStr)
		if parseErr != nil {
			log.Warnf("Invalid log level specified: '%s'. Using default: %s. Error: %v", levelStr, level, parseErr)
		}
		log.SetLevel(level)
	}
	if log.IsDebugEnabled() {
		log.Debugf("Effective settings from %q: %v", settings.ConfigFileUsed(), settings.AllSettings())
	}

	cliDebug = newEmitter(cmd, "nsdebug:cli", debug.WithOutput(cmd.ErrOrStderr()))
	cliDebug.Logf("config file: %q", settings.ConfigFileUsed())
	cliDebug.Dump("debug args", debugArgs(cmd))
	return nil
}

// source returns the engine inputs of this invocation: DEBUG and DEBUG_COLORS
// resolved through the settings, and the --debug flag as it was given.
func source(cmd *cobra.Command) namespace.Source {
	return namespace.Source{
		Env:  settingsEnvironment{v: settings},
		Args: debugArgs(cmd),
	}
}

// newEmitter creates an emitter bound to this invocation's source.
func newEmitter(cmd *cobra.Command, ns string, opts ...debug.Option) *debug.Emitter {
	base := []debug.Option{debug.WithSource(source(cmd)), debug.WithOutput(cmd.OutOrStdout())}
	return debug.New(ns, append(base, opts...)...)
}

// debugArgs rebuilds the --debug argument from the parsed flag so that the
// engine sees the same argument vector shape as a process would.
func debugArgs(cmd *cobra.Command) []string {
	f := cmd.Flags().Lookup("debug")
	if f == nil || !f.Changed {
		return nil
	}
	if f.Value.String() == f.NoOptDefVal {
		return []string{namespace.FlagDebug}
	}
	return []string{namespace.FlagDebug + "=" + f.Value.String()}
}

// defaultConfigPath returns $HOME/.nsdebug.yaml.
func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  fmt.Errorf("failed to locate home directory: %w", err),
		}
	}
	return filepath.Join(home, configFileName), nil
}

// Execute runs the CLI with os.Args.
func Execute() error {
	if err := newRootCmd().Execute(); err != nil {
		return fmt.Errorf("execute command: %w", err)
	}
	return nil
}

// executeCommand is a helper for testing Cobra commands
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}
