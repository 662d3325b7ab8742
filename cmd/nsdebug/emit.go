package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/lucas-albers-lz4/nsdebug/pkg/debug"
	"github.com/lucas-albers-lz4/nsdebug/pkg/exitcodes"
	log "github.com/lucas-albers-lz4/nsdebug/pkg/log"
)

func newEmitCmd() *cobra.Command {
	var (
		color   bool
		noColor bool
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "emit <namespace> [values...]",
		Short: "Print one line through a debug emitter",
		Long: `Create a debug emitter for the namespace and log the values through it.
Nothing is printed when the namespace is disabled, unless --force is given.`,
		Example: `  DEBUG='[app:*]' nsdebug emit app:db "connected to" localhost
  nsdebug --debug emit worker --no-color started`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &exitcodes.ExitCodeError{
					Code: exitcodes.ExitMissingRequiredArg,
					Err:  errors.New("a namespace is required"),
				}
			}
			if color && noColor {
				return &exitcodes.ExitCodeError{
					Code: exitcodes.ExitInputConfigurationError,
					Err:  errors.New("--color and --no-color are mutually exclusive"),
				}
			}

			var opts []debug.Option
			switch {
			case cmd.Flags().Changed("color"):
				opts = append(opts, debug.WithColor(color))
			case cmd.Flags().Changed("no-color"):
				opts = append(opts, debug.WithColor(!noColor))
			}

			emitter := newEmitter(cmd, args[0], opts...)
			if !emitter.Enabled {
				if !force {
					log.Info("Namespace disabled, nothing emitted", "namespace", emitter.Namespace)
					return nil
				}
				log.Infof("Forcing output for disabled namespace %s", emitter.Namespace)
				emitter.Enabled = true
			}

			values := make([]any, 0, len(args)-1)
			for _, v := range args[1:] {
				values = append(values, v)
			}
			emitter.Log(values...)
			return nil
		},
	}

	cmd.Flags().BoolVar(&color, "color", false, "request ANSI colors (DEBUG_COLORS still wins)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "request plain output (DEBUG_COLORS still wins)")
	cmd.Flags().BoolVar(&force, "force", false, "emit even when the namespace is disabled")
	return cmd
}
