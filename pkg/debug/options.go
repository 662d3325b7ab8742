package debug

import "github.com/lucas-albers-lz4/nsdebug/pkg/namespace"

// EnvColors forces color on ("true", "1") or off ("false", "0") for every emitter.
const EnvColors = "DEBUG_COLORS"

// Config is the caller's display preference. A nil Color means "no preference".
type Config struct {
	Color *bool
}

// Options is the resolved display configuration of an emitter.
type Options struct {
	Color bool
}

// NormalizeOptions resolves cfg against the DEBUG_COLORS override in env.
// Color defaults to true when the caller expressed no preference.
func NormalizeOptions(cfg Config, env namespace.Environment) Options {
	opts := Options{Color: true}
	if cfg.Color != nil {
		opts.Color = *cfg.Color
	}

	if env == nil {
		return opts
	}
	switch v, _ := env.LookupEnv(EnvColors); v {
	case "true", "1":
		opts.Color = true
	case "false", "0":
		opts.Color = false
	}
	return opts
}
