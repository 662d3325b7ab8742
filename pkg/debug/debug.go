// Package debug provides namespace-scoped debug emitters.
//
// An emitter is created for a namespace such as "db:query". Whether it prints is
// decided once at creation time from the DEBUG environment variable and the --debug
// flag (see package namespace), and can be flipped afterwards through the exported
// Enabled field:
//
//	dbg := debug.New("db:query")
//	dbg.Log("running", query, args)
//
// Each enabled call writes exactly one line to standard output:
//
//	[ db:query ]		 - 2024-01-02T15:04:05.000Z : running SELECT 1 []
//
// The namespace is printed in gray and the timestamp in cyan unless color is
// turned off with WithColor(false) or DEBUG_COLORS=false.
package debug

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lucas-albers-lz4/nsdebug/pkg/namespace"
)

// TimeFormat is the ISO-8601 UTC layout, with milliseconds, of emitted timestamps.
const TimeFormat = "2006-01-02T15:04:05.000Z"

// Emitter prints debug lines for one namespace.
//
// Namespace, Enabled and Options may be changed by the caller after creation;
// every call to Log reads them afresh. An Emitter is not safe for concurrent
// modification while it is logging.
type Emitter struct {
	Namespace string
	Enabled   bool
	Options   Options

	src namespace.Source
	out io.Writer
	now func() time.Time
}

// Option configures New.
type Option func(*settings)

type settings struct {
	cfg    Config
	src    namespace.Source
	hasSrc bool
	out    io.Writer
	now    func() time.Time
}

// WithColor sets the caller's color preference. DEBUG_COLORS still overrides it.
func WithColor(color bool) Option {
	return func(s *settings) {
		s.cfg.Color = &color
	}
}

// WithConfig sets the caller's display preferences in one go.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		s.cfg = cfg
	}
}

// WithSource replaces the process environment and arguments used to decide
// whether the emitter is enabled and which color setting applies.
func WithSource(src namespace.Source) Option {
	return func(s *settings) {
		s.src = src
		s.hasSrc = true
	}
}

// WithOutput redirects emitted lines, os.Stdout by default.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		s.out = w
	}
}

// WithClock replaces time.Now as the source of timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

// New creates an emitter for ns. The allowed namespaces are computed from the
// configured Source on every call; nothing is cached between emitters.
func New(ns string, opts ...Option) *Emitter {
	s := settings{out: os.Stdout, now: time.Now}
	for _, opt := range opts {
		opt(&s)
	}
	if !s.hasSrc {
		s.src = namespace.DefaultSource()
	}

	return &Emitter{
		Namespace: ns,
		Enabled:   namespace.IsAllowed(namespace.Allowed(s.src), ns),
		Options:   NormalizeOptions(s.cfg, s.src.Env),
		src:       s.src,
		out:       s.out,
		now:       s.now,
	}
}

// Log writes one line made of args when the emitter is enabled.
// When it is disabled nothing is formatted or written.
func (e *Emitter) Log(args ...any) {
	if !e.Enabled {
		return
	}
	e.write(Format(e.Options.Color, args...))
}

// Logf writes one printf-style line when the emitter is enabled.
func (e *Emitter) Logf(format string, args ...any) {
	if !e.Enabled {
		return
	}
	e.write(fmt.Sprintf(format, args...))
}

// Enter logs entry into the named function.
func (e *Emitter) Enter(funcName string) {
	e.Logf("→ Entering %s", funcName)
}

// Exit logs exit from the named function.
func (e *Emitter) Exit(funcName string) {
	e.Logf("← Exiting %s", funcName)
}

// Dump logs a labelled value.
func (e *Emitter) Dump(label string, value any) {
	if !e.Enabled {
		return
	}
	e.write(label + ": " + inspect(value, e.Options.Color))
}

func (e *Emitter) write(msg string) {
	ts := e.now().UTC().Format(TimeFormat)

	var line string
	if e.Options.Color {
		line = fmt.Sprintf("[ %s%s%s ]\t\t - %s%s%s : %s",
			ansiGray, e.Namespace, ansiReset, ansiCyan, ts, ansiReset, msg)
	} else {
		line = fmt.Sprintf("[ %s ]\t\t - %s : %s", e.Namespace, ts, msg)
	}
	// Write errors are dropped, like a failed console write.
	_, _ = io.WriteString(e.out, line+"\n")
}

// Extend returns a new emitter for "<namespace>:<suffix>". Whether it is
// enabled is decided against the same source as e; output, clock and resolved
// color are inherited.
func (e *Emitter) Extend(suffix string) *Emitter {
	ns := e.Namespace + ":" + strings.TrimPrefix(suffix, ":")
	return &Emitter{
		Namespace: ns,
		Enabled:   namespace.IsAllowed(namespace.Allowed(e.src), ns),
		Options:   e.Options,
		src:       e.src,
		out:       e.out,
		now:       e.now,
	}
}
