package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lucas-albers-lz4/nsdebug/pkg/exitcodes"
)

// main runs the CLI and maps ExitCodeErrors to the process exit code.
func main() {
	if code := reportError(os.Stderr, Execute()); code != exitcodes.ExitSuccess {
		os.Exit(code)
	}
}

// reportError prints err and the meaning of its exit code to w, and returns the code.
// Errors without an ExitCodeError map to ExitGeneralRuntimeError.
func reportError(w io.Writer, err error) int {
	if err == nil {
		return exitcodes.ExitSuccess
	}

	code, ok := exitcodes.IsExitCodeError(err)
	if !ok {
		code = exitcodes.ExitGeneralRuntimeError
	}
	fmt.Fprintln(w, "Error:", err)
	if desc, found := exitcodes.CodeDescriptions[code]; found {
		fmt.Fprintf(w, "Exit code %d: %s\n", code, desc)
	}
	return code
}
