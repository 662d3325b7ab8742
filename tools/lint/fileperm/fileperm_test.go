package fileperm

import (
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"
)

func TestAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), Analyzer, "a")
}

func TestPermCall(t *testing.T) {
	tests := map[string]bool{
		"WriteFile":     true,
		"SafeWriteFile": true,
		"MkdirAll":      true,
		"Mkdir":         true,
		"Chmod":         true,
		"OpenFile":      true,
		"ReadFile":      false,
		"Remove":        false,
	}
	for name, want := range tests {
		if got := permCall(name); got != want {
			t.Errorf("permCall(%q) = %v, want %v", name, got, want)
		}
	}
}
