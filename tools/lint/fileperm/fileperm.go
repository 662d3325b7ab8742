// Package fileperm provides a linter to check for hardcoded file permissions
package fileperm

import (
	"go/ast"
	"go/token"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// Analyzer reports permission literals passed to file-writing and
// directory-creating calls where a pkg/fileutil constant exists.
var Analyzer = &analysis.Analyzer{
	Name: "fileperm",
	Doc:  "checks for hardcoded file permission literals instead of using fileutil constants",
	Run:  run,
}

// permSuggestions maps a permission value to the constant that should replace it.
var permSuggestions = map[string]string{
	"0o600": "fileutil.ReadWriteUserPermission",
	"0600":  "fileutil.ReadWriteUserPermission",
	"0o755": "fileutil.ReadWriteExecuteUserReadExecuteOthers",
	"0755":  "fileutil.ReadWriteExecuteUserReadExecuteOthers",
}

// permCall reports whether a call named name takes a permission as its last argument.
// This covers os.WriteFile, afero.WriteFile, fs.MkdirAll, os.Mkdir and Chmod.
func permCall(name string) bool {
	return strings.HasSuffix(name, "WriteFile") ||
		strings.HasPrefix(name, "Mkdir") ||
		name == "Chmod" ||
		name == "OpenFile"
}

func run(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok || len(call.Args) < 2 {
				return true
			}
			fun, ok := call.Fun.(*ast.SelectorExpr)
			if !ok || !permCall(fun.Sel.Name) {
				return true
			}

			lit, ok := call.Args[len(call.Args)-1].(*ast.BasicLit)
			if !ok || lit.Kind != token.INT {
				return true
			}
			if suggestion, found := permSuggestions[lit.Value]; found {
				pass.Reportf(lit.Pos(), "use a file permission constant like '%s' instead of hardcoded '%s' in %s",
					suggestion, lit.Value, fun.Sel.Name)
			}
			return true
		})
	}
	return nil, nil
}
