package internalcheck

import (
	"fmt"
	"go/ast"
	"go/types"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// Only the bindings may reach the engine. Everything else goes through
// handles.
func TestEngineImportConfinement(t *testing.T) {
	pkgs := load(t, packages.NeedSyntax, modulePath+"/...")

	var findings []string
	for _, pkg := range pkgs {
		if pkg.PkgPath == bindingsPath {
			continue
		}
		for _, file := range pkg.Syntax {
			for _, imp := range file.Imports {
				path, err := strconv.Unquote(imp.Path.Value)
				if err != nil {
					continue
				}
				if strings.HasPrefix(path, enginePrefix) {
					pos := pkg.Fset.Position(imp.Pos())
					findings = append(findings, fmt.Sprintf("%s: %s imports %s", pos, pkg.PkgPath, path))
				}
			}
		}
	}

	if len(findings) > 0 {
		t.Fatalf("engine import policy violation:\n%s", strings.Join(findings, "\n"))
	}
}

// Engine panics are converted to faults at the boundary; no other package
// may swallow a panic.
func TestRecoverConfinement(t *testing.T) {
	pkgs := load(t, packages.NeedSyntax|packages.NeedTypes|packages.NeedTypesInfo, modulePath+"/...")

	var findings []string
	for _, pkg := range pkgs {
		if pkg.PkgPath == bindingsPath {
			continue
		}
		for _, file := range pkg.Syntax {
			ast.Inspect(file, func(n ast.Node) bool {
				call, ok := n.(*ast.CallExpr)
				if !ok {
					return true
				}
				ident, ok := call.Fun.(*ast.Ident)
				if !ok || ident.Name != "recover" {
					return true
				}
				if _, builtin := pkg.TypesInfo.Uses[ident].(*types.Builtin); !builtin {
					return true
				}
				pos := pkg.Fset.Position(call.Pos())
				findings = append(findings, fmt.Sprintf("%s: recover outside %s", pos, bindingsPath))
				return true
			})
		}
	}

	if len(findings) > 0 {
		t.Fatalf("recover policy violation:\n%s", strings.Join(findings, "\n"))
	}
}
