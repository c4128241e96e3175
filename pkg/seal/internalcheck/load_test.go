package internalcheck

import (
	"fmt"
	"go/ast"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const (
	modulePath   = "github.com/s0l0ist/sealgo"
	bindingsPath = modulePath + "/internal/bindings"
	sealPath     = modulePath + "/pkg/seal"
	enginePrefix = "github.com/tuneinsight/lattigo"
)

func load(t *testing.T, mode packages.LoadMode, patterns ...string) []*packages.Package {
	t.Helper()

	cfg := &packages.Config{Mode: mode | packages.NeedName | packages.NeedFiles}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		t.Fatalf("packages contain errors")
	}
	return pkgs
}

// walk visits every syntax node of pkgs. visit returns a non-empty message
// for a node that breaks the policy; walk prefixes it with the position.
func walk(pkgs []*packages.Package, visit func(pkg *packages.Package, n ast.Node) string) []string {
	var findings []string
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			ast.Inspect(file, func(n ast.Node) bool {
				if n == nil {
					return true
				}
				if msg := visit(pkg, n); msg != "" {
					findings = append(findings, fmt.Sprintf("%s: %s", pkg.Fset.Position(n.Pos()), msg))
				}
				return true
			})
		}
	}
	return findings
}

func report(t *testing.T, policy string, findings []string) {
	t.Helper()
	if len(findings) > 0 {
		t.Fatalf("%s:\n%s", policy, strings.Join(findings, "\n"))
	}
}
