package internalcheck

import (
	"go/ast"
	"go/token"
	"go/types"
	"testing"

	"golang.org/x/tools/go/packages"
)

// Envelope digests and serialized keys are byte strings an attacker can
// probe byte by byte; they are compared with crypto/subtle only.
func TestByteStringsCompareInConstantTime(t *testing.T) {
	pkgs := load(t, packages.NeedSyntax|packages.NeedTypes|packages.NeedTypesInfo, bindingsPath, sealPath)

	findings := walk(pkgs, func(pkg *packages.Package, n ast.Node) string {
		switch n := n.(type) {
		case *ast.BinaryExpr:
			if n.Op != token.EQL && n.Op != token.NEQ {
				return ""
			}
			if bytesLike(pkg.TypesInfo.TypeOf(n.X)) && bytesLike(pkg.TypesInfo.TypeOf(n.Y)) {
				return n.Op.String() + " on bytes, use subtle.ConstantTimeCompare"
			}
		case *ast.CallExpr:
			sel, ok := n.Fun.(*ast.SelectorExpr)
			if !ok {
				return ""
			}
			fn, ok := pkg.TypesInfo.Uses[sel.Sel].(*types.Func)
			if ok && fn.Pkg() != nil && fn.Pkg().Path() == "bytes" && (fn.Name() == "Equal" || fn.Name() == "Compare") {
				return "bytes." + fn.Name() + " is not constant time"
			}
		}
		return ""
	})
	report(t, "constant-time policy violation", findings)
}

// bytesLike matches []byte, [N]byte and pointers or named types over them.
func bytesLike(typ types.Type) bool {
	switch tt := typ.(type) {
	case *types.Slice:
		return isByte(tt.Elem())
	case *types.Array:
		return isByte(tt.Elem())
	case *types.Pointer:
		return bytesLike(tt.Elem())
	case *types.Named:
		return bytesLike(tt.Underlying())
	}
	return false
}

func isByte(t types.Type) bool {
	b, ok := t.(*types.Basic)
	return ok && b.Kind() == types.Byte
}
