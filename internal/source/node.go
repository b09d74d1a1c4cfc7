package source

import (
	"bytes"
	"go/ast"
	"go/printer"
	"go/token"
)

// SelectorRef constructs a syntax node referencing base.attr in read
// position. The construction is purely syntactic: base is not resolved
// against any scope and attr is not checked for existence.
func SelectorRef(attr, base string) ast.Expr {
	return &ast.SelectorExpr{
		X:   ast.NewIdent(base),
		Sel: ast.NewIdent(attr),
	}
}

// RenderExpr renders an expression node back to source text.
func RenderExpr(expr ast.Expr) (string, error) {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, token.NewFileSet(), expr); err != nil {
		return "", err
	}
	return buf.String(), nil
}
