package source

import (
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
	"strings"
)

// Splice replaces the byte range [start, end) with text and re-parses the
// result. On success the tree and offsets are refreshed; on failure the File
// is left unchanged and a ParseError is returned. The file on disk is never
// touched until Save.
func (f *File) Splice(start, end int, text string) error {
	if start < 0 || end > len(f.src) || start > end {
		return fmt.Errorf("splice range [%d:%d) out of bounds for %s (%d bytes)", start, end, f.Path, len(f.src))
	}
	next := make([]byte, 0, len(f.src)-(end-start)+len(text))
	next = append(next, f.src[:start]...)
	next = append(next, text...)
	next = append(next, f.src[end:]...)

	reparsed, err := Parse(f.Path, next)
	if err != nil {
		return err
	}
	f.fset, f.tok, f.file, f.src = reparsed.fset, reparsed.tok, reparsed.file, reparsed.src
	return nil
}

// Insert places text at the given byte offset.
func (f *File) Insert(off int, text string) error {
	return f.Splice(off, off, text)
}

// InsertAfterTag inserts block on its own lines immediately after the first
// line whose trimmed content equals tag. The block must carry its own
// trailing newline. Returns ErrTagNotFound when no line matches.
func (f *File) InsertAfterTag(tag, block string) error {
	off := 0
	for _, line := range strings.SplitAfter(string(f.src), "\n") {
		off += len(line)
		if strings.TrimSpace(line) == tag {
			return f.Insert(off, block)
		}
	}
	return fmt.Errorf("%w: %q in %s", ErrTagNotFound, tag, f.Path)
}

// HasImport reports whether path is already imported.
func (f *File) HasImport(path string) bool {
	for _, imp := range f.file.Imports {
		if p, err := strconv.Unquote(imp.Path.Value); err == nil && p == path {
			return true
		}
	}
	return false
}

// AddImport appends an import for path to the file's last import group,
// creating a new import statement when the file has none. Adding an
// already-present import is a no-op.
func (f *File) AddImport(path string) error {
	return f.AddNamedImport("", path)
}

// AddNamedImport is AddImport with an explicit package alias.
func (f *File) AddNamedImport(alias, path string) error {
	if f.HasImport(path) {
		return nil
	}

	var last *ast.GenDecl
	for _, decl := range f.file.Decls {
		if gd, ok := decl.(*ast.GenDecl); ok && gd.Tok == token.IMPORT {
			last = gd
		}
	}
	spec := strconv.Quote(path)
	if alias != "" {
		spec = alias + " " + spec
	}
	if last == nil {
		return f.Insert(f.offset(f.file.Name.End()), "\n\nimport "+spec)
	}
	if last.Lparen.IsValid() {
		return f.Insert(f.offset(last.Rparen), "\t"+spec+"\n")
	}
	return f.Insert(f.offset(last.End()), "\nimport "+spec)
}

// RemoveImport deletes the import spec for path, taking its whole line.
// Removing an absent import is a no-op.
func (f *File) RemoveImport(path string) error {
	for _, imp := range f.file.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil || p != path {
			continue
		}
		start := f.offset(imp.Pos())
		for start > 0 && f.src[start-1] != '\n' {
			start--
		}
		end := f.offset(imp.End())
		for end < len(f.src) && f.src[end] != '\n' {
			end++
		}
		if end < len(f.src) {
			end++
		}
		return f.Splice(start, end, "")
	}
	return nil
}

// Element is one element of a located composite literal.
type Element struct {
	Text string // rendered source text of the element
	Pos  int    // byte offset of the element start
	End  int    // byte offset just past the element
}

// CompositeLitInside locates the first composite literal within def whose
// type renders as typeText (e.g. "[]tools.Tool") and returns the byte
// offsets just inside its braces.
func (f *File) CompositeLitInside(def Definition, typeText string) (start, end int, err error) {
	lit, err := f.compositeLit(def, typeText)
	if err != nil {
		return 0, 0, err
	}
	return f.offset(lit.Lbrace) + 1, f.offset(lit.Rbrace), nil
}

// CompositeLitElems returns the elements of the composite literal located
// by CompositeLitInside, in source order.
func (f *File) CompositeLitElems(def Definition, typeText string) ([]Element, error) {
	lit, err := f.compositeLit(def, typeText)
	if err != nil {
		return nil, err
	}
	elems := make([]Element, 0, len(lit.Elts))
	for _, e := range lit.Elts {
		text, err := RenderExpr(e)
		if err != nil {
			return nil, err
		}
		elems = append(elems, Element{
			Text: text,
			Pos:  f.offset(e.Pos()),
			End:  f.offset(e.End()),
		})
	}
	return elems, nil
}

func (f *File) compositeLit(def Definition, typeText string) (*ast.CompositeLit, error) {
	var found *ast.CompositeLit
	ast.Inspect(f.file, func(n ast.Node) bool {
		if found != nil || n == nil {
			return false
		}
		lit, ok := n.(*ast.CompositeLit)
		if !ok || lit.Type == nil {
			return true
		}
		if f.offset(lit.Pos()) < def.Pos || f.offset(lit.End()) > def.End {
			return true
		}
		if text, err := RenderExpr(lit.Type); err == nil && text == typeText {
			found = lit
			return false
		}
		return true
	})
	if found == nil {
		return nil, fmt.Errorf("no %s literal inside %s in %s", typeText, def.Name, f.Path)
	}
	return found, nil
}
