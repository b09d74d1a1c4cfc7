package source

import (
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
)

// File is one parsed source file. The syntax tree and the raw bytes are kept
// in lockstep: every edit re-parses, so the tree is never stale and byte
// offsets handed out by the inspector stay valid until the next edit.
type File struct {
	Path string

	fset *token.FileSet
	tok  *token.File
	file *ast.File
	src  []byte
}

// Load reads and parses the file at path.
func Load(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return Parse(path, src)
}

// Parse parses src, using path for positions and error messages only.
func Parse(path string, src []byte) (*File, error) {
	fset := token.NewFileSet()
	parsed, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &File{
		Path: path,
		fset: fset,
		tok:  fset.File(parsed.Pos()),
		file: parsed,
		src:  src,
	}, nil
}

// Bytes returns the current source text, including unsaved edits.
func (f *File) Bytes() []byte {
	out := make([]byte, len(f.src))
	copy(out, f.src)
	return out
}

// Save gofmts the current source and writes it to Path.
func (f *File) Save() error {
	formatted, err := format.Source(f.src)
	if err != nil {
		return &ParseError{Path: f.Path, Err: err}
	}
	reparsed, err := Parse(f.Path, formatted)
	if err != nil {
		return err
	}
	f.fset, f.tok, f.file, f.src = reparsed.fset, reparsed.tok, reparsed.file, reparsed.src
	return os.WriteFile(f.Path, f.src, 0644)
}

// offset converts a token position to a byte offset into src.
func (f *File) offset(pos token.Pos) int {
	return f.tok.Offset(pos)
}
