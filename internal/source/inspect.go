package source

import (
	"go/ast"
	"go/token"
	"strings"
)

// DirectivePrefix is the namespace for marker directives. A directive is a
// doc comment of the form "//crewforge:<name>" with no space after the
// slashes, the same convention as //go:generate.
const DirectivePrefix = "crewforge:"

// Definition kinds.
const (
	KindType   = "type"
	KindMethod = "method"
)

// Definition is a reference to a located marked declaration. Offsets index
// into the file's current source bytes and cover the whole declaration,
// doc comment included. Definitions are invalidated by any edit and must be
// re-discovered afterward.
type Definition struct {
	Name     string   // declared type or method name
	Kind     string   // KindType or KindMethod
	Receiver string   // receiver base type for methods, empty otherwise
	Markers  []string // every directive name attached to the declaration
	Pos      int      // byte offset of the declaration start
	End      int      // byte offset just past the declaration
}

// Directive returns the full directive comment text for a marker name,
// e.g. Directive("agent") → "//crewforge:agent".
func Directive(marker string) string {
	return "//" + DirectivePrefix + marker
}

// MarkedTypes returns the file's top-level type declarations whose doc
// comment carries the given marker, in source order. No matches yields an
// empty slice, never an error. Nested declarations are not searched.
//
// Matching is by exact directive identity only: a parameterized
// ("//crewforge:agent model=x"), namespaced ("//crewforge:agent.v2"), or
// call-form ("//crewforge:agent()") directive never matches a bare marker.
// This mirrors the simple-name-only contract of the marker model and is a
// documented limitation, not an oversight.
func (f *File) MarkedTypes(marker string) []Definition {
	var defs []Definition
	for _, decl := range f.file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			doc := ts.Doc
			if doc == nil && len(gd.Specs) == 1 {
				doc = gd.Doc
			}
			markers := directivesOf(doc)
			if !containsMarker(markers, marker) {
				continue
			}
			start := gd.Pos()
			if gd.Doc != nil {
				start = gd.Doc.Pos()
			}
			defs = append(defs, Definition{
				Name:    ts.Name.Name,
				Kind:    KindType,
				Markers: markers,
				Pos:     f.offset(start),
				End:     f.offset(gd.End()),
			})
		}
	}
	if defs == nil {
		defs = []Definition{}
	}
	return defs
}

// MarkedMethods returns methods of the named type whose doc comment carries
// the given marker, in source order. Methods are the file's top-level funcs
// whose receiver base type is typeName; this is the Go rendering of "direct
// children of one class definition". Matching follows the same exact
// directive identity rule as MarkedTypes.
func (f *File) MarkedMethods(typeName, marker string) []Definition {
	var defs []Definition
	for _, decl := range f.file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Recv == nil {
			continue
		}
		if receiverBase(fd) != typeName {
			continue
		}
		markers := directivesOf(fd.Doc)
		if !containsMarker(markers, marker) {
			continue
		}
		start := fd.Pos()
		if fd.Doc != nil {
			start = fd.Doc.Pos()
		}
		defs = append(defs, Definition{
			Name:     fd.Name.Name,
			Kind:     KindMethod,
			Receiver: typeName,
			Markers:  markers,
			Pos:      f.offset(start),
			End:      f.offset(fd.End()),
		})
	}
	if defs == nil {
		defs = []Definition{}
	}
	return defs
}

// RequireMarkedType returns the first type carrying marker, or a
// MarkerNotFoundError naming the file.
func (f *File) RequireMarkedType(marker string) (Definition, error) {
	defs := f.MarkedTypes(marker)
	if len(defs) == 0 {
		return Definition{}, &MarkerNotFoundError{Marker: marker, Scope: f.Path}
	}
	return defs[0], nil
}

// RequireMarkedMethods returns the marked methods of typeName, or a
// MarkerNotFoundError when there are none.
func (f *File) RequireMarkedMethods(typeName, marker string) ([]Definition, error) {
	defs := f.MarkedMethods(typeName, marker)
	if len(defs) == 0 {
		return nil, &MarkerNotFoundError{Marker: marker, Scope: typeName + " in " + f.Path}
	}
	return defs, nil
}

// directivesOf extracts directive names from a doc comment group. The text
// after the prefix is returned verbatim, so "agent model=x" and "agent.v2"
// survive as-is and fail the exact-identity comparison downstream.
func directivesOf(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}
	var names []string
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, "//"+DirectivePrefix) {
			continue
		}
		names = append(names, strings.TrimPrefix(c.Text, "//"+DirectivePrefix))
	}
	return names
}

func containsMarker(markers []string, marker string) bool {
	for _, m := range markers {
		if m == marker {
			return true
		}
	}
	return false
}

// receiverBase returns the base type name of a method receiver, unwrapping
// a pointer if present.
func receiverBase(fd *ast.FuncDecl) string {
	if len(fd.Recv.List) == 0 {
		return ""
	}
	expr := fd.Recv.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name
	}
	return ""
}
