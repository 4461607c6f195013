package gotypes

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/mpyw/injectlogin/internal/marker"
	"github.com/mpyw/injectlogin/internal/universe"
)

// scanner collects marked declarations from a single package.
type scanner struct {
	src      Source
	registry *marker.Registry
	kind     marker.Kind
	owners   map[*types.TypeName]*Decl
	found    []*Decl
}

func newScanner(src Source, registry *marker.Registry, kind marker.Kind) *scanner {
	return &scanner{
		src:      src,
		registry: registry,
		kind:     kind,
		owners:   make(map[*types.TypeName]*Decl),
	}
}

func (s *scanner) scan() []*Decl {
	for _, file := range s.src.Files {
		// Never read our own output.
		if ast.IsGenerated(file) {
			continue
		}

		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				s.funcDecl(d)
			case *ast.GenDecl:
				s.genDecl(d)
			}
		}
	}

	return s.found
}

// funcDecl handles functions, methods and the types declared in their bodies.
func (s *scanner) funcDecl(fd *ast.FuncDecl) {
	if s.hasMarker(fd.Doc) {
		if fd.Recv != nil {
			owner := s.receiverOwner(fd)
			s.add(fd.Name, universe.Method, owner)
		} else {
			s.add(fd.Name, universe.Func, nil)
		}
	}

	if fd.Body == nil {
		return
	}

	ast.Inspect(fd.Body, func(n ast.Node) bool {
		stmt, ok := n.(*ast.DeclStmt)
		if !ok {
			return true
		}
		if gd, ok := stmt.Decl.(*ast.GenDecl); ok {
			s.genDecl(gd)
		}
		return false
	})
}

func (s *scanner) genDecl(gd *ast.GenDecl) {
	// A doc comment on an unparenthesized declaration belongs to its only spec.
	var groupDoc *ast.CommentGroup
	if !gd.Lparen.IsValid() {
		groupDoc = gd.Doc
	}

	for _, spec := range gd.Specs {
		switch sp := spec.(type) {
		case *ast.TypeSpec:
			owner := s.ownerOf(sp.Name)
			if s.hasMarker(groupDoc, sp.Doc, sp.Comment) {
				s.found = append(s.found, owner)
			}
			s.members(sp.Type, owner)

		case *ast.ValueSpec:
			kind := universe.Var
			if gd.Tok == token.CONST {
				kind = universe.Const
			}
			if s.hasMarker(groupDoc, sp.Doc, sp.Comment) {
				for _, name := range sp.Names {
					s.add(name, kind, nil)
				}
			}
			// Fields of anonymous struct types have no enclosing named type.
			if sp.Type != nil {
				s.members(sp.Type, nil)
			}
			for _, value := range sp.Values {
				s.members(value, nil)
			}
		}
	}
}

// members visits struct fields and interface methods reachable from expr
// without crossing into another named type.
func (s *scanner) members(expr ast.Expr, owner *Decl) {
	ast.Inspect(expr, func(n ast.Node) bool {
		switch t := n.(type) {
		case *ast.StructType:
			for _, field := range t.Fields.List {
				if !s.hasMarker(field.Doc, field.Comment) {
					continue
				}
				for _, name := range fieldNames(field) {
					s.add(name, universe.Field, owner)
				}
			}

		case *ast.InterfaceType:
			for _, method := range t.Methods.List {
				if len(method.Names) == 0 || !s.hasMarker(method.Doc, method.Comment) {
					continue
				}
				for _, name := range method.Names {
					s.add(name, universe.Method, owner)
				}
			}
		}
		return true
	})
}

// add records a marked declaration.
func (s *scanner) add(ident *ast.Ident, kind universe.Kind, owner *Decl) {
	qualified := s.src.Path() + "." + ident.Name
	if owner != nil {
		qualified = owner.qualified + "." + ident.Name
	}

	s.found = append(s.found, &Decl{
		name:      ident.Name,
		kind:      kind,
		qualified: qualified,
		owner:     owner,
		pos:       s.src.Fset.Position(ident.Pos()),
	})
}

// ownerOf returns the Decl for the named type declared by ident.
func (s *scanner) ownerOf(ident *ast.Ident) *Decl {
	obj, _ := s.defOf(ident).(*types.TypeName)
	if obj != nil {
		if d, ok := s.owners[obj]; ok {
			return d
		}
	}

	d := &Decl{
		name:      ident.Name,
		kind:      universe.Type,
		qualified: qualifiedTypeName(obj, s.src.Path(), ident.Name),
		pos:       s.src.Fset.Position(ident.Pos()),
	}
	if obj != nil {
		s.owners[obj] = d
	}

	return d
}

// receiverOwner resolves the named type a method is declared on.
func (s *scanner) receiverOwner(fd *ast.FuncDecl) *Decl {
	fn, _ := s.defOf(fd.Name).(*types.Func)
	if fn == nil {
		return nil
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Recv() == nil {
		return nil
	}

	named, ok := unwrapPointer(sig.Recv().Type()).(*types.Named)
	if !ok {
		return nil
	}

	obj := named.Obj()
	if d, ok := s.owners[obj]; ok {
		return d
	}

	d := &Decl{
		name:      obj.Name(),
		kind:      universe.Type,
		qualified: qualifiedTypeName(obj, s.src.Path(), obj.Name()),
		pos:       s.src.Fset.Position(obj.Pos()),
	}
	s.owners[obj] = d

	return d
}

func (s *scanner) defOf(ident *ast.Ident) types.Object {
	if s.src.Info == nil {
		return nil
	}

	return s.src.Info.Defs[ident]
}

// hasMarker returns true if any comment group carries the scanned marker.
func (s *scanner) hasMarker(groups ...*ast.CommentGroup) bool {
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			if k, ok := s.registry.Match(c.Text); ok && k == s.kind {
				return true
			}
		}
	}

	return false
}

// fieldNames returns the declared names of a field. An embedded field is
// named after its type.
func fieldNames(field *ast.Field) []*ast.Ident {
	if len(field.Names) > 0 {
		return field.Names
	}

	expr := field.Type
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			expr = t.X
		case *ast.SelectorExpr:
			return []*ast.Ident{t.Sel}
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.Ident:
			return []*ast.Ident{t}
		default:
			return nil
		}
	}
}

// qualifiedTypeName returns "pkg/path.Name" for a type name.
func qualifiedTypeName(obj *types.TypeName, fallbackPath, name string) string {
	if obj != nil && obj.Pkg() != nil {
		return obj.Pkg().Path() + "." + obj.Name()
	}

	return fallbackPath + "." + name
}

// unwrapPointer returns the element type if t is a pointer, otherwise returns t.
func unwrapPointer(t types.Type) types.Type {
	if ptr, ok := t.(*types.Pointer); ok {
		return ptr.Elem()
	}

	return t
}
