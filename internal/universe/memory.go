package universe

import (
	"context"
	"go/token"
	"strings"

	"github.com/mpyw/injectlogin/internal/marker"
)

// MemoryDecl is a declaration held by a Memory universe.
type MemoryDecl struct {
	name      string
	kind      Kind
	qualified string
	enclosing *MemoryDecl
	markers   []marker.Kind
	pos       token.Position
}

// Name implements Decl.
func (d *MemoryDecl) Name() string { return d.name }

// Pos implements Decl.
func (d *MemoryDecl) Pos() token.Position { return d.pos }

// Memory is an in-memory Universe.
// Declarations are reported in insertion order.
type Memory struct {
	decls []*MemoryDecl
	err   error
}

// NewMemory creates an empty universe.
func NewMemory() *Memory {
	return &Memory{}
}

// AddType adds a named type with the given fully qualified name.
func (m *Memory) AddType(qualified string, markers ...marker.Kind) *MemoryDecl {
	name := qualified[strings.LastIndex(qualified, ".")+1:]

	return m.add(&MemoryDecl{name: name, kind: Type, qualified: qualified, markers: markers})
}

// AddField adds a field declared by owner.
func (m *Memory) AddField(owner *MemoryDecl, name string, markers ...marker.Kind) *MemoryDecl {
	return m.AddDecl(owner, name, Field, markers...)
}

// AddMethod adds a method declared on owner.
func (m *Memory) AddMethod(owner *MemoryDecl, name string, markers ...marker.Kind) *MemoryDecl {
	return m.AddDecl(owner, name, Method, markers...)
}

// AddDecl adds a declaration of any kind. owner may be nil.
func (m *Memory) AddDecl(owner *MemoryDecl, name string, kind Kind, markers ...marker.Kind) *MemoryDecl {
	qualified := name
	if owner != nil {
		qualified = owner.qualified + "." + name
	}

	return m.add(&MemoryDecl{
		name:      name,
		kind:      kind,
		qualified: qualified,
		enclosing: owner,
		markers:   markers,
	})
}

// FailWith makes FindByMarker return err.
func (m *Memory) FailWith(err error) *Memory {
	m.err = err
	return m
}

func (m *Memory) add(d *MemoryDecl) *MemoryDecl {
	d.pos = token.Position{Filename: "memory.go", Line: len(m.decls) + 1, Column: 1}
	m.decls = append(m.decls, d)

	return d
}

// FindByMarker implements Universe.
func (m *Memory) FindByMarker(ctx context.Context, k marker.Kind) ([]Decl, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if m.err != nil {
		return nil, m.err
	}

	var found []Decl

	for _, d := range m.decls {
		for _, mk := range d.markers {
			if mk == k {
				found = append(found, d)
				break
			}
		}
	}

	return found, nil
}

// KindOf implements Universe.
func (m *Memory) KindOf(d Decl) Kind {
	md, ok := d.(*MemoryDecl)
	if !ok {
		return Other
	}

	return md.kind
}

// EnclosingTypeOf implements Universe.
func (m *Memory) EnclosingTypeOf(d Decl) (Decl, bool) {
	md, ok := d.(*MemoryDecl)
	if !ok || md.enclosing == nil {
		return nil, false
	}

	return md.enclosing, true
}

// QualifiedNameOf implements Universe.
func (m *Memory) QualifiedNameOf(d Decl) string {
	md, ok := d.(*MemoryDecl)
	if !ok {
		return ""
	}

	return md.qualified
}
