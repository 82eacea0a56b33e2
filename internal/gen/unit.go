package gen

import (
	"strings"

	"companion-generator/internal/diagnostic"
)

//go:generate go tool stringer -type=ItemKind -trimprefix=Item -output=itemkind_string.go

// ItemKind identifies a generated top-level item.
type ItemKind int

const (
	ItemBuilderStruct ItemKind = iota
	ItemBuilderError
	ItemConstructor
	ItemBuilderImpl
	ItemDebugImpl
)

// Item is one generated piece of Rust source. Source holds complete items
// that parse on their own.
type Item struct {
	Kind ItemKind
	// Name is the Rust type the item defines or implements for.
	Name   string
	Source string
}

// Unit is everything generated for one declaration. Diagnostics and items
// coexist: an annotation error on one field still leaves the other items.
type Unit struct {
	Declaration string
	Pos         diagnostic.Position
	Diagnostics diagnostic.Diagnostics
	Items       []Item
}

// Header starts every rendered unit.
const Header = "// Code generated by companion-generator. DO NOT EDIT.\n"

// Render joins the items into one Rust source file. With embedDiagnostics,
// each error diagnostic becomes a compile_error! item placed before the
// generated items so the Rust compiler reports it.
func (u *Unit) Render(embedDiagnostics bool) []byte {
	var sb strings.Builder

	sb.WriteString(Header)

	if embedDiagnostics {
		for _, d := range u.Diagnostics.Errors {
			sb.WriteString("\n::core::compile_error!(")
			sb.WriteString(rustString(d.String()))
			sb.WriteString(");\n")
		}
	}

	for _, it := range u.Items {
		sb.WriteString("\n")
		sb.WriteString(it.Source)
	}

	return []byte(sb.String())
}

// Item returns the first item of the given kind.
func (u *Unit) Item(kind ItemKind) (Item, bool) {
	for _, it := range u.Items {
		if it.Kind == kind {
			return it, true
		}
	}

	return Item{}, false
}

// Filename returns the name of the file the unit is written to.
func (u *Unit) Filename() string {
	return snakeCase(u.Declaration) + "_companion.rs"
}
