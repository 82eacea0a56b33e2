package schema

import (
	"errors"
	"fmt"
	"strings"

	"companion-generator/internal/analyze"
	"companion-generator/internal/diagnostic"
	"companion-generator/internal/match"
)

// Diagnostic codes reported while resolving a schema.
const (
	CodeInvalidDeclaration   = "invalid_declaration"
	CodeDuplicateDeclaration = "duplicate_declaration"
	CodeInvalidDerive        = "invalid_derive"
	CodeInvalidGeneric       = "invalid_generic"
	CodeInvalidBound         = "invalid_bound"
	CodeInvalidType          = "invalid_type"
	CodeInvalidField         = "invalid_field"
	CodeDuplicateField       = "duplicate_field"
)

// Derive names understood in a declaration's derive list.
const (
	DeriveBuilder = "builder"
	DeriveDebug   = "debug"
)

var deriveNames = []string{DeriveBuilder, DeriveDebug}

// Resolve turns every declaration of f into a Declaration. Problems are
// reported on the declaration they belong to; a declaration is always
// returned, even when it carries errors.
func Resolve(f *File, filename string) []*Declaration {
	r := &resolver{file: filename}
	out := make([]*Declaration, 0, len(f.Declarations))
	seen := map[string]bool{}

	for i := range f.Declarations {
		d := r.declaration(&f.Declarations[i])

		if d.Name != "" {
			if seen[d.Name] {
				d.Diagnostics.AddError(CodeDuplicateDeclaration,
					fmt.Sprintf("declaration %q is defined more than once", d.Name), d.Pos, "")
			}

			seen[d.Name] = true
		}

		d.Diagnostics.WithDeclaration(d.Name)
		out = append(out, d)
	}

	return out
}

type resolver struct {
	file  string
	diags *diagnostic.Diagnostics
}

func (r *resolver) pos(s Str) diagnostic.Position {
	p := s.Pos
	p.File = r.file

	return p
}

func (r *resolver) declaration(def *DeclarationDef) *Declaration {
	d := &Declaration{
		Name:     strings.TrimSpace(def.Name.Value),
		Pos:      r.pos(def.Name),
		Generics: &analyze.Generics{},
	}
	r.diags = &d.Diagnostics

	if !analyze.IsIdent(d.Name) {
		r.diags.AddError(CodeInvalidDeclaration,
			fmt.Sprintf("declaration name %q is not a valid identifier", def.Name.Value), d.Pos, "")
	}

	r.derive(d, def.Derive)

	for _, a := range def.Attrs {
		d.Attrs = append(d.Attrs, Attr{Text: a.Value, Pos: r.pos(a)})
	}

	r.generics(d.Generics, def.Generics)
	r.where(d.Generics, def.Where)
	r.fields(d, def.Fields)

	return d
}

func (r *resolver) derive(d *Declaration, derive []Str) {
	if len(derive) == 0 {
		d.Builder, d.Debug = true, true
		return
	}

	for _, s := range derive {
		switch strings.TrimSpace(s.Value) {
		case DeriveBuilder:
			d.Builder = true
		case DeriveDebug:
			d.Debug = true
		default:
			r.diags.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.DiagnosticError,
				Code:        CodeInvalidDerive,
				Message:     fmt.Sprintf("unknown derive %q", s.Value),
				Pos:         r.pos(s),
				Suggestions: match.Suggest(s.Value, deriveNames),
			})
		}
	}
}

func (r *resolver) generics(g *analyze.Generics, defs []GenericDef) {
	seen := map[string]bool{}

	for _, def := range defs {
		name := strings.TrimSpace(def.Name.Value)
		pos := r.pos(def.Name)

		var p analyze.GenericParam

		switch {
		case strings.HasPrefix(name, "'"):
			p = analyze.GenericParam{Kind: analyze.ParamLifetime, Name: name[1:]}
			if !analyze.IsIdent(p.Name) && p.Name != "static" {
				r.diags.AddError(CodeInvalidGeneric, fmt.Sprintf("invalid lifetime %q", name), pos, "")
				continue
			}

		case def.Const.Value != "":
			ct, ok := r.parseType(def.Const, "const parameter type", "")
			if !ok {
				continue
			}

			p = analyze.GenericParam{Kind: analyze.ParamConst, Name: name, ConstType: ct}

		default:
			p = analyze.GenericParam{Kind: analyze.ParamType, Name: name}
		}

		if p.Kind != analyze.ParamLifetime && !analyze.IsIdent(name) {
			r.diags.AddError(CodeInvalidGeneric,
				fmt.Sprintf("generic parameter name %q is not a valid identifier", name), pos, "")
			continue
		}

		if seen[name] {
			r.diags.AddError(CodeInvalidGeneric,
				fmt.Sprintf("generic parameter %q is declared more than once", name), pos, "")
			continue
		}

		seen[name] = true

		for _, b := range def.Bounds {
			if p.Kind == analyze.ParamConst {
				r.diags.AddError(CodeInvalidBound, "const parameters cannot have bounds", r.pos(b), "")
				break
			}

			p.Bounds = append(p.Bounds, r.parseBounds(b)...)
		}

		if def.Default.Value != "" {
			switch p.Kind {
			case analyze.ParamType:
				p.Default, _ = r.parseType(def.Default, "default", "")
			case analyze.ParamConst:
				p.Default = analyze.Ident(strings.TrimSpace(def.Default.Value))
			case analyze.ParamLifetime:
				r.diags.AddError(CodeInvalidGeneric, "lifetimes cannot have defaults", r.pos(def.Default), "")
			}
		}

		g.Params = append(g.Params, p)
	}
}

func (r *resolver) where(g *analyze.Generics, defs []WhereDef) {
	for _, def := range defs {
		var bounded *analyze.Type

		if src := strings.TrimSpace(def.Type.Value); strings.HasPrefix(src, "'") {
			bounded = analyze.Lifetime(src[1:])
		} else {
			t, ok := r.parseType(def.Type, "where type", "")
			if !ok {
				continue
			}

			bounded = t
		}

		var bounds []*analyze.Type
		for _, b := range def.Bounds {
			bounds = append(bounds, r.parseBounds(b)...)
		}

		if len(bounds) == 0 {
			r.diags.AddError(CodeInvalidBound,
				fmt.Sprintf("where predicate on %s has no bounds", bounded), r.pos(def.Type), "")
			continue
		}

		// Predicates on the same type are folded together.
		if existing := g.Predicate(bounded); existing != nil {
			for _, b := range bounds {
				if !analyze.ContainsType(existing.Bounds, b) {
					existing.Bounds = append(existing.Bounds, b)
				}
			}

			continue
		}

		g.Where = append(g.Where, analyze.WherePredicate{Bounded: bounded, Bounds: bounds})
	}
}

func (r *resolver) fields(d *Declaration, defs []FieldDef) {
	seen := map[string]bool{}

	for i, def := range defs {
		f := Field{
			Name:  strings.TrimSpace(def.Name.Value),
			Index: i,
			Pos:   r.pos(def.Name),
		}

		if !f.Pos.IsValid() {
			f.Pos = r.pos(def.Type)
		}

		if f.Name != "" {
			if !analyze.IsIdent(f.Name) {
				r.diags.AddError(CodeInvalidField,
					fmt.Sprintf("field name %q is not a valid identifier", f.Name), f.Pos, f.Name)
				continue
			}

			if seen[f.Name] {
				r.diags.AddError(CodeDuplicateField,
					fmt.Sprintf("field %q is declared more than once", f.Name), f.Pos, f.Name)
				continue
			}

			seen[f.Name] = true
		}

		t, ok := r.parseType(def.Type, "field type", f.Name)
		if !ok {
			continue
		}

		f.Type = t

		for _, a := range def.Attrs {
			f.Attrs = append(f.Attrs, Attr{Text: a.Value, Pos: r.pos(a)})
		}

		d.Fields = append(d.Fields, f)
	}
}

func (r *resolver) parseType(s Str, what, field string) (*analyze.Type, bool) {
	if strings.TrimSpace(s.Value) == "" {
		r.diags.AddError(CodeInvalidType, fmt.Sprintf("missing %s", what), r.pos(s), field)
		return nil, false
	}

	t, err := analyze.ParseType(s.Value)
	if err != nil {
		r.diags.AddError(CodeInvalidType, fmt.Sprintf("invalid %s: %v", what, err), r.errPos(s, err), field)
		return nil, false
	}

	return t, true
}

func (r *resolver) parseBounds(s Str) []*analyze.Type {
	bounds, err := analyze.ParseBounds(s.Value)
	if err != nil {
		r.diags.AddError(CodeInvalidBound, fmt.Sprintf("invalid bound: %v", err), r.errPos(s, err), "")
		return nil
	}

	return bounds
}

// errPos points at the offending character of a parse error when known.
func (r *resolver) errPos(s Str, err error) diagnostic.Position {
	var pe *analyze.ParseError
	if errors.As(err, &pe) {
		return r.pos(s).Shift(pe.Offset)
	}

	return r.pos(s)
}
