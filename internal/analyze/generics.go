package analyze

import (
	"strings"
)

// ParamKind distinguishes generic parameter kinds.
type ParamKind int

const (
	ParamType ParamKind = iota
	ParamLifetime
	ParamConst
)

// GenericParam is one declared generic parameter.
type GenericParam struct {
	Kind ParamKind
	// Name is the identifier; lifetimes are stored without the quote.
	Name   string
	Bounds []*Type
	// ConstType is the type of a const parameter.
	ConstType *Type
	// Default is an optional default (type parameters) or value (const parameters).
	Default *Type
}

// WherePredicate bounds a type: Bounded: Bounds[0] + Bounds[1] ...
type WherePredicate struct {
	Bounded *Type
	Bounds  []*Type
}

// Generics holds the generic clause of a declaration.
type Generics struct {
	Params []GenericParam
	Where  []WherePredicate
}

// TypeParams returns the names of the type parameters in declaration order.
func (g *Generics) TypeParams() []string {
	if g == nil {
		return nil
	}

	var out []string

	for _, p := range g.Params {
		if p.Kind == ParamType {
			out = append(out, p.Name)
		}
	}

	return out
}

// Param returns the type parameter with the given name.
func (g *Generics) Param(name string) *GenericParam {
	for i := range g.Params {
		if g.Params[i].Kind == ParamType && g.Params[i].Name == name {
			return &g.Params[i]
		}
	}

	return nil
}

// Predicate returns the where predicate whose bounded type is structurally
// equal to t.
func (g *Generics) Predicate(t *Type) *WherePredicate {
	for i := range g.Where {
		if Equal(g.Where[i].Bounded, t) {
			return &g.Where[i]
		}
	}

	return nil
}

// Clone returns a deep copy of g.
func (g *Generics) Clone() *Generics {
	if g == nil {
		return &Generics{}
	}

	c := &Generics{}

	for _, p := range g.Params {
		c.Params = append(c.Params, GenericParam{
			Kind:      p.Kind,
			Name:      p.Name,
			Bounds:    cloneTypes(p.Bounds),
			ConstType: p.ConstType.Clone(),
			Default:   p.Default.Clone(),
		})
	}

	for _, w := range g.Where {
		c.Where = append(c.Where, WherePredicate{
			Bounded: w.Bounded.Clone(),
			Bounds:  cloneTypes(w.Bounds),
		})
	}

	return c
}

// DeclGenerics renders the parameter list as written on a type declaration,
// defaults included: <T: Clone = i32, 'a, const N: usize>.
func (g *Generics) DeclGenerics() string {
	return g.render(true, true)
}

// ImplGenerics renders the parameter list for an impl header: bounds, no
// defaults.
func (g *Generics) ImplGenerics() string {
	return g.render(true, false)
}

// TypeGenerics renders the argument list used to name the type: <T, 'a, N>.
func (g *Generics) TypeGenerics() string {
	return g.render(false, false)
}

func (g *Generics) render(withBounds, withDefaults bool) string {
	if g == nil || len(g.Params) == 0 {
		return ""
	}

	parts := make([]string, 0, len(g.Params))

	for _, p := range g.Params {
		var sb strings.Builder

		switch p.Kind {
		case ParamLifetime:
			sb.WriteString("'")
			sb.WriteString(p.Name)

		case ParamConst:
			if withBounds {
				sb.WriteString("const ")
			}

			sb.WriteString(p.Name)

			if withBounds && p.ConstType != nil {
				sb.WriteString(": ")
				sb.WriteString(p.ConstType.String())
			}

		case ParamType:
			sb.WriteString(p.Name)
		}

		if withBounds && p.Kind != ParamConst && len(p.Bounds) > 0 {
			sb.WriteString(": ")
			sb.WriteString(TypeList(p.Bounds, " + "))
		}

		if withDefaults && p.Default != nil {
			sb.WriteString(" = ")
			sb.WriteString(p.Default.String())
		}

		parts = append(parts, sb.String())
	}

	return "<" + strings.Join(parts, ", ") + ">"
}

// WhereClause renders " where A: B, C: D" or "" when there are no predicates.
func (g *Generics) WhereClause() string {
	if g == nil || len(g.Where) == 0 {
		return ""
	}

	parts := make([]string, 0, len(g.Where))
	for _, w := range g.Where {
		parts = append(parts, w.Bounded.String()+": "+TypeList(w.Bounds, " + "))
	}

	return " where " + strings.Join(parts, ", ")
}
