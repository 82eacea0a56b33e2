package analyze

//go:generate go tool stringer -type=TypeKind -trimprefix=TypeKind -output=typekind_string.go

// TypeKind represents the kind of a type node.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindPath               // Vec<T>, std::marker::PhantomData<T>, T, T::Item
	TypeKindQualified          // <T as Trait>::Item
	TypeKindReference          // &'a mut T
	TypeKindSlice              // [T]
	TypeKindArray              // [T; N]
	TypeKindTuple              // (A, B), ()
	TypeKindLifetime           // 'a
	TypeKindTraitObject        // dyn Error + Send, impl Iterator<Item = T>
	TypeKindFn                 // fn(u8) -> u8
	TypeKindVerbatim           // 16, {N + 1}, -1, !
	TypeKindPointer            // *const T, *mut T
)

// Type is a node of the type tree.
type Type struct {
	Kind TypeKind

	// Global is set for paths written with a leading "::".
	Global bool
	// Relaxed marks a "?Trait" bound.
	Relaxed bool
	// Segments of a path. For qualified paths these are the segments that
	// follow the trait, e.g. [Item] in <T as Trait>::Item.
	Segments []Segment

	// QSelf and Trait are set for qualified paths. Trait may be nil for <T>::Item.
	QSelf *Type
	Trait *Type

	// Elem is the element of references, pointers, slices and arrays.
	Elem *Type
	// Len is the array length expression, kept verbatim.
	Len string
	// Lifetime is the reference lifetime or, for lifetime leaves, the name
	// without the leading quote.
	Lifetime string
	Mutable  bool

	// Elems are tuple members and function pointer parameters.
	Elems []*Type

	// Bounds of a trait object; Impl selects impl over dyn.
	Bounds []*Type
	Impl   bool
	// Text is the source of a verbatim leaf, such as a const generic
	// argument. For function pointers it holds the qualifiers written before
	// fn (unsafe extern "C"), and Elem holds the return type, nil for none.
	Text string
}

// Segment is one element of a path, e.g. Vec<T> or Iterator<Item = T>.
// Parenthesized segments carry the Fn(A, B) -> R sugar in Inputs and Output.
type Segment struct {
	Ident    string
	Args     []*Type
	Bindings []Binding

	Parenthesized bool
	Inputs        []*Type
	Output        *Type
}

// Binding is an associated-type binding inside generic arguments: Item = T.
type Binding struct {
	Name string
	Type *Type
}

// Ident returns a single-segment path type such as T or String.
func Ident(name string) *Type {
	return &Type{Kind: TypeKindPath, Segments: []Segment{{Ident: name}}}
}

// Generic returns a single-segment generic application such as Vec<T>.
func Generic(name string, args ...*Type) *Type {
	return &Type{Kind: TypeKindPath, Segments: []Segment{{Ident: name, Args: args}}}
}

// Path returns a multi-segment path type without generic arguments.
func Path(global bool, idents ...string) *Type {
	segs := make([]Segment, 0, len(idents))
	for _, id := range idents {
		segs = append(segs, Segment{Ident: id})
	}

	return &Type{Kind: TypeKindPath, Global: global, Segments: segs}
}

// Lifetime returns a lifetime leaf. The name is given without the quote.
func Lifetime(name string) *Type {
	return &Type{Kind: TypeKindLifetime, Lifetime: name}
}

// IsPath reports whether t is a plain path type.
func (t *Type) IsPath() bool {
	return t != nil && t.Kind == TypeKindPath && len(t.Segments) > 0
}

// LeadingIdent returns the identifier of the first path segment, or "" if t
// is not a path.
func (t *Type) LeadingIdent() string {
	if !t.IsPath() {
		return ""
	}

	return t.Segments[0].Ident
}

// Last returns the final path segment, or nil if t is not a path.
func (t *Type) Last() *Segment {
	if !t.IsPath() {
		return nil
	}

	return &t.Segments[len(t.Segments)-1]
}

// SegmentIdents returns the identifiers of all path segments.
func (t *Type) SegmentIdents() []string {
	if !t.IsPath() {
		return nil
	}

	out := make([]string, len(t.Segments))
	for i, s := range t.Segments {
		out[i] = s.Ident
	}

	return out
}

// AssocRoot returns the identifier an associated-type path is rooted at:
// T for T::Item and for <T as Trait>::Item. ok is false for every other shape.
func (t *Type) AssocRoot() (root string, ok bool) {
	if t == nil {
		return "", false
	}

	switch t.Kind {
	case TypeKindPath:
		if t.Global || len(t.Segments) < 2 {
			return "", false
		}

		first := t.Segments[0]
		if len(first.Args) > 0 || len(first.Bindings) > 0 {
			return "", false
		}

		return first.Ident, true

	case TypeKindQualified:
		if t.QSelf.IsPath() && len(t.QSelf.Segments) == 1 && !t.QSelf.Global &&
			len(t.QSelf.Segments[0].Args) == 0 {
			return t.QSelf.Segments[0].Ident, true
		}

		return "", false

	default:
		return "", false
	}
}

// Children returns every type nested directly inside t: generic arguments,
// binding types, elements and, for qualified paths, the self type and trait.
func (t *Type) Children() []*Type {
	if t == nil {
		return nil
	}

	var out []*Type

	switch t.Kind {
	case TypeKindPath:
		for _, s := range t.Segments {
			out = append(out, s.Args...)
			for _, b := range s.Bindings {
				out = append(out, b.Type)
			}

			out = append(out, s.Inputs...)
			if s.Output != nil {
				out = append(out, s.Output)
			}
		}

	case TypeKindQualified:
		out = append(out, t.QSelf)
		if t.Trait != nil {
			out = append(out, t.Trait)
		}

		for _, s := range t.Segments {
			out = append(out, s.Args...)
		}

	case TypeKindReference, TypeKindPointer, TypeKindSlice, TypeKindArray:
		out = append(out, t.Elem)

	case TypeKindTuple:
		out = append(out, t.Elems...)

	case TypeKindTraitObject:
		out = append(out, t.Bounds...)

	case TypeKindFn:
		out = append(out, t.Elems...)
		if t.Elem != nil {
			out = append(out, t.Elem)
		}

	case TypeKindLifetime, TypeKindVerbatim, TypeKindUnknown:
	}

	return out
}

// Clone returns a deep copy of t.
func (t *Type) Clone() *Type {
	if t == nil {
		return nil
	}

	c := *t
	c.QSelf = t.QSelf.Clone()
	c.Trait = t.Trait.Clone()
	c.Elem = t.Elem.Clone()

	if t.Segments != nil {
		c.Segments = make([]Segment, len(t.Segments))
		for i, s := range t.Segments {
			c.Segments[i] = s.clone()
		}
	}

	if t.Elems != nil {
		c.Elems = cloneTypes(t.Elems)
	}

	c.Bounds = cloneTypes(t.Bounds)

	return &c
}

func (s Segment) clone() Segment {
	c := Segment{Ident: s.Ident, Parenthesized: s.Parenthesized, Output: s.Output.Clone()}
	if s.Inputs != nil {
		c.Inputs = cloneTypes(s.Inputs)
	}

	if s.Args != nil {
		c.Args = cloneTypes(s.Args)
	}

	if s.Bindings != nil {
		c.Bindings = make([]Binding, len(s.Bindings))
		for i, b := range s.Bindings {
			c.Bindings[i] = Binding{Name: b.Name, Type: b.Type.Clone()}
		}
	}

	return c
}

func cloneTypes(in []*Type) []*Type {
	if in == nil {
		return nil
	}

	out := make([]*Type, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}

	return out
}

// Equal reports whether a and b are structurally identical.
func Equal(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}

	if a.Kind != b.Kind || a.Global != b.Global || a.Relaxed != b.Relaxed ||
		a.Len != b.Len || a.Lifetime != b.Lifetime || a.Mutable != b.Mutable ||
		a.Impl != b.Impl || a.Text != b.Text {
		return false
	}

	if !Equal(a.QSelf, b.QSelf) || !Equal(a.Trait, b.Trait) || !Equal(a.Elem, b.Elem) {
		return false
	}

	if !equalTypes(a.Elems, b.Elems) || !equalTypes(a.Bounds, b.Bounds) || len(a.Segments) != len(b.Segments) {
		return false
	}

	for i := range a.Segments {
		if !equalSegment(a.Segments[i], b.Segments[i]) {
			return false
		}
	}

	return true
}

func equalSegment(a, b Segment) bool {
	if a.Ident != b.Ident || !equalTypes(a.Args, b.Args) || len(a.Bindings) != len(b.Bindings) {
		return false
	}

	if a.Parenthesized != b.Parenthesized || !equalTypes(a.Inputs, b.Inputs) || !Equal(a.Output, b.Output) {
		return false
	}

	for i := range a.Bindings {
		if a.Bindings[i].Name != b.Bindings[i].Name || !Equal(a.Bindings[i].Type, b.Bindings[i].Type) {
			return false
		}
	}

	return true
}

func equalTypes(a, b []*Type) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}

	return true
}

// ContainsType reports whether list holds a type structurally equal to t.
func ContainsType(list []*Type, t *Type) bool {
	for _, x := range list {
		if Equal(x, t) {
			return true
		}
	}

	return false
}
