package bounds

import (
	"companion-generator/internal/analyze"
)

// Classifier decides how a type parameter is used by field types.
type Classifier struct {
	phantom *analyze.PathMatcher
}

// NewClassifier creates a Classifier that treats the given paths as phantom
// markers, e.g. "PhantomData" and "std::marker::PhantomData".
func NewClassifier(phantomMarkers ...string) *Classifier {
	return &Classifier{phantom: analyze.NewPathMatcher(phantomMarkers...)}
}

// IsPhantom reports whether t is a phantom marker type.
func (c *Classifier) IsPhantom(t *analyze.Type) bool {
	return c.phantom.Match(t)
}

// Classify returns how param is used by t.
//
// An associated-type path rooted at param (param::Item) and a qualified path
// mentioning param (<param as Trait>::Item) are Associative and are not
// looked into. A path whose leading identifier is param is Same. Any other
// type folds the verdicts of its nested types, except function pointers,
// which format the same whatever their signature.
func (c *Classifier) Classify(param string, t *analyze.Type) Usage {
	if t == nil {
		return Usage{}
	}

	switch t.Kind {
	case analyze.TypeKindFn:
		return Usage{}

	case analyze.TypeKindQualified:
		if Occurs(param, t) {
			return Associative(t)
		}

		return Usage{}

	case analyze.TypeKindPath:
		if root, ok := t.AssocRoot(); ok && root == param {
			return Associative(t)
		}

		if !t.Global && t.LeadingIdent() == param {
			return Usage{Kind: UsageSame}
		}
	}

	u := Usage{}
	for _, child := range t.Children() {
		u = Combine(u, c.Classify(param, child))
	}

	return u
}

// ClassifyField classifies the declared type of a field. A phantom marker
// field yields Phantom when param occurs inside it and Different otherwise.
func (c *Classifier) ClassifyField(param string, t *analyze.Type) Usage {
	if c.IsPhantom(t) {
		if Occurs(param, t) {
			return Usage{Kind: UsagePhantom}
		}

		return Usage{}
	}

	return c.Classify(param, t)
}

// Fold combines the field verdicts of param over all field types.
func (c *Classifier) Fold(param string, fields []*analyze.Type) Usage {
	u := Usage{}
	for _, f := range fields {
		u = Combine(u, c.ClassifyField(param, f))
	}

	return u
}

// Verdict is the folded usage of one type parameter.
type Verdict struct {
	Param string
	Usage Usage
}

// Infer folds every type parameter of g over the field types, in parameter
// declaration order.
func (c *Classifier) Infer(g *analyze.Generics, fields []*analyze.Type) []Verdict {
	params := g.TypeParams()
	out := make([]Verdict, 0, len(params))

	for _, p := range params {
		out = append(out, Verdict{Param: p, Usage: c.Fold(p, fields)})
	}

	return out
}

// Occurs reports whether param is mentioned anywhere inside t.
func Occurs(param string, t *analyze.Type) bool {
	if t == nil {
		return false
	}

	if t.Kind == analyze.TypeKindPath && !t.Global && t.LeadingIdent() == param {
		return true
	}

	for _, child := range t.Children() {
		if Occurs(param, child) {
			return true
		}
	}

	return false
}
