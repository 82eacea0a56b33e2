package field

import (
	"companion-generator/internal/analyze"
	"companion-generator/internal/config"
	"companion-generator/internal/diagnostic"
	"companion-generator/internal/schema"
)

// Normalizer turns schema fields into Schema records.
type Normalizer struct {
	options    *analyze.PathMatcher
	sequences  *analyze.PathMatcher
	strictEach bool
}

// NewNormalizer creates a Normalizer using the wrapper and sequence sets of cfg.
func NewNormalizer(cfg config.Config) *Normalizer {
	return &Normalizer{
		options:    analyze.NewPathMatcher(cfg.OptionWrappers...),
		sequences:  analyze.NewPathMatcher(cfg.SequenceTypes...),
		strictEach: cfg.StrictEach,
	}
}

// NormalizeAll normalizes every field in declaration order.
func (n *Normalizer) NormalizeAll(fields []schema.Field, diags *diagnostic.Diagnostics) []Schema {
	out := make([]Schema, 0, len(fields))
	for _, f := range fields {
		out = append(out, n.Normalize(f, diags))
	}

	return out
}

// Normalize builds the Schema of a single field. Annotation problems are added
// to diags and flagged on the result; they never stop normalization.
func (n *Normalizer) Normalize(f schema.Field, diags *diagnostic.Diagnostics) Schema {
	s := Schema{
		Name:      f.Name,
		Index:     f.Index,
		Declared:  f.Type,
		Effective: f.Type,
		Pos:       f.Pos,
	}

	if inner, ok := n.options.SingleArg(f.Type); ok {
		s.Effective = inner
		s.Optional = true
	}

	a := interpretAnnotations(f, diags)

	s.BuilderErr = a.builderErr
	s.DebugErr = a.debugErr

	if a.hasFormat {
		s.FormatPattern = a.format
		s.HasFormat = true
	}

	if a.each != "" {
		s.Repeat = n.repeat(&s, a, diags)
	}

	return s
}

func (n *Normalizer) repeat(s *Schema, a annotations, diags *diagnostic.Diagnostics) Repeat {
	elem, ok := n.sequences.SingleArg(s.Effective)
	if !ok {
		if n.strictEach {
			diags.AddWarning(CodeEachNotSequence,
				"`each` has no effect: "+s.Effective.String()+" is not a single-argument sequence",
				a.eachPos, s.Name)
		}

		return Repeat{}
	}

	kind := RepeatSingularAndPlural
	if a.each == s.Name {
		kind = RepeatSingularOnly
	}

	return Repeat{Kind: kind, Accumulator: a.each, Element: elem}
}
