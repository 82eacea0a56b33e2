package bounds

import (
	"fmt"
	"strings"

	"companion-generator/internal/analyze"
)

// Merge returns a copy of g extended with the bound each verdict calls for.
// Same adds bound to the parameter itself; Associative adds it to a where
// predicate per path, reusing a predicate whose bounded type is structurally
// equal. Bounds already present are not repeated, so merging the result
// again changes nothing. g is not modified.
func Merge(g *analyze.Generics, verdicts []Verdict, bound *analyze.Type) *analyze.Generics {
	out := g.Clone()

	for _, v := range verdicts {
		switch v.Usage.Kind {
		case UsageSame:
			p := out.Param(v.Param)
			if p == nil || analyze.ContainsType(p.Bounds, bound) {
				continue
			}

			if pred := out.Predicate(analyze.Ident(v.Param)); pred != nil && analyze.ContainsType(pred.Bounds, bound) {
				continue
			}

			p.Bounds = append(p.Bounds, bound.Clone())

		case UsageAssociative:
			for _, path := range v.Usage.Paths {
				addPredicate(out, path, bound)
			}

		case UsagePhantom, UsageDifferent:
		}
	}

	return out
}

// MergePredicates returns a copy of g with preds added to its where clause,
// folding bounds into predicates on structurally equal types.
func MergePredicates(g *analyze.Generics, preds []analyze.WherePredicate) *analyze.Generics {
	out := g.Clone()

	for _, p := range preds {
		addPredicate(out, p.Bounded, p.Bounds...)
	}

	return out
}

func addPredicate(g *analyze.Generics, bounded *analyze.Type, bounds ...*analyze.Type) {
	pred := g.Predicate(bounded)
	if pred == nil {
		g.Where = append(g.Where, analyze.WherePredicate{Bounded: bounded.Clone()})
		pred = &g.Where[len(g.Where)-1]
	}

	for _, b := range bounds {
		if !analyze.ContainsType(pred.Bounds, b) {
			pred.Bounds = append(pred.Bounds, b.Clone())
		}
	}
}

// ParsePredicates parses a comma-separated list of where predicates such as
// "T::Value: Debug, U: Clone". An empty list is valid.
func ParsePredicates(src string) ([]analyze.WherePredicate, error) {
	var out []analyze.WherePredicate

	for _, part := range splitTopLevel(src) {
		if strings.TrimSpace(part) == "" {
			continue
		}

		p, err := analyze.ParseWherePredicate(part)
		if err != nil {
			return nil, fmt.Errorf("invalid predicate %q: %w", strings.TrimSpace(part), err)
		}

		out = append(out, p)
	}

	return out, nil
}

// splitTopLevel splits on commas that are not nested in brackets.
func splitTopLevel(src string) []string {
	var (
		parts []string
		depth int
		start int
	)

	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, src[start:i])
				start = i + 1
			}
		}
	}

	return append(parts, src[start:])
}
