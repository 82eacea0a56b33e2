package bounds

import (
	"sort"

	"companion-generator/internal/analyze"
)

//go:generate go tool stringer -type=UsageKind -trimprefix=Usage -output=usagekind_string.go

// UsageKind is how a type parameter is used by a type. Larger values win when
// verdicts are combined.
type UsageKind int

const (
	UsageDifferent UsageKind = iota
	UsageSame
	UsageAssociative
	UsagePhantom
)

// Usage is the verdict for one type parameter. Paths is only set for
// UsageAssociative and holds the associated-type paths that need the bound,
// deduplicated and sorted by their canonical text.
type Usage struct {
	Kind  UsageKind
	Paths []*analyze.Type
}

// Associative returns an associative verdict for a single path.
func Associative(path *analyze.Type) Usage {
	return Usage{Kind: UsageAssociative, Paths: []*analyze.Type{path.Clone()}}
}

// Combine folds two verdicts. The higher kind wins; two associative verdicts
// merge their paths. Combine is associative and commutative.
func Combine(a, b Usage) Usage {
	if a.Kind == UsageAssociative && b.Kind == UsageAssociative {
		return Usage{Kind: UsageAssociative, Paths: unionPaths(a.Paths, b.Paths)}
	}

	if b.Kind > a.Kind {
		return b
	}

	return a
}

func unionPaths(a, b []*analyze.Type) []*analyze.Type {
	out := make([]*analyze.Type, 0, len(a)+len(b))

	for _, list := range [][]*analyze.Type{a, b} {
		for _, p := range list {
			if !analyze.ContainsType(out, p) {
				out = append(out, p)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})

	return out
}

// String returns the kind followed by the paths of an associative verdict.
func (u Usage) String() string {
	if u.Kind != UsageAssociative {
		return u.Kind.String()
	}

	return u.Kind.String() + "(" + analyze.TypeList(u.Paths, ", ") + ")"
}
