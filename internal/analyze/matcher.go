package analyze

import (
	"strings"
)

// PathMatcher recognises a fixed set of type constructors by their path,
// e.g. "Option" and "std::option::Option". A leading "::" is ignored.
type PathMatcher struct {
	paths [][]string
}

// NewPathMatcher builds a matcher from "::"-separated paths.
func NewPathMatcher(paths ...string) *PathMatcher {
	m := &PathMatcher{}

	for _, p := range paths {
		p = strings.TrimPrefix(strings.TrimSpace(p), "::")
		if p == "" {
			continue
		}

		m.paths = append(m.paths, strings.Split(p, "::"))
	}

	return m
}

// Match reports whether t is a path naming one of the constructors. Generic
// arguments are allowed on the final segment only.
func (m *PathMatcher) Match(t *Type) bool {
	if m == nil || !t.IsPath() {
		return false
	}

	for i, s := range t.Segments {
		if i < len(t.Segments)-1 && (len(s.Args) > 0 || len(s.Bindings) > 0) {
			return false
		}
	}

	idents := t.SegmentIdents()

	for _, p := range m.paths {
		if len(p) != len(idents) {
			continue
		}

		same := true
		for i := range p {
			if p[i] != idents[i] {
				same = false
				break
			}
		}

		if same {
			return true
		}
	}

	return false
}

// SingleArg returns the only generic argument of t when t is matched by m and
// carries exactly one type argument and no bindings.
func (m *PathMatcher) SingleArg(t *Type) (*Type, bool) {
	if !m.Match(t) {
		return nil, false
	}

	last := t.Last()
	if len(last.Args) != 1 || len(last.Bindings) != 0 || last.Args[0].Kind == TypeKindLifetime ||
		last.Args[0].Kind == TypeKindVerbatim {
		return nil, false
	}

	return last.Args[0], true
}
