package analyze

import (
	"strings"
)

// String returns the canonical Rust spelling of t.
// Examples:
//   - "Vec<T>"
//   - "::std::fmt::Debug"
//   - "<T as Trait>::Item"
//   - "&'a mut [u8; 4]"
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}

	var sb strings.Builder
	writeType(&sb, t)

	return sb.String()
}

// TypeList joins types with the given separator, e.g. bounds with " + ".
func TypeList(types []*Type, sep string) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}

	return strings.Join(parts, sep)
}

func writeType(sb *strings.Builder, t *Type) {
	switch t.Kind {
	case TypeKindPath:
		if t.Relaxed {
			sb.WriteString("?")
		}

		writeSegments(sb, t.Global, t.Segments)

	case TypeKindQualified:
		sb.WriteString("<")
		writeType(sb, t.QSelf)

		if t.Trait != nil {
			sb.WriteString(" as ")
			writeType(sb, t.Trait)
		}

		sb.WriteString(">")

		for _, s := range t.Segments {
			sb.WriteString("::")
			writeSegment(sb, s)
		}

	case TypeKindReference:
		sb.WriteString("&")

		if t.Lifetime != "" {
			sb.WriteString("'")
			sb.WriteString(t.Lifetime)
			sb.WriteString(" ")
		}

		if t.Mutable {
			sb.WriteString("mut ")
		}

		writeType(sb, t.Elem)

	case TypeKindPointer:
		if t.Mutable {
			sb.WriteString("*mut ")
		} else {
			sb.WriteString("*const ")
		}

		writeType(sb, t.Elem)

	case TypeKindSlice:
		sb.WriteString("[")
		writeType(sb, t.Elem)
		sb.WriteString("]")

	case TypeKindArray:
		sb.WriteString("[")
		writeType(sb, t.Elem)
		sb.WriteString("; ")
		sb.WriteString(t.Len)
		sb.WriteString("]")

	case TypeKindTuple:
		sb.WriteString("(")

		for i, e := range t.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}

			writeType(sb, e)
		}

		if len(t.Elems) == 1 {
			sb.WriteString(",")
		}

		sb.WriteString(")")

	case TypeKindLifetime:
		sb.WriteString("'")
		sb.WriteString(t.Lifetime)

	case TypeKindTraitObject:
		if t.Impl {
			sb.WriteString("impl ")
		} else {
			sb.WriteString("dyn ")
		}

		sb.WriteString(TypeList(t.Bounds, " + "))

	case TypeKindFn:
		if t.Text != "" {
			sb.WriteString(t.Text)
			sb.WriteString(" ")
		}

		sb.WriteString("fn")
		writeSignature(sb, t.Elems, t.Elem)

	case TypeKindVerbatim:
		sb.WriteString(t.Text)

	default:
		sb.WriteString("_")
	}
}

func writeSegments(sb *strings.Builder, global bool, segs []Segment) {
	for i, s := range segs {
		if i > 0 || global {
			sb.WriteString("::")
		}

		writeSegment(sb, s)
	}
}

func writeSegment(sb *strings.Builder, s Segment) {
	sb.WriteString(s.Ident)

	if s.Parenthesized {
		writeSignature(sb, s.Inputs, s.Output)
		return
	}

	if len(s.Args) == 0 && len(s.Bindings) == 0 {
		return
	}

	sb.WriteString("<")

	n := 0
	for _, a := range s.Args {
		if n > 0 {
			sb.WriteString(", ")
		}

		writeType(sb, a)
		n++
	}

	for _, b := range s.Bindings {
		if n > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(b.Name)
		sb.WriteString(" = ")
		writeType(sb, b.Type)
		n++
	}

	sb.WriteString(">")
}

// writeSignature prints "(A, B) -> R", omitting the arrow for a nil output.
func writeSignature(sb *strings.Builder, inputs []*Type, output *Type) {
	sb.WriteString("(")
	sb.WriteString(TypeList(inputs, ", "))
	sb.WriteString(")")

	if output != nil {
		sb.WriteString(" -> ")
		writeType(sb, output)
	}
}
