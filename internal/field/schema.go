package field

import (
	"companion-generator/internal/analyze"
	"companion-generator/internal/diagnostic"
)

//go:generate go tool stringer -type=RepeatKind -trimprefix=Repeat -output=repeatkind_string.go

// RepeatKind selects how a repeated field is filled by the builder.
type RepeatKind int

const (
	// RepeatNone is a field without an accumulator.
	RepeatNone RepeatKind = iota
	// RepeatSingularOnly is a field whose accumulator shares the field's name:
	// only the element-appending setter exists.
	RepeatSingularOnly
	// RepeatSingularAndPlural has both a bulk setter named like the field and
	// an element-appending setter named by the accumulator.
	RepeatSingularAndPlural
)

// Repeat is the resolved repeat mode of a field.
type Repeat struct {
	Kind        RepeatKind
	Accumulator string
	// Element is the sequence element type.
	Element *analyze.Type
}

// DefaultPattern is the format pattern of fields without a debug annotation.
const DefaultPattern = "{:?}"

// Schema is the normalized view of one field.
type Schema struct {
	// Name is empty for positional fields.
	Name  string
	Index int

	Declared *analyze.Type
	// Effective is Declared with one optional wrapper removed.
	Effective *analyze.Type
	Optional  bool

	Repeat Repeat

	FormatPattern string
	HasFormat     bool

	Pos diagnostic.Position

	// BuilderErr and DebugErr mark fields whose annotation of that family
	// could not be interpreted.
	BuilderErr bool
	DebugErr   bool
}

// Named reports whether the field has a name.
func (s *Schema) Named() bool {
	return s.Name != ""
}

// Required reports whether the builder must see a value for the field.
func (s *Schema) Required() bool {
	return !s.Optional && s.Repeat.Kind == RepeatNone
}

// Repeated reports whether the field accumulates elements.
func (s *Schema) Repeated() bool {
	return s.Repeat.Kind != RepeatNone
}

// Pattern returns the format pattern used by the debug implementation.
func (s *Schema) Pattern() string {
	if s.HasFormat {
		return s.FormatPattern
	}

	return DefaultPattern
}

// Setters returns the names of the builder setters generated for the field.
// A field whose builder annotation could not be interpreted has no repeat
// and keeps its plain setter, so a required field can still be set.
func (s *Schema) Setters() []string {
	if !s.Named() {
		return nil
	}

	switch s.Repeat.Kind {
	case RepeatSingularOnly:
		return []string{s.Repeat.Accumulator}
	case RepeatSingularAndPlural:
		return []string{s.Name, s.Repeat.Accumulator}
	default:
		return []string{s.Name}
	}
}
