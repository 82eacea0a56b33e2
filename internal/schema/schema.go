package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"companion-generator/internal/analyze"
	"companion-generator/internal/diagnostic"
)

// File is the root of a YAML schema file as written.
type File struct {
	// Version of the schema format.
	Version string `yaml:"version,omitempty"`

	// Declarations are the record declarations to generate companions for.
	Declarations []DeclarationDef `yaml:"declarations"`
}

// DeclarationDef is one record declaration as written in YAML.
type DeclarationDef struct {
	Name Str `yaml:"name"`

	// Derive selects the companions to generate: builder, debug.
	// Both are generated when the list is empty.
	Derive []Str `yaml:"derive,omitempty"`

	// Attrs are declaration-level annotations, e.g. debug(bound = "...").
	Attrs []Str `yaml:"attrs,omitempty"`

	Generics []GenericDef `yaml:"generics,omitempty"`
	Where    []WhereDef   `yaml:"where,omitempty"`
	Fields   []FieldDef   `yaml:"fields"`
}

// GenericDef is one generic parameter. A name starting with a quote declares
// a lifetime; a non-empty Const declares a const parameter of that type.
type GenericDef struct {
	Name    Str   `yaml:"name"`
	Bounds  []Str `yaml:"bounds,omitempty"`
	Const   Str   `yaml:"const,omitempty"`
	Default Str   `yaml:"default,omitempty"`
}

// WhereDef is one where-clause predicate.
type WhereDef struct {
	Type   Str   `yaml:"type"`
	Bounds []Str `yaml:"bounds"`
}

// FieldDef is one field. Fields without a name are positional.
type FieldDef struct {
	Name  Str   `yaml:"name,omitempty"`
	Type  Str   `yaml:"type"`
	Attrs []Str `yaml:"attrs,omitempty"`
}

// Str is a YAML scalar that remembers where its content starts.
type Str struct {
	Value string
	Pos   diagnostic.Position
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Str) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a string, got %s", node.Line, nodeKindName(node.Kind))
	}

	s.Value = node.Value
	s.Pos = diagnostic.Position{Line: node.Line, Column: node.Column}

	// Columns inside the value are counted from the first content character.
	if node.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle) != 0 {
		s.Pos = s.Pos.Shift(1)
	}

	return nil
}

// IsZero lets omitempty skip unset scalars.
func (s Str) IsZero() bool {
	return s.Value == "" && !s.Pos.IsValid()
}

func nodeKindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.AliasNode:
		return "alias"
	default:
		return "scalar"
	}
}

// Declaration is a resolved record declaration ready for generation.
type Declaration struct {
	Name string
	Pos  diagnostic.Position

	// Builder and Debug select the companions to generate.
	Builder bool
	Debug   bool

	Attrs    []Attr
	Generics *analyze.Generics
	Fields   []Field

	// Diagnostics collects the problems found while resolving the declaration.
	Diagnostics diagnostic.Diagnostics
}

// Field is a resolved field.
type Field struct {
	// Name is empty for positional fields.
	Name string
	// Index is the field's position in the declaration.
	Index int
	Type  *analyze.Type
	Attrs []Attr
	Pos   diagnostic.Position
}

// Attr is the raw text of an annotation and the position of its first
// character.
type Attr struct {
	Text string
	Pos  diagnostic.Position
}

// At returns the position of the byte at offset inside the annotation.
func (a Attr) At(offset int) diagnostic.Position {
	return a.Pos.Shift(offset)
}

// FieldTypes returns the types of all fields in declaration order.
func (d *Declaration) FieldTypes() []*analyze.Type {
	out := make([]*analyze.Type, len(d.Fields))
	for i, f := range d.Fields {
		out[i] = f.Type
	}

	return out
}

// FieldNames returns the names of the named fields.
func (d *Declaration) FieldNames() []string {
	var out []string

	for _, f := range d.Fields {
		if f.Name != "" {
			out = append(out, f.Name)
		}
	}

	return out
}
