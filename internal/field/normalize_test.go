package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"companion-generator/internal/analyze"
	"companion-generator/internal/config"
	"companion-generator/internal/diagnostic"
	"companion-generator/internal/schema"
)

func mustParse(t *testing.T, src string) *analyze.Type {
	t.Helper()

	ty, err := analyze.ParseType(src)
	require.NoError(t, err)

	return ty
}

var attrPos = diagnostic.Position{File: "s.yaml", Line: 10, Column: 5}

func newField(t *testing.T, name, ty string, attrs ...string) schema.Field {
	t.Helper()

	f := schema.Field{Name: name, Type: mustParse(t, ty), Pos: diagnostic.Position{File: "s.yaml", Line: 9, Column: 3}}
	for _, a := range attrs {
		f.Attrs = append(f.Attrs, schema.Attr{Text: a, Pos: attrPos})
	}

	return f
}

func normalize(t *testing.T, cfg config.Config, f schema.Field) (Schema, diagnostic.Diagnostics) {
	t.Helper()

	var diags diagnostic.Diagnostics
	s := NewNormalizer(cfg).Normalize(f, &diags)

	return s, diags
}

func TestNormalize_OptionalUnwrap(t *testing.T) {
	tests := []struct {
		ty        string
		effective string
		optional  bool
	}{
		{"String", "String", false},
		{"Option<i32>", "i32", true},
		{"std::option::Option<i32>", "i32", true},
		{"::core::option::Option<T::Item>", "T::Item", true},
		{"Option<Option<u8>>", "Option<u8>", true},
		{"Optional<i32>", "Optional<i32>", false},
		{"Option", "Option", false},
		{"&Option<i32>", "&Option<i32>", false},
	}

	for _, tt := range tests {
		t.Run(tt.ty, func(t *testing.T) {
			s, diags := normalize(t, config.Default(), newField(t, "f", tt.ty))
			assert.Equal(t, tt.effective, s.Effective.String())
			assert.Equal(t, tt.ty, s.Declared.String())
			assert.Equal(t, tt.optional, s.Optional)
			assert.Equal(t, 0, diags.Len())
		})
	}
}

func TestNormalize_Required(t *testing.T) {
	s, _ := normalize(t, config.Default(), newField(t, "name", "String"))
	assert.True(t, s.Required())
	assert.False(t, s.Repeated())
	assert.Equal(t, []string{"name"}, s.Setters())
	assert.Equal(t, DefaultPattern, s.Pattern())

	s, _ = normalize(t, config.Default(), newField(t, "id", "Option<u32>"))
	assert.False(t, s.Required())
	assert.Equal(t, []string{"id"}, s.Setters())
}

func TestNormalize_Each(t *testing.T) {
	s, diags := normalize(t, config.Default(), newField(t, "tag", "Vec<String>", `builder(each = "tag")`))
	require.Equal(t, 0, diags.Len())
	assert.Equal(t, RepeatSingularOnly, s.Repeat.Kind)
	assert.Equal(t, "tag", s.Repeat.Accumulator)
	assert.Equal(t, "String", s.Repeat.Element.String())
	assert.False(t, s.Required())
	assert.Equal(t, []string{"tag"}, s.Setters())

	s, diags = normalize(t, config.Default(), newField(t, "args", "std::vec::Vec<String>", `builder(each = "arg")`))
	require.Equal(t, 0, diags.Len())
	assert.Equal(t, RepeatSingularAndPlural, s.Repeat.Kind)
	assert.Equal(t, []string{"args", "arg"}, s.Setters())

	s, _ = normalize(t, config.Default(), newField(t, "env", "Option<Vec<(String, String)>>", `builder(each = "var")`))
	assert.True(t, s.Optional)
	assert.Equal(t, RepeatSingularAndPlural, s.Repeat.Kind)
	assert.Equal(t, "(String, String)", s.Repeat.Element.String())
}

func TestNormalize_EachOnNonSequence(t *testing.T) {
	f := newField(t, "names", "HashSet<String>", `builder(each = "name")`)

	s, diags := normalize(t, config.Default(), f)
	assert.Equal(t, RepeatNone, s.Repeat.Kind)
	assert.False(t, s.BuilderErr)
	assert.True(t, s.Required())
	assert.Equal(t, 0, diags.Len(), "silently ignored by default")

	cfg := config.Default()
	cfg.StrictEach = true

	s, diags = normalize(t, cfg, f)
	assert.Equal(t, RepeatNone, s.Repeat.Kind)
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, CodeEachNotSequence, diags.Warnings[0].Code)
	assert.Equal(t, 20, diags.Warnings[0].Pos.Column)

	cfg.SequenceTypes = append(cfg.SequenceTypes, "HashSet")
	s, diags = normalize(t, cfg, f)
	assert.Equal(t, RepeatSingularAndPlural, s.Repeat.Kind)
	assert.Equal(t, 0, diags.Len())
}

func TestNormalize_BuilderAnnotationErrors(t *testing.T) {
	tests := []struct {
		name        string
		attrs       []string
		msg         string
		column      int
		suggestions []string
	}{
		{"misspelled key", []string{`builder(eahc = "arg")`}, "expected `builder(each = \"...\")`", 13, []string{"each"}},
		{"bare path", []string{`builder`}, "expected `builder(each = \"...\")`", 5, nil},
		{"name value", []string{`builder = "arg"`}, "expected `builder(each = \"...\")`", 5, nil},
		{"non-string", []string{`builder(each = 1)`}, "expected string literal for `each`, found 1", 20, nil},
		{"bad identifier", []string{`builder(each = "1arg")`}, "is not a valid identifier", 20, nil},
		{"second key", []string{`builder(each = "arg", each = "x")`}, "expected `builder(each = \"...\")`", 27, nil},
		{"syntax", []string{`builder(each = "arg"`}, "invalid attribute syntax: unterminated list", 25, nil},
		{"duplicate", []string{`builder(each = "arg")`, `builder(each = "a")`}, "duplicate `builder` annotation", 5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, diags := normalize(t, config.Default(), newField(t, "args", "Vec<String>", tt.attrs...))

			require.Len(t, diags.Errors, 1)
			d := diags.Errors[0]
			assert.Equal(t, CodeInvalidAttribute, d.Code)
			assert.Contains(t, d.Message, tt.msg)
			assert.Equal(t, "args", d.Field)
			assert.Equal(t, 10, d.Pos.Line)
			assert.Equal(t, tt.column, d.Pos.Column)
			assert.Equal(t, tt.suggestions, d.Suggestions)

			assert.True(t, s.BuilderErr)
			assert.False(t, s.DebugErr)
			assert.Equal(t, RepeatNone, s.Repeat.Kind)
			assert.Equal(t, []string{"args"}, s.Setters())
		})
	}
}

func TestNormalize_Debug(t *testing.T) {
	s, diags := normalize(t, config.Default(), newField(t, "bitmask", "u8", `debug = "0b{:08b}"`))
	require.Equal(t, 0, diags.Len())
	assert.True(t, s.HasFormat)
	assert.Equal(t, "0b{:08b}", s.Pattern())

	s, _ = normalize(t, config.Default(), newField(t, "quoted", "u8", `debug = "\"{}\"\n"`))
	assert.Equal(t, "\"{}\"\n", s.Pattern())

	for _, bad := range []string{`debug`, `debug = 1`, `debug("x")`, `debug(bound = "T: Debug")`} {
		s, diags := normalize(t, config.Default(), newField(t, "f", "u8", bad))
		require.Len(t, diags.Errors, 1, bad)
		assert.Contains(t, diags.Errors[0].Message, "invalid attribute syntax", bad)
		assert.True(t, s.DebugErr, bad)
		assert.False(t, s.BuilderErr, bad)
		assert.False(t, s.HasFormat, bad)
	}
}

func TestNormalize_IndependentFamilies(t *testing.T) {
	s, diags := normalize(t, config.Default(), newField(t, "args", "Vec<String>",
		`builder(each = "arg")`, `debug = 1`, `serde(rename = "ARGS")`, `doc = "x"`))

	require.Len(t, diags.Errors, 1)
	assert.True(t, s.DebugErr)
	assert.False(t, s.BuilderErr)
	assert.Equal(t, RepeatSingularAndPlural, s.Repeat.Kind)
}

func TestNormalizeAll_KeepsOrder(t *testing.T) {
	fields := []schema.Field{
		newField(t, "a", "u8", `builder(x)`),
		newField(t, "b", "Option<u8>"),
		newField(t, "", "u16"),
	}
	fields[1].Index, fields[2].Index = 1, 2

	var diags diagnostic.Diagnostics
	out := NewNormalizer(config.Default()).NormalizeAll(fields, &diags)

	require.Len(t, out, 3)
	assert.Equal(t, "a", out[0].Name)
	assert.True(t, out[0].BuilderErr)
	assert.True(t, out[1].Optional)
	assert.False(t, out[2].Named())
	assert.Nil(t, out[2].Setters())
	assert.Equal(t, 2, out[2].Index)
	assert.Len(t, diags.Errors, 1)
}

func TestNamespace(t *testing.T) {
	assert.Equal(t, "builder", Namespace(` builder(each = "x")`))
	assert.Equal(t, "debug", Namespace(`debug = "{}"`))
	assert.Equal(t, "serde::rename", Namespace(`serde::rename`))
	assert.Equal(t, "", Namespace(`(x)`))
}
