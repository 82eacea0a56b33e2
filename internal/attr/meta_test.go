package attr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_List(t *testing.T) {
	m, err := Parse(`builder(each = "arg")`)
	require.NoError(t, err)

	assert.Equal(t, MetaList, m.Kind)
	assert.True(t, m.Is("builder"))
	require.Len(t, m.Nested, 1)

	each := m.Nested[0]
	assert.Equal(t, MetaNameValue, each.Kind)
	assert.Equal(t, "each", each.Path)
	assert.Equal(t, 8, each.Offset)
	assert.Equal(t, LitStr, each.Value.Kind)
	assert.Equal(t, "arg", each.Value.Value)
	assert.Equal(t, `"arg"`, each.Value.Raw)
	assert.Equal(t, 15, each.Value.Offset)
}

func TestParse_NameValue(t *testing.T) {
	m, err := Parse(`debug = "0b{:08b}"`)
	require.NoError(t, err)

	assert.Equal(t, MetaNameValue, m.Kind)
	assert.Equal(t, "debug", m.Path)
	assert.Equal(t, "0b{:08b}", m.Value.Value)
}

func TestParse_Path(t *testing.T) {
	m, err := Parse("  builder  ")
	require.NoError(t, err)
	assert.Equal(t, MetaPath, m.Kind)
	assert.Equal(t, 2, m.Offset)

	m, err = Parse("serde::rename")
	require.NoError(t, err)
	assert.Equal(t, "serde::rename", m.Path)
}

func TestParse_NestedAndLiterals(t *testing.T) {
	m, err := Parse(`outer(a, b = 3, c = true, d = ident, e(f = "g"),)`)
	require.NoError(t, err)
	require.Len(t, m.Nested, 5)

	assert.Equal(t, MetaPath, m.Nested[0].Kind)
	assert.Equal(t, LitInt, m.Nested[1].Value.Kind)
	assert.Equal(t, "3", m.Nested[1].Value.Value)
	assert.Equal(t, LitBool, m.Nested[2].Value.Kind)
	assert.Equal(t, LitOther, m.Nested[3].Value.Kind)
	assert.Equal(t, MetaList, m.Nested[4].Kind)
	assert.Equal(t, "g", m.Nested[4].Nested[0].Value.Value)

	m, err = Parse("empty()")
	require.NoError(t, err)
	assert.Equal(t, MetaList, m.Kind)
	assert.Empty(t, m.Nested)
}

func TestParse_StringEscapes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`d = "a\"b"`, `a"b`},
		{`d = "tab\tend"`, "tab\tend"},
		{`d = "\\"`, `\`},
		{`d = "\u{1F600}"`, "\U0001F600"},
		{`d = r"raw \n"`, `raw \n`},
		{`d = r#"has "quotes""#`, `has "quotes"`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, LitStr, m.Value.Kind)
			assert.Equal(t, tt.want, m.Value.Value)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		in     string
		offset int
	}{
		{``, 0},
		{`(each)`, 0},
		{`builder(each = "x"`, 18},
		{`builder(each = "x`, 15},
		{`builder(each "x")`, 13},
		{`builder(each = )`, 15},
		{`debug = "\q"`, 9},
		{`debug = "x" trailing`, 12},
		{`debug = r#"open"`, 8},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := Parse(tt.in)
			require.Error(t, err)

			var ae *Error
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tt.offset, ae.Offset)
		})
	}
}
