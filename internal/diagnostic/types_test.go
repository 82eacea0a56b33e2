package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_AddAndSeverity(t *testing.T) {
	var d Diagnostics

	d.AddError("invalid_attribute", "bad", Position{Line: 3, Column: 5}, "args")
	d.AddWarning("each_not_sequence", "ignored", Position{}, "env")
	d.AddInfo("note", "fyi", Position{}, "")

	assert.True(t, d.HasErrors())
	assert.False(t, d.IsValid())
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, DiagnosticError, d.Errors[0].Severity)
	assert.Equal(t, DiagnosticWarning, d.Warnings[0].Severity)
	assert.Equal(t, DiagnosticInfo, d.Infos[0].Severity)

	all := d.All()
	require.Len(t, all, 3)
	assert.Equal(t, "invalid_attribute", all[0].Code)
}

func TestDiagnostics_MergeAndDeclaration(t *testing.T) {
	var a, b Diagnostics

	a.AddError("x", "first", Position{}, "")
	b.AddError("y", "second", Position{}, "")
	b.Errors[0].Declaration = "Other"

	a.Merge(b)
	a.WithDeclaration("Command")

	require.Len(t, a.Errors, 2)
	assert.Equal(t, "Command", a.Errors[0].Declaration)
	assert.Equal(t, "Other", a.Errors[1].Declaration)
}

func TestDiagnostics_Error(t *testing.T) {
	var d Diagnostics
	assert.NoError(t, d.Error())

	d.AddError("missing", "first", Position{}, "")
	d.AddError("missing", "second", Position{}, "")
	assert.EqualError(t, d.Error(), "[missing] first; [missing] second")
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{
		Code:        "invalid_attribute",
		Message:     "expected `builder(each = \"...\")`",
		Pos:         Position{File: "schema.yaml", Line: 12, Column: 9},
		Declaration: "Command",
		Field:       "env",
		Suggestions: []string{"each"},
	}

	assert.Equal(t,
		"schema.yaml:12:9: [Command] env: [invalid_attribute] expected `builder(each = \"...\")` (did you mean each?)",
		d.String())
	assert.Equal(t, "plain", Diagnostic{Message: "plain"}.String())
}

func TestPosition(t *testing.T) {
	assert.Equal(t, "", Position{}.String())
	assert.Equal(t, "a.yaml", Position{File: "a.yaml"}.String())
	assert.Equal(t, "4:2", Position{Line: 4, Column: 2}.String())
	assert.Equal(t, Position{Line: 4, Column: 7}, Position{Line: 4, Column: 2}.Shift(5))
	assert.Equal(t, Position{}, Position{}.Shift(5))
}
