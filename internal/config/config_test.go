package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	bound, err := cfg.DebugBound()
	require.NoError(t, err)
	assert.Equal(t, "::std::fmt::Debug", bound.String())
	assert.True(t, cfg.EmbedDiagnostics)
	assert.Contains(t, cfg.PhantomMarkers, "PhantomData")
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
output_dir: out/rust
debug_trait: core::fmt::Debug
sequence_types: [Vec, SmallVec]
strict_each: true
jobs: 4
`))
	require.NoError(t, err)

	assert.Equal(t, "out/rust", cfg.OutputDir)
	assert.Equal(t, "core::fmt::Debug", cfg.DebugTrait)
	assert.Equal(t, []string{"Vec", "SmallVec"}, cfg.SequenceTypes)
	assert.True(t, cfg.StrictEach)
	assert.Equal(t, 4, cfg.Jobs)
	// Untouched keys keep their defaults.
	assert.Equal(t, Default().OptionWrappers, cfg.OptionWrappers)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{"negative jobs", "jobs: -1", "jobs must not be negative"},
		{"bad trait", "debug_trait: '&Debug'", `debug_trait "&Debug"`},
		{"lifetime trait", "debug_trait: \"'a\"", "must be a single trait path"},
		{"two traits", "debug_trait: Debug + Clone", "must be a single trait path"},
		{"empty markers", "phantom_markers: []", "phantom_markers must not be empty"},
		{"generic wrapper", "option_wrappers: ['Option<T>']", "not a plain type path"},
		{"syntax", "jobs: [", "failed to parse config YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestValidate_ErrorOrderIsStable(t *testing.T) {
	cfg := Default()
	cfg.Jobs = -2
	cfg.PhantomMarkers = nil
	cfg.OptionWrappers = []string{"Option<T>"}
	cfg.SequenceTypes = nil

	want := strings.Join([]string{
		"jobs must not be negative, got -2",
		"phantom_markers must not be empty",
		`option_wrappers: "Option<T>" is not a plain type path`,
		"sequence_types must not be empty",
	}, "\n")

	// Repeat so that a map-ordered walk would show up.
	for range 20 {
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, want, err.Error())
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companion.yaml")
	require.NoError(t, os.WriteFile(path, []byte("embed_diagnostics: false\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.EmbedDiagnostics)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
