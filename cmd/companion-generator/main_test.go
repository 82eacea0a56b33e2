package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var (
		cli CLI
		out bytes.Buffer
	)

	parser, err := kong.New(&cli,
		kong.Name("companion-generator"),
		kong.Vars{"version": "test"},
		kong.Exit(func(code int) { t.Fatalf("unexpected exit with code %d", code) }),
	)
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}

	err = kctx.Run(&Global{Ctx: t.Context(), Out: &out}, &cli)

	return out.String(), err
}

func writeSchema(t *testing.T, src string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	return path
}

func TestGen_Examples(t *testing.T) {
	out := t.TempDir()

	_, err := runCLI(t, "--config", "../../examples/companion.yaml", "gen", "--output", out,
		"../../examples/basic/schema.yaml", "../../examples/generics/schema.yaml")
	require.NoError(t, err)

	for _, name := range []string{
		"command_companion.rs", "registry_companion.rs", "field_companion.rs", "handle_companion.rs",
	} {
		data, err := os.ReadFile(filepath.Join(out, name))
		require.NoError(t, err, name)
		assert.NotContains(t, string(data), "compile_error!", name)
	}

	data, err := os.ReadFile(filepath.Join(out, "command_companion.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "pub fn arg(&mut self, arg: String) -> &mut Self {")
	assert.Contains(t, string(data), `.field("timeout_ms", &::std::format_args!("{}ms", self.timeout_ms))`)
}

func TestGen_ErrorsAreEmbeddedAndReported(t *testing.T) {
	schema := writeSchema(t, `
declarations:
  - name: Pair
    derive: [builder]
    fields:
      - type: i32
`)
	out := t.TempDir()

	_, err := runCLI(t, "gen", "-o", out, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 error(s) reported")

	data, err := os.ReadFile(filepath.Join(out, "pair_companion.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "::core::compile_error!(")

	quiet := t.TempDir()
	_, err = runCLI(t, "gen", "-o", quiet, "--no-embed", schema)
	require.Error(t, err)

	entries, err := os.ReadDir(quiet)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCheck(t *testing.T) {
	output, err := runCLI(t, "check", "../../examples/basic/schema.yaml")
	require.NoError(t, err)
	assert.Equal(t, "1 declaration(s), 0 error(s), 0 warning(s)\n", output)

	schema := writeSchema(t, `
declarations:
  - name: Pair
    derive: [builder]
    fields:
      - type: i32
`)

	output, err = runCLI(t, "check", schema)
	require.Error(t, err)
	assert.Contains(t, output, "error: ")
	assert.Contains(t, output, "[unnamed_field] builder requires named fields")
	assert.Contains(t, output, "1 declaration(s), 1 error(s), 0 warning(s)")
}

func TestInspect(t *testing.T) {
	output, err := runCLI(t, "inspect", "../../examples/generics/schema.yaml")
	require.NoError(t, err)

	assert.Contains(t, output, "Registry<K: Eq + Hash, V, M> builder=true debug=true\n")
	assert.Contains(t, output, "  K: Same\n  V: Same\n  M: Phantom\n")
	assert.Contains(t, output,
		"  impl<K: Eq + Hash + ::std::fmt::Debug, V: ::std::fmt::Debug, M> ::std::fmt::Debug for Registry<K, V, M>\n")
	assert.Contains(t, output, "  T: Associative(T::Value)\n")
}

func TestInspect_Dump(t *testing.T) {
	output, err := runCLI(t, "inspect", "--dump", "../../examples/basic/schema.yaml")
	require.NoError(t, err)
	assert.Contains(t, output, "(*schema.Declaration)")
	assert.Contains(t, output, `Name: (string) (len=7) "Command"`)
}

func TestConfig_Invalid(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "companion.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("debug_trait: \"Debug + Clone\"\n"), 0o644))

	_, err := runCLI(t, "--config", cfg, "check", "../../examples/basic/schema.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}
