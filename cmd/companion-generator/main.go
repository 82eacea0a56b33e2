// Package main provides the CLI entrypoint for companion-generator.
//
// companion-generator reads a YAML schema of Rust struct declarations and
// writes, for each declaration, a companion Rust file holding:
//   - a builder with setters, optional and repeated fields, and a checked build
//   - a Debug implementation whose generic bounds are inferred from field usage
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

var version = "dev"

func main() {
	var cli CLI

	kctx := kong.Parse(&cli,
		kong.Name("companion-generator"),
		kong.Description("Generate Rust builder and Debug companions from a declaration schema."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := kctx.Run(&Global{Ctx: ctx, Out: os.Stdout}, &cli)
	kctx.FatalIfErrorf(err)
}
