package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/davecgh/go-spew/spew"

	"companion-generator/internal/bounds"
	"companion-generator/internal/config"
	"companion-generator/internal/diagnostic"
	"companion-generator/internal/gen"
	"companion-generator/internal/schema"
)

// Global carries the state shared by every command.
type Global struct {
	Ctx context.Context
	Out io.Writer
}

// CLI is the command line grammar with its global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path; built-in defaults are used when empty" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Gen     GenCmd     `cmd:"" help:"Generate companion files for the declarations in the given schemas"`
	Check   CheckCmd   `cmd:"" help:"Report diagnostics without writing any file"`
	Inspect InspectCmd `cmd:"" help:"Show resolved declarations and their inferred debug bounds"`
}

// AfterApply sets up logging once flags are parsed.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	return nil
}

func (c *CLI) loadConfig() (config.Config, error) {
	if c.Config == "" {
		return config.Default(), nil
	}

	cfg, err := config.Load(c.Config)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}

	slog.Debug("Loaded configuration", "path", c.Config)

	return cfg, nil
}

// GenCmd implements the 'gen' command.
type GenCmd struct {
	Schemas []string `arg:"" type:"existingfile" help:"Schema files to read"`
	Output  string   `short:"o" help:"Output directory; overrides output_dir"`
	Jobs    int      `short:"j" help:"Declarations synthesized at once; overrides jobs when not negative" default:"-1"`
	NoEmbed bool     `name:"no-embed" help:"Do not render errors as compile_error! items"`
}

func (c *GenCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	if c.Output != "" {
		cfg.OutputDir = c.Output
	}

	if c.Jobs >= 0 {
		cfg.Jobs = c.Jobs
	}

	if c.NoEmbed {
		cfg.EmbedDiagnostics = false
	}

	generator, units, err := generate(g.Ctx, cfg, c.Schemas)
	if err != nil {
		return err
	}

	files := generator.Files(units)
	if err := gen.WriteFiles(files, cfg.OutputDir); err != nil {
		return err
	}

	slog.Info("Generated companions", "declarations", len(units), "files", len(files), "output", cfg.OutputDir)

	if n := logDiagnostics(units); n > 0 {
		return fmt.Errorf("%d error(s) reported", n)
	}

	return nil
}

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Schemas []string `arg:"" type:"existingfile" help:"Schema files to read"`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	_, units, err := generate(g.Ctx, cfg, c.Schemas)
	if err != nil {
		return err
	}

	var errs, warnings int

	for _, u := range units {
		for _, d := range u.Diagnostics.All() {
			fmt.Fprintf(g.Out, "%s: %s\n", d.Severity, d)
		}

		errs += len(u.Diagnostics.Errors)
		warnings += len(u.Diagnostics.Warnings)
	}

	fmt.Fprintf(g.Out, "%d declaration(s), %d error(s), %d warning(s)\n", len(units), errs, warnings)

	if errs > 0 {
		return fmt.Errorf("%d error(s) reported", errs)
	}

	return nil
}

// InspectCmd implements the 'inspect' command.
type InspectCmd struct {
	Schemas []string `arg:"" type:"existingfile" help:"Schema files to read"`
	Dump    bool     `help:"Dump the resolved declarations in full"`
}

func (c *InspectCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	trait, err := cfg.DebugBound()
	if err != nil {
		return err
	}

	decls, err := loadSchemas(c.Schemas)
	if err != nil {
		return err
	}

	classifier := bounds.NewClassifier(cfg.PhantomMarkers...)

	for _, d := range decls {
		fmt.Fprintf(g.Out, "%s%s builder=%t debug=%t\n", d.Name, d.Generics.DeclGenerics(), d.Builder, d.Debug)

		if d.Diagnostics.HasErrors() {
			for _, diag := range d.Diagnostics.Errors {
				fmt.Fprintf(g.Out, "  error: %s\n", diag)
			}

			continue
		}

		verdicts := classifier.Infer(d.Generics, d.FieldTypes())
		for _, v := range verdicts {
			fmt.Fprintf(g.Out, "  %s: %s\n", v.Param, v.Usage)
		}

		merged := bounds.Merge(d.Generics, verdicts, trait)
		fmt.Fprintf(g.Out, "  impl%s %s for %s%s%s\n",
			merged.ImplGenerics(), trait, d.Name, merged.TypeGenerics(), merged.WhereClause())

		if c.Dump {
			dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
			dumper.Fdump(g.Out, d)
		}
	}

	return nil
}

func loadSchemas(paths []string) ([]*schema.Declaration, error) {
	var decls []*schema.Declaration

	for _, path := range paths {
		ds, err := schema.LoadFile(path)
		if err != nil {
			return nil, err
		}

		slog.Debug("Loaded schema", "path", path, "declarations", len(ds))

		decls = append(decls, ds...)
	}

	return decls, nil
}

func generate(ctx context.Context, cfg config.Config, paths []string) (*gen.Generator, []*gen.Unit, error) {
	decls, err := loadSchemas(paths)
	if err != nil {
		return nil, nil, err
	}

	generator, err := gen.NewGenerator(cfg)
	if err != nil {
		return nil, nil, err
	}

	units, err := generator.GenerateAll(ctx, decls)
	if err != nil {
		return nil, nil, err
	}

	return generator, units, nil
}

// logDiagnostics logs every diagnostic and returns the number of errors.
func logDiagnostics(units []*gen.Unit) int {
	n := 0

	for _, u := range units {
		for _, d := range u.Diagnostics.All() {
			switch d.Severity {
			case diagnostic.DiagnosticError:
				n++

				slog.Error("Generation error", "declaration", u.Declaration, "diagnostic", d.String())
			case diagnostic.DiagnosticWarning:
				slog.Warn("Generation warning", "declaration", u.Declaration, "diagnostic", d.String())
			default:
				slog.Debug("Generation note", "declaration", u.Declaration, "diagnostic", d.String())
			}
		}
	}

	return n
}
