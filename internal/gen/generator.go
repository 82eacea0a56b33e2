package gen

import (
	"bytes"
	"fmt"
	"text/template"

	"companion-generator/internal/analyze"
	"companion-generator/internal/bounds"
	"companion-generator/internal/config"
	"companion-generator/internal/diagnostic"
	"companion-generator/internal/field"
	"companion-generator/internal/schema"
)

// Diagnostic codes reported by the generators.
const (
	CodeUnnamedField     = "unnamed_field"
	CodeSetterCollision  = "setter_collision"
	CodeInvalidAttribute = field.CodeInvalidAttribute
	CodeInvalidBound     = schema.CodeInvalidBound
	CodeDuplicateFile    = "duplicate_output_file"
	CodeInternal         = "internal_error"
)

// Generator synthesizes builder and debug companions for declarations. It
// holds no per-declaration state and is safe for concurrent use.
type Generator struct {
	config     config.Config
	normalizer *field.Normalizer
	classifier *bounds.Classifier
	debugTrait *analyze.Type
}

// NewGenerator creates a Generator with the given configuration.
func NewGenerator(cfg config.Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	trait, err := cfg.DebugBound()
	if err != nil {
		return nil, err
	}

	return &Generator{
		config:     cfg,
		normalizer: field.NewNormalizer(cfg),
		classifier: bounds.NewClassifier(cfg.PhantomMarkers...),
		debugTrait: trait,
	}, nil
}

// Config returns the generator configuration.
func (g *Generator) Config() config.Config {
	return g.config
}

// Generate runs the builder and debug passes selected by the declaration.
//
// A declaration that failed to resolve yields its diagnostics only: emitting
// items for a partially understood declaration would produce code that does
// not match it.
func (g *Generator) Generate(d *schema.Declaration) *Unit {
	u := &Unit{Declaration: d.Name, Pos: d.Pos}
	u.Diagnostics.Merge(d.Diagnostics)

	if d.Diagnostics.HasErrors() {
		return u
	}

	fields := g.normalizer.NormalizeAll(d.Fields, &u.Diagnostics)

	if d.Builder {
		g.generateBuilder(u, d, fields)
	}

	if d.Debug {
		g.generateDebug(u, d, fields)
	}

	u.Diagnostics.WithDeclaration(d.Name)

	return u
}

// requireNamed reports every unnamed field. It returns false if there was one.
func requireNamed(u *Unit, fields []field.Schema, pass string) bool {
	ok := true

	for _, f := range fields {
		if !f.Named() {
			u.Diagnostics.AddError(CodeUnnamedField, pass+" requires named fields", f.Pos, "")
			ok = false
		}
	}

	return ok
}

func execute(u *Unit, kind ItemKind, name string, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		u.Diagnostics.AddError(CodeInternal, fmt.Sprintf("executing %s template: %v", kind, err),
			diagnostic.Position{}, "")

		return
	}

	u.Items = append(u.Items, Item{Kind: kind, Name: name, Source: buf.String()})
}
