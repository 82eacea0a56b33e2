package gen

import (
	"text/template"

	"companion-generator/internal/analyze"
	"companion-generator/internal/attr"
	"companion-generator/internal/bounds"
	"companion-generator/internal/diagnostic"
	"companion-generator/internal/field"
	"companion-generator/internal/match"
	"companion-generator/internal/schema"
)

var debugKeys = []string{"bound"}

type debugData struct {
	Name         string
	Trait        string
	ImplGenerics string
	TypeGenerics string
	Where        string
	Fields       []debugField
}

type debugField struct {
	Name    string
	Pattern string
}

func (g *Generator) generateDebug(u *Unit, d *schema.Declaration, fields []field.Schema) {
	if !requireNamed(u, fields, "debug") {
		return
	}

	preds, explicit, ok := g.explicitBounds(u, d.Attrs)
	if !ok {
		return
	}

	var generics *analyze.Generics
	if explicit {
		generics = bounds.MergePredicates(d.Generics, preds)
	} else {
		verdicts := g.classifier.Infer(d.Generics, d.FieldTypes())
		generics = bounds.Merge(d.Generics, verdicts, g.debugTrait)
	}

	data := debugData{
		Name:         d.Name,
		Trait:        g.debugTrait.String(),
		ImplGenerics: generics.ImplGenerics(),
		TypeGenerics: generics.TypeGenerics(),
		Where:        generics.WhereClause(),
	}

	for _, f := range fields {
		if f.DebugErr || g.classifier.IsPhantom(f.Declared) {
			continue
		}

		data.Fields = append(data.Fields, debugField{Name: f.Name, Pattern: rustString(f.Pattern())})
	}

	execute(u, ItemDebugImpl, d.Name, debugImplTemplate, data)
}

// explicitBounds reads a declaration-level debug(bound = "...") annotation.
// When present, its predicates replace bound inference. ok is false when the
// annotation is malformed; the debug implementation is then skipped.
func (g *Generator) explicitBounds(u *Unit, attrs []schema.Attr) (preds []analyze.WherePredicate, explicit, ok bool) {
	ok = true

	for _, raw := range attrs {
		if field.Namespace(raw.Text) != field.NamespaceDebug {
			continue
		}

		meta, err := attr.Parse(raw.Text)
		if err != nil {
			u.Diagnostics.AddError(CodeInvalidAttribute, "invalid attribute syntax: "+err.Error(), raw.Pos, "")
			ok = false

			continue
		}

		if explicit {
			u.Diagnostics.AddError(CodeInvalidAttribute, "duplicate `debug` annotation", raw.At(meta.Offset), "")
			ok = false

			continue
		}

		if meta.Kind != attr.MetaList || len(meta.Nested) != 1 || !meta.Nested[0].Is("bound") ||
			meta.Nested[0].Kind != attr.MetaNameValue || meta.Nested[0].Value.Kind != attr.LitStr {
			pos := raw.At(meta.Offset)

			var suggestions []string
			if meta.Kind == attr.MetaList && len(meta.Nested) > 0 {
				pos = raw.At(meta.Nested[0].Offset)
				suggestions = match.Suggest(meta.Nested[0].Path, debugKeys)
			}

			u.Diagnostics.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.DiagnosticError,
				Code:        CodeInvalidAttribute,
				Message:     "expected `debug(bound = \"...\")`",
				Pos:         pos,
				Suggestions: suggestions,
			})

			ok = false

			continue
		}

		lit := meta.Nested[0].Value

		parsed, err := bounds.ParsePredicates(lit.Value)
		if err != nil {
			u.Diagnostics.AddError(CodeInvalidBound, err.Error(), raw.At(lit.Offset), "")
			ok = false

			continue
		}

		preds, explicit = parsed, true
	}

	return preds, explicit, ok
}

var debugImplTemplate = template.Must(template.New("debug_impl").Parse(
	`impl{{.ImplGenerics}} {{.Trait}} for {{.Name}}{{.TypeGenerics}}{{.Where}} {
    fn fmt(&self, f: &mut ::std::fmt::Formatter<'_>) -> ::std::fmt::Result {
        f.debug_struct("{{.Name}}")
{{- range .Fields}}
            .field("{{.Name}}", &::std::format_args!({{.Pattern}}, self.{{.Name}}))
{{- end}}
            .finish()
    }
}
`))
