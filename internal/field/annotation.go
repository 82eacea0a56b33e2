package field

import (
	"errors"
	"fmt"
	"strings"

	"companion-generator/internal/analyze"
	"companion-generator/internal/attr"
	"companion-generator/internal/diagnostic"
	"companion-generator/internal/match"
	"companion-generator/internal/schema"
)

// Diagnostic codes reported while interpreting field annotations.
const (
	CodeInvalidAttribute = "invalid_attribute"
	CodeEachNotSequence  = "each_not_sequence"
)

// Annotation namespaces.
const (
	NamespaceBuilder = "builder"
	NamespaceDebug   = "debug"
)

const (
	msgExpectedEach  = "expected `builder(each = \"...\")`"
	msgInvalidSyntax = "invalid attribute syntax"
)

var builderKeys = []string{"each"}

// annotations is what the annotations of one field resolve to.
type annotations struct {
	each    string
	eachPos diagnostic.Position

	format    string
	hasFormat bool

	builderErr bool
	debugErr   bool
}

func interpretAnnotations(f schema.Field, diags *diagnostic.Diagnostics) annotations {
	var (
		a                 annotations
		seenBuild, seenDb bool
	)

	report := func(pos diagnostic.Position, msg string, suggestions []string) {
		diags.Add(diagnostic.Diagnostic{
			Severity:    diagnostic.DiagnosticError,
			Code:        CodeInvalidAttribute,
			Message:     msg,
			Pos:         pos,
			Field:       f.Name,
			Suggestions: suggestions,
		})
	}

	for _, raw := range f.Attrs {
		ns := Namespace(raw.Text)
		if ns != NamespaceBuilder && ns != NamespaceDebug {
			continue
		}

		meta, err := attr.Parse(raw.Text)
		if err != nil {
			pos, msg := raw.Pos, err.Error()

			var ae *attr.Error
			if errors.As(err, &ae) {
				pos, msg = raw.At(ae.Offset), ae.Msg
			}

			report(pos, msgInvalidSyntax+": "+msg, nil)
			a.markErr(ns)

			continue
		}

		switch ns {
		case NamespaceBuilder:
			if seenBuild {
				report(raw.At(meta.Offset), "duplicate `builder` annotation", nil)
				a.builderErr = true
				a.each = ""

				continue
			}

			seenBuild = true

			if !a.builder(meta, raw, report) {
				a.builderErr = true
				a.each = ""
			}

		case NamespaceDebug:
			if seenDb {
				report(raw.At(meta.Offset), "duplicate `debug` annotation", nil)
				a.debugErr = true

				continue
			}

			seenDb = true

			if meta.Kind != attr.MetaNameValue || meta.Value.Kind != attr.LitStr {
				report(raw.At(meta.Offset), msgInvalidSyntax+": expected `debug = \"...\"`", nil)
				a.debugErr = true

				continue
			}

			a.format = meta.Value.Value
			a.hasFormat = true
		}
	}

	return a
}

type reportFunc func(pos diagnostic.Position, msg string, suggestions []string)

// builder interprets builder(each = "name"). It reports false on any error.
func (a *annotations) builder(meta attr.Meta, raw schema.Attr, report reportFunc) bool {
	if meta.Kind != attr.MetaList || len(meta.Nested) == 0 {
		report(raw.At(meta.Offset), msgExpectedEach, nil)
		return false
	}

	ok := true

	for i, nested := range meta.Nested {
		if !nested.Is("each") || i > 0 {
			report(raw.At(nested.Offset), msgExpectedEach, match.Suggest(nested.Path, builderKeys))

			ok = false

			continue
		}

		if nested.Kind != attr.MetaNameValue {
			report(raw.At(nested.Offset), msgExpectedEach, nil)

			ok = false

			continue
		}

		if nested.Value.Kind != attr.LitStr {
			report(raw.At(nested.Value.Offset),
				fmt.Sprintf("expected string literal for `each`, found %s", nested.Value.Raw), nil)

			ok = false

			continue
		}

		if !analyze.IsIdent(nested.Value.Value) {
			report(raw.At(nested.Value.Offset),
				fmt.Sprintf("`each` value %q is not a valid identifier", nested.Value.Value), nil)

			ok = false

			continue
		}

		a.each = nested.Value.Value
		a.eachPos = raw.At(nested.Value.Offset)
	}

	return ok
}

func (a *annotations) markErr(ns string) {
	if ns == NamespaceBuilder {
		a.builderErr = true
	} else {
		a.debugErr = true
	}
}

// Namespace returns the leading path of an annotation: "builder" for
// `builder(each = "x")`. Malformed text yields whatever identifier prefix it has.
func Namespace(text string) string {
	text = strings.TrimSpace(text)

	end := strings.IndexFunc(text, func(r rune) bool {
		return r != '_' && r != ':' && !isAlnum(r)
	})
	if end < 0 {
		end = len(text)
	}

	return text[:end]
}

func isAlnum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}
