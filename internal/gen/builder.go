package gen

import (
	"fmt"
	"text/template"

	"companion-generator/internal/field"
	"companion-generator/internal/schema"
)

// reservedSetters are builder methods that fields cannot shadow.
var reservedSetters = map[string]bool{"build": true}

type builderData struct {
	Name    string
	Builder string
	Error   string

	DeclGenerics string
	ImplGenerics string
	TypeGenerics string
	Where        string

	Fields []builderField
}

type builderField struct {
	Name     string
	Storage  string
	Required bool
	Repeated bool

	// Setter is set when a setter named like the field is generated.
	Setter bool
	// Accumulator names the element-appending setter, if any.
	Accumulator string
	Element     string

	// Value is the expression moving the stored value out in build.
	Value string
}

func (g *Generator) generateBuilder(u *Unit, d *schema.Declaration, fields []field.Schema) {
	if !requireNamed(u, fields, "builder") {
		return
	}

	data := builderData{
		Name:         d.Name,
		Builder:      d.Name + "Builder",
		Error:        d.Name + "BuilderError",
		DeclGenerics: d.Generics.DeclGenerics(),
		ImplGenerics: d.Generics.ImplGenerics(),
		TypeGenerics: d.Generics.TypeGenerics(),
		Where:        d.Generics.WhereClause(),
	}

	owner := map[string]string{}
	for name := range reservedSetters {
		owner[name] = ""
	}

	for _, f := range fields {
		bf := builderField{
			Name:     f.Name,
			Storage:  f.Effective.String(),
			Required: f.Required(),
			Repeated: f.Repeated(),
			Value:    buildValue(f),
		}

		setters := f.Setters()
		if collides(u, f, setters, owner) {
			setters = nil
		}

		for _, s := range setters {
			if s == f.Name && f.Repeat.Kind != field.RepeatSingularOnly {
				bf.Setter = true
			} else {
				bf.Accumulator = s
				bf.Element = f.Repeat.Element.String()
			}
		}

		data.Fields = append(data.Fields, bf)
	}

	execute(u, ItemBuilderStruct, data.Builder, builderStructTemplate, data)
	execute(u, ItemBuilderError, data.Error, builderErrorTemplate, data)
	execute(u, ItemConstructor, data.Name, constructorTemplate, data)
	execute(u, ItemBuilderImpl, data.Builder, builderImplTemplate, data)
}

// collides reports setter names already taken by an earlier field or by a
// builder method, and records the names of f otherwise.
func collides(u *Unit, f field.Schema, setters []string, owner map[string]string) bool {
	clash := false

	for _, s := range setters {
		prev, taken := owner[s]
		if !taken {
			continue
		}

		clash = true

		msg := fmt.Sprintf("setter `%s` collides with the builder's `%s` method", s, s)
		if prev != "" {
			msg = fmt.Sprintf("setter `%s` collides with a setter of field `%s`", s, prev)
		}

		u.Diagnostics.AddError(CodeSetterCollision, msg, f.Pos, f.Name)
	}

	if !clash {
		for _, s := range setters {
			owner[s] = f.Name
		}
	}

	return clash
}

func buildValue(f field.Schema) string {
	take := "self." + f.Name + ".take()"

	switch {
	case f.Optional:
		return take
	case f.Repeated():
		return take + ".unwrap_or_default()"
	default:
		return take + ".unwrap()"
	}
}

var builderStructTemplate = template.Must(template.New("builder_struct").Parse(
	`pub struct {{.Builder}}{{.DeclGenerics}}{{.Where}} {
{{- range .Fields}}
    {{.Name}}: ::std::option::Option<{{.Storage}}>,
{{- end}}
}
`))

var builderErrorTemplate = template.Must(template.New("builder_error").Parse(
	`#[derive(Debug, Clone, Copy, PartialEq, Eq)]
pub enum {{.Error}} {
    MissingField(&'static str),
}

impl ::std::fmt::Display for {{.Error}} {
    fn fmt(&self, f: &mut ::std::fmt::Formatter<'_>) -> ::std::fmt::Result {
        match self {
            Self::MissingField(field) => ::std::write!(f, "` + "`{}`" + ` must be set before building", field),
        }
    }
}

impl ::std::error::Error for {{.Error}} {}
`))

var constructorTemplate = template.Must(template.New("constructor").Parse(
	`impl{{.ImplGenerics}} {{.Name}}{{.TypeGenerics}}{{.Where}} {
    pub fn builder() -> {{.Builder}}{{.TypeGenerics}} {
        {{.Builder}} {
{{- range .Fields}}
            {{.Name}}: {{if .Repeated}}::std::option::Option::Some(::std::default::Default::default()){{else}}::std::option::Option::None{{end}},
{{- end}}
        }
    }
}
`))

var builderImplTemplate = template.Must(template.New("builder_impl").Parse(
	`impl{{.ImplGenerics}} {{.Builder}}{{.TypeGenerics}}{{.Where}} {
{{- range .Fields}}
{{- if .Setter}}
    pub fn {{.Name}}(&mut self, {{.Name}}: {{.Storage}}) -> &mut Self {
        self.{{.Name}} = ::std::option::Option::Some({{.Name}});
        self
    }
{{end}}
{{- if .Accumulator}}
    pub fn {{.Accumulator}}(&mut self, {{.Accumulator}}: {{.Element}}) -> &mut Self {
        self.{{.Name}}.get_or_insert_with(::std::default::Default::default).push({{.Accumulator}});
        self
    }
{{end}}
{{- end}}
    pub fn build(&mut self) -> ::std::result::Result<{{.Name}}{{.TypeGenerics}}, {{.Error}}> {
{{- range .Fields}}
{{- if .Required}}
        if self.{{.Name}}.is_none() {
            return ::std::result::Result::Err({{$.Error}}::MissingField("{{.Name}}"));
        }
{{- end}}
{{- end}}
        ::std::result::Result::Ok({{.Name}} {
{{- range .Fields}}
            {{.Name}}: {{.Value}},
{{- end}}
        })
    }
}
`))
