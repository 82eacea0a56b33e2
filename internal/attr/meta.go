package attr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MetaKind is the shape of an annotation.
type MetaKind int

const (
	// MetaPath is a bare path: builder
	MetaPath MetaKind = iota
	// MetaList is a path followed by a parenthesized list: builder(each = "x")
	MetaList
	// MetaNameValue is a path followed by "= literal": debug = "{:?}"
	MetaNameValue
)

// LitKind is the kind of a literal value.
type LitKind int

const (
	LitStr LitKind = iota
	LitInt
	LitBool
	LitOther
)

// Lit is a literal on the right-hand side of a name-value annotation.
type Lit struct {
	Kind LitKind
	// Value is the unescaped content for strings and the raw text otherwise.
	Value string
	// Raw is the literal as written.
	Raw    string
	Offset int
}

// Meta is one parsed annotation or one nested list element.
type Meta struct {
	Kind   MetaKind
	Path   string
	Offset int
	Nested []Meta
	Value  Lit
}

// Is reports whether the meta's path equals name.
func (m Meta) Is(name string) bool {
	return m.Path == name
}

// Error is a syntax error inside an annotation.
type Error struct {
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Msg, e.Offset)
}

// Parse parses a single annotation.
func Parse(src string) (Meta, error) {
	p := &parser{src: src}
	p.skipSpace()

	m, err := p.parseMeta()
	if err != nil {
		return Meta{}, err
	}

	p.skipSpace()

	if p.pos < len(p.src) {
		return Meta{}, p.errorf("unexpected %q", p.src[p.pos:])
	}

	return m, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return &Error{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		r, w := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}

		p.pos += w
	}
}

func (p *parser) peekByte() byte {
	if p.pos >= len(p.src) {
		return 0
	}

	return p.src[p.pos]
}

func (p *parser) parseMeta() (Meta, error) {
	start := p.pos

	path, err := p.parsePath()
	if err != nil {
		return Meta{}, err
	}

	m := Meta{Kind: MetaPath, Path: path, Offset: start}

	p.skipSpace()

	switch p.peekByte() {
	case '(':
		p.pos++
		m.Kind = MetaList

		nested, err := p.parseList()
		if err != nil {
			return Meta{}, err
		}

		m.Nested = nested

	case '=':
		p.pos++
		p.skipSpace()
		m.Kind = MetaNameValue

		lit, err := p.parseLit()
		if err != nil {
			return Meta{}, err
		}

		m.Value = lit
	}

	return m, nil
}

func (p *parser) parseList() ([]Meta, error) {
	var out []Meta

	for {
		p.skipSpace()

		if p.peekByte() == ')' {
			p.pos++
			return out, nil
		}

		if p.pos >= len(p.src) {
			return nil, p.errorf("unterminated list")
		}

		m, err := p.parseMeta()
		if err != nil {
			return nil, err
		}

		out = append(out, m)

		p.skipSpace()

		switch p.peekByte() {
		case ',':
			p.pos++
		case ')':
		default:
			if p.pos >= len(p.src) {
				return nil, p.errorf("unterminated list")
			}

			return nil, p.errorf("expected `,` or `)`")
		}
	}
}

func (p *parser) parsePath() (string, error) {
	var sb strings.Builder

	for {
		ident := p.scanIdent()
		if ident == "" {
			return "", p.errorf("expected identifier")
		}

		sb.WriteString(ident)

		if !strings.HasPrefix(p.src[p.pos:], "::") {
			return sb.String(), nil
		}

		p.pos += 2
		sb.WriteString("::")
	}
}

func (p *parser) scanIdent() string {
	start := p.pos

	for p.pos < len(p.src) {
		r, w := utf8.DecodeRuneInString(p.src[p.pos:])
		if r != '_' && !unicode.IsLetter(r) && (p.pos == start || !unicode.IsDigit(r)) {
			break
		}

		p.pos += w
	}

	return p.src[start:p.pos]
}

func (p *parser) parseLit() (Lit, error) {
	start := p.pos
	rest := p.src[p.pos:]

	switch {
	case strings.HasPrefix(rest, `"`):
		v, err := p.scanString()
		if err != nil {
			return Lit{}, err
		}

		return Lit{Kind: LitStr, Value: v, Raw: p.src[start:p.pos], Offset: start}, nil

	case strings.HasPrefix(rest, `r"`) || strings.HasPrefix(rest, `r#`):
		v, err := p.scanRawString()
		if err != nil {
			return Lit{}, err
		}

		return Lit{Kind: LitStr, Value: v, Raw: p.src[start:p.pos], Offset: start}, nil

	case rest != "" && (rest[0] >= '0' && rest[0] <= '9' || rest[0] == '-'):
		p.pos++
		for p.pos < len(p.src) && isLitChar(p.src[p.pos]) {
			p.pos++
		}

		raw := p.src[start:p.pos]

		return Lit{Kind: LitInt, Value: raw, Raw: raw, Offset: start}, nil

	default:
		ident := p.scanIdent()
		if ident == "true" || ident == "false" {
			return Lit{Kind: LitBool, Value: ident, Raw: ident, Offset: start}, nil
		}

		if ident != "" {
			return Lit{Kind: LitOther, Value: ident, Raw: ident, Offset: start}, nil
		}

		return Lit{}, p.errorf("expected literal")
	}
}

func isLitChar(c byte) bool {
	return c == '_' || c == '.' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func (p *parser) scanString() (string, error) {
	start := p.pos
	p.pos++ // opening quote

	var sb strings.Builder

	for p.pos < len(p.src) {
		c := p.src[p.pos]

		switch c {
		case '"':
			p.pos++
			return sb.String(), nil

		case '\\':
			if err := p.scanEscape(&sb); err != nil {
				return "", err
			}

		default:
			sb.WriteByte(c)
			p.pos++
		}
	}

	return "", &Error{Offset: start, Msg: "unterminated string literal"}
}

func (p *parser) scanEscape(sb *strings.Builder) error {
	start := p.pos
	p.pos++ // backslash

	if p.pos >= len(p.src) {
		return &Error{Offset: start, Msg: "unterminated escape"}
	}

	c := p.src[p.pos]
	p.pos++

	switch c {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case '0':
		sb.WriteByte(0)
	case '\\', '"', '\'':
		sb.WriteByte(c)
	case '\n':
		// Line continuation swallows leading whitespace on the next line.
		for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n') {
			p.pos++
		}
	case 'u':
		end := strings.IndexByte(p.src[p.pos:], '}')
		if !strings.HasPrefix(p.src[p.pos:], "{") || end < 0 {
			return &Error{Offset: start, Msg: "malformed unicode escape"}
		}

		n, err := strconv.ParseUint(strings.ReplaceAll(p.src[p.pos+1:p.pos+end], "_", ""), 16, 32)
		if err != nil || !utf8.ValidRune(rune(n)) {
			return &Error{Offset: start, Msg: "malformed unicode escape"}
		}

		sb.WriteRune(rune(n))
		p.pos += end + 1
	default:
		return &Error{Offset: start, Msg: fmt.Sprintf("unknown escape `\\%c`", c)}
	}

	return nil
}

func (p *parser) scanRawString() (string, error) {
	start := p.pos
	p.pos++ // r

	hashes := 0
	for p.pos < len(p.src) && p.src[p.pos] == '#' {
		hashes++
		p.pos++
	}

	if p.peekByte() != '"' {
		return "", &Error{Offset: start, Msg: "malformed raw string literal"}
	}

	p.pos++

	terminator := `"` + strings.Repeat("#", hashes)

	end := strings.Index(p.src[p.pos:], terminator)
	if end < 0 {
		return "", &Error{Offset: start, Msg: "unterminated raw string literal"}
	}

	v := p.src[p.pos : p.pos+end]
	p.pos += end + len(terminator)

	return v, nil
}
