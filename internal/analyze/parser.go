package analyze

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseError describes a malformed type expression.
type ParseError struct {
	Input  string
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d in %q", e.Msg, e.Offset, e.Input)
}

// ParseType parses a Rust type expression such as "Option<Vec<T::Item>>".
func ParseType(src string) (*Type, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}

	t, err := p.parseType()
	if err != nil {
		return nil, err
	}

	if err := p.expectEOF(); err != nil {
		return nil, err
	}

	return t, nil
}

// ParseBounds parses a "+"-separated bound list such as "Clone + ?Sized + 'a".
func ParseBounds(src string) ([]*Type, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}

	bounds, err := p.parseBounds()
	if err != nil {
		return nil, err
	}

	if err := p.expectEOF(); err != nil {
		return nil, err
	}

	return bounds, nil
}

// ParseWherePredicate parses "T::Value: Debug + Clone".
func ParseWherePredicate(src string) (WherePredicate, error) {
	p, err := newParser(src)
	if err != nil {
		return WherePredicate{}, err
	}

	var bounded *Type
	if p.peek().kind == tokLifetime {
		bounded = Lifetime(p.next().text)
	} else {
		bounded, err = p.parseType()
		if err != nil {
			return WherePredicate{}, err
		}
	}

	if err := p.expect(":"); err != nil {
		return WherePredicate{}, err
	}

	bounds, err := p.parseBounds()
	if err != nil {
		return WherePredicate{}, err
	}

	if err := p.expectEOF(); err != nil {
		return WherePredicate{}, err
	}

	return WherePredicate{Bounded: bounded, Bounds: bounds}, nil
}

// IsIdent reports whether s is a valid, non-keyword Rust identifier.
func IsIdent(s string) bool {
	if s == "" || s == "_" || rustKeywords[s] {
		return false
	}

	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}

		if i > 0 && unicode.IsDigit(r) {
			continue
		}

		return false
	}

	return true
}

var rustKeywords = map[string]bool{
	"as": true, "break": true, "const": true, "continue": true, "crate": true,
	"else": true, "enum": true, "extern": true, "false": true, "fn": true,
	"for": true, "if": true, "impl": true, "in": true, "let": true, "loop": true,
	"match": true, "mod": true, "move": true, "mut": true, "pub": true, "ref": true,
	"return": true, "self": true, "Self": true, "static": true, "struct": true,
	"super": true, "trait": true, "true": true, "type": true, "unsafe": true,
	"use": true, "where": true, "while": true, "async": true, "await": true,
	"dyn": true,
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokLifetime
	tokNumber
	tokString
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	off  int
	end  int
}

type parser struct {
	src  string
	toks []token
	pos  int
}

func newParser(src string) (*parser, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}

	return &parser{src: src, toks: toks}, nil
}

func lex(src string) ([]token, error) {
	var toks []token

	i := 0
	for i < len(src) {
		r, w := utf8.DecodeRuneInString(src[i:])

		switch {
		case unicode.IsSpace(r):
			i += w

		case r == '_' || unicode.IsLetter(r):
			start := i
			for i < len(src) {
				r, w = utf8.DecodeRuneInString(src[i:])
				if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				i += w
			}
			toks = append(toks, token{kind: tokIdent, text: src[start:i], off: start, end: i})

		case r == '\'':
			start := i
			i++
			nameStart := i
			for i < len(src) {
				r, w = utf8.DecodeRuneInString(src[i:])
				if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				i += w
			}
			if i == nameStart {
				return nil, &ParseError{Input: src, Offset: start, Msg: "expected lifetime name"}
			}
			toks = append(toks, token{kind: tokLifetime, text: src[nameStart:i], off: start, end: i})

		case unicode.IsDigit(r):
			start := i
			for i < len(src) {
				r, w = utf8.DecodeRuneInString(src[i:])
				if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				i += w
			}
			toks = append(toks, token{kind: tokNumber, text: src[start:i], off: start, end: i})

		case r == '"':
			start := i
			i++
			for i < len(src) && src[i] != '"' {
				if src[i] == '\\' {
					i++
				}
				i++
			}
			if i >= len(src) {
				return nil, &ParseError{Input: src, Offset: start, Msg: "unterminated string literal"}
			}
			i++
			toks = append(toks, token{kind: tokString, text: src[start:i], off: start, end: i})

		case r == '-' && strings.HasPrefix(src[i:], "->"):
			toks = append(toks, token{kind: tokPunct, text: "->", off: i, end: i + 2})
			i += 2

		case r == ':' && strings.HasPrefix(src[i:], "::"):
			toks = append(toks, token{kind: tokPunct, text: "::", off: i, end: i + 2})
			i += 2

		default:
			toks = append(toks, token{kind: tokPunct, text: string(r), off: i, end: i + w})
			i += w
		}
	}

	toks = append(toks, token{kind: tokEOF, off: len(src), end: len(src)})

	return toks, nil
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) peekAt(n int) token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}

	return p.toks[p.pos+n]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}

	return t
}

func (p *parser) is(text string) bool {
	t := p.peek()
	return (t.kind == tokPunct || t.kind == tokIdent) && t.text == text
}

func (p *parser) accept(text string) bool {
	if p.is(text) {
		p.pos++
		return true
	}

	return false
}

func (p *parser) expect(text string) error {
	if p.accept(text) {
		return nil
	}

	return p.errorf("expected %q", text)
}

func (p *parser) expectEOF() error {
	if p.peek().kind != tokEOF {
		return p.errorf("unexpected %q", p.peek().text)
	}

	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Input: p.src, Offset: p.peek().off, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseType() (*Type, error) {
	tok := p.peek()

	switch {
	case tok.kind == tokPunct && tok.text == "&":
		return p.parseReference()

	case tok.kind == tokPunct && tok.text == "*":
		return p.parsePointer()

	case tok.kind == tokPunct && tok.text == "[":
		return p.parseSliceOrArray()

	case tok.kind == tokPunct && tok.text == "(":
		return p.parseTuple()

	case tok.kind == tokPunct && tok.text == "<":
		return p.parseQualified()

	case tok.kind == tokIdent && (tok.text == "dyn" || tok.text == "impl"):
		return p.parseTraitObject()

	case tok.kind == tokIdent && (tok.text == "fn" || tok.text == "unsafe" || tok.text == "extern"):
		return p.parseFn()

	case tok.kind == tokPunct && tok.text == "!":
		p.next()

		return &Type{Kind: TypeKindVerbatim, Text: "!"}, nil

	case tok.kind == tokIdent || (tok.kind == tokPunct && tok.text == "::"):
		return p.parsePath()

	case tok.kind == tokEOF:
		return nil, p.errorf("expected type")

	default:
		return nil, p.errorf("unexpected %q", tok.text)
	}
}

func (p *parser) parseTraitObject() (*Type, error) {
	t := &Type{Kind: TypeKindTraitObject, Impl: p.next().text == "impl"}

	bounds, err := p.parseBounds()
	if err != nil {
		return nil, err
	}

	t.Bounds = bounds

	return t, nil
}

// parseFn parses a function pointer type. Parameter names are dropped and the
// qualifiers before fn are kept in Text.
func (p *parser) parseFn() (*Type, error) {
	t := &Type{Kind: TypeKindFn}

	var quals []string

	if p.accept("unsafe") {
		quals = append(quals, "unsafe")
	}

	if p.accept("extern") {
		quals = append(quals, "extern")

		if p.peek().kind == tokString {
			quals = append(quals, p.next().text)
		}
	}

	t.Text = strings.Join(quals, " ")

	if err := p.expect("fn"); err != nil {
		return nil, err
	}

	inputs, output, err := p.parseSignature(true)
	if err != nil {
		return nil, err
	}

	t.Elems, t.Elem = inputs, output

	return t, nil
}

// parseSignature parses "(A, B) -> R". With named set, parameters may be
// written as "name: Type".
func (p *parser) parseSignature(named bool) ([]*Type, *Type, error) {
	if err := p.expect("("); err != nil {
		return nil, nil, err
	}

	var inputs []*Type

	for !p.is(")") {
		if named && p.peek().kind == tokIdent && p.peekAt(1).kind == tokPunct && p.peekAt(1).text == ":" {
			p.next()
			p.next()
		}

		in, err := p.parseType()
		if err != nil {
			return nil, nil, err
		}

		inputs = append(inputs, in)

		if !p.accept(",") {
			break
		}
	}

	if err := p.expect(")"); err != nil {
		return nil, nil, err
	}

	if !p.accept("->") {
		return inputs, nil, nil
	}

	output, err := p.parseType()
	if err != nil {
		return nil, nil, err
	}

	return inputs, output, nil
}

func (p *parser) parsePointer() (*Type, error) {
	p.next() // *

	t := &Type{Kind: TypeKindPointer}

	switch {
	case p.accept("mut"):
		t.Mutable = true
	case p.accept("const"):
	default:
		return nil, p.errorf("expected `const` or `mut` after `*`")
	}

	elem, err := p.parseType()
	if err != nil {
		return nil, err
	}

	t.Elem = elem

	return t, nil
}

func (p *parser) parseReference() (*Type, error) {
	p.next() // &

	t := &Type{Kind: TypeKindReference}
	if p.peek().kind == tokLifetime {
		t.Lifetime = p.next().text
	}

	t.Mutable = p.accept("mut")

	elem, err := p.parseType()
	if err != nil {
		return nil, err
	}

	t.Elem = elem

	return t, nil
}

func (p *parser) parseSliceOrArray() (*Type, error) {
	p.next() // [

	elem, err := p.parseType()
	if err != nil {
		return nil, err
	}

	if p.accept("]") {
		return &Type{Kind: TypeKindSlice, Elem: elem}, nil
	}

	if err := p.expect(";"); err != nil {
		return nil, err
	}

	start := p.peek().off
	depth := 0

	for {
		tok := p.peek()
		if tok.kind == tokEOF {
			return nil, p.errorf("unterminated array type")
		}

		if tok.kind == tokPunct && tok.text == "[" {
			depth++
		}

		if tok.kind == tokPunct && tok.text == "]" {
			if depth == 0 {
				break
			}
			depth--
		}

		p.next()
	}

	length := strings.TrimSpace(p.src[start:p.peek().off])
	if length == "" {
		return nil, p.errorf("expected array length")
	}

	p.next() // ]

	return &Type{Kind: TypeKindArray, Elem: elem, Len: length}, nil
}

func (p *parser) parseTuple() (*Type, error) {
	p.next() // (

	t := &Type{Kind: TypeKindTuple, Elems: []*Type{}}
	for !p.is(")") {
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}

		t.Elems = append(t.Elems, elem)

		if !p.accept(",") {
			break
		}
	}

	if err := p.expect(")"); err != nil {
		return nil, err
	}

	// (T) is a parenthesized type, not a tuple.
	if len(t.Elems) == 1 && p.toks[p.pos-2].text != "," {
		return t.Elems[0], nil
	}

	return t, nil
}

func (p *parser) parseQualified() (*Type, error) {
	p.next() // <

	qself, err := p.parseType()
	if err != nil {
		return nil, err
	}

	t := &Type{Kind: TypeKindQualified, QSelf: qself}

	if p.accept("as") {
		trait, err := p.parsePath()
		if err != nil {
			return nil, err
		}

		t.Trait = trait
	}

	if err := p.expect(">"); err != nil {
		return nil, err
	}

	if !p.is("::") {
		return nil, p.errorf("expected associated item after qualified self type")
	}

	for p.accept("::") {
		seg, err := p.parseSegment()
		if err != nil {
			return nil, err
		}

		t.Segments = append(t.Segments, seg)
	}

	return t, nil
}

func (p *parser) parsePath() (*Type, error) {
	t := &Type{Kind: TypeKindPath}
	t.Global = p.accept("::")

	for {
		seg, err := p.parseSegment()
		if err != nil {
			return nil, err
		}

		t.Segments = append(t.Segments, seg)

		// "::<" is a turbofish handled by parseSegment; only "::ident" continues the path.
		if !p.is("::") || p.peekAt(1).kind != tokIdent {
			break
		}

		p.next()
	}

	return t, nil
}

func (p *parser) parseSegment() (Segment, error) {
	tok := p.peek()
	if tok.kind != tokIdent {
		return Segment{}, p.errorf("expected identifier")
	}

	if rustKeywords[tok.text] && tok.text != "Self" && tok.text != "crate" &&
		tok.text != "super" && tok.text != "self" {
		return Segment{}, p.errorf("unexpected keyword %q", tok.text)
	}

	p.next()

	seg := Segment{Ident: tok.text}

	if p.is("(") {
		inputs, output, err := p.parseSignature(false)
		if err != nil {
			return Segment{}, err
		}

		seg.Parenthesized, seg.Inputs, seg.Output = true, inputs, output

		return seg, nil
	}

	if p.is("::") && p.peekAt(1).text == "<" {
		p.next()
	}

	if !p.accept("<") {
		return seg, nil
	}

	for !p.is(">") {
		if err := p.parseArg(&seg); err != nil {
			return Segment{}, err
		}

		if !p.accept(",") {
			break
		}
	}

	if err := p.expect(">"); err != nil {
		return Segment{}, err
	}

	return seg, nil
}

func (p *parser) parseArg(seg *Segment) error {
	tok := p.peek()

	if tok.kind == tokLifetime {
		p.next()
		seg.Args = append(seg.Args, Lifetime(tok.text))

		return nil
	}

	if c, ok, err := p.parseConstArg(); ok || err != nil {
		if err != nil {
			return err
		}

		seg.Args = append(seg.Args, c)

		return nil
	}

	if tok.kind == tokIdent && p.peekAt(1).kind == tokPunct && p.peekAt(1).text == "=" {
		p.next()
		p.next()

		t, err := p.parseType()
		if err != nil {
			return err
		}

		seg.Bindings = append(seg.Bindings, Binding{Name: tok.text, Type: t})

		return nil
	}

	t, err := p.parseType()
	if err != nil {
		return err
	}

	seg.Args = append(seg.Args, t)

	return nil
}

// parseConstArg parses a const generic argument kept verbatim: a literal, a
// negated literal or a braced expression. ok is false when the next token
// starts none of these.
func (p *parser) parseConstArg() (*Type, bool, error) {
	tok := p.peek()

	switch {
	case tok.kind == tokNumber || tok.kind == tokString ||
		tok.kind == tokIdent && (tok.text == "true" || tok.text == "false"):
		p.next()

		return &Type{Kind: TypeKindVerbatim, Text: tok.text}, true, nil

	case tok.kind == tokPunct && tok.text == "-" && p.peekAt(1).kind == tokNumber:
		p.next()
		num := p.next()

		return &Type{Kind: TypeKindVerbatim, Text: "-" + num.text}, true, nil

	case tok.kind == tokPunct && tok.text == "{":
		depth := 0

		for {
			cur := p.next()

			switch {
			case cur.kind == tokEOF:
				return nil, false, &ParseError{Input: p.src, Offset: tok.off, Msg: "unterminated const argument"}
			case cur.kind == tokPunct && cur.text == "{":
				depth++
			case cur.kind == tokPunct && cur.text == "}":
				depth--
			}

			if depth == 0 {
				return &Type{Kind: TypeKindVerbatim, Text: p.src[tok.off:cur.end]}, true, nil
			}
		}

	default:
		return nil, false, nil
	}
}

func (p *parser) parseBounds() ([]*Type, error) {
	var bounds []*Type

	for {
		b, err := p.parseBound()
		if err != nil {
			return nil, err
		}

		bounds = append(bounds, b)

		if !p.accept("+") {
			break
		}

		// Trailing "+" is allowed.
		if p.peek().kind == tokEOF {
			break
		}
	}

	return bounds, nil
}

func (p *parser) parseBound() (*Type, error) {
	if p.peek().kind == tokLifetime {
		return Lifetime(p.next().text), nil
	}

	relaxed := p.accept("?")

	if p.accept("(") {
		b, err := p.parsePath()
		if err != nil {
			return nil, err
		}

		if err := p.expect(")"); err != nil {
			return nil, err
		}

		b.Relaxed = relaxed

		return b, nil
	}

	if p.peek().kind != tokIdent && !p.is("::") {
		return nil, p.errorf("expected bound")
	}

	b, err := p.parsePath()
	if err != nil {
		return nil, err
	}

	b.Relaxed = relaxed

	return b, nil
}
