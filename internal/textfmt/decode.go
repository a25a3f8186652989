package textfmt

import (
	"fmt"
	"io"
	"strconv"

	"struct-layout/internal/layout"
)

// Unmarshal parses layout text into a table. The returned table has an
// empty Root since the format does not record it.
func Unmarshal(data []byte) (*layout.Table, error) {
	tokens, err := newLexer(string(data)).tokenize()
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	return p.parseFile()
}

// Decode reads all of r and parses it as layout text.
func Decode(r io.Reader) (*layout.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	return Unmarshal(data)
}

// signatures lists the argument kinds of a constructor: 'i' integer,
// 's' string, 't' type expression.
var signatures = map[string]string{
	"Basic":   "is",
	"Void":    "",
	"Pointer": "it",
	"Array":   "iit",
	"Struct":  "is",
	"Union":   "is",
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	tok := p.tokens[p.pos]
	if tok.typ != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(typ tokenType) (token, error) {
	tok := p.advance()
	if tok.typ != typ {
		return tok, errorAt(tok.pos, "expected %s, found %s", typ, tok)
	}
	return tok, nil
}

// skipComma consumes an optional comma and reports whether the list goes
// on, i.e. whether the next token is not the closing one.
func (p *parser) skipComma(closing tokenType) (bool, error) {
	if p.peek().typ == tokenComma {
		p.advance()
		return p.peek().typ != closing, nil
	}
	if tok := p.peek(); tok.typ != closing {
		return false, errorAt(tok.pos, "expected ',' or %s, found %s", closing, tok)
	}
	return false, nil
}

func (p *parser) parseFile() (*layout.Table, error) {
	t := layout.NewTable("")

	for p.peek().typ != tokenEOF {
		tok := p.advance()
		if tok.typ != tokenIdent && tok.typ != tokenString {
			return nil, errorAt(tok.pos, "expected binding name, found %s", tok)
		}
		if t.Has(tok.value) {
			return nil, errorAt(tok.pos, "duplicate binding %q", tok.value)
		}

		if _, err := p.expect(tokenEq); err != nil {
			return nil, err
		}

		d, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		t.Set(tok.value, d)
	}

	return t, nil
}

// parseDeclaration parses { "field": (offset, type), ... }.
func (p *parser) parseDeclaration() (*layout.Declaration, error) {
	if _, err := p.expect(tokenLBrace); err != nil {
		return nil, err
	}

	d, _ := layout.NewDeclaration()
	more := p.peek().typ != tokenRBrace
	for more {
		key, err := p.expect(tokenString)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokenColon); err != nil {
			return nil, err
		}

		f, err := p.parseEntry()
		if err != nil {
			return nil, err
		}
		f.Name = key.value

		if _, dup := d.Get(f.Name); dup {
			return nil, errorAt(key.pos, "duplicate field %q", f.Name)
		}
		if err := d.Add(f); err != nil {
			return nil, errorAt(key.pos, "%v", err)
		}

		if more, err = p.skipComma(tokenRBrace); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(tokenRBrace); err != nil {
		return nil, err
	}
	return d, nil
}

// parseEntry parses (offset, type) with an optional trailing comma.
func (p *parser) parseEntry() (layout.Field, error) {
	var f layout.Field

	if _, err := p.expect(tokenLParen); err != nil {
		return f, err
	}

	offset, err := p.parseInt()
	if err != nil {
		return f, err
	}
	if _, err := p.expect(tokenComma); err != nil {
		return f, err
	}

	typ, err := p.parseNode()
	if err != nil {
		return f, err
	}
	if p.peek().typ == tokenComma {
		p.advance()
	}

	if _, err := p.expect(tokenRParen); err != nil {
		return f, err
	}

	f.Offset = offset
	f.Type = typ
	return f, nil
}

func (p *parser) parseInt() (int64, error) {
	tok, err := p.expect(tokenInt)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(tok.value, 10, 64)
	if err != nil {
		return 0, errorAt(tok.pos, "integer %s out of range", tok.value)
	}
	return v, nil
}

// argument is one parsed constructor argument.
type argument struct {
	pos  Position
	kind byte
	num  int64
	str  string
	node layout.Node
}

// parseNode parses a constructor call such as Pointer(64, Void()).
func (p *parser) parseNode() (layout.Node, error) {
	name, err := p.expect(tokenIdent)
	if err != nil {
		return nil, err
	}
	sig, ok := signatures[name.value]
	if !ok {
		return nil, errorAt(name.pos, "unknown constructor %q", name.value)
	}

	if _, err := p.expect(tokenLParen); err != nil {
		return nil, err
	}

	var args []argument
	more := p.peek().typ != tokenRParen
	for more {
		arg, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if more, err = p.skipComma(tokenRParen); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(tokenRParen); err != nil {
		return nil, err
	}

	if len(args) != len(sig) {
		return nil, errorAt(name.pos, "%s takes %d arguments, got %d", name.value, len(sig), len(args))
	}
	for i, arg := range args {
		if arg.kind != sig[i] {
			return nil, errorAt(arg.pos, "argument %d of %s must be %s", i+1, name.value, argumentKind(sig[i]))
		}
	}

	switch name.value {
	case "Basic":
		return layout.Basic{Bits: args[0].num, Name: args[1].str}, nil
	case "Pointer":
		return layout.Pointer{Bits: args[0].num, Pointee: args[1].node}, nil
	case "Array":
		return layout.Array{Bits: args[0].num, Count: args[1].num, Elem: args[2].node}, nil
	case "Struct":
		return layout.Struct{Bits: args[0].num, Name: args[1].str}, nil
	case "Union":
		return layout.Union{Bits: args[0].num, Name: args[1].str}, nil
	default:
		return layout.Void{}, nil
	}
}

func (p *parser) parseArgument() (argument, error) {
	tok := p.peek()
	arg := argument{pos: tok.pos}

	switch tok.typ {
	case tokenInt:
		v, err := p.parseInt()
		if err != nil {
			return arg, err
		}
		arg.kind, arg.num = 'i', v
	case tokenString:
		p.advance()
		arg.kind, arg.str = 's', tok.value
	case tokenIdent:
		n, err := p.parseNode()
		if err != nil {
			return arg, err
		}
		arg.kind, arg.node = 't', n
	default:
		return arg, errorAt(tok.pos, "expected constructor argument, found %s", tok)
	}

	return arg, nil
}

func argumentKind(k byte) string {
	switch k {
	case 'i':
		return "an integer"
	case 's':
		return "a string"
	default:
		return "a type"
	}
}
