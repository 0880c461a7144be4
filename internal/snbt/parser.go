package snbt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scigolib/nbt/internal/structures"
	"github.com/scigolib/nbt/internal/utils"
)

// Parser consumes a token stream and builds a structures.Tag, implementing
// the list/array type-inference and typed-array-prefix rules of the SNBT
// grammar (B;/I;/L; arrays, and list element kind fixed by its first
// element).
type Parser struct {
	lex      *Lexer
	maxDepth int
	depth    int
}

// ParserOption configures a Parser built by NewParser.
type ParserOption func(*Parser)

// WithParserMaxDepth overrides utils.DefaultMaxDepth for nested
// List/Compound parsing.
func WithParserMaxDepth(depth int) ParserOption {
	return func(p *Parser) { p.maxDepth = depth }
}

// NewParser returns a Parser over src.
func NewParser(src string, opts ...ParserOption) *Parser {
	p := &Parser{lex: NewLexer(src), maxDepth: utils.DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads exactly one value from the source and confirms nothing but
// trailing whitespace follows it.
func (p *Parser) Parse() (structures.Tag, error) {
	tag, err := p.parseValue()
	if err != nil {
		return structures.Tag{}, err
	}
	tok, err := p.lex.Next()
	if err != nil {
		return structures.Tag{}, err
	}
	if tok.Kind != TokEOF {
		return structures.Tag{}, p.errAt("parse", fmt.Errorf("unexpected trailing text %q", tok.Lexeme), tok)
	}
	return tag, nil
}

// ParseRoot reads an optional "name:" prefix followed by exactly one value,
// the shape a root SNBT document takes (as opposed to a bare value passed
// to a command, which Parse handles). An input with no colon after its
// first word is a bare value with an empty root name.
func (p *Parser) ParseRoot() (string, structures.Tag, error) {
	first, err := p.lex.Peek()
	if err != nil {
		return "", structures.Tag{}, err
	}
	if first.Kind == TokWord {
		second, err := p.lex.PeekAt(1)
		if err != nil {
			return "", structures.Tag{}, err
		}
		if second.Kind == TokColon {
			p.lex.Next()
			p.lex.Next()
			tag, err := p.parseValue()
			if err != nil {
				return "", structures.Tag{}, err
			}
			tok, err := p.lex.Next()
			if err != nil {
				return "", structures.Tag{}, err
			}
			if tok.Kind != TokEOF {
				return "", structures.Tag{}, p.errAt("parse root", fmt.Errorf("unexpected trailing text %q", tok.Lexeme), tok)
			}
			return first.Lexeme, tag, nil
		}
	}
	tag, err := p.Parse()
	return "", tag, err
}

func (p *Parser) errAt(context string, cause error, tok Token) error {
	return utils.NewTextParseError(context, cause, tok.Line, tok.Column)
}

func (p *Parser) pushDepth(tok Token) error {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return p.errAt("push depth", fmt.Errorf("nesting exceeds configured maximum of %d", p.maxDepth), tok)
	}
	return nil
}

func (p *Parser) popDepth() {
	p.depth--
}

func (p *Parser) parseValue() (structures.Tag, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return structures.Tag{}, err
	}
	switch tok.Kind {
	case TokLBrace:
		return p.parseCompound(tok)
	case TokLBracket:
		return p.parseListOrArray(tok)
	case TokWord:
		if tok.Quoted {
			s, err := structures.NewString(tok.Lexeme)
			if err != nil {
				return structures.Tag{}, p.errAt("parse string", err, tok)
			}
			return s, nil
		}
		return p.parseBareWord(tok)
	default:
		return structures.Tag{}, p.errAt("parse value", fmt.Errorf("unexpected token %q", tok.Lexeme), tok)
	}
}

// parseBareWord interprets an unquoted word: a numeric literal with an
// optional b/s/l/f/d suffix, the literals true/false as Byte 1/0 (a common
// SNBT convenience the original accepts as plain unquoted words), or a bare
// string.
func (p *Parser) parseBareWord(tok Token) (structures.Tag, error) {
	if tok.Lexeme == "true" {
		return structures.NewByte(1), nil
	}
	if tok.Lexeme == "false" {
		return structures.NewByte(0), nil
	}
	if tag, ok, err := parseNumeric(tok.Lexeme); ok {
		if err != nil {
			return structures.Tag{}, p.errAt("parse number", err, tok)
		}
		return tag, nil
	}
	s, err := structures.NewString(tok.Lexeme)
	if err != nil {
		return structures.Tag{}, p.errAt("parse string", err, tok)
	}
	return s, nil
}

// parseNumeric recognizes the canonical suffix grammar: an optional leading
// '-', digits, an optional '.' fraction or exponent, and an optional trailing
// b/B/s/S/l/L/f/F/d/D suffix. ok is false when the lexeme plainly isn't a
// number candidate (used as a bare string instead); err is non-nil when it
// looks numeric but fails to parse (e.g. "300b", out of Byte range).
func parseNumeric(lexeme string) (structures.Tag, bool, error) {
	if lexeme == "" {
		return structures.Tag{}, false, nil
	}
	body := lexeme
	var suffix byte
	last := body[len(body)-1]
	switch last {
	case 'b', 'B', 's', 'S', 'l', 'L', 'f', 'F', 'd', 'D':
		suffix = lowerByte(last)
		body = body[:len(body)-1]
	}
	if body == "" || !looksNumeric(body) {
		return structures.Tag{}, false, nil
	}

	switch suffix {
	case 'b':
		n, err := strconv.ParseInt(body, 10, 8)
		if err != nil {
			return structures.Tag{}, true, err
		}
		return structures.NewByte(int8(n)), true, nil
	case 's':
		n, err := strconv.ParseInt(body, 10, 16)
		if err != nil {
			return structures.Tag{}, true, err
		}
		return structures.NewShort(int16(n)), true, nil
	case 'l':
		n, err := strconv.ParseInt(body, 10, 64)
		if err != nil {
			return structures.Tag{}, true, err
		}
		return structures.NewLong(n), true, nil
	case 'f':
		f, err := strconv.ParseFloat(body, 32)
		if err != nil {
			return structures.Tag{}, true, err
		}
		return structures.NewFloat(float32(f)), true, nil
	case 'd':
		f, err := strconv.ParseFloat(body, 64)
		if err != nil {
			return structures.Tag{}, true, err
		}
		return structures.NewDouble(f), true, nil
	default:
		if strings.ContainsAny(body, ".eE") {
			f, err := strconv.ParseFloat(body, 64)
			if err != nil {
				return structures.Tag{}, true, err
			}
			return structures.NewDouble(f), true, nil
		}
		n, err := strconv.ParseInt(body, 10, 32)
		if err != nil {
			return structures.Tag{}, true, err
		}
		return structures.NewInt(int32(n)), true, nil
	}
}

func lowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}

func looksNumeric(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	if i >= len(s) {
		return false
	}
	seenDigit := false
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-':
			// allowed inside a numeric body; strconv validates properly
		default:
			return false
		}
	}
	return seenDigit
}

func (p *Parser) parseCompound(open Token) (structures.Tag, error) {
	if err := p.pushDepth(open); err != nil {
		return structures.Tag{}, err
	}
	defer p.popDepth()

	c := structures.NewCompound()
	tok, err := p.lex.Peek()
	if err != nil {
		return structures.Tag{}, err
	}
	if tok.Kind == TokRBrace {
		p.lex.Next()
		return c, nil
	}
	for {
		keyTok, err := p.lex.Next()
		if err != nil {
			return structures.Tag{}, err
		}
		if keyTok.Kind != TokWord {
			return structures.Tag{}, p.errAt("parse compound key", fmt.Errorf("expected a key, got %q", keyTok.Lexeme), keyTok)
		}
		colon, err := p.lex.Next()
		if err != nil {
			return structures.Tag{}, err
		}
		if colon.Kind != TokColon {
			return structures.Tag{}, p.errAt("parse compound", fmt.Errorf("expected ':' after key %q", keyTok.Lexeme), colon)
		}
		val, err := p.parseValue()
		if err != nil {
			return structures.Tag{}, err
		}
		if err := c.CompoundPutNew(keyTok.Lexeme, val); err != nil {
			return structures.Tag{}, p.errAt("parse compound", err, keyTok)
		}
		sep, err := p.lex.Next()
		if err != nil {
			return structures.Tag{}, err
		}
		if sep.Kind == TokRBrace {
			return c, nil
		}
		if sep.Kind != TokComma {
			return structures.Tag{}, p.errAt("parse compound", fmt.Errorf("expected ',' or '}', got %q", sep.Lexeme), sep)
		}
	}
}

// parseListOrArray handles the '[' that has already been consumed: it may
// open a typed array ("B;", "I;", "L;"), an empty list "[]", or a general
// list whose element kind is fixed by its first element.
func (p *Parser) parseListOrArray(open Token) (structures.Tag, error) {
	if err := p.pushDepth(open); err != nil {
		return structures.Tag{}, err
	}
	defer p.popDepth()

	tok, err := p.lex.Peek()
	if err != nil {
		return structures.Tag{}, err
	}
	if tok.Kind == TokRBracket {
		p.lex.Next()
		return structures.NewList(structures.KindEnd), nil
	}
	if tok.Kind == TokWord && !tok.Quoted && len(tok.Lexeme) == 1 {
		switch tok.Lexeme {
		case "B", "I", "L":
			after, err := p.lex.PeekAt(1)
			if err != nil {
				return structures.Tag{}, err
			}
			if after.Kind == TokSemicolon {
				p.lex.Next()
				p.lex.Next()
				return p.parseTypedArray(tok.Lexeme)
			}
		}
	}
	return p.parseGenericList()
}

func (p *Parser) parseTypedArray(marker string) (structures.Tag, error) {
	switch marker {
	case "B":
		return p.parseByteArray()
	case "I":
		return p.parseIntArray()
	case "L":
		return p.parseLongArray()
	default:
		return structures.Tag{}, fmt.Errorf("unknown array marker %q", marker)
	}
}

func (p *Parser) parseByteArray() (structures.Tag, error) {
	var vals []int8
	tok, err := p.lex.Peek()
	if err != nil {
		return structures.Tag{}, err
	}
	if tok.Kind == TokRBracket {
		p.lex.Next()
		return structures.NewByteArray(vals), nil
	}
	for {
		elemTok, err := p.lex.Next()
		if err != nil {
			return structures.Tag{}, err
		}
		n, err := parseArrayElement(elemTok, 8)
		if err != nil {
			return structures.Tag{}, p.errAt("parse byte array element", err, elemTok)
		}
		vals = append(vals, int8(n))
		sep, err := p.lex.Next()
		if err != nil {
			return structures.Tag{}, err
		}
		if sep.Kind == TokRBracket {
			return structures.NewByteArray(vals), nil
		}
		if sep.Kind != TokComma {
			return structures.Tag{}, p.errAt("parse byte array", fmt.Errorf("expected ',' or ']', got %q", sep.Lexeme), sep)
		}
	}
}

func (p *Parser) parseIntArray() (structures.Tag, error) {
	var vals []int32
	tok, err := p.lex.Peek()
	if err != nil {
		return structures.Tag{}, err
	}
	if tok.Kind == TokRBracket {
		p.lex.Next()
		return structures.NewIntArray(vals), nil
	}
	for {
		elemTok, err := p.lex.Next()
		if err != nil {
			return structures.Tag{}, err
		}
		n, err := parseArrayElement(elemTok, 32)
		if err != nil {
			return structures.Tag{}, p.errAt("parse int array element", err, elemTok)
		}
		vals = append(vals, int32(n))
		sep, err := p.lex.Next()
		if err != nil {
			return structures.Tag{}, err
		}
		if sep.Kind == TokRBracket {
			return structures.NewIntArray(vals), nil
		}
		if sep.Kind != TokComma {
			return structures.Tag{}, p.errAt("parse int array", fmt.Errorf("expected ',' or ']', got %q", sep.Lexeme), sep)
		}
	}
}

func (p *Parser) parseLongArray() (structures.Tag, error) {
	var vals []int64
	tok, err := p.lex.Peek()
	if err != nil {
		return structures.Tag{}, err
	}
	if tok.Kind == TokRBracket {
		p.lex.Next()
		return structures.NewLongArray(vals), nil
	}
	for {
		elemTok, err := p.lex.Next()
		if err != nil {
			return structures.Tag{}, err
		}
		n, err := parseArrayElement(elemTok, 64)
		if err != nil {
			return structures.Tag{}, p.errAt("parse long array element", err, elemTok)
		}
		vals = append(vals, n)
		sep, err := p.lex.Next()
		if err != nil {
			return structures.Tag{}, err
		}
		if sep.Kind == TokRBracket {
			return structures.NewLongArray(vals), nil
		}
		if sep.Kind != TokComma {
			return structures.Tag{}, p.errAt("parse long array", fmt.Errorf("expected ',' or ']', got %q", sep.Lexeme), sep)
		}
	}
}

// parseArrayElement accepts a bare integer literal, stripping a same-kind
// suffix if present (e.g. "5B" inside a B; array), for bitSize bits. A
// suffix of any other kind is rejected.
func parseArrayElement(tok Token, bitSize int) (int64, error) {
	if tok.Kind != TokWord || tok.Quoted {
		return 0, fmt.Errorf("expected a number, got %q", tok.Lexeme)
	}
	body := tok.Lexeme
	last := lowerByte(body[len(body)-1])
	if (bitSize == 8 && last == 'b') || (bitSize == 64 && last == 'l') {
		body = body[:len(body)-1]
	}
	return strconv.ParseInt(body, 10, bitSize)
}

func (p *Parser) parseGenericList() (structures.Tag, error) {
	first, err := p.parseValue()
	if err != nil {
		return structures.Tag{}, err
	}
	list := structures.NewList(first.Kind())
	if err := list.ListAppend(first); err != nil {
		return structures.Tag{}, err
	}
	for {
		sep, err := p.lex.Next()
		if err != nil {
			return structures.Tag{}, err
		}
		if sep.Kind == TokRBracket {
			return list, nil
		}
		if sep.Kind != TokComma {
			return structures.Tag{}, p.errAt("parse list", fmt.Errorf("expected ',' or ']', got %q", sep.Lexeme), sep)
		}
		elemTok, err := p.lex.Peek()
		if err != nil {
			return structures.Tag{}, err
		}
		elem, err := p.parseValue()
		if err != nil {
			return structures.Tag{}, err
		}
		if err := list.ListAppend(elem); err != nil {
			return structures.Tag{}, p.errAt("parse list", err, elemTok)
		}
	}
}
