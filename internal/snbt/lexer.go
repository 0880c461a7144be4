// Package snbt implements the stringified-NBT text format: a lexer, a
// recursive-descent parser producing a structures.Tag, and a pretty-printer
// that can render either a compact single-line form or Minecraft's
// multi-line formatted form (including the near-square grid layout it uses
// for long numeric lists).
package snbt

import (
	"fmt"
	"strings"

	"github.com/scigolib/nbt/internal/utils"
)

// TokenKind classifies a lexed token.
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokLBrace
	TokRBrace
	TokLBracket
	TokRBracket
	TokColon
	TokComma
	TokSemicolon
	TokWord // a bare or quoted word: a key, a number, or a string value
)

// Token is one lexeme plus its source position, used both to drive parsing
// and to build error messages that point at the offending text.
type Token struct {
	Kind   TokenKind
	Lexeme string
	// Quoted is true if Lexeme came from a quoted string literal, which
	// matters to the parser: a quoted word is always a String tag, never a
	// number, even if it looks numeric (e.g. "5" quoted is the string "5").
	Quoted bool
	Offset int
	Line   int
	Column int
}

// Lexer is a lazy token stream over SNBT source text with lookahead,
// mirroring the source-position-carrying token triples the original Python
// tokenizer produced. The parser needs to look two tokens ahead to tell a
// typed-array prefix ("B;") from an ordinary bare word starting a list, so
// the lookahead buffer holds more than the usual single token.
type Lexer struct {
	src    string
	pos    int
	line   int
	column int
	queue  []Token
}

// NewLexer returns a Lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, column: 1}
}

func (l *Lexer) fill(n int) error {
	for len(l.queue) < n {
		tok, err := l.scan()
		if err != nil {
			return err
		}
		l.queue = append(l.queue, tok)
		if tok.Kind == TokEOF {
			break
		}
	}
	return nil
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	return l.PeekAt(0)
}

// PeekAt returns the token n positions ahead (0 is the same as Peek())
// without consuming anything.
func (l *Lexer) PeekAt(n int) (Token, error) {
	if err := l.fill(n + 1); err != nil {
		return Token{}, err
	}
	if n >= len(l.queue) {
		return l.queue[len(l.queue)-1], nil // EOF
	}
	return l.queue[n], nil
}

// Next consumes and returns the next token.
func (l *Lexer) Next() (Token, error) {
	if err := l.fill(1); err != nil {
		return Token{}, err
	}
	tok := l.queue[0]
	if len(l.queue) > 1 {
		l.queue = l.queue[1:]
	} else if tok.Kind != TokEOF {
		l.queue = l.queue[:0]
	}
	return tok, nil
}

func (l *Lexer) errAt(context string, cause error, line, column int) error {
	return utils.NewTextParseError(context, cause, line, column)
}

func (l *Lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return c
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			l.advance()
			continue
		}
		break
	}
}

func isBareChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '-', c == '.', c == '+':
		return true
	}
	return false
}

func (l *Lexer) scan() (Token, error) {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return Token{Kind: TokEOF, Offset: l.pos, Line: l.line, Column: l.column}, nil
	}

	startOffset, startLine, startCol := l.pos, l.line, l.column
	c := l.src[l.pos]

	switch c {
	case '{':
		l.advance()
		return Token{Kind: TokLBrace, Lexeme: "{", Offset: startOffset, Line: startLine, Column: startCol}, nil
	case '}':
		l.advance()
		return Token{Kind: TokRBrace, Lexeme: "}", Offset: startOffset, Line: startLine, Column: startCol}, nil
	case '[':
		l.advance()
		return Token{Kind: TokLBracket, Lexeme: "[", Offset: startOffset, Line: startLine, Column: startCol}, nil
	case ']':
		l.advance()
		return Token{Kind: TokRBracket, Lexeme: "]", Offset: startOffset, Line: startLine, Column: startCol}, nil
	case ':':
		l.advance()
		return Token{Kind: TokColon, Lexeme: ":", Offset: startOffset, Line: startLine, Column: startCol}, nil
	case ',':
		l.advance()
		return Token{Kind: TokComma, Lexeme: ",", Offset: startOffset, Line: startLine, Column: startCol}, nil
	case ';':
		l.advance()
		return Token{Kind: TokSemicolon, Lexeme: ";", Offset: startOffset, Line: startLine, Column: startCol}, nil
	case '"', '\'':
		return l.scanQuoted(c, startOffset, startLine, startCol)
	default:
		if !isBareChar(c) {
			return Token{}, l.errAt("lex token", fmt.Errorf("unexpected character %q", c), startLine, startCol)
		}
		return l.scanBare(startOffset, startLine, startCol), nil
	}
}

func (l *Lexer) scanBare(startOffset, startLine, startCol int) Token {
	var b strings.Builder
	for l.pos < len(l.src) && isBareChar(l.src[l.pos]) {
		b.WriteByte(l.advance())
	}
	return Token{Kind: TokWord, Lexeme: b.String(), Offset: startOffset, Line: startLine, Column: startCol}
}

func (l *Lexer) scanQuoted(quote byte, startOffset, startLine, startCol int) (Token, error) {
	l.advance() // opening quote
	var b strings.Builder
	for {
		if l.pos >= len(l.src) {
			return Token{}, l.errAt("lex quoted string", fmt.Errorf("unterminated string literal"), startLine, startCol)
		}
		c := l.src[l.pos]
		if c == quote {
			l.advance()
			break
		}
		if c == '\\' && l.pos+1 < len(l.src) {
			l.advance()
			esc := l.advance()
			switch esc {
			case '\\', '"', '\'':
				b.WriteByte(esc)
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte('\\')
				b.WriteByte(esc)
			}
			continue
		}
		b.WriteByte(l.advance())
	}
	return Token{Kind: TokWord, Lexeme: b.String(), Quoted: true, Offset: startOffset, Line: startLine, Column: startCol}, nil
}
