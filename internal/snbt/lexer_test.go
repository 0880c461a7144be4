package snbt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLexerPunctuationAndWords(t *testing.T) {
	lex := NewLexer(`{a:1,b:[1,2]}`)

	kinds := []TokenKind{
		TokLBrace, TokWord, TokColon, TokWord, TokComma,
		TokWord, TokColon, TokLBracket, TokWord, TokComma, TokWord, TokRBracket, TokRBrace, TokEOF,
	}
	for i, want := range kinds {
		tok, err := lex.Next()
		require.NoError(t, err, "token %d", i)
		require.Equal(t, want, tok.Kind, "token %d lexeme %q", i, tok.Lexeme)
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	lex := NewLexer(`abc def`)

	first, err := lex.Peek()
	require.NoError(t, err)
	require.Equal(t, "abc", first.Lexeme)

	again, err := lex.Peek()
	require.NoError(t, err)
	require.Equal(t, "abc", again.Lexeme)

	consumed, err := lex.Next()
	require.NoError(t, err)
	require.Equal(t, "abc", consumed.Lexeme)

	next, err := lex.Next()
	require.NoError(t, err)
	require.Equal(t, "def", next.Lexeme)
}

func TestLexerPeekAtTwoTokensAhead(t *testing.T) {
	lex := NewLexer(`B ; 1`)

	tok1, err := lex.PeekAt(1)
	require.NoError(t, err)
	require.Equal(t, TokSemicolon, tok1.Kind)

	// PeekAt must not have consumed anything.
	first, err := lex.Next()
	require.NoError(t, err)
	require.Equal(t, "B", first.Lexeme)
}

func TestLexerQuotedStringEscapes(t *testing.T) {
	lex := NewLexer(`"a\"b\\c"`)
	tok, err := lex.Next()
	require.NoError(t, err)
	require.True(t, tok.Quoted)
	require.Equal(t, `a"b\c`, tok.Lexeme)
}

func TestLexerUnterminatedStringIsAnError(t *testing.T) {
	lex := NewLexer(`"unterminated`)
	_, err := lex.Next()
	require.Error(t, err)
}

func TestLexerRejectsUnexpectedCharacter(t *testing.T) {
	lex := NewLexer(`#`)
	_, err := lex.Next()
	require.Error(t, err)
}
