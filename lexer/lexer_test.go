package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wfl-lang/wfl/token"
)

func types(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestLexSimpleDeclaration(t *testing.T) {
	toks := Lex(`store x as 10`)
	require.Equal(t, []token.Type{token.STORE, token.IDENT, token.AS, token.NUMBER, token.EOF}, types(toks))
}

func TestLexLongestMatchComparisonPhrases(t *testing.T) {
	toks := Lex(`if x is greater than or equal to 5`)
	require.Equal(t, []token.Type{token.IF, token.IDENT, token.GREATER_EQ, token.NUMBER, token.EOF}, types(toks))

	toks2 := Lex(`if x is greater than 5`)
	require.Equal(t, []token.Type{token.IF, token.IDENT, token.GREATER, token.NUMBER, token.EOF}, types(toks2))
}

func TestLexForwardActionCallExample(t *testing.T) {
	toks := Lex(`define action first: call second end action`)
	require.Equal(t, []token.Type{
		token.DEFINE_ACTION, token.IDENT, token.COLON,
		token.CALL, token.IDENT,
		token.END_ACTION, token.EOF,
	}, types(toks))
}

func TestLexStringEscapes(t *testing.T) {
	toks := Lex(`display "line1\nline2\t\"q\""`)
	require.Equal(t, token.DISPLAY, toks[0].Type)
	require.Equal(t, token.STRING, toks[1].Type)
	require.Equal(t, "line1\nline2\t\"q\"", toks[1].Literal)
}

func TestLexPositionsTrackLines(t *testing.T) {
	toks := Lex("store x as 1\ndisplay x")
	require.Equal(t, 1, toks[0].Pos.Line)
	// "display" is the first token on line 2.
	var found bool
	for _, tok := range toks {
		if tok.Type == token.DISPLAY {
			require.Equal(t, 2, tok.Pos.Line)
			found = true
		}
	}
	require.True(t, found)
}

func TestLexIllegalCharacterDoesNotAbort(t *testing.T) {
	toks := Lex("store x as 10 @ display x")
	var sawIllegal bool
	for _, tok := range toks {
		if tok.Type == token.ILLEGAL {
			sawIllegal = true
		}
	}
	require.True(t, sawIllegal)
	require.Equal(t, token.EOF, toks[len(toks)-1].Type)
}

func TestLexComments(t *testing.T) {
	toks := Lex("store x as 10 // comment\n# another\ndisplay x")
	require.Equal(t, []token.Type{
		token.STORE, token.IDENT, token.AS, token.NUMBER,
		token.DISPLAY, token.IDENT, token.EOF,
	}, types(toks))
}
