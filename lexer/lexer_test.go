/*
File    : lumen/lexer/lexer_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package lexer

import (
	"strings"
	"testing"

	"github.com/akashmaji946/lumen/token"
	"github.com/stretchr/testify/require"
)

func allTokens(t *testing.T, src string) []token.Token {
	t.Helper()
	l := New(src)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks
}

func TestOperatorMaximalMunch(t *testing.T) {
	toks := allTokens(t, "+= - ** >>> >> << <= >= == != .. -> && ||")
	kinds := make([]token.Kind, 0, len(toks))
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	require.Equal(t, []token.Kind{
		token.PLUS_ASSIGN, token.MINUS, token.POWER, token.SHIFT_RA, token.SHIFT_R,
		token.SHIFT_L, token.LE, token.GE, token.EQ, token.NE, token.RANGE,
		token.ARROW, token.AND, token.OR, token.EOF,
	}, kinds)
}

func TestNumberLiterals(t *testing.T) {
	toks := allTokens(t, "42 3.14")
	require.Equal(t, token.INTEGER, toks[0].Kind)
	require.Equal(t, int64(42), toks[0].Literal)
	require.Equal(t, token.FLOATING, toks[1].Kind)
	require.Equal(t, 3.14, toks[1].Literal)
}

func TestKeywordsVsIdentifiers(t *testing.T) {
	toks := allTokens(t, "class Counter this super")
	require.Equal(t, token.CLASS, toks[0].Kind)
	require.Equal(t, token.IDENTIFIER, toks[1].Kind)
	require.Equal(t, token.THIS, toks[2].Kind)
	require.Equal(t, token.SUPER, toks[3].Kind)
}

func TestStringTemplateSplicing(t *testing.T) {
	toks := allTokens(t, `"x=${1 + 2}!"`)
	var kinds []token.Kind
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	require.Equal(t, []token.Kind{
		token.STR_START, token.STRING, token.INTEGER, token.PLUS, token.INTEGER,
		token.STRING, token.STR_END, token.EOF,
	}, kinds)
	require.Equal(t, "x=", toks[1].Literal)
	require.Equal(t, "!", toks[5].Literal)
}

func TestPlainStringNoTemplate(t *testing.T) {
	toks := allTokens(t, `"hello"`)
	require.Equal(t, token.STR_START, toks[0].Kind)
	require.Equal(t, token.STRING, toks[1].Kind)
	require.Equal(t, "hello", toks[1].Literal)
	require.Equal(t, token.STR_END, toks[2].Kind)
}

func TestUnterminatedStringReportsError(t *testing.T) {
	l := New(`"oops`)
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			break
		}
	}
	require.NotEmpty(t, l.Errors)
}

func TestTemplateOnlyStringHasNoEmptyTailToken(t *testing.T) {
	toks := allTokens(t, `"x=${1 + 2}"`)
	var kinds []token.Kind
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	require.Equal(t, []token.Kind{
		token.STR_START, token.STRING, token.INTEGER, token.PLUS, token.INTEGER,
		token.STR_END, token.EOF,
	}, kinds)
}

func TestEmptyStringYieldsOneEmptyStringToken(t *testing.T) {
	toks := allTokens(t, `""`)
	require.Equal(t, token.STR_START, toks[0].Kind)
	require.Equal(t, token.STRING, toks[1].Kind)
	require.Equal(t, "", toks[1].Literal)
	require.Equal(t, token.STR_END, toks[2].Kind)
}

// Scanning, joining the lexemes back together, and scanning again must
// reproduce the same lexeme sequence.
func TestScanRestringifyRoundTrip(t *testing.T) {
	src := `var a = 1 ; if ( a <= 2 ) { print ( a + 1.5 ) ; }`
	first := lexemes(t, src)
	second := lexemes(t, strings.Join(first, " "))
	require.Equal(t, first, second)
}

func lexemes(t *testing.T, src string) []string {
	t.Helper()
	var out []string
	for _, tk := range allTokens(t, src) {
		switch tk.Kind {
		case token.EOF, token.STR_START, token.STR_END:
			continue
		}
		out = append(out, tk.Lexeme)
	}
	return out
}

func TestLineCommentsAndBlockComments(t *testing.T) {
	toks := allTokens(t, "1 // a comment\n/* block\ncomment */ 2")
	require.Equal(t, token.INTEGER, toks[0].Kind)
	require.Equal(t, int64(1), toks[0].Literal)
	require.Equal(t, token.INTEGER, toks[1].Kind)
	require.Equal(t, int64(2), toks[1].Literal)
	require.Equal(t, 3, toks[1].Line)
}
