/*
File    : lumen/lexer/lexer.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package lexer turns Lumen source text into a stream of token.Token
// values. Scanning is a single left-to-right pass with one-character
// lookahead (two for the "STR_START"..."STR_END" handshake).
package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akashmaji946/lumen/token"
)

// Lexer scans one source string into tokens on demand.
type Lexer struct {
	src     string
	pos     int
	line    int
	column  int
	current byte

	// pending holds tokens produced ahead of the caller's request: one
	// string literal can expand into STR_START, STRING/expr tokens,
	// STR_END; NextToken drains this queue before scanning further.
	pending []token.Token

	// Errors accumulates lex-time diagnostics; scanning continues
	// best-effort after each one, per the three-tier error design.
	Errors []string
}

// New creates a Lexer positioned at the start of src.
func New(src string) *Lexer {
	l := &Lexer{src: src, line: 1, column: 0}
	l.advance()
	return l
}

func (l *Lexer) advance() {
	if l.pos >= len(l.src) {
		l.current = 0
		l.pos++
		return
	}
	l.current = l.src[l.pos]
	l.pos++
	l.column++
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) errorf(format string, args ...interface{}) {
	l.Errors = append(l.Errors, fmt.Sprintf("Line [%d]: %s", l.line, fmt.Sprintf(format, args...)))
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
func isAlphaNumeric(b byte) bool { return isAlpha(b) || isDigit(b) }

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch l.current {
		case ' ', '\t', '\r':
			l.advance()
		case '\n':
			l.line++
			l.column = 0
			l.advance()
		case '/':
			if l.peek() == '/' {
				for l.current != '\n' && l.current != 0 {
					l.advance()
				}
			} else if l.peek() == '*' {
				l.advance()
				l.advance()
				for !(l.current == '*' && l.peek() == '/') && l.current != 0 {
					if l.current == '\n' {
						l.line++
						l.column = 0
					}
					l.advance()
				}
				l.advance()
				l.advance()
			} else {
				return
			}
		default:
			return
		}
	}
}

// NextToken returns the next token in the stream, draining any pending
// tokens queued up by string-template splicing first.
func (l *Lexer) NextToken() token.Token {
	if len(l.pending) > 0 {
		t := l.pending[0]
		l.pending = l.pending[1:]
		return t
	}

	l.skipWhitespaceAndComments()
	line, col := l.line, l.column

	if l.current == 0 {
		return token.NewAt(token.EOF, "", line, col)
	}

	switch {
	case l.current == '"':
		return l.readStringLiteral(line, col)
	case isDigit(l.current):
		return l.readNumber(line, col)
	case isAlpha(l.current):
		return l.readIdentifier(line, col)
	}

	c := l.current
	l.advance()
	mk := func(k token.Kind, lex string) token.Token { return token.NewAt(k, lex, line, col) }

	switch c {
	case '(':
		return mk(token.LPAREN, "(")
	case ')':
		return mk(token.RPAREN, ")")
	case '{':
		return mk(token.LBRACE, "{")
	case '}':
		return mk(token.RBRACE, "}")
	case '[':
		return mk(token.LBRACKET, "[")
	case ']':
		return mk(token.RBRACKET, "]")
	case ',':
		return mk(token.COMMA, ",")
	case ':':
		return mk(token.COLON, ":")
	case ';':
		return mk(token.SEMI, ";")
	case '~':
		return mk(token.BIT_NOT, "~")
	case '.':
		if l.current == '.' {
			l.advance()
			return mk(token.RANGE, "..")
		}
		return mk(token.DOT, ".")
	case '+':
		if l.current == '=' {
			l.advance()
			return mk(token.PLUS_ASSIGN, "+=")
		}
		return mk(token.PLUS, "+")
	case '-':
		if l.current == '=' {
			l.advance()
			return mk(token.MINUS_ASSIGN, "-=")
		}
		if l.current == '>' {
			l.advance()
			return mk(token.ARROW, "->")
		}
		return mk(token.MINUS, "-")
	case '*':
		if l.current == '*' {
			l.advance()
			return mk(token.POWER, "**")
		}
		if l.current == '=' {
			l.advance()
			return mk(token.STAR_ASSIGN, "*=")
		}
		return mk(token.STAR, "*")
	case '/':
		if l.current == '=' {
			l.advance()
			return mk(token.SLASH_ASSIGN, "/=")
		}
		return mk(token.SLASH, "/")
	case '%':
		if l.current == '=' {
			l.advance()
			return mk(token.PCT_ASSIGN, "%=")
		}
		return mk(token.PCT, "%")
	case '=':
		if l.current == '=' {
			l.advance()
			return mk(token.EQ, "==")
		}
		return mk(token.ASSIGN, "=")
	case '!':
		if l.current == '=' {
			l.advance()
			return mk(token.NE, "!=")
		}
		return mk(token.NOT, "!")
	case '<':
		if l.current == '=' {
			l.advance()
			return mk(token.LE, "<=")
		}
		if l.current == '<' {
			l.advance()
			return mk(token.SHIFT_L, "<<")
		}
		return mk(token.LT, "<")
	case '>':
		if l.current == '=' {
			l.advance()
			return mk(token.GE, ">=")
		}
		if l.current == '>' {
			l.advance()
			if l.current == '>' {
				l.advance()
				return mk(token.SHIFT_RA, ">>>")
			}
			return mk(token.SHIFT_R, ">>")
		}
		return mk(token.GT, ">")
	case '&':
		if l.current == '&' {
			l.advance()
			return mk(token.AND, "&&")
		}
		return mk(token.BIT_AND, "&")
	case '|':
		if l.current == '|' {
			l.advance()
			return mk(token.OR, "||")
		}
		return mk(token.BIT_OR, "|")
	case '^':
		return mk(token.BIT_XOR, "^")
	}

	l.errorf("unexpected character '%c'", c)
	return mk(token.INVALID, string(c))
}

func (l *Lexer) readNumber(line, col int) token.Token {
	start := l.pos - 1
	for isDigit(l.current) {
		l.advance()
	}
	isFloat := false
	if l.current == '.' && isDigit(l.peek()) {
		isFloat = true
		l.advance()
		for isDigit(l.current) {
			l.advance()
		}
	}
	lexeme := l.src[start : l.pos-1]
	if isFloat {
		v, _ := strconv.ParseFloat(lexeme, 64)
		t := token.NewAt(token.FLOATING, lexeme, line, col)
		t.Literal = v
		return t
	}
	v, _ := strconv.ParseInt(lexeme, 10, 64)
	t := token.NewAt(token.INTEGER, lexeme, line, col)
	t.Literal = v
	return t
}

func (l *Lexer) readIdentifier(line, col int) token.Token {
	start := l.pos - 1
	for isAlphaNumeric(l.current) {
		l.advance()
	}
	lexeme := l.src[start : l.pos-1]
	return token.NewAt(token.Lookup(lexeme), lexeme, line, col)
}

// readStringLiteral consumes a full "..." literal, splicing in any
// ${expr} templates it contains as recursively-lexed inner token
// streams. It always returns the STR_START token and queues the rest
// (zero or more STRING/inner-expr tokens, then STR_END) in l.pending.
func (l *Lexer) readStringLiteral(line, col int) token.Token {
	l.advance() // consume opening quote
	startTok := token.NewAt(token.STR_START, "\"", line, col)

	var buf strings.Builder
	emitted := false
	flushLiteral := func() {
		if buf.Len() == 0 {
			return
		}
		l.pending = append(l.pending, token.Token{
			Kind: token.STRING, Lexeme: buf.String(), Literal: buf.String(),
			Line: l.line, Column: l.column,
		})
		buf.Reset()
		emitted = true
	}
	// endLiteral closes the template run: an empty literal ("") still
	// yields one empty STRING token so the parser always sees at least
	// one part between STR_START and STR_END.
	endLiteral := func() {
		if !emitted && buf.Len() == 0 {
			l.pending = append(l.pending, token.Token{
				Kind: token.STRING, Lexeme: "", Literal: "",
				Line: l.line, Column: l.column,
			})
			return
		}
		flushLiteral()
	}

	for {
		switch l.current {
		case 0:
			l.errorf("unterminated string")
			endLiteral()
			l.pending = append(l.pending, token.NewAt(token.STR_END, "\"", l.line, l.column))
			return startTok
		case '"':
			l.advance()
			endLiteral()
			l.pending = append(l.pending, token.NewAt(token.STR_END, "\"", l.line, l.column))
			return startTok
		case '\\':
			nxt := l.peek()
			switch nxt {
			case 'n':
				buf.WriteByte('\n')
			case 't':
				buf.WriteByte('\t')
			case 'r':
				buf.WriteByte('\r')
			case '"':
				buf.WriteByte('"')
			case '\\':
				buf.WriteByte('\\')
			case '$':
				buf.WriteByte('$')
			default:
				buf.WriteByte(nxt)
			}
			l.advance()
			l.advance()
		case '$':
			if l.peek() == '{' {
				flushLiteral()
				l.advance() // consume '$'
				l.advance() // consume '{'
				l.spliceTemplate()
				emitted = true
				continue
			}
			buf.WriteByte('$')
			l.advance()
		case '\n':
			l.errorf("unterminated string")
			endLiteral()
			l.pending = append(l.pending, token.NewAt(token.STR_END, "\"", l.line, l.column))
			return startTok
		default:
			buf.WriteByte(l.current)
			l.advance()
		}
	}
}

// spliceTemplate consumes the inner text of a ${...} template, counting
// brace depth so a nested "{" inside the expression does not end the
// template early, then recursively lexes that text and appends its
// tokens (minus its own ENDMARKER) to pending.
func (l *Lexer) spliceTemplate() {
	start := l.pos - 1
	depth := 1
	for depth > 0 {
		switch l.current {
		case 0:
			l.errorf("unterminated template")
			return
		case '"':
			l.errorf("stray '\"' inside string template")
			return
		case '{':
			depth++
			l.advance()
		case '}':
			depth--
			if depth == 0 {
				continue
			}
			l.advance()
		default:
			if l.current == '\n' {
				l.line++
				l.column = 0
			}
			l.advance()
		}
	}
	inner := l.src[start : l.pos-1]
	l.advance() // consume the closing '}'

	if strings.Contains(inner, "${") {
		l.errorf("nested '${' is not allowed inside a string template")
	}

	sub := New(inner)
	sub.line = l.line
	for {
		t := sub.NextToken()
		if t.Kind == token.EOF {
			break
		}
		l.pending = append(l.pending, t)
	}
	l.Errors = append(l.Errors, sub.Errors...)
}
