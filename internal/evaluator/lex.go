package evaluator

import (
	"fmt"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNum
	tokenName
	tokenOp
	tokenOpen
	tokenClose
	tokenComma
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "end of input"
	case tokenNum:
		return "number"
	case tokenName:
		return "name"
	case tokenOp:
		return "operator"
	case tokenOpen:
		return "'('"
	case tokenClose:
		return "')'"
	case tokenComma:
		return "','"
	}
	return "token"
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) describe() string {
	switch t.kind {
	case tokenNum, tokenName, tokenOp:
		return fmt.Sprintf("%s %q", t.kind, t.text)
	}
	return t.kind.String()
}

// lexer splits normalized text into tokens. The grammar is ASCII; any other
// rune is a syntax error.
type lexer struct {
	src string
	pos int
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
	start := l.pos
	if l.pos >= len(l.src) {
		return token{kind: tokenEOF, pos: start}, nil
	}

	c := l.src[l.pos]
	switch {
	case isDigit(c) || c == '.':
		return l.number()
	case isNameStart(c):
		for l.pos < len(l.src) && isNamePart(l.src[l.pos]) {
			l.pos++
		}
		return token{kind: tokenName, text: l.src[start:l.pos], pos: start}, nil
	case c == '(':
		l.pos++
		return token{kind: tokenOpen, text: "(", pos: start}, nil
	case c == ')':
		l.pos++
		return token{kind: tokenClose, text: ")", pos: start}, nil
	case c == ',':
		l.pos++
		return token{kind: tokenComma, text: ",", pos: start}, nil
	case c == '*' || c == '/':
		// ** and // are single operators.
		l.pos++
		if l.pos < len(l.src) && l.src[l.pos] == c {
			l.pos++
		}
		return token{kind: tokenOp, text: l.src[start:l.pos], pos: start}, nil
	case c == '+' || c == '-' || c == '%':
		l.pos++
		return token{kind: tokenOp, text: string(c), pos: start}, nil
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return token{}, &SyntaxError{Pos: start, Msg: fmt.Sprintf("unexpected character %q", r)}
}

// number scans digits [. digits] [e [+-] digits] or . digits [exponent].
func (l *lexer) number() (token, error) {
	start := l.pos
	digits := l.digits()
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		digits += l.digits()
	}
	if digits == 0 {
		return token{}, &SyntaxError{Pos: start, Msg: "invalid number"}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		mark := l.pos
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		if l.digits() == 0 {
			// Not an exponent; leave the e for the next token.
			l.pos = mark
		}
	}
	return token{kind: tokenNum, text: l.src[start:l.pos], pos: start}, nil
}

func (l *lexer) digits() int {
	n := 0
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
		n++
	}
	return n
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isNameStart(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isNamePart(c byte) bool {
	return isNameStart(c) || isDigit(c)
}
