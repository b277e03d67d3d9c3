package evaluator

import (
	"errors"
	"fmt"
	"strconv"
)

// node is an evaluable expression tree.
type node interface {
	eval() (float64, error)
}

type numberNode float64

func (n numberNode) eval() (float64, error) { return float64(n), nil }

type constNode struct {
	name string
	val  float64
}

func (n *constNode) eval() (float64, error) { return n.val, nil }

type negNode struct {
	x node
}

func (n *negNode) eval() (float64, error) {
	x, err := n.x.eval()
	if err != nil {
		return 0, err
	}
	return -x, nil
}

type binaryNode struct {
	op   string
	x, y node
}

func (n *binaryNode) eval() (float64, error) {
	x, err := n.x.eval()
	if err != nil {
		return 0, err
	}
	y, err := n.y.eval()
	if err != nil {
		return 0, err
	}
	return applyBinary(n.op, x, y)
}

type callNode struct {
	fn   *Func
	args []node
}

func (n *callNode) eval() (float64, error) {
	args := make([]float64, len(n.args))
	for i, a := range n.args {
		v, err := a.eval()
		if err != nil {
			return 0, err
		}
		args[i] = v
	}
	return n.fn.call(args)
}

// parser is a recursive descent parser over the grammar
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/" | "//" | "%") unary }
//	unary   = ("+" | "-") unary | power
//	power   = primary [ "**" unary ]
//	primary = number | name | name "(" [ args ] ")" | "(" expr ")"
//
// Names are resolved against ns as they are read, but a bad name only fails
// the parse once the whole input is known to be well formed: syntax errors
// win, then unknown identifiers, then misuse such as calling a constant.
type parser struct {
	lex *lexer
	tok token
	ns  *Namespace

	unknown error
	misuse  error
}

// reject notes a name problem and returns a stand-in node so parsing can
// continue. The stand-in is never evaluated.
func (p *parser) reject(err error) node {
	var unknown *UnknownIdentifierError
	switch {
	case errors.As(err, &unknown):
		if p.unknown == nil {
			p.unknown = err
		}
	case p.misuse == nil:
		p.misuse = err
	}
	return numberNode(0)
}

func parse(src string, ns *Namespace) (node, error) {
	p := &parser{lex: &lexer{src: src}, ns: ns}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind == tokenEOF {
		return nil, &SyntaxError{Pos: p.tok.pos, Msg: "empty expression"}
	}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokenEOF {
		return nil, p.unexpected()
	}
	if p.unknown != nil {
		return nil, p.unknown
	}
	if p.misuse != nil {
		return nil, p.misuse
	}
	return n, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) unexpected() error {
	return &SyntaxError{Pos: p.tok.pos, Msg: "unexpected " + p.tok.describe()}
}

func (p *parser) isOp(ops ...string) bool {
	if p.tok.kind != tokenOp {
		return false
	}
	for _, op := range ops {
		if p.tok.text == op {
			return true
		}
	}
	return false
}

func (p *parser) expr() (node, error) {
	x, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.isOp("+", "-") {
		op := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		y, err := p.term()
		if err != nil {
			return nil, err
		}
		x = &binaryNode{op: op, x: x, y: y}
	}
	return x, nil
}

func (p *parser) term() (node, error) {
	x, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.isOp("*", "/", "//", "%") {
		op := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		y, err := p.unary()
		if err != nil {
			return nil, err
		}
		x = &binaryNode{op: op, x: x, y: y}
	}
	return x, nil
}

func (p *parser) unary() (node, error) {
	if p.isOp("+", "-") {
		neg := p.tok.text == "-"
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		if neg {
			return &negNode{x: x}, nil
		}
		return x, nil
	}
	return p.power()
}

func (p *parser) power() (node, error) {
	x, err := p.primary()
	if err != nil {
		return nil, err
	}
	if !p.isOp("**") {
		return x, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	// The exponent may carry its own sign: 2**-1.
	y, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &binaryNode{op: "**", x: x, y: y}, nil
}

func (p *parser) primary() (node, error) {
	tok := p.tok
	switch tok.kind {
	case tokenNum:
		// Out of range literals become ±Inf or 0, like a float literal would.
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf("invalid number %q", tok.text)}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return numberNode(v), nil

	case tokenName:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokenOpen {
			return p.call(tok)
		}
		if v, ok := p.ns.Const(tok.text); ok {
			return &constNode{name: tok.text, val: v}, nil
		}
		if _, ok := p.ns.Func(tok.text); ok {
			return p.reject(evalErrorf("%s is a function; call it as %s(...)", tok.text, tok.text)), nil
		}
		return p.reject(&UnknownIdentifierError{Name: tok.text, Pos: tok.pos}), nil

	case tokenOpen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokenClose {
			if p.tok.kind == tokenEOF {
				return nil, &SyntaxError{Pos: tok.pos, Msg: "'(' was never closed"}
			}
			return nil, p.unexpected()
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return x, nil
	}
	return nil, p.unexpected()
}

// call parses an argument list after name; p.tok is the open paren.
func (p *parser) call(name token) (node, error) {
	fn, ok := p.ns.Func(name.text)
	open := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}

	var args []node
	if p.tok.kind != tokenClose {
		for {
			a, err := p.expr()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.tok.kind != tokenComma {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if p.tok.kind != tokenClose {
		if p.tok.kind == tokenEOF {
			return nil, &SyntaxError{Pos: open.pos, Msg: "'(' was never closed"}
		}
		return nil, p.unexpected()
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if !ok {
		if _, isConst := p.ns.Const(name.text); isConst {
			return p.reject(evalErrorf("%s is a constant and cannot be called", name.text)), nil
		}
		return p.reject(&UnknownIdentifierError{Name: name.text, Pos: name.pos}), nil
	}
	if err := fn.checkArity(len(args)); err != nil {
		return p.reject(err), nil
	}
	return &callNode{fn: fn, args: args}, nil
}
