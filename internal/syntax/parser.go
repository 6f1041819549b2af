package syntax

import (
	"fmt"
	"strconv"
)

// parser is a recursive-descent parser over a scanned token sequence.
type parser struct {
	toks []Token
	pos  int
}

// Parse scans and parses src, returning the program tree or a *Error
// at the first malformed construct.
func Parse(src []byte) (*Program, error) {
	toks, err := Scan(src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks)
}

// ParseTokens parses an already-scanned token sequence. The sequence
// must be EOF-terminated, as produced by Scan.
func ParseTokens(toks []Token) (*Program, error) {
	p := &parser{toks: toks}
	var stmts []Stmt
	for p.peek().Kind != EOF {
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}

	span := Span{Line: 1, Col: 1}
	if len(stmts) > 0 {
		span = joinSpans(stmts[0].Span(), stmts[len(stmts)-1].Span())
	}
	return &Program{Stmts: stmts, span: span}, nil
}

func (p *parser) peek() Token { return p.toks[p.pos] }

func (p *parser) advance() Token {
	t := p.toks[p.pos]
	if t.Kind != EOF {
		p.pos++
	}
	return t
}

// match consumes the next token if it has the given kind.
func (p *parser) match(kind Kind) (Token, bool) {
	if p.peek().Kind == kind {
		return p.advance(), true
	}
	return Token{}, false
}

// expect consumes a token of the given kind or fails.
func (p *parser) expect(kind Kind, what string) (Token, error) {
	if t, ok := p.match(kind); ok {
		return t, nil
	}
	return Token{}, p.errorf("expected %s", what)
}

// errorf builds a *Error at the current token.
func (p *parser) errorf(format string, args ...any) error {
	t := p.peek()
	msg := fmt.Sprintf(format, args...)
	if t.Kind == EOF {
		return &Error{Line: t.Span.Line, Col: t.Span.Col, Msg: msg + ", found end of input"}
	}
	return &Error{Line: t.Span.Line, Col: t.Span.Col, Msg: fmt.Sprintf("%s, found %q", msg, t.Lexeme)}
}

// terminator consumes an optional statement-ending semicolon.
func (p *parser) terminator() {
	p.match(Semicolon)
}

func (p *parser) statement() (Stmt, error) {
	switch p.peek().Kind {
	case KwConst, KwLet, KwVar:
		return p.varDecl()
	case KwFunction:
		return p.funcDecl()
	case KwReturn:
		return p.returnStmt()
	case KwIf:
		return p.ifStmt()
	case LBrace:
		return p.block()
	default:
		return p.exprStmt()
	}
}

func (p *parser) varDecl() (Stmt, error) {
	kw := p.advance()
	name, err := p.ident("identifier after " + kw.Lexeme)
	if err != nil {
		return nil, err
	}

	var init Expr
	end := name.Span()
	if _, ok := p.match(Assign); ok {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
		end = init.Span()
	} else if kw.Kind == KwConst {
		return nil, &Error{Line: kw.Span.Line, Col: kw.Span.Col, Msg: "const declaration requires an initializer"}
	}
	p.terminator()

	return &VarDecl{
		Keyword: kw.Lexeme,
		Name:    name,
		Init:    init,
		span:    joinSpans(kw.Span, end),
	}, nil
}

func (p *parser) funcDecl() (Stmt, error) {
	kw := p.advance()
	name, err := p.ident("function name")
	if err != nil {
		return nil, err
	}
	params, err := p.paramList()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &FuncDecl{
		Name:   name,
		Params: params,
		Body:   body.(*BlockStmt),
		span:   joinSpans(kw.Span, body.Span()),
	}, nil
}

func (p *parser) paramList() ([]*Ident, error) {
	if _, err := p.expect(LParen, `"("`); err != nil {
		return nil, err
	}
	var params []*Ident
	for p.peek().Kind != RParen {
		if len(params) > 0 {
			if _, err := p.expect(Comma, `","`); err != nil {
				return nil, err
			}
		}
		name, err := p.ident("parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, name)
	}
	p.advance() // ")"
	return params, nil
}

func (p *parser) returnStmt() (Stmt, error) {
	kw := p.advance()
	end := kw.Span

	var value Expr
	switch p.peek().Kind {
	case Semicolon, RBrace, EOF:
	default:
		v, err := p.expression()
		if err != nil {
			return nil, err
		}
		value = v
		end = v.Span()
	}
	p.terminator()
	return &ReturnStmt{Value: value, span: joinSpans(kw.Span, end)}, nil
}

func (p *parser) ifStmt() (Stmt, error) {
	kw := p.advance()
	if _, err := p.expect(LParen, `"(" after "if"`); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RParen, `")" after condition`); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}

	var elseStmt Stmt
	end := then.Span()
	if _, ok := p.match(KwElse); ok {
		elseStmt, err = p.statement()
		if err != nil {
			return nil, err
		}
		end = elseStmt.Span()
	}
	return &IfStmt{Cond: cond, Then: then, Else: elseStmt, span: joinSpans(kw.Span, end)}, nil
}

func (p *parser) block() (Stmt, error) {
	open, err := p.expect(LBrace, `"{"`)
	if err != nil {
		return nil, err
	}
	var stmts []Stmt
	for p.peek().Kind != RBrace {
		if p.peek().Kind == EOF {
			return nil, p.errorf(`expected "}"`)
		}
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	closing := p.advance()
	return &BlockStmt{Stmts: stmts, span: joinSpans(open.Span, closing.Span)}, nil
}

func (p *parser) exprStmt() (Stmt, error) {
	x, err := p.expression()
	if err != nil {
		return nil, err
	}
	p.terminator()
	return &ExprStmt{X: x, span: x.Span()}, nil
}

func (p *parser) expression() (Expr, error) {
	return p.assignment()
}

// assignment parses "target op value" right-associatively. The target
// must be an identifier, member or index expression.
func (p *parser) assignment() (Expr, error) {
	left, err := p.equality()
	if err != nil {
		return nil, err
	}

	switch p.peek().Kind {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign:
	default:
		return left, nil
	}

	op := p.advance()
	switch left.(type) {
	case *Ident, *MemberExpr, *IndexExpr:
	default:
		return nil, &Error{Line: op.Span.Line, Col: op.Span.Col, Msg: "invalid assignment target"}
	}

	value, err := p.assignment()
	if err != nil {
		return nil, err
	}
	return &AssignExpr{
		Op:     op.Lexeme,
		Target: left,
		Value:  value,
		span:   joinSpans(left.Span(), value.Span()),
	}, nil
}

func (p *parser) equality() (Expr, error) {
	return p.binary(p.relational, Eq, NotEq, StrictEq, StrictNotEq)
}

func (p *parser) relational() (Expr, error) {
	return p.binary(p.additive, Less, Greater, LessEq, GreaterEq)
}

func (p *parser) additive() (Expr, error) {
	return p.binary(p.multiplicative, Plus, Minus)
}

func (p *parser) multiplicative() (Expr, error) {
	return p.binary(p.unary, Star, Slash, Percent)
}

// binary parses a left-associative chain of the given operator kinds.
func (p *parser) binary(next func() (Expr, error), ops ...Kind) (Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		matched := false
		for _, op := range ops {
			if p.peek().Kind == op {
				matched = true
				break
			}
		}
		if !matched {
			return left, nil
		}
		op := p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Op:   op.Lexeme,
			X:    left,
			Y:    right,
			span: joinSpans(left.Span(), right.Span()),
		}
	}
}

func (p *parser) unary() (Expr, error) {
	switch p.peek().Kind {
	case Not, Minus:
		op := p.advance()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op.Lexeme, X: x, span: joinSpans(op.Span, x.Span())}, nil
	}
	return p.postfix()
}

// postfix parses calls, member access and index access.
func (p *parser) postfix() (Expr, error) {
	x, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Kind {
		case LParen:
			p.advance()
			var args []Expr
			for p.peek().Kind != RParen {
				if len(args) > 0 {
					if _, err := p.expect(Comma, `","`); err != nil {
						return nil, err
					}
				}
				a, err := p.expression()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
			}
			closing := p.advance()
			x = &CallExpr{Callee: x, Args: args, span: joinSpans(x.Span(), closing.Span)}

		case Dot:
			p.advance()
			prop, err := p.ident("property name")
			if err != nil {
				return nil, err
			}
			x = &MemberExpr{Object: x, Property: prop, span: joinSpans(x.Span(), prop.Span())}

		case LBracket:
			p.advance()
			idx, err := p.expression()
			if err != nil {
				return nil, err
			}
			closing, err := p.expect(RBracket, `"]"`)
			if err != nil {
				return nil, err
			}
			x = &IndexExpr{Object: x, Index: idx, span: joinSpans(x.Span(), closing.Span)}

		default:
			return x, nil
		}
	}
}

func (p *parser) primary() (Expr, error) {
	switch t := p.peek(); t.Kind {
	case Number:
		p.advance()
		v, err := strconv.ParseFloat(t.Lexeme, 64)
		if err != nil {
			return nil, &Error{Line: t.Span.Line, Col: t.Span.Col, Msg: "malformed number"}
		}
		return &NumberLit{Value: v, Raw: t.Lexeme, span: t.Span}, nil

	case String:
		p.advance()
		return &StringLit{Value: t.Lexeme[1 : len(t.Lexeme)-1], span: t.Span}, nil

	case KwTrue, KwFalse:
		p.advance()
		return &BoolLit{Value: t.Kind == KwTrue, span: t.Span}, nil

	case KwNull:
		p.advance()
		return &NullLit{span: t.Span}, nil

	case IdentTok:
		p.advance()
		return &Ident{Name: t.Lexeme, span: t.Span}, nil

	case KwFunction:
		return p.funcLit()

	case LBracket:
		return p.arrayLit()

	case LParen:
		p.advance()
		x, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RParen, `")"`); err != nil {
			return nil, err
		}
		return x, nil
	}

	return nil, p.errorf("expected expression")
}

func (p *parser) funcLit() (Expr, error) {
	kw := p.advance()

	var name *Ident
	if p.peek().Kind == IdentTok {
		n, err := p.ident("function name")
		if err != nil {
			return nil, err
		}
		name = n
	}
	params, err := p.paramList()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &FuncLit{
		Name:   name,
		Params: params,
		Body:   body.(*BlockStmt),
		span:   joinSpans(kw.Span, body.Span()),
	}, nil
}

func (p *parser) arrayLit() (Expr, error) {
	open := p.advance()
	var elems []Expr
	for p.peek().Kind != RBracket {
		if len(elems) > 0 {
			if _, err := p.expect(Comma, `","`); err != nil {
				return nil, err
			}
		}
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	closing := p.advance()
	return &ArrayLit{Elems: elems, span: joinSpans(open.Span, closing.Span)}, nil
}

func (p *parser) ident(what string) (*Ident, error) {
	t, err := p.expect(IdentTok, what)
	if err != nil {
		return nil, err
	}
	return &Ident{Name: t.Lexeme, span: t.Span}, nil
}

// joinSpans covers from the start of a to the end of b.
func joinSpans(a, b Span) Span {
	return Span{Start: a.Start, End: b.End, Line: a.Line, Col: a.Col}
}
