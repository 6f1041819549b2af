package syntax

import "fmt"

// scanner turns source bytes into tokens.
type scanner struct {
	src  []byte
	off  int
	line int
	col  int
}

// Scan tokenizes src and returns the ordered token sequence, terminated
// by an EOF token. It fails with a *Error on the first malformed token.
func Scan(src []byte) ([]Token, error) {
	s := &scanner{src: src, line: 1, col: 1}
	var toks []Token
	for {
		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks, nil
		}
	}
}

// peek returns the byte at offset off+n without advancing, or 0 at EOF.
func (s *scanner) peek(n int) byte {
	if s.off+n >= len(s.src) {
		return 0
	}
	return s.src[s.off+n]
}

// advance consumes one byte, tracking line and column.
func (s *scanner) advance() byte {
	b := s.src[s.off]
	s.off++
	if b == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return b
}

// skipTrivia consumes whitespace and comments.
func (s *scanner) skipTrivia() error {
	for s.off < len(s.src) {
		switch b := s.src[s.off]; {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			s.advance()
		case b == '/' && s.peek(1) == '/':
			for s.off < len(s.src) && s.src[s.off] != '\n' {
				s.advance()
			}
		case b == '/' && s.peek(1) == '*':
			line, col := s.line, s.col
			s.advance()
			s.advance()
			closed := false
			for s.off < len(s.src) {
				if s.src[s.off] == '*' && s.peek(1) == '/' {
					s.advance()
					s.advance()
					closed = true
					break
				}
				s.advance()
			}
			if !closed {
				return &Error{Line: line, Col: col, Msg: "unterminated block comment"}
			}
		default:
			return nil
		}
	}
	return nil
}

// next returns the next token.
func (s *scanner) next() (Token, error) {
	if err := s.skipTrivia(); err != nil {
		return Token{}, err
	}

	start, line, col := s.off, s.line, s.col
	if s.off >= len(s.src) {
		return s.tok(EOF, start, line, col), nil
	}

	b := s.advance()
	switch {
	case isIdentStart(b):
		for s.off < len(s.src) && isIdentPart(s.src[s.off]) {
			s.advance()
		}
		t := s.tok(IdentTok, start, line, col)
		if kw, ok := keywords[t.Lexeme]; ok {
			t.Kind = kw
		}
		return t, nil

	case isDigit(b):
		return s.scanNumber(start, line, col)

	case b == '\'' || b == '"':
		return s.scanString(b, start, line, col)
	}

	switch b {
	case '(':
		return s.tok(LParen, start, line, col), nil
	case ')':
		return s.tok(RParen, start, line, col), nil
	case '{':
		return s.tok(LBrace, start, line, col), nil
	case '}':
		return s.tok(RBrace, start, line, col), nil
	case '[':
		return s.tok(LBracket, start, line, col), nil
	case ']':
		return s.tok(RBracket, start, line, col), nil
	case ',':
		return s.tok(Comma, start, line, col), nil
	case ';':
		return s.tok(Semicolon, start, line, col), nil
	case '.':
		return s.tok(Dot, start, line, col), nil
	case '+':
		if s.match('=') {
			return s.tok(PlusAssign, start, line, col), nil
		}
		return s.tok(Plus, start, line, col), nil
	case '-':
		if s.match('=') {
			return s.tok(MinusAssign, start, line, col), nil
		}
		return s.tok(Minus, start, line, col), nil
	case '*':
		if s.match('=') {
			return s.tok(StarAssign, start, line, col), nil
		}
		return s.tok(Star, start, line, col), nil
	case '/':
		if s.match('=') {
			return s.tok(SlashAssign, start, line, col), nil
		}
		return s.tok(Slash, start, line, col), nil
	case '%':
		return s.tok(Percent, start, line, col), nil
	case '=':
		if s.match('=') {
			if s.match('=') {
				return s.tok(StrictEq, start, line, col), nil
			}
			return s.tok(Eq, start, line, col), nil
		}
		return s.tok(Assign, start, line, col), nil
	case '!':
		if s.match('=') {
			if s.match('=') {
				return s.tok(StrictNotEq, start, line, col), nil
			}
			return s.tok(NotEq, start, line, col), nil
		}
		return s.tok(Not, start, line, col), nil
	case '<':
		if s.match('=') {
			return s.tok(LessEq, start, line, col), nil
		}
		return s.tok(Less, start, line, col), nil
	case '>':
		if s.match('=') {
			return s.tok(GreaterEq, start, line, col), nil
		}
		return s.tok(Greater, start, line, col), nil
	}

	return Token{}, &Error{Line: line, Col: col, Msg: fmt.Sprintf("unexpected character %q", b)}
}

// scanNumber consumes the remainder of a numeric literal. The leading
// digit has already been consumed.
func (s *scanner) scanNumber(start, line, col int) (Token, error) {
	for s.off < len(s.src) && isDigit(s.src[s.off]) {
		s.advance()
	}
	if s.off < len(s.src) && s.src[s.off] == '.' && isDigit(s.peek(1)) {
		s.advance()
		for s.off < len(s.src) && isDigit(s.src[s.off]) {
			s.advance()
		}
	}
	if s.off < len(s.src) && isIdentStart(s.src[s.off]) {
		return Token{}, &Error{Line: s.line, Col: s.col, Msg: "malformed number"}
	}
	return s.tok(Number, start, line, col), nil
}

// scanString consumes the remainder of a string literal opened by quote.
func (s *scanner) scanString(quote byte, start, line, col int) (Token, error) {
	for s.off < len(s.src) {
		b := s.advance()
		if b == '\\' && s.off < len(s.src) {
			s.advance()
			continue
		}
		if b == quote {
			return s.tok(String, start, line, col), nil
		}
		if b == '\n' {
			break
		}
	}
	return Token{}, &Error{Line: line, Col: col, Msg: "unterminated string"}
}

// match consumes the next byte if it equals b.
func (s *scanner) match(b byte) bool {
	if s.off < len(s.src) && s.src[s.off] == b {
		s.advance()
		return true
	}
	return false
}

// tok builds a token covering [start, s.off).
func (s *scanner) tok(kind Kind, start, line, col int) Token {
	return Token{
		Kind:   kind,
		Lexeme: string(s.src[start:s.off]),
		Span:   Span{Start: start, End: s.off, Line: line, Col: col},
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
