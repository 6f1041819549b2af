package syntax

import "fmt"

// Span locates a region of source text. Start and End are byte offsets
// (End exclusive); Line and Col are the 1-based position of Start.
type Span struct {
	Start int
	End   int
	Line  int
	Col   int
}

// Kind identifies a token type.
type Kind int

// Token kinds.
const (
	EOF Kind = iota

	IdentTok
	Number
	String

	KwConst
	KwLet
	KwVar
	KwFunction
	KwReturn
	KwIf
	KwElse
	KwTrue
	KwFalse
	KwNull

	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semicolon
	Dot

	Assign
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign

	Eq
	NotEq
	StrictEq
	StrictNotEq
	Less
	Greater
	LessEq
	GreaterEq

	Plus
	Minus
	Star
	Slash
	Percent
	Not
)

// keywords maps keyword lexemes to their token kind.
var keywords = map[string]Kind{
	"const":    KwConst,
	"let":      KwLet,
	"var":      KwVar,
	"function": KwFunction,
	"return":   KwReturn,
	"if":       KwIf,
	"else":     KwElse,
	"true":     KwTrue,
	"false":    KwFalse,
	"null":     KwNull,
}

// Token is a single lexical token.
type Token struct {
	Kind   Kind
	Lexeme string
	Span   Span
}

// Error reports a lexical or parse failure at a source position.
type Error struct {
	Line int
	Col  int
	Msg  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}
