// Package syntax provides a tokenizer, parser and syntax tree for the
// small script grammar tidyscript lints: variable and function
// declarations, blocks, if/return statements and ordinary expressions.
package syntax

// Node is any element of the syntax tree.
type Node interface {
	Span() Span
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Program is the root node of a parsed source unit.
type Program struct {
	Stmts []Stmt
	span  Span
}

func (p *Program) Span() Span { return p.span }

// VarDecl is a const, let or var declaration.
type VarDecl struct {
	Keyword string // "const", "let" or "var"
	Name    *Ident
	Init    Expr // nil when no initializer
	span    Span
}

func (d *VarDecl) Span() Span { return d.span }
func (*VarDecl) stmtNode()    {}

// FuncDecl is a named function declaration.
type FuncDecl struct {
	Name   *Ident
	Params []*Ident
	Body   *BlockStmt
	span   Span
}

func (d *FuncDecl) Span() Span { return d.span }
func (*FuncDecl) stmtNode()    {}

// BlockStmt is a braced statement list.
type BlockStmt struct {
	Stmts []Stmt
	span  Span
}

func (s *BlockStmt) Span() Span { return s.span }
func (*BlockStmt) stmtNode()    {}

// IfStmt is an if statement with an optional else branch.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil when absent
	span Span
}

func (s *IfStmt) Span() Span { return s.span }
func (*IfStmt) stmtNode()    {}

// ReturnStmt is a return statement with an optional value.
type ReturnStmt struct {
	Value Expr // nil when absent
	span  Span
}

func (s *ReturnStmt) Span() Span { return s.span }
func (*ReturnStmt) stmtNode()    {}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	X    Expr
	span Span
}

func (s *ExprStmt) Span() Span { return s.span }
func (*ExprStmt) stmtNode()    {}

// Ident is an identifier reference or name.
type Ident struct {
	Name string
	span Span
}

func (e *Ident) Span() Span { return e.span }
func (*Ident) exprNode()    {}

// NumberLit is a numeric literal.
type NumberLit struct {
	Value float64
	Raw   string
	span  Span
}

func (e *NumberLit) Span() Span { return e.span }
func (*NumberLit) exprNode()    {}

// StringLit is a string literal. Value holds the unquoted text.
type StringLit struct {
	Value string
	span  Span
}

func (e *StringLit) Span() Span { return e.span }
func (*StringLit) exprNode()    {}

// BoolLit is a true or false literal.
type BoolLit struct {
	Value bool
	span  Span
}

func (e *BoolLit) Span() Span { return e.span }
func (*BoolLit) exprNode()    {}

// NullLit is a null literal.
type NullLit struct {
	span Span
}

func (e *NullLit) Span() Span { return e.span }
func (*NullLit) exprNode()    {}

// ArrayLit is an array literal.
type ArrayLit struct {
	Elems []Expr
	span  Span
}

func (e *ArrayLit) Span() Span { return e.span }
func (*ArrayLit) exprNode()    {}

// FuncLit is a function expression, optionally named.
type FuncLit struct {
	Name   *Ident // nil when anonymous
	Params []*Ident
	Body   *BlockStmt
	span   Span
}

func (e *FuncLit) Span() Span { return e.span }
func (*FuncLit) exprNode()    {}

// AssignExpr is an assignment or compound assignment.
type AssignExpr struct {
	Op     string // "=", "+=", "-=", "*=" or "/="
	Target Expr   // Ident, MemberExpr or IndexExpr
	Value  Expr
	span   Span
}

func (e *AssignExpr) Span() Span { return e.span }
func (*AssignExpr) exprNode()    {}

// BinaryExpr is a binary operation.
type BinaryExpr struct {
	Op   string
	X    Expr
	Y    Expr
	span Span
}

func (e *BinaryExpr) Span() Span { return e.span }
func (*BinaryExpr) exprNode()    {}

// UnaryExpr is a prefix operation.
type UnaryExpr struct {
	Op   string // "!" or "-"
	X    Expr
	span Span
}

func (e *UnaryExpr) Span() Span { return e.span }
func (*UnaryExpr) exprNode()    {}

// CallExpr is a function call.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	span   Span
}

func (e *CallExpr) Span() Span { return e.span }
func (*CallExpr) exprNode()    {}

// MemberExpr is a dotted property access.
type MemberExpr struct {
	Object   Expr
	Property *Ident
	span     Span
}

func (e *MemberExpr) Span() Span { return e.span }
func (*MemberExpr) exprNode()    {}

// IndexExpr is a bracketed element access.
type IndexExpr struct {
	Object Expr
	Index  Expr
	span   Span
}

func (e *IndexExpr) Span() Span { return e.span }
func (*IndexExpr) exprNode()    {}
