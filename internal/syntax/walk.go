package syntax

// Inspect traverses the tree rooted at n in pre-order, calling f for
// each node. If f returns false the node's children are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range children(n) {
		Inspect(c, f)
	}
}

// children returns the direct child nodes of n in source order.
func children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		// Typed nils show up when optional fields are absent.
		switch v := c.(type) {
		case nil:
		case *Ident:
			if v != nil {
				out = append(out, v)
			}
		case *BlockStmt:
			if v != nil {
				out = append(out, v)
			}
		default:
			out = append(out, c)
		}
	}
	addExpr := func(e Expr) {
		if e != nil {
			out = append(out, e)
		}
	}
	addStmt := func(s Stmt) {
		if s != nil {
			out = append(out, s)
		}
	}

	switch v := n.(type) {
	case *Program:
		for _, s := range v.Stmts {
			addStmt(s)
		}
	case *VarDecl:
		add(v.Name)
		addExpr(v.Init)
	case *FuncDecl:
		add(v.Name)
		for _, p := range v.Params {
			add(p)
		}
		add(v.Body)
	case *BlockStmt:
		for _, s := range v.Stmts {
			addStmt(s)
		}
	case *IfStmt:
		addExpr(v.Cond)
		addStmt(v.Then)
		addStmt(v.Else)
	case *ReturnStmt:
		addExpr(v.Value)
	case *ExprStmt:
		addExpr(v.X)
	case *ArrayLit:
		for _, e := range v.Elems {
			addExpr(e)
		}
	case *FuncLit:
		add(v.Name)
		for _, p := range v.Params {
			add(p)
		}
		add(v.Body)
	case *AssignExpr:
		addExpr(v.Target)
		addExpr(v.Value)
	case *BinaryExpr:
		addExpr(v.X)
		addExpr(v.Y)
	case *UnaryExpr:
		addExpr(v.X)
	case *CallExpr:
		addExpr(v.Callee)
		for _, a := range v.Args {
			addExpr(a)
		}
	case *MemberExpr:
		addExpr(v.Object)
		add(v.Property)
	case *IndexExpr:
		addExpr(v.Object)
		addExpr(v.Index)
	}
	return out
}
