package syntax

// scope is one level of lexical scoping. A scope is "inside a function"
// when it, or any scope enclosing it, is a function body.
type scope struct {
	outer      *scope
	names      map[string]bool
	inFunction bool
}

func newScope(outer *scope, functionBody bool) *scope {
	in := functionBody
	if outer != nil && outer.inFunction {
		in = true
	}
	return &scope{outer: outer, names: map[string]bool{}, inFunction: in}
}

func (s *scope) declare(name string) {
	s.names[name] = true
}

// lookup returns the scope declaring name, or nil when unresolved.
func (s *scope) lookup(name string) *scope {
	for sc := s; sc != nil; sc = sc.outer {
		if sc.names[name] {
			return sc
		}
	}
	return nil
}

// GlobalAssignments returns, in pre-order, every assignment whose
// identifier target resolves to a declaration outside all enclosing
// function scopes — a module-level binding, or no declaration at all
// (an implicit global). Assignments to member and index expressions
// are not considered.
func GlobalAssignments(prog *Program) []*AssignExpr {
	var out []*AssignExpr
	sc := newScope(nil, false)
	hoist(prog.Stmts, sc)
	for _, s := range prog.Stmts {
		walkScoped(s, sc, &out)
	}
	return out
}

// hoist pre-declares the names bound by the direct statements of a
// scope body, so references earlier in the body still resolve.
func hoist(stmts []Stmt, sc *scope) {
	for _, s := range stmts {
		switch d := s.(type) {
		case *VarDecl:
			sc.declare(d.Name.Name)
		case *FuncDecl:
			sc.declare(d.Name.Name)
		}
	}
}

func walkScoped(n Node, sc *scope, out *[]*AssignExpr) {
	switch v := n.(type) {
	case nil:
		return

	case *VarDecl:
		walkScoped(v.Init, sc, out)
		sc.declare(v.Name.Name)

	case *FuncDecl:
		sc.declare(v.Name.Name)
		body := newScope(sc, true)
		for _, p := range v.Params {
			body.declare(p.Name)
		}
		hoist(v.Body.Stmts, body)
		for _, s := range v.Body.Stmts {
			walkScoped(s, body, out)
		}

	case *FuncLit:
		body := newScope(sc, true)
		if v.Name != nil {
			body.declare(v.Name.Name)
		}
		for _, p := range v.Params {
			body.declare(p.Name)
		}
		hoist(v.Body.Stmts, body)
		for _, s := range v.Body.Stmts {
			walkScoped(s, body, out)
		}

	case *BlockStmt:
		inner := newScope(sc, false)
		hoist(v.Stmts, inner)
		for _, s := range v.Stmts {
			walkScoped(s, inner, out)
		}

	case *IfStmt:
		walkScoped(v.Cond, sc, out)
		walkScoped(v.Then, sc, out)
		walkScoped(v.Else, sc, out)

	case *ReturnStmt:
		walkScoped(v.Value, sc, out)

	case *ExprStmt:
		walkScoped(v.X, sc, out)

	case *AssignExpr:
		if target, ok := v.Target.(*Ident); ok {
			decl := sc.lookup(target.Name)
			if decl == nil || !decl.inFunction {
				*out = append(*out, v)
			}
		} else {
			walkScoped(v.Target, sc, out)
		}
		walkScoped(v.Value, sc, out)

	case *BinaryExpr:
		walkScoped(v.X, sc, out)
		walkScoped(v.Y, sc, out)

	case *UnaryExpr:
		walkScoped(v.X, sc, out)

	case *CallExpr:
		walkScoped(v.Callee, sc, out)
		for _, a := range v.Args {
			walkScoped(a, sc, out)
		}

	case *MemberExpr:
		walkScoped(v.Object, sc, out)

	case *IndexExpr:
		walkScoped(v.Object, sc, out)
		walkScoped(v.Index, sc, out)

	case *ArrayLit:
		for _, e := range v.Elems {
			walkScoped(e, sc, out)
		}
	}
}
