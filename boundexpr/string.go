package boundexpr

func (e *Var) String() string          { return e.Var.String() }
func (e *Lit) String() string          { return e.Value.String() }
func (e *BuiltinIdent) String() string { return e.Name }

func (e *If) String() string {
	return "(if " + String(e.Cond) + " " + String(e.Then) + " " + String(e.Else) + ")"
}

func (e *Set) String() string {
	return "(set! " + e.Var.String() + " " + String(e.Value) + ")"
}

func (e *Lam) String() string {
	return "(lambda (" + e.Param.String() + ") " + String(e.Body) + ")"
}

func (e *App) String() string {
	return "(" + String(e.Func) + " " + String(e.Arg) + ")"
}

func String(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	return e.(interface{ String() string }).String()
}
