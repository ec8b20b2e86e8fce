package flat

func (e *LamOne) String() string { return "(cont (" + e.Param.String() + ") " + String(e.Body) + ")" }
func (e *LamTwo) String() string {
	return "(lambda (" + e.Param.String() + " " + e.ContParam.String() + ") " + String(e.Body) + ")"
}
func (e *CallOne) String() string { return "(call1 " + String(e.Func) + " " + String(e.Arg) + ")" }
func (e *CallTwo) String() string {
	return "(call2 " + String(e.Func) + " " + String(e.Arg) + " " + String(e.Cont) + ")"
}
func (e *Var) String() string          { return e.Var.String() }
func (e *Lit) String() string          { return e.Value.String() }
func (e *BuiltinIdent) String() string { return e.Name }
func (e *SetThen) String() string {
	return "(set-then! " + e.Var.String() + " " + String(e.Value) + " " + String(e.Then) + ")"
}
func (e *If) String() string {
	return "(if " + String(e.Cond) + " " + String(e.Then) + " " + String(e.Else) + ")"
}

func String(e FExpr) string {
	if e == nil {
		return "<nil>"
	}
	return e.(interface{ String() string }).String()
}
