package lifted

import "fmt"

func (e *Lifted) String() string      { return fmt.Sprintf("#<lambda %d>", e.ID) }
func (e *CallOne) String() string     { return "(call1 " + String(e.Func) + " " + String(e.Arg) + ")" }
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

func String(e LExpr) string {
	if e == nil {
		return "<nil>"
	}
	return e.(interface{ String() string }).String()
}
