package cps

func (e *ULam) String() string {
	return "(lambda (" + e.Param.String() + " " + e.ContParam.String() + ") " + CallString(e.Body) + ")"
}
func (e *UVar) String() string     { return e.Var.String() }
func (e *UBuiltin) String() string { return e.Name }
func (e *ULit) String() string     { return e.Value.String() }

func (e *KLam) String() string     { return "(cont (" + e.Param.String() + ") " + CallString(e.Body) + ")" }
func (e *KVar) String() string     { return e.Var.String() }
func (e *KBuiltin) String() string { return e.Name }
func (e *KLit) String() string     { return e.Value.String() }

func (e *UCall) String() string {
	return "(ucall " + UString(e.Func) + " " + UString(e.Arg) + " " + KString(e.Cont) + ")"
}
func (e *KCall) String() string { return "(kcall " + KString(e.Cont) + " " + UString(e.Arg) + ")" }
func (e *If) String() string {
	return "(if " + UString(e.Cond) + " " + CallString(e.Then) + " " + CallString(e.Else) + ")"
}
func (e *SetThen) String() string {
	return "(set-then! " + e.Var.String() + " " + UString(e.Value) + " " + CallString(e.Then) + ")"
}

func UString(e UExpr) string {
	if e == nil {
		return "<nil>"
	}
	return e.(interface{ String() string }).String()
}

func KString(e KExpr) string {
	if e == nil {
		return "<nil>"
	}
	return e.(interface{ String() string }).String()
}

func CallString(e CCall) string {
	if e == nil {
		return "<nil>"
	}
	return e.(interface{ String() string }).String()
}
