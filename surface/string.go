package surface

import "strings"

func (e *Var) String() string { return e.Name }
func (e *Lit) String() string { return e.Value.String() }

func (e *If) String() string {
	return "(if " + String(e.Cond) + " " + String(e.Then) + " " + String(e.Else) + ")"
}

func (e *Set) String() string {
	return "(set! " + e.Name + " " + String(e.Value) + ")"
}

func (e *Let) String() string {
	var b strings.Builder
	b.WriteString("(let (")
	for i, bind := range e.Bindings {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("(" + bind.Name + " " + String(bind.Value) + ")")
	}
	b.WriteString(")")
	b.WriteString(e.Body.String())
	b.WriteString(")")
	return b.String()
}

func (e *Lam) String() string {
	return "(lambda (" + strings.Join(e.Params, " ") + ")" + e.Body.String() + ")"
}

func (e *App) String() string {
	var b strings.Builder
	b.WriteString("(" + String(e.Func))
	for _, a := range e.Args {
		b.WriteString(" " + String(a))
	}
	b.WriteString(")")
	return b.String()
}

func (b BExprBody) String() string {
	var sb strings.Builder
	for _, item := range b {
		sb.WriteByte(' ')
		switch it := item.(type) {
		case *Def:
			sb.WriteString("(define " + it.Name + " " + String(it.Value) + ")")
		case *ExprItem:
			sb.WriteString(String(it.Value))
		}
	}
	return sb.String()
}

// String renders any BExpr node; a free function rather than relying on
// fmt.Stringer dispatch so nil interface values print as "<nil>" instead
// of panicking.
func String(e BExpr) string {
	if e == nil {
		return "<nil>"
	}
	if s, ok := e.(interface{ String() string }); ok {
		return s.String()
	}
	return "<?>"
}
