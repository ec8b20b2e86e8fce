package cemit

import (
	"fmt"
	"strconv"
	"strings"
)

// writer renders a C-AST tree to text. It mirrors msl.Writer's shape: an
// output strings.Builder plus an indentation counter, with one render
// method per node kind instead of one per IR variant.
type writer struct {
	out    strings.Builder
	indent int
}

func newWriter() *writer {
	return &writer{}
}

func (w *writer) String() string { return w.out.String() }

func (w *writer) writeIndent() {
	w.out.WriteString(strings.Repeat("    ", w.indent))
}

func (w *writer) writeLine(format string, args ...interface{}) {
	w.writeIndent()
	fmt.Fprintf(&w.out, format, args...)
	w.out.WriteByte('\n')
}

// writeDecl renders one top-level declaration.
func (w *writer) writeDecl(d CDecl) {
	switch n := d.(type) {
	case *CStructDecl:
		w.writeLine("typedef struct {")
		w.indent++
		for _, m := range n.Members {
			w.writeLine("%s;", typeWithName(m.Type, m.Name))
		}
		w.indent--
		w.writeLine("} %s;", n.Name)

	case *CFunProto:
		attr := ""
		if n.NoReturn {
			attr = " __attribute__((noreturn))"
		}
		w.writeLine("static %s%s;", funcSignature(n.Name, n.Ret, n.Args), attr)

	case *CFun:
		params := make([]CParam, len(n.Args))
		copy(params, n.Args)
		w.writeLine("static %s {", funcSignatureNamed(n.Name, n.Ret, params))
		w.indent++
		for _, s := range n.Body {
			w.writeStmt(s)
		}
		w.indent--
		w.writeLine("}")

	case *CVar:
		if n.Init != nil {
			w.writeLine("%s = %s;", typeWithName(n.Type, n.Name), exprString(n.Init))
		} else {
			w.writeLine("%s;", typeWithName(n.Type, n.Name))
		}

	default:
		w.writeLine("/* unknown decl %T */", d)
	}
}

func funcSignature(name string, ret CType, args []CType) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = typeWithName(a, "")
	}
	return typeWithName(ret, name+"("+strings.Join(parts, ", ")+")")
}

func funcSignatureNamed(name string, ret CType, args []CParam) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = typeWithName(a.Type, a.Name)
	}
	return typeWithName(ret, name+"("+strings.Join(parts, ", ")+")")
}

// typeWithName renders a C type using the inside-out declarator rule: a
// pointer wraps its inner name in a leading '*', so CPtr{CStruct{"foo"}}
// named "bar" renders as "struct foo *bar".
func typeWithName(t CType, name string) string {
	gen := name
	cur := t
	for {
		switch n := cur.(type) {
		case *CPtr:
			gen = "*" + gen
			cur = n.To
			continue
		case *CStruct:
			return joinTypeName("struct "+n.Name, gen)
		case *COther:
			return joinTypeName(n.Name, gen)
		case CVoid:
			return joinTypeName("void", gen)
		default:
			return joinTypeName("/* ? */", gen)
		}
	}
}

func joinTypeName(typ, name string) string {
	if name == "" {
		return typ
	}
	return typ + " " + name
}

func (w *writer) writeStmt(s CStmt) {
	switch n := s.(type) {
	case *CIf:
		w.writeLine("if (%s) {", exprString(n.Cond))
		w.indent++
		for _, s := range n.Then {
			w.writeStmt(s)
		}
		w.indent--
		w.writeLine("} else {")
		w.indent++
		for _, s := range n.Else {
			w.writeStmt(s)
		}
		w.indent--
		w.writeLine("}")

	case *CDeclStmt:
		w.writeDecl(n.Decl)

	case *CExprStmt:
		w.writeLine("%s;", exprString(n.Expr))

	default:
		w.writeLine("/* unknown stmt %T */", s)
	}
}

// exprString renders an expression inline; C expressions never span
// statements in this emitter, so a plain string builder suffices (no
// indentation state is needed mid-expression).
func exprString(e CExpr) string {
	switch n := e.(type) {
	case CIdent:
		return string(n)
	case CLitStr:
		return strconv.Quote(string(n))
	case CLitInt:
		return strconv.FormatInt(int64(n), 10)
	case *CBinOp:
		return "(" + exprString(n.Left) + ")" + n.Op + "(" + exprString(n.Right) + ")"
	case *CFuncCall:
		return exprString(n.Func) + "(" + joinExprs(n.Args) + ")"
	case *CMacroCall:
		return n.Name + "(" + joinExprs(n.Args) + ")"
	case *CCast:
		return "((" + typeWithName(n.Type, "") + ")(" + exprString(n.Expr) + "))"
	case *CArrow:
		return "(" + exprString(n.Expr) + ")->" + n.Field
	case nil:
		return "/* nil */"
	default:
		return fmt.Sprintf("/* unknown expr %T */", e)
	}
}

func joinExprs(exprs []CExpr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = exprString(e)
	}
	return strings.Join(parts, ", ")
}
