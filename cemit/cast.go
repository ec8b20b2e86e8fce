// Package cemit implements S7: rendering a lifted program into a C
// translation unit. Rather than concatenating strings directly, it first
// lowers every LExpr/LiftedLambda into a small structured C-expression/
// statement/declaration tree (this file) and only then renders that tree
// to text (writer.go). This mirrors original_source's cdsl.rs, which the
// distilled specification's table-of-templates collapses but which is
// what the system being specified actually did.
package cemit

// CExpr is a C expression.
type CExpr interface{ cExprKind() }

type CBinOp struct {
	Op          string
	Left, Right CExpr
}

// CFuncCall is a C function call expression (cdsl's FunCallOp, renamed
// since "call" alone would collide with the cps/lifted packages' CCall).
type CFuncCall struct {
	Func CExpr
	Args []CExpr
}

// CMacroCall is a macro invocation, e.g. OBJECT_INT_OBJ_NEW(tmp, 3).
type CMacroCall struct {
	Name string
	Args []CExpr
}

type CCast struct {
	Expr CExpr
	Type CType
}

// CArrow is member access through a pointer: Expr->Field.
type CArrow struct {
	Expr  CExpr
	Field string
}

type CIdent string
type CLitStr string
type CLitInt int64

func (*CBinOp) cExprKind()     {}
func (*CFuncCall) cExprKind() {}
func (*CMacroCall) cExprKind() {}
func (*CCast) cExprKind()     {}
func (*CArrow) cExprKind()    {}
func (CIdent) cExprKind()     {}
func (CLitStr) cExprKind()    {}
func (CLitInt) cExprKind()    {}

// CType is a C type, rendered with the "inside-out" declarator rule (see
// writer.go's typeWithName) so pointers-to-arrays etc. come out correct.
type CType interface{ cTypeKind() }

type CPtr struct{ To CType }
type CStruct struct{ Name string }
type COther struct{ Name string } // an opaque named type, e.g. "int64_t"
type CVoid struct{}

func (*CPtr) cTypeKind()    {}
func (*CStruct) cTypeKind() {}
func (*COther) cTypeKind()  {}
func (CVoid) cTypeKind()    {}

// CStmt is a C statement.
type CStmt interface{ cStmtKind() }

type CIf struct {
	Cond       CExpr
	Then, Else []CStmt
}

type CDeclStmt struct{ Decl CDecl }
type CExprStmt struct{ Expr CExpr }

func (*CIf) cStmtKind()        {}
func (*CDeclStmt) cStmtKind()  {}
func (*CExprStmt) cStmtKind()  {}

// CDecl is a top-level or local declaration.
type CDecl interface{ cDeclKind() }

type CFunProto struct {
	Name     string
	Ret      CType
	Args     []CType
	NoReturn bool
}

type CFun struct {
	Name string
	Ret  CType
	Args []CParam
	Body []CStmt
}

type CParam struct {
	Name string
	Type CType
}

type CStructDecl struct {
	Name    string
	Members []CField
}

type CField struct {
	Name string
	Type CType
}

// CVar is a local or global variable declaration, optionally initialized.
type CVar struct {
	Name string
	Type CType
	Init CExpr
}

func (*CFunProto) cDeclKind()   {}
func (*CFun) cDeclKind()        {}
func (*CStructDecl) cDeclKind() {}
func (*CVar) cDeclKind()        {}
