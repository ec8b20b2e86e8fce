// Package boundexpr implements S3: binding every identifier to either a
// unique fresh variable or a builtin, and normalizing every lambda and
// application to single-argument curried form.
package boundexpr

import "github.com/simmsb/schemec/names"

// Expr is the bound IR: no more Let, no more string-named identifiers,
// no more multi-argument lambdas or applications.
type Expr interface {
	exprKind()
}

type Var struct {
	Var *names.FreshVar
}

type Lit struct {
	Value names.Literal
}

type BuiltinIdent struct {
	Name string
}

type If struct {
	Cond, Then, Else Expr
}

type Set struct {
	Var   *names.FreshVar
	Value Expr
}

type Lam struct {
	Param *names.FreshVar
	Body  Expr
}

type App struct {
	Func Expr
	Arg  Expr
}

func (*Var) exprKind()          {}
func (*Lit) exprKind()          {}
func (*BuiltinIdent) exprKind() {}
func (*If) exprKind()           {}
func (*Set) exprKind()          {}
func (*Lam) exprKind()          {}
func (*App) exprKind()          {}
