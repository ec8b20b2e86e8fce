// Package lifted implements S6: lambda lifting. Every LamOne/LamTwo
// literal is replaced by an opaque Lifted reference to a top-level
// LiftedLambda, each carrying the exact set of variables it captures
// from its defining environment.
package lifted

import "github.com/simmsb/schemec/names"

type LambdaID uint32

type LambdaKind int

const (
	KindOne LambdaKind = iota
	KindTwo
)

type LExpr interface{ lExprKind() }

// Lifted replaces every lambda literal in the tree; the code it refers
// to is emitted exactly once, in LiftedLambda.Body, regardless of how
// many Lifted references point at it.
type Lifted struct {
	ID LambdaID
}

type CallOne struct{ Func, Arg LExpr }
type CallTwo struct{ Func, Arg, Cont LExpr }
type Var struct{ Var *names.FreshVar }
type Lit struct{ Value names.Literal }
type BuiltinIdent struct{ Name string }

type SetThen struct {
	Var   *names.FreshVar
	Value LExpr
	Then  LExpr
}

type If struct {
	Cond, Then, Else LExpr
}

func (*Lifted) lExprKind()      {}
func (*CallOne) lExprKind()     {}
func (*CallTwo) lExprKind()     {}
func (*Var) lExprKind()         {}
func (*Lit) lExprKind()         {}
func (*BuiltinIdent) lExprKind() {}
func (*SetThen) lExprKind()     {}
func (*If) lExprKind()          {}

// LiftedLambda is a top-level function extracted from the tree. Params
// holds one (KindOne) or two (KindTwo, value+continuation) binders; Used
// marks, in the same order, whether each parameter is referenced
// anywhere in Body (an unused parameter needs neither a cell nor an env
// slot). FreeVars is the variable capture set, in ascending identifier
// order for deterministic emission.
type LiftedLambda struct {
	ID       LambdaID
	Kind     LambdaKind
	Params   []*names.FreshVar
	Used     []bool
	FreeVars []*names.FreshVar
	Body     LExpr
}
