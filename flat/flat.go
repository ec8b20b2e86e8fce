// Package flat implements S5: merging UExpr, KExpr and CCall into a
// single node type. The distinction between "user" and "continuation"
// values no longer matters once lambda lifting (S6) is about to replace
// every lambda literal with an opaque reference anyway.
package flat

import "github.com/simmsb/schemec/names"

type FExpr interface{ fExprKind() }

// LamOne is a continuation: one parameter.
type LamOne struct {
	Param *names.FreshVar
	Body  FExpr
}

// LamTwo is a user function: a value parameter and a continuation
// parameter.
type LamTwo struct {
	Param, ContParam *names.FreshVar
	Body             FExpr
}

// CallOne invokes a one-parameter target (a continuation call).
type CallOne struct {
	Func, Arg FExpr
}

// CallTwo invokes a two-parameter target (a user-function call).
type CallTwo struct {
	Func, Arg, Cont FExpr
}

type Var struct{ Var *names.FreshVar }
type Lit struct{ Value names.Literal }
type BuiltinIdent struct{ Name string }

type SetThen struct {
	Var   *names.FreshVar
	Value FExpr
	Then  FExpr
}

type If struct {
	Cond, Then, Else FExpr
}

func (*LamOne) fExprKind()      {}
func (*LamTwo) fExprKind()      {}
func (*CallOne) fExprKind()     {}
func (*CallTwo) fExprKind()     {}
func (*Var) fExprKind()         {}
func (*Lit) fExprKind()         {}
func (*BuiltinIdent) fExprKind() {}
func (*SetThen) fExprKind()     {}
func (*If) fExprKind()          {}
