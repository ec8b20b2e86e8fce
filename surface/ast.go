// Package surface implements the front end: an S-expression reader that
// produces BExpr trees (S1), plus the desugaring pass that lowers let and
// internal defines away (S2).
package surface

import "github.com/simmsb/schemec/names"

// BExpr is the surface syntax tree produced directly by the parser.
// Identifiers are still plain strings; nothing has been resolved yet.
type BExpr interface {
	bExprKind()
}

type Var struct {
	Name string
}

type Lit struct {
	Value names.Literal
}

type If struct {
	Cond, Then, Else BExpr
}

type Set struct {
	Name  string
	Value BExpr
}

type LetBinding struct {
	Name  string
	Value BExpr
}

type Let struct {
	Bindings []LetBinding
	Body     BExprBody
}

type Lam struct {
	Params []string
	Body   BExprBody
}

type App struct {
	Func BExpr
	Args []BExpr
}

func (*Var) bExprKind()          {}
func (*Lit) bExprKind()          {}
func (*If) bExprKind()           {}
func (*Set) bExprKind()          {}
func (*Let) bExprKind()          {}
func (*Lam) bExprKind()          {}
func (*App) bExprKind()          {}

// BodyItem is one entry of a lambda or let body: either an internal
// define or a plain expression evaluated for its value or effect.
type BodyItem interface {
	bodyItemKind()
}

type Def struct {
	Name  string
	Value BExpr
}

type ExprItem struct {
	Value BExpr
}

func (*Def) bodyItemKind()      {}
func (*ExprItem) bodyItemKind() {}

// BExprBody is a sequence of BodyItems. By construction (see newBody) the
// final item is always an ExprItem; a body ending in a define, or an
// empty body, is rejected at construction time with ErrIllFormedBody so
// that stage can never see the malformed shape.
type BExprBody []BodyItem
