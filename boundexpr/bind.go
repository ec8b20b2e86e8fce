package boundexpr

import (
	"errors"
	"fmt"

	"github.com/simmsb/schemec/diag"
	"github.com/simmsb/schemec/names"
	"github.com/simmsb/schemec/runtime"
	"github.com/simmsb/schemec/surface"
)

// ErrUnbound is wrapped by every reference to an identifier that is
// neither bound by an enclosing lambda nor a known runtime primitive.
var ErrUnbound = errors.New("unbound identifier")

// env is a persistent, parent-linked scope chain. Extending it never
// mutates an outer frame, so the same env can be safely reused across
// sibling branches (e.g. the Then and Else branches of an If).
type env struct {
	parent *env
	name   string
	v      *names.FreshVar
}

func (e *env) lookup(name string) (*names.FreshVar, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if cur.name == name {
			return cur.v, true
		}
	}
	return nil, false
}

func (e *env) extend(name string, v *names.FreshVar) *env {
	return &env{parent: e, name: name, v: v}
}

// Bind resolves prog (the whole program, already desugared into a single
// zero-argument lambda by surface.Program+surface.Desugar) against an
// empty top-level scope.
func Bind(supply *names.Supply, prog surface.BExpr) (Expr, error) {
	return bind(supply, nil, prog)
}

// BindBody resolves a top-level body (surface.DesugarBody's result)
// directly against an empty top-level scope, the way the real
// compilation pipeline does: the program is a sequence of forms run for
// effect and final value, not a lambda to be invoked.
func BindBody(supply *names.Supply, body surface.BExprBody) (Expr, error) {
	return bindBody(supply, nil, body)
}

func bind(supply *names.Supply, e *env, b surface.BExpr) (Expr, error) {
	switch n := b.(type) {
	case *surface.Var:
		if v, ok := e.lookup(n.Name); ok {
			return &Var{Var: v}, nil
		}
		if runtime.IsKnown(n.Name) {
			return &BuiltinIdent{Name: n.Name}, nil
		}
		return nil, fmt.Errorf("%w: %q", ErrUnbound, n.Name)

	case *surface.Lit:
		return &Lit{Value: n.Value}, nil

	case *surface.If:
		cond, err := bind(supply, e, n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := bind(supply, e, n.Then)
		if err != nil {
			return nil, err
		}
		els, err := bind(supply, e, n.Else)
		if err != nil {
			return nil, err
		}
		return &If{Cond: cond, Then: then, Else: els}, nil

	case *surface.Set:
		v, ok := e.lookup(n.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnbound, n.Name)
		}
		value, err := bind(supply, e, n.Value)
		if err != nil {
			return nil, err
		}
		return &Set{Var: v, Value: value}, nil

	case *surface.Lam:
		return bindLam(supply, e, n)

	case *surface.App:
		return bindApp(supply, e, n)

	case *surface.Let:
		return nil, diag.NewInvariantError("bind", "let reached S3; remove_let should have eliminated it")

	default:
		return nil, diag.NewInvariantError("bind", "unrecognized surface expression %T", b)
	}
}

func bindLam(supply *names.Supply, e *env, n *surface.Lam) (Expr, error) {
	params := n.Params
	vars := make([]*names.FreshVar, len(params))
	inner := e
	for i, p := range params {
		v := supply.Fresh(p)
		vars[i] = v
		inner = inner.extend(p, v)
	}

	body, err := bindBody(supply, inner, n.Body)
	if err != nil {
		return nil, err
	}

	if len(vars) == 0 {
		unused := supply.Fresh("_")
		return &Lam{Param: unused, Body: body}, nil
	}

	result := body
	for i := len(vars) - 1; i >= 0; i-- {
		result = &Lam{Param: vars[i], Body: result}
	}
	return result, nil
}

// bindBody folds a sequence of expressions into one: the first keeps its
// value, and each later expression is sequenced after the accumulator by
// applying an unused-parameter lambda to it, so side effects run in
// textual order and the sequence's value is its last expression's value.
func bindBody(supply *names.Supply, e *env, body surface.BExprBody) (Expr, error) {
	if len(body) == 0 {
		return nil, diag.NewInvariantError("bind", "empty body reached S3; the parser's newBody should have rejected it")
	}

	first, ok := body[0].(*surface.ExprItem)
	if !ok {
		return nil, diag.NewInvariantError("bind", "define reached S3; lift_defines should have eliminated it")
	}
	acc, err := bind(supply, e, first.Value)
	if err != nil {
		return nil, err
	}

	for _, item := range body[1:] {
		exprItem, ok := item.(*surface.ExprItem)
		if !ok {
			return nil, diag.NewInvariantError("bind", "define reached S3; lift_defines should have eliminated it")
		}
		next, err := bind(supply, e, exprItem.Value)
		if err != nil {
			return nil, err
		}
		unused := supply.Fresh("_")
		acc = &App{Func: &Lam{Param: unused, Body: next}, Arg: acc}
	}
	return acc, nil
}

func bindApp(supply *names.Supply, e *env, n *surface.App) (Expr, error) {
	fn, err := bind(supply, e, n.Func)
	if err != nil {
		return nil, err
	}

	if len(n.Args) == 0 {
		return &App{Func: fn, Arg: &Lit{Value: names.VoidLit{}}}, nil
	}

	acc := fn
	for _, a := range n.Args {
		argExpr, err := bind(supply, e, a)
		if err != nil {
			return nil, err
		}
		acc = &App{Func: acc, Arg: argExpr}
	}
	return acc, nil
}
