package cps

import (
	"github.com/simmsb/schemec/boundexpr"
	"github.com/simmsb/schemec/diag"
	"github.com/simmsb/schemec/names"
)

// Transform converts the whole bound program into CPS, seeding the
// top-level continuation with the named runtime builtin (normally
// "exit") that ends the trampoline. prog is the already-bound top-level
// body (boundexpr.BindBody's result), translated directly in tail
// position with respect to the entry continuation; it is not wrapped in
// or applied to anything first.
func Transform(supply *names.Supply, prog boundexpr.Expr, entryBuiltin string) (CCall, error) {
	return tc(supply, prog, &KBuiltin{Name: entryBuiltin})
}

func isAtomic(e boundexpr.Expr) bool {
	switch e.(type) {
	case *boundexpr.Lam, *boundexpr.Var, *boundexpr.Lit, *boundexpr.BuiltinIdent:
		return true
	default:
		return false
	}
}

// mAtomic converts an atomic bound expression directly to a UExpr value,
// without touching the ambient continuation.
func mAtomic(supply *names.Supply, e boundexpr.Expr) (UExpr, error) {
	switch n := e.(type) {
	case *boundexpr.Lam:
		kParam := supply.Fresh("k")
		body, err := tc(supply, n.Body, &KVar{Var: kParam})
		if err != nil {
			return nil, err
		}
		return &ULam{Param: n.Param, ContParam: kParam, Body: body}, nil
	case *boundexpr.Var:
		return &UVar{Var: n.Var}, nil
	case *boundexpr.Lit:
		return &ULit{Value: n.Value}, nil
	case *boundexpr.BuiltinIdent:
		return &UBuiltin{Name: n.Name}, nil
	default:
		return nil, diag.NewInvariantError("cps", "mAtomic called on non-atomic expression %T", e)
	}
}

// tc is T_c: translate e in tail position with respect to continuation k.
func tc(supply *names.Supply, e boundexpr.Expr, k KExpr) (CCall, error) {
	if isAtomic(e) {
		v, err := mAtomic(supply, e)
		if err != nil {
			return nil, err
		}
		return &KCall{Cont: k, Arg: v}, nil
	}

	switch n := e.(type) {
	case *boundexpr.Set:
		return tk(supply, n.Value, func(v UExpr) (CCall, error) {
			return &SetThen{
				Var:   n.Var,
				Value: v,
				Then:  &KCall{Cont: k, Arg: &ULit{Value: names.VoidLit{}}},
			}, nil
		})

	case *boundexpr.If:
		return tk(supply, n.Cond, func(cond UExpr) (CCall, error) {
			then, err := tc(supply, n.Then, k)
			if err != nil {
				return nil, err
			}
			els, err := tc(supply, n.Else, k)
			if err != nil {
				return nil, err
			}
			return &If{Cond: cond, Then: then, Else: els}, nil
		})

	case *boundexpr.App:
		return tk(supply, n.Func, func(fn UExpr) (CCall, error) {
			return tk(supply, n.Arg, func(arg UExpr) (CCall, error) {
				return &UCall{Func: fn, Arg: arg, Cont: k}, nil
			})
		})

	default:
		return nil, diag.NewInvariantError("cps", "tc: unrecognized bound expression %T", e)
	}
}

// tk is T_k: translate e in operand position, invoking cb with the
// resulting atomic value. Atomic expressions call cb directly with no
// extra control transfer, which is exactly what keeps this pass from
// producing administrative redexes; only genuinely non-atomic
// sub-expressions pay for a synthesized continuation.
func tk(supply *names.Supply, e boundexpr.Expr, cb func(UExpr) (CCall, error)) (CCall, error) {
	if isAtomic(e) {
		v, err := mAtomic(supply, e)
		if err != nil {
			return nil, err
		}
		return cb(v)
	}

	kParam := supply.Fresh("k")
	body, err := cb(&UVar{Var: kParam})
	if err != nil {
		return nil, err
	}
	return tc(supply, e, &KLam{Param: kParam, Body: body})
}
