package flat

import (
	"github.com/simmsb/schemec/cps"
	"github.com/simmsb/schemec/diag"
)

// Flatten lowers a CPS term into the unified FExpr shape.
func Flatten(c cps.CCall) (FExpr, error) {
	return flattenCall(c)
}

func flattenCall(c cps.CCall) (FExpr, error) {
	switch n := c.(type) {
	case *cps.UCall:
		fn, err := flattenU(n.Func)
		if err != nil {
			return nil, err
		}
		arg, err := flattenU(n.Arg)
		if err != nil {
			return nil, err
		}
		cont, err := flattenK(n.Cont)
		if err != nil {
			return nil, err
		}
		return &CallTwo{Func: fn, Arg: arg, Cont: cont}, nil

	case *cps.KCall:
		cont, err := flattenK(n.Cont)
		if err != nil {
			return nil, err
		}
		arg, err := flattenU(n.Arg)
		if err != nil {
			return nil, err
		}
		return &CallOne{Func: cont, Arg: arg}, nil

	case *cps.If:
		cond, err := flattenU(n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := flattenCall(n.Then)
		if err != nil {
			return nil, err
		}
		els, err := flattenCall(n.Else)
		if err != nil {
			return nil, err
		}
		return &If{Cond: cond, Then: then, Else: els}, nil

	case *cps.SetThen:
		value, err := flattenU(n.Value)
		if err != nil {
			return nil, err
		}
		then, err := flattenCall(n.Then)
		if err != nil {
			return nil, err
		}
		return &SetThen{Var: n.Var, Value: value, Then: then}, nil

	default:
		return nil, diag.NewInvariantError("flatten", "unrecognized CCall variant %T", c)
	}
}

func flattenU(u cps.UExpr) (FExpr, error) {
	switch n := u.(type) {
	case *cps.ULam:
		body, err := flattenCall(n.Body)
		if err != nil {
			return nil, err
		}
		return &LamTwo{Param: n.Param, ContParam: n.ContParam, Body: body}, nil
	case *cps.UVar:
		return &Var{Var: n.Var}, nil
	case *cps.UBuiltin:
		return &BuiltinIdent{Name: n.Name}, nil
	case *cps.ULit:
		return &Lit{Value: n.Value}, nil
	default:
		return nil, diag.NewInvariantError("flatten", "unrecognized UExpr variant %T", u)
	}
}

func flattenK(k cps.KExpr) (FExpr, error) {
	switch n := k.(type) {
	case *cps.KLam:
		body, err := flattenCall(n.Body)
		if err != nil {
			return nil, err
		}
		return &LamOne{Param: n.Param, Body: body}, nil
	case *cps.KVar:
		return &Var{Var: n.Var}, nil
	case *cps.KBuiltin:
		return &BuiltinIdent{Name: n.Name}, nil
	case *cps.KLit:
		return &Lit{Value: n.Value}, nil
	default:
		return nil, diag.NewInvariantError("flatten", "unrecognized KExpr variant %T", k)
	}
}
