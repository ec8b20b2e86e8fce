package lifted

import (
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/simmsb/schemec/diag"
	"github.com/simmsb/schemec/flat"
	"github.com/simmsb/schemec/names"
)

// Lift walks a flattened program bottom-up, replacing every lambda
// literal with a Lifted reference and recording its body and free
// variables in the returned table. Free-variable sets are computed with
// bitset union/clear at each join and binder, the same dataflow-style set
// algebra a liveness or reaching-definitions analysis performs.
func Lift(prog flat.FExpr) (LExpr, map[LambdaID]*LiftedLambda, error) {
	l := &lifter{
		lambdas: make(map[LambdaID]*LiftedLambda),
		byID:    make(map[uint64]*names.FreshVar),
	}
	top, free, err := l.lift(prog)
	if err != nil {
		return nil, nil, err
	}
	if !free.None() {
		return nil, nil, diag.NewInvariantError("lift", "program has residual free variables after lifting")
	}
	return top, l.lambdas, nil
}

type lifter struct {
	nextID  LambdaID
	lambdas map[LambdaID]*LiftedLambda
	byID    map[uint64]*names.FreshVar
}

func (l *lifter) register(v *names.FreshVar) {
	l.byID[v.ID] = v
}

func (l *lifter) allocID() LambdaID {
	id := l.nextID
	l.nextID++
	return id
}

func union(sets ...*bitset.BitSet) *bitset.BitSet {
	result := bitset.New(0)
	for _, s := range sets {
		result.InPlaceUnion(s)
	}
	return result
}

func (l *lifter) decode(fs *bitset.BitSet) []*names.FreshVar {
	out := make([]*names.FreshVar, 0, fs.Count())
	for i, ok := fs.NextSet(0); ok; i, ok = fs.NextSet(i + 1) {
		v, known := l.byID[uint64(i)]
		if !known {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}

func (l *lifter) lift(e flat.FExpr) (LExpr, *bitset.BitSet, error) {
	switch n := e.(type) {
	case *flat.Var:
		l.register(n.Var)
		fs := bitset.New(0)
		fs.Set(uint(n.Var.ID))
		return &Var{Var: n.Var}, fs, nil

	case *flat.Lit:
		return &Lit{Value: n.Value}, bitset.New(0), nil

	case *flat.BuiltinIdent:
		return &BuiltinIdent{Name: n.Name}, bitset.New(0), nil

	case *flat.CallOne:
		fn, fnFree, err := l.lift(n.Func)
		if err != nil {
			return nil, nil, err
		}
		arg, argFree, err := l.lift(n.Arg)
		if err != nil {
			return nil, nil, err
		}
		return &CallOne{Func: fn, Arg: arg}, union(fnFree, argFree), nil

	case *flat.CallTwo:
		fn, fnFree, err := l.lift(n.Func)
		if err != nil {
			return nil, nil, err
		}
		arg, argFree, err := l.lift(n.Arg)
		if err != nil {
			return nil, nil, err
		}
		cont, contFree, err := l.lift(n.Cont)
		if err != nil {
			return nil, nil, err
		}
		return &CallTwo{Func: fn, Arg: arg, Cont: cont}, union(fnFree, argFree, contFree), nil

	case *flat.If:
		cond, condFree, err := l.lift(n.Cond)
		if err != nil {
			return nil, nil, err
		}
		then, thenFree, err := l.lift(n.Then)
		if err != nil {
			return nil, nil, err
		}
		els, elseFree, err := l.lift(n.Else)
		if err != nil {
			return nil, nil, err
		}
		return &If{Cond: cond, Then: then, Else: els}, union(condFree, thenFree, elseFree), nil

	case *flat.SetThen:
		l.register(n.Var)
		value, valueFree, err := l.lift(n.Value)
		if err != nil {
			return nil, nil, err
		}
		then, thenFree, err := l.lift(n.Then)
		if err != nil {
			return nil, nil, err
		}
		own := bitset.New(0)
		own.Set(uint(n.Var.ID))
		return &SetThen{Var: n.Var, Value: value, Then: then}, union(valueFree, thenFree, own), nil

	case *flat.LamOne:
		l.register(n.Param)
		body, bodyFree, err := l.lift(n.Body)
		if err != nil {
			return nil, nil, err
		}
		used := bodyFree.Test(uint(n.Param.ID))
		captured := bodyFree.Clone()
		captured.Clear(uint(n.Param.ID))

		id := l.allocID()
		l.lambdas[id] = &LiftedLambda{
			ID:       id,
			Kind:     KindOne,
			Params:   []*names.FreshVar{n.Param},
			Used:     []bool{used},
			FreeVars: l.decode(captured),
			Body:     body,
		}
		return &Lifted{ID: id}, captured, nil

	case *flat.LamTwo:
		l.register(n.Param)
		l.register(n.ContParam)
		body, bodyFree, err := l.lift(n.Body)
		if err != nil {
			return nil, nil, err
		}
		usedParam := bodyFree.Test(uint(n.Param.ID))
		usedCont := bodyFree.Test(uint(n.ContParam.ID))
		captured := bodyFree.Clone()
		captured.Clear(uint(n.Param.ID))
		captured.Clear(uint(n.ContParam.ID))

		id := l.allocID()
		l.lambdas[id] = &LiftedLambda{
			ID:       id,
			Kind:     KindTwo,
			Params:   []*names.FreshVar{n.Param, n.ContParam},
			Used:     []bool{usedParam, usedCont},
			FreeVars: l.decode(captured),
			Body:     body,
		}
		return &Lifted{ID: id}, captured, nil

	default:
		return nil, nil, diag.NewInvariantError("lift", "unrecognized FExpr variant %T", e)
	}
}
