package surface

import "github.com/simmsb/schemec/names"

// Desugar runs the two S2 passes in order: lift_defines first, so every
// body reaching remove_let is already Def-free, then remove_let.
func Desugar(prog BExpr) (BExpr, error) {
	lifted, err := LiftDefines(prog)
	if err != nil {
		return nil, err
	}
	return RemoveLet(lifted), nil
}

// LiftDefines rewrites every body so that internal defines become set!
// statements inside a synthetic let that introduces the defined names as
// void-initialized bindings ahead of the body's remaining expressions.
func LiftDefines(e BExpr) (BExpr, error) {
	switch n := e.(type) {
	case *Var, *Lit:
		return e, nil
	case *If:
		cond, err := LiftDefines(n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := LiftDefines(n.Then)
		if err != nil {
			return nil, err
		}
		els, err := LiftDefines(n.Else)
		if err != nil {
			return nil, err
		}
		return &If{Cond: cond, Then: then, Else: els}, nil
	case *Set:
		value, err := LiftDefines(n.Value)
		if err != nil {
			return nil, err
		}
		return &Set{Name: n.Name, Value: value}, nil
	case *App:
		fn, err := LiftDefines(n.Func)
		if err != nil {
			return nil, err
		}
		args, err := liftDefinesAll(n.Args)
		if err != nil {
			return nil, err
		}
		return &App{Func: fn, Args: args}, nil
	case *Lam:
		body, err := liftDefinesBody(n.Body)
		if err != nil {
			return nil, err
		}
		return &Lam{Params: n.Params, Body: body}, nil
	case *Let:
		bindings := make([]LetBinding, len(n.Bindings))
		for i, b := range n.Bindings {
			v, err := LiftDefines(b.Value)
			if err != nil {
				return nil, err
			}
			bindings[i] = LetBinding{Name: b.Name, Value: v}
		}
		body, err := liftDefinesBody(n.Body)
		if err != nil {
			return nil, err
		}
		return &Let{Bindings: bindings, Body: body}, nil
	default:
		return e, nil
	}
}

func liftDefinesAll(exprs []BExpr) ([]BExpr, error) {
	out := make([]BExpr, len(exprs))
	for i, e := range exprs {
		v, err := LiftDefines(e)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// liftDefinesBody recurses into every item's value first, then, if the
// body contained any defines, wraps the whole (now Def-free) sequence in
// a single synthetic let and returns a one-item body holding it.
func liftDefinesBody(body BExprBody) (BExprBody, error) {
	var defNames []string
	newItems := make([]BodyItem, len(body))
	for i, item := range body {
		switch it := item.(type) {
		case *Def:
			v, err := LiftDefines(it.Value)
			if err != nil {
				return nil, err
			}
			defNames = append(defNames, it.Name)
			newItems[i] = &ExprItem{Value: &Set{Name: it.Name, Value: v}}
		case *ExprItem:
			v, err := LiftDefines(it.Value)
			if err != nil {
				return nil, err
			}
			newItems[i] = &ExprItem{Value: v}
		}
	}

	if len(defNames) == 0 {
		return BExprBody(newItems), nil
	}

	bindings := make([]LetBinding, len(defNames))
	for i, name := range defNames {
		bindings[i] = LetBinding{Name: name, Value: &Lit{Value: names.VoidLit{}}}
	}
	synthetic := &Let{Bindings: bindings, Body: BExprBody(newItems)}
	return BExprBody{&ExprItem{Value: synthetic}}, nil
}

// RemoveLet rewrites every let into an application of a fresh lambda,
// after lift_defines has already guaranteed no body contains a define.
func RemoveLet(e BExpr) BExpr {
	switch n := e.(type) {
	case *Var, *Lit:
		return e
	case *If:
		return &If{Cond: RemoveLet(n.Cond), Then: RemoveLet(n.Then), Else: RemoveLet(n.Else)}
	case *Set:
		return &Set{Name: n.Name, Value: RemoveLet(n.Value)}
	case *App:
		args := make([]BExpr, len(n.Args))
		for i, a := range n.Args {
			args[i] = RemoveLet(a)
		}
		return &App{Func: RemoveLet(n.Func), Args: args}
	case *Lam:
		return &Lam{Params: n.Params, Body: removeLetBody(n.Body)}
	case *Let:
		names := make([]string, len(n.Bindings))
		values := make([]BExpr, len(n.Bindings))
		for i, b := range n.Bindings {
			names[i] = b.Name
			values[i] = RemoveLet(b.Value)
		}
		body := removeLetBody(n.Body)
		return &App{Func: &Lam{Params: names, Body: body}, Args: values}
	default:
		return e
	}
}

func removeLetBody(body BExprBody) BExprBody {
	out := make([]BodyItem, len(body))
	for i, item := range body {
		// lift_defines guarantees every remaining item is an ExprItem.
		expr := item.(*ExprItem)
		out[i] = &ExprItem{Value: RemoveLet(expr.Value)}
	}
	return BExprBody(out)
}

// Program wraps a parsed top-level body as a zero-argument thunk so the
// rest of the pipeline (desugar, bind) can treat "the whole program" the
// same way it treats any lambda body.
func Program(body BExprBody) BExpr {
	return &Lam{Body: body}
}

// DesugarBody runs the same two S2 passes as Desugar, directly over a
// top-level body rather than a body wrapped in a synthetic lambda by
// Program. The real compilation pipeline uses this: the top-level
// program is a sequence of forms, not a value to be invoked.
func DesugarBody(body BExprBody) (BExprBody, error) {
	lifted, err := liftDefinesBody(body)
	if err != nil {
		return nil, err
	}
	return removeLetBody(lifted), nil
}
