package lifted

import (
	"testing"

	"github.com/simmsb/schemec/boundexpr"
	"github.com/simmsb/schemec/cps"
	"github.com/simmsb/schemec/flat"
	"github.com/simmsb/schemec/names"
	"github.com/simmsb/schemec/surface"
)

func liftSource(t *testing.T, src string) (LExpr, map[LambdaID]*LiftedLambda) {
	t.Helper()
	body, err := surface.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	desugared, err := surface.DesugarBody(body)
	if err != nil {
		t.Fatalf("desugar: %v", err)
	}
	supply := names.NewSupply()
	bound, err := boundexpr.BindBody(supply, desugared)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	call, err := cps.Transform(supply, bound, "exit")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	flattened, err := flat.Flatten(call)
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	top, lambdas, err := Lift(flattened)
	if err != nil {
		t.Fatalf("lift: %v", err)
	}
	return top, lambdas
}

func TestLiftReplacesEveryLambdaWithAReference(t *testing.T) {
	// Func and Arg are both atomic here, so translating the application
	// needs no admin continuation: the only lambda literal in the whole
	// program is (lambda (x) x) itself.
	_, lambdas := liftSource(t, "((lambda (x) x) 1)")
	if len(lambdas) != 1 {
		t.Fatalf("expected exactly one lifted lambda, got %d", len(lambdas))
	}
	for _, ll := range lambdas {
		containsLambdaLiteral(t, ll.Body)
	}
}

func containsLambdaLiteral(t *testing.T, e LExpr) {
	t.Helper()
	switch n := e.(type) {
	case *CallOne:
		containsLambdaLiteral(t, n.Func)
		containsLambdaLiteral(t, n.Arg)
	case *CallTwo:
		containsLambdaLiteral(t, n.Func)
		containsLambdaLiteral(t, n.Arg)
		containsLambdaLiteral(t, n.Cont)
	case *If:
		containsLambdaLiteral(t, n.Cond)
		containsLambdaLiteral(t, n.Then)
		containsLambdaLiteral(t, n.Else)
	case *SetThen:
		containsLambdaLiteral(t, n.Value)
		containsLambdaLiteral(t, n.Then)
	case *Lifted, *Var, *Lit, *BuiltinIdent:
		// every one of these is a valid leaf/reference; nothing further
		// to check, but the exhaustive switch documents that no other
		// node shape should ever appear in a lifted tree.
	default:
		t.Fatalf("unexpected node kind %T in lifted body", e)
	}
}

func TestLiftCapturesOuterVariableAsFreeVar(t *testing.T) {
	// The inner lambda references x, bound by the outer one: lifting it
	// must record x in its FreeVars.
	_, lambdas := liftSource(t, "((lambda (x) ((lambda (y) x) 2)) 1)")

	foundCapture := false
	for _, ll := range lambdas {
		if len(ll.FreeVars) > 0 {
			foundCapture = true
		}
	}
	if !foundCapture {
		t.Fatalf("expected at least one lifted lambda to capture a free variable")
	}
}

func TestLiftMarksUnusedParametersNotUsed(t *testing.T) {
	_, lambdas := liftSource(t, "(lambda () 1)")
	foundUnused := false
	for _, ll := range lambdas {
		for _, used := range ll.Used {
			if !used {
				foundUnused = true
			}
		}
	}
	if !foundUnused {
		t.Fatalf("expected the zero-arg lambda's dummy parameter to be marked unused")
	}
}

func TestLiftProducesClosedTopLevelProgram(t *testing.T) {
	// Lift itself already checks this invariant and would error out; this
	// test just documents that a well-formed program lifts successfully.
	if _, _, err := func() (LExpr, map[LambdaID]*LiftedLambda, error) {
		return liftSourceErr(t, "(+ 1 2)")
	}(); err != nil {
		t.Fatalf("unexpected error lifting a closed program: %v", err)
	}
}

func liftSourceErr(t *testing.T, src string) (LExpr, map[LambdaID]*LiftedLambda, error) {
	t.Helper()
	body, err := surface.Parse(src)
	if err != nil {
		return nil, nil, err
	}
	desugared, err := surface.DesugarBody(body)
	if err != nil {
		return nil, nil, err
	}
	supply := names.NewSupply()
	bound, err := boundexpr.BindBody(supply, desugared)
	if err != nil {
		return nil, nil, err
	}
	call, err := cps.Transform(supply, bound, "exit")
	if err != nil {
		return nil, nil, err
	}
	flattened, err := flat.Flatten(call)
	if err != nil {
		return nil, nil, err
	}
	return Lift(flattened)
}
