package boundexpr

import (
	"errors"
	"testing"

	"github.com/simmsb/schemec/names"
	"github.com/simmsb/schemec/surface"
)

func bindSource(t *testing.T, src string) Expr {
	t.Helper()
	body, err := surface.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	desugared, err := surface.Desugar(surface.Program(body))
	if err != nil {
		t.Fatalf("desugar: %v", err)
	}
	bound, err := Bind(names.NewSupply(), desugared)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	return bound
}

func TestBindNormalizesMultiArgLambda(t *testing.T) {
	bound := bindSource(t, "((lambda (x y) x) 1 2)")
	// The outer zero-arg program lambda wraps a single application; walk
	// down to the inner lambda and check it curried to nested one-arg form.
	outer := bound.(*Lam)
	app := outer.Body.(*App)
	inner := app.Func.(*App).Func.(*Lam)
	if _, ok := inner.Body.(*Lam); !ok {
		t.Fatalf("expected a two-parameter lambda to curry into nested single-arg lambdas, got body %T", inner.Body)
	}
}

func TestBindResolvesBuiltin(t *testing.T) {
	bound := bindSource(t, "(+ 1 2)")
	outer := bound.(*Lam)
	app := outer.Body.(*App).Func.(*App)
	if _, ok := app.Func.(*BuiltinIdent); !ok {
		t.Fatalf("expected + to resolve to a builtin, got %T", app.Func)
	}
}

func TestBindRejectsUnboundIdentifier(t *testing.T) {
	body, err := surface.Parse("(lambda () nowhere)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	desugared, err := surface.Desugar(surface.Program(body))
	if err != nil {
		t.Fatalf("desugar: %v", err)
	}
	_, err = Bind(names.NewSupply(), desugared)
	if !errors.Is(err, ErrUnbound) {
		t.Fatalf("expected ErrUnbound, got %v", err)
	}
}

func TestBindGivesEveryOccurrenceTheSameFreshVar(t *testing.T) {
	bound := bindSource(t, "((lambda (x) (set! x x)) 1)")
	outer := bound.(*Lam)
	app := outer.Body.(*App)
	lam := app.Func.(*Lam)
	set := lam.Body.(*Set)
	ref := set.Value.(*Var)
	if set.Var != lam.Param || ref.Var != lam.Param {
		t.Fatalf("expected every occurrence of x to share the lambda's fresh variable")
	}
}
