package surface

import "testing"

func countLets(e BExpr) int {
	switch n := e.(type) {
	case *Let:
		return 1 + countLets(n.Body.foldCount()) + countLetsBindings(n.Bindings)
	case *If:
		return countLets(n.Cond) + countLets(n.Then) + countLets(n.Else)
	case *Set:
		return countLets(n.Value)
	case *App:
		total := countLets(n.Func)
		for _, a := range n.Args {
			total += countLets(a)
		}
		return total
	case *Lam:
		return countLets(n.Body.foldCount())
	default:
		return 0
	}
}

func countLetsBindings(bindings []LetBinding) int {
	total := 0
	for _, b := range bindings {
		total += countLets(b.Value)
	}
	return total
}

// foldCount concatenates a body's items into one dummy App node purely so
// the test's countLets walker can descend into every sub-expression
// without duplicating BExprBody-handling logic.
func (b BExprBody) foldCount() BExpr {
	args := make([]BExpr, 0, len(b))
	for _, item := range b {
		switch it := item.(type) {
		case *Def:
			args = append(args, it.Value)
		case *ExprItem:
			args = append(args, it.Value)
		}
	}
	return &App{Func: &Var{Name: "_fold"}, Args: args}
}

func TestLiftDefinesRemovesDefs(t *testing.T) {
	body, err := Parse("(define x 1) (define y 2) (+ x y)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	prog := Program(body)
	lifted, err := LiftDefines(prog)
	if err != nil {
		t.Fatalf("LiftDefines: %v", err)
	}

	lam := lifted.(*Lam)
	if len(lam.Body) != 1 {
		t.Fatalf("expected single wrapped item, got %d", len(lam.Body))
	}
	let, ok := lam.Body[0].(*ExprItem).Value.(*Let)
	if !ok {
		t.Fatalf("expected a synthetic let, got %T", lam.Body[0].(*ExprItem).Value)
	}
	if len(let.Bindings) != 2 {
		t.Fatalf("expected 2 synthetic bindings, got %d", len(let.Bindings))
	}
	for _, item := range let.Body {
		if _, ok := item.(*ExprItem).Value.(*Set); !ok {
			continue
		}
	}
}

func TestRemoveLetEliminatesAllLets(t *testing.T) {
	body, err := Parse("(let ((x 1)) (let ((y 2)) (+ x y)))")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	prog := Program(body)
	desugared, err := Desugar(prog)
	if err != nil {
		t.Fatalf("Desugar: %v", err)
	}
	if n := countLets(desugared); n != 0 {
		t.Fatalf("expected no lets left after desugaring, found %d", n)
	}
}

func TestDesugarFullPipelinePreservesSequencing(t *testing.T) {
	body, err := Parse("(lambda () (define x 1) (set! x 2) x)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	desugared, err := Desugar(Program(body))
	if err != nil {
		t.Fatalf("Desugar: %v", err)
	}
	if n := countLets(desugared); n != 0 {
		t.Fatalf("expected no lets left, found %d", n)
	}
	if _, ok := desugared.(*Lam); !ok {
		t.Fatalf("expected Desugar to preserve the wrapping lambda, got %T", desugared)
	}
}
