package surface

import (
	"errors"
	"testing"
)

func TestParseAtoms(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"x", "x"},
		{"42", "42"},
		{"3.5", "3.5"},
		{`"hi"`, `"hi"`},
		{"void", "#void"},
	}

	for _, tt := range tests {
		body, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", tt.input, err)
		}
		if len(body) != 1 {
			t.Fatalf("Parse(%q): expected one body item, got %d", tt.input, len(body))
		}
		item := body[0].(*ExprItem)
		if got := String(item.Value); got != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	body, err := Parse("(if x 1)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ifExpr := body[0].(*ExprItem).Value.(*If)
	if _, ok := ifExpr.Else.(*Lit); !ok {
		t.Fatalf("expected missing else to default to a literal, got %T", ifExpr.Else)
	}
}

func TestParseLambdaAndApplication(t *testing.T) {
	body, err := Parse("((lambda (x y) (set! x y) x) 1 2)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	app := body[0].(*ExprItem).Value.(*App)
	lam := app.Func.(*Lam)
	if len(lam.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(lam.Params))
	}
	if len(lam.Body) != 2 {
		t.Fatalf("expected 2 body items, got %d", len(lam.Body))
	}
	if len(app.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(app.Args))
	}
}

func TestParseLet(t *testing.T) {
	body, err := Parse("(let ((x 1) (y 2)) (+ x y))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	let := body[0].(*ExprItem).Value.(*Let)
	if len(let.Bindings) != 2 {
		t.Fatalf("expected 2 bindings, got %d", len(let.Bindings))
	}
}

func TestParseEmptyBodyIsIllFormed(t *testing.T) {
	_, err := Parse("(lambda (x) )")
	if !errors.Is(err, ErrIllFormedBody) {
		t.Fatalf("expected ErrIllFormedBody, got %v", err)
	}
	if !errors.Is(err, ErrEmptyBody) {
		t.Fatalf("expected ErrEmptyBody specifically, got %v", err)
	}
}

func TestParseTrailingDefineIsIllFormed(t *testing.T) {
	_, err := Parse("(let ((x 1)) (define x 2))")
	if !errors.Is(err, ErrIllFormedBody) {
		t.Fatalf("expected ErrIllFormedBody, got %v", err)
	}
	if !errors.Is(err, ErrTrailingDefine) {
		t.Fatalf("expected ErrTrailingDefine specifically, got %v", err)
	}
}

func TestParseDefineOutsideBodyIsRejected(t *testing.T) {
	_, err := Parse("(+ (define x 1) x)")
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected a parse error, got %v", err)
	}
}

func TestParseUnterminatedStringIsRejected(t *testing.T) {
	_, err := Parse(`"unterminated`)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected a parse error, got %v", err)
	}
}

func TestParseVoidIsALiteralNotAVariable(t *testing.T) {
	body, err := Parse("void")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item := body[0].(*ExprItem)
	if _, ok := item.Value.(*Lit); !ok {
		t.Fatalf("expected void to parse as *Lit, got %T", item.Value)
	}
}
