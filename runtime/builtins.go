// Package runtime describes the external C runtime's primitive catalogue:
// the names a program may reference without binding them, the symbol each
// one resolves to in the linked runtime library, and the closure shape
// (one or two arguments) the emitter must build for it. It has no
// dependents of its own stage; boundexpr consults it to decide whether a
// bare identifier is a binding or a primitive, and cemit consults it to
// pick the right constructor macro.
package runtime

// Kind mirrors lifted.LambdaKind: whether invoking the primitive takes a
// single value (a continuation-shaped call) or a value plus a
// continuation (an ordinary user-function-shaped call).
type Kind int

const (
	KindOne Kind = iota
	KindTwo
)

type Builtin struct {
	Symbol string
	Kind   Kind
}

// Builtins is the minimal primitive set a program can rely on existing
// in the linked runtime, exactly the §4.7 catalogue. Every entry except
// exit is KindTwo: like any user-defined function, primitives are called
// with a value and a continuation, and multi-argument primitives such as
// + are themselves ordinary curried closures provided by the runtime
// (the compiler never needs to know their Scheme-level arity). exit is
// KindOne because it is used only in continuation position, as the
// trampoline's terminal sink.
var Builtins = map[string]Builtin{
	"tostring":      {Symbol: "to_string_k", Kind: KindTwo},
	"display":       {Symbol: "display_k", Kind: KindTwo},
	"exit":          {Symbol: "exit_k", Kind: KindOne},
	"+":             {Symbol: "add_k", Kind: KindTwo},
	"-":             {Symbol: "sub_k", Kind: KindTwo},
	"*":             {Symbol: "mul_k", Kind: KindTwo},
	"/":             {Symbol: "div_k", Kind: KindTwo},
	"^":             {Symbol: "xor_k", Kind: KindTwo},
	"cons":          {Symbol: "cons_k", Kind: KindTwo},
	"cons?":         {Symbol: "is_cons_k", Kind: KindTwo},
	"null?":         {Symbol: "is_null_k", Kind: KindTwo},
	"car":           {Symbol: "car_k", Kind: KindTwo},
	"cdr":           {Symbol: "cdr_k", Kind: KindTwo},
	"string-concat": {Symbol: "string_concat_k", Kind: KindTwo},
}

func IsKnown(name string) bool {
	_, ok := Builtins[name]
	return ok
}

func Lookup(name string) (Builtin, bool) {
	b, ok := Builtins[name]
	return b, ok
}
