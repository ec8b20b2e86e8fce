// Package names provides the fresh-variable identity and literal value
// types shared by every later IR: BExpr, Expr, UExpr/KExpr, FExpr and
// LExpr all bind and reference the same *FreshVar objects end to end.
package names

import "fmt"

// FreshVar is a single binding occurrence, introduced once by a Supply and
// referenced by every later stage as the same pointer. Two variables are
// equal only by identity (and therefore by ID); the human-readable Hint
// exists purely for naming generated C identifiers and pretty-printing,
// never for comparison.
type FreshVar struct {
	Hint string
	ID   uint64
}

func (v *FreshVar) String() string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s#%d", v.Hint, v.ID)
}

// Supply hands out fresh variables with strictly increasing identifiers.
// It is a single-writer collaborator: callers construct one per
// compilation and thread it explicitly, never as package state.
type Supply struct {
	next uint64
}

func NewSupply() *Supply {
	return &Supply{}
}

func (s *Supply) Fresh(hint string) *FreshVar {
	v := &FreshVar{Hint: hint, ID: s.next}
	s.next++
	return v
}

// Literal is the closed set of constant values that can appear in a
// program: strings, integers, floats and the single void value produced
// by statements evaluated for effect.
type Literal interface {
	literalKind()
	String() string
}

type StringLit string

func (StringLit) literalKind()        {}
func (l StringLit) String() string    { return fmt.Sprintf("%q", string(l)) }

type IntLit int64

func (IntLit) literalKind()     {}
func (l IntLit) String() string { return fmt.Sprintf("%d", int64(l)) }

type FloatLit float64

func (FloatLit) literalKind()     {}
func (l FloatLit) String() string { return fmt.Sprintf("%g", float64(l)) }

type VoidLit struct{}

func (VoidLit) literalKind()     {}
func (VoidLit) String() string   { return "#void" }
