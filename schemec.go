// Package schemec compiles a minimal Scheme-like source program to a C
// translation unit.
//
// The pipeline is linear, each stage consuming the previous stage's IR
// and producing the next:
//
//	source text -> surface.BExpr -> (desugar) -> boundexpr.Expr ->
//	cps.CCall -> flat.FExpr -> lifted.LExpr + lambda table -> C source
//
// Example usage:
//
//	source, err := schemec.Compile(`(+ 1 2)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For more control, or to inspect an intermediate stage, use
// CompileWithOptions or the stage packages' own functions
// (surface.Parse, surface.DesugarBody, boundexpr.BindBody, ...).
package schemec

import (
	"fmt"

	"github.com/simmsb/schemec/boundexpr"
	"github.com/simmsb/schemec/cemit"
	"github.com/simmsb/schemec/cps"
	"github.com/simmsb/schemec/diag"
	"github.com/simmsb/schemec/flat"
	"github.com/simmsb/schemec/lifted"
	"github.com/simmsb/schemec/names"
	"github.com/simmsb/schemec/surface"
)

// CompileOptions configures a single compilation run.
type CompileOptions struct {
	// EntryBuiltin names the runtime primitive that receives the
	// program's final value; normally "exit", overridable for tests
	// that want to observe an intermediate stage's seeded continuation.
	EntryBuiltin string

	// Debug requests that CompileWithOptions also return a textual dump of every
	// intermediate IR, the way -d does on the command line.
	Debug bool
}

// DefaultOptions returns the options Compile itself uses.
func DefaultOptions() CompileOptions {
	return CompileOptions{EntryBuiltin: "exit"}
}

// Result is the outcome of a CompileWithOptions call: the emitted C
// source, plus (when requested) a stage-by-stage debug trace.
type Result struct {
	C     string
	Trace []StageDump
}

// StageDump is one entry of a -d debug trace: a stage name and the
// textual rendering of its output IR.
type StageDump struct {
	Stage string
	Text  string
}

// Compile compiles source to a C translation unit using default options.
func Compile(source string) (string, error) {
	res, err := CompileWithOptions(source, DefaultOptions())
	if err != nil {
		return "", err
	}
	return res.C, nil
}

// CompileWithOptions runs the full S1-S7 pipeline.
func CompileWithOptions(source string, opts CompileOptions) (*Result, error) {
	entry := opts.EntryBuiltin
	if entry == "" {
		entry = "exit"
	}

	res := &Result{}

	body, err := surface.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	res.dump(opts, "surface", body.String())

	desugared, err := surface.DesugarBody(body)
	if err != nil {
		return nil, fmt.Errorf("desugar: %w", err)
	}
	res.dump(opts, "desugar", desugared.String())

	supply := names.NewSupply()
	bound, err := boundexpr.BindBody(supply, desugared)
	if err != nil {
		return nil, fmt.Errorf("bind: %w", err)
	}
	res.dump(opts, "bind", boundexpr.String(bound))

	ccall, err := cps.Transform(supply, bound, entry)
	if err != nil {
		return nil, fmt.Errorf("cps: %w", err)
	}
	res.dump(opts, "cps", cps.CallString(ccall))

	flattened, err := flat.Flatten(ccall)
	if err != nil {
		return nil, fmt.Errorf("flatten: %w", err)
	}
	res.dump(opts, "flatten", flat.String(flattened))

	lexpr, lambdas, err := lifted.Lift(flattened)
	if err != nil {
		return nil, fmt.Errorf("lift: %w", err)
	}
	res.dump(opts, "lift", lifted.String(lexpr))

	c, err := cemit.Emit(lexpr, lambdas)
	if err != nil {
		return nil, fmt.Errorf("emit: %w", err)
	}
	res.C = c
	return res, nil
}

func (r *Result) dump(opts CompileOptions, stage, text string) {
	if !opts.Debug {
		return
	}
	r.Trace = append(r.Trace, StageDump{Stage: stage, Text: text})
}

// InvariantError is re-exported for callers that want to errors.As
// against an internal consistency failure without importing diag
// directly.
type InvariantError = diag.InvariantError
