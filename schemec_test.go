package schemec

import (
	"errors"
	"strings"
	"testing"

	"github.com/simmsb/schemec/surface"
)

func TestCompileEmitsARunnableTranslationUnit(t *testing.T) {
	c, err := Compile("(+ 1 2)")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	for _, want := range []string{"#include <schemec_rt/object.h>", "int main(void) {", "scheme_start("} {
		if !strings.Contains(c, want) {
			t.Errorf("missing %q in emitted C:\n%s", want, c)
		}
	}
}

func TestCompileWithOptionsDumpsEveryStageWhenDebugRequested(t *testing.T) {
	opts := DefaultOptions()
	opts.Debug = true
	res, err := CompileWithOptions("(+ 1 2)", opts)
	if err != nil {
		t.Fatalf("CompileWithOptions: %v", err)
	}
	wantStages := []string{"surface", "desugar", "bind", "cps", "flatten", "lift"}
	if len(res.Trace) != len(wantStages) {
		t.Fatalf("got %d trace entries, want %d: %+v", len(res.Trace), len(wantStages), res.Trace)
	}
	for i, stage := range wantStages {
		if res.Trace[i].Stage != stage {
			t.Errorf("trace[%d].Stage = %q, want %q", i, res.Trace[i].Stage, stage)
		}
		if res.Trace[i].Text == "" {
			t.Errorf("trace[%d] (%s) has empty text", i, stage)
		}
	}
}

func TestCompileWithOptionsOmitsTraceByDefault(t *testing.T) {
	res, err := CompileWithOptions("(+ 1 2)", DefaultOptions())
	if err != nil {
		t.Fatalf("CompileWithOptions: %v", err)
	}
	if len(res.Trace) != 0 {
		t.Errorf("expected no trace without Debug, got %d entries", len(res.Trace))
	}
}

func TestCompileWrapsEachStagesErrorWithItsName(t *testing.T) {
	_, err := Compile("(")
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	if !strings.HasPrefix(err.Error(), "parse: ") {
		t.Errorf("error = %q, want it prefixed with \"parse: \"", err.Error())
	}
	if !errors.Is(err, surface.ErrParse) {
		t.Errorf("error = %v, want it to wrap surface.ErrParse", err)
	}
}

func TestCustomEntryBuiltinIsHonored(t *testing.T) {
	opts := DefaultOptions()
	opts.EntryBuiltin = "display"
	c, err := CompileWithOptions("1", opts)
	if err != nil {
		t.Fatalf("CompileWithOptions: %v", err)
	}
	if !strings.Contains(c.C, "display_k") {
		t.Errorf("expected the program to be delivered to display_k, got:\n%s", c.C)
	}
}

func TestEmptyEntryBuiltinOptionDefaultsToExit(t *testing.T) {
	res, err := CompileWithOptions("1", CompileOptions{})
	if err != nil {
		t.Fatalf("CompileWithOptions: %v", err)
	}
	if !strings.Contains(res.C, "exit_k") {
		t.Errorf("expected a zero-value CompileOptions to fall back to exit_k, got:\n%s", res.C)
	}
}
