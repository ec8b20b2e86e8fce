package cemit

import (
	"fmt"
	"sort"

	"github.com/simmsb/schemec/diag"
	"github.com/simmsb/schemec/lifted"
	"github.com/simmsb/schemec/names"
	"github.com/simmsb/schemec/runtime"
)

// Runtime header names the emitted unit includes. The headers themselves
// are the out-of-scope runtime library's; only their call surface (§6)
// is modeled here, so the names are this compiler's own choice of what
// to ask the linked runtime to provide.
const (
	headerObjects    = "schemec_rt/object.h"
	headerTrampoline = "schemec_rt/trampoline.h"
)

var (
	tObj    = &CPtr{To: &CStruct{Name: "obj"}}
	tObjEnv = &CPtr{To: &CStruct{Name: "obj_env"}}
	tCell   = &CPtr{To: &CStruct{Name: "cell_obj"}}
	tVoid   = CVoid{}
)

// context is the single-writer code-generation state threaded through
// one S7 pass: a monotonic temporary counter, mirroring msl.Writer's own
// unique-name counter.
type context struct {
	tmpCounter int
	lambdas    map[lifted.LambdaID]*lifted.LiftedLambda
}

func (c *context) tmp() string {
	name := fmt.Sprintf("tmp_%d", c.tmpCounter)
	c.tmpCounter++
	return name
}

// slotTable maps a fresh variable's identifier to the C expression that
// yields the *cell* (not its value) currently bound to it: either a
// local cell variable (the lambda's own used parameter) or a field read
// off the incoming environment struct (a captured free variable).
type slotTable map[uint64]CExpr

// Emit renders the whole lifted program plus its lambda table into a C
// translation unit.
func Emit(prog lifted.LExpr, lambdas map[lifted.LambdaID]*lifted.LiftedLambda) (string, error) {
	ctx := &context{lambdas: lambdas}

	ids := make([]lifted.LambdaID, 0, len(lambdas))
	for id := range lambdas {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var structs, protos, defs []CDecl
	for _, id := range ids {
		ll := lambdas[id]
		if len(ll.FreeVars) > 0 {
			structs = append(structs, envStructDecl(id, ll.FreeVars))
		}
		protos = append(protos, funProto(id, ll.Kind))
		fn, err := funDef(ctx, id, ll)
		if err != nil {
			return "", err
		}
		defs = append(defs, fn)
	}

	mainFn, err := mainLambdaDef(ctx, prog)
	if err != nil {
		return "", err
	}
	protos = append(protos, mainLambdaProto())
	defs = append(defs, mainFn)

	w := newWriter()
	w.writeLine("#include <%s>", headerObjects)
	w.writeLine("#include <%s>", headerTrampoline)
	w.writeLine("")
	for _, d := range structs {
		w.writeDecl(d)
		w.writeLine("")
	}
	for _, d := range protos {
		w.writeDecl(d)
	}
	w.writeLine("")
	for _, d := range defs {
		w.writeDecl(d)
		w.writeLine("")
	}
	writeMainFunction(w)
	return w.String(), nil
}

func envStructDecl(id lifted.LambdaID, freeVars []*names.FreshVar) *CStructDecl {
	members := make([]CField, len(freeVars))
	for i, v := range freeVars {
		members[i] = CField{Name: slotName(v), Type: tObj}
	}
	return &CStructDecl{Name: envStructName(id), Members: members}
}

func lambdaParamTypes(kind lifted.LambdaKind) []CType {
	if kind == lifted.KindOne {
		return []CType{tObj, tObjEnv}
	}
	return []CType{tObj, tObj, tObjEnv}
}

func funProto(id lifted.LambdaID, kind lifted.LambdaKind) *CFunProto {
	return &CFunProto{
		Name:     lambdaFuncName(id),
		Ret:      tVoid,
		Args:     lambdaParamTypes(kind),
		NoReturn: true,
	}
}

func mainLambdaProto() *CFunProto {
	return &CFunProto{Name: "main_lambda", Ret: tVoid, Args: []CType{tObj, tObjEnv}, NoReturn: true}
}

func argParamName(v *names.FreshVar) string { return "arg_" + slotName(v) }

func funDef(ctx *context, id lifted.LambdaID, ll *lifted.LiftedLambda) (*CFun, error) {
	params := make([]CParam, 0, len(ll.Params)+1)
	slots := make(slotTable)

	for i, p := range ll.Params {
		params = append(params, CParam{Name: argParamName(p), Type: tObj})
		if ll.Used[i] {
			slots[p.ID] = CIdent(slotName(p))
		}
	}
	params = append(params, CParam{Name: "env_in", Type: tObjEnv})

	var body []CStmt
	if len(ll.FreeVars) > 0 {
		body = append(body, &CDeclStmt{Decl: &CVar{
			Name: "env",
			Type: &CPtr{To: &CStruct{Name: envStructName(id)}},
			Init: &CCast{Expr: CIdent("env_in"), Type: &CPtr{To: &CStruct{Name: envStructName(id)}}},
		}})
		for _, v := range ll.FreeVars {
			slots[v.ID] = &CArrow{Expr: CIdent("env"), Field: slotName(v)}
		}
	}

	for i, p := range ll.Params {
		if !ll.Used[i] {
			continue
		}
		body = append(body, &CExprStmt{Expr: &CMacroCall{
			Name: "OBJECT_CELL_OBJ_NEW",
			Args: []CExpr{CIdent(slotName(p)), CIdent(argParamName(p))},
		}})
	}

	if err := emitTail(ctx, ll.Body, slots, &body); err != nil {
		return nil, err
	}
	body = append(body, &CExprStmt{Expr: &CFuncCall{Func: CIdent("__builtin_unreachable")}})

	return &CFun{Name: lambdaFuncName(id), Ret: tVoid, Args: params, Body: body}, nil
}

func mainLambdaDef(ctx *context, prog lifted.LExpr) (*CFun, error) {
	params := []CParam{{Name: "arg_unused", Type: tObj}, {Name: "env_unused", Type: tObjEnv}}
	var body []CStmt
	if err := emitTail(ctx, prog, slotTable{}, &body); err != nil {
		return nil, err
	}
	body = append(body, &CExprStmt{Expr: &CFuncCall{Func: CIdent("__builtin_unreachable")}})
	return &CFun{Name: "main_lambda", Ret: tVoid, Args: params, Body: body}, nil
}

func writeMainFunction(w *writer) {
	w.writeLine("int main(void) {")
	w.indent++
	w.writeLine("%s;", typeWithName(tObj, "entry_point"))
	w.writeLine("%s;", exprString(&CMacroCall{
		Name: "OBJECT_CLOSURE_ONE_NEW",
		Args: []CExpr{CIdent("entry_point"), CIdent("main_lambda"), CIdent("NULL")},
	}))
	w.writeLine("scheme_start((struct thunk *) entry_point);")
	w.writeLine("return 0;")
	w.indent--
	w.writeLine("}")
}

// emitTail emits a control-position node (always If, SetThen, CallOne or
// CallTwo per the CPS tail-call invariant) as the remaining statements of
// the enclosing function body.
func emitTail(ctx *context, e lifted.LExpr, slots slotTable, stmts *[]CStmt) error {
	switch n := e.(type) {
	case *lifted.CallOne:
		fn, err := emitValue(ctx, n.Func, slots, stmts)
		if err != nil {
			return err
		}
		arg, err := emitValue(ctx, n.Arg, slots, stmts)
		if err != nil {
			return err
		}
		*stmts = append(*stmts, &CExprStmt{Expr: &CMacroCall{Name: "call_closure_one", Args: []CExpr{fn, arg}}})
		return nil

	case *lifted.CallTwo:
		fn, err := emitValue(ctx, n.Func, slots, stmts)
		if err != nil {
			return err
		}
		arg, err := emitValue(ctx, n.Arg, slots, stmts)
		if err != nil {
			return err
		}
		cont, err := emitValue(ctx, n.Cont, slots, stmts)
		if err != nil {
			return err
		}
		*stmts = append(*stmts, &CExprStmt{Expr: &CMacroCall{Name: "call_closure_two", Args: []CExpr{fn, arg, cont}}})
		return nil

	case *lifted.If:
		cond, err := emitValue(ctx, n.Cond, slots, stmts)
		if err != nil {
			return err
		}
		var thenStmts, elseStmts []CStmt
		if err := emitTail(ctx, n.Then, slots, &thenStmts); err != nil {
			return err
		}
		if err := emitTail(ctx, n.Else, slots, &elseStmts); err != nil {
			return err
		}
		*stmts = append(*stmts, &CIf{
			Cond: &CFuncCall{Func: CIdent("obj_is_truthy"), Args: []CExpr{cond}},
			Then: thenStmts,
			Else: elseStmts,
		})
		return nil

	case *lifted.SetThen:
		value, err := emitValue(ctx, n.Value, slots, stmts)
		if err != nil {
			return err
		}
		cell, ok := slots[n.Var.ID]
		if !ok {
			return diag.NewInvariantError("emit", "set! target %s has no binding cell in scope", n.Var)
		}
		*stmts = append(*stmts, &CExprStmt{Expr: &CBinOp{
			Op:    " = ",
			Left:  &CArrow{Expr: &CCast{Expr: cell, Type: tCell}, Field: "val"},
			Right: value,
		}})
		return emitTail(ctx, n.Then, slots, stmts)

	default:
		return diag.NewInvariantError("emit", "non-tail-call node %T reached tail position", e)
	}
}

// emitValue emits an atomic value-position node (Var, Lit, BuiltinIdent
// or Lifted — the only LExpr variants that can appear as a call's
// function, argument or continuation, per the CPS invariant that every
// control construct is itself in tail position).
func emitValue(ctx *context, e lifted.LExpr, slots slotTable, stmts *[]CStmt) (CExpr, error) {
	switch n := e.(type) {
	case *lifted.Var:
		cell, ok := slots[n.Var.ID]
		if !ok {
			return nil, diag.NewInvariantError("emit", "free variable %s has no binding cell in scope", n.Var)
		}
		return &CArrow{Expr: &CCast{Expr: cell, Type: tCell}, Field: "val"}, nil

	case *lifted.Lit:
		return emitLiteral(ctx, n.Value, stmts), nil

	case *lifted.BuiltinIdent:
		return emitBuiltin(ctx, n.Name, stmts)

	case *lifted.Lifted:
		return emitLifted(ctx, n.ID, slots, stmts)

	default:
		return nil, diag.NewInvariantError("emit", "non-atomic node %T reached value position", e)
	}
}

func emitLiteral(ctx *context, lit names.Literal, stmts *[]CStmt) CExpr {
	switch v := lit.(type) {
	case names.VoidLit:
		return CIdent("NULL")
	case names.IntLit:
		name := ctx.tmp()
		*stmts = append(*stmts, &CExprStmt{Expr: &CMacroCall{Name: "OBJECT_INT_OBJ_NEW", Args: []CExpr{CIdent(name), CLitInt(int64(v))}}})
		return CIdent(name)
	case names.FloatLit:
		name := ctx.tmp()
		*stmts = append(*stmts, &CExprStmt{Expr: &CMacroCall{Name: "OBJECT_FLOAT_OBJ_NEW", Args: []CExpr{CIdent(name), CIdent(fmt.Sprintf("%g", float64(v)))}}})
		return CIdent(name)
	case names.StringLit:
		name := ctx.tmp()
		*stmts = append(*stmts, &CExprStmt{Expr: &CMacroCall{Name: "OBJECT_STRING_OBJ_NEW", Args: []CExpr{CIdent(name), CLitStr(string(v))}}})
		return CIdent(name)
	default:
		return CIdent("NULL")
	}
}

func emitBuiltin(ctx *context, name string, stmts *[]CStmt) (CExpr, error) {
	b, err := lookupBuiltin(name)
	if err != nil {
		return nil, err
	}
	ctorMacro := "OBJECT_CLOSURE_TWO_NEW"
	if b.Kind == runtime.KindOne {
		ctorMacro = "OBJECT_CLOSURE_ONE_NEW"
	}
	out := ctx.tmp()
	*stmts = append(*stmts, &CExprStmt{Expr: &CMacroCall{
		Name: ctorMacro,
		Args: []CExpr{CIdent(out), CIdent(b.Symbol), CIdent("NULL")},
	}})
	return CIdent(out), nil
}

func emitLifted(ctx *context, id lifted.LambdaID, slots slotTable, stmts *[]CStmt) (CExpr, error) {
	target, ok := ctx.lambdas[id]
	if !ok {
		return nil, diag.NewInvariantError("emit", "lifted lambda %d has no entry in the lambda table", id)
	}

	envArg := CExpr(CIdent("NULL"))
	if len(target.FreeVars) > 0 {
		envName := ctx.tmp()
		args := make([]CExpr, 0, len(target.FreeVars)+2)
		args = append(args, CIdent(envName), CIdent(envStructName(id)))
		for _, v := range target.FreeVars {
			cell, ok := slots[v.ID]
			if !ok {
				return nil, diag.NewInvariantError("emit", "captured variable %s has no binding cell in scope", v)
			}
			args = append(args, cell)
		}
		*stmts = append(*stmts, &CExprStmt{Expr: &CMacroCall{Name: "OBJECT_ENV_OBJ_NEW", Args: args}})
		envArg = CIdent(envName)
	}

	ctorMacro := "OBJECT_CLOSURE_TWO_NEW"
	if target.Kind == lifted.KindOne {
		ctorMacro = "OBJECT_CLOSURE_ONE_NEW"
	}
	closureName := ctx.tmp()
	*stmts = append(*stmts, &CExprStmt{Expr: &CMacroCall{
		Name: ctorMacro,
		Args: []CExpr{CIdent(closureName), CIdent(lambdaFuncName(id)), envArg},
	}})
	return CIdent(closureName), nil
}
