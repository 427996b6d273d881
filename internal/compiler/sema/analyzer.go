package sema

import (
	"strings"

	"github.com/halvardsen/pseudogo/internal/compiler/ast"
	"github.com/halvardsen/pseudogo/internal/compiler/types"
	"github.com/halvardsen/pseudogo/internal/diag"
)

// fileMode tracks a virtual file's currently open mode, keyed by the
// literal string naming it (spec.md §4.3: "a mutable map openFiles:
// literalName → mode").
type fileMode string

const (
	modeRead  fileMode = "READ"
	modeWrite fileMode = "WRITE"
)

// Analyzer walks a parsed Program and produces a Result: the registered
// routine signature tables, a flattened variable-type table for the
// generator, and every SEM### diagnostic raised along the way. Grounded on
// internal/compiler/resolver's two-pass (register-then-walk) shape,
// generalized from its flat component cache to a chained Scope and from its
// errors []string accumulator to diag.List.
type Analyzer struct {
	result   *Result
	funcRet  *types.StaticType // non-nil while walking inside a function body
	hasError bool
}

// Analyze runs the full semantic pass over prog.
func Analyze(prog *ast.Program) *Result {
	a := &Analyzer{result: newResult()}
	a.registerRoutines(prog.Statements)

	global := NewScope()
	openFiles := map[string]fileMode{}
	a.walkBlock(global, openFiles, prog.Statements)

	return a.result
}

// registerRoutines is the pre-pass: register every top-level procedure and
// function by name, flagging duplicate or cross-kind collisions (SEM001).
func (a *Analyzer) registerRoutines(stmts []ast.Statement) {
	seen := map[string]bool{}
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.ProcedureDecl:
			if seen[strings.ToUpper(s.Name)] {
				a.result.Diagnostics.Error("SEM001", "Duplicate routine name "+s.Name, s.Sp)
				continue
			}
			seen[strings.ToUpper(s.Name)] = true
			a.result.Procedures[strings.ToUpper(s.Name)] = a.buildSignature(s.Name, s.Params, nil)
		case *ast.FunctionDecl:
			if seen[strings.ToUpper(s.Name)] {
				a.result.Diagnostics.Error("SEM001", "Duplicate routine name "+s.Name, s.Sp)
				continue
			}
			seen[strings.ToUpper(s.Name)] = true
			ret := resolveType(s.ReturnType)
			a.result.Functions[strings.ToUpper(s.Name)] = a.buildSignature(s.Name, s.Params, &ret)
			if !containsReturn(s.Body) {
				a.result.Diagnostics.Error("SEM011", "Function "+s.Name+" has no RETURN statement", s.Sp)
			}
		}
	}
}

func (a *Analyzer) buildSignature(name string, params []*ast.Param, ret *types.StaticType) *RoutineSignature {
	sig := &RoutineSignature{Name: name}
	for _, p := range params {
		sig.Params = append(sig.Params, ParamSig{Name: p.Name, Type: resolveType(p.Type), ByRef: p.ByRef})
	}
	if ret != nil {
		sig.IsFunction = true
		sig.ReturnType = *ret
	}
	return sig
}

// resolveType converts a parsed TypeRef into a static type; nil is treated
// as unknown (recovery from a prior parse error).
func resolveType(t *ast.TypeRef) types.StaticType {
	if t == nil {
		return types.TUnknown
	}
	if t.IsArray {
		return types.NewArray(t.Element, len(t.Dims))
	}
	switch t.Basic {
	case "INTEGER":
		return types.TInteger
	case "REAL":
		return types.TReal
	case "CHAR":
		return types.TChar
	case "STRING":
		return types.TString
	case "BOOLEAN":
		return types.TBoolean
	default:
		return types.TUnknown
	}
}

// containsReturn reports whether body contains a RETURN statement at any
// nesting depth, a structural (not control-flow) approximation of spec.md
// §9's "every function body must contain a RETURN" rule.
func containsReturn(body []ast.Statement) bool {
	for _, stmt := range body {
		if containsReturnStmt(stmt) {
			return true
		}
	}
	return false
}

func containsReturnStmt(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.IfStmt:
		return containsReturn(s.Then) || containsReturn(s.Else)
	case *ast.CaseStmt:
		for _, c := range s.Clauses {
			if c.Body != nil && containsReturnStmt(c.Body) {
				return true
			}
		}
		return false
	case *ast.ForStmt:
		return containsReturn(s.Body)
	case *ast.WhileStmt:
		return containsReturn(s.Body)
	case *ast.RepeatStmt:
		return containsReturn(s.Body)
	default:
		return false
	}
}

// walkBlock runs the statement-level checks of spec.md §4.3 over stmts in
// scope against the given file-mode table. Callers that enter a nested
// block pass a shallow copy (copyFileModes), so modifications inside that
// block do not leak to the enclosing one.
func (a *Analyzer) walkBlock(scope *Scope, openFiles map[string]fileMode, stmts []ast.Statement) {
	for _, stmt := range stmts {
		a.walkStmt(scope, openFiles, stmt)
	}
}

func copyFileModes(m map[string]fileMode) map[string]fileMode {
	c := make(map[string]fileMode, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func (a *Analyzer) walkStmt(scope *Scope, openFiles map[string]fileMode, stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.DeclareStmt:
		t := resolveType(s.Type)
		for _, name := range s.Names {
			if !scope.Define(&Symbol{Name: name, Type: t}) {
				a.result.Diagnostics.Error("SEM002", "Duplicate declaration of "+name, s.Sp)
				continue
			}
			a.result.VarTypes[name] = t
		}

	case *ast.ConstantStmt:
		t := a.typeOf(scope, s.Value)
		if !scope.Define(&Symbol{Name: s.Name, Type: t, IsConst: true}) {
			a.result.Diagnostics.Error("SEM002", "Duplicate declaration of "+s.Name, s.Sp)
			return
		}
		a.result.VarTypes[s.Name] = t

	case *ast.AssignStmt:
		a.checkAssignTarget(scope, s.Target)
		valType := a.typeOf(scope, s.Value)
		targetType := a.typeOf(scope, s.Target)
		if !types.AssignableTo(valType, targetType) {
			a.result.Diagnostics.Error("SEM003", "Cannot assign "+valType.String()+" to "+targetType.String(), s.Sp)
		}

	case *ast.InputStmt:
		a.checkAssignTarget(scope, s.Target)

	case *ast.OutputStmt:
		for _, v := range s.Values {
			a.typeOf(scope, v)
		}

	case *ast.IfStmt:
		condType := a.typeOf(scope, s.Cond)
		if !condType.IsUnknown() && !condType.Equal(types.TBoolean) {
			a.result.Diagnostics.Error("SEM004", "IF condition must be BOOLEAN", s.Cond.Span())
		}
		a.walkBlock(scope.Child(), copyFileModes(openFiles), s.Then)
		if s.Else != nil {
			a.walkBlock(scope.Child(), copyFileModes(openFiles), s.Else)
		}

	case *ast.CaseStmt:
		a.typeOf(scope, s.Subject)
		for _, c := range s.Clauses {
			if c.Value != nil {
				a.typeOf(scope, c.Value)
			}
			if c.IsRange {
				a.typeOf(scope, c.Low)
				a.typeOf(scope, c.High)
			}
			if c.Body != nil {
				a.walkStmt(scope.Child(), copyFileModes(openFiles), c.Body)
			}
		}

	case *ast.ForStmt:
		sym, ok := scope.Lookup(s.Iterator)
		if !ok {
			a.result.Diagnostics.Error("SEM005", "FOR loop variable "+s.Iterator+" is not declared", s.Sp)
		} else if !sym.Type.IsUnknown() && !sym.Type.Equal(types.TInteger) {
			a.result.Diagnostics.Error("SEM006", "FOR loop variable "+s.Iterator+" must be INTEGER", s.Sp)
		}
		a.checkNumeric(scope, s.Start, "SEM007")
		a.checkNumeric(scope, s.End, "SEM007")
		if s.Step != nil {
			a.checkNumeric(scope, s.Step, "SEM007")
		}
		a.walkBlock(scope.Child(), copyFileModes(openFiles), s.Body)

	case *ast.RepeatStmt:
		a.walkBlock(scope.Child(), copyFileModes(openFiles), s.Body)
		condType := a.typeOf(scope, s.Cond)
		if !condType.IsUnknown() && !condType.Equal(types.TBoolean) {
			a.result.Diagnostics.Error("SEM008", "UNTIL condition must be BOOLEAN", s.Cond.Span())
		}

	case *ast.WhileStmt:
		condType := a.typeOf(scope, s.Cond)
		if !condType.IsUnknown() && !condType.Equal(types.TBoolean) {
			a.result.Diagnostics.Error("SEM009", "WHILE condition must be BOOLEAN", s.Cond.Span())
		}
		a.walkBlock(scope.Child(), copyFileModes(openFiles), s.Body)

	case *ast.ProcedureDecl:
		a.walkRoutineBody(scope, s.Params, s.Body, nil)

	case *ast.FunctionDecl:
		ret := resolveType(s.ReturnType)
		a.walkRoutineBody(scope, s.Params, s.Body, &ret)

	case *ast.CallStmt:
		a.checkCall(scope, s.Name, s.Args, s.Sp, true)

	case *ast.ReturnStmt:
		if a.funcRet == nil {
			a.result.Diagnostics.Error("SEM013", "RETURN used outside a function body", s.Sp)
			if s.Value != nil {
				a.typeOf(scope, s.Value)
			}
			return
		}
		var valType types.StaticType
		if s.Value != nil {
			valType = a.typeOf(scope, s.Value)
		} else {
			valType = types.TUnknown
		}
		if !types.AssignableTo(valType, *a.funcRet) {
			a.result.Diagnostics.Error("SEM014", "RETURN type "+valType.String()+" does not match declared return type "+a.funcRet.String(), s.Sp)
		}

	case *ast.OpenFileStmt:
		a.typeOf(scope, s.File)
		if lit, ok := literalFileName(s.File); ok {
			mode := modeRead
			if s.Mode == ast.FileWrite {
				mode = modeWrite
			}
			openFiles[lit] = mode
		}

	case *ast.ReadFileStmt:
		a.typeOf(scope, s.File)
		a.checkAssignTarget(scope, s.Target)
		if lit, ok := literalFileName(s.File); ok {
			if mode, open := openFiles[lit]; open && mode == modeWrite {
				a.result.Diagnostics.Error("SEM015", "Cannot READFILE "+lit+": currently open for WRITE", s.Sp)
			}
		}

	case *ast.WriteFileStmt:
		a.typeOf(scope, s.File)
		a.typeOf(scope, s.Value)
		if lit, ok := literalFileName(s.File); ok {
			if mode, open := openFiles[lit]; open && mode == modeRead {
				a.result.Diagnostics.Error("SEM016", "Cannot WRITEFILE "+lit+": currently open for READ", s.Sp)
			}
		}

	case *ast.CloseFileStmt:
		a.typeOf(scope, s.File)
		if lit, ok := literalFileName(s.File); ok {
			delete(openFiles, lit)
		}

	case *ast.BadStmt:
		// already reported by the parser; nothing to check.
	}
}

func (a *Analyzer) walkRoutineBody(outer *Scope, params []*ast.Param, body []ast.Statement, ret *types.StaticType) {
	child := outer.Child()
	for _, p := range params {
		if !child.Define(&Symbol{Name: p.Name, Type: resolveType(p.Type), ByRef: p.ByRef}) {
			a.result.Diagnostics.Error("SEM010", "Duplicate parameter name "+p.Name, p.Sp)
		} else {
			a.result.VarTypes[p.Name] = resolveType(p.Type)
		}
	}
	savedRet := a.funcRet
	a.funcRet = ret
	a.walkBlock(child, map[string]fileMode{}, body)
	a.funcRet = savedRet
}

func (a *Analyzer) checkNumeric(scope *Scope, expr ast.Expression, code string) {
	t := a.typeOf(scope, expr)
	if !t.IsUnknown() && !t.IsNumeric() {
		a.result.Diagnostics.Error(code, "Expected a numeric value", expr.Span())
	}
}

func (a *Analyzer) checkAssignTarget(scope *Scope, target ast.Expression) {
	switch t := target.(type) {
	case *ast.Ident:
		sym, ok := scope.Lookup(t.Name)
		if !ok {
			a.result.Diagnostics.Error("SEM019", "Undeclared identifier "+t.Name, t.Sp)
			return
		}
		if sym.IsConst {
			a.result.Diagnostics.Error("SEM025", "Cannot assign to constant "+t.Name, t.Sp)
		}
	case *ast.ArrayAccess:
		a.typeOf(scope, t)
	}
}

func literalFileName(expr ast.Expression) (string, bool) {
	lit, ok := expr.(*ast.Literal)
	if !ok || lit.Kind != ast.LitString {
		return "", false
	}
	return lit.Str, true
}

// checkCall validates a call against the built-in table first, then the
// user procedure/function tables, per spec.md §4.3. asStatement distinguishes
// CALL-statement targets (must be a procedure, SEM012) from expression calls.
func (a *Analyzer) checkCall(scope *Scope, name string, args []ast.Expression, sp diag.Span, asStatement bool) types.StaticType {
	argTypes := make([]types.StaticType, len(args))
	for i, arg := range args {
		argTypes[i] = a.typeOf(scope, arg)
	}

	upper := strings.ToUpper(name)
	if bi, ok := builtinSignatures[upper]; ok {
		a.checkArgTypes(bi.params, argTypes, sp)
		return bi.result
	}

	if sig, ok := a.result.Functions[upper]; ok {
		if asStatement {
			a.result.Diagnostics.Error("SEM012", name+" is a function, not a procedure", sp)
		}
		a.checkParamTypes(sig.Params, argTypes, sp)
		return sig.ReturnType
	}

	if sig, ok := a.result.Procedures[upper]; ok {
		if !asStatement {
			a.result.Diagnostics.Error("SEM024", name+" is a procedure, not a function", sp)
			return types.TUnknown
		}
		a.checkParamTypes(sig.Params, argTypes, sp)
		return types.TUnknown
	}

	if asStatement {
		a.result.Diagnostics.Error("SEM012", "Unknown procedure "+name, sp)
	} else {
		a.result.Diagnostics.Error("SEM024", "Unknown function or built-in "+name, sp)
	}
	return types.TUnknown
}

func (a *Analyzer) checkArgTypes(params, args []types.StaticType, sp diag.Span) {
	if len(params) != len(args) {
		a.result.Diagnostics.Error("SEM017", "Wrong number of arguments", sp)
		return
	}
	for i, want := range params {
		if !args[i].IsUnknown() && !types.AssignableTo(args[i], want) {
			a.result.Diagnostics.Error("SEM018", "Argument "+want.String()+" expected, got "+args[i].String(), sp)
		}
	}
}

func (a *Analyzer) checkParamTypes(params []ParamSig, args []types.StaticType, sp diag.Span) {
	if len(params) != len(args) {
		a.result.Diagnostics.Error("SEM017", "Wrong number of arguments", sp)
		return
	}
	for i, p := range params {
		if !args[i].IsUnknown() && !types.AssignableTo(args[i], p.Type) {
			a.result.Diagnostics.Error("SEM018", "Argument "+p.Type.String()+" expected, got "+args[i].String(), sp)
		}
	}
}
