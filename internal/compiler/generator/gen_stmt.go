package generator

import (
	"strconv"
	"strings"

	"github.com/halvardsen/pseudogo/internal/compiler/ast"
	"github.com/halvardsen/pseudogo/internal/compiler/types"
)

// genStmt lowers one statement, following the control-flow table of
// spec.md §4.4.
func (g *Generator) genStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.DeclareStmt:
		g.genDeclare(s)
	case *ast.ConstantStmt:
		g.genConstant(s)
	case *ast.AssignStmt:
		g.emit(g.genTarget(s.Target) + " = " + g.genExpr(s.Value))
	case *ast.InputStmt:
		g.genInput(s)
	case *ast.OutputStmt:
		g.genOutput(s)
	case *ast.IfStmt:
		g.genIf(s)
	case *ast.CaseStmt:
		g.genCase(s)
	case *ast.ForStmt:
		g.genFor(s)
	case *ast.RepeatStmt:
		g.genRepeat(s)
	case *ast.WhileStmt:
		g.genWhile(s)
	case *ast.ProcedureDecl, *ast.FunctionDecl:
		// handled at top level in source order; nested routine
		// declarations are not part of this grammar.
	case *ast.CallStmt:
		g.genCallStmt(s)
	case *ast.ReturnStmt:
		g.genReturn(s)
	case *ast.OpenFileStmt:
		g.emit("__openfile(" + g.genExpr(s.File) + ", " + strconv.Quote(string(s.Mode)) + ")")
	case *ast.ReadFileStmt:
		g.emit(g.genTarget(s.Target) + " = __readfile(" + g.genExpr(s.File) + ")")
	case *ast.WriteFileStmt:
		g.emit("__writefile(" + g.genExpr(s.File) + ", " + g.genExpr(s.Value) + ")")
	case *ast.CloseFileStmt:
		g.emit("__closefile(" + g.genExpr(s.File) + ")")
	case *ast.BadStmt:
		g.emit("pass  # recovered parse error")
	}
}

func (g *Generator) genInput(s *ast.InputStmt) {
	typeName := ""
	if ident, ok := s.Target.(*ast.Ident); ok {
		if t, known := g.result.VarTypes[ident.Name]; known && t.Kind == types.Basic {
			typeName = t.Name
		}
	}
	target := g.genTarget(s.Target)
	if typeName != "" {
		g.emit(target + " = __coerce_input(__input(), " + strconv.Quote(typeName) + ")")
	} else {
		g.emit(target + " = __input()")
	}
}

func (g *Generator) genOutput(s *ast.OutputStmt) {
	args := make([]string, len(s.Values))
	for i, v := range s.Values {
		args[i] = g.genExpr(v)
	}
	g.emit("__output(" + strings.Join(args, ", ") + ")")
}

func (g *Generator) genIf(s *ast.IfStmt) {
	g.emit("if " + g.genExpr(s.Cond) + ":")
	g.indent++
	if len(s.Then) == 0 {
		g.emit("pass")
	} else {
		g.genBlock(s.Then)
	}
	g.indent--
	if s.Else != nil {
		g.emit("else:")
		g.indent++
		if len(s.Else) == 0 {
			g.emit("pass")
		} else {
			g.genBlock(s.Else)
		}
		g.indent--
	}
}

// genCase evaluates the subject once into a synthetic variable, then
// lowers clauses into an if/elif chain, with OTHERWISE becoming a
// trailing else, per spec.md §4.4.
func (g *Generator) genCase(s *ast.CaseStmt) {
	name := "__case_" + strconv.Itoa(g.caseSeq)
	g.caseSeq++
	g.emit(name + " = " + g.genExpr(s.Subject))

	first := true
	for _, c := range s.Clauses {
		if c.Otherwise {
			g.emit("else:")
			g.indent++
			g.genClauseBody(c.Body)
			g.indent--
			continue
		}
		cond := g.genClauseCondition(name, c)
		kw := "elif"
		if first {
			kw = "if"
			first = false
		}
		g.emit(kw + " " + cond + ":")
		g.indent++
		g.genClauseBody(c.Body)
		g.indent--
	}
}

func (g *Generator) genClauseCondition(subject string, c ast.CaseClause) string {
	if c.IsRange {
		return "(" + g.genExpr(c.Low) + ") <= " + subject + " <= (" + g.genExpr(c.High) + ")"
	}
	return subject + " == (" + g.genExpr(c.Value) + ")"
}

func (g *Generator) genClauseBody(body ast.Statement) {
	if body == nil {
		g.emit("pass")
		return
	}
	g.genStmt(body)
}

func (g *Generator) genFor(s *ast.ForStmt) {
	step := "1"
	if s.Step != nil {
		step = g.genExpr(s.Step)
	}
	g.emit("for " + s.Iterator + " in __inclusive_range(" + g.genExpr(s.Start) + ", " + g.genExpr(s.End) + ", " + step + "):")
	g.indent++
	if len(s.Body) == 0 {
		g.emit("pass")
	} else {
		g.genBlock(s.Body)
	}
	g.indent--
}

func (g *Generator) genRepeat(s *ast.RepeatStmt) {
	g.emit("while True:")
	g.indent++
	if len(s.Body) == 0 {
		g.emit("pass")
	} else {
		g.genBlock(s.Body)
	}
	g.emit("if " + g.genExpr(s.Cond) + ":")
	g.indent++
	g.emit("break")
	g.indent--
	g.indent--
}

func (g *Generator) genWhile(s *ast.WhileStmt) {
	g.emit("while " + g.genExpr(s.Cond) + ":")
	g.indent++
	if len(s.Body) == 0 {
		g.emit("pass")
	} else {
		g.genBlock(s.Body)
	}
	g.indent--
}

// genCallStmt lowers a CALL statement. BYREF scalar arguments are boxed
// into a fresh single-element list at the call site (see SPEC_FULL.md's
// BYREF supplement) so the callee's unboxed mutations are visible again
// after the call; the box is then read back into the caller's variable.
func (g *Generator) genCallStmt(s *ast.CallStmt) {
	sig, hasSig := g.result.Procedures[strings.ToUpper(s.Name)]
	args := make([]string, len(s.Args))
	var writebacks []string
	for i, a := range s.Args {
		ident, isIdent := a.(*ast.Ident)
		if hasSig && isIdent && i < len(sig.Params) && sig.Params[i].ByRef && sig.Params[i].Type.Kind != types.Array {
			box := "__box" + strconv.Itoa(g.boxSeq)
			g.boxSeq++
			g.emit(box + " = [" + g.genExpr(a) + "]")
			args[i] = box
			writebacks = append(writebacks, ident.Name+" = "+box+"[0]")
			continue
		}
		args[i] = g.genExpr(a)
	}
	g.emit(s.Name + "(" + strings.Join(args, ", ") + ")")
	for _, w := range writebacks {
		g.emit(w)
	}
}

func (g *Generator) genReturn(s *ast.ReturnStmt) {
	if s.Value == nil {
		g.emit("return None")
		return
	}
	g.emit("return " + g.genExpr(s.Value))
}
