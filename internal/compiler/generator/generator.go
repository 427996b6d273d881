// Package generator emits Python source text from a type-checked AST,
// following the teacher's strings.Builder-based, file-per-concern
// assembly style (gen_vars.go/gen_models.go/... in the original; here
// gen_prelude.go/gen_expr.go/gen_stmt.go/gen_decl.go/gen_routine.go).
package generator

import (
	"strings"

	"github.com/halvardsen/pseudogo/internal/compiler/ast"
	"github.com/halvardsen/pseudogo/internal/compiler/sema"
)

// Generator accumulates emitted Python text. Unlike the teacher's target
// (Go, reformatted by go/format.Source as a final pass), Python has no
// such formatter in this stack, so indentation is tracked and emitted
// manually throughout — the same manual discipline the teacher's own
// transpiler used before its output passed through go/format.
type Generator struct {
	b       strings.Builder
	indent  int
	result  *sema.Result
	caseSeq int
	boxSeq  int
}

// New creates a Generator.
func New() *Generator {
	return &Generator{}
}

func (g *Generator) indentStr() string {
	return strings.Repeat("    ", g.indent)
}

func (g *Generator) emit(line string) {
	g.b.WriteString(g.indentStr())
	g.b.WriteString(line)
	g.b.WriteString("\n")
}

func (g *Generator) emitBlank() {
	g.b.WriteString("\n")
}

// Generate assembles the full Python module: fixed prelude, then every
// top-level procedure/function in source order, then a __main__() wrapper
// over the top-level statements, then the invocation — spec.md §4.4's
// emission order, modeled on the teacher's generateWithComponents
// section-by-section assembly.
func (g *Generator) Generate(prog *ast.Program, result *sema.Result) (string, error) {
	g.result = result
	g.b.WriteString(prelude)

	var routines []ast.Statement
	var topLevel []ast.Statement
	for _, stmt := range prog.Statements {
		switch stmt.(type) {
		case *ast.ProcedureDecl, *ast.FunctionDecl:
			routines = append(routines, stmt)
		default:
			topLevel = append(topLevel, stmt)
		}
	}

	for _, r := range routines {
		g.genRoutine(r)
		g.emitBlank()
	}

	g.emit("def __main__():")
	g.indent++
	if len(topLevel) == 0 {
		g.emit("pass")
	} else {
		g.genBlock(topLevel)
	}
	g.indent--
	g.emitBlank()
	g.emitBlank()

	g.emit(`if __name__ == "__main__":`)
	g.indent++
	g.emit("try:")
	g.indent++
	g.emit("__main__()")
	g.indent--
	g.emit("except Exception:")
	g.indent++
	g.emit("import traceback")
	g.emit("traceback.print_exc()")
	g.emit("sys.exit(1)")
	g.indent--
	g.indent--
	g.emitBlank()
	g.emit("print(\"\\n\".join(__stdout_lines))")

	return g.b.String(), nil
}

// genBlock emits each statement of stmts at the current indent level,
// preserving source order (spec.md §5's "AST walk order is deterministic
// document order").
func (g *Generator) genBlock(stmts []ast.Statement) {
	for _, s := range stmts {
		g.genStmt(s)
	}
}
