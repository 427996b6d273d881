package generator

import (
	"strings"

	"github.com/halvardsen/pseudogo/internal/compiler/ast"
)

// genRoutine emits a PROCEDURE or FUNCTION as a top-level Python def.
// BYREF scalar parameters are unboxed from their single-element list cell
// (see SPEC_FULL.md's BYREF supplement) at the top of the body, and the
// local's final value is stored back into the cell when the def exits; BYREF
// array/record-shaped parameters need no boxing since __PseudoArray is
// already reference-shaped.
func (g *Generator) genRoutine(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ProcedureDecl:
		g.genDef(s.Name, s.Params, s.Body, false)
	case *ast.FunctionDecl:
		g.genDef(s.Name, s.Params, s.Body, true)
	}
}

func (g *Generator) genDef(name string, params []*ast.Param, body []ast.Statement, isFunction bool) {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	g.emit("def " + name + "(" + strings.Join(names, ", ") + "):")
	g.indent++

	var refs []string
	for _, p := range params {
		if p.ByRef && (p.Type == nil || !p.Type.IsArray) {
			g.emit("__ref_" + p.Name + " = " + p.Name)
			g.emit(p.Name + " = " + p.Name + "[0]")
			refs = append(refs, p.Name)
		}
	}
	if len(refs) > 0 {
		g.emit("try:")
		g.indent++
	}

	if len(body) == 0 {
		if isFunction {
			g.emit("return None")
		} else {
			g.emit("pass")
		}
	} else {
		g.genBlock(body)
		if isFunction && !bodyEndsInReturn(body) {
			g.emit("return None")
		}
	}
	if len(refs) > 0 {
		g.indent--
		g.emit("finally:")
		g.indent++
		for _, n := range refs {
			g.emit("__ref_" + n + "[0] = " + n)
		}
		g.indent--
	}
	g.indent--
}

// bodyEndsInReturn reports whether the last top-level statement of body is
// a RETURN, used to decide whether a trailing "return None" is needed so
// every code path through the emitted def has an explicit return.
func bodyEndsInReturn(body []ast.Statement) bool {
	if len(body) == 0 {
		return false
	}
	_, ok := body[len(body)-1].(*ast.ReturnStmt)
	return ok
}
