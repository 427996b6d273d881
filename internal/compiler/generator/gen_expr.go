package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/halvardsen/pseudogo/internal/compiler/ast"
)

// genExpr lowers an expression to Python text. Binary operators are
// aggressively parenthesized to preserve pseudocode evaluation order
// regardless of target precedence, per spec.md §4.4.
func (g *Generator) genExpr(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.Literal:
		return g.genLiteral(e)
	case *ast.Ident:
		return e.Name
	case *ast.UnaryExpr:
		return g.genUnary(e)
	case *ast.BinaryExpr:
		return g.genBinary(e)
	case *ast.CallExpr:
		return g.genCall(e)
	case *ast.ArrayAccess:
		return g.genArrayAccess(e)
	case *ast.BadExpr:
		return "None"
	default:
		return fmt.Sprintf("None  # unsupported expression: %T", expr)
	}
}

func (g *Generator) genLiteral(lit *ast.Literal) string {
	switch lit.Kind {
	case ast.LitInteger:
		return lit.Text
	case ast.LitReal:
		return lit.Text
	case ast.LitString:
		return strconv.Quote(lit.Str)
	case ast.LitChar:
		return strconv.Quote(lit.Str)
	case ast.LitBoolean:
		if lit.Bool {
			return "True"
		}
		return "False"
	default:
		return "None"
	}
}

func (g *Generator) genUnary(e *ast.UnaryExpr) string {
	switch e.Op {
	case "NOT":
		return "(not " + g.genExpr(e.Operand) + ")"
	case "-":
		return "(-" + g.genExpr(e.Operand) + ")"
	default:
		return g.genExpr(e.Operand)
	}
}

var pyOperator = map[string]string{
	"=": "==", "<>": "!=", "AND": "and", "OR": "or",
	"+": "+", "-": "-", "*": "*", "/": "/", "^": "**", "&": "&",
	"<": "<", "<=": "<=", ">": ">", ">=": ">=",
	"DIV": "DIV", "MOD": "MOD",
}

func (g *Generator) genBinary(e *ast.BinaryExpr) string {
	left := g.genExpr(e.Left)
	right := g.genExpr(e.Right)

	switch e.Op {
	case "DIV":
		return "__div(" + left + ", " + right + ")"
	case "MOD":
		return "__mod(" + left + ", " + right + ")"
	case "&":
		return "(str(" + left + ") + str(" + right + "))"
	case "^":
		return "((" + left + ") ** (" + right + "))"
	default:
		op, ok := pyOperator[e.Op]
		if !ok {
			op = e.Op
		}
		return "((" + left + ") " + op + " (" + right + "))"
	}
}

var builtinCallName = map[string]string{
	"DIV": "__div", "MOD": "__mod", "LENGTH": "__length",
	"LCASE": "__lcase", "UCASE": "__ucase", "SUBSTRING": "__substring",
	"ROUND": "__round", "RANDOM": "__random",
}

func (g *Generator) genCall(e *ast.CallExpr) string {
	name := e.Name
	if py, ok := builtinCallName[strings.ToUpper(e.Name)]; ok {
		name = py
	}
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = g.genExpr(a)
	}
	return name + "(" + strings.Join(args, ", ") + ")"
}

func (g *Generator) genArrayAccess(e *ast.ArrayAccess) string {
	indices := make([]string, len(e.Indices))
	for i, idx := range e.Indices {
		indices[i] = g.genExpr(idx)
	}
	return e.Name + "[" + strings.Join(indices, ", ") + "]"
}

// genTarget lowers an assignment/input target (Ident or ArrayAccess).
func (g *Generator) genTarget(target ast.Expression) string {
	return g.genExpr(target)
}
