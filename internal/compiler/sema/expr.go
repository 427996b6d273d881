package sema

import (
	"strconv"

	"github.com/halvardsen/pseudogo/internal/compiler/ast"
	"github.com/halvardsen/pseudogo/internal/compiler/types"
)

// typeOf computes the static type of expr, reporting diagnostics for any
// violation along the way, per spec.md §4.3's expression typing rules.
func (a *Analyzer) typeOf(scope *Scope, expr ast.Expression) types.StaticType {
	switch e := expr.(type) {
	case *ast.Literal:
		switch e.Kind {
		case ast.LitInteger:
			return types.TInteger
		case ast.LitReal:
			return types.TReal
		case ast.LitString:
			return types.TString
		case ast.LitChar:
			return types.TChar
		case ast.LitBoolean:
			return types.TBoolean
		default:
			return types.TUnknown
		}

	case *ast.Ident:
		sym, ok := scope.Lookup(e.Name)
		if !ok {
			a.result.Diagnostics.Error("SEM019", "Undeclared identifier "+e.Name, e.Sp)
			return types.TUnknown
		}
		return sym.Type

	case *ast.ArrayAccess:
		sym, ok := scope.Lookup(e.Name)
		if !ok {
			a.result.Diagnostics.Error("SEM019", "Undeclared identifier "+e.Name, e.Sp)
			for _, idx := range e.Indices {
				a.typeOf(scope, idx)
			}
			return types.TUnknown
		}
		if sym.Type.Kind != types.Array {
			a.result.Diagnostics.Error("SEM027", e.Name+" is not an array", e.Sp)
			for _, idx := range e.Indices {
				a.typeOf(scope, idx)
			}
			return types.TUnknown
		}
		if len(e.Indices) != sym.Type.Dims {
			a.result.Diagnostics.Error("SEM027", "Expected "+strconv.Itoa(sym.Type.Dims)+" index dimensions, got "+strconv.Itoa(len(e.Indices)), e.Sp)
		}
		for _, idx := range e.Indices {
			idxType := a.typeOf(scope, idx)
			if !idxType.IsUnknown() && !idxType.Equal(types.TInteger) {
				a.result.Diagnostics.Error("SEM028", "Array index must be INTEGER", idx.Span())
			}
		}
		return types.StaticType{Kind: types.Basic, Name: sym.Type.Element}

	case *ast.UnaryExpr:
		operandType := a.typeOf(scope, e.Operand)
		switch e.Op {
		case "NOT":
			if !operandType.IsUnknown() && !operandType.Equal(types.TBoolean) {
				a.result.Diagnostics.Error("SEM020", "NOT requires a BOOLEAN operand", e.Sp)
			}
			return types.TBoolean
		case "-":
			if !operandType.IsUnknown() && !operandType.IsNumeric() {
				a.result.Diagnostics.Error("SEM021", "Unary '-' requires a numeric operand", e.Sp)
				return types.TUnknown
			}
			return operandType
		default:
			return types.TUnknown
		}

	case *ast.BinaryExpr:
		return a.typeOfBinary(scope, e)

	case *ast.CallExpr:
		return a.checkCall(scope, e.Name, e.Args, e.Sp, false)

	case *ast.BadExpr:
		return types.TUnknown

	default:
		return types.TUnknown
	}
}

func (a *Analyzer) typeOfBinary(scope *Scope, e *ast.BinaryExpr) types.StaticType {
	left := a.typeOf(scope, e.Left)
	right := a.typeOf(scope, e.Right)

	switch e.Op {
	case "+", "-", "*", "/", "^":
		if !left.IsUnknown() && !left.IsNumeric() || !right.IsUnknown() && !right.IsNumeric() {
			a.result.Diagnostics.Error("SEM022", "Arithmetic operator "+e.Op+" requires numeric operands", e.Sp)
			return types.TUnknown
		}
		return types.BinaryNumericResult(left, right, e.Op)

	case "&":
		// supplemented string-concatenation operator (SPEC_FULL.md).
		if !left.IsUnknown() && !left.Equal(types.TString) || !right.IsUnknown() && !right.Equal(types.TString) {
			a.result.Diagnostics.Error("SEM022", "'&' requires STRING operands", e.Sp)
		}
		return types.TString

	case "=", "<>", "<", "<=", ">", ">=":
		return types.TBoolean

	case "AND", "OR":
		if !left.IsUnknown() && !left.Equal(types.TBoolean) || !right.IsUnknown() && !right.Equal(types.TBoolean) {
			a.result.Diagnostics.Error("SEM023", e.Op+" requires BOOLEAN operands", e.Sp)
		}
		return types.TBoolean

	default:
		return types.TUnknown
	}
}
