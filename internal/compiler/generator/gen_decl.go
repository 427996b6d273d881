package generator

import (
	"fmt"
	"strings"

	"github.com/halvardsen/pseudogo/internal/compiler/ast"
)

// scalarDefault returns the Python default-value literal for a freshly
// declared scalar of the given basic type name, per spec.md §4.4.
func scalarDefault(basic string) string {
	switch basic {
	case "INTEGER":
		return "0"
	case "REAL":
		return "0.0"
	case "CHAR":
		return "''"
	case "STRING":
		return "\"\""
	case "BOOLEAN":
		return "False"
	default:
		return "None"
	}
}

// genDeclare lowers a DECLARE statement into one binding per name: a
// default-value assignment for scalars, or an __PseudoArray constructor
// call for arrays.
func (g *Generator) genDeclare(s *ast.DeclareStmt) {
	for _, name := range s.Names {
		if s.Type.IsArray {
			dims := make([]string, len(s.Type.Dims))
			for i, dim := range s.Type.Dims {
				dims[i] = fmt.Sprintf("(%d, %d)", dim.Lower, dim.Upper)
			}
			g.emit(name + " = __PseudoArray([" + strings.Join(dims, ", ") + "], " + scalarDefault(s.Type.Element) + ")")
		} else {
			g.emit(name + " = " + scalarDefault(s.Type.Basic))
		}
	}
}

func (g *Generator) genConstant(s *ast.ConstantStmt) {
	g.emit(s.Name + " = " + g.genExpr(s.Value))
}
