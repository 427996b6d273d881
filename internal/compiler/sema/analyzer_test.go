package sema

import (
	"testing"

	"github.com/halvardsen/pseudogo/internal/compiler/lexer"
	"github.com/halvardsen/pseudogo/internal/compiler/parser"
)

func analyze(t *testing.T, src string) []string {
	t.Helper()
	toks, _ := lexer.AllTokens(src)
	prog, _ := parser.Parse(toks)
	result := Analyze(prog)
	var codes []string
	for _, d := range result.Diagnostics.Items() {
		codes = append(codes, d.Code)
	}
	return codes
}

func hasCode(codes []string, want string) bool {
	for _, c := range codes {
		if c == want {
			return true
		}
	}
	return false
}

func TestUndeclaredIdentifierEmitsSEM019(t *testing.T) {
	codes := analyze(t, "Value <- 7\n")
	if !hasCode(codes, "SEM019") {
		t.Fatalf("want SEM019, got %v", codes)
	}
}

func TestArrayDimensionMismatchEmitsSEM027(t *testing.T) {
	src := "DECLARE Grid : ARRAY[1:3, 1:3] OF INTEGER\n" +
		"DECLARE Value : INTEGER\n" +
		"Value <- Grid[1]\n"
	codes := analyze(t, src)
	if !hasCode(codes, "SEM027") {
		t.Fatalf("want SEM027, got %v", codes)
	}
}

func TestFileModeViolationEmitsSEM015(t *testing.T) {
	src := "DECLARE Line : STRING\n" +
		"OPENFILE \"FileA.txt\" FOR WRITE\n" +
		"READFILE \"FileA.txt\", Line\n"
	codes := analyze(t, src)
	if !hasCode(codes, "SEM015") {
		t.Fatalf("want SEM015, got %v", codes)
	}
}

func TestNonLiteralFileHandleSkipsModeCheck(t *testing.T) {
	src := "DECLARE F : STRING\nDECLARE Line : STRING\n" +
		"F <- \"FileA.txt\"\n" +
		"OPENFILE F FOR WRITE\n" +
		"READFILE F, Line\n"
	codes := analyze(t, src)
	if hasCode(codes, "SEM015") {
		t.Fatalf("non-literal handle should skip the mode check, got %v", codes)
	}
}

func TestAssignmentTypeMismatchEmitsSEM003(t *testing.T) {
	src := "DECLARE X : INTEGER\nX <- \"hi\"\n"
	codes := analyze(t, src)
	if !hasCode(codes, "SEM003") {
		t.Fatalf("want SEM003, got %v", codes)
	}
}

func TestRealAcceptsIntegerAssignment(t *testing.T) {
	src := "DECLARE X : REAL\nX <- 3\n"
	codes := analyze(t, src)
	if hasCode(codes, "SEM003") {
		t.Fatalf("REAL should accept INTEGER, got %v", codes)
	}
}

func TestIfConditionMustBeBooleanSEM004(t *testing.T) {
	src := "DECLARE X : INTEGER\nIF X THEN\n  OUTPUT X\nENDIF\n"
	codes := analyze(t, src)
	if !hasCode(codes, "SEM004") {
		t.Fatalf("want SEM004, got %v", codes)
	}
}

func TestForLoopVariableMustBeIntegerSEM006(t *testing.T) {
	src := "DECLARE X : REAL\nFOR X <- 1 TO 5\n  OUTPUT X\nNEXT X\n"
	codes := analyze(t, src)
	if !hasCode(codes, "SEM006") {
		t.Fatalf("want SEM006, got %v", codes)
	}
}

func TestFunctionWithoutReturnEmitsSEM011(t *testing.T) {
	src := "FUNCTION Square(N : INTEGER) RETURNS INTEGER\n" +
		"  OUTPUT N\n" +
		"ENDFUNCTION\n"
	codes := analyze(t, src)
	if !hasCode(codes, "SEM011") {
		t.Fatalf("want SEM011, got %v", codes)
	}
}

func TestFunctionWithReturnInsideIfSatisfiesSEM011(t *testing.T) {
	src := "FUNCTION Square(N : INTEGER) RETURNS INTEGER\n" +
		"  IF N > 0 THEN\n" +
		"    RETURN N * N\n" +
		"  ELSE\n" +
		"    RETURN 0\n" +
		"  ENDIF\n" +
		"ENDFUNCTION\n"
	codes := analyze(t, src)
	if hasCode(codes, "SEM011") {
		t.Fatalf("nested RETURN should satisfy the check, got %v", codes)
	}
}

func TestReturnOutsideFunctionEmitsSEM013(t *testing.T) {
	codes := analyze(t, "RETURN 5\n")
	if !hasCode(codes, "SEM013") {
		t.Fatalf("want SEM013, got %v", codes)
	}
}

func TestCallUnknownProcedureEmitsSEM012(t *testing.T) {
	codes := analyze(t, "CALL DoesNotExist()\n")
	if !hasCode(codes, "SEM012") {
		t.Fatalf("want SEM012, got %v", codes)
	}
}

func TestCallWrongArgumentCountEmitsSEM017(t *testing.T) {
	src := "PROCEDURE Greet(Name : STRING)\n" +
		"  OUTPUT Name\n" +
		"ENDPROCEDURE\n" +
		"CALL Greet()\n"
	codes := analyze(t, src)
	if !hasCode(codes, "SEM017") {
		t.Fatalf("want SEM017, got %v", codes)
	}
}

func TestAssignToConstantEmitsSEM025(t *testing.T) {
	src := "CONSTANT Pi <- 3.14\nPi <- 2\n"
	codes := analyze(t, src)
	if !hasCode(codes, "SEM025") {
		t.Fatalf("want SEM025, got %v", codes)
	}
}

func TestBuiltinDivisionAcceptsIntegerArgsWithoutSEM018(t *testing.T) {
	codes := analyze(t, "DECLARE X : REAL\nX <- DIV(5, 2)\n")
	if hasCode(codes, "SEM018") {
		t.Fatalf("DIV(5,2) arguments are valid INTEGERs, got %v", codes)
	}
}

func TestBuiltinRoundRequiresIntArgSEM018(t *testing.T) {
	codes := analyze(t, "DECLARE X : REAL\nX <- ROUND(3.456, \"two\")\n")
	if !hasCode(codes, "SEM018") {
		t.Fatalf("want SEM018 for a STRING passed where INTEGER expected, got %v", codes)
	}
}
