package generator

import (
	"strings"
	"testing"

	"github.com/halvardsen/pseudogo/internal/compiler/lexer"
	"github.com/halvardsen/pseudogo/internal/compiler/parser"
	"github.com/halvardsen/pseudogo/internal/compiler/sema"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	toks, lexDiags := lexer.AllTokens(src)
	if lexDiags.HasErrors() {
		t.Fatalf("lex errors: %v", lexDiags.Items())
	}
	prog, parseDiags := parser.Parse(toks)
	if parseDiags.HasErrors() {
		t.Fatalf("parse errors: %v", parseDiags.Items())
	}
	result := sema.Analyze(prog)
	if result.Diagnostics.HasErrors() {
		t.Fatalf("sema errors: %v", result.Diagnostics.Items())
	}
	out, err := New().Generate(prog, result)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	return out
}

func TestGeneratePreludeIsAlwaysEmitted(t *testing.T) {
	out := generate(t, "DECLARE X : INTEGER\n")
	if !strings.Contains(out, "class __PseudoArray") {
		t.Fatalf("expected prelude to define __PseudoArray, got:\n%s", out)
	}
	if !strings.Contains(out, "def __main__():") {
		t.Fatalf("expected a __main__ wrapper, got:\n%s", out)
	}
}

func TestGenerateDeclareAndAssign(t *testing.T) {
	out := generate(t, "DECLARE X : INTEGER\nX <- 5\n")
	if !strings.Contains(out, "X = 0") {
		t.Fatalf("expected default-value declaration, got:\n%s", out)
	}
	if !strings.Contains(out, "X = (5)") && !strings.Contains(out, "X = 5") {
		t.Fatalf("expected assignment of literal 5, got:\n%s", out)
	}
}

func TestGenerateArrayDeclareUsesPseudoArray(t *testing.T) {
	out := generate(t, "DECLARE Grid : ARRAY[1:3] OF INTEGER\n")
	if !strings.Contains(out, "Grid = __PseudoArray([(1, 3)], 0)") {
		t.Fatalf("expected __PseudoArray constructor call, got:\n%s", out)
	}
}

func TestGenerateConstantEmitsBinding(t *testing.T) {
	out := generate(t, "CONSTANT Pi <- 3\nOUTPUT Pi\n")
	if !strings.Contains(out, "Pi = 3") {
		t.Fatalf("expected CONSTANT binding to be emitted, got:\n%s", out)
	}
}

func TestGenerateOutputCallsOutputBuiltin(t *testing.T) {
	out := generate(t, `OUTPUT "Hello"` + "\n")
	if !strings.Contains(out, `__output("Hello")`) {
		t.Fatalf("expected __output call, got:\n%s", out)
	}
}

func TestGenerateInputCoercesDeclaredType(t *testing.T) {
	out := generate(t, "DECLARE X : INTEGER\nINPUT X\n")
	if !strings.Contains(out, `X = __coerce_input(__input(), "INTEGER")`) {
		t.Fatalf("expected coerced input, got:\n%s", out)
	}
}

func TestGenerateIfElseEndif(t *testing.T) {
	src := "DECLARE X : INTEGER\n" +
		"IF X > 0 THEN\n" +
		"  OUTPUT \"pos\"\n" +
		"ELSE\n" +
		"  OUTPUT \"non-pos\"\n" +
		"ENDIF\n"
	out := generate(t, src)
	if !strings.Contains(out, "if ((X) > (0)):") {
		t.Fatalf("expected if condition, got:\n%s", out)
	}
	if !strings.Contains(out, "else:") {
		t.Fatalf("expected else clause, got:\n%s", out)
	}
}

func TestGenerateCaseLowersToIfElifElse(t *testing.T) {
	src := "DECLARE X : INTEGER\n" +
		"CASE OF X\n" +
		"  1: OUTPUT \"one\"\n" +
		"  2 TO 4: OUTPUT \"few\"\n" +
		"  OTHERWISE: OUTPUT \"many\"\n" +
		"ENDCASE\n"
	out := generate(t, src)
	if !strings.Contains(out, "__case_0 = X") {
		t.Fatalf("expected synthetic case subject variable, got:\n%s", out)
	}
	if !strings.Contains(out, "if __case_0 == (1):") {
		t.Fatalf("expected single-value clause, got:\n%s", out)
	}
	if !strings.Contains(out, "elif (2) <= __case_0 <= (4):") {
		t.Fatalf("expected range clause, got:\n%s", out)
	}
	if !strings.Contains(out, "else:") {
		t.Fatalf("expected OTHERWISE as else, got:\n%s", out)
	}
}

func TestGenerateForLoopUsesInclusiveRange(t *testing.T) {
	src := "DECLARE I : INTEGER\n" +
		"FOR I <- 1 TO 10\n" +
		"  OUTPUT I\n" +
		"NEXT I\n"
	out := generate(t, src)
	if !strings.Contains(out, "for I in __inclusive_range(1, 10, 1):") {
		t.Fatalf("expected inclusive range loop, got:\n%s", out)
	}
}

func TestGenerateRepeatUntilBecomesWhileTrueBreak(t *testing.T) {
	src := "DECLARE X : INTEGER\n" +
		"REPEAT\n" +
		"  X <- X + 1\n" +
		"UNTIL X > 5\n"
	out := generate(t, src)
	if !strings.Contains(out, "while True:") {
		t.Fatalf("expected while True, got:\n%s", out)
	}
	if !strings.Contains(out, "if ((X) > (5)):") || !strings.Contains(out, "break") {
		t.Fatalf("expected terminal break condition, got:\n%s", out)
	}
}

func TestGenerateWhileDoEndwhile(t *testing.T) {
	src := "DECLARE X : INTEGER\n" +
		"WHILE X < 5 DO\n" +
		"  X <- X + 1\n" +
		"ENDWHILE\n"
	out := generate(t, src)
	if !strings.Contains(out, "while ((X) < (5)):") {
		t.Fatalf("expected while loop, got:\n%s", out)
	}
}

func TestGenerateFunctionEmitsDefAndReturn(t *testing.T) {
	src := "FUNCTION Square(N : INTEGER) RETURNS INTEGER\n" +
		"  RETURN N * N\n" +
		"ENDFUNCTION\n"
	out := generate(t, src)
	if !strings.Contains(out, "def Square(N):") {
		t.Fatalf("expected function def, got:\n%s", out)
	}
	if !strings.Contains(out, "return ((N) * (N))") {
		t.Fatalf("expected return expression, got:\n%s", out)
	}
}

func TestGenerateFunctionWithoutTrailingReturnGetsReturnNone(t *testing.T) {
	src := "FUNCTION Pick(N : INTEGER) RETURNS INTEGER\n" +
		"  IF N > 0 THEN\n" +
		"    RETURN 1\n" +
		"  ELSE\n" +
		"    RETURN 0\n" +
		"  ENDIF\n" +
		"ENDFUNCTION\n"
	out := generate(t, src)
	if !strings.Contains(out, "return None") {
		t.Fatalf("expected a trailing return None safety net, got:\n%s", out)
	}
}

func TestGenerateByRefProcedureBoxesScalarArgAtCallSite(t *testing.T) {
	src := "PROCEDURE Increment(BYREF N : INTEGER)\n" +
		"  N <- N + 1\n" +
		"ENDPROCEDURE\n" +
		"DECLARE Count : INTEGER\n" +
		"CALL Increment(Count)\n"
	out := generate(t, src)
	if !strings.Contains(out, "def Increment(N):") {
		t.Fatalf("expected procedure def, got:\n%s", out)
	}
	if !strings.Contains(out, "N = N[0]") {
		t.Fatalf("expected callee-side unboxing, got:\n%s", out)
	}
	if !strings.Contains(out, "= [Count]") {
		t.Fatalf("expected call-site boxing of Count, got:\n%s", out)
	}
	if !strings.Contains(out, "Count = __box0[0]") {
		t.Fatalf("expected writeback of the box into Count, got:\n%s", out)
	}
}

func TestGenerateByRefArrayParamSkipsBoxing(t *testing.T) {
	src := "PROCEDURE Fill(BYREF Values : ARRAY[1:3] OF INTEGER)\n" +
		"  Values[1] <- 9\n" +
		"ENDPROCEDURE\n" +
		"DECLARE Nums : ARRAY[1:3] OF INTEGER\n" +
		"CALL Fill(Nums)\n"
	out := generate(t, src)
	if strings.Contains(out, "__box0") {
		t.Fatalf("array BYREF parameters should not be boxed, got:\n%s", out)
	}
	if !strings.Contains(out, "Fill(Nums)") {
		t.Fatalf("expected array argument passed directly, got:\n%s", out)
	}
}

func TestGenerateCallStatementWithLiteralArgsNeedsNoBoxing(t *testing.T) {
	src := "PROCEDURE Greet(Name : STRING)\n" +
		"  OUTPUT Name\n" +
		"ENDPROCEDURE\n" +
		"CALL Greet(\"World\")\n"
	out := generate(t, src)
	if !strings.Contains(out, `Greet("World")`) {
		t.Fatalf("expected direct literal call, got:\n%s", out)
	}
}

func TestGenerateFileOperations(t *testing.T) {
	src := "OPENFILE \"data.txt\" FOR WRITE\n" +
		"WRITEFILE \"data.txt\", \"line\"\n" +
		"CLOSEFILE \"data.txt\"\n"
	out := generate(t, src)
	if !strings.Contains(out, `__openfile("data.txt", "WRITE")`) {
		t.Fatalf("expected __openfile call, got:\n%s", out)
	}
	if !strings.Contains(out, `__writefile("data.txt", "line")`) {
		t.Fatalf("expected __writefile call, got:\n%s", out)
	}
	if !strings.Contains(out, `__closefile("data.txt")`) {
		t.Fatalf("expected __closefile call, got:\n%s", out)
	}
}
