package compiler

import (
	"strings"
	"testing"
)

func codes(r CompileResult) []string {
	out := make([]string, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		out[i] = d.Code
	}
	return out
}

func hasCode(cs []string, want string) bool {
	for _, c := range cs {
		if c == want {
			return true
		}
	}
	return false
}

// TestCompileTotalsHappyPath is spec.md §8 scenario 1.
func TestCompileTotalsHappyPath(t *testing.T) {
	src := "DECLARE Total : INTEGER\n" +
		"DECLARE Index : INTEGER\n" +
		"FOR Index <- 1 TO 3\n" +
		"    Total <- Total + Index\n" +
		"NEXT Index\n" +
		"OUTPUT Total\n"
	r := Compile(CompileRequest{Source: src, Filename: "totals.pseudo", Strict: true})
	if !r.Success {
		t.Fatalf("expected success, got diagnostics: %v", r.Diagnostics)
	}
	if r.ASTJSON == "" {
		t.Fatal("expected ASTJSON to be populated")
	}
	want := "for Index in __inclusive_range(1, 3, 1):"
	if !strings.Contains(r.PythonCode, want) {
		t.Fatalf("expected %q in generated code, got:\n%s", want, r.PythonCode)
	}
	if !strings.Contains(r.PythonCode, "__output(Total)") {
		t.Fatalf("expected __output(Total), got:\n%s", r.PythonCode)
	}
}

// TestCompileMalformedIfReportsSyn018 is spec.md §8 scenario 2.
func TestCompileMalformedIfReportsSyn018(t *testing.T) {
	src := "DECLARE Score : INTEGER\n" +
		"IF Score > 10 THEN\n" +
		"    OUTPUT \"High\"\n"
	r := Compile(CompileRequest{Source: src, Strict: true})
	if r.Success {
		t.Fatal("expected failure for an unterminated IF")
	}
	if !hasCode(codes(r), "SYN018") {
		t.Fatalf("want SYN018, got %v", codes(r))
	}
}

// TestCompileUndeclaredIdentifierReportsSem019 is spec.md §8 scenario 3.
func TestCompileUndeclaredIdentifierReportsSem019(t *testing.T) {
	r := Compile(CompileRequest{Source: "Value <- 7\n", Strict: true})
	if r.Success {
		t.Fatal("expected failure for an undeclared identifier")
	}
	if !hasCode(codes(r), "SEM019") {
		t.Fatalf("want SEM019, got %v", codes(r))
	}
}

// TestCompileArrayDimMismatchReportsSem027 is spec.md §8 scenario 4.
func TestCompileArrayDimMismatchReportsSem027(t *testing.T) {
	src := "DECLARE Grid : ARRAY[1:3, 1:3] OF INTEGER\n" +
		"DECLARE Value : INTEGER\n" +
		"Value <- Grid[1]\n"
	r := Compile(CompileRequest{Source: src, Strict: true})
	if r.Success {
		t.Fatal("expected failure for an array dimension mismatch")
	}
	if !hasCode(codes(r), "SEM027") {
		t.Fatalf("want SEM027, got %v", codes(r))
	}
}

// TestCompileFileModeViolationReportsSem015 is spec.md §8 scenario 5.
func TestCompileFileModeViolationReportsSem015(t *testing.T) {
	src := "DECLARE Line : STRING\n" +
		"OPENFILE \"FileA.txt\" FOR WRITE\n" +
		"READFILE \"FileA.txt\", Line\n"
	r := Compile(CompileRequest{Source: src, Strict: true})
	if r.Success {
		t.Fatal("expected failure for a file mode violation")
	}
	if !hasCode(codes(r), "SEM015") {
		t.Fatalf("want SEM015, got %v", codes(r))
	}
}

// TestCompileKeywordCasingReportsSyn001 is spec.md §8 scenario 6.
func TestCompileKeywordCasingReportsSyn001(t *testing.T) {
	r := Compile(CompileRequest{Source: "declare X : INTEGER\n", Strict: true})
	if r.Success {
		t.Fatal("expected failure for lowercase keyword casing")
	}
	if !hasCode(codes(r), "SYN001") {
		t.Fatalf("want SYN001, got %v", codes(r))
	}

	fixed := Compile(CompileRequest{Source: "DECLARE X : INTEGER\n", Strict: true})
	if !fixed.Success {
		t.Fatalf("expected uppercase keyword to compile cleanly, got %v", fixed.Diagnostics)
	}
}

func TestCompileDiagnosticsAreSortedByPosition(t *testing.T) {
	src := "declare X : INTEGER\n" +
		"Y <- 1\n"
	r := Compile(CompileRequest{Source: src, Strict: true})
	if r.Success {
		t.Fatal("expected failure")
	}
	for i := 1; i < len(r.Diagnostics); i++ {
		prev, cur := r.Diagnostics[i-1], r.Diagnostics[i]
		if cur.Span.Start.Line < prev.Span.Start.Line {
			t.Fatalf("diagnostics not sorted by line: %v", r.Diagnostics)
		}
	}
}
