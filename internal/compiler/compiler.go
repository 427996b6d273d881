// Package compiler is the façade over the lexer, parser, semantic
// analyzer, and code generator: one pure function from source text to
// diagnostics and, on success, emitted Python — modeled on the teacher's
// cmd/gmx/compile.go pipeline shape, generalized to gate on diagnostic
// severity instead of a bare error and to always return the merged,
// sorted diagnostic list.
package compiler

import (
	"encoding/json"

	"github.com/halvardsen/pseudogo/internal/compiler/ast"
	"github.com/halvardsen/pseudogo/internal/compiler/generator"
	"github.com/halvardsen/pseudogo/internal/compiler/lexer"
	"github.com/halvardsen/pseudogo/internal/compiler/parser"
	"github.com/halvardsen/pseudogo/internal/compiler/sema"
	"github.com/halvardsen/pseudogo/internal/diag"
)

// CompileRequest is the compiler's external input.
type CompileRequest struct {
	Source   string
	Filename string
	Strict   bool // reserved, always true
}

// CompileResult is the compiler's external output. ASTJSON is present
// even on failure (best-effort: whatever the parser produced before
// giving up); PythonCode is present iff Success.
type CompileResult struct {
	Success     bool
	Diagnostics []diag.Diagnostic
	ASTJSON     string
	PythonCode  string
}

// Compile runs lex -> parse -> analyze -> generate and merges every
// stage's diagnostics. It never panics on malformed source: parse and
// semantic errors are reported as diagnostics, not Go errors, and
// generation is attempted only when no stage reported an error.
func Compile(req CompileRequest) CompileResult {
	var all diag.List

	toks, lexDiags := lexer.AllTokens(req.Source)
	all.Merge(&lexDiags)

	prog, parseDiags := parser.Parse(toks)
	all.Merge(&parseDiags)

	astJSON := marshalAST(prog)

	result := sema.Analyze(prog)
	all.Merge(&result.Diagnostics)

	all.Sort()

	if all.HasErrors() {
		return CompileResult{
			Success:     false,
			Diagnostics: all.Items(),
			ASTJSON:     astJSON,
		}
	}

	code, err := generator.New().Generate(prog, result)
	if err != nil {
		all.Error("GEN000", err.Error(), diag.Span{})
		all.Sort()
		return CompileResult{
			Success:     false,
			Diagnostics: all.Items(),
			ASTJSON:     astJSON,
		}
	}

	return CompileResult{
		Success:     true,
		Diagnostics: all.Items(),
		ASTJSON:     astJSON,
		PythonCode:  code,
	}
}

// marshalAST serializes the parsed program for the diagnostics-editor
// contract of spec.md §6; a marshal failure (which cannot happen for
// this AST's exported-field-only shape) degrades to an empty object
// rather than propagating a Go error out of a pure function.
func marshalAST(prog *ast.Program) string {
	b, err := json.Marshal(prog)
	if err != nil {
		return "{}"
	}
	return string(b)
}
