package ast

import (
	"testing"

	"github.com/halvardsen/pseudogo/internal/diag"
)

func TestSpansOfLeafNodes(t *testing.T) {
	tests := []struct {
		name string
		node Node
	}{
		{"DeclareStmt", &DeclareStmt{Names: []string{"X"}}},
		{"AssignStmt", &AssignStmt{}},
		{"IfStmt", &IfStmt{}},
		{"ForStmt", &ForStmt{Iterator: "I"}},
		{"CallExpr", &CallExpr{Name: "LENGTH"}},
		{"Ident", &Ident{Name: "X"}},
	}
	for _, tt := range tests {
		// Span() must not panic on a zero-value node; that's all leaf nodes
		// guarantee without a Sp being populated.
		_ = tt.node.Span()
	}
}

func TestProgramSpanCoversFirstAndLastStatement(t *testing.T) {
	first := &DeclareStmt{Names: []string{"A"}, Sp: diag.Point(1, 1)}
	last := &OutputStmt{Sp: diag.Point(3, 1)}
	p := &Program{Statements: []Statement{first, last}}
	got := p.Span()
	if got.Start.Line != 1 || got.End.Line != 3 {
		t.Fatalf("Program.Span() = %+v, want to span lines 1..3", got)
	}
}

func TestEmptyProgramSpanIsZeroValue(t *testing.T) {
	p := &Program{}
	got := p.Span()
	if got.Start.Line != 0 || got.End.Line != 0 {
		t.Fatalf("empty Program.Span() = %+v, want zero value", got)
	}
}
