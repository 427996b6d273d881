// Package ast defines the abstract syntax tree produced by the parser.
package ast

import "github.com/halvardsen/pseudogo/internal/diag"

// Node is the base interface every AST node implements.
type Node interface {
	Span() diag.Span
}

// Program is the root node: an ordered sequence of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) Span() diag.Span {
	if len(p.Statements) == 0 {
		return diag.Span{}
	}
	return diag.Span{Start: p.Statements[0].Span().Start, End: p.Statements[len(p.Statements)-1].Span().End}
}

// Statement is the interface every statement-form node implements.
type Statement interface {
	Node
	stmtNode()
}

// Expression is the interface every expression-form node implements.
type Expression interface {
	Node
	exprNode()
}

// ============ TYPES ============

// TypeRef is the AST-level spelling of a declared type: either a basic
// name ("INTEGER", "REAL", "CHAR", "STRING", "BOOLEAN") or an array of
// 1 or 2 dimensions over a basic element type.
type TypeRef struct {
	Basic   string // set when this is not an array
	IsArray bool
	Element string     // element basic type name, set when IsArray
	Dims    []ArrayDim // 1 or 2 entries, set when IsArray
	Sp      diag.Span
}

func (t *TypeRef) Span() diag.Span { return t.Sp }

// ArrayDim is one declared dimension's inclusive integer bounds.
type ArrayDim struct {
	Lower int
	Upper int
}

// Param is a routine parameter: name, declared type, and passing mode.
type Param struct {
	Name  string
	Type  *TypeRef
	ByRef bool // supplemented: BYREF vs BYVAL, default BYVAL
	Sp    diag.Span
}

// ============ STATEMENTS ============

type DeclareStmt struct {
	Names []string
	Type  *TypeRef
	Sp    diag.Span
}

func (s *DeclareStmt) Span() diag.Span { return s.Sp }
func (*DeclareStmt) stmtNode()         {}

type ConstantStmt struct {
	Name  string
	Value Expression
	Sp    diag.Span
}

func (s *ConstantStmt) Span() diag.Span { return s.Sp }
func (*ConstantStmt) stmtNode()         {}

type AssignStmt struct {
	Target Expression // Ident or ArrayAccess
	Value  Expression
	Sp     diag.Span
}

func (s *AssignStmt) Span() diag.Span { return s.Sp }
func (*AssignStmt) stmtNode()         {}

type InputStmt struct {
	Target Expression
	Sp     diag.Span
}

func (s *InputStmt) Span() diag.Span { return s.Sp }
func (*InputStmt) stmtNode()         {}

type OutputStmt struct {
	Values []Expression
	Sp     diag.Span
}

func (s *OutputStmt) Span() diag.Span { return s.Sp }
func (*OutputStmt) stmtNode()         {}

type IfStmt struct {
	Cond Expression
	Then []Statement
	Else []Statement // nil if no ELSE
	Sp   diag.Span
}

func (s *IfStmt) Span() diag.Span { return s.Sp }
func (*IfStmt) stmtNode()         {}

// CaseClause is one clause of a CASE OF statement: either a single value,
// an inclusive TO range (supplemented), or OTHERWISE.
type CaseClause struct {
	Otherwise bool
	Value     Expression // set when !Otherwise && !IsRange
	IsRange   bool
	Low, High Expression // set when IsRange
	Body      Statement
	Sp        diag.Span
}

type CaseStmt struct {
	Subject Expression
	Clauses []CaseClause
	Sp      diag.Span
}

func (s *CaseStmt) Span() diag.Span { return s.Sp }
func (*CaseStmt) stmtNode()         {}

type ForStmt struct {
	Iterator string
	Start    Expression
	End      Expression
	Step     Expression // nil if omitted (defaults to 1)
	Body     []Statement
	NextName string // optional identifier after NEXT; "" if omitted
	Sp       diag.Span
}

func (s *ForStmt) Span() diag.Span { return s.Sp }
func (*ForStmt) stmtNode()         {}

type RepeatStmt struct {
	Body []Statement
	Cond Expression
	Sp   diag.Span
}

func (s *RepeatStmt) Span() diag.Span { return s.Sp }
func (*RepeatStmt) stmtNode()         {}

type WhileStmt struct {
	Cond Expression
	Body []Statement
	Sp   diag.Span
}

func (s *WhileStmt) Span() diag.Span { return s.Sp }
func (*WhileStmt) stmtNode()         {}

type ProcedureDecl struct {
	Name   string
	Params []*Param
	Body   []Statement
	Sp     diag.Span
}

func (s *ProcedureDecl) Span() diag.Span { return s.Sp }
func (*ProcedureDecl) stmtNode()         {}

type FunctionDecl struct {
	Name       string
	Params     []*Param
	ReturnType *TypeRef
	Body       []Statement
	Sp         diag.Span
}

func (s *FunctionDecl) Span() diag.Span { return s.Sp }
func (*FunctionDecl) stmtNode()         {}

type CallStmt struct {
	Name string
	Args []Expression
	Sp   diag.Span
}

func (s *CallStmt) Span() diag.Span { return s.Sp }
func (*CallStmt) stmtNode()         {}

type ReturnStmt struct {
	Value Expression
	Sp    diag.Span
}

func (s *ReturnStmt) Span() diag.Span { return s.Sp }
func (*ReturnStmt) stmtNode()         {}

type OpenFileMode string

const (
	FileRead  OpenFileMode = "READ"
	FileWrite OpenFileMode = "WRITE"
)

type OpenFileStmt struct {
	File Expression
	Mode OpenFileMode
	Sp   diag.Span
}

func (s *OpenFileStmt) Span() diag.Span { return s.Sp }
func (*OpenFileStmt) stmtNode()         {}

type ReadFileStmt struct {
	File   Expression
	Target Expression
	Sp     diag.Span
}

func (s *ReadFileStmt) Span() diag.Span { return s.Sp }
func (*ReadFileStmt) stmtNode()         {}

type WriteFileStmt struct {
	File  Expression
	Value Expression
	Sp    diag.Span
}

func (s *WriteFileStmt) Span() diag.Span { return s.Sp }
func (*WriteFileStmt) stmtNode()         {}

type CloseFileStmt struct {
	File Expression
	Sp   diag.Span
}

func (s *CloseFileStmt) Span() diag.Span { return s.Sp }
func (*CloseFileStmt) stmtNode()         {}

// BadStmt marks a statement that failed to parse; the parser recovered by
// discarding to the next newline. It carries no semantics and is skipped
// by later stages.
type BadStmt struct {
	Sp diag.Span
}

func (s *BadStmt) Span() diag.Span { return s.Sp }
func (*BadStmt) stmtNode()         {}

// ============ EXPRESSIONS ============

type LiteralKind int

const (
	LitInteger LiteralKind = iota
	LitReal
	LitString
	LitChar
	LitBoolean
)

type Literal struct {
	Kind LiteralKind
	Text string // original lexeme, for integers/reals
	Str  string // decoded value, for strings/chars
	Bool bool
	Sp   diag.Span
}

func (e *Literal) Span() diag.Span { return e.Sp }
func (*Literal) exprNode()         {}

type Ident struct {
	Name string
	Sp   diag.Span
}

func (e *Ident) Span() diag.Span { return e.Sp }
func (*Ident) exprNode()         {}

type UnaryExpr struct {
	Op      string // "-" or "NOT"
	Operand Expression
	Sp      diag.Span
}

func (e *UnaryExpr) Span() diag.Span { return e.Sp }
func (*UnaryExpr) exprNode()         {}

type BinaryExpr struct {
	Left  Expression
	Op    string
	Right Expression
	Sp    diag.Span
}

func (e *BinaryExpr) Span() diag.Span { return e.Sp }
func (*BinaryExpr) exprNode()         {}

type CallExpr struct {
	Name string
	Args []Expression
	Sp   diag.Span
}

func (e *CallExpr) Span() diag.Span { return e.Sp }
func (*CallExpr) exprNode()         {}

type ArrayAccess struct {
	Name    string
	Indices []Expression
	Sp      diag.Span
}

func (e *ArrayAccess) Span() diag.Span { return e.Sp }
func (*ArrayAccess) exprNode()         {}

// BadExpr marks an expression that failed to parse.
type BadExpr struct {
	Sp diag.Span
}

func (e *BadExpr) Span() diag.Span { return e.Sp }
func (*BadExpr) exprNode()         {}
