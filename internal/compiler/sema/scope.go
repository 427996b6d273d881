// Package sema implements the semantic analyzer: scope-resolved symbol
// tables, expression typing, and the statement-level checks of spec.md §4.3.
package sema

import (
	"strings"

	"github.com/halvardsen/pseudogo/internal/compiler/types"
)

// Symbol is a declared name: a variable/parameter, or a constant with its
// folded value type.
type Symbol struct {
	Name      string
	Type      types.StaticType
	IsConst   bool
	ByRef     bool // set for BYREF parameters
	ArrayDims []ArrayBound
}

// ArrayBound is the declared inclusive bound of one array dimension.
type ArrayBound struct {
	Lower, Upper int
}

// Scope is a chained, case-insensitive symbol table, generalized from the
// teacher's flat map[string]*ComponentInfo registration cache into a proper
// parent-chained lookup (spec.md §4.3: "scope stack").
type Scope struct {
	parent *Scope
	names  map[string]*Symbol
}

// NewScope creates a root scope with no parent.
func NewScope() *Scope {
	return &Scope{names: make(map[string]*Symbol)}
}

// Child creates a new scope nested inside s.
func (s *Scope) Child() *Scope {
	return &Scope{parent: s, names: make(map[string]*Symbol)}
}

// Copy returns a new scope with the same bindings as s but no parent link;
// later definitions in either scope do not affect the other.
func (s *Scope) Copy() *Scope {
	c := &Scope{names: make(map[string]*Symbol, len(s.names))}
	for k, v := range s.names {
		c.names[k] = v
	}
	return c
}

func key(name string) string { return strings.ToUpper(name) }

// Define binds name in this scope, shadowing any outer definition. Returns
// false if name is already defined directly in this scope (caller checks
// for duplicate-declaration diagnostics).
func (s *Scope) Define(sym *Symbol) bool {
	k := key(sym.Name)
	if _, exists := s.names[k]; exists {
		return false
	}
	s.names[k] = sym
	return true
}

// Lookup resolves name in this scope or any ancestor.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	k := key(name)
	for sc := s; sc != nil; sc = sc.parent {
		if sym, ok := sc.names[k]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupLocal resolves name only within this scope, not its ancestors.
func (s *Scope) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := s.names[key(name)]
	return sym, ok
}
