package sema

import "github.com/halvardsen/pseudogo/internal/compiler/types"

// ParamSig is one parameter's resolved type and passing mode.
type ParamSig struct {
	Name  string
	Type  types.StaticType
	ByRef bool
}

// RoutineSignature is a registered procedure or function's call contract.
type RoutineSignature struct {
	Name       string
	Params     []ParamSig
	IsFunction bool
	ReturnType types.StaticType // zero value (unknown kind never used) for procedures
}

// builtinSignature describes one of the fixed built-in functions of
// spec.md §4.3's signature table.
type builtinSignature struct {
	params []types.StaticType
	result types.StaticType
}

var builtinSignatures = map[string]builtinSignature{
	"DIV":       {params: []types.StaticType{types.TInteger, types.TInteger}, result: types.TInteger},
	"MOD":       {params: []types.StaticType{types.TInteger, types.TInteger}, result: types.TInteger},
	"LENGTH":    {params: []types.StaticType{types.TString}, result: types.TInteger},
	"LCASE":     {params: []types.StaticType{types.TString}, result: types.TString},
	"UCASE":     {params: []types.StaticType{types.TString}, result: types.TString},
	"SUBSTRING": {params: []types.StaticType{types.TString, types.TInteger, types.TInteger}, result: types.TString},
	"ROUND":     {params: []types.StaticType{types.TReal, types.TInteger}, result: types.TReal},
	"RANDOM":    {params: nil, result: types.TReal},
}
