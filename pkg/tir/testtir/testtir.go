// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package testtir is a minimal in-memory implementation of pkg/tir's
// interfaces, built purely so pkg/zir/lower has a concrete typed-IR
// module to exercise in its tests. It is test scaffolding, not part of
// the external typed-IR contract.
package testtir

import (
	"math/big"

	"github.com/zirc-lang/zirc/pkg/tir"
)

// Type is a concrete tir.Type.
type Type struct {
	category   tir.TypeCategory
	builtin    tir.BuiltinTag
	params     []tir.Type
	returnType tir.Type
	cc         tir.CallingConventionTag
}

// Builtin constructs a builtin-category Type.
func Builtin(b tir.BuiltinTag) *Type {
	return &Type{category: tir.TypeBuiltin, builtin: b}
}

// FnType constructs a function-category Type.
func FnType(params []tir.Type, returnType tir.Type, cc tir.CallingConventionTag) *Type {
	return &Type{category: tir.TypeFn, params: params, returnType: returnType, cc: cc}
}

func (t *Type) Category() tir.TypeCategory             { return t.category }
func (t *Type) Builtin() tir.BuiltinTag                { return t.builtin }
func (t *Type) ParamTypes() []tir.Type                 { return t.params }
func (t *Type) ReturnType() tir.Type                   { return t.returnType }
func (t *Type) CallingConvention() tir.CallingConventionTag { return t.cc }

// Value is a concrete tir.Value.
type Value struct {
	category ValueCategory
	bytes    []byte
	n        *big.Int
	destType tir.Type
	typ      tir.Type
	fn       tir.Function
}

// ValueCategory is an alias kept local so the constructors below read
// naturally; it is exactly tir.ValueCategory.
type ValueCategory = tir.ValueCategory

// BytesValue constructs a pointer-to-byte-array Value.
func BytesValue(b []byte) *Value {
	return &Value{category: tir.PointerToByteArray, bytes: b}
}

// ComptimeIntValue constructs a comptime-integer Value.
func ComptimeIntValue(n *big.Int) *Value {
	return &Value{category: tir.ComptimeInt, n: n}
}

// SizedIntValue constructs a sized-integer Value.
func SizedIntValue(destType tir.Type, n *big.Int) *Value {
	return &Value{category: tir.SizedInt, destType: destType, n: n}
}

// TypeValue constructs a type-category Value wrapping typ.
func TypeValue(typ tir.Type) *Value {
	return &Value{category: tir.TypeValue, typ: typ}
}

// FunctionValue constructs a function-category Value wrapping fn.
func FunctionValue(fn tir.Function) *Value {
	return &Value{category: tir.FunctionValue, fn: fn}
}

// UnsupportedValue constructs a Value of a category the lowerer does
// not know how to emit, for exercising its "not yet supported" path.
func UnsupportedValue() *Value {
	return &Value{category: tir.Unsupported}
}

func (v *Value) Category() tir.ValueCategory { return v.category }
func (v *Value) Bytes() []byte               { return v.bytes }
func (v *Value) Int() *big.Int               { return v.n }
func (v *Value) DestType() tir.Type          { return v.destType }
func (v *Value) Type() tir.Type              { return v.typ }
func (v *Value) Function() tir.Function      { return v.fn }

// Instruction is a concrete tir.Instruction. Each Instruction is a
// distinct pointer, so identity comparison (used by the lowerer's
// per-function instruction map; its constant memo table keys on the
// equally pointer-backed Value) behaves as expected.
type Instruction struct {
	kind     tir.InstKind
	offset   int
	retType  tir.Type
	source   []byte
	volatile bool
	output   tir.Instruction
	hasOut   bool
	inputs   []tir.Instruction
	clobbers []tir.Instruction
	args     []tir.Instruction
	operand  tir.Instruction
	destType tir.Type
	constVal tir.Value
}

// UnreachInst constructs an unreach instruction.
func UnreachInst(offset int) *Instruction {
	return &Instruction{kind: tir.Unreach, offset: offset}
}

// AsmInst constructs an assembly instruction.
func AsmInst(offset int, source []byte, returnType tir.Type, volatile bool, output tir.Instruction, inputs, clobbers, args []tir.Instruction) *Instruction {
	return &Instruction{
		kind: tir.Assembly, offset: offset, source: source, retType: returnType,
		volatile: volatile, output: output, hasOut: output != nil,
		inputs: inputs, clobbers: clobbers, args: args,
	}
}

// PtrToIntInst constructs a ptrtoint instruction.
func PtrToIntInst(offset int, operand tir.Instruction) *Instruction {
	return &Instruction{kind: tir.PtrToInt, offset: offset, operand: operand}
}

// BitCastInst constructs a bitcast instruction.
func BitCastInst(offset int, destType tir.Type, operand tir.Instruction) *Instruction {
	return &Instruction{kind: tir.BitCast, offset: offset, destType: destType, operand: operand}
}

// ConstantInst constructs a constant reference, materialized on first
// use via the lowerer's memoization table.
func ConstantInst(offset int, v tir.Value) *Instruction {
	return &Instruction{kind: tir.Constant, offset: offset, constVal: v}
}

func (i *Instruction) Kind() tir.InstKind     { return i.kind }
func (i *Instruction) Offset() int            { return i.offset }
func (i *Instruction) ReturnType() tir.Type   { return i.retType }
func (i *Instruction) Source() []byte         { return i.source }
func (i *Instruction) Volatile() bool         { return i.volatile }
func (i *Instruction) Inputs() []tir.Instruction   { return i.inputs }
func (i *Instruction) Clobbers() []tir.Instruction { return i.clobbers }
func (i *Instruction) Args() []tir.Instruction     { return i.args }
func (i *Instruction) Operand() tir.Instruction    { return i.operand }
func (i *Instruction) DestType() tir.Type          { return i.destType }
func (i *Instruction) ConstantValue() tir.Value    { return i.constVal }

func (i *Instruction) Output() (tir.Instruction, bool) {
	return i.output, i.hasOut
}

// Function is a concrete tir.Function.
type Function struct {
	offset int
	typ    tir.Type
	body   []tir.Instruction
}

// NewFunction constructs a Function.
func NewFunction(offset int, typ tir.Type, body []tir.Instruction) *Function {
	return &Function{offset: offset, typ: typ, body: body}
}

func (f *Function) Offset() int              { return f.offset }
func (f *Function) Type() tir.Type           { return f.typ }
func (f *Function) Body() []tir.Instruction  { return f.body }

// Export is a concrete tir.Export.
type Export struct {
	offset     int
	symbolName []byte
	value      tir.Value
}

// NewExport constructs an Export.
func NewExport(offset int, symbolName []byte, value tir.Value) *Export {
	return &Export{offset: offset, symbolName: symbolName, value: value}
}

func (e *Export) Offset() int        { return e.offset }
func (e *Export) SymbolName() []byte { return e.symbolName }
func (e *Export) Value() tir.Value   { return e.value }

// Module is a concrete tir.Module.
type Module struct {
	exports   []tir.Export
	functions []tir.Function
}

// NewModule constructs a Module from its exports and functions.
func NewModule(exports []tir.Export, functions []tir.Function) *Module {
	return &Module{exports: exports, functions: functions}
}

func (m *Module) Exports() []tir.Export     { return m.exports }
func (m *Module) Functions() []tir.Function { return m.functions }
