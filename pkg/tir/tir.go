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

// Package tir declares the consumer-side contract for the typed,
// already-analyzed intermediate representation that pkg/zir/lower
// converts into ZIR. The semantic analyzer that produces a real
// implementation of these interfaces is a downstream collaborator, out
// of scope for this module; pkg/tir/testtir provides a minimal
// in-memory implementation so pkg/zir/lower has something concrete to
// run against.
//
// Grounded on pkg/hir/type.go's Type interface and pkg/hir/term.go's
// Expr interface in the teacher repository: a closed set of categories,
// each with its own accessor methods, queried by a Category/Tag method
// rather than a Go type switch on concrete types.
package tir

import "math/big"

// TypeCategory is the closed set of type shapes the lowerer knows how
// to emit.
type TypeCategory uint8

const (
	// TypeBuiltin is one of the 23 ZIR builtin primitive types.
	TypeBuiltin TypeCategory = iota
	// TypeFn is a function type: parameter types, a return type, and a
	// calling convention.
	TypeFn
	// TypeUnsupported is any category the lowerer does not (yet) know
	// how to emit.
	TypeUnsupported
)

// Type is a typed-IR type, queried by category then narrowed through
// the accessor that applies to that category.
type Type interface {
	Category() TypeCategory

	// Builtin returns this type's ZIR builtin tag. Valid only when
	// Category() == TypeBuiltin.
	Builtin() BuiltinTag

	// ParamTypes and ReturnType describe a function type's signature.
	// Valid only when Category() == TypeFn.
	ParamTypes() []Type
	ReturnType() Type
	CallingConvention() CallingConventionTag
}

// BuiltinTag mirrors zir.BuiltinType without importing pkg/zir, keeping
// this contract free of a dependency on the data model it is lowered
// into.
type BuiltinTag uint8

// The closed set of builtin primitive type tags, in the same order as
// zir.BuiltinType.
const (
	Isize BuiltinTag = iota
	Usize
	CShort
	CUshort
	CInt
	CUint
	CLong
	CUlong
	CLongLong
	CUlongLong
	CLongDouble
	CVoid
	F16
	F32
	F64
	F128
	Bool
	Void
	NoReturn
	TypeType
	AnyError
	ComptimeIntType
	ComptimeFloat
)

// CallingConventionTag mirrors zir.CallingConvention.
type CallingConventionTag uint8

// The closed set of calling conventions.
const (
	Unspecified CallingConventionTag = iota
	C
	Naked
	Inline
)

// ValueCategory is the closed set of typed-value shapes the lowerer
// knows how to emit (spec.md §4.5's typed-value emission dispatch).
type ValueCategory uint8

const (
	// PointerToByteArray emits as a str declaration.
	PointerToByteArray ValueCategory = iota
	// ComptimeInt emits as an int declaration.
	ComptimeInt
	// SizedInt emits as as(dest_type, int(...)).
	SizedInt
	// TypeValue emits as the recursively-emitted represented type.
	TypeValue
	// FunctionValue emits as a lowered function body.
	FunctionValue
	// Unsupported is any other category; the lowerer halts on it.
	Unsupported
)

// Value is a typed-IR value, queried by category then narrowed through
// the accessor that applies to that category.
type Value interface {
	Category() ValueCategory

	// Bytes is valid when Category() == PointerToByteArray.
	Bytes() []byte

	// Int is valid when Category() == ComptimeInt or SizedInt.
	Int() *big.Int

	// DestType is valid when Category() == SizedInt.
	DestType() Type

	// Type is valid when Category() == TypeValue.
	Type() Type

	// Function is valid when Category() == FunctionValue.
	Function() Function
}

// InstKind is the closed set of typed-IR function-body instruction
// kinds the lowerer emits (spec.md §4.5's function emission dispatch).
type InstKind uint8

const (
	// Unreach lowers to unreachable().
	Unreach InstKind = iota
	// Assembly lowers to asm(...).
	Assembly
	// PtrToInt lowers to ptrtoint(operand).
	PtrToInt
	// BitCast lowers to bitcast(dest_type, operand).
	BitCast
	// Constant must never appear directly in a function body; it is
	// materialized on reference via the lowerer's memoization table.
	// Encountering one during function emission is a programmer error.
	Constant
)

// Instruction is one instruction in a typed-IR function body.
// Implementations must be comparable (e.g. backed by a pointer), since
// the lowerer keys its per-function instruction map on Instruction
// identity (its constant memo table is keyed on Value identity).
type Instruction interface {
	Kind() InstKind
	Offset() int

	// ReturnType is valid when Kind() == Assembly.
	ReturnType() Type
	// Source is the assembly source text, valid when Kind() == Assembly.
	Source() []byte
	// Volatile, Output, Inputs, Clobbers and Args are valid when
	// Kind() == Assembly.
	Volatile() bool
	Output() (Instruction, bool)
	Inputs() []Instruction
	Clobbers() []Instruction
	Args() []Instruction

	// Operand is valid when Kind() == PtrToInt or BitCast.
	Operand() Instruction
	// DestType is valid when Kind() == BitCast.
	DestType() Type

	// ConstantValue is valid when Kind() == Constant.
	ConstantValue() Value
}

// Function is a typed-IR function: a signature and an ordered body.
type Function interface {
	Offset() int
	Type() Type
	Body() []Instruction
}

// Export is one exported declaration of a typed-IR module: a symbol
// name and the typed value bound to it.
type Export interface {
	Offset() int
	SymbolName() []byte
	Value() Value
}

// Module is the root of a typed-IR program: every export and every
// function the lowerer must emit declarations for.
type Module interface {
	Exports() []Export
	Functions() []Function
}
