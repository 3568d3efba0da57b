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

// Package zir provides the in-memory data model for the ZIR textual
// intermediate representation: instructions, blocks, modules and
// diagnostics, together with the schema that drives the parser, the
// renderer and the lowerer.
package zir

import "fmt"

// Tag identifies the kind of an Instruction.  The set of tags is closed; a
// new tag is added as a constant and a tagNames entry here plus its
// argument signature in the schema table in schema.go.
type Tag uint8

// The closed set of instruction kinds.
const (
	Str Tag = iota
	Int
	Primitive
	FnType
	Fn
	Export
	Asm
	As
	IntCast
	BitCast
	PtrToInt
	Deref
	FieldPtr
	ElemPtr
	Add
	Unreachable
)

var tagNames = [...]string{
	Str:         "str",
	Int:         "int",
	Primitive:   "primitive",
	FnType:      "fntype",
	Fn:          "fn",
	Export:      "export",
	Asm:         "asm",
	As:          "as",
	IntCast:     "intcast",
	BitCast:     "bitcast",
	PtrToInt:    "ptrtoint",
	Deref:       "deref",
	FieldPtr:    "fieldptr",
	ElemPtr:     "elemptr",
	Add:         "add",
	Unreachable: "unreachable",
}

// String returns the canonical textual name of this tag, as it appears in
// ZIR source (e.g. "fntype").
func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}

	return fmt.Sprintf("tag(%d)", uint8(t))
}

// TagByName looks up a tag by its canonical textual name.  The second
// result is false when no tag of that name exists.
func TagByName(name string) (Tag, bool) {
	for i, n := range tagNames {
		if n == name {
			return Tag(i), true
		}
	}

	return 0, false
}

// BuiltinType is the closed enumeration of primitive types which a
// "primitive" instruction may reference.
type BuiltinType uint8

// The closed set of builtin primitive types.
const (
	Isize BuiltinType = iota
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
	ComptimeInt
	ComptimeFloat
)

var builtinTypeNames = [...]string{
	Isize:         "isize",
	Usize:         "usize",
	CShort:        "c_short",
	CUshort:       "c_ushort",
	CInt:          "c_int",
	CUint:         "c_uint",
	CLong:         "c_long",
	CUlong:        "c_ulong",
	CLongLong:     "c_longlong",
	CUlongLong:    "c_ulonglong",
	CLongDouble:   "c_longdouble",
	CVoid:         "c_void",
	F16:           "f16",
	F32:           "f32",
	F64:           "f64",
	F128:          "f128",
	Bool:          "bool",
	Void:          "void",
	NoReturn:      "noreturn",
	TypeType:      "type",
	AnyError:      "anyerror",
	ComptimeInt:   "comptime_int",
	ComptimeFloat: "comptime_float",
}

// String returns the canonical textual name of this builtin type.
func (b BuiltinType) String() string {
	if int(b) < len(builtinTypeNames) {
		return builtinTypeNames[b]
	}

	return fmt.Sprintf("builtin(%d)", uint8(b))
}

// BuiltinTypeByName looks up a builtin type by its canonical textual name.
func BuiltinTypeByName(name string) (BuiltinType, bool) {
	for i, n := range builtinTypeNames {
		if n == name {
			return BuiltinType(i), true
		}
	}

	return 0, false
}

// CallingConvention is the closed enumeration of calling conventions
// recognised by the "cc" keyword argument of a fntype instruction.
type CallingConvention uint8

// The closed set of calling conventions.  Unspecified is the schema
// default for the "cc" keyword.
const (
	Unspecified CallingConvention = iota
	C
	Naked
	Inline
)

var callingConventionNames = [...]string{
	Unspecified: "Unspecified",
	C:           "C",
	Naked:       "Naked",
	Inline:      "Inline",
}

// String returns the canonical textual name of this calling convention.
func (c CallingConvention) String() string {
	if int(c) < len(callingConventionNames) {
		return callingConventionNames[c]
	}

	return fmt.Sprintf("cc(%d)", uint8(c))
}

// CallingConventionByName looks up a calling convention by its canonical
// textual name.
func CallingConventionByName(name string) (CallingConvention, bool) {
	for i, n := range callingConventionNames {
		if n == name {
			return CallingConvention(i), true
		}
	}

	return 0, false
}
