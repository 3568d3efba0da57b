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
package zir

import "math/big"

// Kind identifies the shape of a single argument value.  This is the
// closed set of argument-value types named in the instruction schema;
// extending it requires coordinated changes to the parser and renderer.
type Kind uint8

// The closed set of argument-value kinds.
const (
	// KindInst is a reference to another instruction, by handle.
	KindInst Kind = iota
	// KindInstList is an ordered list of instruction references.
	KindInstList
	// KindString is a decoded byte string.
	KindString
	// KindBigInt is an arbitrary-precision signed integer.
	KindBigInt
	// KindBool is a single boolean flag.
	KindBool
	// KindEnum is a named variant of a closed enumeration (builtin type or
	// calling convention).
	KindEnum
	// KindBlock is the body of a function: an ordered list of
	// locally-addressable instructions.
	KindBlock
)

// EnumKind distinguishes which closed enumeration a KindEnum value is
// drawn from.
type EnumKind uint8

// The enumerations which a KindEnum argument may reference.
const (
	EnumNone EnumKind = iota
	EnumBuiltinType
	EnumCallingConvention
)

// Value is a single positional or keyword argument value.  Only the field
// corresponding to Kind is meaningful; the rest are zero.  Absence of an
// optional value is represented by the Go zero value for its Kind (a nil
// Inst, an empty List, an empty Str, etc.) rather than by a separate
// "present" flag, so that comparing a Value against a schema default is a
// plain equality check (see Equal).
type Value struct {
	Kind Kind
	// EnumKind indicates which enumeration Enum is drawn from, when
	// Kind == KindEnum.
	EnumKind EnumKind
	Inst     *Instruction
	List     []*Instruction
	Str      []byte
	Int      *big.Int
	Bool     bool
	Enum     uint8
	Block    *Block
}

// InstValue constructs a KindInst value referencing the given instruction.
// A nil target represents "absent" (used for optional inst keywords such
// as asm's "output").
func InstValue(target *Instruction) Value {
	return Value{Kind: KindInst, Inst: target}
}

// InstListValue constructs a KindInstList value.
func InstListValue(targets []*Instruction) Value {
	return Value{Kind: KindInstList, List: targets}
}

// StringValue constructs a KindString value from already-decoded bytes.
func StringValue(bytes []byte) Value {
	return Value{Kind: KindString, Str: bytes}
}

// BigIntValue constructs a KindBigInt value.
func BigIntValue(n *big.Int) Value {
	return Value{Kind: KindBigInt, Int: n}
}

// BoolValue constructs a KindBool value.
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// BuiltinTypeValue constructs a KindEnum value drawn from BuiltinType.
func BuiltinTypeValue(b BuiltinType) Value {
	return Value{Kind: KindEnum, EnumKind: EnumBuiltinType, Enum: uint8(b)}
}

// CallingConventionValue constructs a KindEnum value drawn from
// CallingConvention.
func CallingConventionValue(c CallingConvention) Value {
	return Value{Kind: KindEnum, EnumKind: EnumCallingConvention, Enum: uint8(c)}
}

// BlockValue constructs a KindBlock value.
func BlockValue(b *Block) Value {
	return Value{Kind: KindBlock, Block: b}
}

// BuiltinType extracts the builtin-type variant of a KindEnum/EnumBuiltinType
// value.  Behaviour is undefined if Kind/EnumKind do not match.
func (v Value) BuiltinType() BuiltinType {
	return BuiltinType(v.Enum)
}

// CallingConvention extracts the calling-convention variant of a
// KindEnum/EnumCallingConvention value.
func (v Value) CallingConvention() CallingConvention {
	return CallingConvention(v.Enum)
}

// Equal reports whether v and other represent the same argument value.
// This drives the renderer's "omit keyword when equal to its schema
// default" normal-form policy (spec.md's open question on default
// elision, resolved towards always-omit so that render is idempotent).
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}

	switch v.Kind {
	case KindInst:
		return v.Inst == other.Inst
	case KindInstList:
		if len(v.List) != len(other.List) {
			return false
		}

		for i := range v.List {
			if v.List[i] != other.List[i] {
				return false
			}
		}

		return true
	case KindString:
		return string(v.Str) == string(other.Str)
	case KindBigInt:
		lhs, rhs := v.Int, other.Int

		if lhs == nil {
			lhs = new(big.Int)
		}

		if rhs == nil {
			rhs = new(big.Int)
		}

		return lhs.Cmp(rhs) == 0
	case KindBool:
		return v.Bool == other.Bool
	case KindEnum:
		return v.EnumKind == other.EnumKind && v.Enum == other.Enum
	case KindBlock:
		return v.Block == other.Block
	default:
		return false
	}
}
