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

import (
	"math/big"
	"testing"
)

func TestTagRoundTripsByName(t *testing.T) {
	for tag := Str; tag <= Unreachable; tag++ {
		name := tag.String()

		got, ok := TagByName(name)
		if !ok {
			t.Fatalf("TagByName(%q): not found", name)
		}

		if got != tag {
			t.Fatalf("TagByName(%q) = %v, want %v", name, got, tag)
		}
	}
}

func TestBuiltinTypeCount(t *testing.T) {
	// spec.md enumerates exactly 23 builtin primitive types.
	if len(builtinTypeNames) != 23 {
		t.Fatalf("expected 23 builtin types, got %d", len(builtinTypeNames))
	}
}

func TestNewInstructionSeedsKeywordDefaults(t *testing.T) {
	insn := NewInstruction(Asm, 0)

	if v := insn.Keyword("volatile"); v.Bool != false {
		t.Fatalf("expected volatile default false, got %v", v.Bool)
	}

	if v := insn.Keyword("output"); v.Inst != nil {
		t.Fatalf("expected output default absent, got %v", v.Inst)
	}

	if v := insn.Keyword("inputs"); len(v.List) != 0 {
		t.Fatalf("expected inputs default empty, got %v", v.List)
	}
}

func TestValueEqual(t *testing.T) {
	a := BigIntValue(big.NewInt(42))
	b := BigIntValue(big.NewInt(42))
	c := BigIntValue(big.NewInt(7))

	if !a.Equal(b) {
		t.Fatalf("expected equal bigint values")
	}

	if a.Equal(c) {
		t.Fatalf("expected unequal bigint values")
	}

	if !BoolValue(false).Equal(BoolValue(false)) {
		t.Fatalf("expected equal bool values")
	}
}

func TestSetAndGetPositional(t *testing.T) {
	insn := NewInstruction(Add, 0)
	lhs := NewInstruction(Int, 0)
	rhs := NewInstruction(Int, 0)

	insn.SetPositional("lhs", InstValue(lhs))
	insn.SetPositional("rhs", InstValue(rhs))

	if insn.Positional("lhs").Inst != lhs {
		t.Fatalf("lhs not stored correctly")
	}

	if insn.Positional("rhs").Inst != rhs {
		t.Fatalf("rhs not stored correctly")
	}
}
