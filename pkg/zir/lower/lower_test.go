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
package lower

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/zirc-lang/zirc/pkg/tir"
	"github.com/zirc-lang/zirc/pkg/tir/testtir"
	"github.com/zirc-lang/zirc/pkg/zir/zirtext"
)

func TestLowerExportComptimeInt(t *testing.T) {
	exp := testtir.NewExport(0, []byte("x"), testtir.ComptimeIntValue(big.NewInt(42)))
	mod := testtir.NewModule([]tir.Export{exp}, nil)

	out := Lower(mod)

	var buf bytes.Buffer
	if err := zirtext.Render(&buf, out); err != nil {
		t.Fatalf("Render: %v", err)
	}

	const want = `@0 = int(42)
@1 = str("x")
@2 = export(@1, @0)
`

	if got := buf.String(); got != want {
		t.Fatalf("rendered output mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestLowerMemoizesRepeatedConstant(t *testing.T) {
	value := testtir.ComptimeIntValue(big.NewInt(7))
	expA := testtir.NewExport(0, []byte("a"), value)
	expB := testtir.NewExport(0, []byte("b"), value)
	mod := testtir.NewModule([]tir.Export{expA, expB}, nil)

	out := Lower(mod)

	intCount := 0
	for _, decl := range out.Decls {
		if decl.Tag.String() == "int" {
			intCount++
		}
	}

	if intCount != 1 {
		t.Fatalf("expected exactly one memoized int declaration, got %d", intCount)
	}

	// int(7), str("a"), export(a), str("b"), export(b): the repeated
	// export value reuses its memoized int declaration instead of
	// emitting a second one.
	if len(out.Decls) != 5 {
		t.Fatalf("expected 5 decls, got %d", len(out.Decls))
	}
}

func TestLowerSizedInt(t *testing.T) {
	destType := testtir.Builtin(tir.Usize)
	exp := testtir.NewExport(0, []byte("n"), testtir.SizedIntValue(destType, big.NewInt(7)))
	mod := testtir.NewModule([]tir.Export{exp}, nil)

	out := Lower(mod)

	var buf bytes.Buffer
	if err := zirtext.Render(&buf, out); err != nil {
		t.Fatalf("Render: %v", err)
	}

	const want = `@0 = primitive(usize)
@1 = int(7)
@2 = as(@0, @1)
@3 = str("n")
@4 = export(@3, @2)
`

	if got := buf.String(); got != want {
		t.Fatalf("rendered output mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestLowerFunctionWithAssemblyAndPtrToInt(t *testing.T) {
	voidType := testtir.Builtin(tir.Void)
	fnType := testtir.FnType(nil, voidType, tir.Unspecified)

	asm := testtir.AsmInst(0, []byte("nop"), voidType, false, nil, nil, nil, nil)
	ptrToInt := testtir.PtrToIntInst(0, asm)
	unreach := testtir.UnreachInst(0)

	fn := testtir.NewFunction(0, fnType, []tir.Instruction{asm, ptrToInt, unreach})
	mod := testtir.NewModule(nil, []tir.Function{fn})

	out := Lower(mod)

	var buf bytes.Buffer
	if err := zirtext.Render(&buf, out); err != nil {
		t.Fatalf("Render: %v", err)
	}

	// lowerType is not memoized (only constants are, per spec.md §4.5),
	// so the asm instruction's return type is emitted as its own
	// primitive(void) declaration distinct from the fntype's.
	const want = `@0 = primitive(void)
@1 = fntype([], @0)
@2 = str("nop")
@3 = primitive(void)
@4 = fn(@1, {
  %0 = asm(@2, @3)
  %1 = ptrtoint(%0)
  %2 = unreachable()
})
`

	if got := buf.String(); got != want {
		t.Fatalf("rendered output mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestLowerPanicsOnConstantInBody(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a constant instruction in a function body")
		}
	}()

	voidType := testtir.Builtin(tir.Void)
	fnType := testtir.FnType(nil, voidType, tir.Unspecified)
	constInst := testtir.ConstantInst(0, testtir.ComptimeIntValue(big.NewInt(1)))
	fn := testtir.NewFunction(0, fnType, []tir.Instruction{constInst})
	mod := testtir.NewModule(nil, []tir.Function{fn})

	Lower(mod)
}

func TestLowerPanicsOnUnsupportedValueCategory(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an unsupported value category")
		}
	}()

	exp := testtir.NewExport(0, []byte("x"), testtir.UnsupportedValue())
	mod := testtir.NewModule([]tir.Export{exp}, nil)

	Lower(mod)
}
