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
package zirtext

import (
	"bufio"
	"fmt"
	"io"

	"github.com/zirc-lang/zirc/pkg/zir"
)

// location records where a renderer has decided an instruction lives:
// its locally-assigned index, and the enclosing block it was indexed
// within (nil for a top-level declaration).  Grounded on
// pkg/cmd/debug/asm.go's index-then-print structure, generalised from
// "print for humans" to "print the form the parser accepts".
type location struct {
	index int
	block *zir.Block
}

// Render writes the canonical textual form of m to w: one
// "@i = tag(args)" line per top-level declaration, with function bodies
// rendered as an indented, braced block addressed by "%j".
//
// Render is a pure function of m's declaration structure (render-then-
// parse is required to be an identity on the canonical-form subset of
// inputs, per spec.md §8) — it never consults m.Errors, and does not
// itself fail: a Module with diagnostics still renders whatever
// declarations were successfully parsed.
func Render(w io.Writer, m *zir.Module) error {
	indices := indexModule(m)
	bw := bufio.NewWriter(w)

	for i, decl := range m.Decls {
		fmt.Fprintf(bw, "@%d = ", i)
		writeInstruction(bw, decl, indices)
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// indexModule is the renderer's first pass: walk decls and assign each
// top-level declaration a module index; when a declaration is a
// function, walk its body too and assign each body instruction a block
// index, remembering which block it belongs to.
func indexModule(m *zir.Module) map[*zir.Instruction]location {
	indices := make(map[*zir.Instruction]location, len(m.Decls))

	for i, decl := range m.Decls {
		indices[decl] = location{index: i}

		if decl.Tag != zir.Fn {
			continue
		}

		body := decl.Positional("body").Block
		if body == nil {
			continue
		}

		for j, insn := range body.Instructions {
			indices[insn] = location{index: j, block: body}
		}
	}

	return indices
}

// writeInstruction is the renderer's second pass for a single
// instruction: "tag(" then each positional (always emitted, ", "
// separated) then each keyword whose value differs from its schema
// default ("name=value", also ", " separated), then ")". This is the
// "always omit a keyword equal to its default" normal form spec.md's
// open question resolves towards, so that render is idempotent.
func writeInstruction(w *bufio.Writer, insn *zir.Instruction, indices map[*zir.Instruction]location) {
	sig := zir.MustSignature(insn.Tag)

	w.WriteString(insn.Tag.String())
	w.WriteByte('(')

	first := true

	for idx, spec := range sig.Positionals {
		if !first {
			w.WriteString(", ")
		}

		first = false

		writeValue(w, insn.Positionals[idx], spec.Kind, indices)
	}

	for idx, spec := range sig.Keywords {
		val := insn.Keywords[idx]
		if val.Equal(spec.Default) {
			continue
		}

		if !first {
			w.WriteString(", ")
		}

		first = false

		w.WriteString(spec.Name)
		w.WriteByte('=')
		writeValue(w, val, spec.Kind, indices)
	}

	w.WriteByte(')')
}

func writeValue(w *bufio.Writer, v zir.Value, kind zir.Kind, indices map[*zir.Instruction]location) {
	switch kind {
	case zir.KindInst:
		writeInstRef(w, v.Inst, indices)
	case zir.KindInstList:
		w.WriteByte('[')

		for i, target := range v.List {
			if i > 0 {
				w.WriteString(", ")
			}

			writeInstRef(w, target, indices)
		}

		w.WriteByte(']')
	case zir.KindString:
		escapeStringLiteral(w, v.Str)
	case zir.KindBigInt:
		if v.Int == nil {
			w.WriteByte('0')
		} else {
			w.WriteString(v.Int.Text(10))
		}
	case zir.KindBool:
		if v.Bool {
			w.WriteByte('1')
		} else {
			w.WriteByte('0')
		}
	case zir.KindEnum:
		switch v.EnumKind {
		case zir.EnumBuiltinType:
			w.WriteString(v.BuiltinType().String())
		case zir.EnumCallingConvention:
			w.WriteString(v.CallingConvention().String())
		}
	case zir.KindBlock:
		writeBlock(w, v.Block, indices)
	}
}

// writeInstRef prints "@i" for a top-level declaration or "%i" for a
// body instruction, looked up in the index table built by indexModule.
func writeInstRef(w *bufio.Writer, target *zir.Instruction, indices map[*zir.Instruction]location) {
	loc, ok := indices[target]
	if !ok {
		// Unreachable for any Module produced by this package's own
		// Parse or pkg/zir/lower's Lower: every instruction referenced
		// as an argument is, by construction, also reachable from decls.
		w.WriteString("@?")
		return
	}

	if loc.block == nil {
		fmt.Fprintf(w, "@%d", loc.index)
	} else {
		fmt.Fprintf(w, "%%%d", loc.index)
	}
}

func writeBlock(w *bufio.Writer, b *zir.Block, indices map[*zir.Instruction]location) {
	w.WriteString("{\n")

	for i, insn := range b.Instructions {
		fmt.Fprintf(w, "  %%%d = ", i)
		writeInstruction(w, insn, indices)
		w.WriteByte('\n')
	}

	w.WriteString("}")
}
