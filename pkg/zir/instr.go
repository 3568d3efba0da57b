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

// Instruction is the central entity of the ZIR data model: a tagged
// record with a schema-determined set of positional and keyword
// arguments.  Instructions form a DAG: KindInst/KindInstList arguments
// reference other instructions directly, by pointer.
//
// Instructions are heterogeneous by tag but homogeneous in shape: every
// tag is represented by this one struct, with the schema (see schema.go)
// supplying the names and types of Positionals/Keywords.  This is the
// "tagged sum type, not an inheritance hierarchy" design from spec.md's
// design notes: a downcast is just consulting Tag plus a typed Value
// accessor, not a type assertion onto a per-tag Go struct.
type Instruction struct {
	// Tag identifies the instruction kind.
	Tag Tag
	// Offset is the byte offset into the source text at which this
	// instruction's tag name begins, used to anchor diagnostics that refer
	// to it after parsing (e.g. during lowering).
	Offset int
	// Positionals holds one Value per schema.Signature.Positionals entry,
	// in schema order.
	Positionals []Value
	// Keywords holds one Value per schema.Signature.Keywords entry, in
	// schema order (not source order: keyword order in text is free).
	Keywords []Value
}

// NewInstruction allocates an instruction of the given tag with its
// positional and keyword argument slices sized (but not necessarily
// filled) according to the tag's schema.  Unknown tags panic; callers are
// expected to have already validated the tag via the schema lookup.
func NewInstruction(tag Tag, offset int) *Instruction {
	sig := MustSignature(tag)
	insn := &Instruction{
		Tag:         tag,
		Offset:      offset,
		Positionals: make([]Value, len(sig.Positionals)),
		Keywords:    make([]Value, len(sig.Keywords)),
	}
	// Seed keywords with their schema defaults; the parser/lowerer
	// overwrite individual entries as they are encountered, and anything
	// left untouched is, correctly, the default.
	for i, kw := range sig.Keywords {
		insn.Keywords[i] = kw.Default
	}

	return insn
}

// Positional returns the value of the named positional argument.  Panics
// if no such positional exists for this instruction's tag: positional
// names are fixed per tag, so this indicates a programming error, not
// malformed input.
func (i *Instruction) Positional(name string) Value {
	sig := MustSignature(i.Tag)

	for idx, p := range sig.Positionals {
		if p.Name == name {
			return i.Positionals[idx]
		}
	}

	panic("zir: no such positional argument: " + name)
}

// SetPositional assigns the value of the named positional argument.
func (i *Instruction) SetPositional(name string, v Value) {
	sig := MustSignature(i.Tag)

	for idx, p := range sig.Positionals {
		if p.Name == name {
			i.Positionals[idx] = v
			return
		}
	}

	panic("zir: no such positional argument: " + name)
}

// Keyword returns the value of the named keyword argument, which is its
// schema default if it was never explicitly set.
func (i *Instruction) Keyword(name string) Value {
	sig := MustSignature(i.Tag)

	for idx, k := range sig.Keywords {
		if k.Name == name {
			return i.Keywords[idx]
		}
	}

	panic("zir: no such keyword argument: " + name)
}

// SetKeyword assigns the value of the named keyword argument.
func (i *Instruction) SetKeyword(name string, v Value) {
	sig := MustSignature(i.Tag)

	for idx, k := range sig.Keywords {
		if k.Name == name {
			i.Keywords[idx] = v
			return
		}
	}

	panic("zir: no such keyword argument: " + name)
}

// Block is the body of a function: an ordered sequence of instructions,
// each addressable locally by its index within the block (its "%i"
// name).  Identifier-to-instruction resolution within a block happens
// during parsing; Block itself is just the resulting ordered list.
type Block struct {
	// Instructions holds the body of the block, in definition order.
	Instructions []*Instruction
}

// NewBlock constructs an empty block.
func NewBlock() *Block {
	return &Block{}
}

// Append adds an instruction to the end of this block and returns its
// local index.
func (b *Block) Append(insn *Instruction) int {
	b.Instructions = append(b.Instructions, insn)
	return len(b.Instructions) - 1
}
