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

// Package zirtext implements the textual ZIR format: a byte-cursor
// recursive-descent parser with no separate lexical phase, and a
// schema-driven renderer back to the same canonical text.
//
// Grounded on pkg/util/source/sexp.Parser in the teacher repository (a
// plain character-cursor walk over the source with no tokenizer), not on
// the teacher's token-based assembler.Lexer/Parser pair: spec.md is
// explicit that this grammar has no separate lexer.
package zirtext

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/zirc-lang/zirc/pkg/zir"
)

// Parse parses a UTF-8 textual ZIR program into an in-memory Module.
// Syntactic errors accumulate into Module.Errors rather than aborting the
// whole parse; parsing resumes at the next top-level declaration after a
// recoverable failure. source need not already be NUL-terminated: if its
// last byte isn't 0, Parse works from a NUL-terminated copy so the
// scanner never needs a bounds check on an individual byte (spec.md §4.2,
// §6).
func Parse(source []byte) *zir.Module {
	if len(source) == 0 || source[len(source)-1] != 0 {
		padded := make([]byte, len(source)+1)
		copy(padded, source)
		source = padded
	}

	p := &parser{
		src:         source,
		module:      zir.NewModule(),
		moduleScope: make(map[string]*zir.Instruction),
	}
	p.parseModule()

	return p.module
}

// parser is a byte-cursor recursive descent over a NUL-terminated source
// buffer.  It owns the current offset, the module under construction, the
// module-scope identifier map, and a stack of block-scope identifier maps
// (only ever one deep in practice, since only a function body introduces
// a block, but kept as a stack since nothing in the grammar forbids a
// "fn" instruction nested inside another block).
type parser struct {
	src         []byte
	pos         int
	module      *zir.Module
	moduleScope map[string]*zir.Instruction
	blockScopes []map[string]*zir.Instruction
}

// currentBlockScope returns the identifier map of the nearest enclosing
// block, or nil if the parser is currently at module scope.
func (p *parser) currentBlockScope() map[string]*zir.Instruction {
	if len(p.blockScopes) == 0 {
		return nil
	}

	return p.blockScopes[len(p.blockScopes)-1]
}

func (p *parser) addError(offset int, message string) {
	p.module.AddError(offset, message)
}

// ===================================================================
// Scanning primitives
// ===================================================================

// cur returns the byte at the current cursor position, or 0 (the
// sentinel) once the cursor reaches the end of the buffer.
func (p *parser) cur() byte {
	if p.pos >= len(p.src) {
		return 0
	}

	return p.src[p.pos]
}

// skipSpace advances past any run of spaces and newlines.
func (p *parser) skipSpace() {
	for p.cur() == ' ' || p.cur() == '\n' {
		p.pos++
	}
}

// skipLineComment advances past a ';' comment, up to and including its
// terminating newline (or up to NUL, if the comment is the last thing in
// the file).
func (p *parser) skipLineComment() {
	for p.cur() != '\n' && p.cur() != 0 {
		p.pos++
	}

	if p.cur() == '\n' {
		p.pos++
	}
}

// eatByte conditionally consumes a single expected byte, reporting
// whether it was present.  Use this where the byte's absence is not an
// error in itself (e.g. an optional separator).
func (p *parser) eatByte(b byte) bool {
	if p.cur() == b {
		p.pos++
		return true
	}

	return false
}

// requireBytes is a hard match: it consumes the given literal sequence,
// or leaves the cursor untouched ("restore on fail") and returns false.
// Use this where the sequence's absence is itself a diagnostic.
func (p *parser) requireBytes(s string) bool {
	save := p.pos

	for i := 0; i < len(s); i++ {
		if p.cur() != s[i] {
			p.pos = save
			return false
		}

		p.pos++
	}

	return true
}

// require is requireBytes for the common case of a single required byte,
// recording a diagnostic at the current offset on failure.
func (p *parser) require(b byte, what string) bool {
	if p.requireBytes(string(b)) {
		return true
	}

	p.addError(p.pos, "expected "+what)

	return false
}

// readIdentUntil scans an identifier: a run of bytes not in terminators.
// Reaching NUL before any terminator, when NUL is not itself one of the
// terminators, is always "unexpected EOF" — source is NUL-terminated
// precisely so this check never runs off the end of the buffer.
func (p *parser) readIdentUntil(terminators string) (string, bool) {
	start := p.pos

	for {
		c := p.cur()
		if c == 0 && !strings.ContainsRune(terminators, 0) {
			p.addError(p.pos, "unexpected EOF")
			return "", false
		}

		if strings.IndexByte(terminators, c) >= 0 {
			return string(p.src[start:p.pos]), true
		}

		p.pos++
	}
}

// ===================================================================
// Module (top-level) grammar
// ===================================================================

func (p *parser) parseModule() {
	for {
		p.skipSpace()

		switch c := p.cur(); {
		case c == 0:
			return
		case c == ';':
			p.skipLineComment()
		case c == '@':
			p.parseDecl()
		default:
			p.addError(p.pos, "unexpected byte")
			p.pos++
			p.recoverToNextDecl()
		}
	}
}

// recoverToNextDecl implements spec.md's recovery strategy: a
// parse-failed declaration is abandoned, and the outer loop resumes at
// the next top-level declaration boundary. Declarations begin with '@'
// as the first non-space byte of a line, so resuming at the next such
// '@' (or EOF) skips any '@' reference left in the abandoned text.
func (p *parser) recoverToNextDecl() {
	lineStart := false

	for {
		c := p.cur()
		if c == 0 || (c == '@' && lineStart) {
			return
		}

		if c == '\n' {
			lineStart = true
		} else if c != ' ' {
			lineStart = false
		}

		p.pos++
	}
}

func (p *parser) parseDecl() {
	p.pos++ // consume '@'

	nameStart := p.pos

	name, ok := p.readIdentUntil(" \n")
	if !ok {
		p.recoverToNextDecl()
		return
	}

	p.skipSpace()

	if !p.require('=', "'='") {
		p.recoverToNextDecl()
		return
	}

	p.skipSpace()

	insn, ok := p.parseInstruction()
	if !ok {
		p.recoverToNextDecl()
		return
	}

	p.module.AddDecl(insn)

	if _, exists := p.moduleScope[name]; exists {
		p.addError(nameStart, fmt.Sprintf("redefinition of identifier '%s'", name))
	} else {
		p.moduleScope[name] = insn
	}
}

// ===================================================================
// Instruction grammar
// ===================================================================

func (p *parser) parseInstruction() (*zir.Instruction, bool) {
	start := p.pos

	name, ok := p.readIdentUntil("(")
	if !ok {
		return nil, false
	}

	tag, ok := zir.TagByName(name)
	if !ok {
		p.addError(start, fmt.Sprintf("unknown instruction '%s'", name))
		return nil, false
	}

	if !p.require('(', "'('") {
		return nil, false
	}

	sig := zir.MustSignature(tag)
	insn := zir.NewInstruction(tag, start)

	for idx, spec := range sig.Positionals {
		p.skipSpace()

		if p.cur() == ')' {
			p.addError(p.pos, fmt.Sprintf("missing positional argument '%s'", spec.Name))
			return nil, false
		}

		val, ok := p.parseValue(spec.Kind, spec.EnumKind)
		if !ok {
			return nil, false
		}

		insn.Positionals[idx] = val
		p.skipSpace()

		if idx != len(sig.Positionals)-1 {
			// Between positional arguments, a ',' is accepted but not
			// strictly required (spec.md §9's open question); the
			// renderer always emits one, so the parser only needs to
			// consume it if present.
			if p.eatByte(',') {
				p.skipSpace()
			}
		}
	}

	p.skipSpace()

	for {
		if p.cur() == ')' {
			break
		}

		if p.eatByte(',') {
			p.skipSpace()
			continue
		}

		kwStart := p.pos

		kwName, ok := p.readIdentUntil("=")
		if !ok {
			return nil, false
		}

		if !p.require('=', "'='") {
			return nil, false
		}

		kwIdx, ok := sig.KeywordIndex(kwName)
		if !ok {
			p.addError(kwStart, fmt.Sprintf("unrecognized keyword '%s'", kwName))
			return nil, false
		}

		val, ok := p.parseValue(sig.Keywords[kwIdx].Kind, sig.Keywords[kwIdx].EnumKind)
		if !ok {
			return nil, false
		}

		insn.Keywords[kwIdx] = val
		p.skipSpace()
	}

	if !p.require(')', "')'") {
		return nil, false
	}

	return insn, true
}

// ===================================================================
// Value grammar, by declared argument type
// ===================================================================

func (p *parser) parseValue(kind zir.Kind, enumKind zir.EnumKind) (zir.Value, bool) {
	switch kind {
	case zir.KindInst:
		return p.parseInstRef()
	case zir.KindInstList:
		return p.parseInstList()
	case zir.KindString:
		return p.parseString()
	case zir.KindBigInt:
		return p.parseBigInt()
	case zir.KindBool:
		return p.parseBool()
	case zir.KindEnum:
		return p.parseEnum(enumKind)
	case zir.KindBlock:
		return p.parseBlock()
	default:
		panic("zirtext: unhandled argument kind")
	}
}

// parseInstRef parses a single '@'/'%'-prefixed instruction reference.
// '@' always resolves in module scope; '%' resolves in the nearest
// enclosing block scope, and is a diagnostic outside of one.
func (p *parser) parseInstRef() (zir.Value, bool) {
	start := p.pos
	sigil := p.cur()

	if sigil != '@' && sigil != '%' {
		p.addError(start, "expected '@' or '%' instruction reference")
		return zir.Value{}, false
	}

	p.pos++

	name, ok := p.readIdentUntil(", )]\n")
	if !ok {
		return zir.Value{}, false
	}

	if sigil == '%' {
		scope := p.currentBlockScope()
		if scope == nil {
			p.addError(start, "referencing a % instruction in global scope")
			return zir.Value{}, false
		}

		target, ok := scope[name]
		if !ok {
			p.addError(start, fmt.Sprintf("unrecognized identifier '%s'", name))
			return zir.Value{}, false
		}

		return zir.InstValue(target), true
	}

	target, ok := p.moduleScope[name]
	if !ok {
		p.addError(start, fmt.Sprintf("unrecognized identifier '%s'", name))
		return zir.Value{}, false
	}

	return zir.InstValue(target), true
}

func (p *parser) parseInstList() (zir.Value, bool) {
	if !p.require('[', "'['") {
		return zir.Value{}, false
	}

	p.skipSpace()

	var list []*zir.Instruction

	if p.eatByte(']') {
		return zir.InstListValue(list), true
	}

	for {
		p.skipSpace()

		ref, ok := p.parseInstRef()
		if !ok {
			return zir.Value{}, false
		}

		list = append(list, ref.Inst)
		p.skipSpace()

		if p.eatByte(',') {
			continue
		}

		break
	}

	p.skipSpace()

	if !p.require(']', "']'") {
		return zir.Value{}, false
	}

	return zir.InstListValue(list), true
}

// parseString scans a '"'-delimited string literal, treating '\' as
// "skip (and keep) the next byte", and delegates decoding to
// unescapeStringLiteral.
func (p *parser) parseString() (zir.Value, bool) {
	start := p.pos

	if !p.require('"', "string literal") {
		return zir.Value{}, false
	}

	contentStart := p.pos

	for {
		c := p.cur()

		if c == 0 {
			p.addError(start, "unexpected EOF")
			return zir.Value{}, false
		}

		if c == '\\' {
			if p.pos+1 >= len(p.src) || p.src[p.pos+1] == 0 {
				p.addError(p.pos, "invalid string-literal character")
				return zir.Value{}, false
			}

			p.pos += 2

			continue
		}

		if c == '"' {
			break
		}

		p.pos++
	}

	raw := p.src[contentStart:p.pos]
	p.pos++ // consume closing quote

	return zir.StringValue(unescapeStringLiteral(raw)), true
}

// parseBigInt scans an optional '-' followed by one or more decimal
// digits, and delegates the actual decimal parsing to math/big (standing
// in for spec.md's external bigint utility; see DESIGN.md for why no
// third-party arbitrary-precision library from the example pack fits).
func (p *parser) parseBigInt() (zir.Value, bool) {
	start := p.pos
	neg := p.eatByte('-')
	digitsStart := p.pos

	for p.cur() >= '0' && p.cur() <= '9' {
		p.pos++
	}

	if p.pos == digitsStart {
		p.addError(start, "invalid integer literal")
		return zir.Value{}, false
	}

	n, ok := new(big.Int).SetString(string(p.src[digitsStart:p.pos]), 10)
	if !ok {
		p.addError(start, "invalid integer literal")
		return zir.Value{}, false
	}

	if neg {
		n.Neg(n)
	}

	return zir.BigIntValue(n), true
}

func (p *parser) parseBool() (zir.Value, bool) {
	switch p.cur() {
	case '0':
		p.pos++
		return zir.BoolValue(false), true
	case '1':
		p.pos++
		return zir.BoolValue(true), true
	default:
		p.addError(p.pos, "expected '0' or '1'")
		return zir.Value{}, false
	}
}

func (p *parser) parseEnum(kind zir.EnumKind) (zir.Value, bool) {
	start := p.pos

	name, ok := p.readIdentUntil(", )\n")
	if !ok {
		return zir.Value{}, false
	}

	switch kind {
	case zir.EnumBuiltinType:
		bt, ok := zir.BuiltinTypeByName(name)
		if !ok {
			p.addError(start, fmt.Sprintf("tag '%s' not a member of enum 'BuiltinType'", name))
			return zir.Value{}, false
		}

		return zir.BuiltinTypeValue(bt), true
	case zir.EnumCallingConvention:
		cc, ok := zir.CallingConventionByName(name)
		if !ok {
			p.addError(start, fmt.Sprintf("tag '%s' not a member of enum 'CallingConvention'", name))
			return zir.Value{}, false
		}

		return zir.CallingConventionValue(cc), true
	default:
		panic("zirtext: unhandled enum kind")
	}
}

// parseBlock parses a function body: '{', then a sequence of ';'
// comments, '%name = instruction' definitions and whitespace, then '}'.
// Each definition is resolved and registered in the block's fresh scope
// before the next one is parsed, so forward references inside a block
// are unsupported by construction (spec.md's design notes call this out
// explicitly) — a forward reference always misses the block scope map
// and is reported as an unrecognized identifier.
func (p *parser) parseBlock() (zir.Value, bool) {
	if !p.require('{', "'{'") {
		return zir.Value{}, false
	}

	block := zir.NewBlock()
	scope := make(map[string]*zir.Instruction)
	p.blockScopes = append(p.blockScopes, scope)

	defer func() {
		p.blockScopes = p.blockScopes[:len(p.blockScopes)-1]
	}()

	for {
		p.skipSpace()

		switch c := p.cur(); {
		case c == '}':
			p.pos++
			return zir.BlockValue(block), true
		case c == ';':
			p.skipLineComment()
		case c == '%':
			p.pos++

			nameStart := p.pos

			name, ok := p.readIdentUntil(" \n")
			if !ok {
				return zir.Value{}, false
			}

			p.skipSpace()

			if !p.require('=', "'='") {
				return zir.Value{}, false
			}

			p.skipSpace()

			insn, ok := p.parseInstruction()
			if !ok {
				return zir.Value{}, false
			}

			block.Append(insn)

			if _, exists := scope[name]; exists {
				p.addError(nameStart, fmt.Sprintf("redefinition of identifier '%s'", name))
			} else {
				scope[name] = insn
			}
		case c == 0:
			p.addError(p.pos, "unexpected EOF")
			return zir.Value{}, false
		default:
			p.addError(p.pos, "unexpected byte")
			return zir.Value{}, false
		}
	}
}
