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

// Package lower converts an external typed-IR module (pkg/tir) into a
// ZIR Module, emitting analyzed typed values and functions as ZIR
// declarations.
//
// Grounded on pkg/hir/lower.go's LowerToMir in the teacher repository:
// walk the source IR's declarations, dispatch on node kind with a type
// switch, build a fresh destination module as you go. The per-constant
// memo table is the same map-threaded-through-a-pass idiom as
// pkg/asm/compiler/frame.go's register/value cache.
package lower

import (
	"fmt"
	"math/big"

	"github.com/zirc-lang/zirc/pkg/tir"
	"github.com/zirc-lang/zirc/pkg/zir"
)

var builtinTagTable = [...]zir.BuiltinType{
	tir.Isize:         zir.Isize,
	tir.Usize:         zir.Usize,
	tir.CShort:        zir.CShort,
	tir.CUshort:       zir.CUshort,
	tir.CInt:          zir.CInt,
	tir.CUint:         zir.CUint,
	tir.CLong:         zir.CLong,
	tir.CUlong:        zir.CUlong,
	tir.CLongLong:     zir.CLongLong,
	tir.CUlongLong:    zir.CUlongLong,
	tir.CLongDouble:   zir.CLongDouble,
	tir.CVoid:         zir.CVoid,
	tir.F16:           zir.F16,
	tir.F32:           zir.F32,
	tir.F64:           zir.F64,
	tir.F128:          zir.F128,
	tir.Bool:          zir.Bool,
	tir.Void:          zir.Void,
	tir.NoReturn:      zir.NoReturn,
	tir.TypeType:      zir.TypeType,
	tir.AnyError:      zir.AnyError,
	tir.ComptimeIntType: zir.ComptimeInt,
	tir.ComptimeFloat: zir.ComptimeFloat,
}

var callingConventionTable = [...]zir.CallingConvention{
	tir.Unspecified: zir.Unspecified,
	tir.C:           zir.C,
	tir.Naked:       zir.Naked,
	tir.Inline:      zir.Inline,
}

// lowerer holds the state threaded through one Lower call: the Module
// under construction and the constant memoization table (spec.md §4.5
// — two references to the same typed-IR constant share one ZIR
// declaration).
type lowerer struct {
	module *zir.Module
	consts map[tir.Value]*zir.Instruction
}

// Lower converts m into a ZIR Module whose declarations are the lowered
// exports plus every supporting declaration they require.
//
// A typed value or type outside the closed set this package knows how
// to emit is a fatal condition, not a diagnostic: spec.md §7 treats
// "not yet lowerable" as a programming gap in the current design, so
// this panics rather than recording a Diagnostic, and no partial Module
// is returned.
func Lower(m tir.Module) *zir.Module {
	l := &lowerer{
		module: zir.NewModule(),
		consts: make(map[tir.Value]*zir.Instruction),
	}

	for _, exp := range m.Exports() {
		l.lowerExport(exp)
	}

	for _, fn := range m.Functions() {
		l.lowerFunction(fn)
	}

	return l.module
}

func (l *lowerer) lowerExport(exp tir.Export) {
	value := l.lowerValue(exp.Value())
	name := l.emitStr(exp.SymbolName())

	decl := zir.NewInstruction(zir.Export, exp.Offset())
	decl.SetPositional("symbol_name", zir.InstValue(name))
	decl.SetPositional("value", zir.InstValue(value))
	l.module.AddDecl(decl)
}

// lowerValue dispatches on v's category (spec.md §4.5's typed-value
// emission), memoizing the result against v's identity so that a
// second reference to the same constant reuses the earlier
// declaration instead of emitting a duplicate.
func (l *lowerer) lowerValue(v tir.Value) *zir.Instruction {
	if zi, ok := l.consts[v]; ok {
		return zi
	}

	var zi *zir.Instruction

	switch v.Category() {
	case tir.PointerToByteArray:
		zi = l.emitStr(v.Bytes())
	case tir.ComptimeInt:
		zi = l.emitInt(v.Int())
	case tir.SizedInt:
		destType := l.lowerType(v.DestType())
		intDecl := l.emitInt(v.Int())

		as := zir.NewInstruction(zir.As, 0)
		as.SetPositional("dest_type", zir.InstValue(destType))
		as.SetPositional("value", zir.InstValue(intDecl))
		l.module.AddDecl(as)

		zi = as
	case tir.TypeValue:
		zi = l.lowerType(v.Type())
	case tir.FunctionValue:
		zi = l.lowerFunction(v.Function())
	default:
		panic(fmt.Sprintf("lower: typed value category %d not yet supported", v.Category()))
	}

	l.consts[v] = zi

	return zi
}

func (l *lowerer) emitStr(b []byte) *zir.Instruction {
	decl := zir.NewInstruction(zir.Str, 0)
	decl.SetPositional("bytes", zir.StringValue(b))
	l.module.AddDecl(decl)

	return decl
}

func (l *lowerer) emitInt(n *big.Int) *zir.Instruction {
	decl := zir.NewInstruction(zir.Int, 0)
	decl.SetPositional("int", zir.BigIntValue(n))
	l.module.AddDecl(decl)

	return decl
}

// lowerType is type emission's closed dispatch on t's category
// (spec.md §4.5).
func (l *lowerer) lowerType(t tir.Type) *zir.Instruction {
	switch t.Category() {
	case tir.TypeBuiltin:
		decl := zir.NewInstruction(zir.Primitive, 0)
		decl.SetPositional("tag", zir.BuiltinTypeValue(builtinTagTable[t.Builtin()]))
		l.module.AddDecl(decl)

		return decl
	case tir.TypeFn:
		params := make([]*zir.Instruction, 0, len(t.ParamTypes()))
		for _, p := range t.ParamTypes() {
			params = append(params, l.lowerType(p))
		}

		ret := l.lowerType(t.ReturnType())

		decl := zir.NewInstruction(zir.FnType, 0)
		decl.SetPositional("param_types", zir.InstListValue(params))
		decl.SetPositional("return_type", zir.InstValue(ret))
		decl.SetKeyword("cc", zir.CallingConventionValue(callingConventionTable[t.CallingConvention()]))
		l.module.AddDecl(decl)

		return decl
	default:
		panic(fmt.Sprintf("lower: type category %d not yet supported", t.Category()))
	}
}

// lowerFunction emits fn's body in order, then wraps it in a
// fn(fn_type, body) declaration.
func (l *lowerer) lowerFunction(fn tir.Function) *zir.Instruction {
	fnType := l.lowerType(fn.Type())
	block := zir.NewBlock()
	bodyMap := make(map[tir.Instruction]*zir.Instruction, len(fn.Body()))

	for _, instr := range fn.Body() {
		zi := l.lowerBodyInstruction(instr, bodyMap)
		block.Append(zi)
		bodyMap[instr] = zi
	}

	decl := zir.NewInstruction(zir.Fn, 0)
	decl.SetPositional("fn_type", zir.InstValue(fnType))
	decl.SetPositional("body", zir.BlockValue(block))
	l.module.AddDecl(decl)

	return decl
}

// lowerBodyInstruction emits one ZIR body instruction for a single
// typed-IR function-body instruction (spec.md §4.5's function
// emission dispatch). It does not register the result in bodyMap;
// callers do that once they have also appended it to the block, so
// that an instruction can refer to itself only after it exists.
func (l *lowerer) lowerBodyInstruction(instr tir.Instruction, bodyMap map[tir.Instruction]*zir.Instruction) *zir.Instruction {
	switch instr.Kind() {
	case tir.Unreach:
		return zir.NewInstruction(zir.Unreachable, instr.Offset())
	case tir.Assembly:
		return l.lowerAssembly(instr, bodyMap)
	case tir.PtrToInt:
		decl := zir.NewInstruction(zir.PtrToInt, instr.Offset())
		decl.SetPositional("ptr", zir.InstValue(l.resolveOperand(bodyMap, instr.Operand())))

		return decl
	case tir.BitCast:
		decl := zir.NewInstruction(zir.BitCast, instr.Offset())
		decl.SetPositional("dest_type", zir.InstValue(l.lowerType(instr.DestType())))
		decl.SetPositional("operand", zir.InstValue(l.resolveOperand(bodyMap, instr.Operand())))

		return decl
	case tir.Constant:
		// spec.md §4.5: a constant must never appear directly in a
		// function body; it is materialized on reference via
		// memoization. Reaching this is a programmer error in the
		// typed-IR producer, not malformed input.
		panic("lower: constant instruction encountered directly in function body")
	default:
		panic(fmt.Sprintf("lower: function-body instruction kind %d not yet supported", instr.Kind()))
	}
}

func (l *lowerer) lowerAssembly(instr tir.Instruction, bodyMap map[tir.Instruction]*zir.Instruction) *zir.Instruction {
	source := l.emitStr(instr.Source())
	returnType := l.lowerType(instr.ReturnType())

	decl := zir.NewInstruction(zir.Asm, instr.Offset())
	decl.SetPositional("asm_source", zir.InstValue(source))
	decl.SetPositional("return_type", zir.InstValue(returnType))
	decl.SetKeyword("volatile", zir.BoolValue(instr.Volatile()))

	if output, ok := instr.Output(); ok {
		decl.SetKeyword("output", zir.InstValue(l.resolveOperand(bodyMap, output)))
	}

	decl.SetKeyword("inputs", zir.InstListValue(l.resolveOperands(bodyMap, instr.Inputs())))
	decl.SetKeyword("clobbers", zir.InstListValue(l.resolveOperands(bodyMap, instr.Clobbers())))
	decl.SetKeyword("args", zir.InstListValue(l.resolveOperands(bodyMap, instr.Args())))

	return decl
}

// resolveOperand maps a typed-IR operand to its already-lowered ZIR
// counterpart: a constant reference is resolved (and memoized) through
// lowerValue; anything else must already be in bodyMap, since function
// bodies lower strictly in order.
func (l *lowerer) resolveOperand(bodyMap map[tir.Instruction]*zir.Instruction, operand tir.Instruction) *zir.Instruction {
	if operand.Kind() == tir.Constant {
		return l.lowerValue(operand.ConstantValue())
	}

	zi, ok := bodyMap[operand]
	if !ok {
		panic("lower: function-body instruction referenced before it was emitted")
	}

	return zi
}

func (l *lowerer) resolveOperands(bodyMap map[tir.Instruction]*zir.Instruction, operands []tir.Instruction) []*zir.Instruction {
	out := make([]*zir.Instruction, 0, len(operands))

	for _, op := range operands {
		out = append(out, l.resolveOperand(bodyMap, op))
	}

	return out
}
