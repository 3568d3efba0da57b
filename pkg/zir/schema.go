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

// PositionalSpec declares one positional argument of an instruction tag:
// its name (used in diagnostics and by the name-based accessors in
// instr.go; positionals are addressed by order in the text) and its
// value kind.
type PositionalSpec struct {
	Name     string
	Kind     Kind
	EnumKind EnumKind
}

// KeywordSpec declares one keyword argument of an instruction tag: its
// name (as it appears before "=" in the text), its value kind, and its
// default value used when the keyword is omitted.
type KeywordSpec struct {
	Name     string
	Kind     Kind
	EnumKind EnumKind
	Default  Value
}

// Signature is the full positional and keyword argument schema for one
// instruction tag.  This is the single source of truth the parser, the
// renderer and the lowerer all consult; adding a tag means adding its
// constant and name in tag.go, one Signature to the table below and,
// where the lowerer needs to produce it, one lowering case.
type Signature struct {
	Tag         Tag
	Positionals []PositionalSpec
	Keywords    []KeywordSpec
}

// schema is the tag-indexed instruction schema table, populated once in
// init below.  Grounded on the teacher's habit of a single init()
// registering one entry per instruction kind (pkg/asm/io/macro/insn.go's
// gob.Register calls), generalised here from a type registration to an
// argument-signature registration.
var schema map[Tag]*Signature

func inst(name string) PositionalSpec     { return PositionalSpec{Name: name, Kind: KindInst} }
func instList(name string) PositionalSpec { return PositionalSpec{Name: name, Kind: KindInstList} }
func strArg(name string) PositionalSpec   { return PositionalSpec{Name: name, Kind: KindString} }
func bigintArg(name string) PositionalSpec {
	return PositionalSpec{Name: name, Kind: KindBigInt}
}

func enumArg(name string, ek EnumKind) PositionalSpec {
	return PositionalSpec{Name: name, Kind: KindEnum, EnumKind: ek}
}

func kwBool(name string, def bool) KeywordSpec {
	return KeywordSpec{Name: name, Kind: KindBool, Default: BoolValue(def)}
}

func kwInst(name string) KeywordSpec {
	return KeywordSpec{Name: name, Kind: KindInst, Default: InstValue(nil)}
}

func kwInstList(name string) KeywordSpec {
	return KeywordSpec{Name: name, Kind: KindInstList, Default: InstListValue(nil)}
}

func kwCallingConvention(name string, def CallingConvention) KeywordSpec {
	return KeywordSpec{
		Name: name, Kind: KindEnum, EnumKind: EnumCallingConvention,
		Default: CallingConventionValue(def),
	}
}

func register(tag Tag, positionals []PositionalSpec, keywords []KeywordSpec) {
	schema[tag] = &Signature{Tag: tag, Positionals: positionals, Keywords: keywords}
}

func init() {
	schema = make(map[Tag]*Signature, len(tagNames))

	register(Str, []PositionalSpec{strArg("bytes")}, nil)
	register(Int, []PositionalSpec{bigintArg("int")}, nil)
	register(Primitive, []PositionalSpec{enumArg("tag", EnumBuiltinType)}, nil)
	register(FnType,
		[]PositionalSpec{instList("param_types"), inst("return_type")},
		[]KeywordSpec{kwCallingConvention("cc", Unspecified)},
	)
	register(Fn, []PositionalSpec{inst("fn_type"), {Name: "body", Kind: KindBlock}}, nil)
	register(Export, []PositionalSpec{inst("symbol_name"), inst("value")}, nil)
	register(Asm,
		[]PositionalSpec{inst("asm_source"), inst("return_type")},
		[]KeywordSpec{
			kwBool("volatile", false),
			kwInst("output"),
			kwInstList("inputs"),
			kwInstList("clobbers"),
			kwInstList("args"),
		},
	)
	register(As, []PositionalSpec{inst("dest_type"), inst("value")}, nil)
	register(IntCast, []PositionalSpec{inst("dest_type"), inst("value")}, nil)
	register(BitCast, []PositionalSpec{inst("dest_type"), inst("operand")}, nil)
	register(PtrToInt, []PositionalSpec{inst("ptr")}, nil)
	register(Deref, []PositionalSpec{inst("ptr")}, nil)
	register(FieldPtr, []PositionalSpec{inst("object_ptr"), inst("field_name")}, nil)
	register(ElemPtr, []PositionalSpec{inst("array_ptr"), inst("index")}, nil)
	register(Add, []PositionalSpec{inst("lhs"), inst("rhs")}, nil)
	register(Unreachable, nil, nil)
}

// Lookup returns the schema signature for a tag, or false if the tag is
// not a member of the closed set (should not happen for a valid Tag
// value, but callers constructing tags from untrusted input should use
// TagByName first).
func Lookup(tag Tag) (*Signature, bool) {
	sig, ok := schema[tag]
	return sig, ok
}

// MustSignature returns the schema signature for a tag, panicking if the
// tag is unknown.  Used internally once a tag has already been validated.
func MustSignature(tag Tag) *Signature {
	sig, ok := schema[tag]
	if !ok {
		panic("zir: unknown tag in schema lookup")
	}

	return sig
}

// PositionalIndex looks up a positional argument spec by name within this
// signature, returning its index and true, or (0, false) if absent.
func (s *Signature) PositionalIndex(name string) (int, bool) {
	for i, p := range s.Positionals {
		if p.Name == name {
			return i, true
		}
	}

	return 0, false
}

// KeywordIndex looks up a keyword argument spec by name within this
// signature, returning its index and true, or (0, false) if absent.
func (s *Signature) KeywordIndex(name string) (int, bool) {
	for i, k := range s.Keywords {
		if k.Name == name {
			return i, true
		}
	}

	return 0, false
}
