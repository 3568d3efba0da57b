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

// Module is the container produced by the parser or the lowerer, and
// consumed read-only by the renderer: an ordered sequence of top-level
// declarations plus an ordered sequence of diagnostics.
//
// spec.md describes the Module as owning an arena from which every
// instruction, string and bigint is allocated, released as a single unit
// on Module.Destroy.  Since this is a garbage-collected implementation
// there is no separate arena to free; Destroy simply drops the Module's
// own references so the garbage collector can reclaim the instruction
// graph once nothing else references it.  This still honours the
// single-call lifecycle spec.md requires of callers.
type Module struct {
	// Decls holds the top-level declarations, in declaration order. Decls[i]
	// is addressed in canonical text as "@i".
	Decls []*Instruction
	// Errors holds the diagnostics accumulated while producing this
	// Module, in the order they were raised.
	Errors []Diagnostic
}

// NewModule constructs an empty Module.
func NewModule() *Module {
	return &Module{}
}

// AddDecl appends a new top-level declaration and returns its module
// index (its "@i" name in canonical text).
func (m *Module) AddDecl(insn *Instruction) int {
	m.Decls = append(m.Decls, insn)
	return len(m.Decls) - 1
}

// AddError records a diagnostic against this Module.
func (m *Module) AddError(offset int, message string) {
	m.Errors = append(m.Errors, Diagnostic{Offset: offset, Message: message})
}

// HasErrors reports whether any diagnostic was recorded against this
// Module.
func (m *Module) HasErrors() bool {
	return len(m.Errors) > 0
}

// Destroy releases this Module's owned state.  See the Module doc
// comment for why this is a bookkeeping no-op rather than an arena free
// under a garbage-collected runtime.
func (m *Module) Destroy() {
	m.Decls = nil
	m.Errors = nil
}
