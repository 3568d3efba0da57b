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
	"bytes"
	"testing"
)

// render parses input, re-renders the resulting Module, and returns the
// rendered text, failing the test on any parse diagnostic.
func render(t *testing.T, input string) string {
	t.Helper()

	m := checkOk(t, input)

	var buf bytes.Buffer
	if err := Render(&buf, m); err != nil {
		t.Fatalf("Render: %v", err)
	}

	return buf.String()
}

func TestRenderEmptyModule(t *testing.T) {
	if got := render(t, ""); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestRenderRoundTripsString(t *testing.T) {
	const input = "@0 = str(\"hi\")\n"

	if got := render(t, input); got != input {
		t.Fatalf("round-trip mismatch:\n got: %q\nwant: %q", got, input)
	}
}

func TestRenderRoundTripsFunctionWithBody(t *testing.T) {
	const input = `@0 = primitive(void)
@1 = fntype([], @0)
@2 = fn(@1, {
  %0 = unreachable()
})
`

	if got := render(t, input); got != input {
		t.Fatalf("round-trip mismatch:\n got: %q\nwant: %q", got, input)
	}
}

// TestRenderOmitsDefaultKeywords exercises the "always omit a keyword
// equal to its schema default" normal form: an explicit volatile=0 in
// the input still renders with the keyword omitted entirely.
func TestRenderOmitsDefaultKeywords(t *testing.T) {
	const input = `@0 = str("nop")
@1 = primitive(void)
@2 = asm(@0, @1, volatile=0)
`
	const want = `@0 = str("nop")
@1 = primitive(void)
@2 = asm(@0, @1)
`

	if got := render(t, input); got != want {
		t.Fatalf("round-trip mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderPreservesNonDefaultKeyword(t *testing.T) {
	const input = `@0 = str("nop")
@1 = primitive(void)
@2 = asm(@0, @1, volatile=1)
`

	if got := render(t, input); got != input {
		t.Fatalf("round-trip mismatch:\n got: %q\nwant: %q", got, input)
	}
}

func TestRenderPreservesNonDefaultCallingConvention(t *testing.T) {
	const input = `@0 = primitive(void)
@1 = fntype([], @0, cc=C)
`

	if got := render(t, input); got != input {
		t.Fatalf("round-trip mismatch:\n got: %q\nwant: %q", got, input)
	}
}

func TestRenderEscapesStringSpecialBytes(t *testing.T) {
	const input = "@0 = str(\"a\\\"b\\\\c\")\n"

	if got := render(t, input); got != input {
		t.Fatalf("round-trip mismatch:\n got: %q\nwant: %q", got, input)
	}
}

func TestRenderNegativeInt(t *testing.T) {
	const input = "@0 = int(-42)\n"

	if got := render(t, input); got != input {
		t.Fatalf("round-trip mismatch:\n got: %q\nwant: %q", got, input)
	}
}

func TestRenderDropsComments(t *testing.T) {
	const input = "; a comment\n@0 = primitive(void)\n"
	const want = "@0 = primitive(void)\n"

	if got := render(t, input); got != want {
		t.Fatalf("expected comments dropped:\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderInstList(t *testing.T) {
	const input = `@0 = primitive(void)
@1 = fntype([@0, @0], @0)
`

	if got := render(t, input); got != input {
		t.Fatalf("round-trip mismatch:\n got: %q\nwant: %q", got, input)
	}
}
