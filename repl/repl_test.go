package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ember/internal/types"
)

// TestStartPrintsIRForWellFormedModule confirms a single module followed
// by a blank line produces an IR dump before the loop reads end of input.
func TestStartPrintsIRForWellFormedModule(t *testing.T) {
	in := bytes.NewBufferString("module m {\n    fn main() {\n    }\n}\n\n")
	var out bytes.Buffer

	Start(in, &out, types.Word64)

	assert.Contains(t, out.String(), "proc main()")
}

// TestStartReportsParseError confirms a malformed block prints a
// diagnostic instead of panicking and without losing the prompt loop.
func TestStartReportsParseError(t *testing.T) {
	in := bytes.NewBufferString("module m {\n    fn main() {\n\n")
	var out bytes.Buffer

	Start(in, &out, types.Word64)

	assert.NotContains(t, out.String(), "proc main()")
	assert.Contains(t, out.String(), prompt)
}

// TestStartHandlesMultipleBlocksIndependently checks that one block's
// result doesn't leak into or block evaluation of the next.
func TestStartHandlesMultipleBlocksIndependently(t *testing.T) {
	in := bytes.NewBufferString(
		"module a {\n    fn main() {\n    }\n}\n\n" +
			"module b {\n    #[entry]\n    fn run() {\n    }\n}\n\n",
	)
	var out bytes.Buffer

	Start(in, &out, types.Word64)

	assert.Equal(t, 2, strings.Count(out.String(), "proc main()"))
}
