package commandline_test

import (
	"testing"

	"github.com/aetherarm/arm7tdmi/debugger/commandline"
)

// parse is a helper that fails the test immediately if the template
// doesn't parse. validation tests assume a well formed template.
func parse(t *testing.T, template ...string) *commandline.Commands {
	t.Helper()
	cmds, err := commandline.ParseCommandTemplate(template)
	if err != nil {
		t.Fatalf("%s", err)
	}
	return cmds
}

// expectValid checks every input against the command definitions,
// expecting validation to succeed.
func expectValid(t *testing.T, cmds *commandline.Commands, inputs ...string) {
	t.Helper()
	for _, input := range inputs {
		if err := cmds.Validate(input); err != nil {
			t.Errorf("%q doesn't validate but should: %s", input, err)
		}
	}
}

// expectInvalid is the inverse of expectValid.
func expectInvalid(t *testing.T, cmds *commandline.Commands, inputs ...string) {
	t.Helper()
	for _, input := range inputs {
		if err := cmds.Validate(input); err == nil {
			t.Errorf("%q validates but shouldn't", input)
		}
	}
}

func TestValidation_required(t *testing.T) {
	cmds := parse(t, "WATCH [READ|WRITE] %N")

	expectValid(t, cmds,
		"WATCH READ 0x40",
		"watch write 64",
	)
	expectInvalid(t, cmds,
		"WATCH READ",          // missing address
		"WATCH 0x40",          // missing access keyword
		"WATCH READ 0x40 ...", // excess argument
	)
}

func TestValidation_optional(t *testing.T) {
	cmds := parse(t, "DUMP (BYTES [%N])")

	expectValid(t, cmds,
		"DUMP",
		"DUMP BYTES 16",

		// optionality is per node, so the BYTES keyword can be skipped
		// while still supplying its count
		"DUMP 16",
	)
	expectInvalid(t, cmds,
		"DUMP BYTES", // BYTES commits to the group; the count is required
	)
}

func TestValidation_hexSigils(t *testing.T) {
	cmds := parse(t, "BREAK %N")

	// the tokeniser normalises the & and $ hex sigils to 0x
	expectValid(t, cmds, "BREAK 0x80", "BREAK &80", "BREAK $80", "BREAK 128")
	expectInvalid(t, cmds, "BREAK VBLANK")
}

func TestValidation_branchesAndNumeric(t *testing.T) {
	cmds := parse(t, "STEP (%N|FRAME)")

	expectValid(t, cmds,
		"STEP",
		"STEP 5",
		"STEP FRAME",
	)
	expectInvalid(t, cmds,
		"STEP SCANLINE",
		"STEP 5 FRAME",
	)
}

// a string placeholder only matches tentatively: an explicit keyword in a
// sibling branch is the better match when the input names it exactly.
func TestValidation_stringPlaceholder(t *testing.T) {
	cmds := parse(t, "LABEL [%S (LOCAL|GLOBAL)|LIST]")

	expectValid(t, cmds,
		"LABEL LIST",
		"LABEL reset_handler",
		"LABEL reset_handler LOCAL",
		"LABEL irq_stub GLOBAL",
	)
	expectInvalid(t, cmds,
		"LABEL",
		"LABEL reset_handler PC",
	)
}

func TestValidation_filenameFirstArg(t *testing.T) {
	cmds := parse(t, "LOAD [%F|LAST]")

	expectValid(t, cmds,
		"LOAD boot.gba",
		"LOAD LAST",
	)
	expectInvalid(t, cmds, "LOAD")
}

func TestValidation_doubleArgs(t *testing.T) {
	cmds := parse(t, "COMPARE %N %N")

	expectValid(t, cmds, "COMPARE 8 8")
	expectInvalid(t, cmds,
		"COMPARE 8",
		"COMPARE 8 8 8",
	)
}

func TestValidation_nestedGroups(t *testing.T) {
	cmds := parse(t, "PSR [(FLAGS)|CONTROL]")
	expectValid(t, cmds, "PSR FLAGS", "PSR CONTROL")
	expectInvalid(t, cmds, "PSR MODE")

	cmds = parse(t, "PSR (FLAGS|[CONTROL|(MODE|STATE)]|ALL)")
	expectValid(t, cmds, "PSR FLAGS", "PSR ALL", "PSR CONTROL")
}

func TestValidation_unrecognisedCommand(t *testing.T) {
	cmds := parse(t, "CONTINUE", "QUIT")

	expectValid(t, cmds, "CONTINUE", "quit")
	expectInvalid(t, cmds, "RUN")
}

func TestValidation_repeatGroups(t *testing.T) {
	cmds := parse(t, "BREAK {%N}")
	expectValid(t, cmds,
		"BREAK",
		"BREAK 0x100",
		"BREAK 0x100 0x200 0x300",
	)
	expectInvalid(t, cmds, "BREAK 0x100 start")

	cmds = parse(t, "FLAG {N|Z|C|V}")
	expectValid(t, cmds,
		"FLAG N",
		"FLAG N N",
		"FLAG Z N",
		"FLAG Z N C C",
	)
	expectInvalid(t, cmds, "FLAG N X")

	cmds = parse(t, "TRACE [ON|OFF {REGS|FLAGS}]")
	expectValid(t, cmds,
		"TRACE ON",
		"TRACE OFF",
		"TRACE OFF REGS",
		"TRACE OFF REGS FLAGS",
	)
	expectInvalid(t, cmds,
		"TRACE ON OFF",
		"TRACE OFF REGS ON",
		"TRACE OFF REGS FLAGS REGS WIBBLE",
	)
}

// a required group as the only content of a repeat group parses but can
// never validate. the pattern is reserved against a future meaning.
func TestValidation_repeatOfRequired(t *testing.T) {
	cmds := parse(t, "NOP {[PAD]}")

	expectInvalid(t, cmds,
		"NOP PAD",
		"NOP PAD PAD",
	)
}
