package commandline_test

import (
	"os"
	"strings"
	"testing"

	"github.com/aetherarm/arm7tdmi/debugger/commandline"
	"github.com/aetherarm/arm7tdmi/test"
	"github.com/bradleyjkemp/memviz"
)

// expectEquality compares a template, as passed to ParseCommandTemplate(),
// with the String() output of the resulting Commands object. The entries of
// the template are joined with newlines and upper-cased before comparing,
// which is how the parser normalises them.
func expectEquality(t *testing.T, template []string, cmds *commandline.Commands) {
	t.Helper()
	if strings.ToUpper(strings.Join(template, "\n")) != cmds.String() {
		t.Errorf("parsed commands do not match template: %q != %q",
			cmds.String(), strings.ToUpper(strings.Join(template, "\n")))
	}
}

// expectEquivalency is for templates the parser is allowed to restructure:
// the String() output won't equal the original template, but feeding it back
// through the parser must reproduce it exactly. If the second pass is stable
// the first pass was parsed without loss.
func expectEquivalency(t *testing.T, cmds *commandline.Commands) {
	t.Helper()

	template := strings.Split(cmds.String(), "\n")
	cmds, err := commandline.ParseCommandTemplate(template)
	if test.ExpectSuccess(t, err) {
		expectEquality(t, template, cmds)
	}
}

// parseEquality runs one template through the parser and requires the exact
// round trip.
func parseEquality(t *testing.T, template ...string) {
	t.Helper()
	cmds, err := commandline.ParseCommandTemplate(template)
	if test.ExpectSuccess(t, err) {
		expectEquality(t, template, cmds)
	}
}

func TestParser_optimised(t *testing.T) {
	// ungrouped members inside a group are re-wrapped individually by
	// String(). the result is not textually identical but must be
	// equivalent
	for _, template := range [][]string{
		{"MAP [IO [PAL] [VRAM] [OAM]]"},
		{"CPU (ARM|THUMB|(PIPE LINE)|FLAGS) (QUIET)"},
	} {
		cmds, err := commandline.ParseCommandTemplate(template)
		if test.ExpectSuccess(t, err) {
			expectEquivalency(t, cmds)
		}
	}
}

func TestParser_nestedGroups(t *testing.T) {
	parseEquality(t, "IRQ (MASK|RAISE (VBLANK|HBLANK TIMER|SERIAL) CLEAR)")
}

func TestParser_badGroupings(t *testing.T) {
	var err error

	// open groups must be closed
	_, err = commandline.ParseCommandTemplate([]string{"STEP (IN"})
	test.ExpectFailure(t, err)

	// and closed with the matching bracket
	_, err = commandline.ParseCommandTemplate([]string{"STEP (IN]"})
	test.ExpectFailure(t, err)
}

func TestParser_goodGroupings(t *testing.T) {
	parseEquality(t, "LAYERS (BG0 [BG1] [BG2] [BG3])")
}

func TestParser_nestedGroupings(t *testing.T) {
	parseEquality(t, "PSR [(FLAGS)|CONTROL]")
	parseEquality(t, "PSR (FLAGS|[CONTROL])")
	parseEquality(t, "PSR (FLAGS|[CONTROL|(MODE|STATE)]|ALL)")
}

func TestParser_rootGroupings(t *testing.T) {
	parseEquality(t, "RESET (HARD)")
}

func TestParser_placeholders(t *testing.T) {
	// placeholder directives must be complete
	_, err := commandline.ParseCommandTemplate([]string{"POKE %"})
	test.ExpectFailure(t, err)

	// placeholder directives must be recognised
	_, err = commandline.ParseCommandTemplate([]string{"POKE %q"})
	test.ExpectFailure(t, err)

	// double %% is a valid placeholder directive
	parseEquality(t, "HASH ROM %%")

	// placeholder directives must be separated from surrounding text
	_, err = commandline.ParseCommandTemplate([]string{"HASH ROM%%"})
	test.ExpectFailure(t, err)
}

func TestParser_doubleArgs(t *testing.T) {
	parseEquality(t, "SWI VECTOR BASE")
	parseEquality(t, "TILE (SET BANK PAL)")
	parseEquality(t, "DMA (SRC|DST|FILL COUNT|CHAN) (NOW)")
}

func TestParser_repeatGroups(t *testing.T) {
	parseEquality(t, "POKE {%N}")
	parseEquality(t, "SET {N|Z}")
	parseEquality(t, "WAIT {[VBLANK|HBLANK]}")
	parseEquality(t, "LIST {BREAK|WATCH|TRACE}")
	parseEquality(t, "FILL {WORD %N}")
	parseEquality(t, "STAT {CPU|BUS %N}")
}

func TestParser_addHelp(t *testing.T) {
	template := []string{
		"CONTINUE",
		"STEP (%N|FRAME)",
		"BREAK {%N}",
		"WATCH [READ|WRITE] %N",
		"LOAD [%F|LAST]",
	}

	cmds, err := commandline.ParseCommandTemplate(template)
	if test.ExpectSuccess(t, err) {
		expectEquality(t, template, cmds)
	}

	err = cmds.AddHelp("HELP")
	test.ExpectSuccess(t, err)

	// the help command's arguments are the other commands' names
	test.ExpectSuccess(t, cmds.Validate("HELP BREAK") == nil)
	test.ExpectSuccess(t, cmds.Validate("HELP") == nil)

	// adding a second HELP command is not allowed
	err = cmds.AddHelp("HELP")
	test.ExpectFailure(t, err)
}

// TestParser_visualise dumps the parsed node graph for the debugger's
// command set to a dot file, for visual inspection when the grammar grows
// unwieldy.
func TestParser_visualise(t *testing.T) {
	cmds, err := commandline.ParseCommandTemplate([]string{
		"CONTINUE",
		"STEP (%N)",
		"BREAK %N",
		"PRINT",
		"READ %N",
		"QUIT",
	})
	if !test.ExpectSuccess(t, err) {
		return
	}
	if !test.ExpectSuccess(t, cmds.AddHelp("HELP")) {
		return
	}

	f, err := os.CreateTemp("", "commandline-*.dot")
	if !test.ExpectSuccess(t, err) {
		return
	}
	defer os.Remove(f.Name())
	defer f.Close()

	memviz.Map(f, cmds)
}
