package commandline

import (
	"strings"

	"github.com/aetherarm/arm7tdmi/errors"
)

// AddHelp appends a help command to an already parsed Commands instance. The
// names of the existing commands become the help command's optional
// argument, so "help <command>" validates for every command in the set.
func (cmds *Commands) AddHelp(helpCommand string) error {
	for i := 0; i < len(*cmds); i++ {
		if (*cmds)[i].tag == helpCommand {
			return errors.NewFormattedError(errors.ParserError, helpCommand, "already present", 0)
		}
	}

	defn := strings.Builder{}
	defn.WriteString(helpCommand)
	defn.WriteString(" (")

	if len(*cmds) > 0 {
		defn.WriteString((*cmds)[0].tag)
		for i := 1; i < len(*cmds); i++ {
			defn.WriteString("|")
			defn.WriteString((*cmds)[i].tag)
		}
	}

	defn.WriteString(")")

	p, d, err := parseDefinition(defn.String(), "")
	if err != nil {
		return errors.NewFormattedError(errors.ParserError, helpCommand, err, d)
	}

	*cmds = append((*cmds), p)

	return nil
}
