// This file is part of AetherARM.
//
// AetherARM is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// AetherARM is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with AetherARM.  If not, see <https://www.gnu.org/licenses/>.

package debugger

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aetherarm/arm7tdmi/cpu"
	"github.com/aetherarm/arm7tdmi/debugger/commandline"
)

// commandTemplate enumerates the debugger's command surface. The HELP
// command is not listed; it is added by commandline.AddHelp so that the
// command names themselves become its valid arguments.
var commandTemplate = []string{
	"CONTINUE",
	"STEP (%N)",
	"BREAK %N",
	"PRINT",
	"READ %N",
	"QUIT",
}

// Debugger drives a *cpu.CPU one Step() at a time under the control of
// commands read from an io.Reader, writing responses to an io.Writer.
type Debugger struct {
	CPU         *cpu.CPU
	Breakpoints *Breakpoints

	in  *bufio.Scanner
	out io.Writer

	commands *commandline.Commands

	quit bool
}

// NewDebugger creates a Debugger for c, reading commands from in and
// writing output to out.
func NewDebugger(c *cpu.CPU, in io.Reader, out io.Writer) (*Debugger, error) {
	cmds, err := commandline.ParseCommandTemplate(commandTemplate)
	if err != nil {
		return nil, fmt.Errorf("debugger: %w", err)
	}

	if err := cmds.AddHelp("HELP"); err != nil {
		return nil, fmt.Errorf("debugger: %w", err)
	}

	return &Debugger{
		CPU:         c,
		Breakpoints: NewBreakpoints(),
		in:          bufio.NewScanner(in),
		out:         out,
		commands:    cmds,
	}, nil
}

// RunScript executes each line of a script as if it had been typed at
// the prompt, stopping at the first error or at a "quit" command.
func (d *Debugger) RunScript(lines []string) error {
	for _, line := range lines {
		if err := d.dispatch(line); err != nil {
			return err
		}
		if d.quit {
			return nil
		}
	}
	return nil
}

// InputLoop reads commands from the Debugger's input reader until EOF or
// "quit", printing a prompt and each command's response to the output
// writer. A command's error, including a fatal CPU error, is printed and
// the loop waits for the next command. This is the loop a terminal frontend
// calls; it is the only place in this package that talks to the
// reader/writer pair directly.
func (d *Debugger) InputLoop() error {
	for !d.quit {
		fmt.Fprint(d.out, "> ")
		if !d.in.Scan() {
			return nil
		}
		if err := d.dispatch(d.in.Text()); err != nil {
			fmt.Fprintf(d.out, "error: %s\n", err)
		}
	}
	return nil
}

// dispatch validates and runs a single command line.
func (d *Debugger) dispatch(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	tokens := commandline.TokeniseInput(line)
	if err := d.commands.ValidateTokens(tokens); err != nil {
		return err
	}
	tokens.Reset()

	cmd, _ := tokens.Get()
	switch strings.ToUpper(cmd) {
	case "CONTINUE":
		return d.cmdContinue()
	case "STEP":
		return d.cmdStep(tokens)
	case "BREAK":
		return d.cmdBreak(tokens)
	case "PRINT":
		return d.cmdPrint()
	case "READ":
		return d.cmdRead(tokens)
	case "QUIT":
		d.quit = true
		return nil
	case "HELP":
		return d.cmdHelp(tokens)
	}

	return fmt.Errorf("unrecognised command (%s)", cmd)
}

// cmdContinue steps the CPU until a breakpoint is hit or an error
// occurs.
func (d *Debugger) cmdContinue() error {
	for {
		if err := d.CPU.Step(); err != nil {
			return err
		}
		if d.Breakpoints.Check(d.CPU.Get(cpu.RegPC)) {
			fmt.Fprintf(d.out, "breakpoint at %08x\n", d.CPU.Get(cpu.RegPC))
			return nil
		}
	}
}

// cmdStep steps the CPU n times (default 1).
func (d *Debugger) cmdStep(tokens *commandline.Tokens) error {
	n := 1
	if arg, ok := tokens.Get(); ok {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("step: %w", err)
		}
		n = v
	}

	for i := 0; i < n; i++ {
		if err := d.CPU.Step(); err != nil {
			return err
		}
	}
	fmt.Fprintf(d.out, "pc=%08x\n", d.CPU.Get(cpu.RegPC))
	return nil
}

// cmdBreak registers a breakpoint at a hex address.
func (d *Debugger) cmdBreak(tokens *commandline.Tokens) error {
	arg, ok := tokens.Get()
	if !ok {
		return fmt.Errorf("break: missing address")
	}
	addr, err := parseHexAddr(arg)
	if err != nil {
		return fmt.Errorf("break: %w", err)
	}
	d.Breakpoints.Add(addr)
	fmt.Fprintf(d.out, "breakpoint set at %08x\n", addr)
	return nil
}

// cmdRead prints the byte at a hex address.
func (d *Debugger) cmdRead(tokens *commandline.Tokens) error {
	arg, ok := tokens.Get()
	if !ok {
		return fmt.Errorf("read: missing address")
	}
	addr, err := parseHexAddr(arg)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	v, err := d.CPU.Bus.Read8(addr)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "%08x: %02x\n", addr, v)
	return nil
}

// cmdPrint prints the general-purpose registers, CPSR flags, and
// processor mode.
func (d *Debugger) cmdPrint() error {
	for i := uint(0); i <= 15; i++ {
		fmt.Fprintf(d.out, "r%-2d = %08x\n", i, d.CPU.Get(i))
	}
	fmt.Fprintf(d.out, "cpsr = %08x  n=%v z=%v c=%v v=%v i=%v f=%v t=%v mode=%s\n",
		d.CPU.CPSR(),
		d.CPU.Negative(), d.CPU.Zero(), d.CPU.Carry(), d.CPU.Overflow(),
		d.CPU.IRQDisable(), d.CPU.FIQDisable(), d.CPU.Thumb(),
		d.CPU.Mode())
	return nil
}

// cmdHelp prints the full command list. There are no structured
// sub-topics; an argument is accepted but the response is the same.
func (d *Debugger) cmdHelp(tokens *commandline.Tokens) error {
	fmt.Fprintln(d.out, d.commands.String())
	return nil
}

// parseHexAddr parses a hex address argument, accepting an optional
// leading "0x"/"0X".
func parseHexAddr(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
