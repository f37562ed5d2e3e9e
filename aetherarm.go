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

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/aetherarm/arm7tdmi/cartridgeloader"
	"github.com/aetherarm/arm7tdmi/cpu"
	"github.com/aetherarm/arm7tdmi/debugger"
	"github.com/aetherarm/arm7tdmi/logger"
	"github.com/aetherarm/arm7tdmi/membus"
)

// command line flags common to both modes of operation.
type launchArgs struct {
	bios    string
	cart    string
	debug   bool
	logTail int
	paced   bool
}

func main() {
	if err := mainLoop(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func mainLoop(args []string) error {
	var a launchArgs

	flgs := flag.NewFlagSet("arm7tdmi", flag.ExitOnError)
	flgs.StringVar(&a.bios, "bios", "", "path to the 16KiB BIOS image (required)")
	flgs.StringVar(&a.cart, "cart", "", "path to the cartridge image (required)")
	flgs.BoolVar(&a.debug, "debug", false, "drop into the interactive debugger instead of free-running")
	flgs.IntVar(&a.logTail, "logtail", 0, "print the last N log entries on exit (0 disables)")
	flgs.BoolVar(&a.paced, "paced", false, "pace free-running execution toward the hardware clock rate")
	if err := flgs.Parse(args); err != nil {
		return err
	}

	if a.bios == "" || a.cart == "" {
		flgs.Usage()
		return fmt.Errorf("both -bios and -cart are required")
	}

	bus, err := buildBus(a.bios, a.cart)
	if err != nil {
		return err
	}

	var cfg cpu.Config
	if a.paced {
		cfg.ClockHz = cpu.DefaultClockHz
	}
	c := cpu.NewCPUWithConfig(bus, cfg)

	if a.logTail > 0 {
		defer logger.Tail(os.Stderr, a.logTail)
	}

	if a.debug {
		return runDebugger(c)
	}
	return runFree(c)
}

// buildBus loads the BIOS and cartridge images named by biosPath and
// cartPath and wires them into a fresh membus.Bus.
func buildBus(biosPath, cartPath string) (*membus.Bus, error) {
	bios, err := cartridgeloader.LoadBIOS(biosPath)
	if err != nil {
		return nil, err
	}

	ld, err := cartridgeloader.NewLoaderFromFilename(cartPath)
	if err != nil {
		return nil, err
	}
	defer ld.Close()

	if err := ld.Open(); err != nil {
		return nil, err
	}

	logger.Logf("main", "loaded cartridge %q (%s)", ld.Title(), ld.Filename)

	return membus.NewBus(bios, *ld.Data), nil
}

// runDebugger hands c to an interactive debugger reading commands from
// stdin and writing responses to stdout.
func runDebugger(c *cpu.CPU) error {
	dbg, err := debugger.NewDebugger(c, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	return dbg.InputLoop()
}

// runFree steps c until a fatal CPU error occurs, with no breakpoints.
// The host that would normally pace execution (a pixel generator, a
// display) isn't part of this module, so running without -debug runs the
// core until it errors: as fast as it can, or paced by the CPU's own
// Config.ClockHz when -paced is given.
func runFree(c *cpu.CPU) error {
	for {
		if err := c.Step(); err != nil {
			return err
		}
	}
}
