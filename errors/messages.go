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

package errors

// messageText maps each Errno to the format string used to build its
// error message. Every format takes exactly one %v, into which New() and
// NewFormattedError() substitute all of their variadic values, joined.
var messageText = map[Errno]string{
	InputEmpty:            "input empty: %v",
	CommandError:          "%v",
	ParserError:           "parser error: %v",
	ValidationError:       "%v",
	HelpError:             "help error: %v",
	PanicError:            "panic: %v",
	SymbolsFileCannotOpen: "symbols error: cannot open symbols file (%v)",
	SymbolsFileError:      "symbols error: %v",
	SymbolUnknown:         "symbols error: unrecognised symbol (%v)",
	ScriptFileCannotOpen:  "script error: cannot open script file (%v)",
	ScriptFileError:       "script error: %v",
	InvalidTarget:         "invalid target (%v)",
	BreakpointError:       "breakpoint error: %v",
	CartridgeFileError:    "cartridge loading error: %v",
	CartridgeUnsupported:  "cartridge error: unsupported image (%v)",
	CartridgeMissing:      "cartridge error: no cartridge attached",
}
