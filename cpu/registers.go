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

package cpu

import "github.com/aetherarm/arm7tdmi/bits"

// Mode is one of the seven processor modes. Mode transitions only
// happen via an explicit write (eg. MSR); nothing in this package
// changes mode as a side effect of anything other than a direct
// request to do so.
type Mode uint32

const (
	ModeUSR Mode = 0b10000
	ModeFIQ Mode = 0b10001
	ModeIRQ Mode = 0b10010
	ModeSVC Mode = 0b10011
	ModeABT Mode = 0b10111
	ModeUND Mode = 0b11011
	ModeSYS Mode = 0b11111
)

func (m Mode) String() string {
	switch m {
	case ModeUSR:
		return "USR"
	case ModeFIQ:
		return "FIQ"
	case ModeIRQ:
		return "IRQ"
	case ModeSVC:
		return "SVC"
	case ModeABT:
		return "ABT"
	case ModeUND:
		return "UND"
	case ModeSYS:
		return "SYS"
	default:
		return "???"
	}
}

const (
	RegSP = 13
	RegLR = 14
	RegPC = 15
)

// CPSR bit positions.
const (
	flagN   = 31
	flagZ   = 30
	flagC   = 29
	flagV   = 28
	flagI   = 7
	flagF   = 6
	flagT   = 5
	modeLSB = 0
	modeLen = 5
)

// Registers holds the sixteen general-purpose registers, the CPSR,
// and every mode's banked registers and SPSR. R13/R14 are banked in
// SVC, ABT, UND and IRQ; R8..R14 are banked in FIQ; USR and SYS share
// the unbanked set and have no SPSR.
type Registers struct {
	cpsr uint32
	r    [16]uint32

	rSVC [2]uint32
	rABT [2]uint32
	rUND [2]uint32
	rIRQ [2]uint32
	rFIQ [7]uint32

	spsrSVC uint32
	spsrABT uint32
	spsrUND uint32
	spsrIRQ uint32
	spsrFIQ uint32

	branchHappened bool
}

// Reset sets the processor to its power-up state: SVC mode, ARM
// state, both interrupt masks set, PC at zero.
func (r *Registers) Reset() {
	*r = Registers{}
	r.SetMode(ModeSVC)
	r.SetThumb(false)
	r.SetIRQDisable(true)
	r.SetFIQDisable(true)
	r.r[RegPC] = 0
}

// bankFor returns the banked register slice for mode, and nil for
// modes (USR, SYS) that have no banked registers.
func (r *Registers) bankFor(mode Mode) []uint32 {
	switch mode {
	case ModeUSR, ModeSYS:
		return nil
	case ModeSVC:
		return r.rSVC[:]
	case ModeABT:
		return r.rABT[:]
	case ModeUND:
		return r.rUND[:]
	case ModeIRQ:
		return r.rIRQ[:]
	case ModeFIQ:
		return r.rFIQ[:]
	default:
		return nil
	}
}

// GetInMode reads register n as it appears in mode, regardless of the
// processor's current mode. Used by the S-bit path of load/store
// multiple, which always addresses the USR bank.
func (r *Registers) GetInMode(n uint, mode Mode) uint32 {
	bank := r.bankFor(mode)
	bankedStart := 15 - len(bank)
	if int(n) >= bankedStart && n < 15 {
		return bank[int(n)-bankedStart]
	}
	return r.r[n]
}

// SetInMode writes register n as it appears in mode, regardless of
// the processor's current mode. Writing register 15 sets the
// branch-happened flag just as Set does.
func (r *Registers) SetInMode(n uint, mode Mode, value uint32) {
	bank := r.bankFor(mode)
	bankedStart := 15 - len(bank)
	if int(n) >= bankedStart && n < 15 {
		bank[int(n)-bankedStart] = value
	} else {
		r.r[n] = value
	}

	if n == RegPC {
		r.branchHappened = true
	}
}

// Get reads register n using the current mode.
func (r *Registers) Get(n uint) uint32 {
	return r.GetInMode(n, r.Mode())
}

// Set writes register n using the current mode.
func (r *Registers) Set(n uint, value uint32) {
	r.SetInMode(n, r.Mode(), value)
}

// BranchHappened reports whether register 15 has been written since
// the flag was last cleared.
func (r *Registers) BranchHappened() bool {
	return r.branchHappened
}

// ClearBranchHappened clears the flag the step loop consumes at the
// end of every instruction.
func (r *Registers) ClearBranchHappened() {
	r.branchHappened = false
}

// CPSR returns the raw current program status register.
func (r *Registers) CPSR() uint32 {
	return r.cpsr
}

// SetCPSR overwrites the entire current program status register.
func (r *Registers) SetCPSR(v uint32) {
	r.cpsr = v
}

// SPSR returns the saved program status register for the current
// mode. Callers must check HasSPSR first; USR and SYS have none.
func (r *Registers) SPSR() uint32 {
	switch r.Mode() {
	case ModeSVC:
		return r.spsrSVC
	case ModeABT:
		return r.spsrABT
	case ModeUND:
		return r.spsrUND
	case ModeIRQ:
		return r.spsrIRQ
	case ModeFIQ:
		return r.spsrFIQ
	default:
		return 0
	}
}

// SetSPSR writes the saved program status register for the current
// mode.
func (r *Registers) SetSPSR(v uint32) {
	switch r.Mode() {
	case ModeSVC:
		r.spsrSVC = v
	case ModeABT:
		r.spsrABT = v
	case ModeUND:
		r.spsrUND = v
	case ModeIRQ:
		r.spsrIRQ = v
	case ModeFIQ:
		r.spsrFIQ = v
	}
}

// HasSPSR reports whether the current mode has a saved program status
// register: true in every privileged mode except SYS.
func (r *Registers) HasSPSR() bool {
	m := r.Mode()
	return m != ModeUSR && m != ModeSYS
}

// IsPrivileged reports whether the current mode is anything but USR.
func (r *Registers) IsPrivileged() bool {
	return r.Mode() != ModeUSR
}

func (r *Registers) Negative() bool     { return bits.Bit(r.cpsr, flagN) }
func (r *Registers) SetNegative(v bool) { r.cpsr = bits.SetBit(r.cpsr, flagN, v) }

func (r *Registers) Zero() bool     { return bits.Bit(r.cpsr, flagZ) }
func (r *Registers) SetZero(v bool) { r.cpsr = bits.SetBit(r.cpsr, flagZ, v) }

func (r *Registers) Carry() bool     { return bits.Bit(r.cpsr, flagC) }
func (r *Registers) SetCarry(v bool) { r.cpsr = bits.SetBit(r.cpsr, flagC, v) }

func (r *Registers) Overflow() bool     { return bits.Bit(r.cpsr, flagV) }
func (r *Registers) SetOverflow(v bool) { r.cpsr = bits.SetBit(r.cpsr, flagV, v) }

func (r *Registers) IRQDisable() bool     { return bits.Bit(r.cpsr, flagI) }
func (r *Registers) SetIRQDisable(v bool) { r.cpsr = bits.SetBit(r.cpsr, flagI, v) }

func (r *Registers) FIQDisable() bool     { return bits.Bit(r.cpsr, flagF) }
func (r *Registers) SetFIQDisable(v bool) { r.cpsr = bits.SetBit(r.cpsr, flagF, v) }

func (r *Registers) Thumb() bool     { return bits.Bit(r.cpsr, flagT) }
func (r *Registers) SetThumb(v bool) { r.cpsr = bits.SetBit(r.cpsr, flagT, v) }

func (r *Registers) Mode() Mode {
	return Mode(bits.Extract(r.cpsr, modeLSB, modeLen))
}

func (r *Registers) SetMode(m Mode) {
	r.cpsr = bits.Insert(r.cpsr, modeLSB, modeLen, uint32(m))
}
