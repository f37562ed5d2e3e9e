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

import (
	"strconv"

	"github.com/aetherarm/arm7tdmi/bits"
)

// thumbDecoderFn turns a raw 16-bit Thumb instruction into an
// Operation. The BL/BLX prefix pair decodes as two separate operations
// (thumbBranchLinkHigh, thumbBranchLinkLow) that communicate through
// the link register, so no decoder needs the following halfword.
type thumbDecoderFn func(instr uint16) Operation

const thumbLUTSize = 1 << 8

// thumbLUT is indexed by bits[15:8] of the halfword.
var thumbLUT [thumbLUTSize]thumbDecoderFn

func init() {
	for i := range thumbLUT {
		thumbLUT[i] = decodeUnknownThumb
	}

	addThumbPattern("000xxxxx", decodeThumbMoveShifted)         // format 1
	addThumbPattern("00011xxx", decodeThumbAddSubtract)         // format 2 (overrides the 000xxxxx subset)
	addThumbPattern("001xxxxx", decodeThumbImmediate)           // format 3
	addThumbPattern("010000xx", decodeThumbALU)                 // format 4
	addThumbPattern("010001xx", decodeThumbHiRegister)          // format 5
	addThumbPattern("01001xxx", decodeThumbLiteralPool)         // format 6
	addThumbPattern("0101xx0x", decodeThumbLoadStoreRegOffset)  // format 7
	addThumbPattern("0101xx1x", decodeThumbLoadStoreSigned)     // format 8
	addThumbPattern("011xxxxx", decodeThumbLoadStoreImmediate)  // format 9
	addThumbPattern("1000xxxx", decodeThumbLoadStoreHalfword)   // format 10
	addThumbPattern("1001xxxx", decodeThumbSPRelative)          // format 11
	addThumbPattern("1010xxxx", decodeThumbLoadAddress)         // format 12
	addThumbPattern("10110000", decodeThumbAddSP)               // format 13
	addThumbPattern("1011x10x", decodeThumbPushPop)             // format 14
	addThumbPattern("1100xxxx", decodeThumbLoadStoreMultiple)   // format 15
	addThumbPattern("1101xxxx", decodeThumbConditionalBranch)   // format 16
	addThumbPattern("11011111", decodeUnknownThumb)             // format 17, SWI: unimplemented
	addThumbPattern("11100xxx", decodeThumbUnconditionalBranch) // format 18
	addThumbPattern("1111xxxx", decodeThumbBranchLinkPrefix)    // format 19
}

func addThumbPattern(pattern string, decoder thumbDecoderFn) {
	p := stripSpaces(pattern)
	if len(p) != 8 {
		panic("thumb decode pattern must be 8 bits long: " + pattern)
	}

	baseIndex := 0
	var wildcards []uint
	for i, c := range p {
		bitPos := uint(7 - i)
		switch c {
		case '0':
		case '1':
			baseIndex |= 1 << bitPos
		case 'x':
			wildcards = append(wildcards, bitPos)
		default:
			panic("invalid character in thumb decode pattern: " + pattern)
		}
	}

	combinations := 1 << len(wildcards)
	for i := 0; i < combinations; i++ {
		index := baseIndex
		for j, pos := range wildcards {
			if i&(1<<uint(j)) != 0 {
				index |= 1 << pos
			} else {
				index &^= 1 << pos
			}
		}
		thumbLUT[index] = decoder
	}
}

// DecodeThumb resolves a 16-bit Thumb-state instruction into an
// Operation. Decoding is total: unhandled encodings come back as
// Unknown rather than an error.
func DecodeThumb(instr uint16) Operation {
	return thumbLUT[instr>>8](instr)
}

func decodeUnknownThumb(instr uint16) Operation {
	return Unknown{Instr: uint32(instr)}
}

// format 1: move shifted register (LSL/LSR/ASR Rd, Rm, #imm)
func decodeThumbMoveShifted(instr uint16) Operation {
	op := bits.Extract(uint32(instr), 11, 2)
	imm := uint(bits.Extract(uint32(instr), 6, 5))
	rm := uint(bits.Extract(uint32(instr), 3, 3))
	rd := uint(bits.Extract(uint32(instr), 0, 3))

	shift := ShiftLSL
	switch op {
	case 0b01:
		shift = ShiftLSR
	case 0b10:
		shift = ShiftASR
	}

	return DataProcessing{
		Cond:     AL,
		Opcode:   DPMov,
		SetFlags: true,
		Rd:       rd,
		Operand2: Operand2{Kind: Op2ShiftImmediate, Rm: rm, ShiftImm: imm, Shift: shift},
	}
}

// format 2: add/subtract register or 3-bit immediate
func decodeThumbAddSubtract(instr uint16) Operation {
	isSub := bits.Bit(uint32(instr), 9)
	isImmediate := bits.Bit(uint32(instr), 10)
	rnOrImm := uint32(bits.Extract(uint32(instr), 6, 3))
	rm := uint(bits.Extract(uint32(instr), 3, 3))
	rd := uint(bits.Extract(uint32(instr), 0, 3))

	var operand2 Operand2
	if isImmediate {
		operand2 = Operand2{Kind: Op2Immediate, Immediate: rnOrImm}
	} else {
		operand2 = Operand2{Kind: Op2Register, Rm: uint(rnOrImm)}
	}

	opcode := DPAdd
	if isSub {
		opcode = DPSub
	}

	return DataProcessing{
		Cond:     AL,
		Opcode:   opcode,
		SetFlags: true,
		Rd:       rd,
		Rn:       rm,
		Operand2: operand2,
	}
}

// format 3: MOV/CMP/ADD/SUB Rd, #imm8
func decodeThumbImmediate(instr uint16) Operation {
	op := bits.Extract(uint32(instr), 11, 2)
	rd := uint(bits.Extract(uint32(instr), 8, 3))
	imm := bits.Extract(uint32(instr), 0, 8)

	opcodes := [4]DPOpcode{DPMov, DPCmp, DPAdd, DPSub}
	opcode := opcodes[op]

	// RotateImm is left zero: no rotation occurred, so a flag-setting MOV
	// leaves the carry flag alone, as the architecture requires
	return DataProcessing{
		Cond:     AL,
		Opcode:   opcode,
		SetFlags: true,
		Rd:       rd,
		Rn:       rd,
		Operand2: Operand2{Kind: Op2Immediate, Immediate: imm},
	}
}

var thumbALUOpcodes = [16]DPOpcode{
	DPAnd, DPEor, DPMov /* LSL, mapped via shift-register path below */, DPMov,
	DPMov, DPAdc, DPSbc, DPMov,
	DPTst, DPRsb /* NEG: rsb rd,rm,#0 */, DPCmp, DPCmn,
	DPOrr, DPMov /* MUL: not implemented */, DPBic, DPMvn,
}

// format 4: two-operand ALU operations
func decodeThumbALU(instr uint16) Operation {
	op := bits.Extract(uint32(instr), 6, 4)
	rm := uint(bits.Extract(uint32(instr), 3, 3))
	rd := uint(bits.Extract(uint32(instr), 0, 3))

	switch op {
	case 0b0010, 0b0011, 0b0100, 0b0111: // LSL, LSR, ASR, ROR by register
		shifts := map[uint32]ShiftType{0b0010: ShiftLSL, 0b0011: ShiftLSR, 0b0100: ShiftASR, 0b0111: ShiftROR}
		return DataProcessing{
			Cond:     AL,
			Opcode:   DPMov,
			SetFlags: true,
			Rd:       rd,
			Operand2: Operand2{Kind: Op2ShiftRegister, Rm: rd, Rs: rm, Shift: shifts[op], IsRegShift: true},
		}
	case 0b1001: // NEG Rd, Rm == RSB Rd, Rm, #0
		return DataProcessing{
			Cond:     AL,
			Opcode:   DPRsb,
			SetFlags: true,
			Rd:       rd,
			Rn:       rm,
			Operand2: Operand2{Kind: Op2Immediate, Immediate: 0},
		}
	case 0b1101: // MUL: not implemented by this core
		return &unimplementedThumbOp{detail: "Thumb MUL is not implemented"}
	default:
		return DataProcessing{
			Cond:     AL,
			Opcode:   thumbALUOpcodes[op],
			SetFlags: true,
			Rd:       rd,
			Rn:       rd,
			Operand2: Operand2{Kind: Op2Register, Rm: rm},
		}
	}
}

// unimplementedThumbOp reports a decoded-but-deliberately-unsupported
// Thumb instruction.
type unimplementedThumbOp struct {
	detail string
}

func (u *unimplementedThumbOp) Execute(r *Registers, bus Bus) error {
	return &ExecutionError{Kind: ErrUnimplemented, Detail: u.detail}
}

func (u *unimplementedThumbOp) String() string {
	return u.detail
}

// format 5: hi register operations and branch/exchange
func decodeThumbHiRegister(instr uint16) Operation {
	op := bits.Extract(uint32(instr), 8, 2)
	h1 := bits.Bit(uint32(instr), 7)
	h2 := bits.Bit(uint32(instr), 6)
	rmLow := uint(bits.Extract(uint32(instr), 3, 3))
	rdLow := uint(bits.Extract(uint32(instr), 0, 3))

	rm := rmLow
	if h2 {
		rm += 8
	}
	rd := rdLow
	if h1 {
		rd += 8
	}

	switch op {
	case 0b00: // ADD
		return DataProcessing{Cond: AL, Opcode: DPAdd, Rd: rd, Rn: rd, Operand2: Operand2{Kind: Op2Register, Rm: rm}}
	case 0b01: // CMP
		return DataProcessing{Cond: AL, Opcode: DPCmp, SetFlags: true, Rd: rd, Rn: rd, Operand2: Operand2{Kind: Op2Register, Rm: rm}}
	case 0b10: // MOV
		return DataProcessing{Cond: AL, Opcode: DPMov, Rd: rd, Operand2: Operand2{Kind: Op2Register, Rm: rm}}
	default: // BX/BLX
		return BranchExchange{Cond: AL, Rm: rm}
	}
}

// format 6: PC-relative load from the literal pool
func decodeThumbLiteralPool(instr uint16) Operation {
	rd := uint(bits.Extract(uint32(instr), 8, 3))
	imm := bits.Extract(uint32(instr), 0, 8) * 4

	return LoadStoreSingle{
		Cond:   AL,
		IsLoad: true,
		Width:  WidthWord,
		Rd:     rd,
		Addressing: LoadStoreAddressingMode{
			Up:       true,
			Rn:       RegPC,
			Offset:   OffsetSource{IsImmediate: true, Immediate: imm},
			Indexing: IndexOffset,
			MaskBase: true,
		},
	}
}

// format 7: load/store with register offset
func decodeThumbLoadStoreRegOffset(instr uint16) Operation {
	l := bits.Bit(uint32(instr), 11)
	b := bits.Bit(uint32(instr), 10)
	ro := uint(bits.Extract(uint32(instr), 6, 3))
	rb := uint(bits.Extract(uint32(instr), 3, 3))
	rd := uint(bits.Extract(uint32(instr), 0, 3))

	width := WidthWord
	if b {
		width = WidthByte
	}

	return LoadStoreSingle{
		Cond:   AL,
		IsLoad: l,
		Width:  width,
		Rd:     rd,
		Addressing: LoadStoreAddressingMode{
			Up:       true,
			Rn:       rb,
			Offset:   OffsetSource{Rm: ro, Kind: Op2Register},
			Indexing: IndexOffset,
		},
	}
}

// format 8: sign-extended and halfword load/store with register offset
func decodeThumbLoadStoreSigned(instr uint16) Operation {
	hFlag := bits.Bit(uint32(instr), 11)
	sFlag := bits.Bit(uint32(instr), 10)
	ro := uint(bits.Extract(uint32(instr), 6, 3))
	rb := uint(bits.Extract(uint32(instr), 3, 3))
	rd := uint(bits.Extract(uint32(instr), 0, 3))

	width := WidthHalfword
	isLoad := true
	signExtend := false
	switch {
	case !sFlag && !hFlag: // STRH
		isLoad = false
	case !sFlag && hFlag: // LDRH
	case sFlag && !hFlag: // LDSB
		width = WidthByte
		signExtend = true
	default: // LDSH
		signExtend = true
	}

	return LoadStoreSingle{
		Cond:       AL,
		IsLoad:     isLoad,
		Width:      width,
		SignExtend: signExtend,
		Rd:         rd,
		Addressing: LoadStoreAddressingMode{
			Up:       true,
			Rn:       rb,
			Offset:   OffsetSource{Rm: ro, Kind: Op2Register},
			Indexing: IndexOffset,
		},
	}
}

// format 9: load/store with a 5-bit immediate offset (byte or word)
func decodeThumbLoadStoreImmediate(instr uint16) Operation {
	b := bits.Bit(uint32(instr), 12)
	l := bits.Bit(uint32(instr), 11)
	imm := bits.Extract(uint32(instr), 6, 5)
	rb := uint(bits.Extract(uint32(instr), 3, 3))
	rd := uint(bits.Extract(uint32(instr), 0, 3))

	width := WidthWord
	if b {
		width = WidthByte
	} else {
		imm *= 4
	}

	return LoadStoreSingle{
		Cond:   AL,
		IsLoad: l,
		Width:  width,
		Rd:     rd,
		Addressing: LoadStoreAddressingMode{
			Up:       true,
			Rn:       rb,
			Offset:   OffsetSource{IsImmediate: true, Immediate: imm},
			Indexing: IndexOffset,
		},
	}
}

// format 10: load/store halfword with a 5-bit immediate offset
func decodeThumbLoadStoreHalfword(instr uint16) Operation {
	l := bits.Bit(uint32(instr), 11)
	imm := bits.Extract(uint32(instr), 6, 5) * 2
	rb := uint(bits.Extract(uint32(instr), 3, 3))
	rd := uint(bits.Extract(uint32(instr), 0, 3))

	return LoadStoreSingle{
		Cond:   AL,
		IsLoad: l,
		Width:  WidthHalfword,
		Rd:     rd,
		Addressing: LoadStoreAddressingMode{
			Up:       true,
			Rn:       rb,
			Offset:   OffsetSource{IsImmediate: true, Immediate: imm},
			Indexing: IndexOffset,
		},
	}
}

// format 11: SP-relative load/store
func decodeThumbSPRelative(instr uint16) Operation {
	l := bits.Bit(uint32(instr), 11)
	rd := uint(bits.Extract(uint32(instr), 8, 3))
	imm := bits.Extract(uint32(instr), 0, 8) * 4

	return LoadStoreSingle{
		Cond:   AL,
		IsLoad: l,
		Width:  WidthWord,
		Rd:     rd,
		Addressing: LoadStoreAddressingMode{
			Up:       true,
			Rn:       RegSP,
			Offset:   OffsetSource{IsImmediate: true, Immediate: imm},
			Indexing: IndexOffset,
		},
	}
}

// format 12: ADD Rd, PC|SP, #imm (load address)
func decodeThumbLoadAddress(instr uint16) Operation {
	useSP := bits.Bit(uint32(instr), 11)
	rd := uint(bits.Extract(uint32(instr), 8, 3))
	imm := bits.Extract(uint32(instr), 0, 8) * 4

	rn := uint(RegPC)
	if useSP {
		rn = RegSP
	}

	return &thumbLoadAddress{rd: rd, rn: rn, imm: imm, maskBase: !useSP}
}

// thumbLoadAddress computes Rd = (Rn & mask) + imm without touching
// the flags, matching Thumb format 12's ADD-to-PC-or-SP semantics
// (the PC path additionally clears its low two bits).
type thumbLoadAddress struct {
	rd, rn   uint
	imm      uint32
	maskBase bool
}

func (t *thumbLoadAddress) Execute(r *Registers, bus Bus) error {
	base := r.Get(t.rn)
	if t.maskBase {
		base &^= 0x3
	}
	r.Set(t.rd, base+t.imm)
	return nil
}

func (t *thumbLoadAddress) String() string {
	src := "SP"
	if t.maskBase {
		src = "PC"
	}
	return "ADD R" + strconv.Itoa(int(t.rd)) + ", " + src + ", #" + strconv.Itoa(int(t.imm))
}

// format 13: ADD/SUB SP, #imm (7-bit immediate scaled by 4)
func decodeThumbAddSP(instr uint16) Operation {
	neg := bits.Bit(uint32(instr), 7)
	imm := bits.Extract(uint32(instr), 0, 7) * 4

	return &thumbAddSP{imm: imm, neg: neg}
}

type thumbAddSP struct {
	imm uint32
	neg bool
}

func (t *thumbAddSP) Execute(r *Registers, bus Bus) error {
	sp := r.Get(RegSP)
	if t.neg {
		r.Set(RegSP, sp-t.imm)
	} else {
		r.Set(RegSP, sp+t.imm)
	}
	return nil
}

func (t *thumbAddSP) String() string {
	if t.neg {
		return "SUB SP, #" + strconv.Itoa(int(t.imm))
	}
	return "ADD SP, #" + strconv.Itoa(int(t.imm))
}

// format 14: PUSH/POP, with the LR/PC interworking bit
func decodeThumbPushPop(instr uint16) Operation {
	isPop := bits.Bit(uint32(instr), 11)
	includeExtra := bits.Bit(uint32(instr), 8)
	regList := bits.Extract(uint32(instr), 0, 8)

	return &ThumbPushPop{IsPop: isPop, IncludeExtra: includeExtra, RegisterList: regList}
}

// ThumbPushPop is the decoded form of Thumb's PUSH/POP instructions: a
// restricted STMDB/LDMIA on the stack pointer whose optional eighth
// bit names LR (push) or PC (pop). A pop that loads PC behaves like
// BX: bit 0 of the loaded value selects Thumb/ARM state.
type ThumbPushPop struct {
	IsPop        bool
	IncludeExtra bool
	RegisterList uint32 // bits 0..7, the low register bank only
}

func (t *ThumbPushPop) fullList() uint32 {
	list := t.RegisterList
	if t.IncludeExtra {
		if t.IsPop {
			list |= 1 << RegPC
		} else {
			list |= 1 << RegLR
		}
	}
	return list
}

// Execute performs the push or pop.
func (t *ThumbPushPop) Execute(r *Registers, bus Bus) error {
	list := t.fullList()
	mode := LSMDecrementBefore
	if t.IsPop {
		mode = LSMIncrementAfter
	}

	start, _, writeback := LSMAddresses(mode, r.Get(RegSP), list)

	addr := start
	for i := uint(0); i < 16; i++ {
		if !bits.Bit(list, i) {
			continue
		}
		if t.IsPop {
			word, err := bus.Read32(addr)
			if err != nil {
				return err
			}
			if i == RegPC {
				r.SetThumb(bits.Bit(word, 0))
				r.Set(RegPC, word&^1)
			} else {
				r.Set(i, word)
			}
		} else {
			if err := bus.Write32(addr, r.Get(i)); err != nil {
				return err
			}
		}
		addr += 4
	}

	r.Set(RegSP, writeback)
	return nil
}

func (t *ThumbPushPop) String() string {
	if t.IsPop {
		return "POP {...}"
	}
	return "PUSH {...}"
}

// format 15: multiple load/store (STMIA/LDMIA on a low register)
func decodeThumbLoadStoreMultiple(instr uint16) Operation {
	l := bits.Bit(uint32(instr), 11)
	rb := uint(bits.Extract(uint32(instr), 8, 3))
	regList := bits.Extract(uint32(instr), 0, 8)

	return LoadStoreMultiple{
		Cond:         AL,
		IsLoad:       l,
		Mode:         LSMIncrementAfter,
		Writeback:    true,
		Rn:           rb,
		RegisterList: regList,
	}
}

// format 16: conditional branch with an 8-bit signed, halfword-scaled offset
func decodeThumbConditionalBranch(instr uint16) Operation {
	cond := Condition(bits.Extract(uint32(instr), 8, 4))
	offset := int32(bits.SignExtend(bits.Extract(uint32(instr), 0, 8), 8)) << 1
	return Branch{Cond: cond, Offset: offset}
}

// format 18: unconditional branch with an 11-bit offset
func decodeThumbUnconditionalBranch(instr uint16) Operation {
	offset := int32(bits.SignExtend(bits.Extract(uint32(instr), 0, 11), 11)) << 1
	return Branch{Cond: AL, Offset: offset}
}

// format 19: BL/BLX prefix pair. The first halfword (bits 11:12 = 10)
// carries the high 11 bits of a 22-bit signed displacement staged
// through the link register; the second halfword (bits 11:12 = 11 for
// BL) supplies the low 11 bits and triggers the actual branch.
func decodeThumbBranchLinkPrefix(instr uint16) Operation {
	low := bits.Bit(uint32(instr), 11)
	offsetPart := bits.Extract(uint32(instr), 0, 11)

	if !low {
		return &thumbBranchLinkHigh{offsetHigh: offsetPart}
	}
	return &thumbBranchLinkLow{offsetLow: offsetPart}
}

// thumbBranchLinkHigh stages the high 11 bits of a BL displacement
// into LR; the low half (thumbBranchLinkLow) performs the actual jump.
type thumbBranchLinkHigh struct {
	offsetHigh uint32
}

func (t *thumbBranchLinkHigh) Execute(r *Registers, bus Bus) error {
	signExtended := int32(bits.SignExtend(t.offsetHigh, 11)) << 12
	r.Set(RegLR, uint32(int64(r.Get(RegPC))+int64(signExtended)))
	return nil
}

func (t *thumbBranchLinkHigh) String() string {
	return "BL(prefix)"
}

type thumbBranchLinkLow struct {
	offsetLow uint32
}

func (t *thumbBranchLinkLow) Execute(r *Registers, bus Bus) error {
	target := r.Get(RegLR) + (t.offsetLow << 1)
	nextInstr := (r.Get(RegPC) - 2) | 1
	r.Set(RegLR, nextInstr)
	r.Set(RegPC, target)
	return nil
}

func (t *thumbBranchLinkLow) String() string {
	return "BL"
}
